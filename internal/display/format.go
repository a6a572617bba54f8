// Package display formats sizes and paths for console output.
package display

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FormatBytes returns a human-readable size (B, KiB, MiB, GiB, TiB, PiB).
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	suffixes := []string{"KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}
	if exp >= len(suffixes) {
		exp = len(suffixes) - 1
		div = 1
		for i := 0; i <= exp; i++ {
			div *= unit
		}
	}
	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(div), suffixes[exp])
}

// Plural returns "1 file" / "3 files".
func Plural(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}

// DirWithEndSlash trims trailing whitespace and returns path with exactly
// one trailing separator.
func DirWithEndSlash(path string) string {
	path = strings.TrimRight(path, " \t\r\n")
	if path == "" {
		return string(filepath.Separator)
	}
	sep := string(filepath.Separator)
	clean := filepath.Clean(path)
	if strings.HasSuffix(clean, sep) {
		return clean
	}
	return clean + sep
}

// RelativeToHome replaces the home directory prefix of path with "~".
// Paths outside the home directory are returned unchanged.
func RelativeToHome(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	return relativeTo(home, path)
}

func relativeTo(home, path string) string {
	home = filepath.Clean(home)
	clean := filepath.Clean(path)
	if clean == home {
		return "~"
	}
	if rel := strings.TrimPrefix(clean, home+string(filepath.Separator)); rel != clean {
		return "~" + string(filepath.Separator) + rel
	}
	return path
}
