package fsops

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/backmassage/renamer/internal/naming"
)

// Move renames src to dst and never replaces an existing entry. It returns
// [ErrDestinationIsDir] or [ErrDestinationExists] (wrapped with dst) when dst
// is occupied, unless dst is src under a different letter case, in which case
// the rename goes through a temporary sibling. A move across filesystems
// copies the file (or recreates the symlink) and then removes src.
func Move(src, dst string) error {
	srcInfo, err := os.Lstat(src)
	if err != nil {
		return err
	}

	if dstInfo, err := os.Lstat(dst); err == nil {
		if isCaseOnly(src, dst, srcInfo, dstInfo) {
			return caseRename(src, dst)
		}
		return collision(dst, dstInfo)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	err = renameNoReplace(src, dst)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrExist) || IsDirNotEmpty(err):
		// Lost a race with another writer: classify what is there now.
		if dstInfo, statErr := os.Lstat(dst); statErr == nil {
			return collision(dst, dstInfo)
		}
		return err
	case IsCrossDevice(err):
		if srcInfo.IsDir() {
			return fmt.Errorf("move %s: directories cannot cross filesystems: %w", src, err)
		}
		return copyThenRemove(src, dst, srcInfo)
	default:
		return err
	}
}

func collision(dst string, info fs.FileInfo) error {
	if info.IsDir() {
		return fmt.Errorf("%s: %w", dst, ErrDestinationIsDir)
	}
	return fmt.Errorf("%s: %w", dst, ErrDestinationExists)
}

// isCaseOnly reports whether dst names the same entry as src on a
// case-insensitive filesystem.
func isCaseOnly(src, dst string, srcInfo, dstInfo fs.FileInfo) bool {
	return src != dst &&
		filepath.Dir(src) == filepath.Dir(dst) &&
		strings.EqualFold(filepath.Base(src), filepath.Base(dst)) &&
		os.SameFile(srcInfo, dstInfo)
}

func caseRename(src, dst string) error {
	tmp := naming.UniquePath(filepath.Join(filepath.Dir(src), "."+filepath.Base(src)+".renaming"))
	if err := os.Rename(src, tmp); err != nil {
		return err
	}
	if err := os.Rename(tmp, dst); err != nil {
		_ = os.Rename(tmp, src)
		return err
	}
	return nil
}

func copyThenRemove(src, dst string, info fs.FileInfo) error {
	switch {
	case info.Mode()&fs.ModeSymlink != 0:
		target, err := os.Readlink(src)
		if err != nil {
			return err
		}
		if err := os.Symlink(target, dst); err != nil {
			return err
		}
	case info.Mode().IsRegular():
		if err := copyFile(src, dst, info); err != nil {
			return err
		}
	default:
		return fmt.Errorf("move %s: cannot copy %s across filesystems", src, info.Mode().Type())
	}
	return os.Remove(src)
}

// copyFile creates dst exclusively, so a file appearing between the
// pre-check and the copy is never truncated.
func copyFile(src, dst string, info fs.FileInfo) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%s: %w", dst, ErrDestinationExists)
		}
		return err
	}

	_, err = io.Copy(out, in)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(dst)
		return fmt.Errorf("copy %s: %w", src, err)
	}
	_ = os.Chtimes(dst, info.ModTime(), info.ModTime())
	return nil
}
