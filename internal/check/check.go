// Package check provides the preflight validation run before any directory
// is scanned or modified: roots must be existing directories, and a merge
// must not move a tree into itself.
package check

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors returned by the preflight checks. They are wrapped with
// the offending path.
var (
	ErrNotDirectory       = errors.New("not a directory")
	ErrSameDirectory      = errors.New("source and target are the same directory")
	ErrTargetInsideSource = errors.New("target directory is inside the source directory")
)

// Logger is the minimal logging interface needed by the preflight report.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// Dir verifies that path exists and is a directory (symlinks are followed)
// and returns its absolute, symlink-resolved form.
func Dir(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s: %w", path, ErrNotDirectory)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", err
	}
	return resolved, nil
}

// MergePair verifies that source can be merged into target: both must be
// directories, distinct, and the target must not live inside the source
// (moving a tree into its own subtree would chase its own output). Both
// returned paths are absolute and symlink-resolved.
func MergePair(target, source string) (targetAbs, sourceAbs string, err error) {
	targetAbs, err = Dir(target)
	if err != nil {
		return "", "", err
	}
	sourceAbs, err = Dir(source)
	if err != nil {
		return "", "", err
	}
	if err := ValidatePaths(targetAbs, sourceAbs); err != nil {
		return "", "", err
	}
	return targetAbs, sourceAbs, nil
}

// ValidatePaths ensures the resolved target directory is neither equal to
// nor inside the resolved source directory. Both arguments must be absolute,
// symlink-resolved paths.
func ValidatePaths(targetAbs, sourceAbs string) error {
	if targetAbs == sourceAbs {
		return fmt.Errorf("%s: %w", sourceAbs, ErrSameDirectory)
	}
	sep := string(filepath.Separator)
	if strings.HasPrefix(targetAbs+sep, sourceAbs+sep) {
		return fmt.Errorf("%s: %w", targetAbs, ErrTargetInsideSource)
	}
	return nil
}

// Roots validates every rename root and logs each failure. It returns the
// resolved roots that passed, in input order, and the number that failed.
func Roots(roots []string, log Logger) (ok []string, failed int) {
	for _, r := range roots {
		abs, err := Dir(r)
		if err != nil {
			log.Error("%v", err)
			failed++
			continue
		}
		ok = append(ok, abs)
	}
	return ok, failed
}
