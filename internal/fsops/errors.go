package fsops

import (
	"errors"
	"syscall"
)

// Sentinel errors returned by [Move] when the destination is occupied. Both
// are recoverable: callers allocate a copy name or merge into the directory.
var (
	ErrDestinationExists = errors.New("destination already exists")
	ErrDestinationIsDir  = errors.New("destination is an existing directory")
)

// IsDirNotEmpty reports whether err is the "directory not empty" failure a
// rename returns when the target directory has entries. Some systems report
// EEXIST for the same condition.
func IsDirNotEmpty(err error) bool {
	return errors.Is(err, syscall.ENOTEMPTY) || errors.Is(err, syscall.EEXIST)
}

// IsCrossDevice reports whether err is EXDEV: source and destination live on
// different filesystems and a plain rename cannot work.
func IsCrossDevice(err error) bool {
	return errors.Is(err, syscall.EXDEV)
}

// IsCollision reports whether err is one of the recoverable destination
// collisions.
func IsCollision(err error) bool {
	return errors.Is(err, ErrDestinationExists) || errors.Is(err, ErrDestinationIsDir)
}
