package naming

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"sync"
)

// CopySuffix marks an allocated duplicate: "name_Copy", "name_Copy1", …
const CopySuffix = "_Copy"

var reCopyStem = regexp.MustCompile(`(?i)^(.+)_copy([0-9]*)$`)

// Allocator hands out destination paths that neither exist on disk nor were
// already returned by this allocator. The claim set lets a dry run report the
// same destinations a real run would produce. All methods are goroutine-safe.
type Allocator struct {
	mu      sync.Mutex
	claimed map[string]bool
	exists  func(string) bool
}

// NewAllocator creates an allocator backed by the real filesystem.
func NewAllocator() *Allocator {
	return &Allocator{
		claimed: make(map[string]bool),
		exists:  pathExists,
	}
}

// UniquePath returns desired if nothing exists there, otherwise the first
// free copy-suffixed sibling. It keeps no state between calls.
func UniquePath(desired string) string {
	return nextFree(desired, pathExists)
}

// Resolve returns a free path for desired and claims it for the rest of the
// run, so two requests for the same path never receive the same answer.
func (a *Allocator) Resolve(desired string) string {
	a.mu.Lock()
	defer a.mu.Unlock()

	taken := func(p string) bool { return a.claimed[p] || a.exists(p) }
	p := nextFree(desired, taken)
	a.claimed[p] = true
	return p
}

// Release drops a claim, used when a planned move is abandoned.
func (a *Allocator) Release(p string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.claimed, p)
}

// nextFree walks the copy sequence starting at desired until taken reports
// false. It terminates because each step yields a new name and only finitely
// many names are taken.
func nextFree(desired string, taken func(string) bool) string {
	p := desired
	for taken(p) {
		p = NextCopyName(p)
	}
	return p
}

// NextCopyName returns the successor of p in the copy sequence:
//
//	file.txt       -> file_Copy.txt
//	file_Copy.txt  -> file_Copy1.txt
//	file_Copy1.txt -> file_Copy2.txt
func NextCopyName(p string) string {
	dir, base := filepath.Split(p)
	stem, ext := SplitExt(base)

	m := reCopyStem.FindStringSubmatch(stem)
	if m == nil {
		return filepath.Join(dir, stem+CopySuffix+ext)
	}
	index := 0
	if m[2] != "" {
		n, err := strconv.Atoi(m[2])
		if err == nil {
			index = n
		}
	}
	return filepath.Join(dir, m[1]+CopySuffix+strconv.Itoa(index+1)+ext)
}

// pathExists treats anything other than a clean "not exist" as taken, so a
// permission error never leads to an overwrite.
func pathExists(p string) bool {
	_, err := os.Lstat(p)
	if err == nil {
		return true
	}
	return !errors.Is(err, fs.ErrNotExist)
}
