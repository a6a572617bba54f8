//go:build !linux

package fsops

import "os"

func renameNoReplace(src, dst string) error {
	return os.Rename(src, dst)
}
