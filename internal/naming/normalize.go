package naming

import (
	"path/filepath"
	"strings"
	"time"
)

// Normalize returns the canonical form of raw using the current year as the
// century-heuristic base.
func Normalize(raw string) string {
	return NewNormalizer(time.Now()).Name(raw)
}

// Name runs Slugify, NormalizeDates and TitleCase over raw.
func (n *Normalizer) Name(raw string) string {
	return TitleCase(n.NormalizeDates(Slugify(raw)))
}

// FileName normalizes a file basename: the stem goes through [Normalizer.Name]
// and the extension is lower-cased. A name that normalizes to nothing (for
// example "★.txt") keeps its original stem so the file never loses its name.
func (n *Normalizer) FileName(base string) string {
	stem, ext := SplitExt(base)
	newStem := n.Name(stem)
	if newStem == "" {
		newStem = stem
	}
	return newStem + strings.ToLower(ext)
}

// DirName normalizes a directory basename, keeping the original when the
// result would be empty.
func (n *Normalizer) DirName(base string) string {
	if name := n.Name(base); name != "" {
		return name
	}
	return base
}

// SplitExt splits a basename into stem and last extension (with its dot).
// Names whose only dot is the leading one, like ".DS_Store", have no
// extension, and a trailing dot is not an extension either.
func SplitExt(base string) (stem, ext string) {
	ext = filepath.Ext(base)
	if ext == base || ext == "." {
		return base, ""
	}
	return strings.TrimSuffix(base, ext), ext
}
