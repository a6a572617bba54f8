// Package naming turns raw file and directory names into their canonical
// form and allocates collision-free destination paths.
//
// The normalization pipeline is three pure string stages:
//
//	Slugify         ASCII transliteration, camelCase and clock-time
//	                splitting, "_" separated lowercase words
//	NormalizeDates  numeric date/time runs rewritten as ISO tokens
//	                (YYYY-MM-DD, YYYY-MM, YYYY-MM-DDTHH-mm-ss)
//	TitleCase       every non-date word capitalized
//
// [Normalize] composes them; applying it to its own output returns the same
// string. [Normalizer] pins the base year used by the two-digit-year
// century heuristic.
//
// [Allocator] resolves destination collisions with the "_Copy", "_Copy1",
// "_Copy2" … suffix scheme, never returning a path that exists on disk or
// was already handed out during the run.
package naming
