package naming

import (
	"regexp"
	"strings"
)

var reISOToken = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}(-[0-9]{2}(T[0-9]{2}-[0-9]{2}-[0-9]{2})?)?$`)

// IsISOToken reports whether word is a date token produced by NormalizeDates.
func IsISOToken(word string) bool {
	return reISOToken.MatchString(word)
}

// TitleCase capitalizes the first letter of every "_" separated word, leaving
// ISO date tokens untouched. Empty words are dropped, which also strips
// leading and trailing separators.
func TitleCase(s string) string {
	words := strings.Split(s, Separator)
	out := words[:0]
	for _, w := range words {
		if w == "" {
			continue
		}
		if !IsISOToken(w) {
			w = capitalize(w)
		}
		out = append(out, w)
	}
	return strings.Join(out, Separator)
}

func capitalize(w string) string {
	c := w[0]
	if c >= 'a' && c <= 'z' {
		return string(c-'a'+'A') + w[1:]
	}
	return w
}
