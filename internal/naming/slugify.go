package naming

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Separator joins the words of a slug.
const Separator = "_"

var (
	// "2019-08-21 at 14.24.19", "2019-08-23_At_12_34_55", "2019-08-23T12-48-26":
	// split the day from the clock so the two are parsed as one date-time run.
	// The clock needs hours and minutes: a bare hour ("at 10 am") stays a word.
	reClockAfterDay = regexp.MustCompile(`(-[0-9]{2})[ _]?[Aa]?[Tt][ _]?([0-9]{2}[-._][0-9]{2})`)

	// "fwdConsulta" -> "fwd_Consulta", "WhatsApp" -> "Whats_App".
	reCamelBoundary = regexp.MustCompile(`([a-z])([A-Z]+)`)

	reThousands   = regexp.MustCompile(`([0-9]),([0-9])`)
	reDisallowed  = regexp.MustCompile(`[^a-z0-9]+`)
	reMultipleSep = regexp.MustCompile(`_+`)
)

// ligatures covers letters that have no canonical decomposition into a base
// letter plus combining marks, so NFKD alone would drop them.
var ligatures = strings.NewReplacer(
	"ß", "ss", "ẞ", "SS",
	"æ", "ae", "Æ", "AE",
	"œ", "oe", "Œ", "OE",
	"ø", "o", "Ø", "O",
	"ł", "l", "Ł", "L",
	"đ", "d", "Đ", "D",
	"ð", "d", "Ð", "D",
	"þ", "th", "Þ", "TH",
	"ı", "i",
	"’", "'", "‘", "'",
)

// Slugify produces the lowercase, "_" separated ASCII baseline of raw.
// Word boundaries hidden by camelCase or by a clock time glued to a date are
// made explicit before casing is lost. Returns "" for empty input.
func Slugify(raw string) string {
	if raw == "" {
		return ""
	}
	s := norm.NFKC.String(raw)
	s = reClockAfterDay.ReplaceAllString(s, "${1}"+Separator+"${2}")
	s = reCamelBoundary.ReplaceAllString(s, "${1}"+Separator+"${2}")

	s = strings.ToLower(transliterate(s))
	s = strings.ReplaceAll(s, "'", "")
	s = dropThousandsSeparators(s)

	s = reDisallowed.ReplaceAllString(s, Separator)
	return strings.Trim(s, Separator)
}

// transliterate maps s to its closest ASCII spelling: ligatures first, then
// accents stripped by decomposition. Anything still outside ASCII is left to
// the disallowed-character pass.
func transliterate(s string) string {
	s = ligatures.Replace(s)
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// dropThousandsSeparators turns "1,000,000" into "1000000". The loop handles
// single-digit groups, whose matches would otherwise overlap.
func dropThousandsSeparators(s string) string {
	for {
		next := reThousands.ReplaceAllString(s, "${1}${2}")
		if next == s {
			return s
		}
		s = next
	}
}

// collapseSeparators squeezes runs of "_" into one.
func collapseSeparators(s string) string {
	return reMultipleSep.ReplaceAllString(s, Separator)
}
