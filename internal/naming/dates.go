package naming

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// centuryWindow is how far into the future a two-digit year may land before
// it is read as belonging to the previous century.
const centuryWindow = 10

var reDateCandidate = regexp.MustCompile(`[0-9][0-9_.-]+[0-9]`)

// DateFormats is the ordered list of layouts tried against every numeric
// run. Human day-first layouts come before inverted year-first ones, so
// "10_05_2015" is 10 May and "2017_12_30" is 30 December. Only layouts with
// the same length as the run are tried; the first that parses wins.
var DateFormats = []string{
	// Human formats first.
	"MM_YYYY",
	"DD_MM_YYYY",
	"DD_MM_YY",
	"DDMMYYYY",
	"DDMMYY",
	"DD_MM_YYYY_HH_mm_ss",
	"DD_MM_YY_HH_mm_ss",
	"DDMMYYYYHHmm",
	// Then inverted formats.
	"YYYY_MM",
	"YYYY_MM_DD",
	"YYYYMMDD",
	"YY_MM_DD_HH_mm_ss",
	"YYYY_MM_DD_HH_mm_ss",
	"YYYYMMDDHHmmss",
	"YYYYMMDD_HHmmss",
}

// Normalizer runs the naming pipeline against a fixed base year.
type Normalizer struct {
	baseYear int
}

// NewNormalizer returns a Normalizer whose two-digit-year heuristic is
// anchored at now's year.
func NewNormalizer(now time.Time) *Normalizer {
	return &Normalizer{baseYear: now.Year()}
}

// NormalizeDates rewrites every date/time run in a slugged string as an ISO
// token surrounded by separators, then collapses repeated separators. Runs
// that match no layout are kept verbatim.
func (n *Normalizer) NormalizeDates(slugged string) string {
	replaced := reDateCandidate.ReplaceAllStringFunc(slugged, func(run string) string {
		if iso, ok := n.parseDate(run); ok {
			return Separator + iso + Separator
		}
		return Separator + run + Separator
	})
	return collapseSeparators(replaced)
}

// parseDate tries each layout of matching length in order.
func (n *Normalizer) parseDate(run string) (string, bool) {
	for _, layout := range DateFormats {
		if len(layout) != len(run) {
			continue
		}
		f, ok := parseLayout(run, layout)
		if !ok {
			continue
		}
		if f.shortYear && f.year > n.baseYear+centuryWindow {
			f.year -= 100
		}
		iso, ok := f.format()
		if !ok {
			continue
		}
		return iso, true
	}
	return "", false
}

// dateFields holds the components read out of a run by one layout.
type dateFields struct {
	year, month, day     int
	hour, minute, second int
	hasDay, hasTime      bool
	shortYear            bool
}

// layoutTokens are matched longest first so "YYYY" is not read as two "YY".
var layoutTokens = []string{"YYYY", "YY", "MM", "DD", "HH", "mm", "ss"}

// parseLayout reads run according to layout. Literal characters in the
// layout must appear verbatim in run; every token must be all digits.
func parseLayout(run, layout string) (dateFields, bool) {
	var f dateFields
	f.day = 1
	i := 0
	for i < len(layout) {
		token := ""
		for _, t := range layoutTokens {
			if strings.HasPrefix(layout[i:], t) {
				token = t
				break
			}
		}
		if token == "" {
			if run[i] != layout[i] {
				return f, false
			}
			i++
			continue
		}
		v, ok := atoiDigits(run[i : i+len(token)])
		if !ok {
			return f, false
		}
		switch token {
		case "YYYY":
			f.year = v
		case "YY":
			f.year = 2000 + v
			f.shortYear = true
		case "MM":
			f.month = v
		case "DD":
			f.day = v
			f.hasDay = true
		case "HH":
			f.hour = v
			f.hasTime = true
		case "mm":
			f.minute = v
		case "ss":
			f.second = v
		}
		i += len(token)
	}
	return f, true
}

// format validates the calendar date and clock, and renders the ISO token in
// the shape implied by the layout: date-time, year-month or full date.
func (f dateFields) format() (string, bool) {
	if f.month < 1 || f.month > 12 || f.day < 1 || f.day > 31 {
		return "", false
	}
	if f.hour > 23 || f.minute > 59 || f.second > 59 {
		return "", false
	}
	t := time.Date(f.year, time.Month(f.month), f.day, f.hour, f.minute, f.second, 0, time.UTC)
	if t.Day() != f.day || int(t.Month()) != f.month {
		return "", false
	}
	switch {
	case f.hasTime:
		return fmt.Sprintf("%04d-%02d-%02dT%02d-%02d-%02d", t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second()), true
	case !f.hasDay:
		return fmt.Sprintf("%04d-%02d", t.Year(), t.Month()), true
	default:
		return fmt.Sprintf("%04d-%02d-%02d", t.Year(), t.Month(), t.Day()), true
	}
}

// atoiDigits parses an all-ASCII-digit string.
func atoiDigits(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	v := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		v = v*10 + int(c-'0')
	}
	return v, true
}
