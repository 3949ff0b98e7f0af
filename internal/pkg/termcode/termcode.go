// Package termcode derives a chronological ordering key from academic term
// codes such as "2025-I", "2025-II" or "2023-24 Autumn". Sorting codes as
// plain strings misorders semesters ("2025-II" < "2025-I" is false
// lexically only by accident of roman numeral length), so all cumulative
// GPA computation sorts by this key instead.
package termcode

import (
	"regexp"
	"strconv"
	"strings"
)

// Key is a sortable representation of a term code. Year is the leading
// calendar year, Seq the position of the semester within that year.
type Key struct {
	Year int
	Seq  int
	Raw  string
}

var yearPattern = regexp.MustCompile(`\d{4}`)

// seqOf maps semester designators to their position in the academic year.
var seqOf = map[string]int{
	"I":      1,
	"II":     2,
	"III":    3,
	"SPRING": 1,
	"SUMMER": 2,
	"AUTUMN": 3,
	"FALL":   3,
	"WINTER": 4,
}

// Parse extracts the ordering key from a term code. Codes with no
// recognizable year sort before everything else; unknown semester
// designators sort after the known ones within their year, falling back to
// the raw string for a stable order.
func Parse(code string) Key {
	key := Key{Raw: code}

	if m := yearPattern.FindString(code); m != "" {
		key.Year, _ = strconv.Atoi(m)
	}

	// The designator is whatever trails the year: "-II", " Autumn", …
	rest := strings.ToUpper(strings.TrimSpace(code))
	if idx := yearPattern.FindStringIndex(rest); idx != nil {
		rest = rest[idx[1]:]
	}
	rest = strings.Trim(rest, " -/")
	// Strip a second year fragment from spans like "2023-24 Autumn".
	if fields := strings.Fields(rest); len(fields) > 1 {
		rest = fields[len(fields)-1]
	}

	if seq, ok := seqOf[rest]; ok {
		key.Seq = seq
	} else if rest != "" {
		key.Seq = len(seqOf) + 1
	}

	return key
}

// Less orders two term codes chronologically.
func Less(a, b string) bool {
	ka, kb := Parse(a), Parse(b)
	if ka.Year != kb.Year {
		return ka.Year < kb.Year
	}
	if ka.Seq != kb.Seq {
		return ka.Seq < kb.Seq
	}
	return ka.Raw < kb.Raw
}
