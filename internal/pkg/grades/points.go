// Package grades maps letter grades to grade-point values on the
// institute's 10-point scale. The table is the single source of truth for
// every call site that converts a letter to points (grade entry, bulk
// upload, SGPA/CGPA computation).
package grades

import "strings"

// pointTable is the canonical letter-to-points mapping. S counts as a full
// pass and X as a fail; I, W and NP carry no points and are excluded from
// GPA arithmetic entirely.
var pointTable = map[string]float64{
	"A+": 10.0,
	"A":  10.0,
	"A-": 9.0,
	"B+": 8.0,
	"B":  7.0,
	"B-": 6.0,
	"C+": 5.0,
	"C":  4.0,
	"D":  3.0,
	"F":  0.0,
	"S":  10.0,
	"X":  0.0,
}

// excluded marks letters that are recorded on the transcript but never
// enter GPA arithmetic.
var excluded = map[string]bool{
	"I":  true, // incomplete
	"W":  true, // withdrawn
	"NP": true, // not pass
}

// Normalize canonicalizes a letter grade to the uppercase, trimmed form
// the table uses.
func Normalize(letter string) string {
	return strings.ToUpper(strings.TrimSpace(letter))
}

// Points returns the grade-point value for a letter grade. The second
// return value is false when the letter carries no points: incomplete,
// withdrawn, empty, or unrecognized input.
func Points(letter string) (float64, bool) {
	letter = strings.ToUpper(strings.TrimSpace(letter))
	if letter == "" || excluded[letter] {
		return 0, false
	}
	points, ok := pointTable[letter]
	return points, ok
}

// Valid reports whether the letter is a recognized grade, countable or not.
func Valid(letter string) bool {
	letter = strings.ToUpper(strings.TrimSpace(letter))
	if excluded[letter] {
		return true
	}
	_, ok := pointTable[letter]
	return ok
}

// Countable reports whether the letter participates in GPA arithmetic.
func Countable(letter string) bool {
	_, ok := Points(letter)
	return ok
}

// Failing reports whether the letter is a failing grade that earns no
// credits (F or X).
func Failing(letter string) bool {
	letter = strings.ToUpper(strings.TrimSpace(letter))
	return letter == "F" || letter == "X"
}
