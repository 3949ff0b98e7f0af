package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// Email validation pattern
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`

	// Student entry number pattern, e.g. 2023CSB1103
	EntryNoPattern = `^\d{4}[A-Z]{2,4}\d{4}$`

	// Course identifier pattern, e.g. CS201
	CourseIDPattern = `^[A-Z]{2,4}\d{3}$`

	// Password min length
	PasswordMinLength = 8
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email    *regexp.Regexp
	EntryNo  *regexp.Regexp
	CourseID *regexp.Regexp
}{
	Email:    regexp.MustCompile(EmailPattern),
	EntryNo:  regexp.MustCompile(EntryNoPattern),
	CourseID: regexp.MustCompile(CourseIDPattern),
}

// IsValidEmail reports whether the address matches the email pattern.
func IsValidEmail(email string) bool {
	return CompiledPatterns.Email.MatchString(email)
}

// IsValidEntryNo reports whether the value matches the entry number format.
func IsValidEntryNo(entryNo string) bool {
	return CompiledPatterns.EntryNo.MatchString(entryNo)
}

// IsValidCourseID reports whether the value matches the course id format.
func IsValidCourseID(courseID string) bool {
	return CompiledPatterns.CourseID.MatchString(courseID)
}
