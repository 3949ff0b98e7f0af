// Package eligibility decides whether a student may enroll in a candidate
// offering, given their existing active enrollments for the same term.
// It is pure: callers load the snapshot and hold whatever locks they need.
package eligibility

import (
	"github.com/acadsys/aims/internal/pkg/apperrors"
)

// ActiveEnrollment is one of the student's current-term enrollments that
// still counts against their schedule (pending or approved, not rejected).
type ActiveEnrollment struct {
	CourseCode string
	SlotID     *int64
	SlotLabel  string
	Credits    float64
}

// Candidate is the offering the student wants to enroll in.
type Candidate struct {
	CourseCode string
	SlotID     *int64
	SlotLabel  string
	Credits    float64
}

// Check runs the enrollment eligibility rules in order: slot clash first,
// then the credit ceiling. A candidate landing exactly at the ceiling passes.
// Offerings without a slot (TBA) never clash.
func Check(existing []ActiveEnrollment, cand Candidate, ceiling float64) error {
	if cand.SlotID != nil {
		for _, e := range existing {
			if e.SlotID != nil && *e.SlotID == *cand.SlotID {
				return apperrors.NewScheduleConflictError(cand.CourseCode, e.CourseCode, e.SlotLabel)
			}
		}
	}

	var current float64
	for _, e := range existing {
		current += e.Credits
	}

	attempted := current + cand.Credits
	if attempted > ceiling {
		return apperrors.NewCreditLimitError(current, attempted, ceiling)
	}

	return nil
}
