package models

import (
	"time"

	"github.com/acadsys/aims/internal/pkg/apperrors"
)

// EnrollmentStatus defines the approval pipeline status of an enrollment.
// The closed set below is the only representation used anywhere; transitions
// go through NextStatus.
type EnrollmentStatus string

const (
	EnrollmentPendingInstructor  EnrollmentStatus = "PENDING_INSTRUCTOR"
	EnrollmentPendingAdvisor     EnrollmentStatus = "PENDING_ADVISOR"
	EnrollmentApproved           EnrollmentStatus = "APPROVED"
	EnrollmentRejectedInstructor EnrollmentStatus = "REJECTED_INSTRUCTOR"
	EnrollmentRejectedAdvisor    EnrollmentStatus = "REJECTED_ADVISOR"
	EnrollmentWithdrawn          EnrollmentStatus = "WITHDRAWN"
)

// IsValid reports whether the status is one of the known enrollment states.
func (s EnrollmentStatus) IsValid() bool {
	switch s {
	case EnrollmentPendingInstructor, EnrollmentPendingAdvisor, EnrollmentApproved,
		EnrollmentRejectedInstructor, EnrollmentRejectedAdvisor, EnrollmentWithdrawn:
		return true
	}
	return false
}

// Active reports whether the enrollment counts against the student's
// schedule: it holds a slot and consumes credits for eligibility checks.
func (s EnrollmentStatus) Active() bool {
	switch s {
	case EnrollmentPendingInstructor, EnrollmentPendingAdvisor, EnrollmentApproved:
		return true
	}
	return false
}

// Rejected reports whether the status is a terminal rejection.
func (s EnrollmentStatus) Rejected() bool {
	return s == EnrollmentRejectedInstructor || s == EnrollmentRejectedAdvisor
}

// NextStatus returns the status an enrollment moves to when the given actor
// approves or rejects it. Illegal actor/state combinations fail with an
// authorization error that carries the current status, so the caller can
// report "already processed at a different stage" instead of a generic denial.
func NextStatus(current EnrollmentStatus, actor RoleType, approve bool) (EnrollmentStatus, error) {
	switch actor {
	case RoleInstructor:
		if current != EnrollmentPendingInstructor {
			return "", apperrors.NewStateError(string(current), "enrollment is not awaiting instructor decision")
		}
		if approve {
			return EnrollmentPendingAdvisor, nil
		}
		return EnrollmentRejectedInstructor, nil

	case RoleAdvisor:
		if current != EnrollmentPendingAdvisor {
			return "", apperrors.NewStateError(string(current), "enrollment is not awaiting advisor decision")
		}
		if approve {
			return EnrollmentApproved, nil
		}
		return EnrollmentRejectedAdvisor, nil

	default:
		return "", apperrors.NewStateError(string(current), "role cannot decide enrollment requests")
	}
}

// Enrollment represents one student's relationship to one course in one
// term. Grade and GradePoints are set together or both nil.
type Enrollment struct {
	ID            int64            `json:"id" db:"id"`
	StudentID     int64            `json:"studentId" db:"student_id"`
	CourseID      int64            `json:"courseId" db:"course_id"`
	TermID        int64            `json:"termId" db:"term_id"`
	OfferingID    *int64           `json:"offeringId,omitempty" db:"offering_id"` // Resolved offering reference (nullable)
	Status        EnrollmentStatus `json:"status" db:"status"`
	Grade         *string          `json:"grade,omitempty" db:"grade"`
	GradePoints   *float64         `json:"gradePoints,omitempty" db:"grade_points"`
	CreditsEarned *float64         `json:"creditsEarned,omitempty" db:"credits_earned"`
	CreatedAt     time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time        `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Student *Student      `json:"student,omitempty"`
	Course  *Course       `json:"course,omitempty"`
	Term    *AcademicTerm `json:"term,omitempty"`
}
