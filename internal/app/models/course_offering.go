package models

import (
	"time"
)

// OfferingStatus defines the lifecycle status of a course offering
type OfferingStatus string

const (
	OfferingProposed  OfferingStatus = "Proposed"
	OfferingOffered   OfferingStatus = "Offered"
	OfferingWithdrawn OfferingStatus = "Withdrawn"
)

// IsValid reports whether the status is one of the known offering states.
func (s OfferingStatus) IsValid() bool {
	switch s {
	case OfferingProposed, OfferingOffered, OfferingWithdrawn:
		return true
	}
	return false
}

// CourseOffering represents one scheduled instance of a course in one
// academic term, owned by a department and optionally bound to a slot.
type CourseOffering struct {
	ID           int64          `json:"id" db:"id"`
	CourseID     int64          `json:"courseId" db:"course_id"`
	TermID       int64          `json:"termId" db:"term_id"`
	DepartmentID int64          `json:"departmentId" db:"department_id"`
	SlotID       *int64         `json:"slotId,omitempty" db:"slot_id"` // Nullable, nil means TBA
	Section      string         `json:"section" db:"section"`
	Status       OfferingStatus `json:"status" db:"status"`
	CreatedAt    time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time      `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Course     *Course       `json:"course,omitempty"`
	Term       *AcademicTerm `json:"term,omitempty"`
	Department *Department   `json:"department,omitempty"`
	Slot       *Slot         `json:"slot,omitempty"`
}

// CourseInstructor assigns an instructor to an offering. Exactly one
// assignment per offering is flagged coordinator.
type CourseInstructor struct {
	ID            int64 `json:"id" db:"id"`
	OfferingID    int64 `json:"offeringId" db:"offering_id"`
	InstructorID  int64 `json:"instructorId" db:"instructor_id"`
	IsCoordinator bool  `json:"isCoordinator" db:"is_coordinator"`

	// Relations (populated when needed)
	Instructor *Instructor `json:"instructor,omitempty"`
}
