package models

import (
	"time"
)

// ProposalStatus defines the decision status of an offering proposal
type ProposalStatus string

const (
	ProposalPending  ProposalStatus = "Pending"
	ProposalApproved ProposalStatus = "Approved"
	ProposalRejected ProposalStatus = "Rejected"
)

// OfferingProposal is a pending request by an instructor to create a
// course offering, awaiting an admin decision. Status moves exactly once,
// Pending to Approved or Pending to Rejected.
type OfferingProposal struct {
	ID            int64          `json:"id" db:"id"`
	CourseID      int64          `json:"courseId" db:"course_id"`
	TermID        int64          `json:"termId" db:"term_id"`
	DepartmentID  int64          `json:"departmentId" db:"department_id"`
	SlotID        *int64         `json:"slotId,omitempty" db:"slot_id"` // Nullable, nil means TBA
	Section       string         `json:"section" db:"section"`
	ProposedBy    int64          `json:"proposedBy" db:"proposed_by"`             // Proposing instructor id
	InstructorIDs []int64        `json:"instructorIds" db:"instructor_ids"`       // First id becomes coordinator on approval
	Status        ProposalStatus `json:"status" db:"status"`
	DecidedBy     *int64         `json:"decidedBy,omitempty" db:"decided_by"`     // Deciding admin user id (nullable)
	DecidedAt     *time.Time     `json:"decidedAt,omitempty" db:"decided_at"`
	CreatedAt     time.Time      `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Course *Course       `json:"course,omitempty"`
	Term   *AcademicTerm `json:"term,omitempty"`
	Slot   *Slot         `json:"slot,omitempty"`
}
