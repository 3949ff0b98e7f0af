package dto

import (
	"time"
)

// ProposeOfferingRequest represents an instructor's offering proposal
type ProposeOfferingRequest struct {
	CourseID      int64   `json:"courseId" binding:"required,min=1"`
	TermID        int64   `json:"termId" binding:"required,min=1"`
	DepartmentID  int64   `json:"departmentId" binding:"required,min=1"`
	SlotID        *int64  `json:"slotId,omitempty"`
	Section       string  `json:"section"`
	InstructorIDs []int64 `json:"instructorIds" binding:"required,min=1"`
}

// DecideProposalRequest carries the admin decision on a proposal
type DecideProposalRequest struct {
	Decision string `json:"decision" binding:"required,oneof=approve reject"`
}

// CreateOfferingRequest creates an offering directly, without a proposal
type CreateOfferingRequest struct {
	CourseID     int64  `json:"courseId" binding:"required,min=1"`
	TermID       int64  `json:"termId" binding:"required,min=1"`
	DepartmentID int64  `json:"departmentId" binding:"required,min=1"`
	SlotID       *int64 `json:"slotId,omitempty"`
	Section      string `json:"section"`
}

// OfferingInstructorResponse is one instructor assignment on an offering
type OfferingInstructorResponse struct {
	InstructorID  int64  `json:"instructorId"`
	Name          string `json:"name,omitempty"`
	IsCoordinator bool   `json:"isCoordinator"`
}

// OfferingResponse represents a course offering with catalog context
type OfferingResponse struct {
	ID          int64                        `json:"id"`
	CourseID    int64                        `json:"courseId"`
	CourseCode  string                       `json:"courseCode"`
	CourseName  string                       `json:"courseName"`
	Credits     float64                      `json:"credits"`
	TermCode    string                       `json:"termCode"`
	Department  string                       `json:"department"`
	SlotLabel   *string                      `json:"slotLabel,omitempty"`
	Section     string                       `json:"section"`
	Status      string                       `json:"status"`
	Instructors []OfferingInstructorResponse `json:"instructors,omitempty"`
}

// OfferingListResponse wraps a set of offerings
type OfferingListResponse struct {
	Offerings []OfferingResponse `json:"offerings"`
}

// ProposalResponse represents an offering proposal
type ProposalResponse struct {
	ID            int64      `json:"id"`
	CourseID      int64      `json:"courseId"`
	CourseCode    string     `json:"courseCode,omitempty"`
	TermID        int64      `json:"termId"`
	TermCode      string     `json:"termCode,omitempty"`
	DepartmentID  int64      `json:"departmentId"`
	SlotID        *int64     `json:"slotId,omitempty"`
	Section       string     `json:"section"`
	ProposedBy    int64      `json:"proposedBy"`
	InstructorIDs []int64    `json:"instructorIds"`
	Status        string     `json:"status"`
	DecidedBy     *int64     `json:"decidedBy,omitempty"`
	DecidedAt     *time.Time `json:"decidedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// ProposalListResponse wraps a set of proposals
type ProposalListResponse struct {
	Proposals []ProposalResponse `json:"proposals"`
}
