package dto

import (
	"time"
)

// EnrollRequest represents a student's enrollment request for an offering
type EnrollRequest struct {
	OfferingID int64 `json:"offeringId" binding:"required,min=1"`
}

// DecideRequest carries an instructor or advisor decision on a pending request
type DecideRequest struct {
	Decision string `json:"decision" binding:"required,oneof=approve reject"`
}

// OverrideRequest carries an admin status override, outside the staged pipeline
type OverrideRequest struct {
	Status string `json:"status" binding:"required"`
}

// EnrollCohortRequest enrolls a whole admission-year cohort into a course
type EnrollCohortRequest struct {
	CourseID int64 `json:"courseId" binding:"required,min=1"`
	TermID   int64 `json:"termId" binding:"required,min=1"`
	Batch    int   `json:"batch" binding:"required,min=1900"`
}

// EnrollCohortResponse reports how many records the cohort enrollment created
type EnrollCohortResponse struct {
	Enrolled int64 `json:"enrolled"`
}

// EnrollmentResponse represents one enrollment with its course context
type EnrollmentResponse struct {
	ID            int64     `json:"id"`
	StudentID     int64     `json:"studentId"`
	EntryNo       string    `json:"entryNo,omitempty"`
	StudentName   string    `json:"studentName,omitempty"`
	CourseID      int64     `json:"courseId"`
	CourseCode    string    `json:"courseCode"`
	CourseName    string    `json:"courseName"`
	Credits       float64   `json:"credits"`
	TermCode      string    `json:"termCode"`
	SlotLabel     *string   `json:"slotLabel,omitempty"`
	Status        string    `json:"status"`
	Grade         *string   `json:"grade,omitempty"`
	GradePoints   *float64  `json:"gradePoints,omitempty"`
	CreditsEarned *float64  `json:"creditsEarned,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// EnrollmentListResponse wraps a set of enrollments
type EnrollmentListResponse struct {
	Enrollments []EnrollmentResponse `json:"enrollments"`
}
