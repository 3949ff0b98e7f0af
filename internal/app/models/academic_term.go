package models

import (
	"time"
)

// AcademicTerm represents a named academic period ("session").
// At most one term is marked current system-wide at any time.
type AcademicTerm struct {
	ID        int64     `json:"id" db:"id"`
	Code      string    `json:"code" db:"code" example:"2025-II"` // Unique term code
	Name      string    `json:"name" db:"name" example:"Second Semester 2025-26"`
	StartDate time.Time `json:"startDate" db:"start_date"`
	EndDate   time.Time `json:"endDate" db:"end_date"`
	IsCurrent bool      `json:"isCurrent" db:"is_current"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
