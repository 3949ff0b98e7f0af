package dto

import (
	"time"
)

// CreateTermRequest creates a new academic term
type CreateTermRequest struct {
	Code      string    `json:"code" binding:"required"`
	Name      string    `json:"name" binding:"required"`
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`
}

// TermResponse represents an academic term
type TermResponse struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	IsCurrent bool      `json:"isCurrent"`
}

// TermListResponse wraps a set of terms
type TermListResponse struct {
	Terms []TermResponse `json:"terms"`
}

// SlotResponse represents a timeslot
type SlotResponse struct {
	ID     int64   `json:"id"`
	Label  string  `json:"label"`
	Timing *string `json:"timing,omitempty"`
}

// DepartmentResponse represents a department
type DepartmentResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// CreateCourseRequest adds a course to the catalog
type CreateCourseRequest struct {
	DepartmentID int64   `json:"departmentId" binding:"required,min=1"`
	Code         string  `json:"code" binding:"required"`
	Name         string  `json:"name" binding:"required"`
	Description  *string `json:"description,omitempty"`
	Credits      float64 `json:"credits" binding:"required,gt=0"`
}
