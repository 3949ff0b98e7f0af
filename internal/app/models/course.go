package models

// Course represents a course in the catalog.
type Course struct {
	ID           int64   `json:"id" db:"id"`
	DepartmentID int64   `json:"departmentId" db:"department_id"`
	Code         string  `json:"code" db:"code" example:"CS201"`
	Name         string  `json:"name" db:"name" example:"Data Structures"`
	Description  *string `json:"description,omitempty" db:"description"` // Nullable
	Credits      float64 `json:"credits" db:"credits" example:"4"`

	// Relations (populated when needed)
	Department *Department `json:"department,omitempty"`
}
