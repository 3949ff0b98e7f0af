package models

// Student defines the student model based on the 'students' table
type Student struct {
	ID           int64  `json:"id" db:"id" example:"1"`                       // Unique identifier for the student record
	UserID       int64  `json:"userId" db:"user_id" example:"5"`              // ID of the associated user account
	EntryNo      string `json:"entryNo" db:"entry_no" example:"2023CSB1103"`  // Institute entry number, unique
	Batch        int    `json:"batch" db:"batch" example:"2023"`              // Admission year cohort
	DepartmentID int64  `json:"departmentId" db:"department_id" example:"2"`  // Home department
	AdvisorID    *int64 `json:"advisorId,omitempty" db:"advisor_id"`          // Faculty advisor user id (nullable)

	// Relations (populated when needed)
	User       *User       `json:"user,omitempty"`       // Associated user information
	Department *Department `json:"department,omitempty"` // Associated department
}
