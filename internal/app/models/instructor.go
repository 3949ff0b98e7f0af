package models

// Instructor defines the instructor model based on the 'instructors' table
type Instructor struct {
	ID           int64  `json:"id" db:"id"`
	UserID       int64  `json:"userId" db:"user_id"`
	DepartmentID int64  `json:"departmentId" db:"department_id"`
	Title        string `json:"title" db:"title"`

	// Relations (populated when needed)
	User       *User       `json:"user,omitempty"`
	Department *Department `json:"department,omitempty"`
}
