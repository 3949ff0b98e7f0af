package models

// Slot represents a named timeslot. Two offerings sharing a slot cannot
// both be taken by the same student in the same term.
type Slot struct {
	ID     int64   `json:"id" db:"id"`
	Label  string  `json:"label" db:"label" example:"3"`
	Timing *string `json:"timing,omitempty" db:"timing" example:"Mon/Wed/Fri 10:00-10:50"` // Nullable display schedule
}
