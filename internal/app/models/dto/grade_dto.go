package dto

// RecordGradeRequest sets the grade on a single enrollment
type RecordGradeRequest struct {
	Grade string `json:"grade" binding:"required"`
}

// GradeEntry is one row of a bulk grade upload
type GradeEntry struct {
	EntryNo string `json:"entryNo" binding:"required"`
	Grade   string `json:"grade" binding:"required"`
}

// UploadGradesRequest represents a bulk grade upload for one course and term
type UploadGradesRequest struct {
	CourseID int64        `json:"courseId" binding:"required,min=1"`
	TermID   int64        `json:"termId" binding:"required,min=1"`
	Entries  []GradeEntry `json:"entries" binding:"required,min=1,dive"`
}

// GradeEntryFailure records why one upload entry could not be applied
type GradeEntryFailure struct {
	EntryNo string `json:"entryNo"`
	Grade   string `json:"grade"`
	Reason  string `json:"reason"`
}

// UploadGradesResponse partitions every input entry into succeeded or failed
type UploadGradesResponse struct {
	Succeeded []GradeEntry        `json:"succeeded"`
	Failed    []GradeEntryFailure `json:"failed"`
}

// CourseGradeLine is one course row on a student's grade card
type CourseGradeLine struct {
	CourseCode    string   `json:"courseCode"`
	CourseName    string   `json:"courseName"`
	Credits       float64  `json:"credits"`
	Grade         *string  `json:"grade,omitempty"`
	GradePoints   *float64 `json:"gradePoints,omitempty"`
	CreditsEarned *float64 `json:"creditsEarned,omitempty"`
}

// TermRecordResponse is the per-term section of a student's academic record
type TermRecordResponse struct {
	TermCode          string            `json:"termCode"`
	SGPA              *float64          `json:"sgpa"` // nil when no graded courses
	CGPA              *float64          `json:"cgpa"` // nil when nothing graded so far
	CreditsRegistered float64           `json:"creditsRegistered"`
	CreditsEarned     float64           `json:"creditsEarned"`
	CumulativeCredits float64           `json:"cumulativeCredits"`
	Courses           []CourseGradeLine `json:"courses"`
}

// AcademicRecordResponse is a student's full grade card
type AcademicRecordResponse struct {
	StudentID    int64                `json:"studentId"`
	EntryNo      string               `json:"entryNo"`
	CGPA         *float64             `json:"cgpa"` // overall, nil when nothing graded
	TotalCredits float64              `json:"totalCredits"`
	Terms        []TermRecordResponse `json:"terms"`
}
