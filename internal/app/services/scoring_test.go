package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acadsys/aims/internal/app/models"
)

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }

func approvedRow(term, course string, credits float64, grade *string, earned *float64) RecordCourse {
	return RecordCourse{
		TermCode:      term,
		Status:        models.EnrollmentApproved,
		CourseCode:    course,
		CourseName:    course,
		Credits:       credits,
		Grade:         grade,
		CreditsEarned: earned,
	}
}

func TestBuildAcademicRecord_SingleTerm(t *testing.T) {
	rows := []RecordCourse{
		approvedRow("2025-I", "CS201", 4, strPtr("A"), f64Ptr(4)),  // 10 points
		approvedRow("2025-I", "MA202", 3, strPtr("B"), f64Ptr(3)),  // 7 points
	}

	records := BuildAcademicRecord(rows)
	require.Len(t, records, 1)

	term := records[0]
	assert.Equal(t, "2025-I", term.TermCode)
	require.NotNil(t, term.SGPA)
	// (4*10 + 3*7) / 7 = 61/7 = 8.714... -> 8.71
	assert.InDelta(t, 8.71, *term.SGPA, 0.001)
	require.NotNil(t, term.CGPA)
	assert.Equal(t, *term.SGPA, *term.CGPA)
	assert.Equal(t, 7.0, term.CreditsRegistered)
	assert.Equal(t, 7.0, term.CreditsEarned)
	assert.Len(t, term.Courses, 2)
}

func TestBuildAcademicRecord_ChronologicalNotLexical(t *testing.T) {
	// Insertion order deliberately scrambled; "2025-II" must come after
	// "2025-I" and before "2026-I".
	rows := []RecordCourse{
		approvedRow("2026-I", "CS401", 4, strPtr("B"), f64Ptr(4)),
		approvedRow("2025-I", "CS201", 4, strPtr("A"), f64Ptr(4)),
		approvedRow("2025-II", "CS301", 4, strPtr("C"), f64Ptr(4)),
	}

	records := BuildAcademicRecord(rows)
	require.Len(t, records, 3)
	assert.Equal(t, "2025-I", records[0].TermCode)
	assert.Equal(t, "2025-II", records[1].TermCode)
	assert.Equal(t, "2026-I", records[2].TermCode)

	// CGPA accumulates in that order: 10, then (10+4)/2=7, then (10+4+7)/3=7.
	require.NotNil(t, records[0].CGPA)
	assert.InDelta(t, 10.0, *records[0].CGPA, 0.001)
	require.NotNil(t, records[1].CGPA)
	assert.InDelta(t, 7.0, *records[1].CGPA, 0.001)
	require.NotNil(t, records[2].CGPA)
	assert.InDelta(t, 7.0, *records[2].CGPA, 0.001)
}

func TestBuildAcademicRecord_ExcludesPendingAndRejected(t *testing.T) {
	rows := []RecordCourse{
		approvedRow("2025-I", "CS201", 4, strPtr("A"), f64Ptr(4)),
		{TermCode: "2025-I", Status: models.EnrollmentPendingAdvisor, CourseCode: "MA202", Credits: 3},
		{TermCode: "2025-I", Status: models.EnrollmentRejectedInstructor, CourseCode: "EE203", Credits: 3},
		{TermCode: "2025-I", Status: models.EnrollmentWithdrawn, CourseCode: "HS101", Credits: 3},
	}

	records := BuildAcademicRecord(rows)
	require.Len(t, records, 1)
	assert.Len(t, records[0].Courses, 1)
	assert.Equal(t, 4.0, records[0].CreditsRegistered)
}

func TestBuildAcademicRecord_UngradedTermHasNilSGPA(t *testing.T) {
	rows := []RecordCourse{
		approvedRow("2025-I", "CS201", 4, nil, nil),
	}

	records := BuildAcademicRecord(rows)
	require.Len(t, records, 1)
	assert.Nil(t, records[0].SGPA)
	assert.Nil(t, records[0].CGPA)
	assert.Equal(t, 4.0, records[0].CreditsRegistered)
}

func TestBuildAcademicRecord_IncompleteAndWithdrawnGradesExcluded(t *testing.T) {
	rows := []RecordCourse{
		approvedRow("2025-I", "CS201", 4, strPtr("A"), f64Ptr(4)),
		approvedRow("2025-I", "MA202", 3, strPtr("I"), nil),
		approvedRow("2025-I", "EE203", 3, strPtr("W"), nil),
	}

	records := BuildAcademicRecord(rows)
	require.Len(t, records, 1)
	require.NotNil(t, records[0].SGPA)
	assert.InDelta(t, 10.0, *records[0].SGPA, 0.001)
	// The I and W rows still appear on the card.
	assert.Len(t, records[0].Courses, 3)
}

func TestBuildAcademicRecord_FailedCourseCountsAtZero(t *testing.T) {
	rows := []RecordCourse{
		approvedRow("2025-I", "CS201", 4, strPtr("A"), f64Ptr(4)),
		approvedRow("2025-I", "MA202", 4, strPtr("F"), f64Ptr(0)),
	}

	records := BuildAcademicRecord(rows)
	require.Len(t, records, 1)
	require.NotNil(t, records[0].SGPA)
	// (4*10 + 4*0) / 8 = 5.0
	assert.InDelta(t, 5.0, *records[0].SGPA, 0.001)
	assert.Equal(t, 4.0, records[0].CreditsEarned)
}

func TestBuildAcademicRecord_StoredPointsPreferredOverPolicy(t *testing.T) {
	grade := strPtr("A")
	rows := []RecordCourse{
		{
			TermCode:      "2025-I",
			Status:        models.EnrollmentApproved,
			CourseCode:    "CS201",
			Credits:       4,
			Grade:         grade,
			GradePoints:   f64Ptr(9), // stored value wins over the table's 10
			CreditsEarned: f64Ptr(4),
		},
	}

	records := BuildAcademicRecord(rows)
	require.Len(t, records, 1)
	require.NotNil(t, records[0].SGPA)
	assert.InDelta(t, 9.0, *records[0].SGPA, 0.001)
}

func TestBuildAcademicRecord_Empty(t *testing.T) {
	assert.Empty(t, BuildAcademicRecord(nil))
}

func TestBuildAcademicRecord_CumulativeCredits(t *testing.T) {
	rows := []RecordCourse{
		approvedRow("2025-I", "CS201", 4, strPtr("A"), f64Ptr(4)),
		approvedRow("2025-II", "CS301", 3, strPtr("B"), f64Ptr(3)),
	}

	records := BuildAcademicRecord(rows)
	require.Len(t, records, 2)
	assert.Equal(t, 4.0, records[0].CumulativeCredits)
	assert.Equal(t, 7.0, records[1].CumulativeCredits)
}
