package services

import (
	"math"
	"sort"

	"github.com/acadsys/aims/internal/app/models"
	"github.com/acadsys/aims/internal/app/models/dto"
	"github.com/acadsys/aims/internal/pkg/grades"
	"github.com/acadsys/aims/internal/pkg/termcode"
)

// RecordCourse is one enrollment row as seen by the scoring engine.
type RecordCourse struct {
	TermCode      string
	Status        models.EnrollmentStatus
	CourseCode    string
	CourseName    string
	Credits       float64
	Grade         *string
	GradePoints   *float64
	CreditsEarned *float64
}

// BuildAcademicRecord computes per-term SGPA and running CGPA from a
// student's enrollment rows. Only approved records appear on the card;
// pending and rejected ones are filtered out, withdrawn ones excluded.
// Terms are ordered chronologically by term code, never lexically.
// A term with no countable graded courses gets nil SGPA; CGPA stays nil
// until something countable has been graded.
func BuildAcademicRecord(rows []RecordCourse) []dto.TermRecordResponse {
	byTerm := make(map[string][]RecordCourse)
	var codes []string
	for _, row := range rows {
		if row.Status != models.EnrollmentApproved {
			continue
		}
		if _, seen := byTerm[row.TermCode]; !seen {
			codes = append(codes, row.TermCode)
		}
		byTerm[row.TermCode] = append(byTerm[row.TermCode], row)
	}

	sort.Slice(codes, func(i, j int) bool {
		return termcode.Less(codes[i], codes[j])
	})

	var records []dto.TermRecordResponse
	var cumulativeCredits float64
	var cumulativeWeighted float64
	var cumulativeGraded float64

	for _, code := range codes {
		var termWeighted, termGraded float64
		var creditsRegistered, creditsEarned float64
		var courses []dto.CourseGradeLine

		for _, row := range byTerm[code] {
			creditsRegistered += row.Credits
			if row.CreditsEarned != nil {
				creditsEarned += *row.CreditsEarned
			}

			courses = append(courses, dto.CourseGradeLine{
				CourseCode:    row.CourseCode,
				CourseName:    row.CourseName,
				Credits:       row.Credits,
				Grade:         row.Grade,
				GradePoints:   row.GradePoints,
				CreditsEarned: row.CreditsEarned,
			})

			credits, points, ok := gradedWeight(row)
			if !ok {
				continue
			}
			termWeighted += credits * points
			termGraded += credits
		}

		cumulativeCredits += creditsEarned
		cumulativeWeighted += termWeighted
		cumulativeGraded += termGraded

		records = append(records, dto.TermRecordResponse{
			TermCode:          code,
			SGPA:              average(termWeighted, termGraded),
			CGPA:              average(cumulativeWeighted, cumulativeGraded),
			CreditsRegistered: creditsRegistered,
			CreditsEarned:     creditsEarned,
			CumulativeCredits: cumulativeCredits,
			Courses:           courses,
		})
	}

	return records
}

// gradedWeight returns the credit weight and point value a row contributes
// to GPA arithmetic, or ok=false when the row is excluded (ungraded, or an
// I/W/NP marker).
func gradedWeight(row RecordCourse) (credits, points float64, ok bool) {
	if row.Grade == nil {
		return 0, 0, false
	}

	if row.GradePoints != nil {
		points = *row.GradePoints
	} else {
		var countable bool
		points, countable = grades.Points(*row.Grade)
		if !countable {
			return 0, 0, false
		}
	}

	if !grades.Countable(*row.Grade) {
		return 0, 0, false
	}

	credits = row.Credits
	if row.CreditsEarned != nil && *row.CreditsEarned > 0 {
		credits = *row.CreditsEarned
	}

	return credits, points, true
}

// average returns the credit-weighted average rounded to two decimals, or
// nil when nothing was graded so callers can distinguish "no graded
// courses" from a literal zero GPA.
func average(weighted, credits float64) *float64 {
	if credits == 0 {
		return nil
	}
	avg := math.Round(weighted/credits*100) / 100
	return &avg
}
