package services

import (
	"context"
	"fmt"

	"github.com/acadsys/aims/internal/app/models/dto"
	"github.com/acadsys/aims/internal/app/repositories"
)

// RecordStore supplies the enrollment rows the record builder reads.
type RecordStore interface {
	ListForRecord(ctx context.Context, studentID int64) ([]*repositories.EnrollmentRow, error)
}

// RecordService produces student grade cards
type RecordService interface {
	AcademicRecord(ctx context.Context, studentUserID int64) (*dto.AcademicRecordResponse, error)
}

// recordServiceImpl implements the RecordService interface
type recordServiceImpl struct {
	store    RecordStore
	students StudentStore
}

// NewRecordService creates a new record service instance
func NewRecordService(store RecordStore, students StudentStore) RecordService {
	return &recordServiceImpl{
		store:    store,
		students: students,
	}
}

// AcademicRecord builds the student's grade card: per-term SGPA, running
// CGPA and credit totals over their approved enrollments.
func (s *recordServiceImpl) AcademicRecord(ctx context.Context, studentUserID int64) (*dto.AcademicRecordResponse, error) {
	student, err := s.students.GetByUserID(ctx, studentUserID)
	if err != nil {
		return nil, err
	}

	rows, err := s.store.ListForRecord(ctx, student.ID)
	if err != nil {
		return nil, fmt.Errorf("error loading enrollment history: %w", err)
	}

	courses := make([]RecordCourse, 0, len(rows))
	for _, row := range rows {
		courses = append(courses, RecordCourse{
			TermCode:      row.TermCode,
			Status:        row.Status,
			CourseCode:    row.CourseCode,
			CourseName:    row.CourseName,
			Credits:       row.Credits,
			Grade:         row.Grade,
			GradePoints:   row.GradePoints,
			CreditsEarned: row.CreditsEarned,
		})
	}

	terms := BuildAcademicRecord(courses)

	record := &dto.AcademicRecordResponse{
		StudentID: student.ID,
		EntryNo:   student.EntryNo,
		Terms:     terms,
	}
	if len(terms) > 0 {
		last := terms[len(terms)-1]
		record.CGPA = last.CGPA
		record.TotalCredits = last.CumulativeCredits
	}

	return record, nil
}
