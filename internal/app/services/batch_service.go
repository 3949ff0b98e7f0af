package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/acadsys/aims/internal/app/models"
	"github.com/acadsys/aims/internal/app/models/dto"
	"github.com/acadsys/aims/internal/app/repositories"
	"github.com/acadsys/aims/internal/pkg/grades"
)

// BatchStore is the persistence surface for batch operations.
type BatchStore interface {
	EnrollCohort(ctx context.Context, courseID, termID int64, offeringID *int64, batch int) (int64, error)
	FindByEntryCourseTerm(ctx context.Context, entryNo string, courseID, termID int64) (*repositories.EnrollmentRow, error)
	SetGrade(ctx context.Context, id int64, grade string, gradePoints, creditsEarned *float64) error
}

// OfferingFinder resolves the offering backing a (course, term) pair.
type OfferingFinder interface {
	FindIDByCourseTerm(ctx context.Context, courseID, termID int64) (*int64, error)
}

// TermStore supplies term lookups.
type TermStore interface {
	GetByID(ctx context.Context, id int64) (*models.AcademicTerm, error)
}

// BatchService applies enrollment or grading across many students,
// collecting per-record outcomes without aborting the whole batch.
type BatchService interface {
	EnrollCohort(ctx context.Context, courseID, termID int64, batch int) (int64, error)
	UploadGrades(ctx context.Context, courseID, termID int64, entries []dto.GradeEntry) (*dto.UploadGradesResponse, error)
}

// batchServiceImpl implements the BatchService interface
type batchServiceImpl struct {
	store     BatchStore
	courses   CourseStore
	terms     TermStore
	offerings OfferingFinder
	logger    zerolog.Logger
}

// NewBatchService creates a new batch service instance
func NewBatchService(store BatchStore, courses CourseStore, terms TermStore, offerings OfferingFinder, logger zerolog.Logger) BatchService {
	return &batchServiceImpl{
		store:     store,
		courses:   courses,
		terms:     terms,
		offerings: offerings,
		logger:    logger,
	}
}

// EnrollCohort enrolls every student of an admission-year batch into the
// course as APPROVED. Eligibility checks are intentionally bypassed here;
// the bypass is logged because cohort-enrolled students can exceed limits
// individual requests cannot.
func (s *batchServiceImpl) EnrollCohort(ctx context.Context, courseID, termID int64, batch int) (int64, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return 0, err
	}
	if _, err := s.terms.GetByID(ctx, termID); err != nil {
		return 0, err
	}

	offeringID, err := s.offerings.FindIDByCourseTerm(ctx, courseID, termID)
	if err != nil {
		return 0, err
	}

	count, err := s.store.EnrollCohort(ctx, courseID, termID, offeringID, batch)
	if err != nil {
		return 0, fmt.Errorf("error enrolling cohort: %w", err)
	}

	s.logger.Warn().
		Str("course", course.Code).
		Int64("termId", termID).
		Int("batch", batch).
		Int64("enrolled", count).
		Msg("Cohort enrolled, eligibility checks bypassed")

	return count, nil
}

// UploadGrades applies a grade roster entry by entry. A bad row records a
// failure reason and never aborts the rest; the result covers every input
// entry exactly once.
func (s *batchServiceImpl) UploadGrades(ctx context.Context, courseID, termID int64, entries []dto.GradeEntry) (*dto.UploadGradesResponse, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if _, err := s.terms.GetByID(ctx, termID); err != nil {
		return nil, err
	}

	result := &dto.UploadGradesResponse{
		Succeeded: make([]dto.GradeEntry, 0, len(entries)),
		Failed:    make([]dto.GradeEntryFailure, 0),
	}

	for _, entry := range entries {
		letter := grades.Normalize(entry.Grade)
		if !grades.Valid(letter) {
			result.Failed = append(result.Failed, dto.GradeEntryFailure{
				EntryNo: entry.EntryNo,
				Grade:   entry.Grade,
				Reason:  "unknown grade letter",
			})
			continue
		}

		row, err := s.store.FindByEntryCourseTerm(ctx, entry.EntryNo, courseID, termID)
		if err != nil {
			reason := "no enrollment found for entry number"
			if !errIsNotFound(err) {
				reason = err.Error()
			}
			result.Failed = append(result.Failed, dto.GradeEntryFailure{
				EntryNo: entry.EntryNo,
				Grade:   entry.Grade,
				Reason:  reason,
			})
			continue
		}

		var gradePoints, creditsEarned *float64
		if points, countable := grades.Points(letter); countable {
			gradePoints = &points
			earned := course.Credits
			if grades.Failing(letter) {
				earned = 0
			}
			creditsEarned = &earned
		}

		if err := s.store.SetGrade(ctx, row.ID, letter, gradePoints, creditsEarned); err != nil {
			result.Failed = append(result.Failed, dto.GradeEntryFailure{
				EntryNo: entry.EntryNo,
				Grade:   entry.Grade,
				Reason:  err.Error(),
			})
			continue
		}

		result.Succeeded = append(result.Succeeded, dto.GradeEntry{EntryNo: entry.EntryNo, Grade: letter})
	}

	s.logger.Info().
		Str("course", course.Code).
		Int64("termId", termID).
		Int("succeeded", len(result.Succeeded)).
		Int("failed", len(result.Failed)).
		Msg("Grade roster processed")

	return result, nil
}
