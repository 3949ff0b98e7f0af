package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acadsys/aims/internal/app/models"
	"github.com/acadsys/aims/internal/app/models/dto"
	"github.com/acadsys/aims/internal/app/repositories"
	"github.com/acadsys/aims/internal/pkg/apperrors"
)

type fakeBatchStore struct {
	byEntry     map[string]*repositories.EnrollmentRow
	grades      map[int64]string
	gradePoints map[int64]*float64
	earned      map[int64]*float64
	cohortCount int64
	cohortCalls int
}

func (f *fakeBatchStore) EnrollCohort(_ context.Context, _, _ int64, _ *int64, _ int) (int64, error) {
	f.cohortCalls++
	return f.cohortCount, nil
}

func (f *fakeBatchStore) FindByEntryCourseTerm(_ context.Context, entryNo string, _, _ int64) (*repositories.EnrollmentRow, error) {
	row, ok := f.byEntry[entryNo]
	if !ok {
		return nil, apperrors.ErrEnrollmentNotFound
	}
	return row, nil
}

func (f *fakeBatchStore) SetGrade(_ context.Context, id int64, grade string, gradePoints, creditsEarned *float64) error {
	f.grades[id] = grade
	f.gradePoints[id] = gradePoints
	f.earned[id] = creditsEarned
	return nil
}

type fakeTermStore struct {
	byID map[int64]*models.AcademicTerm
}

func (f *fakeTermStore) GetByID(_ context.Context, id int64) (*models.AcademicTerm, error) {
	term, ok := f.byID[id]
	if !ok {
		return nil, apperrors.ErrTermNotFound
	}
	return term, nil
}

type fakeOfferingFinder struct {
	id *int64
}

func (f *fakeOfferingFinder) FindIDByCourseTerm(context.Context, int64, int64) (*int64, error) {
	return f.id, nil
}

func enrollmentRow(id int64, entryNo string) *repositories.EnrollmentRow {
	row := &repositories.EnrollmentRow{}
	row.ID = id
	row.EntryNo = entryNo
	row.Status = models.EnrollmentApproved
	return row
}

func newBatchService(t *testing.T, store *fakeBatchStore) BatchService {
	t.Helper()

	courses := &fakeCourseStore{
		byID: map[int64]*models.Course{1: {ID: 1, Code: "CS201", Credits: 4}},
	}
	terms := &fakeTermStore{
		byID: map[int64]*models.AcademicTerm{1: {ID: 1, Code: "2025-II"}},
	}
	offeringID := int64(100)
	return NewBatchService(store, courses, terms, &fakeOfferingFinder{id: &offeringID}, zerolog.Nop())
}

func TestUploadGrades_PartitionsEveryEntry(t *testing.T) {
	store := &fakeBatchStore{
		byEntry: map[string]*repositories.EnrollmentRow{
			"2023CSB1101": enrollmentRow(1, "2023CSB1101"),
			"2023CSB1102": enrollmentRow(2, "2023CSB1102"),
		},
		grades:      make(map[int64]string),
		gradePoints: make(map[int64]*float64),
		earned:      make(map[int64]*float64),
	}
	svc := newBatchService(t, store)

	entries := []dto.GradeEntry{
		{EntryNo: "2023CSB1101", Grade: "A"},
		{EntryNo: "2023CSB1102", Grade: "B+"},
		{EntryNo: "2023CSB9999", Grade: "A"}, // no such enrollment
	}

	result, err := svc.UploadGrades(context.Background(), 1, 1, entries)
	require.NoError(t, err)

	// Every input entry appears exactly once.
	assert.Len(t, result.Succeeded, 2)
	assert.Len(t, result.Failed, 1)
	assert.Equal(t, "2023CSB9999", result.Failed[0].EntryNo)
	assert.Equal(t, "no enrollment found for entry number", result.Failed[0].Reason)

	// Applied points match the policy table.
	require.NotNil(t, store.gradePoints[1])
	assert.Equal(t, 10.0, *store.gradePoints[1])
	require.NotNil(t, store.gradePoints[2])
	assert.Equal(t, 8.0, *store.gradePoints[2])
	require.NotNil(t, store.earned[1])
	assert.Equal(t, 4.0, *store.earned[1])
}

func TestUploadGrades_UnknownLetterFailsEntryOnly(t *testing.T) {
	store := &fakeBatchStore{
		byEntry: map[string]*repositories.EnrollmentRow{
			"2023CSB1101": enrollmentRow(1, "2023CSB1101"),
		},
		grades:      make(map[int64]string),
		gradePoints: make(map[int64]*float64),
		earned:      make(map[int64]*float64),
	}
	svc := newBatchService(t, store)

	entries := []dto.GradeEntry{
		{EntryNo: "2023CSB1101", Grade: "Q"},
	}

	result, err := svc.UploadGrades(context.Background(), 1, 1, entries)
	require.NoError(t, err)
	assert.Empty(t, result.Succeeded)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "unknown grade letter", result.Failed[0].Reason)
	assert.Empty(t, store.grades)
}

func TestUploadGrades_IncompleteMarkerStoredWithoutPoints(t *testing.T) {
	store := &fakeBatchStore{
		byEntry: map[string]*repositories.EnrollmentRow{
			"2023CSB1101": enrollmentRow(1, "2023CSB1101"),
		},
		grades:      make(map[int64]string),
		gradePoints: make(map[int64]*float64),
		earned:      make(map[int64]*float64),
	}
	svc := newBatchService(t, store)

	result, err := svc.UploadGrades(context.Background(), 1, 1, []dto.GradeEntry{
		{EntryNo: "2023CSB1101", Grade: "W"},
	})
	require.NoError(t, err)
	require.Len(t, result.Succeeded, 1)
	assert.Equal(t, "W", store.grades[1])
	assert.Nil(t, store.gradePoints[1])
	assert.Nil(t, store.earned[1])
}

func TestUploadGrades_UnknownCourse(t *testing.T) {
	store := &fakeBatchStore{
		grades:      make(map[int64]string),
		gradePoints: make(map[int64]*float64),
		earned:      make(map[int64]*float64),
	}
	svc := newBatchService(t, store)

	_, err := svc.UploadGrades(context.Background(), 99, 1, []dto.GradeEntry{
		{EntryNo: "2023CSB1101", Grade: "A"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestEnrollCohort_ReturnsCount(t *testing.T) {
	store := &fakeBatchStore{cohortCount: 42}
	svc := newBatchService(t, store)

	count, err := svc.EnrollCohort(context.Background(), 1, 1, 2023)
	require.NoError(t, err)
	assert.Equal(t, int64(42), count)
	assert.Equal(t, 1, store.cohortCalls)
}

func TestEnrollCohort_UnknownTerm(t *testing.T) {
	store := &fakeBatchStore{}
	svc := newBatchService(t, store)

	_, err := svc.EnrollCohort(context.Background(), 1, 99, 2023)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrTermNotFound)
}
