package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acadsys/aims/internal/app/models"
	"github.com/acadsys/aims/internal/app/repositories"
	"github.com/acadsys/aims/internal/pkg/apperrors"
)

type fakeEnrollmentStore struct {
	byID        map[int64]*models.Enrollment
	nextID      int64
	createErr   error
	grades      map[int64]string
	gradePoints map[int64]*float64
	earned      map[int64]*float64
	deleted     []int64
}

func newFakeEnrollmentStore() *fakeEnrollmentStore {
	return &fakeEnrollmentStore{
		byID:        make(map[int64]*models.Enrollment),
		nextID:      1,
		grades:      make(map[int64]string),
		gradePoints: make(map[int64]*float64),
		earned:      make(map[int64]*float64),
	}
}

func (f *fakeEnrollmentStore) CreateWithEligibility(_ context.Context, studentID int64, offering *models.CourseOffering, _ float64) (*models.Enrollment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	e := &models.Enrollment{
		ID:        f.nextID,
		StudentID: studentID,
		CourseID:  offering.CourseID,
		TermID:    offering.TermID,
		Status:    models.EnrollmentPendingInstructor,
	}
	f.byID[e.ID] = e
	f.nextID++
	return e, nil
}

func (f *fakeEnrollmentStore) GetByID(_ context.Context, id int64) (*models.Enrollment, error) {
	e, ok := f.byID[id]
	if !ok {
		return nil, apperrors.ErrEnrollmentNotFound
	}
	copied := *e
	return &copied, nil
}

func (f *fakeEnrollmentStore) UpdateStatusFrom(_ context.Context, id int64, from, to models.EnrollmentStatus) (bool, error) {
	e, ok := f.byID[id]
	if !ok || e.Status != from {
		return false, nil
	}
	e.Status = to
	return true, nil
}

func (f *fakeEnrollmentStore) OverrideStatus(_ context.Context, id int64, to models.EnrollmentStatus) error {
	e, ok := f.byID[id]
	if !ok {
		return apperrors.ErrEnrollmentNotFound
	}
	e.Status = to
	return nil
}

func (f *fakeEnrollmentStore) SetGrade(_ context.Context, id int64, grade string, gradePoints, creditsEarned *float64) error {
	if _, ok := f.byID[id]; !ok {
		return apperrors.ErrEnrollmentNotFound
	}
	f.grades[id] = grade
	f.gradePoints[id] = gradePoints
	f.earned[id] = creditsEarned
	return nil
}

func (f *fakeEnrollmentStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return apperrors.ErrEnrollmentNotFound
	}
	delete(f.byID, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeEnrollmentStore) ListByStudent(context.Context, int64, *int64) ([]*repositories.EnrollmentRow, error) {
	return nil, nil
}

func (f *fakeEnrollmentStore) ListPendingForInstructor(context.Context, int64) ([]*repositories.EnrollmentRow, error) {
	return nil, nil
}

func (f *fakeEnrollmentStore) ListPendingForAdvisor(context.Context, int64) ([]*repositories.EnrollmentRow, error) {
	return nil, nil
}

type fakeOfferingStore struct {
	byID    map[int64]*models.CourseOffering
	teaches map[int64]bool // by instructor user id
}

func (f *fakeOfferingStore) GetByID(_ context.Context, id int64) (*models.CourseOffering, error) {
	o, ok := f.byID[id]
	if !ok {
		return nil, apperrors.ErrOfferingNotFound
	}
	return o, nil
}

func (f *fakeOfferingStore) TeachesCourse(_ context.Context, userID, _, _ int64) (bool, error) {
	return f.teaches[userID], nil
}

type fakeStudentStore struct {
	byUserID map[int64]*models.Student
	advisors map[int64]*int64 // by student id
}

func (f *fakeStudentStore) GetByUserID(_ context.Context, userID int64) (*models.Student, error) {
	s, ok := f.byUserID[userID]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return s, nil
}

func (f *fakeStudentStore) AdvisorUserID(_ context.Context, studentID int64) (*int64, error) {
	return f.advisors[studentID], nil
}

type fakeCourseStore struct {
	byID map[int64]*models.Course
}

func (f *fakeCourseStore) GetByID(_ context.Context, id int64) (*models.Course, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	return c, nil
}

const (
	studentUserID    = int64(10)
	instructorUserID = int64(20)
	advisorUserID    = int64(30)
	adminUserID      = int64(40)
)

func newTestService(t *testing.T) (EnrollmentService, *fakeEnrollmentStore, *fakeOfferingStore, *fakeStudentStore) {
	t.Helper()

	offering := &models.CourseOffering{
		ID:       100,
		CourseID: 1,
		TermID:   1,
		Status:   models.OfferingOffered,
		Course:   &models.Course{ID: 1, Code: "CS201", Credits: 4},
	}

	enrollments := newFakeEnrollmentStore()
	offerings := &fakeOfferingStore{
		byID:    map[int64]*models.CourseOffering{100: offering},
		teaches: map[int64]bool{instructorUserID: true},
	}
	advisor := advisorUserID
	students := &fakeStudentStore{
		byUserID: map[int64]*models.Student{
			studentUserID: {ID: 1, UserID: studentUserID, EntryNo: "2023CSB1103"},
		},
		advisors: map[int64]*int64{1: &advisor},
	}
	courses := &fakeCourseStore{
		byID: map[int64]*models.Course{1: {ID: 1, Code: "CS201", Credits: 4}},
	}

	svc := NewEnrollmentService(enrollments, offerings, students, courses, 24, zerolog.Nop())
	return svc, enrollments, offerings, students
}

func requestEnrollment(t *testing.T, svc EnrollmentService) *models.Enrollment {
	t.Helper()
	e, err := svc.Request(context.Background(), studentUserID, 100)
	require.NoError(t, err)
	return e
}

func TestRequest_CreatesPendingInstructor(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	e := requestEnrollment(t, svc)
	assert.Equal(t, models.EnrollmentPendingInstructor, e.Status)
	assert.Equal(t, int64(1), e.StudentID)
}

func TestRequest_RejectsClosedOffering(t *testing.T) {
	svc, _, offerings, _ := newTestService(t)
	offerings.byID[100].Status = models.OfferingWithdrawn

	_, err := svc.Request(context.Background(), studentUserID, 100)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))
}

func TestRequest_PropagatesEligibilityFailure(t *testing.T) {
	svc, enrollments, _, _ := newTestService(t)
	enrollments.createErr = apperrors.NewCreditLimitError(21, 25, 24)

	_, err := svc.Request(context.Background(), studentUserID, 100)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrCreditLimitExceeded))
}

func TestDecide_FullApprovalPipeline(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	e := requestEnrollment(t, svc)

	decided, err := svc.Decide(context.Background(), e.ID, instructorUserID, models.RoleInstructor, true)
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentPendingAdvisor, decided.Status)

	decided, err = svc.Decide(context.Background(), e.ID, advisorUserID, models.RoleAdvisor, true)
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentApproved, decided.Status)
}

func TestDecide_InstructorReject(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	e := requestEnrollment(t, svc)

	decided, err := svc.Decide(context.Background(), e.ID, instructorUserID, models.RoleInstructor, false)
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentRejectedInstructor, decided.Status)
}

func TestDecide_AdvisorTooEarly(t *testing.T) {
	svc, enrollments, _, _ := newTestService(t)
	e := requestEnrollment(t, svc)

	_, err := svc.Decide(context.Background(), e.ID, advisorUserID, models.RoleAdvisor, true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotPermitted))

	details := apperrors.Details(err)
	require.NotNil(t, details)
	assert.Equal(t, string(models.EnrollmentPendingInstructor), details["currentStatus"])

	// The record is untouched.
	stored, err := enrollments.GetByID(context.Background(), e.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentPendingInstructor, stored.Status)
}

func TestDecide_SecondApproveFails(t *testing.T) {
	svc, enrollments, _, _ := newTestService(t)
	e := requestEnrollment(t, svc)

	_, err := svc.Decide(context.Background(), e.ID, instructorUserID, models.RoleInstructor, true)
	require.NoError(t, err)

	_, err = svc.Decide(context.Background(), e.ID, instructorUserID, models.RoleInstructor, true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotPermitted))

	// Status reflects only the first call.
	stored, err := enrollments.GetByID(context.Background(), e.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentPendingAdvisor, stored.Status)
}

func TestDecide_WrongInstructor(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	e := requestEnrollment(t, svc)

	_, err := svc.Decide(context.Background(), e.ID, int64(99), models.RoleInstructor, true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotPermitted))
}

func TestDecide_WrongAdvisor(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	e := requestEnrollment(t, svc)

	_, err := svc.Decide(context.Background(), e.ID, instructorUserID, models.RoleInstructor, true)
	require.NoError(t, err)

	_, err = svc.Decide(context.Background(), e.ID, int64(99), models.RoleAdvisor, true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotPermitted))
}

func TestOverride_SetsAnyStatus(t *testing.T) {
	svc, enrollments, _, _ := newTestService(t)
	e := requestEnrollment(t, svc)

	overridden, err := svc.Override(context.Background(), e.ID, adminUserID, models.EnrollmentWithdrawn)
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentWithdrawn, overridden.Status)

	stored, err := enrollments.GetByID(context.Background(), e.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentWithdrawn, stored.Status)
}

func TestOverride_RejectsUnknownStatus(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	e := requestEnrollment(t, svc)

	_, err := svc.Override(context.Background(), e.ID, adminUserID, models.EnrollmentStatus("Pending_Advisor"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))
}

func TestRecordGrade_SetsPointsAndCredits(t *testing.T) {
	svc, enrollments, _, _ := newTestService(t)
	e := requestEnrollment(t, svc)

	graded, err := svc.RecordGrade(context.Background(), e.ID, instructorUserID, models.RoleInstructor, "a-")
	require.NoError(t, err)

	require.NotNil(t, graded.Grade)
	assert.Equal(t, "A-", *graded.Grade)
	require.NotNil(t, graded.GradePoints)
	assert.Equal(t, 9.0, *graded.GradePoints)
	require.NotNil(t, graded.CreditsEarned)
	assert.Equal(t, 4.0, *graded.CreditsEarned)

	// Grading never touches the approval status.
	stored, err := enrollments.GetByID(context.Background(), e.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentPendingInstructor, stored.Status)
}

func TestRecordGrade_FailingGradeEarnsNothing(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	e := requestEnrollment(t, svc)

	graded, err := svc.RecordGrade(context.Background(), e.ID, instructorUserID, models.RoleInstructor, "F")
	require.NoError(t, err)
	require.NotNil(t, graded.GradePoints)
	assert.Equal(t, 0.0, *graded.GradePoints)
	require.NotNil(t, graded.CreditsEarned)
	assert.Equal(t, 0.0, *graded.CreditsEarned)
}

func TestRecordGrade_IncompleteLeavesPointsUnset(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	e := requestEnrollment(t, svc)

	graded, err := svc.RecordGrade(context.Background(), e.ID, instructorUserID, models.RoleInstructor, "I")
	require.NoError(t, err)
	require.NotNil(t, graded.Grade)
	assert.Equal(t, "I", *graded.Grade)
	assert.Nil(t, graded.GradePoints)
	assert.Nil(t, graded.CreditsEarned)
}

func TestRecordGrade_UnknownLetter(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	e := requestEnrollment(t, svc)

	_, err := svc.RecordGrade(context.Background(), e.ID, instructorUserID, models.RoleInstructor, "Z")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidGrade))
}

func TestRecordGrade_GatedByTeaching(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	e := requestEnrollment(t, svc)

	_, err := svc.RecordGrade(context.Background(), e.ID, int64(99), models.RoleInstructor, "A")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotPermitted))

	// Admins may grade without an assignment.
	_, err = svc.RecordGrade(context.Background(), e.ID, adminUserID, models.RoleAdmin, "A")
	assert.NoError(t, err)
}

func TestDrop_StudentOwnRecord(t *testing.T) {
	svc, enrollments, _, _ := newTestService(t)
	e := requestEnrollment(t, svc)

	err := svc.Drop(context.Background(), e.ID, studentUserID, models.RoleStudent)
	require.NoError(t, err)
	assert.Contains(t, enrollments.deleted, e.ID)
}

func TestDrop_OtherStudentForbidden(t *testing.T) {
	svc, _, _, students := newTestService(t)
	e := requestEnrollment(t, svc)

	students.byUserID[99] = &models.Student{ID: 2, UserID: 99}
	err := svc.Drop(context.Background(), e.ID, int64(99), models.RoleStudent)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotPermitted))
}

func TestDrop_RejectedRecordCannotBeDropped(t *testing.T) {
	svc, enrollments, _, _ := newTestService(t)
	e := requestEnrollment(t, svc)
	enrollments.byID[e.ID].Status = models.EnrollmentRejectedInstructor

	err := svc.Drop(context.Background(), e.ID, studentUserID, models.RoleStudent)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotPermitted))
}

func TestDrop_AdminAnyRecord(t *testing.T) {
	svc, enrollments, _, _ := newTestService(t)
	e := requestEnrollment(t, svc)

	err := svc.Drop(context.Background(), e.ID, adminUserID, models.RoleAdmin)
	require.NoError(t, err)
	assert.Contains(t, enrollments.deleted, e.ID)
}
