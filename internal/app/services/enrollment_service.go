package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/acadsys/aims/internal/app/models"
	"github.com/acadsys/aims/internal/app/repositories"
	"github.com/acadsys/aims/internal/pkg/apperrors"
	"github.com/acadsys/aims/internal/pkg/grades"
)

// EnrollmentStore is the persistence surface the enrollment service needs.
// *repositories.EnrollmentRepository satisfies it; tests use fakes.
type EnrollmentStore interface {
	CreateWithEligibility(ctx context.Context, studentID int64, offering *models.CourseOffering, ceiling float64) (*models.Enrollment, error)
	GetByID(ctx context.Context, id int64) (*models.Enrollment, error)
	UpdateStatusFrom(ctx context.Context, id int64, from, to models.EnrollmentStatus) (bool, error)
	OverrideStatus(ctx context.Context, id int64, to models.EnrollmentStatus) error
	SetGrade(ctx context.Context, id int64, grade string, gradePoints, creditsEarned *float64) error
	Delete(ctx context.Context, id int64) error
	ListByStudent(ctx context.Context, studentID int64, termID *int64) ([]*repositories.EnrollmentRow, error)
	ListPendingForInstructor(ctx context.Context, instructorUserID int64) ([]*repositories.EnrollmentRow, error)
	ListPendingForAdvisor(ctx context.Context, advisorUserID int64) ([]*repositories.EnrollmentRow, error)
}

// OfferingStore supplies offering lookups and instructor-assignment checks.
type OfferingStore interface {
	GetByID(ctx context.Context, id int64) (*models.CourseOffering, error)
	TeachesCourse(ctx context.Context, userID, courseID, termID int64) (bool, error)
}

// StudentStore supplies student lookups for actor resolution and gating.
type StudentStore interface {
	GetByUserID(ctx context.Context, userID int64) (*models.Student, error)
	AdvisorUserID(ctx context.Context, studentID int64) (*int64, error)
}

// CourseStore supplies course credit lookups for grade entry.
type CourseStore interface {
	GetByID(ctx context.Context, id int64) (*models.Course, error)
}

// EnrollmentService drives the enrollment approval pipeline
type EnrollmentService interface {
	Request(ctx context.Context, studentUserID, offeringID int64) (*models.Enrollment, error)
	Decide(ctx context.Context, enrollmentID, actorUserID int64, role models.RoleType, approve bool) (*models.Enrollment, error)
	Override(ctx context.Context, enrollmentID, adminUserID int64, target models.EnrollmentStatus) (*models.Enrollment, error)
	RecordGrade(ctx context.Context, enrollmentID, actorUserID int64, role models.RoleType, letter string) (*models.Enrollment, error)
	Drop(ctx context.Context, enrollmentID, actorUserID int64, role models.RoleType) error
	ListOwn(ctx context.Context, studentUserID int64, termID *int64) ([]*repositories.EnrollmentRow, error)
	PendingForInstructor(ctx context.Context, instructorUserID int64) ([]*repositories.EnrollmentRow, error)
	PendingForAdvisor(ctx context.Context, advisorUserID int64) ([]*repositories.EnrollmentRow, error)
}

// enrollmentServiceImpl implements the EnrollmentService interface
type enrollmentServiceImpl struct {
	enrollments EnrollmentStore
	offerings   OfferingStore
	students    StudentStore
	courses     CourseStore
	ceiling     float64
	logger      zerolog.Logger
}

// NewEnrollmentService creates a new enrollment service instance
func NewEnrollmentService(enrollments EnrollmentStore, offerings OfferingStore, students StudentStore, courses CourseStore, creditCeiling float64, logger zerolog.Logger) EnrollmentService {
	return &enrollmentServiceImpl{
		enrollments: enrollments,
		offerings:   offerings,
		students:    students,
		courses:     courses,
		ceiling:     creditCeiling,
		logger:      logger,
	}
}

// Request creates an enrollment in PENDING_INSTRUCTOR after the eligibility
// checks pass. The check and insert run atomically in the store.
func (s *enrollmentServiceImpl) Request(ctx context.Context, studentUserID, offeringID int64) (*models.Enrollment, error) {
	student, err := s.students.GetByUserID(ctx, studentUserID)
	if err != nil {
		return nil, err
	}

	offering, err := s.offerings.GetByID(ctx, offeringID)
	if err != nil {
		return nil, err
	}

	if offering.Status != models.OfferingOffered {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("offering %s is not open for enrollment", offering.Course.Code))
	}

	enrollment, err := s.enrollments.CreateWithEligibility(ctx, student.ID, offering, s.ceiling)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("enrollmentId", enrollment.ID).
		Int64("studentId", student.ID).
		Str("course", offering.Course.Code).
		Msg("Enrollment requested")

	return enrollment, nil
}

// Decide applies an instructor or advisor decision to a pending request.
// The status update is conditional on the state the decision was computed
// from, so two racing decisions cannot both apply.
func (s *enrollmentServiceImpl) Decide(ctx context.Context, enrollmentID, actorUserID int64, role models.RoleType, approve bool) (*models.Enrollment, error) {
	enrollment, err := s.enrollments.GetByID(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}

	switch role {
	case models.RoleInstructor:
		teaches, err := s.offerings.TeachesCourse(ctx, actorUserID, enrollment.CourseID, enrollment.TermID)
		if err != nil {
			return nil, err
		}
		if !teaches {
			return nil, apperrors.NewForbiddenError("not an instructor of this course")
		}
	case models.RoleAdvisor:
		advisorID, err := s.students.AdvisorUserID(ctx, enrollment.StudentID)
		if err != nil {
			return nil, err
		}
		if advisorID == nil || *advisorID != actorUserID {
			return nil, apperrors.NewForbiddenError("not the advisor of this student")
		}
	default:
		return nil, apperrors.NewForbiddenError("role cannot decide enrollment requests")
	}

	next, err := models.NextStatus(enrollment.Status, role, approve)
	if err != nil {
		return nil, err
	}

	updated, err := s.enrollments.UpdateStatusFrom(ctx, enrollmentID, enrollment.Status, next)
	if err != nil {
		return nil, err
	}
	if !updated {
		current, err := s.enrollments.GetByID(ctx, enrollmentID)
		if err != nil {
			return nil, err
		}
		return nil, apperrors.NewAlreadyProcessedError(string(current.Status))
	}

	enrollment.Status = next
	s.logger.Info().
		Int64("enrollmentId", enrollmentID).
		Int64("actorId", actorUserID).
		Str("role", string(role)).
		Str("status", string(next)).
		Msg("Enrollment decided")

	return enrollment, nil
}

// Override sets an enrollment status directly, outside the staged pipeline.
// Kept separate from Decide so the log stream distinguishes administrative
// overrides from normal workflow progress.
func (s *enrollmentServiceImpl) Override(ctx context.Context, enrollmentID, adminUserID int64, target models.EnrollmentStatus) (*models.Enrollment, error) {
	if !target.IsValid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown enrollment status %q", target))
	}

	enrollment, err := s.enrollments.GetByID(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}

	if err := s.enrollments.OverrideStatus(ctx, enrollmentID, target); err != nil {
		return nil, err
	}

	s.logger.Warn().
		Int64("enrollmentId", enrollmentID).
		Int64("adminId", adminUserID).
		Str("from", string(enrollment.Status)).
		Str("to", string(target)).
		Msg("Enrollment status overridden")

	enrollment.Status = target
	return enrollment, nil
}

// RecordGrade sets grade, grade points and credits earned together. It
// never changes the approval status. Credits earned are zero on a failing
// grade, the course's credits otherwise; I/W/NP markers leave points and
// credits earned unset.
func (s *enrollmentServiceImpl) RecordGrade(ctx context.Context, enrollmentID, actorUserID int64, role models.RoleType, letter string) (*models.Enrollment, error) {
	letter = grades.Normalize(letter)
	if !grades.Valid(letter) {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidGrade, fmt.Sprintf("unknown grade letter %q", letter))
	}

	enrollment, err := s.enrollments.GetByID(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}

	switch role {
	case models.RoleAdmin:
		// Admins may grade any record.
	case models.RoleInstructor:
		teaches, err := s.offerings.TeachesCourse(ctx, actorUserID, enrollment.CourseID, enrollment.TermID)
		if err != nil {
			return nil, err
		}
		if !teaches {
			return nil, apperrors.NewForbiddenError("not an instructor of this course")
		}
	default:
		return nil, apperrors.NewForbiddenError("role cannot record grades")
	}

	var gradePoints, creditsEarned *float64
	if points, countable := grades.Points(letter); countable {
		gradePoints = &points

		course, err := s.courses.GetByID(ctx, enrollment.CourseID)
		if err != nil {
			return nil, err
		}
		earned := course.Credits
		if grades.Failing(letter) {
			earned = 0
		}
		creditsEarned = &earned
	}

	if err := s.enrollments.SetGrade(ctx, enrollmentID, letter, gradePoints, creditsEarned); err != nil {
		return nil, err
	}

	enrollment.Grade = &letter
	enrollment.GradePoints = gradePoints
	enrollment.CreditsEarned = creditsEarned
	return enrollment, nil
}

// Drop removes the enrollment record. Students may drop their own records,
// admins any record; rejected records cannot be dropped.
func (s *enrollmentServiceImpl) Drop(ctx context.Context, enrollmentID, actorUserID int64, role models.RoleType) error {
	enrollment, err := s.enrollments.GetByID(ctx, enrollmentID)
	if err != nil {
		return err
	}

	switch role {
	case models.RoleAdmin:
		// Admins may drop any record.
	case models.RoleStudent:
		student, err := s.students.GetByUserID(ctx, actorUserID)
		if err != nil {
			return err
		}
		if student.ID != enrollment.StudentID {
			return apperrors.NewForbiddenError("cannot drop another student's enrollment")
		}
	default:
		return apperrors.NewForbiddenError("role cannot drop enrollments")
	}

	if enrollment.Status.Rejected() {
		return apperrors.NewStateError(string(enrollment.Status), "rejected enrollments cannot be dropped")
	}

	if err := s.enrollments.Delete(ctx, enrollmentID); err != nil {
		return err
	}

	s.logger.Info().
		Int64("enrollmentId", enrollmentID).
		Int64("actorId", actorUserID).
		Str("role", string(role)).
		Msg("Enrollment dropped")

	return nil
}

// ListOwn lists the calling student's enrollments
func (s *enrollmentServiceImpl) ListOwn(ctx context.Context, studentUserID int64, termID *int64) ([]*repositories.EnrollmentRow, error) {
	student, err := s.students.GetByUserID(ctx, studentUserID)
	if err != nil {
		return nil, err
	}

	rows, err := s.enrollments.ListByStudent(ctx, student.ID, termID)
	if err != nil {
		return nil, fmt.Errorf("error listing enrollments: %w", err)
	}
	return rows, nil
}

// PendingForInstructor lists requests awaiting the instructor's decision
func (s *enrollmentServiceImpl) PendingForInstructor(ctx context.Context, instructorUserID int64) ([]*repositories.EnrollmentRow, error) {
	rows, err := s.enrollments.ListPendingForInstructor(ctx, instructorUserID)
	if err != nil {
		return nil, fmt.Errorf("error listing pending requests: %w", err)
	}
	return rows, nil
}

// PendingForAdvisor lists requests awaiting the advisor's decision
func (s *enrollmentServiceImpl) PendingForAdvisor(ctx context.Context, advisorUserID int64) ([]*repositories.EnrollmentRow, error) {
	rows, err := s.enrollments.ListPendingForAdvisor(ctx, advisorUserID)
	if err != nil {
		return nil, fmt.Errorf("error listing pending requests: %w", err)
	}
	return rows, nil
}

// errIsNotFound reports whether the error is any of the not-found sentinels
func errIsNotFound(err error) bool {
	return errors.Is(err, apperrors.ErrResourceNotFound) ||
		errors.Is(err, apperrors.ErrEnrollmentNotFound) ||
		errors.Is(err, apperrors.ErrOfferingNotFound) ||
		errors.Is(err, apperrors.ErrStudentNotFound)
}
