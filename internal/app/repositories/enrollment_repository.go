package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acadsys/aims/internal/app/eligibility"
	"github.com/acadsys/aims/internal/app/models"
	"github.com/acadsys/aims/internal/pkg/apperrors"
	"github.com/acadsys/aims/internal/pkg/dberrors"
)

// EnrollmentRow is an enrollment joined with its course, term and slot
// context for list views.
type EnrollmentRow struct {
	models.Enrollment
	EntryNo     string
	StudentName string
	CourseCode  string
	CourseName  string
	Credits     float64
	TermCode    string
	SlotLabel   *string
}

// EnrollmentRepository handles database operations for enrollments
type EnrollmentRepository struct {
	db *pgxpool.Pool
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: db,
	}
}

// CreateWithEligibility checks eligibility and creates the enrollment in one
// transaction. The student row is locked first so concurrent enroll attempts
// for the same student serialize, making the check-then-insert sequence
// atomic; the unique constraint on (student_id, course_id, term_id) is the
// backstop against duplicate requests racing past the lock.
func (r *EnrollmentRepository) CreateWithEligibility(ctx context.Context, studentID int64, offering *models.CourseOffering, ceiling float64) (*models.Enrollment, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("error beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var lockedID int64
	err = tx.QueryRow(ctx, `SELECT id FROM students WHERE id = $1 FOR UPDATE`, studentID).Scan(&lockedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error locking student: %w", err)
	}

	rows, err := tx.Query(ctx, `
		SELECT c.code, o.slot_id, COALESCE(s.label, ''), c.credits
		FROM enrollments e
		JOIN courses c ON c.id = e.course_id
		LEFT JOIN course_offerings o ON o.id = e.offering_id
		LEFT JOIN slots s ON s.id = o.slot_id
		WHERE e.student_id = $1 AND e.term_id = $2 AND e.status = ANY($3)`,
		studentID, offering.TermID,
		[]string{
			string(models.EnrollmentPendingInstructor),
			string(models.EnrollmentPendingAdvisor),
			string(models.EnrollmentApproved),
		})
	if err != nil {
		return nil, fmt.Errorf("error loading active enrollments: %w", err)
	}

	var existing []eligibility.ActiveEnrollment
	for rows.Next() {
		var active eligibility.ActiveEnrollment
		if err := rows.Scan(&active.CourseCode, &active.SlotID, &active.SlotLabel, &active.Credits); err != nil {
			rows.Close()
			return nil, err
		}
		existing = append(existing, active)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	cand := eligibility.Candidate{
		CourseCode: offering.Course.Code,
		SlotID:     offering.SlotID,
		Credits:    offering.Course.Credits,
	}
	if offering.Slot != nil {
		cand.SlotLabel = offering.Slot.Label
	}

	if err := eligibility.Check(existing, cand, ceiling); err != nil {
		return nil, err
	}

	enrollment := &models.Enrollment{
		StudentID:  studentID,
		CourseID:   offering.CourseID,
		TermID:     offering.TermID,
		OfferingID: &offering.ID,
		Status:     models.EnrollmentPendingInstructor,
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO enrollments (student_id, course_id, term_id, offering_id, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		enrollment.StudentID,
		enrollment.CourseID,
		enrollment.TermID,
		enrollment.OfferingID,
		enrollment.Status,
	).Scan(&enrollment.ID, &enrollment.CreatedAt, &enrollment.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.ErrDuplicateEnrollment
		}
		return nil, fmt.Errorf("error creating enrollment: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("error committing transaction: %w", err)
	}

	return enrollment, nil
}

// GetByID retrieves an enrollment by ID
func (r *EnrollmentRepository) GetByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	query := `
		SELECT id, student_id, course_id, term_id, offering_id, status, grade, grade_points, credits_earned, created_at, updated_at
		FROM enrollments
		WHERE id = $1
	`

	var enrollment models.Enrollment
	err := r.db.QueryRow(ctx, query, id).Scan(
		&enrollment.ID,
		&enrollment.StudentID,
		&enrollment.CourseID,
		&enrollment.TermID,
		&enrollment.OfferingID,
		&enrollment.Status,
		&enrollment.Grade,
		&enrollment.GradePoints,
		&enrollment.CreditsEarned,
		&enrollment.CreatedAt,
		&enrollment.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}

	return &enrollment, nil
}

// UpdateStatusFrom moves an enrollment from one status to another. The
// update is conditional on the expected current status, so a record decided
// concurrently is left untouched and false is returned.
func (r *EnrollmentRepository) UpdateStatusFrom(ctx context.Context, id int64, from, to models.EnrollmentStatus) (bool, error) {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE enrollments SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3`,
		to, id, from)
	if err != nil {
		return false, fmt.Errorf("error updating enrollment status: %w", err)
	}

	return cmdTag.RowsAffected() > 0, nil
}

// OverrideStatus sets an enrollment status directly, outside the staged
// pipeline. Admin only; callers log the override.
func (r *EnrollmentRepository) OverrideStatus(ctx context.Context, id int64, to models.EnrollmentStatus) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE enrollments SET status = $1, updated_at = NOW()
		WHERE id = $2`,
		to, id)
	if err != nil {
		return fmt.Errorf("error overriding enrollment status: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}

	return nil
}

// SetGrade sets grade, grade points and credits earned together. Status is
// never touched here.
func (r *EnrollmentRepository) SetGrade(ctx context.Context, id int64, grade string, gradePoints, creditsEarned *float64) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE enrollments SET grade = $1, grade_points = $2, credits_earned = $3, updated_at = NOW()
		WHERE id = $4`,
		grade, gradePoints, creditsEarned, id)
	if err != nil {
		return fmt.Errorf("error setting grade: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}

	return nil
}

// Delete removes an enrollment record (drop)
func (r *EnrollmentRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM enrollments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting enrollment: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}

	return nil
}

const enrollmentRowSelect = `
	SELECT e.id, e.student_id, e.course_id, e.term_id, e.offering_id, e.status,
	       e.grade, e.grade_points, e.credits_earned, e.created_at, e.updated_at,
	       st.entry_no, u.first_name || ' ' || u.last_name,
	       c.code, c.name, c.credits,
	       t.code,
	       sl.label
	FROM enrollments e
	JOIN students st ON st.id = e.student_id
	JOIN users u ON u.id = st.user_id
	JOIN courses c ON c.id = e.course_id
	JOIN academic_terms t ON t.id = e.term_id
	LEFT JOIN course_offerings o ON o.id = e.offering_id
	LEFT JOIN slots sl ON sl.id = o.slot_id
`

func (r *EnrollmentRepository) queryRows(ctx context.Context, where string, args ...interface{}) ([]*EnrollmentRow, error) {
	rows, err := r.db.Query(ctx, enrollmentRowSelect+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*EnrollmentRow
	for rows.Next() {
		var row EnrollmentRow
		if err := rows.Scan(
			&row.ID,
			&row.StudentID,
			&row.CourseID,
			&row.TermID,
			&row.OfferingID,
			&row.Status,
			&row.Grade,
			&row.GradePoints,
			&row.CreditsEarned,
			&row.CreatedAt,
			&row.UpdatedAt,
			&row.EntryNo,
			&row.StudentName,
			&row.CourseCode,
			&row.CourseName,
			&row.Credits,
			&row.TermCode,
			&row.SlotLabel,
		); err != nil {
			return nil, err
		}
		result = append(result, &row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// ListByStudent retrieves a student's enrollments, optionally limited to
// one term
func (r *EnrollmentRepository) ListByStudent(ctx context.Context, studentID int64, termID *int64) ([]*EnrollmentRow, error) {
	if termID != nil {
		return r.queryRows(ctx, ` WHERE e.student_id = $1 AND e.term_id = $2 ORDER BY c.code`, studentID, *termID)
	}
	return r.queryRows(ctx, ` WHERE e.student_id = $1 ORDER BY t.start_date, c.code`, studentID)
}

// ListPendingForInstructor retrieves requests awaiting a decision by the
// given instructor: status PENDING_INSTRUCTOR on courses they teach in the
// request's term.
func (r *EnrollmentRepository) ListPendingForInstructor(ctx context.Context, instructorUserID int64) ([]*EnrollmentRow, error) {
	where := ` WHERE e.status = $1 AND EXISTS (
			SELECT 1
			FROM course_instructors ci
			JOIN course_offerings co ON co.id = ci.offering_id
			JOIN instructors i ON i.id = ci.instructor_id
			WHERE i.user_id = $2 AND co.course_id = e.course_id AND co.term_id = e.term_id
		) ORDER BY e.created_at`
	return r.queryRows(ctx, where, models.EnrollmentPendingInstructor, instructorUserID)
}

// ListPendingForAdvisor retrieves requests awaiting a decision by the given
// advisor: status PENDING_ADVISOR on their advisees' records.
func (r *EnrollmentRepository) ListPendingForAdvisor(ctx context.Context, advisorUserID int64) ([]*EnrollmentRow, error) {
	where := ` WHERE e.status = $1 AND st.advisor_id = $2 ORDER BY e.created_at`
	return r.queryRows(ctx, where, models.EnrollmentPendingAdvisor, advisorUserID)
}

// ListForRecord retrieves all of a student's enrollments with course and
// term context, for the academic record builder.
func (r *EnrollmentRepository) ListForRecord(ctx context.Context, studentID int64) ([]*EnrollmentRow, error) {
	return r.queryRows(ctx, ` WHERE e.student_id = $1 ORDER BY t.start_date, c.code`, studentID)
}

// EnrollCohort enrolls every student of an admission-year batch into the
// course as APPROVED, in one statement. Students already holding a record
// for the (course, term) pair are skipped silently via the unique
// constraint; eligibility rules are intentionally not applied here.
func (r *EnrollmentRepository) EnrollCohort(ctx context.Context, courseID, termID int64, offeringID *int64, batch int) (int64, error) {
	cmdTag, err := r.db.Exec(ctx, `
		INSERT INTO enrollments (student_id, course_id, term_id, offering_id, status)
		SELECT s.id, $1, $2, $3, $4
		FROM students s
		WHERE s.batch = $5
		ON CONFLICT (student_id, course_id, term_id) DO NOTHING`,
		courseID, termID, offeringID, models.EnrollmentApproved, batch)
	if err != nil {
		return 0, fmt.Errorf("error enrolling cohort: %w", err)
	}

	return cmdTag.RowsAffected(), nil
}

// FindByEntryCourseTerm resolves an entry number to the student's
// enrollment in the given course and term. Used by bulk grade upload.
func (r *EnrollmentRepository) FindByEntryCourseTerm(ctx context.Context, entryNo string, courseID, termID int64) (*EnrollmentRow, error) {
	result, err := r.queryRows(ctx, ` WHERE st.entry_no = $1 AND e.course_id = $2 AND e.term_id = $3`, entryNo, courseID, termID)
	if err != nil {
		return nil, fmt.Errorf("error resolving enrollment: %w", err)
	}
	if len(result) == 0 {
		return nil, apperrors.ErrEnrollmentNotFound
	}
	return result[0], nil
}
