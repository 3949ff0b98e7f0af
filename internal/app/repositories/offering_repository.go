package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acadsys/aims/internal/app/models"
	"github.com/acadsys/aims/internal/pkg/apperrors"
)

// OfferingRepository handles database operations for course offerings
type OfferingRepository struct {
	db *pgxpool.Pool
}

// NewOfferingRepository creates a new offering repository
func NewOfferingRepository(db *pgxpool.Pool) *OfferingRepository {
	return &OfferingRepository{
		db: db,
	}
}

// Create creates a new offering directly, outside the proposal workflow
func (r *OfferingRepository) Create(ctx context.Context, offering *models.CourseOffering) error {
	query := `
		INSERT INTO course_offerings (course_id, term_id, department_id, slot_id, section, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		offering.CourseID,
		offering.TermID,
		offering.DepartmentID,
		offering.SlotID,
		offering.Section,
		offering.Status,
	).Scan(&offering.ID, &offering.CreatedAt, &offering.UpdatedAt)

	if err != nil {
		return fmt.Errorf("error creating offering: %w", err)
	}

	return nil
}

const offeringSelect = `
	SELECT o.id, o.course_id, o.term_id, o.department_id, o.slot_id, o.section, o.status,
	       o.created_at, o.updated_at,
	       c.code, c.name, c.credits,
	       t.code,
	       d.code, d.name,
	       s.label
	FROM course_offerings o
	JOIN courses c ON c.id = o.course_id
	JOIN academic_terms t ON t.id = o.term_id
	JOIN departments d ON d.id = o.department_id
	LEFT JOIN slots s ON s.id = o.slot_id
`

func scanOffering(row pgx.Row) (*models.CourseOffering, error) {
	var offering models.CourseOffering
	var course models.Course
	var term models.AcademicTerm
	var department models.Department
	var slotLabel *string

	err := row.Scan(
		&offering.ID,
		&offering.CourseID,
		&offering.TermID,
		&offering.DepartmentID,
		&offering.SlotID,
		&offering.Section,
		&offering.Status,
		&offering.CreatedAt,
		&offering.UpdatedAt,
		&course.Code,
		&course.Name,
		&course.Credits,
		&term.Code,
		&department.Code,
		&department.Name,
		&slotLabel,
	)
	if err != nil {
		return nil, err
	}

	course.ID = offering.CourseID
	term.ID = offering.TermID
	department.ID = offering.DepartmentID
	offering.Course = &course
	offering.Term = &term
	offering.Department = &department
	if offering.SlotID != nil && slotLabel != nil {
		offering.Slot = &models.Slot{ID: *offering.SlotID, Label: *slotLabel}
	}

	return &offering, nil
}

// GetByID retrieves an offering with its course, term, department and slot
func (r *OfferingRepository) GetByID(ctx context.Context, id int64) (*models.CourseOffering, error) {
	offering, err := scanOffering(r.db.QueryRow(ctx, offeringSelect+` WHERE o.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrOfferingNotFound
		}
		return nil, fmt.Errorf("error retrieving offering: %w", err)
	}
	return offering, nil
}

// List retrieves offerings filtered by any of term, department and status
func (r *OfferingRepository) List(ctx context.Context, termID, departmentID *int64, status *models.OfferingStatus) ([]*models.CourseOffering, error) {
	query := offeringSelect + ` WHERE 1=1`
	args := []interface{}{}

	if termID != nil {
		args = append(args, *termID)
		query += fmt.Sprintf(" AND o.term_id = $%d", len(args))
	}
	if departmentID != nil {
		args = append(args, *departmentID)
		query += fmt.Sprintf(" AND o.department_id = $%d", len(args))
	}
	if status != nil {
		args = append(args, *status)
		query += fmt.Sprintf(" AND o.status = $%d", len(args))
	}
	query += ` ORDER BY c.code, o.section`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var offerings []*models.CourseOffering
	for rows.Next() {
		offering, err := scanOffering(rows)
		if err != nil {
			return nil, err
		}
		offerings = append(offerings, offering)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return offerings, nil
}

// GetInstructors retrieves the instructor assignments of an offering,
// coordinator first
func (r *OfferingRepository) GetInstructors(ctx context.Context, offeringID int64) ([]*models.CourseInstructor, error) {
	query := `
		SELECT ci.id, ci.offering_id, ci.instructor_id, ci.is_coordinator,
		       i.user_id, i.department_id, i.title,
		       u.first_name, u.last_name
		FROM course_instructors ci
		JOIN instructors i ON i.id = ci.instructor_id
		JOIN users u ON u.id = i.user_id
		WHERE ci.offering_id = $1
		ORDER BY ci.is_coordinator DESC, ci.id
	`

	rows, err := r.db.Query(ctx, query, offeringID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []*models.CourseInstructor
	for rows.Next() {
		var assignment models.CourseInstructor
		var instructor models.Instructor
		var user models.User

		if err := rows.Scan(
			&assignment.ID,
			&assignment.OfferingID,
			&assignment.InstructorID,
			&assignment.IsCoordinator,
			&instructor.UserID,
			&instructor.DepartmentID,
			&instructor.Title,
			&user.FirstName,
			&user.LastName,
		); err != nil {
			return nil, err
		}

		instructor.ID = assignment.InstructorID
		user.ID = instructor.UserID
		instructor.User = &user
		assignment.Instructor = &instructor
		assignments = append(assignments, &assignment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}

// FindIDByCourseTerm returns the id of an offered section of the course in
// the term, or nil when none exists.
func (r *OfferingRepository) FindIDByCourseTerm(ctx context.Context, courseID, termID int64) (*int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		SELECT id FROM course_offerings
		WHERE course_id = $1 AND term_id = $2 AND status = $3
		ORDER BY section
		LIMIT 1`,
		courseID, termID, models.OfferingOffered).Scan(&id)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error resolving offering: %w", err)
	}

	return &id, nil
}

// TeachesCourse reports whether the user instructs any offering of the
// course in the given term. Used to gate instructor decisions and grades.
func (r *OfferingRepository) TeachesCourse(ctx context.Context, userID, courseID, termID int64) (bool, error) {
	var teaches bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1
			FROM course_instructors ci
			JOIN course_offerings o ON o.id = ci.offering_id
			JOIN instructors i ON i.id = ci.instructor_id
			WHERE i.user_id = $1 AND o.course_id = $2 AND o.term_id = $3
		)`,
		userID, courseID, termID).Scan(&teaches)

	if err != nil {
		return false, fmt.Errorf("error checking instructor assignment: %w", err)
	}

	return teaches, nil
}
