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

// StudentRepository handles database operations for student records
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
	}
}

// Create creates a new student record
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (user_id, entry_no, batch, department_id, advisor_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		student.UserID,
		student.EntryNo,
		student.Batch,
		student.DepartmentID,
		student.AdvisorID,
	).Scan(&student.ID)

	if err != nil {
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	return r.getOne(ctx, `WHERE s.id = $1`, id)
}

// GetByUserID retrieves the student record belonging to a user account
func (r *StudentRepository) GetByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	return r.getOne(ctx, `WHERE s.user_id = $1`, userID)
}

// GetByEntryNo retrieves a student by institute entry number
func (r *StudentRepository) GetByEntryNo(ctx context.Context, entryNo string) (*models.Student, error) {
	return r.getOne(ctx, `WHERE s.entry_no = $1`, entryNo)
}

func (r *StudentRepository) getOne(ctx context.Context, where string, args ...interface{}) (*models.Student, error) {
	query := `
		SELECT s.id, s.user_id, s.entry_no, s.batch, s.department_id, s.advisor_id
		FROM students s
	` + where

	var student models.Student
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&student.ID,
		&student.UserID,
		&student.EntryNo,
		&student.Batch,
		&student.DepartmentID,
		&student.AdvisorID,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return &student, nil
}

// AdvisorUserID returns the user id of the student's faculty advisor, or
// ErrStudentNotFound when the student does not exist.
func (r *StudentRepository) AdvisorUserID(ctx context.Context, studentID int64) (*int64, error) {
	var advisorID *int64
	err := r.db.QueryRow(ctx, `SELECT advisor_id FROM students WHERE id = $1`, studentID).Scan(&advisorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving advisor: %w", err)
	}
	return advisorID, nil
}
