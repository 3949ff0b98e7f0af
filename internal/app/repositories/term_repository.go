package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acadsys/aims/internal/app/models"
	"github.com/acadsys/aims/internal/pkg/apperrors"
	"github.com/acadsys/aims/internal/pkg/dberrors"
)

// TermRepository handles database operations for academic terms
type TermRepository struct {
	db *pgxpool.Pool
}

// NewTermRepository creates a new term repository
func NewTermRepository(db *pgxpool.Pool) *TermRepository {
	return &TermRepository{
		db: db,
	}
}

// Create creates a new academic term
func (r *TermRepository) Create(ctx context.Context, term *models.AcademicTerm) error {
	query := `
		INSERT INTO academic_terms (code, name, start_date, end_date, is_current)
		VALUES ($1, $2, $3, $4, false)
		RETURNING id, is_current, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		term.Code,
		term.Name,
		term.StartDate,
		term.EndDate,
	).Scan(&term.ID, &term.IsCurrent, &term.CreatedAt, &term.UpdatedAt)

	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.NewCustomError(apperrors.ErrValidationFailed, "term code already exists")
		}
		return fmt.Errorf("error creating academic term: %w", err)
	}

	return nil
}

// GetByID retrieves a term by ID
func (r *TermRepository) GetByID(ctx context.Context, id int64) (*models.AcademicTerm, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

// GetByCode retrieves a term by its code
func (r *TermRepository) GetByCode(ctx context.Context, code string) (*models.AcademicTerm, error) {
	return r.getOne(ctx, `WHERE code = $1`, code)
}

// GetCurrent retrieves the term currently marked current
func (r *TermRepository) GetCurrent(ctx context.Context) (*models.AcademicTerm, error) {
	return r.getOne(ctx, `WHERE is_current = true`)
}

func (r *TermRepository) getOne(ctx context.Context, where string, args ...interface{}) (*models.AcademicTerm, error) {
	query := `
		SELECT id, code, name, start_date, end_date, is_current, created_at, updated_at
		FROM academic_terms
	` + where

	var term models.AcademicTerm
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&term.ID,
		&term.Code,
		&term.Name,
		&term.StartDate,
		&term.EndDate,
		&term.IsCurrent,
		&term.CreatedAt,
		&term.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTermNotFound
		}
		return nil, fmt.Errorf("error retrieving academic term: %w", err)
	}

	return &term, nil
}

// GetAll retrieves all terms, newest first by start date
func (r *TermRepository) GetAll(ctx context.Context) ([]*models.AcademicTerm, error) {
	query := `
		SELECT id, code, name, start_date, end_date, is_current, created_at, updated_at
		FROM academic_terms
		ORDER BY start_date DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var terms []*models.AcademicTerm
	for rows.Next() {
		var term models.AcademicTerm
		if err := rows.Scan(
			&term.ID,
			&term.Code,
			&term.Name,
			&term.StartDate,
			&term.EndDate,
			&term.IsCurrent,
			&term.CreatedAt,
			&term.UpdatedAt,
		); err != nil {
			return nil, err
		}
		terms = append(terms, &term)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return terms, nil
}

// SetCurrent marks the given term current. The unset-all-then-set-one pair
// runs in one transaction so a concurrent reader never observes zero or two
// current terms after commit.
func (r *TermRepository) SetCurrent(ctx context.Context, termID int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE academic_terms SET is_current = false, updated_at = NOW() WHERE is_current = true`); err != nil {
		return fmt.Errorf("error unsetting current term: %w", err)
	}

	cmdTag, err := tx.Exec(ctx, `UPDATE academic_terms SET is_current = true, updated_at = NOW() WHERE id = $1`, termID)
	if err != nil {
		return fmt.Errorf("error setting current term: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTermNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}

	return nil
}
