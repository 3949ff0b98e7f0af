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

// SlotRepository handles database operations for timeslots
type SlotRepository struct {
	db *pgxpool.Pool
}

// NewSlotRepository creates a new slot repository
func NewSlotRepository(db *pgxpool.Pool) *SlotRepository {
	return &SlotRepository{
		db: db,
	}
}

// GetByID retrieves a slot by ID
func (r *SlotRepository) GetByID(ctx context.Context, id int64) (*models.Slot, error) {
	query := `
		SELECT id, label, timing
		FROM slots
		WHERE id = $1
	`

	var slot models.Slot
	err := r.db.QueryRow(ctx, query, id).Scan(
		&slot.ID,
		&slot.Label,
		&slot.Timing,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSlotNotFound
		}
		return nil, fmt.Errorf("error retrieving slot: %w", err)
	}

	return &slot, nil
}

// GetAll retrieves all slots
func (r *SlotRepository) GetAll(ctx context.Context) ([]*models.Slot, error) {
	query := `
		SELECT id, label, timing
		FROM slots
		ORDER BY label
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []*models.Slot
	for rows.Next() {
		var slot models.Slot
		if err := rows.Scan(
			&slot.ID,
			&slot.Label,
			&slot.Timing,
		); err != nil {
			return nil, err
		}
		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return slots, nil
}
