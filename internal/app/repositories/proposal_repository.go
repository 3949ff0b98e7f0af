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

// ProposalRepository handles database operations for offering proposals
type ProposalRepository struct {
	db *pgxpool.Pool
}

// NewProposalRepository creates a new proposal repository
func NewProposalRepository(db *pgxpool.Pool) *ProposalRepository {
	return &ProposalRepository{
		db: db,
	}
}

// Create creates a new pending proposal
func (r *ProposalRepository) Create(ctx context.Context, proposal *models.OfferingProposal) error {
	query := `
		INSERT INTO offering_proposals (course_id, term_id, department_id, slot_id, section, proposed_by, instructor_ids, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		proposal.CourseID,
		proposal.TermID,
		proposal.DepartmentID,
		proposal.SlotID,
		proposal.Section,
		proposal.ProposedBy,
		proposal.InstructorIDs,
		models.ProposalPending,
	).Scan(&proposal.ID, &proposal.CreatedAt)

	if err != nil {
		return fmt.Errorf("error creating proposal: %w", err)
	}

	proposal.Status = models.ProposalPending
	return nil
}

// GetByID retrieves a proposal by ID
func (r *ProposalRepository) GetByID(ctx context.Context, id int64) (*models.OfferingProposal, error) {
	query := `
		SELECT id, course_id, term_id, department_id, slot_id, section, proposed_by, instructor_ids,
		       status, decided_by, decided_at, created_at
		FROM offering_proposals
		WHERE id = $1
	`

	proposal, err := scanProposal(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProposalNotFound
		}
		return nil, fmt.Errorf("error retrieving proposal: %w", err)
	}

	return proposal, nil
}

func scanProposal(row pgx.Row) (*models.OfferingProposal, error) {
	var proposal models.OfferingProposal
	err := row.Scan(
		&proposal.ID,
		&proposal.CourseID,
		&proposal.TermID,
		&proposal.DepartmentID,
		&proposal.SlotID,
		&proposal.Section,
		&proposal.ProposedBy,
		&proposal.InstructorIDs,
		&proposal.Status,
		&proposal.DecidedBy,
		&proposal.DecidedAt,
		&proposal.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &proposal, nil
}

// ListPending retrieves all proposals still awaiting a decision
func (r *ProposalRepository) ListPending(ctx context.Context) ([]*models.OfferingProposal, error) {
	query := `
		SELECT id, course_id, term_id, department_id, slot_id, section, proposed_by, instructor_ids,
		       status, decided_by, decided_at, created_at
		FROM offering_proposals
		WHERE status = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, models.ProposalPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var proposals []*models.OfferingProposal
	for rows.Next() {
		proposal, err := scanProposal(rows)
		if err != nil {
			return nil, err
		}
		proposals = append(proposals, proposal)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return proposals, nil
}

// Approve decides a pending proposal and materializes its offering. The
// whole sequence runs in one transaction: re-check Pending under a row
// lock, create the offering, create one instructor assignment per proposed
// instructor with the first as coordinator, mark the proposal Approved.
// Any failure rolls everything back.
func (r *ProposalRepository) Approve(ctx context.Context, proposalID, decidedBy int64) (*models.CourseOffering, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("error beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		SELECT id, course_id, term_id, department_id, slot_id, section, proposed_by, instructor_ids,
		       status, decided_by, decided_at, created_at
		FROM offering_proposals
		WHERE id = $1
		FOR UPDATE
	`
	proposal, err := scanProposal(tx.QueryRow(ctx, query, proposalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProposalNotFound
		}
		return nil, fmt.Errorf("error locking proposal: %w", err)
	}

	if proposal.Status != models.ProposalPending {
		return nil, apperrors.NewAlreadyProcessedError(string(proposal.Status))
	}

	offering := &models.CourseOffering{
		CourseID:     proposal.CourseID,
		TermID:       proposal.TermID,
		DepartmentID: proposal.DepartmentID,
		SlotID:       proposal.SlotID,
		Section:      proposal.Section,
		Status:       models.OfferingOffered,
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO course_offerings (course_id, term_id, department_id, slot_id, section, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`,
		offering.CourseID,
		offering.TermID,
		offering.DepartmentID,
		offering.SlotID,
		offering.Section,
		offering.Status,
	).Scan(&offering.ID, &offering.CreatedAt, &offering.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("error creating offering from proposal: %w", err)
	}

	for i, instructorID := range proposal.InstructorIDs {
		_, err := tx.Exec(ctx, `
			INSERT INTO course_instructors (offering_id, instructor_id, is_coordinator)
			VALUES ($1, $2, $3)`,
			offering.ID, instructorID, i == 0)
		if err != nil {
			return nil, fmt.Errorf("error assigning instructor %d: %w", instructorID, err)
		}
	}

	_, err = tx.Exec(ctx, `
		UPDATE offering_proposals
		SET status = $1, decided_by = $2, decided_at = NOW()
		WHERE id = $3`,
		models.ProposalApproved, decidedBy, proposalID)
	if err != nil {
		return nil, fmt.Errorf("error updating proposal status: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("error committing transaction: %w", err)
	}

	return offering, nil
}

// Reject marks a pending proposal Rejected with no side effects. The
// update is conditional on the Pending status, so a proposal decided in
// the meantime fails instead of being overwritten.
func (r *ProposalRepository) Reject(ctx context.Context, proposalID, decidedBy int64) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE offering_proposals
		SET status = $1, decided_by = $2, decided_at = NOW()
		WHERE id = $3 AND status = $4`,
		models.ProposalRejected, decidedBy, proposalID, models.ProposalPending)
	if err != nil {
		return fmt.Errorf("error rejecting proposal: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		proposal, err := r.GetByID(ctx, proposalID)
		if err != nil {
			return err
		}
		return apperrors.NewAlreadyProcessedError(string(proposal.Status))
	}

	return nil
}
