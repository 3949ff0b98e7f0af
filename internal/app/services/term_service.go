package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/acadsys/aims/internal/app/models"
	"github.com/acadsys/aims/internal/app/models/dto"
	"github.com/acadsys/aims/internal/pkg/apperrors"
)

// TermAdminStore is the persistence surface for term management.
type TermAdminStore interface {
	Create(ctx context.Context, term *models.AcademicTerm) error
	GetByID(ctx context.Context, id int64) (*models.AcademicTerm, error)
	GetCurrent(ctx context.Context) (*models.AcademicTerm, error)
	GetAll(ctx context.Context) ([]*models.AcademicTerm, error)
	SetCurrent(ctx context.Context, termID int64) error
}

// TermService manages academic terms
type TermService interface {
	Create(ctx context.Context, req *dto.CreateTermRequest) (*models.AcademicTerm, error)
	GetAll(ctx context.Context) ([]*models.AcademicTerm, error)
	GetCurrent(ctx context.Context) (*models.AcademicTerm, error)
	SetCurrent(ctx context.Context, termID int64) (*models.AcademicTerm, error)
}

// termServiceImpl implements the TermService interface
type termServiceImpl struct {
	terms  TermAdminStore
	logger zerolog.Logger
}

// NewTermService creates a new term service instance
func NewTermService(terms TermAdminStore, logger zerolog.Logger) TermService {
	return &termServiceImpl{
		terms:  terms,
		logger: logger,
	}
}

// Create creates a new academic term, never current on creation
func (s *termServiceImpl) Create(ctx context.Context, req *dto.CreateTermRequest) (*models.AcademicTerm, error) {
	if strings.TrimSpace(req.Code) == "" {
		return nil, apperrors.NewValidationError("term code cannot be empty")
	}
	if !req.EndDate.After(req.StartDate) {
		return nil, apperrors.NewValidationError("term end date must be after start date")
	}

	term := &models.AcademicTerm{
		Code:      strings.TrimSpace(req.Code),
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}

	if err := s.terms.Create(ctx, term); err != nil {
		return nil, err
	}

	return term, nil
}

// GetAll lists all terms
func (s *termServiceImpl) GetAll(ctx context.Context) ([]*models.AcademicTerm, error) {
	terms, err := s.terms.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing terms: %w", err)
	}
	return terms, nil
}

// GetCurrent returns the term marked current
func (s *termServiceImpl) GetCurrent(ctx context.Context) (*models.AcademicTerm, error) {
	return s.terms.GetCurrent(ctx)
}

// SetCurrent atomically makes the given term the single current one. The
// previous current term is unset in the same transaction.
func (s *termServiceImpl) SetCurrent(ctx context.Context, termID int64) (*models.AcademicTerm, error) {
	if err := s.terms.SetCurrent(ctx, termID); err != nil {
		return nil, err
	}

	term, err := s.terms.GetByID(ctx, termID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("termId", termID).
		Str("code", term.Code).
		Msg("Current term changed")

	return term, nil
}
