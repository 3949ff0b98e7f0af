package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/acadsys/aims/internal/app/models"
	"github.com/acadsys/aims/internal/app/models/dto"
	"github.com/acadsys/aims/internal/pkg/apperrors"
)

// ProposalStore is the persistence surface for offering proposals.
type ProposalStore interface {
	Create(ctx context.Context, proposal *models.OfferingProposal) error
	GetByID(ctx context.Context, id int64) (*models.OfferingProposal, error)
	ListPending(ctx context.Context) ([]*models.OfferingProposal, error)
	Approve(ctx context.Context, proposalID, decidedBy int64) (*models.CourseOffering, error)
	Reject(ctx context.Context, proposalID, decidedBy int64) error
}

// OfferingCatalog is the persistence surface for offerings.
type OfferingCatalog interface {
	Create(ctx context.Context, offering *models.CourseOffering) error
	GetByID(ctx context.Context, id int64) (*models.CourseOffering, error)
	List(ctx context.Context, termID, departmentID *int64, status *models.OfferingStatus) ([]*models.CourseOffering, error)
	GetInstructors(ctx context.Context, offeringID int64) ([]*models.CourseInstructor, error)
}

// OfferingService drives the proposal workflow and offering catalog
type OfferingService interface {
	Propose(ctx context.Context, proposerUserID int64, req *dto.ProposeOfferingRequest) (*models.OfferingProposal, error)
	DecideProposal(ctx context.Context, proposalID, adminUserID int64, approve bool) (*models.CourseOffering, error)
	ListPendingProposals(ctx context.Context) ([]*models.OfferingProposal, error)
	GetProposal(ctx context.Context, id int64) (*models.OfferingProposal, error)
	CreateOffering(ctx context.Context, req *dto.CreateOfferingRequest) (*models.CourseOffering, error)
	GetOffering(ctx context.Context, id int64) (*models.CourseOffering, []*models.CourseInstructor, error)
	ListOfferings(ctx context.Context, termID, departmentID *int64, status *models.OfferingStatus) ([]*models.CourseOffering, error)
}

// offeringServiceImpl implements the OfferingService interface
type offeringServiceImpl struct {
	proposals ProposalStore
	offerings OfferingCatalog
	courses   CourseStore
	terms     TermStore
	logger    zerolog.Logger
}

// NewOfferingService creates a new offering service instance
func NewOfferingService(proposals ProposalStore, offerings OfferingCatalog, courses CourseStore, terms TermStore, logger zerolog.Logger) OfferingService {
	return &offeringServiceImpl{
		proposals: proposals,
		offerings: offerings,
		courses:   courses,
		terms:     terms,
		logger:    logger,
	}
}

// Propose creates a pending offering proposal
func (s *offeringServiceImpl) Propose(ctx context.Context, proposerUserID int64, req *dto.ProposeOfferingRequest) (*models.OfferingProposal, error) {
	if len(req.InstructorIDs) == 0 {
		return nil, apperrors.NewValidationError("at least one instructor is required")
	}

	if _, err := s.courses.GetByID(ctx, req.CourseID); err != nil {
		return nil, err
	}
	if _, err := s.terms.GetByID(ctx, req.TermID); err != nil {
		return nil, err
	}

	proposal := &models.OfferingProposal{
		CourseID:      req.CourseID,
		TermID:        req.TermID,
		DepartmentID:  req.DepartmentID,
		SlotID:        req.SlotID,
		Section:       req.Section,
		ProposedBy:    proposerUserID,
		InstructorIDs: req.InstructorIDs,
	}

	if err := s.proposals.Create(ctx, proposal); err != nil {
		return nil, fmt.Errorf("error creating proposal: %w", err)
	}

	s.logger.Info().
		Int64("proposalId", proposal.ID).
		Int64("proposerId", proposerUserID).
		Int64("courseId", req.CourseID).
		Msg("Offering proposed")

	return proposal, nil
}

// DecideProposal applies the admin decision. Approval materializes the
// offering and its instructor assignments atomically; rejection only flips
// the proposal status. Either way a proposal is decided exactly once.
func (s *offeringServiceImpl) DecideProposal(ctx context.Context, proposalID, adminUserID int64, approve bool) (*models.CourseOffering, error) {
	if approve {
		offering, err := s.proposals.Approve(ctx, proposalID, adminUserID)
		if err != nil {
			return nil, err
		}

		s.logger.Info().
			Int64("proposalId", proposalID).
			Int64("offeringId", offering.ID).
			Int64("adminId", adminUserID).
			Msg("Proposal approved")

		return offering, nil
	}

	if err := s.proposals.Reject(ctx, proposalID, adminUserID); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("proposalId", proposalID).
		Int64("adminId", adminUserID).
		Msg("Proposal rejected")

	return nil, nil
}

// ListPendingProposals lists proposals awaiting a decision
func (s *offeringServiceImpl) ListPendingProposals(ctx context.Context) ([]*models.OfferingProposal, error) {
	proposals, err := s.proposals.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing proposals: %w", err)
	}
	return proposals, nil
}

// GetProposal retrieves a proposal by id
func (s *offeringServiceImpl) GetProposal(ctx context.Context, id int64) (*models.OfferingProposal, error) {
	return s.proposals.GetByID(ctx, id)
}

// CreateOffering creates an offering directly, outside the proposal workflow
func (s *offeringServiceImpl) CreateOffering(ctx context.Context, req *dto.CreateOfferingRequest) (*models.CourseOffering, error) {
	if _, err := s.courses.GetByID(ctx, req.CourseID); err != nil {
		return nil, err
	}
	if _, err := s.terms.GetByID(ctx, req.TermID); err != nil {
		return nil, err
	}

	offering := &models.CourseOffering{
		CourseID:     req.CourseID,
		TermID:       req.TermID,
		DepartmentID: req.DepartmentID,
		SlotID:       req.SlotID,
		Section:      req.Section,
		Status:       models.OfferingOffered,
	}

	if err := s.offerings.Create(ctx, offering); err != nil {
		return nil, fmt.Errorf("error creating offering: %w", err)
	}

	return s.offerings.GetByID(ctx, offering.ID)
}

// GetOffering retrieves an offering with its instructor assignments
func (s *offeringServiceImpl) GetOffering(ctx context.Context, id int64) (*models.CourseOffering, []*models.CourseInstructor, error) {
	offering, err := s.offerings.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	instructors, err := s.offerings.GetInstructors(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading instructors: %w", err)
	}

	return offering, instructors, nil
}

// ListOfferings lists offerings filtered by term, department and status
func (s *offeringServiceImpl) ListOfferings(ctx context.Context, termID, departmentID *int64, status *models.OfferingStatus) ([]*models.CourseOffering, error) {
	offerings, err := s.offerings.List(ctx, termID, departmentID, status)
	if err != nil {
		return nil, fmt.Errorf("error listing offerings: %w", err)
	}
	return offerings, nil
}
