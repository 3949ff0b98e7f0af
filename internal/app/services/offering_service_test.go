package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acadsys/aims/internal/app/models"
	"github.com/acadsys/aims/internal/app/models/dto"
	"github.com/acadsys/aims/internal/pkg/apperrors"
)

type fakeProposalStore struct {
	byID     map[int64]*models.OfferingProposal
	nextID   int64
	catalog  *fakeOfferingCatalog
	rejected []int64
}

func newFakeProposalStore(catalog *fakeOfferingCatalog) *fakeProposalStore {
	return &fakeProposalStore{
		byID:    make(map[int64]*models.OfferingProposal),
		nextID:  1,
		catalog: catalog,
	}
}

func (f *fakeProposalStore) Create(_ context.Context, proposal *models.OfferingProposal) error {
	proposal.ID = f.nextID
	proposal.Status = models.ProposalPending
	f.byID[proposal.ID] = proposal
	f.nextID++
	return nil
}

func (f *fakeProposalStore) GetByID(_ context.Context, id int64) (*models.OfferingProposal, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, apperrors.ErrProposalNotFound
	}
	return p, nil
}

func (f *fakeProposalStore) ListPending(context.Context) ([]*models.OfferingProposal, error) {
	var pending []*models.OfferingProposal
	for _, p := range f.byID {
		if p.Status == models.ProposalPending {
			pending = append(pending, p)
		}
	}
	return pending, nil
}

func (f *fakeProposalStore) Approve(_ context.Context, proposalID, decidedBy int64) (*models.CourseOffering, error) {
	p, ok := f.byID[proposalID]
	if !ok {
		return nil, apperrors.ErrProposalNotFound
	}
	if p.Status != models.ProposalPending {
		return nil, apperrors.NewAlreadyProcessedError(string(p.Status))
	}

	offering := &models.CourseOffering{
		CourseID:     p.CourseID,
		TermID:       p.TermID,
		DepartmentID: p.DepartmentID,
		SlotID:       p.SlotID,
		Section:      p.Section,
		Status:       models.OfferingOffered,
	}
	if err := f.catalog.Create(context.Background(), offering); err != nil {
		return nil, err
	}

	p.Status = models.ProposalApproved
	p.DecidedBy = &decidedBy
	return offering, nil
}

func (f *fakeProposalStore) Reject(_ context.Context, proposalID, decidedBy int64) error {
	p, ok := f.byID[proposalID]
	if !ok {
		return apperrors.ErrProposalNotFound
	}
	if p.Status != models.ProposalPending {
		return apperrors.NewAlreadyProcessedError(string(p.Status))
	}
	p.Status = models.ProposalRejected
	p.DecidedBy = &decidedBy
	f.rejected = append(f.rejected, proposalID)
	return nil
}

type fakeOfferingCatalog struct {
	byID   map[int64]*models.CourseOffering
	nextID int64
}

func newFakeOfferingCatalog() *fakeOfferingCatalog {
	return &fakeOfferingCatalog{byID: make(map[int64]*models.CourseOffering), nextID: 100}
}

func (f *fakeOfferingCatalog) Create(_ context.Context, offering *models.CourseOffering) error {
	offering.ID = f.nextID
	f.byID[offering.ID] = offering
	f.nextID++
	return nil
}

func (f *fakeOfferingCatalog) GetByID(_ context.Context, id int64) (*models.CourseOffering, error) {
	o, ok := f.byID[id]
	if !ok {
		return nil, apperrors.ErrOfferingNotFound
	}
	return o, nil
}

func (f *fakeOfferingCatalog) List(context.Context, *int64, *int64, *models.OfferingStatus) ([]*models.CourseOffering, error) {
	var offerings []*models.CourseOffering
	for _, o := range f.byID {
		offerings = append(offerings, o)
	}
	return offerings, nil
}

func (f *fakeOfferingCatalog) GetInstructors(context.Context, int64) ([]*models.CourseInstructor, error) {
	return nil, nil
}

func newOfferingService(t *testing.T) (OfferingService, *fakeProposalStore, *fakeOfferingCatalog) {
	t.Helper()

	catalog := newFakeOfferingCatalog()
	proposals := newFakeProposalStore(catalog)
	courses := &fakeCourseStore{
		byID: map[int64]*models.Course{1: {ID: 1, Code: "CS201", Credits: 4}},
	}
	terms := &fakeTermStore{
		byID: map[int64]*models.AcademicTerm{1: {ID: 1, Code: "2025-II"}},
	}

	svc := NewOfferingService(proposals, catalog, courses, terms, zerolog.Nop())
	return svc, proposals, catalog
}

func proposeOffering(t *testing.T, svc OfferingService) *models.OfferingProposal {
	t.Helper()
	proposal, err := svc.Propose(context.Background(), instructorUserID, &dto.ProposeOfferingRequest{
		CourseID:      1,
		TermID:        1,
		DepartmentID:  1,
		Section:       "A",
		InstructorIDs: []int64{7, 8},
	})
	require.NoError(t, err)
	return proposal
}

func TestPropose_CreatesPending(t *testing.T) {
	svc, _, _ := newOfferingService(t)

	proposal := proposeOffering(t, svc)
	assert.Equal(t, models.ProposalPending, proposal.Status)
	assert.Equal(t, instructorUserID, proposal.ProposedBy)
}

func TestPropose_RequiresInstructors(t *testing.T) {
	svc, _, _ := newOfferingService(t)

	_, err := svc.Propose(context.Background(), instructorUserID, &dto.ProposeOfferingRequest{
		CourseID: 1, TermID: 1, DepartmentID: 1, Section: "A",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestPropose_UnknownCourse(t *testing.T) {
	svc, _, _ := newOfferingService(t)

	_, err := svc.Propose(context.Background(), instructorUserID, &dto.ProposeOfferingRequest{
		CourseID: 99, TermID: 1, DepartmentID: 1, Section: "A", InstructorIDs: []int64{7},
	})
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestDecideProposal_ApproveMaterializesOffering(t *testing.T) {
	svc, proposals, catalog := newOfferingService(t)
	proposal := proposeOffering(t, svc)

	offering, err := svc.DecideProposal(context.Background(), proposal.ID, adminUserID, true)
	require.NoError(t, err)
	require.NotNil(t, offering)
	assert.Equal(t, models.OfferingOffered, offering.Status)
	assert.Equal(t, models.ProposalApproved, proposals.byID[proposal.ID].Status)
	assert.Len(t, catalog.byID, 1)
}

func TestDecideProposal_SecondApproveFails(t *testing.T) {
	svc, _, catalog := newOfferingService(t)
	proposal := proposeOffering(t, svc)

	_, err := svc.DecideProposal(context.Background(), proposal.ID, adminUserID, true)
	require.NoError(t, err)

	_, err = svc.DecideProposal(context.Background(), proposal.ID, adminUserID, true)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyProcessed)
	assert.Len(t, catalog.byID, 1)

	var custom *apperrors.CustomError
	require.True(t, errors.As(err, &custom))
	assert.Contains(t, custom.Message, string(models.ProposalApproved))
}

func TestDecideProposal_RejectThenApproveFails(t *testing.T) {
	svc, proposals, catalog := newOfferingService(t)
	proposal := proposeOffering(t, svc)

	offering, err := svc.DecideProposal(context.Background(), proposal.ID, adminUserID, false)
	require.NoError(t, err)
	assert.Nil(t, offering)
	assert.Equal(t, models.ProposalRejected, proposals.byID[proposal.ID].Status)

	_, err = svc.DecideProposal(context.Background(), proposal.ID, adminUserID, true)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyProcessed)
	assert.Empty(t, catalog.byID)
}

func TestDecideProposal_UnknownProposal(t *testing.T) {
	svc, _, _ := newOfferingService(t)

	_, err := svc.DecideProposal(context.Background(), 42, adminUserID, true)
	assert.ErrorIs(t, err, apperrors.ErrProposalNotFound)
}

func TestCreateOffering_Direct(t *testing.T) {
	svc, _, catalog := newOfferingService(t)

	offering, err := svc.CreateOffering(context.Background(), &dto.CreateOfferingRequest{
		CourseID: 1, TermID: 1, DepartmentID: 1, Section: "B",
	})
	require.NoError(t, err)
	assert.Equal(t, models.OfferingOffered, offering.Status)
	assert.Len(t, catalog.byID, 1)
}
