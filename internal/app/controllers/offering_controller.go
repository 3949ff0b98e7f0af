package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/acadsys/aims/internal/app/models"
	"github.com/acadsys/aims/internal/app/models/dto"
	"github.com/acadsys/aims/internal/app/services"
	"github.com/acadsys/aims/internal/middleware"
)

// OfferingController handles offering catalog and proposal workflow endpoints
type OfferingController struct {
	offeringService services.OfferingService
}

// NewOfferingController creates a new OfferingController
func NewOfferingController(offeringService services.OfferingService) *OfferingController {
	return &OfferingController{
		offeringService: offeringService,
	}
}

// Propose godoc
// @Summary Propose an offering
// @Description Creates a pending offering proposal for admin review
// @Tags offerings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ProposeOfferingRequest true "Offering proposal"
// @Success 201 {object} dto.APIResponse{data=dto.ProposalResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Router /offerings/proposals [post]
func (c *OfferingController) Propose(ctx *gin.Context) {
	var req dto.ProposeOfferingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	proposal, err := c.offeringService.Propose(ctx, middleware.ActorID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(proposalToResponse(proposal)))
}

// ListPendingProposals godoc
// @Summary List pending proposals
// @Description Lists offering proposals awaiting a decision
// @Tags offerings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ProposalListResponse}
// @Router /offerings/proposals [get]
func (c *OfferingController) ListPendingProposals(ctx *gin.Context) {
	proposals, err := c.offeringService.ListPendingProposals(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.ProposalResponse, 0, len(proposals))
	for _, proposal := range proposals {
		responses = append(responses, proposalToResponse(proposal))
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.ProposalListResponse{Proposals: responses}))
}

// GetProposal godoc
// @Summary Get a proposal
// @Description Retrieves one offering proposal by ID
// @Tags offerings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Proposal ID"
// @Success 200 {object} dto.APIResponse{data=dto.ProposalResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /offerings/proposals/{id} [get]
func (c *OfferingController) GetProposal(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	proposal, err := c.offeringService.GetProposal(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(proposalToResponse(proposal)))
}

// DecideProposal godoc
// @Summary Decide a proposal
// @Description Approves or rejects a pending proposal; approval materializes the offering with its instructors
// @Tags offerings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Proposal ID"
// @Param request body dto.DecideProposalRequest true "Decision"
// @Success 200 {object} dto.APIResponse{data=dto.OfferingResponse}
// @Failure 409 {object} dto.ErrorResponse
// @Router /offerings/proposals/{id}/decision [post]
func (c *OfferingController) DecideProposal(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.DecideProposalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	offering, err := c.offeringService.DecideProposal(ctx, id, middleware.ActorID(ctx), req.Decision == "approve")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if offering == nil {
		ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Proposal rejected"}))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(offeringToResponse(offering, nil)))
}

// CreateOffering godoc
// @Summary Create an offering
// @Description Creates an offering directly, outside the proposal workflow
// @Tags offerings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateOfferingRequest true "Offering"
// @Success 201 {object} dto.APIResponse{data=dto.OfferingResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Router /offerings [post]
func (c *OfferingController) CreateOffering(ctx *gin.Context) {
	var req dto.CreateOfferingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	offering, err := c.offeringService.CreateOffering(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(offeringToResponse(offering, nil)))
}

// GetOffering godoc
// @Summary Get an offering
// @Description Retrieves one offering with its instructor assignments
// @Tags offerings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Offering ID"
// @Success 200 {object} dto.APIResponse{data=dto.OfferingResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /offerings/{id} [get]
func (c *OfferingController) GetOffering(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	offering, instructors, err := c.offeringService.GetOffering(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(offeringToResponse(offering, instructors)))
}

// ListOfferings godoc
// @Summary List offerings
// @Description Lists offerings filtered by term, department and status
// @Tags offerings
// @Produce json
// @Security BearerAuth
// @Param termId query int false "Filter by term ID"
// @Param departmentId query int false "Filter by department ID"
// @Param status query string false "Filter by offering status"
// @Success 200 {object} dto.APIResponse{data=dto.OfferingListResponse}
// @Router /offerings [get]
func (c *OfferingController) ListOfferings(ctx *gin.Context) {
	termID, ok := parseOptionalIDQuery(ctx, "termId")
	if !ok {
		return
	}
	departmentID, ok := parseOptionalIDQuery(ctx, "departmentId")
	if !ok {
		return
	}

	var status *models.OfferingStatus
	if raw := ctx.Query("status"); raw != "" {
		s := models.OfferingStatus(raw)
		if !s.IsValid() {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid offering status").
				WithField("status")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		status = &s
	}

	offerings, err := c.offeringService.ListOfferings(ctx, termID, departmentID, status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.OfferingResponse, 0, len(offerings))
	for _, offering := range offerings {
		responses = append(responses, offeringToResponse(offering, nil))
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.OfferingListResponse{Offerings: responses}))
}

// parseOptionalIDQuery reads an optional positive integer query parameter.
func parseOptionalIDQuery(ctx *gin.Context, name string) (*int64, bool) {
	raw := ctx.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid ID format").
			WithField(name)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return nil, false
	}
	return &id, true
}

func offeringToResponse(offering *models.CourseOffering, instructors []*models.CourseInstructor) dto.OfferingResponse {
	response := dto.OfferingResponse{
		ID:       offering.ID,
		CourseID: offering.CourseID,
		Section:  offering.Section,
		Status:   string(offering.Status),
	}
	if offering.Course != nil {
		response.CourseCode = offering.Course.Code
		response.CourseName = offering.Course.Name
		response.Credits = offering.Course.Credits
	}
	if offering.Term != nil {
		response.TermCode = offering.Term.Code
	}
	if offering.Department != nil {
		response.Department = offering.Department.Name
	}
	if offering.Slot != nil {
		response.SlotLabel = &offering.Slot.Label
	}
	for _, ci := range instructors {
		item := dto.OfferingInstructorResponse{
			InstructorID:  ci.InstructorID,
			IsCoordinator: ci.IsCoordinator,
		}
		if ci.Instructor != nil && ci.Instructor.User != nil {
			item.Name = ci.Instructor.User.FullName()
		}
		response.Instructors = append(response.Instructors, item)
	}
	return response
}

func proposalToResponse(proposal *models.OfferingProposal) dto.ProposalResponse {
	response := dto.ProposalResponse{
		ID:            proposal.ID,
		CourseID:      proposal.CourseID,
		TermID:        proposal.TermID,
		DepartmentID:  proposal.DepartmentID,
		SlotID:        proposal.SlotID,
		Section:       proposal.Section,
		ProposedBy:    proposal.ProposedBy,
		InstructorIDs: proposal.InstructorIDs,
		Status:        string(proposal.Status),
		DecidedBy:     proposal.DecidedBy,
		DecidedAt:     proposal.DecidedAt,
		CreatedAt:     proposal.CreatedAt,
	}
	if proposal.Course != nil {
		response.CourseCode = proposal.Course.Code
	}
	if proposal.Term != nil {
		response.TermCode = proposal.Term.Code
	}
	return response
}
