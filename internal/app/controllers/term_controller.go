package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acadsys/aims/internal/app/models"
	"github.com/acadsys/aims/internal/app/models/dto"
	"github.com/acadsys/aims/internal/app/services"
	"github.com/acadsys/aims/internal/middleware"
)

// TermController handles academic term endpoints
type TermController struct {
	termService services.TermService
}

// NewTermController creates a new TermController
func NewTermController(termService services.TermService) *TermController {
	return &TermController{
		termService: termService,
	}
}

// Create godoc
// @Summary Create a term
// @Description Creates a new academic term; a term is never current on creation
// @Tags terms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTermRequest true "Term"
// @Success 201 {object} dto.APIResponse{data=dto.TermResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Router /terms [post]
func (c *TermController) Create(ctx *gin.Context) {
	var req dto.CreateTermRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	term, err := c.termService.Create(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(termToResponse(term)))
}

// GetAll godoc
// @Summary List terms
// @Description Lists all academic terms, newest first
// @Tags terms
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.TermListResponse}
// @Router /terms [get]
func (c *TermController) GetAll(ctx *gin.Context) {
	terms, err := c.termService.GetAll(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.TermResponse, 0, len(terms))
	for _, term := range terms {
		responses = append(responses, termToResponse(term))
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.TermListResponse{Terms: responses}))
}

// GetCurrent godoc
// @Summary Get the current term
// @Description Returns the term marked current
// @Tags terms
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.TermResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /terms/current [get]
func (c *TermController) GetCurrent(ctx *gin.Context) {
	term, err := c.termService.GetCurrent(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(termToResponse(term)))
}

// SetCurrent godoc
// @Summary Set the current term
// @Description Makes the given term the single current one; the previous current term is unset atomically
// @Tags terms
// @Produce json
// @Security BearerAuth
// @Param id path int true "Term ID"
// @Success 200 {object} dto.APIResponse{data=dto.TermResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /terms/{id}/current [put]
func (c *TermController) SetCurrent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	term, err := c.termService.SetCurrent(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(termToResponse(term)))
}

func termToResponse(term *models.AcademicTerm) dto.TermResponse {
	return dto.TermResponse{
		ID:        term.ID,
		Code:      term.Code,
		Name:      term.Name,
		StartDate: term.StartDate,
		EndDate:   term.EndDate,
		IsCurrent: term.IsCurrent,
	}
}
