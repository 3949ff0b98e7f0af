package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acadsys/aims/internal/app/models/dto"
	"github.com/acadsys/aims/internal/app/services"
	"github.com/acadsys/aims/internal/middleware"
)

// BatchController handles bulk enrollment and grading endpoints
type BatchController struct {
	batchService services.BatchService
}

// NewBatchController creates a new BatchController
func NewBatchController(batchService services.BatchService) *BatchController {
	return &BatchController{
		batchService: batchService,
	}
}

// EnrollCohort godoc
// @Summary Enroll a cohort
// @Description Enrolls every student of an admission-year batch into a course as approved, bypassing eligibility checks
// @Tags batch
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.EnrollCohortRequest true "Cohort enrollment"
// @Success 200 {object} dto.APIResponse{data=dto.EnrollCohortResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /enrollments/cohort [post]
func (c *BatchController) EnrollCohort(ctx *gin.Context) {
	var req dto.EnrollCohortRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	count, err := c.batchService.EnrollCohort(ctx, req.CourseID, req.TermID, req.Batch)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.EnrollCohortResponse{Enrolled: count}))
}

// UploadGrades godoc
// @Summary Upload a grade roster
// @Description Applies grades entry by entry; each input entry lands in the succeeded or failed partition
// @Tags batch
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UploadGradesRequest true "Grade roster"
// @Success 200 {object} dto.APIResponse{data=dto.UploadGradesResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /grades/upload [post]
func (c *BatchController) UploadGrades(ctx *gin.Context) {
	var req dto.UploadGradesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	result, err := c.batchService.UploadGrades(ctx, req.CourseID, req.TermID, req.Entries)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(result))
}
