package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acadsys/aims/internal/app/models/dto"
	"github.com/acadsys/aims/internal/app/services"
	"github.com/acadsys/aims/internal/middleware"
)

// RecordController handles academic record endpoints
type RecordController struct {
	recordService services.RecordService
}

// NewRecordController creates a new RecordController
func NewRecordController(recordService services.RecordService) *RecordController {
	return &RecordController{
		recordService: recordService,
	}
}

// GetOwnRecord godoc
// @Summary Get own academic record
// @Description Returns the calling student's grade card: per-term SGPA, running CGPA and credit totals
// @Tags records
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.AcademicRecordResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /students/me/record [get]
func (c *RecordController) GetOwnRecord(ctx *gin.Context) {
	record, err := c.recordService.AcademicRecord(ctx, middleware.ActorID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(record))
}
