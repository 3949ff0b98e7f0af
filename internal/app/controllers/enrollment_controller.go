package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/acadsys/aims/internal/app/models"
	"github.com/acadsys/aims/internal/app/models/dto"
	"github.com/acadsys/aims/internal/app/repositories"
	"github.com/acadsys/aims/internal/app/services"
	"github.com/acadsys/aims/internal/middleware"
)

// EnrollmentController handles the enrollment approval pipeline endpoints
type EnrollmentController struct {
	enrollmentService services.EnrollmentService
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollmentService services.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{
		enrollmentService: enrollmentService,
	}
}

// Request godoc
// @Summary Request enrollment
// @Description Creates a pending enrollment request for the calling student after schedule and credit checks
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.EnrollRequest true "Offering to enroll in"
// @Success 201 {object} dto.APIResponse{data=dto.EnrollmentResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /enrollments [post]
func (c *EnrollmentController) Request(ctx *gin.Context) {
	var req dto.EnrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	enrollment, err := c.enrollmentService.Request(ctx, middleware.ActorID(ctx), req.OfferingID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(enrollmentToResponse(enrollment)))
}

// ListOwn godoc
// @Summary List own enrollments
// @Description Lists the calling student's enrollments, optionally filtered by term
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param termId query int false "Filter by term ID"
// @Success 200 {object} dto.APIResponse{data=dto.EnrollmentListResponse}
// @Router /enrollments [get]
func (c *EnrollmentController) ListOwn(ctx *gin.Context) {
	var termID *int64
	if raw := ctx.Query("termId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid term ID").
				WithField("termId")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		termID = &id
	}

	rows, err := c.enrollmentService.ListOwn(ctx, middleware.ActorID(ctx), termID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(rowsToListResponse(rows)))
}

// ListPending godoc
// @Summary List pending requests
// @Description Lists the requests waiting on the calling instructor or advisor
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.EnrollmentListResponse}
// @Failure 403 {object} dto.ErrorResponse
// @Router /enrollments/pending [get]
func (c *EnrollmentController) ListPending(ctx *gin.Context) {
	var (
		rows []*repositories.EnrollmentRow
		err  error
	)

	switch middleware.ActorRole(ctx) {
	case models.RoleInstructor:
		rows, err = c.enrollmentService.PendingForInstructor(ctx, middleware.ActorID(ctx))
	case models.RoleAdvisor:
		rows, err = c.enrollmentService.PendingForAdvisor(ctx, middleware.ActorID(ctx))
	default:
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied").
			WithDetails("Only instructors and advisors have a pending queue")
		ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
		return
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(rowsToListResponse(rows)))
}

// Decide godoc
// @Summary Decide an enrollment request
// @Description Applies the calling instructor's or advisor's decision to a pending request
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Enrollment ID"
// @Param request body dto.DecideRequest true "Decision"
// @Success 200 {object} dto.APIResponse{data=dto.EnrollmentResponse}
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /enrollments/{id}/decision [post]
func (c *EnrollmentController) Decide(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.DecideRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	enrollment, err := c.enrollmentService.Decide(ctx, id, middleware.ActorID(ctx), middleware.ActorRole(ctx), req.Decision == "approve")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(enrollmentToResponse(enrollment)))
}

// Override godoc
// @Summary Override enrollment status
// @Description Sets an enrollment status directly, outside the staged approval pipeline
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Enrollment ID"
// @Param request body dto.OverrideRequest true "Target status"
// @Success 200 {object} dto.APIResponse{data=dto.EnrollmentResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Router /enrollments/{id}/status [put]
func (c *EnrollmentController) Override(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.OverrideRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	enrollment, err := c.enrollmentService.Override(ctx, id, middleware.ActorID(ctx), models.EnrollmentStatus(req.Status))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(enrollmentToResponse(enrollment)))
}

// RecordGrade godoc
// @Summary Record a grade
// @Description Sets the grade on one enrollment; points and credits earned follow the grade policy
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Enrollment ID"
// @Param request body dto.RecordGradeRequest true "Grade letter"
// @Success 200 {object} dto.APIResponse{data=dto.EnrollmentResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /enrollments/{id}/grade [put]
func (c *EnrollmentController) RecordGrade(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.RecordGradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	enrollment, err := c.enrollmentService.RecordGrade(ctx, id, middleware.ActorID(ctx), middleware.ActorRole(ctx), req.Grade)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(enrollmentToResponse(enrollment)))
}

// Drop godoc
// @Summary Drop an enrollment
// @Description Removes an enrollment record; students may drop their own, admins any
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Enrollment ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /enrollments/{id} [delete]
func (c *EnrollmentController) Drop(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.enrollmentService.Drop(ctx, id, middleware.ActorID(ctx), middleware.ActorRole(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Enrollment dropped"}))
}

// parseIDParam reads a positive integer path parameter or writes a 400.
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id < 1 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid ID format").
			WithField(name)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// enrollmentToResponse maps a bare enrollment; joined context is absent on
// freshly created or mutated records.
func enrollmentToResponse(e *models.Enrollment) dto.EnrollmentResponse {
	return dto.EnrollmentResponse{
		ID:            e.ID,
		StudentID:     e.StudentID,
		CourseID:      e.CourseID,
		Status:        string(e.Status),
		Grade:         e.Grade,
		GradePoints:   e.GradePoints,
		CreditsEarned: e.CreditsEarned,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func rowToResponse(row *repositories.EnrollmentRow) dto.EnrollmentResponse {
	return dto.EnrollmentResponse{
		ID:            row.ID,
		StudentID:     row.StudentID,
		EntryNo:       row.EntryNo,
		StudentName:   row.StudentName,
		CourseID:      row.CourseID,
		CourseCode:    row.CourseCode,
		CourseName:    row.CourseName,
		Credits:       row.Credits,
		TermCode:      row.TermCode,
		SlotLabel:     row.SlotLabel,
		Status:        string(row.Status),
		Grade:         row.Grade,
		GradePoints:   row.GradePoints,
		CreditsEarned: row.CreditsEarned,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}

func rowsToListResponse(rows []*repositories.EnrollmentRow) dto.EnrollmentListResponse {
	enrollments := make([]dto.EnrollmentResponse, 0, len(rows))
	for _, row := range rows {
		enrollments = append(enrollments, rowToResponse(row))
	}
	return dto.EnrollmentListResponse{Enrollments: enrollments}
}
