package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acadsys/aims/internal/app/models/dto"
	"github.com/acadsys/aims/internal/app/services"
	"github.com/acadsys/aims/internal/middleware"
)

// CatalogController handles the read-only catalog endpoints
type CatalogController struct {
	catalogService services.CatalogService
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalogService services.CatalogService) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
	}
}

// ListDepartments godoc
// @Summary List departments
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.DepartmentResponse}
// @Router /departments [get]
func (c *CatalogController) ListDepartments(ctx *gin.Context) {
	departments, err := c.catalogService.ListDepartments(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.DepartmentResponse, 0, len(departments))
	for _, d := range departments {
		responses = append(responses, dto.DepartmentResponse{ID: d.ID, Name: d.Name, Code: d.Code})
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(responses))
}

// ListSlots godoc
// @Summary List timeslots
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.SlotResponse}
// @Router /slots [get]
func (c *CatalogController) ListSlots(ctx *gin.Context) {
	slots, err := c.catalogService.ListSlots(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.SlotResponse, 0, len(slots))
	for _, s := range slots {
		responses = append(responses, dto.SlotResponse{ID: s.ID, Label: s.Label, Timing: s.Timing})
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(responses))
}

// ListCourses godoc
// @Summary List courses
// @Description Lists courses, optionally filtered by department
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param departmentId query int false "Filter by department ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Course}
// @Router /courses [get]
func (c *CatalogController) ListCourses(ctx *gin.Context) {
	departmentID, ok := parseOptionalIDQuery(ctx, "departmentId")
	if !ok {
		return
	}

	courses, err := c.catalogService.ListCourses(ctx, departmentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(courses))
}

// CreateCourse godoc
// @Summary Create a course
// @Description Adds a course to the catalog
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCourseRequest true "Course"
// @Success 201 {object} dto.APIResponse{data=models.Course}
// @Failure 400 {object} dto.ErrorResponse
// @Router /courses [post]
func (c *CatalogController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	course, err := c.catalogService.CreateCourse(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(course))
}

// GetCourse godoc
// @Summary Get a course
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=models.Course}
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/{id} [get]
func (c *CatalogController) GetCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	course, err := c.catalogService.GetCourse(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(course))
}
