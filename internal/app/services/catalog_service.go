package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/acadsys/aims/internal/app/models"
	"github.com/acadsys/aims/internal/app/models/dto"
	"github.com/acadsys/aims/internal/app/repositories"
	"github.com/acadsys/aims/internal/pkg/apperrors"
	"github.com/acadsys/aims/internal/pkg/validation"
)

// CatalogService exposes the catalog lookups (departments, slots, courses)
// and admin course creation.
type CatalogService interface {
	ListDepartments(ctx context.Context) ([]*models.Department, error)
	ListSlots(ctx context.Context) ([]*models.Slot, error)
	ListCourses(ctx context.Context, departmentID *int64) ([]*models.Course, error)
	GetCourse(ctx context.Context, id int64) (*models.Course, error)
	CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error)
}

// catalogServiceImpl implements the CatalogService interface
type catalogServiceImpl struct {
	departments *repositories.DepartmentRepository
	slots       *repositories.SlotRepository
	courses     *repositories.CourseRepository
}

// NewCatalogService creates a new catalog service instance
func NewCatalogService(departments *repositories.DepartmentRepository, slots *repositories.SlotRepository, courses *repositories.CourseRepository) CatalogService {
	return &catalogServiceImpl{
		departments: departments,
		slots:       slots,
		courses:     courses,
	}
}

// ListDepartments lists all departments
func (s *catalogServiceImpl) ListDepartments(ctx context.Context) ([]*models.Department, error) {
	departments, err := s.departments.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing departments: %w", err)
	}
	return departments, nil
}

// ListSlots lists all timeslots
func (s *catalogServiceImpl) ListSlots(ctx context.Context) ([]*models.Slot, error) {
	slots, err := s.slots.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing slots: %w", err)
	}
	return slots, nil
}

// ListCourses lists courses, optionally filtered by department
func (s *catalogServiceImpl) ListCourses(ctx context.Context, departmentID *int64) ([]*models.Course, error) {
	courses, err := s.courses.GetAll(ctx, departmentID)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	return courses, nil
}

// GetCourse retrieves a course by id
func (s *catalogServiceImpl) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	return s.courses.GetByID(ctx, id)
}

// CreateCourse adds a course to the catalog. The code is normalized to
// upper case and must match the institutional course id format.
func (s *catalogServiceImpl) CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if !validation.IsValidCourseID(code) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid course code %q", req.Code))
	}

	if _, err := s.departments.GetByID(ctx, req.DepartmentID); err != nil {
		return nil, err
	}

	course := &models.Course{
		DepartmentID: req.DepartmentID,
		Code:         code,
		Name:         req.Name,
		Description:  req.Description,
		Credits:      req.Credits,
	}

	if err := s.courses.Create(ctx, course); err != nil {
		return nil, err
	}

	return course, nil
}
