package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/acadsys/aims/internal/app/controllers"
	"github.com/acadsys/aims/internal/app/models"
	"github.com/acadsys/aims/internal/app/models/dto"
	"github.com/acadsys/aims/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	enrollmentController *controllers.EnrollmentController,
	batchController *controllers.BatchController,
	offeringController *controllers.OfferingController,
	termController *controllers.TermController,
	catalogController *controllers.CatalogController,
	recordController *controllers.RecordController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		// Catalog routes (all authenticated users)
		authenticated.GET("/departments", catalogController.ListDepartments)
		authenticated.GET("/slots", catalogController.ListSlots)
		authenticated.GET("/courses", catalogController.ListCourses)
		authenticated.GET("/courses/:id", catalogController.GetCourse)

		coursesAdminProtected := authenticated.Group("/courses")
		coursesAdminProtected.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			coursesAdminProtected.POST("", catalogController.CreateCourse)
		}

		// Term routes
		terms := authenticated.Group("/terms")
		{
			terms.GET("", termController.GetAll)
			terms.GET("/current", termController.GetCurrent)

			termsAdminProtected := terms.Group("")
			termsAdminProtected.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				termsAdminProtected.POST("", termController.Create)
				termsAdminProtected.PUT("/:id/current", termController.SetCurrent)
			}
		}

		// Offering routes
		offerings := authenticated.Group("/offerings")
		{
			offerings.GET("", offeringController.ListOfferings)

			// Proposal workflow
			proposals := offerings.Group("/proposals")
			{
				proposalsInstructorProtected := proposals.Group("")
				proposalsInstructorProtected.Use(authMiddleware.RoleRequired(models.RoleInstructor))
				{
					proposalsInstructorProtected.POST("", offeringController.Propose)
				}

				proposalsAdminProtected := proposals.Group("")
				proposalsAdminProtected.Use(authMiddleware.RoleRequired(models.RoleAdmin))
				{
					proposalsAdminProtected.GET("", offeringController.ListPendingProposals)
					proposalsAdminProtected.GET("/:id", offeringController.GetProposal)
					proposalsAdminProtected.POST("/:id/decision", offeringController.DecideProposal)
				}
			}

			offerings.GET("/:id", offeringController.GetOffering)

			offeringsAdminProtected := offerings.Group("")
			offeringsAdminProtected.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				offeringsAdminProtected.POST("", offeringController.CreateOffering)
			}
		}

		// Enrollment routes
		enrollments := authenticated.Group("/enrollments")
		{
			enrollmentsStudentProtected := enrollments.Group("")
			enrollmentsStudentProtected.Use(authMiddleware.RoleRequired(models.RoleStudent))
			{
				enrollmentsStudentProtected.POST("", enrollmentController.Request)
				enrollmentsStudentProtected.GET("", enrollmentController.ListOwn)
			}

			enrollmentsStaffProtected := enrollments.Group("")
			enrollmentsStaffProtected.Use(authMiddleware.RoleRequired(models.RoleInstructor, models.RoleAdvisor))
			{
				enrollmentsStaffProtected.GET("/pending", enrollmentController.ListPending)
				enrollmentsStaffProtected.POST("/:id/decision", enrollmentController.Decide)
			}

			enrollmentsGradeProtected := enrollments.Group("")
			enrollmentsGradeProtected.Use(authMiddleware.RoleRequired(models.RoleInstructor, models.RoleAdmin))
			{
				enrollmentsGradeProtected.PUT("/:id/grade", enrollmentController.RecordGrade)
			}

			enrollmentsDropProtected := enrollments.Group("")
			enrollmentsDropProtected.Use(authMiddleware.RoleRequired(models.RoleStudent, models.RoleAdmin))
			{
				enrollmentsDropProtected.DELETE("/:id", enrollmentController.Drop)
			}

			enrollmentsAdminProtected := enrollments.Group("")
			enrollmentsAdminProtected.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				enrollmentsAdminProtected.PUT("/:id/status", enrollmentController.Override)
				enrollmentsAdminProtected.POST("/cohort", batchController.EnrollCohort)
			}
		}

		// Bulk grading (admin)
		gradesAdminProtected := authenticated.Group("/grades")
		gradesAdminProtected.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			gradesAdminProtected.POST("/upload", batchController.UploadGrades)
		}

		// Academic record (student)
		recordStudentProtected := authenticated.Group("/students/me")
		recordStudentProtected.Use(authMiddleware.RoleRequired(models.RoleStudent))
		{
			recordStudentProtected.GET("/record", recordController.GetOwnRecord)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.NewAPIResponse(gin.H{"status": "ok"}))
	})
}
