package routes

import (
	"log"

	"learnhub/backend/config"
	"learnhub/backend/controllers"
	"learnhub/backend/middleware"
	"learnhub/backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, logger *log.Logger) {
	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)
	educatorMiddleware := middleware.RoleMiddleware(db, models.RoleEducator)
	recruiterMiddleware := middleware.RoleMiddleware(db, models.RoleRecruiter)

	// User routes
	userController := controllers.NewUserController(db, cfg)
	app.Get("/api/user/profile", authMiddleware, userController.GetProfile)
	app.Put("/api/user/profile", authMiddleware, userController.UpdateProfile)

	// Dashboard routes
	dashboardController := controllers.NewDashboardController(db, cfg, logger)
	app.Get("/api/dashboard/stats", authMiddleware, dashboardController.GetStats)

	// Course routes; /enrolled must be registered before /:id
	coursesController := controllers.NewCoursesController(db, cfg, logger)
	courses := app.Group("/api/courses")
	courses.Get("/", coursesController.ListCourses)
	courses.Get("/enrolled", authMiddleware, coursesController.ListEnrollments)
	courses.Get("/:id", coursesController.GetCourse)
	courses.Post("/:id/enroll", authMiddleware, coursesController.Enroll)

	// Event routes
	eventsController := controllers.NewEventsController(db, cfg)
	events := app.Group("/api/events")
	events.Get("/", eventsController.ListEvents)
	events.Get("/registered", authMiddleware, eventsController.ListRegistrations)
	events.Post("/:id/register", authMiddleware, eventsController.Register)

	// Internship routes
	internshipsController := controllers.NewInternshipsController(db, cfg)
	internships := app.Group("/api/internships")
	internships.Get("/", internshipsController.ListInternships)
	internships.Get("/applied", authMiddleware, internshipsController.ListApplications)
	internships.Post("/:id/apply", authMiddleware, internshipsController.Apply)

	// Management routes for educators
	manageCourses := app.Group("/api/manage/courses", authMiddleware, educatorMiddleware)
	manageCourses.Get("/", coursesController.ListOwnCourses)
	manageCourses.Post("/", coursesController.CreateCourse)
	manageCourses.Put("/:id", coursesController.UpdateCourse)
	manageCourses.Delete("/:id", coursesController.DeleteCourse)

	// Management routes for recruiters
	manageEvents := app.Group("/api/manage/events", authMiddleware, recruiterMiddleware)
	manageEvents.Get("/", eventsController.ListOwnEvents)
	manageEvents.Post("/", eventsController.CreateEvent)
	manageEvents.Put("/:id", eventsController.UpdateEvent)
	manageEvents.Delete("/:id", eventsController.DeleteEvent)

	manageInternships := app.Group("/api/manage/internships", authMiddleware, recruiterMiddleware)
	manageInternships.Get("/", internshipsController.ListOwnInternships)
	manageInternships.Post("/", internshipsController.CreateInternship)
	manageInternships.Put("/:id", internshipsController.UpdateInternship)
	manageInternships.Delete("/:id", internshipsController.DeleteInternship)

	// Catch-all
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Not found",
		})
	})
}
