package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/unisity/unisity/internal/app/controllers"
	"github.com/unisity/unisity/internal/app/services"
	"github.com/unisity/unisity/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	ctrl *controllers.Controllers,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API version group
	v1 := router.Group("/api/v1")

	// --- Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", ctrl.Auth.Login)
		auth.POST("/:kind/:id/change-password", ctrl.Auth.ChangePassword)
		auth.POST("/:kind/:id/reset-password", ctrl.Auth.ResetPassword)
		auth.GET("/me", authMiddleware.JWTAuth(), ctrl.Auth.Me)
	}

	// --- Cross-kind principal listings ---
	users := v1.Group("/users")
	{
		users.GET("", ctrl.Users.List)
		users.GET("/:id", ctrl.Users.MembersByOrganization)
	}

	// --- Principal resources ---
	registerResource(v1, "/admins", ctrl.Admins)
	registerResource(v1, "/organizations", ctrl.Organizations)
	registerResource(v1, "/faculties", ctrl.Faculties)
	registerResource(v1, "/students", ctrl.Students)

	// --- Catalog resources ---
	registerResource(v1, "/roles", ctrl.Roles)
	registerResource(v1, "/departments", ctrl.Departments)
	registerResource(v1, "/courses", ctrl.Courses)
	registerResource(v1, "/classes", ctrl.Classes)
	registerResource(v1, "/subjects", ctrl.Subjects)
	registerResource(v1, "/exams", ctrl.Exams)

	// --- Academic records ---
	registerResource(v1, "/marks", ctrl.Marks)
	registerResource(v1, "/enrollments", ctrl.Enrollments)
	registerResource(v1, "/materials", ctrl.Materials)
	registerResource(v1, "/projects", ctrl.Projects)
	registerResource(v1, "/announcements", ctrl.Announcements)
	registerResource(v1, "/events", ctrl.Events)

	// --- Billing ---
	registerResource(v1, "/subscriptions", ctrl.Subscriptions)
	registerResource(v1, "/transactions", ctrl.Transactions)
}

// registerResource mounts the uniform entity contract under a path prefix.
func registerResource[T any, P services.Entity[T]](v1 *gin.RouterGroup, path string, ctrl *controllers.ResourceController[T, P]) {
	group := v1.Group(path)
	{
		group.GET("", ctrl.List)
		group.GET("/:id", ctrl.GetByID)
		group.POST("", ctrl.Create)
		group.PUT("/:id", ctrl.Update)
		group.DELETE("/:id", ctrl.Delete)
	}
}
