package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/evently/marketplace-app/controllers"
	"github.com/evently/marketplace-app/middleware"
)

// SetupAdminRoutes configures account review and audit trail routes
func SetupAdminRoutes(app *fiber.App) {
	admin := app.Group("/admin", middleware.Protected())
	admin.Get("/accounts", controllers.ListAccounts)
	admin.Post("/accounts/:id/review", controllers.ReviewAccount)
	admin.Get("/activities", controllers.ListActivities)
}
