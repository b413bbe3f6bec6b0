package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/evently/marketplace-app/controllers"
	"github.com/evently/marketplace-app/middleware"
)

func SetupServiceRoutes(app *fiber.App) {
	service := app.Group("/services")
	service.Get("/", controllers.ListServices)
	service.Get("/:id", controllers.GetService)
	service.Post("/", middleware.Protected(), controllers.CreateService)
	service.Put("/:id", middleware.Protected(), controllers.UpdateService)
}
