package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/evently/marketplace-app/controllers"
	"github.com/evently/marketplace-app/middleware"
)

// SetupBookingRoutes configures all booking related routes
func SetupBookingRoutes(app *fiber.App) {
	booking := app.Group("/bookings", middleware.Protected())
	booking.Get("/", controllers.ListBookings)
	booking.Get("/:id", controllers.GetBooking)
	booking.Post("/", controllers.CreateBooking)
	booking.Post("/:id/respond", controllers.RespondBooking)
	booking.Post("/:id/cancel", controllers.CancelBooking)
	booking.Post("/:id/complete", controllers.CompleteBooking)
}
