package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/evently/marketplace-app/controllers"
	"github.com/evently/marketplace-app/middleware"
)

// SetupEventRoutes configures event and proposal routes. Everything is
// behind authentication; the policy layer does the per-resource gating.
func SetupEventRoutes(app *fiber.App) {
	event := app.Group("/events", middleware.Protected())
	event.Get("/", controllers.ListEvents)
	event.Get("/:id", controllers.GetEvent)
	event.Post("/", controllers.CreateEvent)
	event.Put("/:id", controllers.UpdateEvent)
	event.Get("/:id/proposals", controllers.ListEventProposals)

	proposal := app.Group("/proposals", middleware.Protected())
	proposal.Get("/:id", controllers.GetProposal)
	proposal.Post("/", controllers.CreateProposal)
	proposal.Patch("/:id", controllers.EditProposal)
	proposal.Post("/:id/send", controllers.SendProposal)
	proposal.Post("/:id/decide", controllers.DecideProposal)
}
