package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/evently/marketplace-app/activity"
	"github.com/evently/marketplace-app/core"
	"github.com/evently/marketplace-app/identity"
	"github.com/evently/marketplace-app/repository"
	"github.com/evently/marketplace-app/utils"
	"github.com/evently/marketplace-app/workflow"
)

// Deps wires the controllers to the core services; main builds one of
// these at startup.
type Deps struct {
	Store      *identity.Store
	Resolver   *identity.Resolver
	Proposals  *workflow.ProposalWorkflow
	Bookings   *workflow.BookingWorkflow
	Recorder   *activity.Recorder
	Accounts   *repository.AccountRepo
	Events     *repository.EventRepo
	Services   *repository.ServiceRepo
	BookingsDB *repository.BookingRepo
	Activities *repository.ActivityRepo
}

var deps Deps

func Setup(d Deps) {
	deps = d
}

// authContext pulls the resolved caller context set by the middleware.
func authContext(c *fiber.Ctx) (core.Context, bool) {
	authCtx, ok := c.Locals("ctx").(core.Context)
	return authCtx, ok
}

// respondError translates core error kinds to HTTP in one place. Internal
// details never reach the caller.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, core.ErrAccountNotActive):
		return c.Status(fiber.StatusForbidden).JSON(utils.ErrorResponse{
			Message: "Account is not active",
			Error:   err.Error(),
		})
	case errors.Is(err, core.ErrAuthentication):
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "Invalid credentials",
			Error:   err.Error(),
		})
	case errors.Is(err, core.ErrAuthorization):
		return c.Status(fiber.StatusForbidden).JSON(utils.ErrorResponse{
			Message: "You don't have permission to perform this action",
			Error:   err.Error(),
		})
	case errors.Is(err, core.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid input",
			Error:   err.Error(),
		})
	case errors.Is(err, core.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Not found",
			Error:   err.Error(),
		})
	case errors.Is(err, core.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Conflict",
			Error:   err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Something went wrong",
			Error:   "internal error",
		})
	}
}

func missingContext(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "No authenticated context",
	})
}
