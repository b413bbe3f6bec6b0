package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/evently/marketplace-app/models"
	"github.com/evently/marketplace-app/policy"
	"github.com/evently/marketplace-app/workflow"
)

// ListBookings returns the caller's slice of the bookings: staff all,
// customers their own, providers those targeting them.
func ListBookings(c *fiber.Ctx) error {
	authCtx, ok := authContext(c)
	if !ok {
		return missingContext(c)
	}

	// Both ownership sides set to the caller: whichever rule the role has
	// will pass for the caller's own rows.
	res := policy.Resource{OwnerProfileID: authCtx.ProfileID, ProviderProfileID: authCtx.ProfileID}
	if err := policy.Check(authCtx, policy.BookingRead, res); err != nil {
		return respondError(c, err)
	}

	var (
		bookings []models.Booking
		err      error
	)
	switch {
	case authCtx.Staff():
		bookings, err = deps.BookingsDB.ListAll()
	case authCtx.Role == models.RoleProvider:
		bookings, err = deps.BookingsDB.ListByProvider(authCtx.ProfileID)
	default:
		bookings, err = deps.BookingsDB.ListByCustomer(authCtx.ProfileID)
	}
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(bookings)
}

// GetBooking returns one booking, policy-filtered.
func GetBooking(c *fiber.Ctx) error {
	authCtx, ok := authContext(c)
	if !ok {
		return missingContext(c)
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking ID"})
	}

	booking, err := deps.Bookings.Get(authCtx, uint(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(booking)
}

// CreateBooking lets a customer request a booking against a provider's
// service.
func CreateBooking(c *fiber.Ctx) error {
	authCtx, ok := authContext(c)
	if !ok {
		return missingContext(c)
	}

	input := new(workflow.BookingInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	booking, err := deps.Bookings.Request(authCtx, *input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(booking)
}

// RespondBooking lets the owning provider confirm or decline a pending
// booking.
func RespondBooking(c *fiber.Ctx) error {
	authCtx, ok := authContext(c)
	if !ok {
		return missingContext(c)
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking ID"})
	}

	type RespondInput struct {
		Outcome models.BookingStatus `json:"outcome"`
	}
	input := new(RespondInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	booking, err := deps.Bookings.Respond(authCtx, uint(id), input.Outcome)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(booking)
}

// CancelBooking cancels a confirmed booking for either party.
func CancelBooking(c *fiber.Ctx) error {
	authCtx, ok := authContext(c)
	if !ok {
		return missingContext(c)
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking ID"})
	}

	type CancelInput struct {
		Reason string `json:"reason"`
	}
	input := new(CancelInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	booking, err := deps.Bookings.Cancel(authCtx, uint(id), input.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(booking)
}

// CompleteBooking marks a confirmed booking completed (staff only; the
// cron sweep covers the automatic path).
func CompleteBooking(c *fiber.Ctx) error {
	authCtx, ok := authContext(c)
	if !ok {
		return missingContext(c)
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking ID"})
	}

	booking, err := deps.Bookings.Complete(authCtx, uint(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(booking)
}
