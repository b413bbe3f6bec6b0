package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/evently/marketplace-app/models"
	"github.com/evently/marketplace-app/policy"
)

// ListEvents returns the events the caller may see: staff see all,
// customers their own, providers none.
func ListEvents(c *fiber.Ctx) error {
	authCtx, ok := authContext(c)
	if !ok {
		return missingContext(c)
	}

	// A customer passes the ownership rule for their own events; anyone
	// without a read rule is denied outright.
	if err := policy.Check(authCtx, policy.EventRead, policy.Resource{OwnerProfileID: authCtx.ProfileID}); err != nil {
		return respondError(c, err)
	}

	var (
		events []models.Event
		err    error
	)
	if authCtx.Staff() {
		events, err = deps.Events.ListAll()
	} else {
		events, err = deps.Events.ListByCustomer(authCtx.ProfileID)
	}
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(events)
}

// GetEvent returns one event, policy-filtered by ownership.
func GetEvent(c *fiber.Ctx) error {
	authCtx, ok := authContext(c)
	if !ok {
		return missingContext(c)
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid event ID"})
	}

	event, err := deps.Events.FindByID(uint(id))
	if err != nil {
		return respondError(c, err)
	}

	if err := policy.Check(authCtx, policy.EventRead, policy.Resource{OwnerProfileID: event.CustomerProfileID}); err != nil {
		return respondError(c, err)
	}

	return c.JSON(event)
}

// CreateEvent lets a customer create an event they own.
func CreateEvent(c *fiber.Ctx) error {
	authCtx, ok := authContext(c)
	if !ok {
		return missingContext(c)
	}

	if err := policy.Check(authCtx, policy.EventCreate, policy.Resource{}); err != nil {
		return respondError(c, err)
	}

	event := new(models.Event)
	if err := c.BodyParser(event); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if event.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Event title is required"})
	}
	if event.StartTime.IsZero() || event.EndTime.IsZero() || !event.EndTime.After(event.StartTime) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Event needs a valid time window"})
	}

	// Ownership comes from the caller, never from the body.
	event.CustomerProfileID = authCtx.ProfileID
	event.Status = models.EventPlanning

	if err := deps.Events.Create(event); err != nil {
		return respondError(c, err)
	}

	deps.Recorder.Record(authCtx.AccountID, "event.created", "Event created", "event", event.ID, nil)

	return c.Status(fiber.StatusCreated).JSON(event)
}

// UpdateEvent mutates an event: the owning customer or staff. Events are
// never deleted, only re-labelled via Status.
func UpdateEvent(c *fiber.Ctx) error {
	authCtx, ok := authContext(c)
	if !ok {
		return missingContext(c)
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid event ID"})
	}

	event, err := deps.Events.FindByID(uint(id))
	if err != nil {
		return respondError(c, err)
	}

	if err := policy.Check(authCtx, policy.EventUpdate, policy.Resource{OwnerProfileID: event.CustomerProfileID}); err != nil {
		return respondError(c, err)
	}

	patch := new(models.Event)
	if err := c.BodyParser(patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if patch.Title != "" {
		event.Title = patch.Title
	}
	if patch.Description != "" {
		event.Description = patch.Description
	}
	if !patch.StartTime.IsZero() {
		event.StartTime = patch.StartTime
	}
	if !patch.EndTime.IsZero() {
		event.EndTime = patch.EndTime
	}
	if patch.Location != "" {
		event.Location = patch.Location
	}
	if patch.Status != "" {
		event.Status = patch.Status
	}
	if patch.Budget != 0 {
		event.Budget = patch.Budget
	}

	if !event.EndTime.After(event.StartTime) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Event needs a valid time window"})
	}

	if err := deps.Events.Update(event); err != nil {
		return respondError(c, err)
	}

	deps.Recorder.Record(authCtx.AccountID, "event.updated", "Event updated", "event", event.ID, nil)

	return c.JSON(event)
}
