package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/evently/marketplace-app/models"
	"github.com/evently/marketplace-app/policy"
)

// ListAccounts returns accounts, optionally filtered by status. Admin
// uses this to find pending provider registrations.
func ListAccounts(c *fiber.Ctx) error {
	authCtx, ok := authContext(c)
	if !ok {
		return missingContext(c)
	}

	if err := policy.Check(authCtx, policy.AccountReview, policy.Resource{}); err != nil {
		return respondError(c, err)
	}

	status := models.AccountStatus(c.Query("status"))
	accounts, err := deps.Accounts.ListByStatus(status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(accounts)
}

// ReviewAccount approves or rejects a pending account.
func ReviewAccount(c *fiber.Ctx) error {
	authCtx, ok := authContext(c)
	if !ok {
		return missingContext(c)
	}

	if err := policy.Check(authCtx, policy.AccountReview, policy.Resource{}); err != nil {
		return respondError(c, err)
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid account ID"})
	}

	type ReviewInput struct {
		Approve bool `json:"approve"`
	}
	input := new(ReviewInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	account, err := deps.Store.Review(authCtx, uint(id), input.Approve)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(account)
}

// ListActivities returns the most recent audit records (staff only).
func ListActivities(c *fiber.Ctx) error {
	authCtx, ok := authContext(c)
	if !ok {
		return missingContext(c)
	}

	if err := policy.Check(authCtx, policy.ActivityRead, policy.Resource{}); err != nil {
		return respondError(c, err)
	}

	limit := c.QueryInt("limit", 100)
	activities, err := deps.Activities.List(limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(activities)
}
