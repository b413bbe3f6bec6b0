package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/evently/marketplace-app/models"
	"github.com/evently/marketplace-app/workflow"
)

// ListEventProposals returns the proposals attached to an event.
func ListEventProposals(c *fiber.Ctx) error {
	authCtx, ok := authContext(c)
	if !ok {
		return missingContext(c)
	}

	eventID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid event ID"})
	}

	proposals, err := deps.Proposals.ListForEvent(authCtx, uint(eventID))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(proposals)
}

// GetProposal returns a single proposal.
func GetProposal(c *fiber.Ctx) error {
	authCtx, ok := authContext(c)
	if !ok {
		return missingContext(c)
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid proposal ID"})
	}

	proposal, err := deps.Proposals.Get(authCtx, uint(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(proposal)
}

// CreateProposal drafts a proposal (staff only).
func CreateProposal(c *fiber.Ctx) error {
	authCtx, ok := authContext(c)
	if !ok {
		return missingContext(c)
	}

	input := new(workflow.ProposalInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	proposal, err := deps.Proposals.Create(authCtx, *input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(proposal)
}

// EditProposal patches a draft proposal.
func EditProposal(c *fiber.Ctx) error {
	authCtx, ok := authContext(c)
	if !ok {
		return missingContext(c)
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid proposal ID"})
	}

	patch := new(workflow.ProposalPatch)
	if err := c.BodyParser(patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	proposal, err := deps.Proposals.Edit(authCtx, uint(id), *patch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(proposal)
}

// SendProposal moves a draft to pending (author only).
func SendProposal(c *fiber.Ctx) error {
	authCtx, ok := authContext(c)
	if !ok {
		return missingContext(c)
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid proposal ID"})
	}

	proposal, err := deps.Proposals.Send(authCtx, uint(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(proposal)
}

// DecideProposal lets the event's customer accept or reject a pending
// proposal.
func DecideProposal(c *fiber.Ctx) error {
	authCtx, ok := authContext(c)
	if !ok {
		return missingContext(c)
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid proposal ID"})
	}

	type DecideInput struct {
		Outcome  models.ProposalStatus `json:"outcome"`
		Feedback string                `json:"feedback"`
	}
	input := new(DecideInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	proposal, err := deps.Proposals.Decide(authCtx, uint(id), input.Outcome, input.Feedback)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(proposal)
}
