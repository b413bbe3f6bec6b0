package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/evently/marketplace-app/models"
	"github.com/evently/marketplace-app/policy"
)

// ListServices returns active services, optionally filtered by provider.
func ListServices(c *fiber.Ctx) error {
	if providerID := c.QueryInt("provider"); providerID > 0 {
		services, err := deps.Services.ListByProvider(uint(providerID))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(services)
	}

	services, err := deps.Services.ListActive()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(services)
}

// GetService returns one service.
func GetService(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid service ID"})
	}

	service, err := deps.Services.FindByID(uint(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(service)
}

// CreateService lets a provider add a service to their catalogue.
func CreateService(c *fiber.Ctx) error {
	authCtx, ok := authContext(c)
	if !ok {
		return missingContext(c)
	}

	if err := policy.Check(authCtx, policy.ServiceManage, policy.Resource{ProviderProfileID: authCtx.ProfileID}); err != nil {
		return respondError(c, err)
	}

	service := new(models.Service)
	if err := c.BodyParser(service); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if service.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Service name is required"})
	}
	if service.BasePrice < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Base price cannot be negative"})
	}

	// Catalogue entries always belong to the caller.
	service.ProviderProfileID = authCtx.ProfileID
	service.Active = true

	if err := deps.Services.Create(service); err != nil {
		return respondError(c, err)
	}

	deps.Recorder.Record(authCtx.AccountID, "service.created", "Service created", "service", service.ID, nil)

	return c.Status(fiber.StatusCreated).JSON(service)
}

// UpdateService lets the owning provider change a catalogue entry.
func UpdateService(c *fiber.Ctx) error {
	authCtx, ok := authContext(c)
	if !ok {
		return missingContext(c)
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid service ID"})
	}

	service, err := deps.Services.FindByID(uint(id))
	if err != nil {
		return respondError(c, err)
	}

	if err := policy.Check(authCtx, policy.ServiceManage, policy.Resource{ProviderProfileID: service.ProviderProfileID}); err != nil {
		return respondError(c, err)
	}

	patch := new(models.Service)
	if err := c.BodyParser(patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if patch.Name != "" {
		service.Name = patch.Name
	}
	if patch.Description != "" {
		service.Description = patch.Description
	}
	if patch.BasePrice > 0 {
		service.BasePrice = patch.BasePrice
	}
	if patch.Duration > 0 {
		service.Duration = patch.Duration
	}
	service.Active = patch.Active

	if err := deps.Services.Update(service); err != nil {
		return respondError(c, err)
	}

	deps.Recorder.Record(authCtx.AccountID, "service.updated", "Service updated", "service", service.ID, nil)

	return c.JSON(service)
}
