package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/evently/marketplace-app/db"
	"github.com/evently/marketplace-app/models"
	"github.com/evently/marketplace-app/policy"
)

// GetProfile returns the caller's role-specific profile.
func GetProfile(c *fiber.Ctx) error {
	authCtx, ok := authContext(c)
	if !ok {
		return missingContext(c)
	}
	if err := policy.Check(authCtx, policy.ProfileRead, policy.Resource{}); err != nil {
		return respondError(c, err)
	}

	switch authCtx.Role {
	case models.RoleAdmin:
		var profile models.AdminProfile
		if err := db.DB.First(&profile, authCtx.ProfileID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		return c.JSON(profile)
	case models.RoleEmployee:
		var profile models.EmployeeProfile
		if err := db.DB.First(&profile, authCtx.ProfileID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		return c.JSON(profile)
	case models.RoleCustomer:
		var profile models.CustomerProfile
		if err := db.DB.First(&profile, authCtx.ProfileID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		return c.JSON(profile)
	case models.RoleProvider:
		var profile models.ProviderProfile
		if err := db.DB.First(&profile, authCtx.ProfileID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		return c.JSON(profile)
	}

	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
}

// UpdateProfile patches the caller's own profile. The account id and the
// profile's identity never change here; only role-specific attributes.
func UpdateProfile(c *fiber.Ctx) error {
	authCtx, ok := authContext(c)
	if !ok {
		return missingContext(c)
	}
	if err := policy.Check(authCtx, policy.ProfileUpdate, policy.Resource{}); err != nil {
		return respondError(c, err)
	}

	switch authCtx.Role {
	case models.RoleAdmin:
		patch := new(models.AdminProfile)
		if err := c.BodyParser(patch); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
		}
		updates := map[string]interface{}{
			"department": patch.Department,
			"title":      patch.Title,
		}
		return saveProfile(c, authCtx.AccountID, &models.AdminProfile{}, authCtx.ProfileID, updates)
	case models.RoleEmployee:
		patch := new(models.EmployeeProfile)
		if err := c.BodyParser(patch); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
		}
		updates := map[string]interface{}{
			"department": patch.Department,
			"title":      patch.Title,
		}
		return saveProfile(c, authCtx.AccountID, &models.EmployeeProfile{}, authCtx.ProfileID, updates)
	case models.RoleCustomer:
		patch := new(models.CustomerProfile)
		if err := c.BodyParser(patch); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
		}
		updates := map[string]interface{}{
			"company": patch.Company,
			"address": patch.Address,
			"city":    patch.City,
			"country": patch.Country,
			"phone":   patch.Phone,
		}
		return saveProfile(c, authCtx.AccountID, &models.CustomerProfile{}, authCtx.ProfileID, updates)
	case models.RoleProvider:
		patch := new(models.ProviderProfile)
		if err := c.BodyParser(patch); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
		}
		updates := map[string]interface{}{
			"display_name": patch.DisplayName,
			"about":        patch.About,
			"is_team":      patch.IsTeam,
			"languages":    patch.Languages,
			"phone":        patch.Phone,
		}
		return saveProfile(c, authCtx.AccountID, &models.ProviderProfile{}, authCtx.ProfileID, updates)
	}

	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
}

func saveProfile(c *fiber.Ctx, accountID uint, model interface{}, profileID uint, updates map[string]interface{}) error {
	if err := db.DB.Model(model).Where("id = ?", profileID).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update profile",
		})
	}

	deps.Recorder.Record(accountID, "profile.updated", "Profile updated", "profile", profileID, nil)

	if err := db.DB.First(model, profileID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
	}
	return c.JSON(model)
}
