package controllers

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/evently/marketplace-app/identity"
	"github.com/evently/marketplace-app/models"
	"github.com/evently/marketplace-app/redis"
)

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "solid_secret_key" // Replace with secure key in production
	}
	return []byte(secret)
}

// Register handles public registration. Only customer and provider
// accounts can self-register; staff accounts are created by an admin.
func Register(c *fiber.Ctx) error {
	input := new(identity.RegisterInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	account, err := deps.Store.Register(*input, models.RoleCustomer, models.RoleProvider)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(account)
}

// Login verifies credentials and issues an access/refresh token pair.
func Login(c *fiber.Ctx) error {
	type LoginInput struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	input := new(LoginInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	account, err := deps.Store.Verify(input.Username, input.Password)
	if err != nil {
		return respondError(c, err)
	}

	authCtx, err := deps.Resolver.Resolve(account)
	if err != nil {
		return respondError(c, err)
	}

	if err := deps.Store.TouchLogin(account.ID); err != nil {
		return respondError(c, err)
	}
	deps.Recorder.Record(account.ID, "account.login", "Account logged in", "account", account.ID, nil)

	claims := jwt.MapClaims{
		"id":         account.ID,
		"username":   account.Username,
		"role":       string(account.Role),
		"profile_id": authCtx.ProfileID,
		"exp":        time.Now().Add(time.Hour * 24).Unix(), // 24 hour expiration
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(jwtSecret())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	refreshClaims := jwt.MapClaims{
		"id":  account.ID,
		"exp": time.Now().Add(time.Hour * 24 * 7).Unix(), // 7 day expiration
	}
	refreshToken := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims)
	refreshTokenString, err := refreshToken.SignedString(jwtSecret())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate refresh token",
		})
	}

	return c.JSON(fiber.Map{
		"token":        tokenString,
		"refreshToken": refreshTokenString,
		"user": fiber.Map{
			"id":         account.ID,
			"username":   account.Username,
			"email":      account.Email,
			"role":       account.Role,
			"profile_id": authCtx.ProfileID,
		},
	})
}

// Logout blacklists the presented token until its natural expiry.
func Logout(c *fiber.Ctx) error {
	authCtx, ok := authContext(c)
	if !ok {
		return missingContext(c)
	}

	token, _ := c.Locals("token").(string)
	if expiry, ok := c.Locals("tokenExpiry").(time.Time); ok && token != "" {
		if err := redis.BlacklistToken(token, time.Until(expiry)); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to revoke token",
			})
		}
	}

	deps.Recorder.Record(authCtx.AccountID, "account.logout", "Account logged out", "account", authCtx.AccountID, nil)

	return c.JSON(fiber.Map{
		"message": "Successfully logged out",
	})
}

// RefreshToken generates a new access token using a refresh token.
func RefreshToken(c *fiber.Ctx) error {
	type RefreshRequest struct {
		RefreshToken string `json:"refreshToken"`
	}

	refreshRequest := new(RefreshRequest)
	if err := c.BodyParser(refreshRequest); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	token, err := jwt.Parse(refreshRequest.RefreshToken, func(token *jwt.Token) (interface{}, error) {
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid refresh token",
		})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid refresh token",
		})
	}
	idVal, ok := claims["id"].(float64)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid refresh token",
		})
	}

	account, err := deps.Accounts.FindByID(uint(idVal))
	if err != nil {
		return respondError(c, err)
	}
	if account.Status != models.AccountActive {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Account is not active",
		})
	}

	authCtx, err := deps.Resolver.Resolve(account)
	if err != nil {
		return respondError(c, err)
	}

	newClaims := jwt.MapClaims{
		"id":         account.ID,
		"username":   account.Username,
		"role":       string(account.Role),
		"profile_id": authCtx.ProfileID,
		"exp":        time.Now().Add(time.Hour * 24).Unix(),
	}
	newToken := jwt.NewWithClaims(jwt.SigningMethodHS256, newClaims)
	tokenString, err := newToken.SignedString(jwtSecret())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	return c.JSON(fiber.Map{
		"token": tokenString,
	})
}

// Me returns the caller's resolved context and account.
func Me(c *fiber.Ctx) error {
	authCtx, ok := authContext(c)
	if !ok {
		return missingContext(c)
	}

	account, err := deps.Accounts.FindByID(authCtx.AccountID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"account":    account,
		"role":       authCtx.Role,
		"profile_id": authCtx.ProfileID,
	})
}
