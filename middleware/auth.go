package middleware

import (
	"fmt"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"

	"github.com/evently/marketplace-app/db"
	"github.com/evently/marketplace-app/identity"
	"github.com/evently/marketplace-app/models"
	"github.com/evently/marketplace-app/redis"
	"github.com/evently/marketplace-app/repository"
)

// Protected verifies the JWT, rejects blacklisted (logged out) tokens,
// reloads the account and resolves the caller context into locals. The
// account is re-read on every request so a status change takes effect
// immediately even for tokens issued before it.
func Protected() fiber.Handler {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "solid_secret_key" // Replace with secure key in production
	}

	return jwtware.New(jwtware.Config{
		SigningKey:   []byte(secret),
		ErrorHandler: jwtError,
		SuccessHandler: func(c *fiber.Ctx) error {
			userToken := c.Locals("user")
			token, ok := userToken.(*jwt.Token)
			if !ok {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid token",
				})
			}

			if redis.IsBlacklisted(token.Raw) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Token has been revoked",
				})
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid token claims",
				})
			}

			accountID, err := extractAccountID(claims)
			if err != nil {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid account ID in token",
				})
			}

			accounts := repository.NewAccountRepo(db.DB)
			account, err := accounts.FindByID(accountID)
			if err != nil {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Account not found",
				})
			}
			if account.Status != models.AccountActive {
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
					"error": "Account is not active",
				})
			}

			resolver := identity.NewResolver(repository.NewProfileRepo(db.DB))
			authCtx, err := resolver.Resolve(account)
			if err != nil {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Failed to resolve profile",
				})
			}

			c.Locals("ctx", authCtx)
			c.Locals("token", token.Raw)
			if exp, ok := claims["exp"].(float64); ok {
				c.Locals("tokenExpiry", time.Unix(int64(exp), 0))
			}

			return c.Next()
		},
	})
}

// extractAccountID handles multiple potential formats of the id claim.
func extractAccountID(claims jwt.MapClaims) (uint, error) {
	idVal := claims["id"]
	if idVal == nil {
		return 0, fmt.Errorf("no ID found in claims")
	}

	switch v := idVal.(type) {
	case float64:
		return uint(v), nil
	case uint:
		return v, nil
	case int:
		return uint(v), nil
	default:
		return 0, fmt.Errorf("unsupported ID type: %T", v)
	}
}

// jwtError handles JWT errors
func jwtError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error":   "Unauthorized",
		"message": "Invalid or expired token",
	})
}
