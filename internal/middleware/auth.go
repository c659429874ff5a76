package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/openmol/drugforge/internal/models"
	"github.com/openmol/drugforge/internal/services"
	"github.com/openmol/drugforge/internal/types"
	"gorm.io/gorm"
)

// Protect validates the session cookie and loads the authenticated user into
// c.Locals("user"). Requests without a valid session get a 401.
func Protect(db *gorm.DB, tokens *services.TokenManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(services.SessionCookie)
		if token == "" {
			return types.Authentication("Unauthorized - No Token Provided")
		}

		claims, err := tokens.Validate(token)
		if err != nil {
			return types.Authentication("Unauthorized - Invalid Token")
		}

		user, err := services.FindUserByID(db, claims.UserID)
		if err != nil {
			return types.Storage(err)
		}
		if user == nil {
			return types.Authentication("Unauthorized - User Not Found")
		}

		c.Locals("user", user)
		return c.Next()
	}
}

// CurrentUser returns the user stored by Protect, or nil on unprotected routes.
func CurrentUser(c *fiber.Ctx) *models.User {
	if user, ok := c.Locals("user").(*models.User); ok {
		return user
	}
	return nil
}
