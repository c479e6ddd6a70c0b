package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/configdb/internal/services"
	"github.com/localnerve/configdb/internal/types"
)

// Auth validates the bearer credential on every request before any manager
// logic runs. On success the caller identity is stored in context locals.
func Auth(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := extractBearer(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return types.Unauthorized("Missing or malformed bearer credential")
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			return types.Unauthorized("Invalid or expired credential")
		}

		c.Locals("userId", claims.UserID)
		c.Locals("userEmail", claims.Email)
		c.Locals("userRole", claims.Role)

		return c.Next()
	}
}

// extractBearer pulls the token out of an Authorization header.
func extractBearer(header string) (string, error) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", fiber.ErrUnauthorized
	}
	return parts[1], nil
}
