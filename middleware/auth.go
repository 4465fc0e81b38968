// middleware/auth.go
package middleware

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

// UserContextMiddleware extracts the user identity set by the Gateway.
// Secured routes refuse requests without it; the id doubles as the wallet
// session key.
func UserContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Get("X-User-ID")
		if userID == "" {
			log.Printf("❌ [USER_CTX] X-User-ID required but missing on secured route: %s", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing X-User-ID — request must come through gateway with auth context",
			})
		}

		c.Locals("user_id", userID)
		return c.Next()
	}
}
