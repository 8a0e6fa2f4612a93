package middleware

import (
	"strings"

	"employee-directory/internal/util"

	"github.com/gofiber/fiber/v2"
)

const userIDKey = "userID"

// Auth guards protected routes. It rejects requests without a bearer token,
// fails with 500 when no signing secret is configured, and rejects tokens
// with a bad signature or past their expiry. On success the caller's id is
// available through UserID.
func Auth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"msg": "No token, authorization denied",
			})
		}

		if secret == "" {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"msg": "Server configuration error: JWT secret is not set",
			})
		}

		userID, err := util.ValidateToken(token, []byte(secret))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"msg": "Token is not valid",
			})
		}

		c.Locals(userIDKey, userID)
		return c.Next()
	}
}

// UserID returns the id stored by Auth, or "" outside a guarded route.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(userIDKey).(string)
	return id
}

func bearerToken(header string) (string, bool) {
	token, found := strings.CutPrefix(header, "Bearer ")
	token = strings.TrimSpace(token)
	if !found || token == "" {
		return "", false
	}
	return token, true
}
