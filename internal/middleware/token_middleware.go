package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// TokenKey is the Locals key under which TokenExtractor stores the bearer token.
const TokenKey = "token"

// TokenExtractor copies the token of an "Authorization: Bearer <token>" header
// into the request locals. It never rejects a request; a missing or malformed
// header leaves the token empty and the services decide whether that matters.
func TokenExtractor() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(TokenKey, bearerToken(c.Get(fiber.HeaderAuthorization)))
		return c.Next()
	}
}

// Token returns the bearer token stored by TokenExtractor, or "".
func Token(c *fiber.Ctx) string {
	token, _ := c.Locals(TokenKey).(string)
	return token
}

func bearerToken(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
