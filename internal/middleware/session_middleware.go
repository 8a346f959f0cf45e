package middleware

import (
	"regexp"

	"github.com/gofiber/fiber/v2"
)

const (
	SessionHeader = "X-Session-Id"
	sessionKey    = "session_id"
)

var validSession = regexp.MustCompile(`^[A-Za-z0-9._-]{8,128}$`)

// Session resolves the caller's session id once per request: a well-formed
// X-Session-Id header, otherwise the client IP.
func Session() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(SessionHeader)
		if !validSession.MatchString(id) {
			id = "ip:" + c.IP()
		}
		c.Locals(sessionKey, id)
		return c.Next()
	}
}

// SessionID returns the id stored by Session, falling back to the client IP
// when the middleware did not run.
func SessionID(c *fiber.Ctx) string {
	if id, ok := c.Locals(sessionKey).(string); ok && id != "" {
		return id
	}
	return "ip:" + c.IP()
}
