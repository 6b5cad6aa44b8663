package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const sessionCookie = "agl_session"

// Session identifies the browser tab session carrying a registration flow.
// A missing cookie gets a fresh UUID; the identifier lands in Locals as
// "session_id" for the draft store and unread counters.
func Session() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies(sessionCookie)
		if sid == "" {
			sid = uuid.NewString()
			c.Cookie(&fiber.Cookie{
				Name:     sessionCookie,
				Value:    sid,
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
				Expires:  time.Now().Add(24 * time.Hour),
			})
		}

		c.Locals("session_id", sid)
		return c.Next()
	}
}
