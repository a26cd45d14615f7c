package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDLocal  = "request_id"
)

// RequestID tags every request with an identifier so log lines and client
// reports can be correlated. An inbound X-Request-ID is trusted and passed
// through; otherwise a fresh uuid is minted. The id is always echoed on the
// response.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(requestIDHeader, id)
		c.Locals(requestIDLocal, id)

		return c.Next()
	}
}

// RequestIDFrom returns the identifier RequestID stored for this request,
// or "" when the middleware did not run.
func RequestIDFrom(c *fiber.Ctx) string {
	id, _ := c.Locals(requestIDLocal).(string)
	return id
}
