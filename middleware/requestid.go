// middleware/requestid.go
package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const RequestIDHeader = "X-Request-ID"

// RequestID tags each request with an id and stores a logger carrying it
// in the request's user context, where services pick it up via log.Ctx.
func RequestID(c *fiber.Ctx) error {
	id := c.Get(RequestIDHeader)
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}
	c.Set(RequestIDHeader, id)

	logger := log.With().Str("request_id", id).Logger()
	c.SetUserContext(logger.WithContext(c.UserContext()))
	return c.Next()
}
