package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/helmet"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/google/uuid"
)

// NewSecurityHeaders sets the helmet default response headers on every response.
func NewSecurityHeaders() fiber.Handler {
	return helmet.New()
}

// NewRequestID tags every request with a UUID, echoed in X-Request-ID.
func NewRequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Generator: uuid.NewString,
	})
}
