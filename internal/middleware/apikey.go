package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v3"
)

const (
	APIKeyHeader = "X-API-Key"
	APIKeyQuery  = "api_key"

	UnauthorizedMessage = "Unauthorized: Invalid or missing API key"
)

// NewAPIKeyAuth rejects requests whose key does not equal secret.
// The header wins over the query parameter when both are present.
// onReject may be nil.
func NewAPIKeyAuth(secret string, onReject func()) fiber.Handler {
	want := []byte(secret)
	return func(c fiber.Ctx) error {
		key := c.Get(APIKeyHeader)
		if key == "" {
			key = fiber.Query[string](c, APIKeyQuery)
		}

		if key == "" || subtle.ConstantTimeCompare([]byte(key), want) != 1 {
			if onReject != nil {
				onReject()
			}
			return ErrorResponse(c, fiber.StatusUnauthorized, UnauthorizedMessage)
		}
		return c.Next()
	}
}
