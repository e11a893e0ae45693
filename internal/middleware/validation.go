package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/mathieu-neron/tubegate/internal/model"
)

// ErrorResponse writes the gateway's error body, {"error": message}.
func ErrorResponse(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

// NormalizeMediaType lower-cases raw and defaults it to mp4. It does not
// reject unknown values; the download service does.
func NormalizeMediaType(raw string) model.MediaType {
	if raw == "" {
		return model.MediaMP4
	}
	return model.MediaType(strings.ToLower(raw))
}
