package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/mathieu-neron/tubegate/internal/middleware"
	"github.com/mathieu-neron/tubegate/internal/service"
)

const notFoundMessage = "Suitable format not found"

// respondError maps a service error to its status and caller-safe message.
// Upstream and unclassified errors are logged with their cause and answered
// with internalMessage only.
func respondError(c fiber.Ctx, err error, internalMessage string) error {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, vErr.Message)
	case errors.Is(err, service.ErrNotFound):
		return middleware.ErrorResponse(c, fiber.StatusNotFound, notFoundMessage)
	}

	middleware.Logger.Error().
		Err(err).
		Str("path", c.Path()).
		Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
		Msg(internalMessage)
	return middleware.ErrorResponse(c, fiber.StatusInternalServerError, internalMessage)
}
