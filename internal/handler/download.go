package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/mathieu-neron/tubegate/internal/middleware"
	"github.com/mathieu-neron/tubegate/internal/service"
)

type DownloadHandler struct {
	svc *service.DownloadService
}

func NewDownloadHandler(svc *service.DownloadService) *DownloadHandler {
	return &DownloadHandler{svc: svc}
}

// Resolve handles GET /download?id=X&type=mp3|mp4&quality=Y
func (h *DownloadHandler) Resolve(c fiber.Ctx) error {
	resp, err := h.svc.Resolve(
		c,
		fiber.Query[string](c, "id"),
		middleware.NormalizeMediaType(fiber.Query[string](c, "type")),
		fiber.Query[string](c, "quality"),
	)
	if err != nil {
		return respondError(c, err, "Failed to fetch download info")
	}
	return c.JSON(resp)
}
