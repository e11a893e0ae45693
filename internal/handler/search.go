package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/mathieu-neron/tubegate/internal/service"
)

type SearchHandler struct {
	svc *service.SearchService
}

func NewSearchHandler(svc *service.SearchService) *SearchHandler {
	return &SearchHandler{svc: svc}
}

// Search handles GET /search?q=X
func (h *SearchHandler) Search(c fiber.Ctx) error {
	resp, err := h.svc.Search(c, fiber.Query[string](c, "q"))
	if err != nil {
		return respondError(c, err, "Failed to fetch search results")
	}
	return c.JSON(resp)
}
