package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"leadreach/outreach-assistant/internal/repositories"
)

type SearchRunHandler struct {
	runs repositories.SearchRunRepository
	log  *zap.Logger
}

func NewSearchRunHandler(runs repositories.SearchRunRepository, log *zap.Logger) *SearchRunHandler {
	return &SearchRunHandler{
		runs: runs,
		log:  log,
	}
}

// HandleGetSearch handles GET /searches/:id
func (h *SearchRunHandler) HandleGetSearch(c *fiber.Ctx) error {
	runID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid search ID format",
		})
	}

	if h.runs == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Search not found",
		})
	}

	run, err := h.runs.FindByID(runID)
	if errors.Is(err, repositories.ErrSearchRunNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Search not found",
		})
	}
	if err != nil {
		h.log.Error("failed to load search run", zap.String("run_id", runID.String()), zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load search run")
	}

	return c.JSON(run)
}
