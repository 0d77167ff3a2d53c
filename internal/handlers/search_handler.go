package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"leadreach/outreach-assistant/internal/config"
	"leadreach/outreach-assistant/internal/linkedin"
	"leadreach/outreach-assistant/internal/models"
	"leadreach/outreach-assistant/internal/services"
)

const (
	msgClientUnavailable = "LinkedIn API is not initialized. Please check your credentials."
	msgIdeaRequired      = "business_idea is required"
)

type SearchHandler struct {
	pipeline services.SearchPipeline
	state    services.SearchStateStore
	sessions *Sessions
	mode     string
	log      *zap.Logger
}

func NewSearchHandler(
	pipeline services.SearchPipeline,
	state services.SearchStateStore,
	sessions *Sessions,
	mode string,
	log *zap.Logger,
) *SearchHandler {
	return &SearchHandler{
		pipeline: pipeline,
		state:    state,
		sessions: sessions,
		mode:     mode,
		log:      log,
	}
}

// HandleSearch handles POST /search
func (h *SearchHandler) HandleSearch(c *fiber.Ctx) error {
	if h.mode == config.SearchModeDirect {
		return h.searchDirect(c)
	}
	return h.searchSession(c)
}

// searchSession accepts JSON, stashes the result for GET /results and
// answers with a status document.
func (h *SearchHandler) searchSession(c *fiber.Ctx) error {
	var req models.SearchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.StatusResponse{
			Status:  "error",
			Message: "Invalid request payload",
		})
	}
	if strings.TrimSpace(req.BusinessIdea) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.StatusResponse{
			Status:  "error",
			Message: msgIdeaRequired,
		})
	}

	sessionID, err := h.sessions.ID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load session")
	}

	unlock, err := h.state.Lock(c.UserContext(), sessionID)
	if errors.Is(err, services.ErrSearchInProgress) {
		return c.Status(fiber.StatusConflict).JSON(models.StatusResponse{
			Status:  "error",
			Message: err.Error(),
		})
	}
	if err != nil {
		h.log.Error("failed to lock session", zap.String("session_id", sessionID), zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "failed to lock session")
	}
	defer unlock()

	result, err := h.pipeline.Run(c.UserContext(), sessionID, req.Query())
	if err != nil {
		message := searchFailureMessage(err)
		h.flash(c, FlashError, message)
		return c.Status(fiber.StatusBadGateway).JSON(models.StatusResponse{
			Status:  "error",
			Message: message,
		})
	}

	if err := h.state.Save(c.UserContext(), sessionID, result); err != nil {
		h.log.Error("failed to store search state", zap.String("session_id", sessionID), zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "failed to store search results")
	}

	return c.JSON(models.StatusResponse{Status: "success"})
}

// searchDirect accepts form fields and renders the results page at once.
// Every failure is a flash message and a redirect to the landing page.
func (h *SearchHandler) searchDirect(c *fiber.Ctx) error {
	var req models.SearchRequest
	if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.BusinessIdea) == "" {
		h.flash(c, FlashError, msgIdeaRequired)
		return c.Redirect("/")
	}

	sessionID, err := h.sessions.ID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load session")
	}

	result, err := h.pipeline.Run(c.UserContext(), sessionID, req.Query())
	if err != nil {
		h.flash(c, FlashError, searchFailureMessage(err))
		return c.Redirect("/")
	}

	if err := h.state.Save(c.UserContext(), sessionID, result); err != nil {
		h.log.Warn("failed to store search state", zap.String("session_id", sessionID), zap.Error(err))
	}

	return renderResults(c, h.sessions, h.log, result)
}

func (h *SearchHandler) flash(c *fiber.Ctx, category, message string) {
	if err := h.sessions.SetFlash(c, category, message); err != nil {
		h.log.Warn("failed to set flash message", zap.Error(err))
	}
}

func searchFailureMessage(err error) string {
	if errors.Is(err, linkedin.ErrClientUnavailable) {
		return msgClientUnavailable
	}
	return fmt.Sprintf("Error occurred during LinkedIn search: %v", services.Cause(err))
}
