package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"leadreach/outreach-assistant/internal/models"
	"leadreach/outreach-assistant/internal/services"
)

type PageHandler struct {
	state    services.SearchStateStore
	sessions *Sessions
	mode     string
	log      *zap.Logger
}

func NewPageHandler(state services.SearchStateStore, sessions *Sessions, mode string, log *zap.Logger) *PageHandler {
	return &PageHandler{
		state:    state,
		sessions: sessions,
		mode:     mode,
		log:      log,
	}
}

// HandleIndex handles GET / and GET /index
func (h *PageHandler) HandleIndex(c *fiber.Ctx) error {
	flash, err := h.sessions.PopFlash(c)
	if err != nil {
		h.log.Warn("failed to read flash message", zap.Error(err))
	}
	return c.Render("index", fiber.Map{
		"Mode":  h.mode,
		"Flash": flash,
	})
}

// HandleResults handles GET /results
func (h *PageHandler) HandleResults(c *fiber.Ctx) error {
	sessionID, err := h.sessions.ID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load session")
	}

	result, err := h.state.Load(c.UserContext(), sessionID)
	if errors.Is(err, services.ErrMissingState) {
		return c.Redirect("/")
	}
	if err != nil {
		h.log.Error("failed to load search state", zap.String("session_id", sessionID), zap.Error(err))
		return c.Redirect("/")
	}

	return renderResults(c, h.sessions, h.log, result)
}

func renderResults(c *fiber.Ctx, sessions *Sessions, log *zap.Logger, result *models.SearchResult) error {
	flash, err := sessions.PopFlash(c)
	if err != nil {
		log.Warn("failed to read flash message", zap.Error(err))
	}
	return c.Render("results", fiber.Map{
		"BusinessIdea": result.Query.IdeaText,
		"Users":        result.Candidates,
		"Pairs":        result.Pairs(),
		"Flash":        flash,
	})
}
