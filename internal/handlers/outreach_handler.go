package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"leadreach/outreach-assistant/internal/models"
	"leadreach/outreach-assistant/internal/repositories"
	"leadreach/outreach-assistant/internal/services"
)

// BatchIDHeader carries the dispatch batch ID on every send response.
const BatchIDHeader = "X-Outreach-Batch-ID"

const (
	msgMessagesSent    = "Messages sent successfully."
	msgConnectionsSent = "Connection requests sent successfully."
)

type OutreachHandler struct {
	dispatcher services.OutreachDispatcher
	state      services.SearchStateStore
	attempts   repositories.OutreachRepository
	sessions   *Sessions
	log        *zap.Logger
}

func NewOutreachHandler(
	dispatcher services.OutreachDispatcher,
	state services.SearchStateStore,
	attempts repositories.OutreachRepository,
	sessions *Sessions,
	log *zap.Logger,
) *OutreachHandler {
	return &OutreachHandler{
		dispatcher: dispatcher,
		state:      state,
		attempts:   attempts,
		sessions:   sessions,
		log:        log,
	}
}

// HandleSendMessages handles POST /send_messages
func (h *OutreachHandler) HandleSendMessages(c *fiber.Ctx) error {
	if !h.hasCompletedSearch(c) {
		return c.Redirect("/")
	}

	report, err := h.dispatcher.SendMessages(c.UserContext(), formValues(c, "user_ids"), formValues(c, "messages"))
	setBatchHeader(c, report)
	if err != nil {
		h.flash(c, FlashError, fmt.Sprintf("Error: %v", services.Cause(err)))
		return c.Redirect("/")
	}

	h.flash(c, FlashSuccess, msgMessagesSent)
	return c.JSON(models.StatusResponse{
		Status:  "success",
		Message: msgMessagesSent,
		BatchID: report.BatchID.String(),
	})
}

// HandleSendConnectionRequests handles POST /send_connection_requests
func (h *OutreachHandler) HandleSendConnectionRequests(c *fiber.Ctx) error {
	if !h.hasCompletedSearch(c) {
		return c.Redirect("/")
	}

	report, err := h.dispatcher.SendConnectionRequests(c.UserContext(), formValues(c, "user_ids"))
	setBatchHeader(c, report)
	if err != nil {
		h.flash(c, FlashError, fmt.Sprintf("Error: %v", services.Cause(err)))
		return c.Redirect("/")
	}

	h.flash(c, FlashSuccess, msgConnectionsSent)
	return c.Redirect("/")
}

// HandleGetBatch handles GET /outreach/batches/:id
func (h *OutreachHandler) HandleGetBatch(c *fiber.Ctx) error {
	batchID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid batch ID format",
		})
	}

	if h.attempts == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Batch not found",
		})
	}

	attempts, err := h.attempts.FindByBatch(batchID)
	if errors.Is(err, repositories.ErrBatchNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Batch not found",
		})
	}
	if err != nil {
		h.log.Error("failed to load batch", zap.String("batch_id", batchID.String()), zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load batch")
	}

	return c.JSON(models.ReportFromAttempts(batchID, attempts))
}

// hasCompletedSearch flashes and reports false when the session has no
// completed search to send from.
func (h *OutreachHandler) hasCompletedSearch(c *fiber.Ctx) bool {
	sessionID, err := h.sessions.ID(c)
	if err != nil {
		h.log.Error("failed to load session", zap.Error(err))
		return false
	}
	if _, err := h.state.Load(c.UserContext(), sessionID); err != nil {
		if !errors.Is(err, services.ErrMissingState) {
			h.log.Error("failed to load search state", zap.String("session_id", sessionID), zap.Error(err))
		}
		h.flash(c, FlashError, fmt.Sprintf("Error: %v", services.ErrMissingState))
		return false
	}
	return true
}

func (h *OutreachHandler) flash(c *fiber.Ctx, category, message string) {
	if err := h.sessions.SetFlash(c, category, message); err != nil {
		h.log.Warn("failed to set flash message", zap.Error(err))
	}
}

func setBatchHeader(c *fiber.Ctx, report *models.DispatchReport) {
	if report != nil && len(report.Items) > 0 {
		c.Set(BatchIDHeader, report.BatchID.String())
	}
}

// formValues collects a repeated form field from urlencoded or multipart
// bodies. The plain and the bracketed ("name[]") spellings are both accepted,
// but only the first one present is read so parallel fields keep their order.
func formValues(c *fiber.Ctx, name string) []string {
	keys := []string{name, name + "[]"}

	if form, err := c.MultipartForm(); err == nil {
		for _, key := range keys {
			if values := form.Value[key]; len(values) > 0 {
				return values
			}
		}
		return nil
	}

	args := c.Context().PostArgs()
	for _, key := range keys {
		raw := args.PeekMulti(key)
		if len(raw) == 0 {
			continue
		}
		values := make([]string, 0, len(raw))
		for _, v := range raw {
			values = append(values, string(v))
		}
		return values
	}
	return nil
}
