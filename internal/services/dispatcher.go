package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"leadreach/outreach-assistant/internal/linkedin"
	"leadreach/outreach-assistant/internal/metrics"
	"leadreach/outreach-assistant/internal/models"
	"leadreach/outreach-assistant/internal/repositories"
)

// OutreachDispatcher sends messages or connection requests one by one, in
// input order. The first failure stops the batch.
type OutreachDispatcher interface {
	SendMessages(ctx context.Context, candidateIDs, bodies []string) (*models.DispatchReport, error)
	SendConnectionRequests(ctx context.Context, candidateIDs []string) (*models.DispatchReport, error)
}

type outreachDispatcher struct {
	provider linkedin.Provider
	attempts repositories.OutreachRepository
	limiter  *rate.Limiter
	log      *zap.Logger
}

// NewOutreachDispatcher wires the dispatcher. rps <= 0 disables pacing and a
// nil attempts repository disables persistence of reports. The repository
// must be an untyped nil for that; a nil pointer wrapped in the interface is
// still called.
func NewOutreachDispatcher(
	provider linkedin.Provider,
	attempts repositories.OutreachRepository,
	rps float64,
	log *zap.Logger,
) OutreachDispatcher {
	var limiter *rate.Limiter
	if rps > 0 {
		limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
	return &outreachDispatcher{
		provider: provider,
		attempts: attempts,
		limiter:  limiter,
		log:      log,
	}
}

// SendMessages implements OutreachDispatcher. The two lists are paired by
// position; entries past the shorter list are ignored.
func (d *outreachDispatcher) SendMessages(ctx context.Context, candidateIDs, bodies []string) (*models.DispatchReport, error) {
	n := len(candidateIDs)
	if len(bodies) < n {
		n = len(bodies)
	}
	requests := make([]models.OutreachRequest, 0, n)
	for i := 0; i < n; i++ {
		body := bodies[i]
		requests = append(requests, models.OutreachRequest{CandidateID: candidateIDs[i], MessageBody: &body})
	}
	return d.dispatch(ctx, models.DispatchMessage, requests)
}

// SendConnectionRequests implements OutreachDispatcher.
func (d *outreachDispatcher) SendConnectionRequests(ctx context.Context, candidateIDs []string) (*models.DispatchReport, error) {
	requests := make([]models.OutreachRequest, 0, len(candidateIDs))
	for _, id := range candidateIDs {
		requests = append(requests, models.OutreachRequest{CandidateID: id})
	}
	return d.dispatch(ctx, models.DispatchConnection, requests)
}

func (d *outreachDispatcher) dispatch(ctx context.Context, kind models.DispatchKind, requests []models.OutreachRequest) (*models.DispatchReport, error) {
	report := &models.DispatchReport{
		BatchID: uuid.New(),
		Kind:    kind,
		Items:   make([]models.DispatchItem, len(requests)),
	}
	for i, req := range requests {
		report.Items[i] = models.DispatchItem{
			Position:    i,
			CandidateID: req.CandidateID,
			MessageBody: req.MessageBody,
			Status:      models.DispatchNotAttempted,
		}
	}

	log := d.log.With(zap.String("batch_id", report.BatchID.String()), zap.String("kind", string(kind)))
	defer d.persist(log, report)

	if len(requests) == 0 {
		return report, nil
	}

	api, err := d.provider.Acquire(ctx)
	if err != nil {
		log.Error("linkedin client unavailable", zap.Error(err))
		return report, collaboratorErr(CollaboratorLinkedIn, "connect", err)
	}

	for i, req := range requests {
		if d.limiter != nil {
			if err := d.limiter.Wait(ctx); err != nil {
				report.Items[i].Status = models.DispatchFailed
				report.Items[i].Error = err.Error()
				return report, err
			}
		}

		err := d.send(ctx, api, kind, req)
		metrics.DispatchTotal.WithLabelValues(string(kind), metrics.OutcomeOf(err)).Inc()
		if err != nil {
			report.Items[i].Status = models.DispatchFailed
			report.Items[i].Error = err.Error()
			log.Error("dispatch aborted",
				zap.Int("position", i),
				zap.String("candidate_id", req.CandidateID),
				zap.Int("sent", report.Sent()),
				zap.Error(err),
			)
			return report, collaboratorErr(CollaboratorLinkedIn, string(kind), err)
		}
		report.Items[i].Status = models.DispatchSent
	}

	log.Info("dispatch completed", zap.Int("sent", report.Sent()))
	return report, nil
}

func (d *outreachDispatcher) send(ctx context.Context, api linkedin.API, kind models.DispatchKind, req models.OutreachRequest) error {
	start := time.Now()
	defer func() {
		metrics.CollaboratorDuration.WithLabelValues(CollaboratorLinkedIn, string(kind)).Observe(time.Since(start).Seconds())
	}()

	if kind == models.DispatchMessage {
		body := ""
		if req.MessageBody != nil {
			body = *req.MessageBody
		}
		return api.SendMessage(ctx, []string{req.CandidateID}, body)
	}
	return api.AddConnection(ctx, req.CandidateID, "")
}

func (d *outreachDispatcher) persist(log *zap.Logger, report *models.DispatchReport) {
	if d.attempts == nil || len(report.Items) == 0 {
		return
	}
	now := time.Now()
	rows := make([]models.OutreachAttempt, 0, len(report.Items))
	for _, item := range report.Items {
		row := models.OutreachAttempt{
			ID:          uuid.New(),
			BatchID:     report.BatchID,
			Kind:        report.Kind,
			Position:    item.Position,
			CandidateID: item.CandidateID,
			MessageBody: item.MessageBody,
			Status:      item.Status,
			CreatedAt:   now,
		}
		if item.Error != "" {
			msg := item.Error
			row.ErrorMessage = &msg
		}
		rows = append(rows, row)
	}
	if err := d.attempts.CreateBatch(rows); err != nil {
		log.Warn("failed to record outreach attempts", zap.Error(err))
	}
}
