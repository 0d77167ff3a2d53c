package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"leadreach/outreach-assistant/internal/metrics"
	"leadreach/outreach-assistant/internal/models"
	"leadreach/outreach-assistant/internal/repositories"
)

// SearchPipeline searches for candidates and drafts one message per candidate.
type SearchPipeline interface {
	Run(ctx context.Context, sessionID string, query models.LeadQuery) (*models.SearchResult, error)
}

type searchPipeline struct {
	search  LeadSearchService
	drafter MessageDrafter
	runs    repositories.SearchRunRepository
	mode    string
	log     *zap.Logger
}

// NewSearchPipeline wires the pipeline. runs may be nil to skip auditing.
func NewSearchPipeline(
	search LeadSearchService,
	drafter MessageDrafter,
	runs repositories.SearchRunRepository,
	mode string,
	log *zap.Logger,
) SearchPipeline {
	return &searchPipeline{
		search:  search,
		drafter: drafter,
		runs:    runs,
		mode:    mode,
		log:     log,
	}
}

// Run implements SearchPipeline. Drafting is sequential and the first failure
// discards every draft produced so far.
func (p *searchPipeline) Run(ctx context.Context, sessionID string, query models.LeadQuery) (*models.SearchResult, error) {
	runID := uuid.New()
	log := p.log.With(zap.String("run_id", runID.String()), zap.String("session_id", sessionID))
	p.recordStart(log, runID, sessionID, query)

	candidates, err := p.search.Search(ctx, query)
	if err != nil {
		p.recordFailure(log, runID, err)
		return nil, err
	}
	log.Info("candidates found", zap.Int("count", len(candidates)))

	drafts := make([]models.DraftMessage, 0, len(candidates))
	for _, candidate := range candidates {
		draft, err := p.drafter.Draft(ctx, candidate, query.IdeaText)
		metrics.DraftsTotal.WithLabelValues(metrics.OutcomeOf(err)).Inc()
		if err != nil {
			log.Error("drafting failed", zap.String("candidate_id", candidate.ID), zap.Error(err))
			p.recordFailure(log, runID, err)
			return nil, err
		}
		drafts = append(drafts, draft)
	}

	p.recordSuccess(log, runID, len(candidates), drafts)
	metrics.SearchesTotal.WithLabelValues(p.mode, metrics.OutcomeSuccess).Inc()

	return &models.SearchResult{
		RunID:      runID.String(),
		Query:      query,
		Candidates: candidates,
		Drafts:     drafts,
	}, nil
}

func (p *searchPipeline) recordStart(log *zap.Logger, runID uuid.UUID, sessionID string, query models.LeadQuery) {
	if p.runs == nil {
		return
	}
	run := &models.SearchRun{
		ID:           runID,
		SessionID:    sessionID,
		Mode:         p.mode,
		BusinessIdea: query.IdeaText,
		Country:      query.Country,
		Industry:     query.Industry,
		Status:       models.SearchRunning,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if urn, ok := LookupRegion(query.Country); ok {
		run.RegionURN = &urn
	}
	if urn, ok := LookupIndustry(query.Industry); ok {
		run.IndustryURN = &urn
	}
	if err := p.runs.Create(run); err != nil {
		log.Warn("failed to record search run", zap.Error(err))
	}
}

func (p *searchPipeline) recordFailure(log *zap.Logger, runID uuid.UUID, cause error) {
	metrics.SearchesTotal.WithLabelValues(p.mode, metrics.OutcomeFailure).Inc()
	if p.runs == nil {
		return
	}
	if err := p.runs.Fail(runID, cause.Error()); err != nil {
		log.Warn("failed to record search failure", zap.Error(err))
	}
}

func (p *searchPipeline) recordSuccess(log *zap.Logger, runID uuid.UUID, candidateCount int, drafts []models.DraftMessage) {
	if p.runs == nil {
		return
	}
	records := make([]models.OutreachDraft, 0, len(drafts))
	for i, d := range drafts {
		records = append(records, models.OutreachDraft{
			Position:      i,
			CandidateID:   d.CandidateID,
			CandidateName: d.CandidateName,
			Body:          d.Body,
			CreatedAt:     time.Now(),
		})
	}
	if err := p.runs.Complete(runID, candidateCount, records); err != nil {
		log.Warn("failed to record search completion", zap.Error(err))
	}
}
