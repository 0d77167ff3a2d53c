package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"leadreach/outreach-assistant/internal/linkedin"
	"leadreach/outreach-assistant/internal/metrics"
	"leadreach/outreach-assistant/internal/models"
)

type LeadSearchService interface {
	Search(ctx context.Context, query models.LeadQuery) ([]models.Candidate, error)
}

type leadSearchService struct {
	provider linkedin.Provider
	profile  SearchProfile
	log      *zap.Logger
}

func NewLeadSearchService(provider linkedin.Provider, profile SearchProfile, log *zap.Logger) LeadSearchService {
	return &leadSearchService{
		provider: provider,
		profile:  profile,
		log:      log,
	}
}

// Search implements LeadSearchService. Unmapped country or industry names
// simply drop that filter.
func (s *leadSearchService) Search(ctx context.Context, query models.LeadQuery) ([]models.Candidate, error) {
	api, err := s.provider.Acquire(ctx)
	if err != nil {
		return nil, collaboratorErr(CollaboratorLinkedIn, "connect", err)
	}

	params := linkedin.SearchParams{
		Keywords:      query.IdeaText,
		NetworkDepths: s.profile.NetworkDepths,
		Limit:         s.profile.ResultLimit,
	}
	if urn, ok := LookupRegion(query.Country); ok {
		params.Regions = []string{urn}
	}
	if urn, ok := LookupIndustry(query.Industry); ok {
		params.Industries = []string{urn}
	}

	s.log.Debug("searching people",
		zap.Strings("regions", params.Regions),
		zap.Strings("industries", params.Industries),
		zap.Int("limit", params.Limit),
	)

	start := time.Now()
	people, err := api.SearchPeople(ctx, params)
	metrics.CollaboratorDuration.WithLabelValues(CollaboratorLinkedIn, "search").Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, collaboratorErr(CollaboratorLinkedIn, "search", err)
	}

	candidates := make([]models.Candidate, 0, len(people))
	for _, p := range people {
		candidates = append(candidates, s.toCandidate(p))
	}
	return candidates, nil
}

func (s *leadSearchService) toCandidate(p linkedin.Person) models.Candidate {
	c := models.Candidate{
		ID:              p.URNID,
		Name:            p.Name,
		JobTitle:        p.JobTitle,
		Location:        p.Location,
		NetworkDistance: p.Distance,
	}
	if s.profile.FillMissing {
		for _, field := range []*string{&c.ID, &c.Name, &c.JobTitle, &c.Location, &c.NetworkDistance} {
			if *field == "" {
				*field = models.NotAvailable
			}
		}
	}
	return c
}
