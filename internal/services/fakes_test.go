package services

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"leadreach/outreach-assistant/internal/linkedin"
	"leadreach/outreach-assistant/internal/models"
)

type sentMessage struct {
	Recipients []string
	Body       string
}

// fakeLinkedIn records every call. failOn maps a call number (1-based,
// across all dispatch calls) to the error it should return.
type fakeLinkedIn struct {
	mu          sync.Mutex
	people      []linkedin.Person
	searchErr   error
	searches    []linkedin.SearchParams
	messages    []sentMessage
	connections []string
	calls       int
	failOn      map[int]error
}

func (f *fakeLinkedIn) SearchPeople(_ context.Context, params linkedin.SearchParams) ([]linkedin.Person, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches = append(f.searches, params)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.people, nil
}

func (f *fakeLinkedIn) SendMessage(_ context.Context, recipients []string, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if err := f.failOn[f.calls]; err != nil {
		return err
	}
	f.messages = append(f.messages, sentMessage{Recipients: recipients, Body: body})
	return nil
}

func (f *fakeLinkedIn) AddConnection(_ context.Context, profileID string, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if err := f.failOn[f.calls]; err != nil {
		return err
	}
	f.connections = append(f.connections, profileID)
	return nil
}

type failingProvider struct{ err error }

func (p failingProvider) Acquire(context.Context) (linkedin.API, error) { return nil, p.err }

// fakeGenerator echoes a canned reply and records prompts.
type fakeGenerator struct {
	mu        sync.Mutex
	reply     func(prompt string) string
	failAfter int
	prompts   []string
	maxTokens []int
}

var errGeneration = errors.New("llm exploded")

func (g *fakeGenerator) Complete(_ context.Context, prompt string, maxOutputTokens int) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompts = append(g.prompts, prompt)
	g.maxTokens = append(g.maxTokens, maxOutputTokens)
	if g.failAfter > 0 && len(g.prompts) > g.failAfter {
		return "", errGeneration
	}
	if g.reply != nil {
		return g.reply(prompt), nil
	}
	return "  Hello there!  \n", nil
}

type fakeRunRepo struct {
	created   []*models.SearchRun
	completed map[uuid.UUID][]models.OutreachDraft
	failed    map[uuid.UUID]string
	createErr error
}

func newFakeRunRepo() *fakeRunRepo {
	return &fakeRunRepo{
		completed: map[uuid.UUID][]models.OutreachDraft{},
		failed:    map[uuid.UUID]string{},
	}
}

func (r *fakeRunRepo) Create(run *models.SearchRun) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = append(r.created, run)
	return nil
}

func (r *fakeRunRepo) Complete(id uuid.UUID, _ int, drafts []models.OutreachDraft) error {
	r.completed[id] = drafts
	return nil
}

func (r *fakeRunRepo) Fail(id uuid.UUID, msg string) error {
	r.failed[id] = msg
	return nil
}

func (r *fakeRunRepo) FindByID(uuid.UUID) (*models.SearchRun, error) {
	return nil, errors.New("not implemented")
}

type fakeOutreachRepo struct {
	batches [][]models.OutreachAttempt
}

func (r *fakeOutreachRepo) CreateBatch(attempts []models.OutreachAttempt) error {
	r.batches = append(r.batches, attempts)
	return nil
}

func (r *fakeOutreachRepo) FindByBatch(uuid.UUID) ([]models.OutreachAttempt, error) {
	return nil, errors.New("not implemented")
}
