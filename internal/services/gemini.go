package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"leadreach/outreach-assistant/internal/metrics"
)

// TextGenerator is the text-completion collaborator.
type TextGenerator interface {
	Complete(ctx context.Context, prompt string, maxOutputTokens int) (string, error)
}

type GeminiConfig struct {
	APIKey string
	Model  string

	// BaseURL overrides the Gemini API endpoint. Used by tests and proxies.
	BaseURL string

	// ThinkingBudget overrides the per-request thinking token budget. When
	// nil, flash models get 0 and other models use the API default, since
	// pro models reject a zero budget.
	ThinkingBudget *int
}

type geminiService struct {
	client         *genai.Client
	modelName      string
	thinkingBudget *int32
	log            *zap.Logger
}

func NewGeminiService(ctx context.Context, cfg GeminiConfig, log *zap.Logger) (TextGenerator, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, fmt.Errorf("GEMINI_MODEL is required")
	}

	cc := &genai.ClientConfig{
		APIKey:  strings.TrimSpace(cfg.APIKey),
		Backend: genai.BackendGeminiAPI,
	}
	if strings.TrimSpace(cfg.BaseURL) != "" {
		cc.HTTPOptions.BaseURL = strings.TrimSpace(cfg.BaseURL)
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := strings.TrimSpace(cfg.Model)
	return &geminiService{
		client:         client,
		modelName:      model,
		thinkingBudget: thinkingBudgetFor(model, cfg.ThinkingBudget),
		log:            log,
	}, nil
}

// thinkingBudgetFor returns nil when the request should not carry a budget.
func thinkingBudgetFor(model string, override *int) *int32 {
	if override != nil {
		budget := int32(*override)
		return &budget
	}
	if strings.Contains(strings.ToLower(model), "flash") {
		// Thinking tokens count against MaxOutputTokens and can leave no room for the answer.
		budget := int32(0)
		return &budget
	}
	return nil
}

// Complete implements TextGenerator. The returned text is not trimmed.
func (g *geminiService) Complete(ctx context.Context, prompt string, maxOutputTokens int) (string, error) {
	config := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(maxOutputTokens),
		CandidateCount:  1,
	}
	if g.thinkingBudget != nil {
		config.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: g.thinkingBudget}
	}

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	metrics.CollaboratorDuration.WithLabelValues(CollaboratorLLM, "complete").Observe(time.Since(start).Seconds())
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}
	if resp == nil {
		return "", fmt.Errorf("no response generated (nil response)")
	}

	text := resp.Text()
	if text == "" {
		g.log.Warn("gemini returned no text", zap.String("model", g.modelName), zap.Int("candidates", len(resp.Candidates)))
		return "", fmt.Errorf("no text content in response")
	}

	return text, nil
}
