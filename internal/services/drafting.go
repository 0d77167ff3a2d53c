package services

import (
	"context"
	"strings"

	"leadreach/outreach-assistant/internal/models"
)

type MessageDrafter interface {
	Draft(ctx context.Context, candidate models.Candidate, idea string) (models.DraftMessage, error)
}

type messageDrafter struct {
	generator       TextGenerator
	promptBuilder   *PromptBuilder
	maxOutputTokens int
}

func NewMessageDrafter(generator TextGenerator, promptBuilder *PromptBuilder, maxOutputTokens int) MessageDrafter {
	return &messageDrafter{
		generator:       generator,
		promptBuilder:   promptBuilder,
		maxOutputTokens: maxOutputTokens,
	}
}

// Draft implements MessageDrafter.
func (d *messageDrafter) Draft(ctx context.Context, candidate models.Candidate, idea string) (models.DraftMessage, error) {
	prompt := d.promptBuilder.BuildOutreachPrompt(FirstName(candidate.Name), idea)

	text, err := d.generator.Complete(ctx, prompt, d.maxOutputTokens)
	if err != nil {
		return models.DraftMessage{}, collaboratorErr(CollaboratorLLM, "complete", err)
	}

	return models.DraftMessage{
		CandidateID:   candidate.ID,
		CandidateName: candidate.Name,
		Body:          strings.TrimSpace(text),
	}, nil
}
