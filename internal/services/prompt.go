package services

import (
	"fmt"
	"strings"
)

type PromptBuilder struct {
	senderName string
}

func NewPromptBuilder(senderName string) *PromptBuilder {
	return &PromptBuilder{senderName: strings.TrimSpace(senderName)}
}

// BuildOutreachPrompt creates the connection message prompt for one candidate.
// firstName and idea are embedded verbatim.
func (pb *PromptBuilder) BuildOutreachPrompt(firstName, idea string) string {
	var b strings.Builder
	b.WriteString("Generate a message for a potential LinkedIn connection. ")
	if pb.senderName != "" {
		fmt.Fprintf(&b, "My name is %s. ", pb.senderName)
	}
	fmt.Fprintf(&b, "Address the user by their first name %s and mention the details of business idea '%s'.\n\n", firstName, idea)
	return b.String()
}

// FirstName returns the first whitespace-separated token of a display name.
func FirstName(fullName string) string {
	fields := strings.Fields(fullName)
	if len(fields) == 0 {
		return strings.TrimSpace(fullName)
	}
	return fields[0]
}
