package core

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

const (
	draftMaxTokens        = 500
	availabilityMaxTokens = 200
)

// CompanyProfile describes the company the agent recruits for; it is
// interpolated into every drafting prompt
type CompanyProfile struct {
	Name        string
	Description string
	Roles       string
	Process     string
}

// Drafter generates outbound email text
type Drafter struct {
	llm     LLMClient
	company CompanyProfile
	logger  *zap.Logger
}

// NewDrafter creates a new drafter
func NewDrafter(llm LLMClient, company CompanyProfile, logger *zap.Logger) *Drafter {
	return &Drafter{
		llm:     llm,
		company: company,
		logger:  logger,
	}
}

func (d *Drafter) systemPrompt() string {
	return fmt.Sprintf(`You are a friendly, professional AI recruiter for a tech startup.

Company: %s (%s)
Hiring for: %s
Process: %s

Your personality:
- Warm and enthusiastic with qualified candidates
- Professional but not robotic
- Encourage candidates even when rejecting
- Always provide clear next steps
- Use the candidate's name when you know it

Remember previous conversation context when provided.`,
		d.company.Name, d.company.Description, d.company.Roles, d.company.Process)
}

// Draft writes a reply to an email. directions steers the tone and content
// for the specific situation; history carries the thread transcript and may
// be empty.
func (d *Drafter) Draft(ctx context.Context, email *EmailMessage, directions, history string) (string, error) {
	prompt := ""
	if history != "" {
		prompt += fmt.Sprintf("Previous conversation:\n%s\n\n", history)
	}
	if directions != "" {
		prompt += directions + "\n\n"
	}
	prompt += fmt.Sprintf(`Email from: %s
Subject: %s
Content: %s

Write a response email that's helpful and professional.`, email.From, email.Subject, email.Body)

	result, err := d.llm.Complete(ctx, &CompletionRequest{
		System:    d.systemPrompt(),
		Prompt:    prompt,
		MaxTokens: draftMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to draft reply: %w", err)
	}

	return result.Text, nil
}

// ExtractAvailability pulls proposed interview times out of a scheduling
// email as plain text
func (d *Drafter) ExtractAvailability(ctx context.Context, email *EmailMessage) (string, error) {
	result, err := d.llm.Complete(ctx, &CompletionRequest{
		Prompt:    fmt.Sprintf("Extract the available times from this email:\n%s\nList them clearly.", email.Body),
		MaxTokens: availabilityMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to extract availability: %w", err)
	}

	return result.Text, nil
}
