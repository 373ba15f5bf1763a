package core

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

const classifyMaxTokens = 50

const classifySystemPrompt = `Categorize this email into ONE of these categories:
- new_application (someone applying for a job)
- scheduling_response (candidate providing availability)
- interviewer_feedback (interviewer responding about a candidate)
- question (candidate asking questions)
- follow_up (candidate following up on application)
- other

Respond with just the category name.`

// Classifier assigns an intent category to inbound email
type Classifier struct {
	llm    LLMClient
	logger *zap.Logger
}

// NewClassifier creates a new classifier
func NewClassifier(llm LLMClient, logger *zap.Logger) *Classifier {
	return &Classifier{
		llm:    llm,
		logger: logger,
	}
}

// Classify determines the category of an email with a single model call.
// Output that does not name a known category maps to CategoryOther; only
// a failed provider call surfaces as an error.
func (c *Classifier) Classify(ctx context.Context, email *EmailMessage) (Category, error) {
	result, err := c.llm.Complete(ctx, &CompletionRequest{
		System:    classifySystemPrompt,
		Prompt:    email.Body,
		MaxTokens: classifyMaxTokens,
	})
	if err != nil {
		return CategoryOther, fmt.Errorf("failed to classify email: %w", err)
	}

	category, known := ParseCategory(result.Text)
	if !known {
		c.logger.Warn("Unrecognized category from model, using fallback",
			zap.String("raw", result.Text),
			zap.String("fallback", string(CategoryOther)))
	}

	c.logger.Info("Email categorized",
		zap.String("category", string(category)),
		zap.String("from", email.From),
		zap.String("model", result.ModelUsed))

	return category, nil
}
