package core

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const evaluateMaxTokens = 300

const evaluateSystemPrompt = `Evaluate this job application. Return a JSON response with:
- score (1-10): How qualified is this candidate?
- qualified (boolean): Should we move forward?
- missing_skills (list): What key skills are missing?
- strengths (list): What are their strengths?
- next_step (string): What should we do next?
- reasoning (string): Brief explanation

Respond only with the JSON object and nothing else.`

// Evaluator scores job applications against the open roles
type Evaluator struct {
	llm    LLMClient
	logger *zap.Logger
}

// NewEvaluator creates a new evaluator
func NewEvaluator(llm LLMClient, logger *zap.Logger) *Evaluator {
	return &Evaluator{
		llm:    llm,
		logger: logger,
	}
}

// Evaluate scores one application with a single model call. When the model
// response cannot be decoded it returns DefaultEvaluation together with
// ErrUnparseable, so the caller can both proceed and tell the difference.
func (e *Evaluator) Evaluate(ctx context.Context, email *EmailMessage) (*Evaluation, error) {
	result, err := e.llm.Complete(ctx, &CompletionRequest{
		System:    evaluateSystemPrompt,
		Prompt:    fmt.Sprintf("Application email:\n%s", email.Body),
		MaxTokens: evaluateMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate candidate: %w", err)
	}

	var evaluation Evaluation
	if err := json.Unmarshal([]byte(ExtractJSON(result.Text)), &evaluation); err != nil {
		e.logger.Error("Failed to parse evaluation response",
			zap.Error(err),
			zap.String("raw", result.Text))
		return DefaultEvaluation(), fmt.Errorf("%w: %v", ErrUnparseable, err)
	}

	e.logger.Info("Candidate scored",
		zap.Int("score", evaluation.Score),
		zap.Bool("qualified", evaluation.Qualified),
		zap.String("from", email.From))

	return &evaluation, nil
}

// ExtractJSON pulls a JSON object out of raw model text. It strips
// markdown code fences and trims anything outside the outermost braces.
func ExtractJSON(text string) string {
	text = strings.TrimSpace(text)

	// Handle markdown code blocks
	if strings.HasPrefix(text, "```") {
		lines := strings.Split(text, "\n")
		var jsonLines []string
		inBlock := false
		for _, line := range lines {
			if strings.HasPrefix(line, "```") {
				inBlock = !inBlock
				continue
			}
			if inBlock {
				jsonLines = append(jsonLines, line)
			}
		}
		text = strings.Join(jsonLines, "\n")
	}

	// Trim to the outermost braces
	jsonStart := strings.Index(text, "{")
	jsonEnd := strings.LastIndex(text, "}")
	if jsonStart >= 0 && jsonEnd > jsonStart {
		return text[jsonStart : jsonEnd+1]
	}

	return text
}
