package anthropic

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"go.uber.org/zap"

	"github.com/kevinxc1/MailHub/internal/core"
	"github.com/kevinxc1/MailHub/internal/utils"
)

// AnthropicClient is an implementation of the LLMClient interface using
// the Anthropic Messages API
type AnthropicClient struct {
	client        *anthropic.Client
	model         string
	maxTokens     int
	maxBodySize   int
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewAnthropicClient creates a new Anthropic client
func NewAnthropicClient(
	client *anthropic.Client,
	model string,
	maxTokens int,
	maxBodySize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) *AnthropicClient {
	return &AnthropicClient{
		client:        client,
		model:         model,
		maxTokens:     maxTokens,
		maxBodySize:   maxBodySize,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// Complete sends one prompt to the Anthropic API and returns the raw text
func (c *AnthropicClient) Complete(ctx context.Context, req *core.CompletionRequest) (*core.CompletionResult, error) {
	prompt := c.textProcessor.ProcessText(req.Prompt, c.maxBodySize)

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = c.maxTokens
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.F(c.model),
		MaxTokens: anthropic.Int(int64(maxTokens)),
		Messages: anthropic.F([]anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		}),
	}
	if req.System != "" {
		params.System = anthropic.F([]anthropic.TextBlockParam{
			anthropic.NewTextBlock(req.System),
		})
	}

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to create message with Anthropic: %w", err)
	}

	var responseText string
	for _, block := range resp.Content {
		if block.Type == anthropic.ContentBlockTypeText {
			responseText = block.Text
			break
		}
	}
	if responseText == "" {
		return nil, fmt.Errorf("empty response from Anthropic")
	}

	c.logger.Debug("Anthropic completion",
		zap.String("model", c.model),
		zap.Int64("input_tokens", resp.Usage.InputTokens),
		zap.Int64("output_tokens", resp.Usage.OutputTokens))

	return &core.CompletionResult{
		Text:         responseText,
		ModelUsed:    c.model,
		ProcessingID: resp.ID,
	}, nil
}
