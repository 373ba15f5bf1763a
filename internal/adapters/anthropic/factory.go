package anthropic

import (
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"

	"github.com/kevinxc1/MailHub/internal/config"
	"github.com/kevinxc1/MailHub/internal/core"
	"github.com/kevinxc1/MailHub/internal/utils"
)

// Factory creates new instances of AnthropicClient
type Factory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewFactory creates a new factory for AnthropicClient instances
func NewFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *Factory {
	return &Factory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateClient creates a new AnthropicClient
func (f *Factory) CreateClient() (core.LLMClient, error) {
	anthropicCfg := f.cfg.GetAnthropic()
	if anthropicCfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic API key is not set (MAILHUB_ANTHROPIC_API_KEY)")
	}

	client := anthropic.NewClient(option.WithAPIKey(anthropicCfg.APIKey))

	return NewAnthropicClient(
		client,
		anthropicCfg.Model,
		anthropicCfg.MaxTokens,
		f.cfg.GetAgent().MaxBodySize,
		f.logger,
		f.textProcessor,
	), nil
}
