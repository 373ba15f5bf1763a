package agentmail

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/kevinxc1/MailHub/internal/config"
	"github.com/kevinxc1/MailHub/internal/core"
)

// Factory creates new instances of the AgentMail client
type Factory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewFactory creates a new factory for AgentMail clients
func NewFactory(cfg *config.Config, logger *zap.Logger) *Factory {
	return &Factory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateProvider creates a new AgentMail provider
func (f *Factory) CreateProvider() (core.MailProvider, error) {
	agentmailCfg := f.cfg.GetAgentMail()
	if agentmailCfg.APIKey == "" {
		return nil, fmt.Errorf("agentmail API key is not set (MAILHUB_AGENTMAIL_API_KEY)")
	}

	return NewClient(
		agentmailCfg.BaseURL,
		agentmailCfg.APIKey,
		agentmailCfg.InboxLabel,
		agentmailCfg.InboxAddress,
		f.logger,
	), nil
}
