package factory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/kevinxc1/MailHub/internal/adapters/agentmail"
	"github.com/kevinxc1/MailHub/internal/adapters/mailbox"
	"github.com/kevinxc1/MailHub/internal/config"
	"github.com/kevinxc1/MailHub/internal/core"
)

// MailFactory creates mail providers
type MailFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewMailFactory creates a new mail factory
func NewMailFactory(cfg *config.Config, logger *zap.Logger) *MailFactory {
	return &MailFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateMailProvider creates a new mail provider based on the configuration
func (f *MailFactory) CreateMailProvider() (core.MailProvider, error) {
	mailConfig := f.cfg.GetMail()

	switch mailConfig.Provider {
	case "agentmail":
		factory := agentmail.NewFactory(f.cfg, f.logger)
		return factory.CreateProvider()
	case "mailbox":
		factory := mailbox.NewFactory(f.cfg, f.logger)
		return factory.CreateProvider()
	default:
		return nil, fmt.Errorf("unsupported mail provider: %s", mailConfig.Provider)
	}
}
