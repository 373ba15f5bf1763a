package mailbox

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/kevinxc1/MailHub/internal/config"
	"github.com/kevinxc1/MailHub/internal/core"
)

// Factory creates new instances of the IMAP/SMTP provider
type Factory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewFactory creates a new factory for mailbox providers
func NewFactory(cfg *config.Config, logger *zap.Logger) *Factory {
	return &Factory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateProvider creates a new mailbox provider
func (f *Factory) CreateProvider() (core.MailProvider, error) {
	mailboxCfg := f.cfg.GetMailbox()
	if mailboxCfg.IMAPHost == "" || mailboxCfg.SMTPHost == "" {
		return nil, fmt.Errorf("mailbox IMAP/SMTP hosts are not configured")
	}
	if mailboxCfg.Username == "" || mailboxCfg.Password == "" {
		return nil, fmt.Errorf("mailbox credentials are not set (MAILHUB_MAILBOX_USERNAME / MAILHUB_MAILBOX_PASSWORD)")
	}

	return NewProvider(
		mailboxCfg.IMAPHost,
		mailboxCfg.IMAPPort,
		mailboxCfg.SMTPHost,
		mailboxCfg.SMTPPort,
		mailboxCfg.Username,
		mailboxCfg.Password,
		mailboxCfg.Address,
		mailboxCfg.Folder,
		f.logger,
	), nil
}
