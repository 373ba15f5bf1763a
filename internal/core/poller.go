package core

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Poller drives the agent: it periodically lists inbox messages and feeds
// them to the triage service one at a time. There is exactly one control
// flow, no parallelism and no reordering.
type Poller struct {
	mail         MailProvider
	service      *TriageService
	logger       *zap.Logger
	pollInterval time.Duration
	errorBackoff time.Duration
	messageLimit int
}

// NewPoller creates a new poller
func NewPoller(
	mail MailProvider,
	service *TriageService,
	logger *zap.Logger,
	pollInterval time.Duration,
	errorBackoff time.Duration,
	messageLimit int,
) *Poller {
	return &Poller{
		mail:         mail,
		service:      service,
		logger:       logger,
		pollInterval: pollInterval,
		errorBackoff: errorBackoff,
		messageLimit: messageLimit,
	}
}

// Run polls until the context is cancelled. Any failure inside one
// iteration is logged and answered with a longer sleep before resuming;
// that is the entire recovery strategy.
func (p *Poller) Run(ctx context.Context) error {
	inbox, err := p.mail.SetupInbox(ctx)
	if err != nil {
		return err
	}
	p.logger.Info("Agent polling inbox",
		zap.String("inbox", inbox.ID),
		zap.Duration("interval", p.pollInterval))

	for {
		wait := p.pollInterval
		if err := p.poll(ctx, inbox.ID); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			p.logger.Error("Polling iteration failed, backing off",
				zap.Error(err),
				zap.Duration("backoff", p.errorBackoff))
			wait = p.errorBackoff
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

// poll runs one iteration: list messages, process serially in listed order
func (p *Poller) poll(ctx context.Context, inboxID string) error {
	messages, err := p.mail.ListMessages(ctx, inboxID, p.messageLimit)
	if err != nil {
		return err
	}
	p.logger.Debug("Fetched messages", zap.Int("count", len(messages)))

	for _, msg := range messages {
		if err := p.service.ProcessMessage(ctx, inboxID, msg); err != nil {
			return err
		}
	}

	return nil
}
