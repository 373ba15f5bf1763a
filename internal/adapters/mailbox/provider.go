package mailbox

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	gomail "github.com/emersion/go-message/mail"
	"go.uber.org/zap"

	"github.com/kevinxc1/MailHub/internal/core"
)

// Provider is a MailProvider over a plain IMAP/SMTP mailbox, for running
// the agent against a self-hosted address instead of AgentMail.
type Provider struct {
	imapHost string
	imapPort int
	smtpHost string
	smtpPort int
	username string
	password string
	address  string
	folder   string
	logger   *zap.Logger

	// seen maps listed message ids to their envelope so Reply can
	// address the original sender and keep the References chain.
	mu   sync.Mutex
	seen map[string]*core.EmailMessage
}

// NewProvider creates a new IMAP/SMTP provider
func NewProvider(
	imapHost string,
	imapPort int,
	smtpHost string,
	smtpPort int,
	username string,
	password string,
	address string,
	folder string,
	logger *zap.Logger,
) *Provider {
	return &Provider{
		imapHost: imapHost,
		imapPort: imapPort,
		smtpHost: smtpHost,
		smtpPort: smtpPort,
		username: username,
		password: password,
		address:  address,
		folder:   folder,
		logger:   logger,
		seen:     make(map[string]*core.EmailMessage),
	}
}

// SetupInbox returns the configured mailbox address; IMAP accounts are
// provisioned out of band, there is nothing to create.
func (p *Provider) SetupInbox(ctx context.Context) (*core.Inbox, error) {
	if p.address == "" {
		return nil, fmt.Errorf("mailbox address is not configured")
	}
	return &core.Inbox{ID: p.address}, nil
}

// ListMessages fetches up to limit of the most recent messages in the
// configured folder. Each call opens a fresh connection; the poll
// interval is long enough that keeping one alive buys nothing.
func (p *Provider) ListMessages(ctx context.Context, inboxID string, limit int) ([]*core.EmailMessage, error) {
	cl, err := p.connect()
	if err != nil {
		return nil, err
	}
	defer cl.Logout() //nolint:errcheck

	mbox, err := cl.Select(p.folder, true)
	if err != nil {
		return nil, fmt.Errorf("failed to select folder %s: %w", p.folder, err)
	}
	if mbox.Messages == 0 {
		return nil, nil
	}

	from := uint32(1)
	if mbox.Messages > uint32(limit) {
		from = mbox.Messages - uint32(limit) + 1
	}
	seqset := new(imap.SeqSet)
	seqset.AddRange(from, mbox.Messages)

	section := &imap.BodySectionName{Peek: true}
	items := []imap.FetchItem{imap.FetchEnvelope, section.FetchItem()}

	ch := make(chan *imap.Message, limit)
	done := make(chan error, 1)
	go func() {
		done <- cl.Fetch(seqset, items, ch)
	}()

	var messages []*core.EmailMessage
	for msg := range ch {
		parsed, err := p.parseMessage(msg, section)
		if err != nil {
			p.logger.Warn("Skipping unparseable message", zap.Error(err))
			continue
		}
		messages = append(messages, parsed)
	}
	if err := <-done; err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	p.remember(messages)
	return messages, nil
}

// parseMessage converts one fetched IMAP message into the domain shape
func (p *Provider) parseMessage(msg *imap.Message, section *imap.BodySectionName) (*core.EmailMessage, error) {
	if msg.Envelope == nil {
		return nil, fmt.Errorf("message has no envelope")
	}

	out := &core.EmailMessage{
		ID:      msg.Envelope.MessageId,
		Subject: msg.Envelope.Subject,
	}
	if !msg.Envelope.Date.IsZero() {
		out.ReceivedAt = msg.Envelope.Date
	}
	if len(msg.Envelope.From) > 0 {
		out.From = msg.Envelope.From[0].Address()
	}
	for _, to := range msg.Envelope.To {
		out.To = append(out.To, to.Address())
	}
	// Threads are approximated by the root of the reply chain
	if msg.Envelope.InReplyTo != "" {
		out.ThreadID = msg.Envelope.InReplyTo
	} else {
		out.ThreadID = msg.Envelope.MessageId
	}

	body := msg.GetBody(section)
	if body == nil {
		return out, nil
	}

	reader, err := gomail.CreateReader(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read message body: %w", err)
	}
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read message part: %w", err)
		}
		if _, ok := part.Header.(*gomail.InlineHeader); ok {
			content, err := io.ReadAll(part.Body)
			if err != nil {
				return nil, fmt.Errorf("failed to read part body: %w", err)
			}
			out.Body = strings.TrimSpace(string(content))
			break
		}
	}

	return out, nil
}

// connect dials and authenticates a fresh IMAP session
func (p *Provider) connect() (*client.Client, error) {
	addr := fmt.Sprintf("%s:%d", p.imapHost, p.imapPort)
	cl, err := client.DialTLS(addr, &tls.Config{
		ServerName: p.imapHost,
		MinVersion: tls.VersionTLS12,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to IMAP server: %w", err)
	}
	if err := cl.Login(p.username, p.password); err != nil {
		cl.Logout() //nolint:errcheck
		return nil, fmt.Errorf("failed to login to IMAP server: %w", err)
	}
	return cl, nil
}

func (p *Provider) remember(messages []*core.EmailMessage) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, m := range messages {
		if m.ID != "" {
			p.seen[m.ID] = m
		}
	}
}

func (p *Provider) lookup(messageID string) *core.EmailMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.seen[messageID]
}
