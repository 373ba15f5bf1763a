package mailbox

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kevinxc1/MailHub/internal/core"
)

// Send sends a new outbound email over SMTP
func (p *Provider) Send(ctx context.Context, email *core.OutboundEmail) error {
	headers := map[string]string{
		"Subject": email.Subject,
	}
	if email.InReplyTo != "" {
		headers["In-Reply-To"] = email.InReplyTo
		headers["References"] = email.InReplyTo
	}
	return p.submit(email.To, headers, email.Text)
}

// Reply answers a previously listed message in its thread. The message
// must have been seen by ListMessages in this process; ids are not
// durable across restarts, which matches how the agent uses them.
func (p *Provider) Reply(ctx context.Context, inboxID, messageID, text string) error {
	original := p.lookup(messageID)
	if original == nil {
		return fmt.Errorf("unknown message id %s", messageID)
	}

	subject := original.Subject
	if !strings.HasPrefix(subject, "Re:") {
		subject = "Re: " + subject
	}
	headers := map[string]string{
		"Subject":     subject,
		"In-Reply-To": messageID,
		"References":  messageID,
	}
	return p.submit([]string{original.From}, headers, text)
}

// submit builds an RFC 5322 message and hands it to the SMTP server
func (p *Provider) submit(to []string, headers map[string]string, body string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", p.address)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	fmt.Fprintf(&b, "Message-Id: <%s@%s>\r\n", uuid.NewString(), p.smtpHost)
	for key, value := range headers {
		fmt.Fprintf(&b, "%s: %s\r\n", key, value)
	}
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	b.WriteString("\r\n")

	addr := fmt.Sprintf("%s:%d", p.smtpHost, p.smtpPort)
	auth := sasl.NewPlainClient("", p.username, p.password)

	var err error
	if p.smtpPort == 465 {
		err = smtp.SendMailTLS(addr, auth, p.address, to, strings.NewReader(b.String()))
	} else {
		err = smtp.SendMail(addr, auth, p.address, to, strings.NewReader(b.String()))
	}
	if err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}

	p.logger.Info("Sent mail", zap.Strings("to", to), zap.String("subject", headers["Subject"]))
	return nil
}
