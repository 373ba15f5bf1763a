package agentmail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kevinxc1/MailHub/internal/core"
)

const requestTimeout = 30 * time.Second

// Client is a MailProvider over the AgentMail REST API. The service has
// no Go SDK, so the handful of endpoints the agent needs are called
// directly.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	apiKey       string
	inboxLabel   string
	inboxAddress string
	logger       *zap.Logger
}

// NewClient creates a new AgentMail client
func NewClient(baseURL, apiKey, inboxLabel, inboxAddress string, logger *zap.Logger) *Client {
	return &Client{
		httpClient:   &http.Client{Timeout: requestTimeout},
		baseURL:      strings.TrimRight(baseURL, "/"),
		apiKey:       apiKey,
		inboxLabel:   inboxLabel,
		inboxAddress: inboxAddress,
		logger:       logger,
	}
}

type inboxPayload struct {
	InboxID   string    `json:"inbox_id"`
	CreatedAt time.Time `json:"created_at"`
}

type listInboxesResponse struct {
	Inboxes []inboxPayload `json:"inboxes"`
}

type messagePayload struct {
	MessageID string    `json:"message_id"`
	From      string    `json:"from"`
	To        []string  `json:"to"`
	Subject   string    `json:"subject"`
	Text      string    `json:"text"`
	ThreadID  string    `json:"thread_id"`
	Timestamp time.Time `json:"timestamp"`
}

type listMessagesResponse struct {
	Messages []messagePayload `json:"messages"`
}

// SetupInbox prefers an existing inbox whose id carries the configured
// label, then tries to create one, and finally falls back to the
// configured address so the agent can still run against a known inbox.
func (c *Client) SetupInbox(ctx context.Context) (*core.Inbox, error) {
	var listed listInboxesResponse
	if err := c.do(ctx, http.MethodGet, "/inboxes", nil, &listed); err != nil {
		c.logger.Warn("Could not list inboxes, using configured address",
			zap.Error(err),
			zap.String("address", c.inboxAddress))
		return &core.Inbox{ID: c.inboxAddress}, nil
	}

	for _, inbox := range listed.Inboxes {
		if strings.Contains(strings.ToLower(inbox.InboxID), strings.ToLower(c.inboxLabel)) {
			c.logger.Info("Using existing inbox", zap.String("inbox", inbox.InboxID))
			return &core.Inbox{ID: inbox.InboxID, CreatedAt: inbox.CreatedAt}, nil
		}
	}

	var created inboxPayload
	err := c.do(ctx, http.MethodPost, "/inboxes",
		map[string]string{"username": c.inboxLabel}, &created)
	if err != nil {
		c.logger.Warn("Could not create inbox, using configured address",
			zap.Error(err),
			zap.String("address", c.inboxAddress))
		return &core.Inbox{ID: c.inboxAddress}, nil
	}

	c.logger.Info("Created inbox", zap.String("inbox", created.InboxID))
	return &core.Inbox{ID: created.InboxID, CreatedAt: created.CreatedAt}, nil
}

// ListMessages returns up to limit messages from the inbox
func (c *Client) ListMessages(ctx context.Context, inboxID string, limit int) ([]*core.EmailMessage, error) {
	path := "/inboxes/" + url.PathEscape(inboxID) + "/messages?limit=" + strconv.Itoa(limit)

	var listed listMessagesResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &listed); err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	messages := make([]*core.EmailMessage, 0, len(listed.Messages))
	for _, m := range listed.Messages {
		messages = append(messages, &core.EmailMessage{
			ID:         m.MessageID,
			From:       m.From,
			To:         m.To,
			Subject:    m.Subject,
			Body:       m.Text,
			ThreadID:   m.ThreadID,
			ReceivedAt: m.Timestamp,
		})
	}
	return messages, nil
}

// Send sends a new outbound email from the inbox. Thread and message
// references are passed through when set so the service can deliver into
// an existing conversation.
func (c *Client) Send(ctx context.Context, email *core.OutboundEmail) error {
	path := "/inboxes/" + url.PathEscape(email.InboxID) + "/messages/send"
	body := map[string]interface{}{
		"to":      email.To,
		"subject": email.Subject,
		"text":    email.Text,
	}
	if email.ThreadID != "" {
		body["thread_id"] = email.ThreadID
	}
	if email.InReplyTo != "" {
		body["in_reply_to"] = email.InReplyTo
	}
	if err := c.do(ctx, http.MethodPost, path, body, nil); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

// Reply replies to an existing message, letting the service preserve the thread
func (c *Client) Reply(ctx context.Context, inboxID, messageID, text string) error {
	path := "/inboxes/" + url.PathEscape(inboxID) +
		"/messages/" + url.PathEscape(messageID) + "/reply"
	if err := c.do(ctx, http.MethodPost, path, map[string]string{"text": text}, nil); err != nil {
		return fmt.Errorf("failed to reply to message %s: %w", messageID, err)
	}
	return nil
}

// do performs one authenticated JSON request against the API
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%s %s: unexpected status %d: %s", method, path, resp.StatusCode, string(detail))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
