package core

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a state repository lookup finds nothing
var ErrNotFound = errors.New("not found")

// ErrUnparseable is returned when model output does not decode into the
// expected shape. Callers receive it alongside the documented default so
// a fabricated record is never mistaken for a real one.
var ErrUnparseable = errors.New("unparseable model response")

// LLMClient defines the interface for interacting with LLM services
type LLMClient interface {
	// Complete sends one prompt and returns the raw model text
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResult, error)
}

// MailProvider defines the interface for the mail service
type MailProvider interface {
	// SetupInbox finds or creates the inbox the agent operates on
	SetupInbox(ctx context.Context) (*Inbox, error)

	// ListMessages returns up to limit messages from the inbox
	ListMessages(ctx context.Context, inboxID string, limit int) ([]*EmailMessage, error)

	// Send sends a new outbound email
	Send(ctx context.Context, email *OutboundEmail) error

	// Reply replies to an existing message, preserving its thread
	Reply(ctx context.Context, inboxID, messageID, text string) error
}

// StateRepository defines the interface for the agent's state: the
// processed-message set, candidate records and thread transcripts
type StateRepository interface {
	// IsProcessed reports whether a message id has been handled before
	IsProcessed(ctx context.Context, messageID string) (bool, error)

	// MarkProcessed records a message id as handled
	MarkProcessed(ctx context.Context, messageID string) error

	// GetCandidate retrieves a candidate by email address
	GetCandidate(ctx context.Context, email string) (*Candidate, error)

	// SaveCandidate creates or replaces a candidate record
	SaveCandidate(ctx context.Context, candidate *Candidate) error

	// ListCandidates returns all known candidates
	ListCandidates(ctx context.Context) ([]*Candidate, error)

	// AppendTranscript appends one entry to a thread transcript
	AppendTranscript(ctx context.Context, threadID, entry string) error

	// GetTranscript returns the accumulated transcript for a thread
	GetTranscript(ctx context.Context, threadID string) (string, error)
}
