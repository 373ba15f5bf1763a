package store

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/kevinxc1/MailHub/internal/core"
)

// MemoryStore is an in-memory implementation of the StateRepository
// interface. State lives for the process lifetime only.
type MemoryStore struct {
	mu          sync.RWMutex
	processed   map[string]struct{}
	candidates  map[string]*core.Candidate
	transcripts map[string]string
	logger      *zap.Logger
}

// NewMemoryStore creates a new in-memory state store
func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	return &MemoryStore{
		processed:   make(map[string]struct{}),
		candidates:  make(map[string]*core.Candidate),
		transcripts: make(map[string]string),
		logger:      logger,
	}
}

// IsProcessed reports whether a message id has been handled before
func (s *MemoryStore) IsProcessed(ctx context.Context, messageID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.processed[messageID]
	return ok, nil
}

// MarkProcessed records a message id as handled
func (s *MemoryStore) MarkProcessed(ctx context.Context, messageID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.processed[messageID] = struct{}{}
	return nil
}

// GetCandidate retrieves a candidate by email address
func (s *MemoryStore) GetCandidate(ctx context.Context, email string) (*core.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	candidate, ok := s.candidates[email]
	if !ok {
		return nil, core.ErrNotFound
	}
	copied := *candidate
	return &copied, nil
}

// SaveCandidate creates or replaces a candidate record
func (s *MemoryStore) SaveCandidate(ctx context.Context, candidate *core.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *candidate
	s.candidates[candidate.Email] = &copied
	return nil
}

// ListCandidates returns all known candidates
func (s *MemoryStore) ListCandidates(ctx context.Context) ([]*core.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	candidates := make([]*core.Candidate, 0, len(s.candidates))
	for _, candidate := range s.candidates {
		copied := *candidate
		candidates = append(candidates, &copied)
	}
	return candidates, nil
}

// AppendTranscript appends one entry to a thread transcript
func (s *MemoryStore) AppendTranscript(ctx context.Context, threadID, entry string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transcripts[threadID] += entry
	return nil
}

// GetTranscript returns the accumulated transcript for a thread
func (s *MemoryStore) GetTranscript(ctx context.Context, threadID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	transcript, ok := s.transcripts[threadID]
	if !ok {
		return "", core.ErrNotFound
	}
	return transcript, nil
}
