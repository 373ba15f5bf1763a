package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/kevinxc1/MailHub/internal/core"
)

// SQLiteStore is a SQLite implementation of the StateRepository
// interface, for agents that should survive restarts.
type SQLiteStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteStore creates a new SQLite state store
func NewSQLiteStore(dbPath string, logger *zap.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	for _, stmt := range []string{
		`CREATE TABLE IF NOT EXISTS processed_messages (
			message_id TEXT PRIMARY KEY,
			processed_at TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS candidates (
			email TEXT PRIMARY KEY,
			status TEXT,
			thread_id TEXT,
			notes TEXT,
			score INTEGER,
			evaluated BOOLEAN,
			updated_at TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS transcripts (
			thread_id TEXT PRIMARY KEY,
			content TEXT,
			updated_at TIMESTAMP
		)`,
	} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create table: %w", err)
		}
	}

	return &SQLiteStore{db: db, logger: logger}, nil
}

// Close closes the underlying database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// IsProcessed reports whether a message id has been handled before
func (s *SQLiteStore) IsProcessed(ctx context.Context, messageID string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM processed_messages WHERE message_id = ?`, messageID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query processed messages: %w", err)
	}
	return true, nil
}

// MarkProcessed records a message id as handled
func (s *SQLiteStore) MarkProcessed(ctx context.Context, messageID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO processed_messages (message_id, processed_at) VALUES (?, ?)`,
		messageID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to mark message processed: %w", err)
	}
	return nil
}

// GetCandidate retrieves a candidate by email address
func (s *SQLiteStore) GetCandidate(ctx context.Context, email string) (*core.Candidate, error) {
	candidate := &core.Candidate{}
	var status string
	err := s.db.QueryRowContext(ctx, `
		SELECT email, status, thread_id, notes, score, evaluated, updated_at
		FROM candidates WHERE email = ?`, email).Scan(
		&candidate.Email, &status, &candidate.ThreadID, &candidate.Notes,
		&candidate.Score, &candidate.Evaluated, &candidate.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query candidate: %w", err)
	}
	candidate.Status, _ = core.ParseCandidateStatus(status)
	return candidate, nil
}

// SaveCandidate creates or replaces a candidate record
func (s *SQLiteStore) SaveCandidate(ctx context.Context, candidate *core.Candidate) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO candidates (email, status, thread_id, notes, score, evaluated, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(email) DO UPDATE SET
			status = excluded.status,
			thread_id = excluded.thread_id,
			notes = excluded.notes,
			score = excluded.score,
			evaluated = excluded.evaluated,
			updated_at = excluded.updated_at`,
		candidate.Email, string(candidate.Status), candidate.ThreadID,
		candidate.Notes, candidate.Score, candidate.Evaluated, candidate.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save candidate: %w", err)
	}
	return nil
}

// ListCandidates returns all known candidates
func (s *SQLiteStore) ListCandidates(ctx context.Context) ([]*core.Candidate, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT email, status, thread_id, notes, score, evaluated, updated_at
		FROM candidates`)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	var candidates []*core.Candidate
	for rows.Next() {
		candidate := &core.Candidate{}
		var status string
		if err := rows.Scan(&candidate.Email, &status, &candidate.ThreadID,
			&candidate.Notes, &candidate.Score, &candidate.Evaluated,
			&candidate.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidate.Status, _ = core.ParseCandidateStatus(status)
		candidates = append(candidates, candidate)
	}
	return candidates, rows.Err()
}

// AppendTranscript appends one entry to a thread transcript
func (s *SQLiteStore) AppendTranscript(ctx context.Context, threadID, entry string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transcripts (thread_id, content, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(thread_id) DO UPDATE SET
			content = content || excluded.content,
			updated_at = excluded.updated_at`,
		threadID, entry, time.Now())
	if err != nil {
		return fmt.Errorf("failed to append transcript: %w", err)
	}
	return nil
}

// GetTranscript returns the accumulated transcript for a thread
func (s *SQLiteStore) GetTranscript(ctx context.Context, threadID string) (string, error) {
	var content string
	err := s.db.QueryRowContext(ctx,
		`SELECT content FROM transcripts WHERE thread_id = ?`, threadID).Scan(&content)
	if err == sql.ErrNoRows {
		return "", core.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query transcript: %w", err)
	}
	return content, nil
}
