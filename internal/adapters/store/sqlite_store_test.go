package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kevinxc1/MailHub/internal/core"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "state.db"), zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStoreProcessed(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	if processed, err := s.IsProcessed(ctx, "m1"); err != nil || processed {
		t.Fatalf("IsProcessed on empty store = (%v, %v)", processed, err)
	}

	if err := s.MarkProcessed(ctx, "m1"); err != nil {
		t.Fatal(err)
	}
	// Marking twice must not error
	if err := s.MarkProcessed(ctx, "m1"); err != nil {
		t.Fatal(err)
	}

	if processed, _ := s.IsProcessed(ctx, "m1"); !processed {
		t.Error("m1 should be processed after marking")
	}
}

func TestSQLiteStoreCandidateRoundTrip(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	if _, err := s.GetCandidate(ctx, "a@x.com"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	candidate := &core.Candidate{
		Email:     "a@x.com",
		Status:    core.StatusScreening,
		ThreadID:  "t1",
		Notes:     "strong Go background",
		Score:     8,
		Evaluated: true,
		UpdatedAt: time.Now(),
	}
	if err := s.SaveCandidate(ctx, candidate); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetCandidate(ctx, "a@x.com")
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != core.StatusScreening || got.Score != 8 || !got.Evaluated {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if got.Notes != "strong Go background" {
		t.Errorf("notes = %q", got.Notes)
	}

	// Saving again with the same email must update, not duplicate
	candidate.Status = core.StatusScheduling
	if err := s.SaveCandidate(ctx, candidate); err != nil {
		t.Fatal(err)
	}
	all, err := s.ListCandidates(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 candidate after upsert, got %d", len(all))
	}
	if all[0].Status != core.StatusScheduling {
		t.Errorf("status after upsert = %s", all[0].Status)
	}
}

func TestSQLiteStoreTranscriptAppend(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	if _, err := s.GetTranscript(ctx, "t1"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := s.AppendTranscript(ctx, "t1", "first\n"); err != nil {
		t.Fatal(err)
	}
	if err := s.AppendTranscript(ctx, "t1", "second\n"); err != nil {
		t.Fatal(err)
	}

	transcript, err := s.GetTranscript(ctx, "t1")
	if err != nil {
		t.Fatal(err)
	}
	if transcript != "first\nsecond\n" {
		t.Errorf("transcript = %q, want %q", transcript, "first\nsecond\n")
	}
}
