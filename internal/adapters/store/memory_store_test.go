package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kevinxc1/MailHub/internal/core"
)

func TestMemoryStoreProcessed(t *testing.T) {
	s := NewMemoryStore(zap.NewNop())
	ctx := context.Background()

	processed, err := s.IsProcessed(ctx, "m1")
	if err != nil {
		t.Fatal(err)
	}
	if processed {
		t.Error("fresh store should not report messages as processed")
	}

	if err := s.MarkProcessed(ctx, "m1"); err != nil {
		t.Fatal(err)
	}
	if err := s.MarkProcessed(ctx, "m1"); err != nil {
		t.Fatal(err)
	}

	if processed, _ = s.IsProcessed(ctx, "m1"); !processed {
		t.Error("m1 should be processed after marking")
	}
	if processed, _ = s.IsProcessed(ctx, "m2"); processed {
		t.Error("m2 was never marked")
	}
}

func TestMemoryStoreCandidates(t *testing.T) {
	s := NewMemoryStore(zap.NewNop())
	ctx := context.Background()

	if _, err := s.GetCandidate(ctx, "a@x.com"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	candidate := &core.Candidate{
		Email:     "a@x.com",
		Status:    core.StatusScreening,
		ThreadID:  "t1",
		Score:     8,
		Evaluated: true,
		UpdatedAt: time.Now(),
	}
	if err := s.SaveCandidate(ctx, candidate); err != nil {
		t.Fatal(err)
	}

	// Mutating the caller's struct must not leak into the store
	candidate.Score = 1

	got, err := s.GetCandidate(ctx, "a@x.com")
	if err != nil {
		t.Fatal(err)
	}
	if got.Score != 8 || got.Status != core.StatusScreening {
		t.Errorf("stored candidate = %+v", got)
	}

	got.Status = core.StatusScheduling
	if err := s.SaveCandidate(ctx, got); err != nil {
		t.Fatal(err)
	}
	updated, _ := s.GetCandidate(ctx, "a@x.com")
	if updated.Status != core.StatusScheduling {
		t.Errorf("status after update = %s, want scheduling", updated.Status)
	}

	all, err := s.ListCandidates(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Errorf("ListCandidates returned %d entries, want 1", len(all))
	}
}

func TestMemoryStoreTranscript(t *testing.T) {
	s := NewMemoryStore(zap.NewNop())
	ctx := context.Background()

	if _, err := s.GetTranscript(ctx, "t1"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := s.AppendTranscript(ctx, "t1", "From a@x.com:\nHi\n"); err != nil {
		t.Fatal(err)
	}
	if err := s.AppendTranscript(ctx, "t1", "Our response:\nHello\n"); err != nil {
		t.Fatal(err)
	}

	transcript, err := s.GetTranscript(ctx, "t1")
	if err != nil {
		t.Fatal(err)
	}
	want := "From a@x.com:\nHi\nOur response:\nHello\n"
	if transcript != want {
		t.Errorf("transcript = %q, want %q", transcript, want)
	}
}
