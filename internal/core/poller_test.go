package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

// listingMail extends fakeMail with a scripted inbox listing
type listingMail struct {
	fakeMail
	messages []*EmailMessage
	listErr  error
}

func (f *listingMail) ListMessages(ctx context.Context, inboxID string, limit int) ([]*EmailMessage, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if limit < len(f.messages) {
		return f.messages[:limit], nil
	}
	return f.messages, nil
}

func newTestPoller(llm *fakeLLM, mail *listingMail) (*Poller, *MemoryStateForTest) {
	logger := zap.NewNop()
	state := newMemoryStateForTest()
	service := NewTriageService(
		mail,
		state,
		NewClassifier(llm, logger),
		NewEvaluator(llm, logger),
		NewDrafter(llm, CompanyProfile{Name: "TechCorp"}, logger),
		logger,
		interviewerAddr,
	)
	return NewPoller(mail, service, logger, 10*time.Millisecond, 20*time.Millisecond, 20), state
}

func TestPollProcessesListedMessagesInOrder(t *testing.T) {
	llm := &fakeLLM{classifyResponse: "other", draftResponse: "Thanks!"}
	mail := &listingMail{messages: []*EmailMessage{
		{ID: "m1", From: "a@x.com", Subject: "Hi", Body: "First"},
		{ID: "m2", From: "b@y.com", Subject: "Hello", Body: "Second"},
	}}
	poller, state := newTestPoller(llm, mail)

	if err := poller.poll(context.Background(), "agent@test"); err != nil {
		t.Fatal(err)
	}

	for _, id := range []string{"m1", "m2"} {
		if processed, _ := state.IsProcessed(context.Background(), id); !processed {
			t.Errorf("message %s was not processed", id)
		}
	}
	if len(mail.replies) != 2 {
		t.Fatalf("expected 2 replies, got %d", len(mail.replies))
	}
	if mail.replies[0].messageID != "m1" || mail.replies[1].messageID != "m2" {
		t.Error("messages must be processed in listed order")
	}
}

func TestPollSkipsAlreadyProcessed(t *testing.T) {
	llm := &fakeLLM{classifyResponse: "other", draftResponse: "Thanks!"}
	mail := &listingMail{messages: []*EmailMessage{
		{ID: "m1", From: "a@x.com", Subject: "Hi", Body: "First"},
	}}
	poller, _ := newTestPoller(llm, mail)

	ctx := context.Background()
	if err := poller.poll(ctx, "agent@test"); err != nil {
		t.Fatal(err)
	}
	if err := poller.poll(ctx, "agent@test"); err != nil {
		t.Fatal(err)
	}

	if llm.classifyCalls != 1 {
		t.Errorf("expected 1 classification across two polls, got %d", llm.classifyCalls)
	}
}

func TestPollPropagatesListError(t *testing.T) {
	listErr := errors.New("provider unavailable")
	poller, _ := newTestPoller(&fakeLLM{}, &listingMail{listErr: listErr})

	if err := poller.poll(context.Background(), "agent@test"); !errors.Is(err, listErr) {
		t.Errorf("expected list error to propagate, got %v", err)
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	llm := &fakeLLM{classifyResponse: "other", draftResponse: "Thanks!"}
	mail := &listingMail{}
	poller, _ := newTestPoller(llm, mail)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- poller.Run(ctx)
	}()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancellation")
	}
}
