package agentmail

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/kevinxc1/MailHub/internal/core"
)

const testAPIKey = "test-key"

func newTestClient(serverURL string) *Client {
	return NewClient(serverURL, testAPIKey, "recruiter", "recruiter@agentmail.to", zap.NewNop())
}

func TestListMessages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer "+testAPIKey {
			t.Errorf("Authorization = %q", got)
		}
		if r.URL.Path != "/inboxes/recruiter@agentmail.to/messages" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("limit"); got != "20" {
			t.Errorf("limit = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"messages": [
			{"message_id": "m1", "from": "a@x.com", "subject": "App", "text": "hello", "thread_id": "t1"},
			{"message_id": "m2", "from": "b@y.com", "subject": "Q", "text": "question"}
		]}`))
	}))
	defer server.Close()

	messages, err := newTestClient(server.URL).ListMessages(context.Background(), "recruiter@agentmail.to", 20)
	if err != nil {
		t.Fatal(err)
	}
	if len(messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(messages))
	}
	first := messages[0]
	if first.ID != "m1" || first.From != "a@x.com" || first.Body != "hello" || first.ThreadID != "t1" {
		t.Errorf("first message = %+v", first)
	}
}

func TestListMessagesErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "unauthorized"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	if _, err := newTestClient(server.URL).ListMessages(context.Background(), "inbox", 10); err == nil {
		t.Fatal("expected error for non-2xx status")
	}
}

func TestSend(t *testing.T) {
	var got map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if r.URL.Path != "/inboxes/recruiter@agentmail.to/messages/send" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	err := newTestClient(server.URL).Send(context.Background(), &core.OutboundEmail{
		InboxID:  "recruiter@agentmail.to",
		To:       []string{"interviewer@company.com"},
		Subject:  "New qualified candidate [a@x.com]: App",
		Text:     "scored 8/10",
		ThreadID: "t1",
	})
	if err != nil {
		t.Fatal(err)
	}

	if got["subject"] != "New qualified candidate [a@x.com]: App" {
		t.Errorf("subject = %v", got["subject"])
	}
	to, _ := got["to"].([]interface{})
	if len(to) != 1 || to[0] != "interviewer@company.com" {
		t.Errorf("to = %v", got["to"])
	}
	if got["thread_id"] != "t1" {
		t.Errorf("thread_id = %v, want t1", got["thread_id"])
	}
}

func TestSendWithoutThreadOmitsReferences(t *testing.T) {
	var got map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	err := newTestClient(server.URL).Send(context.Background(), &core.OutboundEmail{
		InboxID: "recruiter@agentmail.to",
		To:      []string{"interviewer@company.com"},
		Subject: "Interview availability [a@x.com]: App",
		Text:    "Tuesday 2pm",
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := got["thread_id"]; ok {
		t.Error("thread_id must be absent when no thread is set")
	}
	if _, ok := got["in_reply_to"]; ok {
		t.Error("in_reply_to must be absent when no reference is set")
	}
}

func TestReply(t *testing.T) {
	var got map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/inboxes/inbox1/messages/m1/reply" {
			t.Errorf("path = %q", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	if err := newTestClient(server.URL).Reply(context.Background(), "inbox1", "m1", "Thanks!"); err != nil {
		t.Fatal(err)
	}
	if got["text"] != "Thanks!" {
		t.Errorf("text = %q", got["text"])
	}
}

func TestSetupInboxPrefersExisting(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && r.URL.Path == "/inboxes" {
			w.Write([]byte(`{"inboxes": [
				{"inbox_id": "other@agentmail.to"},
				{"inbox_id": "recruiter-7@agentmail.to"}
			]}`))
			return
		}
		t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
	}))
	defer server.Close()

	inbox, err := newTestClient(server.URL).SetupInbox(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if inbox.ID != "recruiter-7@agentmail.to" {
		t.Errorf("inbox = %q, want the labeled existing inbox", inbox.ID)
	}
}

func TestSetupInboxCreatesWhenMissing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/inboxes":
			w.Write([]byte(`{"inboxes": []}`))
		case r.Method == http.MethodPost && r.URL.Path == "/inboxes":
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			if body["username"] != "recruiter" {
				t.Errorf("username = %q", body["username"])
			}
			w.Write([]byte(`{"inbox_id": "recruiter@agentmail.to"}`))
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	defer server.Close()

	inbox, err := newTestClient(server.URL).SetupInbox(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if inbox.ID != "recruiter@agentmail.to" {
		t.Errorf("inbox = %q", inbox.ID)
	}
}

func TestSetupInboxFallsBackToConfiguredAddress(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	inbox, err := newTestClient(server.URL).SetupInbox(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if inbox.ID != "recruiter@agentmail.to" {
		t.Errorf("fallback inbox = %q, want configured address", inbox.ID)
	}
}
