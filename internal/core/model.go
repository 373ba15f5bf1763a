package core

import (
	"strings"
	"time"
)

// EmailMessage represents an inbound email as returned by the mail provider
type EmailMessage struct {
	ID         string
	From       string
	To         []string
	Subject    string
	Body       string
	ThreadID   string
	ReceivedAt time.Time
}

// OutboundEmail represents an email to be sent through the mail provider
type OutboundEmail struct {
	InboxID   string
	To        []string
	Subject   string
	Text      string
	InReplyTo string
	ThreadID  string
}

// Inbox is an addressable mail endpoint managed by the mail provider
type Inbox struct {
	ID        string
	CreatedAt time.Time
}

// Category is the intent label assigned to an inbound email
type Category string

const (
	CategoryNewApplication      Category = "new_application"
	CategorySchedulingResponse  Category = "scheduling_response"
	CategoryInterviewerFeedback Category = "interviewer_feedback"
	CategoryQuestion            Category = "question"
	CategoryFollowUp            Category = "follow_up"
	CategoryOther               Category = "other"
)

// ParseCategory maps raw model output to a known category. The second
// return value reports whether the input named a known category; callers
// that receive false should treat the result as the fallback label.
func ParseCategory(s string) (Category, bool) {
	switch Category(strings.ToLower(strings.TrimSpace(s))) {
	case CategoryNewApplication:
		return CategoryNewApplication, true
	case CategorySchedulingResponse:
		return CategorySchedulingResponse, true
	case CategoryInterviewerFeedback:
		return CategoryInterviewerFeedback, true
	case CategoryQuestion:
		return CategoryQuestion, true
	case CategoryFollowUp:
		return CategoryFollowUp, true
	case CategoryOther:
		return CategoryOther, true
	default:
		return CategoryOther, false
	}
}

// CandidateStatus tracks where a candidate is in the hiring funnel
type CandidateStatus string

const (
	StatusNew         CandidateStatus = "new"
	StatusScreening   CandidateStatus = "screening"
	StatusScheduling  CandidateStatus = "scheduling"
	StatusInterviewed CandidateStatus = "interviewed"
	StatusRejected    CandidateStatus = "rejected"
	StatusHired       CandidateStatus = "hired"
)

// ParseCandidateStatus maps a stored string to a known status
func ParseCandidateStatus(s string) (CandidateStatus, bool) {
	switch CandidateStatus(strings.ToLower(strings.TrimSpace(s))) {
	case StatusNew:
		return StatusNew, true
	case StatusScreening:
		return StatusScreening, true
	case StatusScheduling:
		return StatusScheduling, true
	case StatusInterviewed:
		return StatusInterviewed, true
	case StatusRejected:
		return StatusRejected, true
	case StatusHired:
		return StatusHired, true
	default:
		return StatusNew, false
	}
}

// Candidate is the agent's view of one applicant. Evaluated is false when
// the stored score came from the parse-failure default rather than a real
// model evaluation, so the two are never confused downstream.
type Candidate struct {
	Email     string
	Status    CandidateStatus
	ThreadID  string
	Notes     string
	Score     int
	Evaluated bool
	UpdatedAt time.Time
}

// Evaluation is the structured result of scoring one application
type Evaluation struct {
	Score         int      `json:"score"`
	Qualified     bool     `json:"qualified"`
	Strengths     []string `json:"strengths"`
	MissingSkills []string `json:"missing_skills"`
	NextStep      string   `json:"next_step"`
	Reasoning     string   `json:"reasoning"`
}

// DefaultEvaluation returns the documented fallback used when the model
// response cannot be parsed. It is only ever handed out together with
// ErrUnparseable so callers can tell it apart from a real evaluation.
func DefaultEvaluation() *Evaluation {
	return &Evaluation{
		Score:     5,
		Qualified: true,
		NextStep:  "schedule_screen",
		Reasoning: "could not parse evaluation response",
	}
}

// CompletionRequest is a single prompt sent to the LLM provider
type CompletionRequest struct {
	System    string
	Prompt    string
	MaxTokens int
}

// CompletionResult is the raw text returned by the LLM provider
type CompletionResult struct {
	Text         string
	ModelUsed    string
	ProcessingID string
}
