package core

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
)

// candidateTagPattern matches the bracketed candidate address the agent
// embeds in every subject it sends to the interviewer, e.g.
// "New qualified candidate [a@x.com]: Application".
var candidateTagPattern = regexp.MustCompile(`\[([^\[\]\s]+@[^\[\]\s]+)\]`)

// TriageService is the core dispatcher: it deduplicates, classifies and
// routes each inbound message to exactly one action
type TriageService struct {
	mail             MailProvider
	state            StateRepository
	classifier       *Classifier
	evaluator        *Evaluator
	drafter          *Drafter
	logger           *zap.Logger
	interviewerEmail string
}

// NewTriageService creates a new triage service
func NewTriageService(
	mail MailProvider,
	state StateRepository,
	classifier *Classifier,
	evaluator *Evaluator,
	drafter *Drafter,
	logger *zap.Logger,
	interviewerEmail string,
) *TriageService {
	return &TriageService{
		mail:             mail,
		state:            state,
		classifier:       classifier,
		evaluator:        evaluator,
		drafter:          drafter,
		logger:           logger,
		interviewerEmail: interviewerEmail,
	}
}

// ProcessMessage handles one inbound message. A message id is marked
// processed up front and never revisited, even when a downstream action
// fails; sends are best effort and do not roll back state mutations.
func (s *TriageService) ProcessMessage(ctx context.Context, inboxID string, msg *EmailMessage) error {
	processed, err := s.state.IsProcessed(ctx, msg.ID)
	if err != nil {
		return fmt.Errorf("failed to check processed status: %w", err)
	}
	if processed {
		s.logger.Debug("Message already processed", zap.String("message_id", msg.ID))
		return nil
	}
	if err := s.state.MarkProcessed(ctx, msg.ID); err != nil {
		return fmt.Errorf("failed to mark message processed: %w", err)
	}

	s.logger.Info("Processing message",
		zap.String("message_id", msg.ID),
		zap.String("from", msg.From),
		zap.String("subject", msg.Subject))

	s.appendTranscript(ctx, msg.ThreadID, fmt.Sprintf("From %s:\n%s\n", msg.From, msg.Body))

	// The interviewer's own mail is handled on sender identity, whatever
	// the classifier would have said about it.
	if strings.EqualFold(msg.From, s.interviewerEmail) {
		return s.handleInterviewerFeedback(ctx, inboxID, msg)
	}

	category, err := s.classifier.Classify(ctx, msg)
	if err != nil {
		return err
	}

	switch category {
	case CategoryNewApplication:
		return s.handleNewApplication(ctx, inboxID, msg)
	case CategorySchedulingResponse:
		return s.handleSchedulingResponse(ctx, inboxID, msg)
	case CategoryInterviewerFeedback, CategoryQuestion, CategoryFollowUp, CategoryOther:
		// interviewer_feedback from anyone other than the interviewer
		// gets the generic treatment rather than the feedback path
		return s.handleGeneric(ctx, inboxID, msg)
	default:
		return fmt.Errorf("unhandled category: %s", category)
	}
}

// handleNewApplication evaluates the candidate, records them, replies, and
// notifies the interviewer when the candidate is qualified
func (s *TriageService) handleNewApplication(ctx context.Context, inboxID string, msg *EmailMessage) error {
	evaluation, err := s.evaluator.Evaluate(ctx, msg)
	parsed := true
	if err != nil {
		if !errors.Is(err, ErrUnparseable) {
			return err
		}
		// Documented fallback: proceed on the default evaluation but
		// record that no real evaluation happened.
		parsed = false
		s.logger.Warn("Using default evaluation", zap.String("from", msg.From))
	}

	status := StatusScreening
	if !evaluation.Qualified {
		status = StatusRejected
	}
	candidate := &Candidate{
		Email:     msg.From,
		Status:    status,
		ThreadID:  threadKey(msg),
		Notes:     evaluation.Reasoning,
		Score:     evaluation.Score,
		Evaluated: parsed,
		UpdatedAt: time.Now(),
	}
	if err := s.state.SaveCandidate(ctx, candidate); err != nil {
		s.logger.Error("Failed to save candidate", zap.Error(err), zap.String("email", msg.From))
	}

	var directions string
	if evaluation.Qualified {
		directions = fmt.Sprintf(`This candidate scored %d/10.
Strengths: %s
Be enthusiastic and invite them to schedule a screening call.
Ask for their availability in the next week.`,
			evaluation.Score, strings.Join(evaluation.Strengths, ", "))
	} else {
		directions = fmt.Sprintf(`This candidate isn't a fit right now.
Missing: %s
Be encouraging and suggest they apply again in the future after gaining more experience.`,
			strings.Join(evaluation.MissingSkills, ", "))
	}

	reply, err := s.drafter.Draft(ctx, msg, directions, s.transcript(ctx, msg.ThreadID))
	if err != nil {
		return err
	}
	s.reply(ctx, inboxID, msg, reply)

	if evaluation.Qualified {
		s.notifyInterviewer(ctx, inboxID,
			fmt.Sprintf("New qualified candidate [%s]: %s", msg.From, msg.Subject),
			fmt.Sprintf(`New candidate scored %d/10:

From: %s
Strengths: %s

Application:
%s

They will be scheduling a screening call soon.`,
				evaluation.Score, msg.From,
				strings.Join(evaluation.Strengths, ", "),
				excerpt(msg.Body, 500)))
	}

	return nil
}

// handleSchedulingResponse forwards extracted availability to the
// interviewer, acknowledges the candidate, and moves them to scheduling
func (s *TriageService) handleSchedulingResponse(ctx context.Context, inboxID string, msg *EmailMessage) error {
	availability, err := s.drafter.ExtractAvailability(ctx, msg)
	if err != nil {
		return err
	}

	s.notifyInterviewer(ctx, inboxID,
		fmt.Sprintf("Interview availability [%s]: %s", msg.From, msg.Subject),
		fmt.Sprintf(`Candidate has provided availability:

%s

Original message:
%s

Please reply with your preferred time.`, availability, msg.Body))

	reply, err := s.drafter.Draft(ctx, msg,
		"Thank them for the availability and let them know we'll confirm a time within 24 hours.",
		s.transcript(ctx, msg.ThreadID))
	if err != nil {
		return err
	}
	s.reply(ctx, inboxID, msg, reply)

	// Status moves only for the sender's own record; an unknown sender
	// is logged rather than invented.
	candidate, err := s.state.GetCandidate(ctx, msg.From)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.Warn("Scheduling response from unknown candidate", zap.String("from", msg.From))
			return nil
		}
		return fmt.Errorf("failed to load candidate: %w", err)
	}
	candidate.Status = StatusScheduling
	candidate.UpdatedAt = time.Now()
	if err := s.state.SaveCandidate(ctx, candidate); err != nil {
		s.logger.Error("Failed to update candidate status", zap.Error(err), zap.String("email", msg.From))
	}

	return nil
}

// handleInterviewerFeedback resolves which candidate the interviewer is
// talking about via the bracketed address carried in the subject line.
// Mail without a resolvable tag is logged and skipped, never answered
// blindly.
func (s *TriageService) handleInterviewerFeedback(ctx context.Context, inboxID string, msg *EmailMessage) error {
	match := candidateTagPattern.FindStringSubmatch(msg.Subject)
	if match == nil {
		s.logger.Warn("Interviewer message carries no candidate tag, skipping",
			zap.String("subject", msg.Subject))
		return nil
	}
	candidateEmail := match[1]

	candidate, err := s.state.GetCandidate(ctx, candidateEmail)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.Warn("Interviewer message names unknown candidate",
				zap.String("candidate", candidateEmail))
			return nil
		}
		return fmt.Errorf("failed to load candidate: %w", err)
	}

	confirmation, err := s.drafter.Draft(ctx, msg,
		fmt.Sprintf(`The interviewer has responded about the candidate %s:
%s
Write a short note to the candidate confirming the next step of their interview process.`,
			candidate.Email, msg.Body),
		s.transcript(ctx, candidate.ThreadID))
	if err != nil {
		return err
	}

	out := &OutboundEmail{
		InboxID:  inboxID,
		To:       []string{candidate.Email},
		Subject:  fmt.Sprintf("Interview update: %s", msg.Subject),
		Text:     confirmation,
		ThreadID: candidate.ThreadID,
	}
	if err := s.mail.Send(ctx, out); err != nil {
		s.logger.Error("Failed to send interview update", zap.Error(err), zap.String("to", candidate.Email))
		return nil
	}
	s.appendTranscript(ctx, candidate.ThreadID, fmt.Sprintf("Our response:\n%s\n", confirmation))

	candidate.Status = StatusInterviewed
	candidate.UpdatedAt = time.Now()
	if err := s.state.SaveCandidate(ctx, candidate); err != nil {
		s.logger.Error("Failed to update candidate status", zap.Error(err), zap.String("email", candidate.Email))
	}

	return nil
}

// handleGeneric drafts and sends a reply with no candidate-state mutation
func (s *TriageService) handleGeneric(ctx context.Context, inboxID string, msg *EmailMessage) error {
	reply, err := s.drafter.Draft(ctx, msg, "", s.transcript(ctx, msg.ThreadID))
	if err != nil {
		return err
	}
	s.reply(ctx, inboxID, msg, reply)
	return nil
}

// reply answers an inbound message in its thread, best effort
func (s *TriageService) reply(ctx context.Context, inboxID string, msg *EmailMessage, text string) {
	if err := s.mail.Reply(ctx, inboxID, msg.ID, text); err != nil {
		s.logger.Error("Failed to send reply",
			zap.Error(err),
			zap.String("message_id", msg.ID),
			zap.String("to", msg.From))
		return
	}
	s.logger.Info("Replied to message", zap.String("message_id", msg.ID), zap.String("to", msg.From))
	s.appendTranscript(ctx, msg.ThreadID, fmt.Sprintf("Our response:\n%s\n", text))
}

// notifyInterviewer sends a new message to the interviewer, best effort
func (s *TriageService) notifyInterviewer(ctx context.Context, inboxID, subject, body string) {
	out := &OutboundEmail{
		InboxID: inboxID,
		To:      []string{s.interviewerEmail},
		Subject: subject,
		Text:    body,
	}
	if err := s.mail.Send(ctx, out); err != nil {
		s.logger.Error("Failed to notify interviewer", zap.Error(err), zap.String("subject", subject))
		return
	}
	s.logger.Info("Notified interviewer", zap.String("subject", subject))
}

func (s *TriageService) appendTranscript(ctx context.Context, threadID, entry string) {
	if threadID == "" {
		return
	}
	if err := s.state.AppendTranscript(ctx, threadID, entry); err != nil {
		s.logger.Error("Failed to append transcript", zap.Error(err), zap.String("thread_id", threadID))
	}
}

func (s *TriageService) transcript(ctx context.Context, threadID string) string {
	if threadID == "" {
		return ""
	}
	history, err := s.state.GetTranscript(ctx, threadID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		s.logger.Error("Failed to load transcript", zap.Error(err), zap.String("thread_id", threadID))
	}
	return history
}

// threadKey falls back to the message id when the provider assigned no
// thread, so every candidate record has a stable conversation handle
func threadKey(msg *EmailMessage) string {
	if msg.ThreadID != "" {
		return msg.ThreadID
	}
	return msg.ID
}

func excerpt(text string, max int) string {
	if len(text) <= max {
		return text
	}
	cut := text[:max]
	// Cutting on a byte budget can land inside a multi-byte rune
	for !utf8.ValidString(cut) && len(cut) > 0 {
		cut = cut[:len(cut)-1]
	}
	return cut + "..."
}
