package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
	"unicode/utf8"

	"petrocore-backend/internal/analytics"
	"petrocore-backend/internal/chatbot"
	"petrocore-backend/internal/integrations"
	"petrocore-backend/internal/models"
)

// notifyTimeout bounds the background Slack/log delivery of one alert.
const notifyTimeout = 10 * time.Second

// sessionEntry pairs a session with its last-activity timestamp for TTL
// eviction. The entry mutex serializes turns within one session; distinct
// sessions process in parallel.
type sessionEntry struct {
	mu         sync.Mutex
	session    *chatbot.SessionContext
	lastActive time.Time
}

// ChatService owns the session registry and drives the conversation pipeline:
// one inbound message in, one assistant reply out, with analytics, escalation
// alerts, and lead capture as side effects.
type ChatService struct {
	pipeline   *chatbot.Pipeline
	sink       analytics.Sink
	notifier   integrations.EscalationNotifier
	demos      *DemoService
	sessionTTL time.Duration

	mu       sync.Mutex
	sessions map[string]*sessionEntry
}

// NewChatService creates a ChatService. demos may be nil in tests that do not
// exercise lead capture.
func NewChatService(pipeline *chatbot.Pipeline, sink analytics.Sink, notifier integrations.EscalationNotifier, demos *DemoService, sessionTTL time.Duration) *ChatService {
	return &ChatService{
		pipeline:   pipeline,
		sink:       sink,
		notifier:   notifier,
		demos:      demos,
		sessionTTL: sessionTTL,
		sessions:   make(map[string]*sessionEntry),
	}
}

// HandleMessage processes one chat turn. Validation failures come back as
// *chatbot.ValidationError; anything else is an internal failure the handler
// should mask with a generic reply.
func (s *ChatService) HandleMessage(ctx context.Context, req models.ChatMessageRequest) (*models.ChatMessageResponse, error) {
	in := chatbot.TurnInput{
		SessionID:           req.SessionID,
		Message:             req.Message,
		Language:            req.Language,
		ConversationHistory: req.ConversationHistory,
	}
	if req.PreviousLeadScore != nil {
		in.PreviousLeadScore = *req.PreviousLeadScore
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	entry, created := s.getOrCreate(req.SessionID)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if created {
		if err := s.sink.StartSession(req.SessionID, req.Language, time.Now().UTC()); err != nil {
			log.Printf("WARN [ChatService] Analytics StartSession failed for %s: %v", req.SessionID, err)
		}
	}

	// Stateless clients carry their own state; when a request supplies
	// history or a prior score, it replaces whatever the registry holds.
	if req.ConversationHistory != nil {
		entry.session.ConversationHistory = cloneHistory(req.ConversationHistory)
	}
	if req.PreviousLeadScore != nil {
		entry.session.LeadScore = chatbot.ClampLeadScore(*req.PreviousLeadScore)
	}

	out, err := s.pipeline.Process(entry.session, in)
	if err != nil {
		return nil, fmt.Errorf("failed to process message for session %s: %w", req.SessionID, err)
	}
	entry.lastActive = time.Now().UTC()

	s.recordTurn(req.SessionID, in.Message, out)

	if out.ShouldEscalate {
		s.notifyAsync(entry.session, out)
	}
	if out.Conversion == chatbot.ConversionContactProvided && s.demos != nil {
		s.captureLeadAsync(entry.session, in.Message, out)
	}

	return &models.ChatMessageResponse{
		Message: out.Message,
		Context: models.ChatContext{
			SessionID:  out.Context.SessionID,
			LeadScore:  out.Context.LeadScore,
			Language:   out.Context.Language,
			Intent:     out.Context.Intent,
			Confidence: out.Context.Confidence,
			Entities:   out.Context.Entities,
			Sentiment:  out.Context.Sentiment,
		},
		Suggestions:        out.Suggestions,
		ShouldEscalate:     out.ShouldEscalate,
		EscalationMessage:  out.EscalationMessage,
		EscalationTriggers: out.EscalationTriggers,
		Stage:              out.Stage,
	}, nil
}

// Language exposes the pipeline's language service for localized error
// replies at the handler boundary.
func (s *ChatService) Language() *chatbot.LanguageService {
	return s.pipeline.Language()
}

// getOrCreate returns the registry entry for sessionID, creating it if
// needed. The second return reports whether the entry is new.
func (s *ChatService) getOrCreate(sessionID string) (*sessionEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry, ok := s.sessions[sessionID]; ok {
		return entry, false
	}
	entry := &sessionEntry{
		session:    &chatbot.SessionContext{SessionID: sessionID, Stage: chatbot.StageGreeting},
		lastActive: time.Now().UTC(),
	}
	s.sessions[sessionID] = entry
	return entry, true
}

// recordTurn pushes one turn's telemetry into the sink. Analytics is best
// effort: failures are logged and never affect the visitor.
func (s *ChatService) recordTurn(sessionID, userMessage string, out *chatbot.TurnOutput) {
	now := time.Now().UTC()
	userEvent := analytics.TurnEvent{
		SessionID:  sessionID,
		Role:       chatbot.RoleUser,
		Content:    userMessage,
		Timestamp:  now,
		Intent:     out.Context.Intent,
		Confidence: out.Context.Confidence,
		Language:   out.Context.Language,
	}
	assistantEvent := analytics.TurnEvent{
		SessionID: sessionID,
		Role:      chatbot.RoleAssistant,
		Content:   out.Message.Content,
		Timestamp: now,
		Language:  out.Context.Language,
	}
	if err := s.sink.RecordTurn(userEvent); err != nil {
		log.Printf("WARN [ChatService] Analytics RecordTurn failed for %s: %v", sessionID, err)
	}
	if err := s.sink.RecordTurn(assistantEvent); err != nil {
		log.Printf("WARN [ChatService] Analytics RecordTurn failed for %s: %v", sessionID, err)
	}
	if err := s.sink.RecordIntent(sessionID, out.Context.Intent, out.Context.Confidence); err != nil {
		log.Printf("WARN [ChatService] Analytics RecordIntent failed for %s: %v", sessionID, err)
	}
	if err := s.sink.UpdateSession(sessionID, out.Context.LeadScore, out.Context.Language, out.Conversion); err != nil {
		log.Printf("WARN [ChatService] Analytics UpdateSession failed for %s: %v", sessionID, err)
	}
}

// notifyAsync delivers the turn's primary escalation alert in the background.
func (s *ChatService) notifyAsync(session *chatbot.SessionContext, out *chatbot.TurnOutput) {
	primary := out.EscalationTriggers[0]
	alert := integrations.EscalationAlert{
		SessionID:   session.SessionID,
		RuleID:      primary.RuleID,
		Trigger:     primary.Trigger,
		Channel:     primary.Channel,
		Priority:    primary.Priority,
		LeadScore:   out.Context.LeadScore,
		Language:    out.Context.Language,
		LastMessage: truncate(s.lastUserContent(session), 300),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := s.notifier.Notify(ctx, alert); err != nil {
			log.Printf("ERROR [ChatService] Escalation alert delivery failed for %s: %v", alert.SessionID, err)
		}
	}()
}

// captureLeadAsync turns a contact_provided conversion into a demo-request
// record in the background.
func (s *ChatService) captureLeadAsync(session *chatbot.SessionContext, message string, out *chatbot.TurnOutput) {
	email := chatbot.ExtractEmail(message)
	if email == "" {
		return
	}
	sessionID := session.SessionID
	leadScore := out.Context.LeadScore
	entities := out.Context.Entities
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if _, err := s.demos.CreateFromChatbot(ctx, sessionID, email, message, leadScore, entities); err != nil {
			log.Printf("ERROR [ChatService] Lead capture failed for session %s: %v", sessionID, err)
		}
	}()
}

// cloneHistory deep-copies client-supplied history, including each message's
// metadata, so later pipeline writes never alias back into the caller's slice.
func cloneHistory(history []chatbot.Message) []chatbot.Message {
	out := make([]chatbot.Message, len(history))
	copy(out, history)
	for i := range out {
		if out[i].Metadata == nil {
			continue
		}
		meta := *out[i].Metadata
		if meta.Entities != nil {
			entities := make(map[string]string, len(meta.Entities))
			for k, v := range meta.Entities {
				entities[k] = v
			}
			meta.Entities = entities
		}
		out[i].Metadata = &meta
	}
	return out
}

// lastUserContent returns the content of the most recent user message.
func (s *ChatService) lastUserContent(session *chatbot.SessionContext) string {
	for i := len(session.ConversationHistory) - 1; i >= 0; i-- {
		if session.ConversationHistory[i].Role == chatbot.RoleUser {
			return session.ConversationHistory[i].Content
		}
	}
	return ""
}

// truncate shortens s to at most max bytes without splitting a rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

// StartSweeper launches the idle-session eviction loop. Evicted sessions are
// closed in analytics; memory-backed sinks additionally prune aggregates
// older than retention. The loop stops when ctx is cancelled.
func (s *ChatService) StartSweeper(ctx context.Context, interval, retention time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.sweep(time.Now().UTC(), retention)
			}
		}
	}()
}

// sweep evicts sessions idle past the TTL.
func (s *ChatService) sweep(now time.Time, retention time.Duration) {
	cutoff := now.Add(-s.sessionTTL)

	s.mu.Lock()
	expired := make([]string, 0)
	for id, entry := range s.sessions {
		if entry.lastActive.Before(cutoff) {
			expired = append(expired, id)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, id := range expired {
		if err := s.sink.EndSession(id, now); err != nil {
			log.Printf("WARN [ChatService] Analytics EndSession failed for %s: %v", id, err)
		}
	}
	if len(expired) > 0 {
		log.Printf("[ChatService] Evicted %d idle session(s)", len(expired))
	}

	if retention > 0 {
		if pruner, ok := s.sink.(interface{ Prune(time.Time) int }); ok {
			if dropped := pruner.Prune(now.Add(-retention)); dropped > 0 {
				log.Printf("[ChatService] Pruned %d expired analytics session(s)", dropped)
			}
		}
	}
}

// SessionCount reports the number of live sessions in the registry.
func (s *ChatService) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
