package analytics

import (
	"sync"
	"time"

	"petrocore-backend/internal/chatbot"
)

// MemorySink keeps telemetry in mutex-guarded maps. Nothing survives a
// restart; that is the contract. Prune bounds memory for long-running
// processes.
type MemorySink struct {
	mu       sync.Mutex
	sessions map[string]*ConversationMetrics
	turns    map[string][]TurnEvent
}

var _ Sink = (*MemorySink)(nil)

// NewMemorySink creates an empty in-memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{
		sessions: make(map[string]*ConversationMetrics),
		turns:    make(map[string][]TurnEvent),
	}
}

// StartSession registers a session. Registering an existing session is a
// no-op, so retried first messages don't reset metrics.
func (m *MemorySink) StartSession(sessionID string, lang chatbot.Language, start time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.sessions[sessionID]; exists {
		return nil
	}
	m.sessions[sessionID] = &ConversationMetrics{
		SessionID:  sessionID,
		StartTime:  start,
		Language:   lang,
		Conversion: chatbot.ConversionNone,
	}
	return nil
}

// RecordTurn appends a turn event and bumps the session's message count.
func (m *MemorySink) RecordTurn(event TurnEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turns[event.SessionID] = append(m.turns[event.SessionID], event)
	if s, ok := m.sessions[event.SessionID]; ok {
		s.MessageCount++
	}
	return nil
}

// RecordIntent adds an intent to the session's intent set.
func (m *MemorySink) RecordIntent(sessionID string, intent chatbot.Intent, _ float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[sessionID]; ok {
		s.Intents = appendIntent(s.Intents, intent)
	}
	return nil
}

// UpdateSession refreshes the per-turn aggregate fields. A non-none conversion
// sticks; later turns never downgrade it back to none.
func (m *MemorySink) UpdateSession(sessionID string, leadScore int, lang chatbot.Language, conversion chatbot.ConversionEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return nil
	}
	s.LeadScore = leadScore
	if lang != "" {
		s.Language = lang
	}
	if conversion != "" && conversion != chatbot.ConversionNone {
		s.Conversion = conversion
	}
	return nil
}

// EndSession closes a session. Ending twice keeps the first end time.
func (m *MemorySink) EndSession(sessionID string, end time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[sessionID]; ok && s.EndTime == nil {
		t := end
		s.EndTime = &t
	}
	return nil
}

// Report aggregates sessions whose start time falls in [from, to).
func (m *MemorySink) Report(from, to time.Time) (*Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var selected []ConversationMetrics
	for _, s := range m.sessions {
		if inWindow(s.StartTime, from, to) {
			selected = append(selected, *s)
		}
	}
	return computeReport(from, to, selected), nil
}

// Prune drops sessions (and their turn logs) that started before cutoff.
// Returns how many sessions were dropped.
func (m *MemorySink) Prune(cutoff time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	dropped := 0
	for id, s := range m.sessions {
		if s.StartTime.Before(cutoff) {
			delete(m.sessions, id)
			delete(m.turns, id)
			dropped++
		}
	}
	return dropped
}

// SessionTurns returns a copy of a session's recorded turns, oldest first.
func (m *MemorySink) SessionTurns(sessionID string) []TurnEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	turns := m.turns[sessionID]
	out := make([]TurnEvent, len(turns))
	copy(out, turns)
	return out
}

// Close satisfies Sink; the memory sink has nothing to release.
func (m *MemorySink) Close() error {
	return nil
}
