// Package analytics is the chatbot's telemetry surface: per-turn events and
// per-session aggregate metrics, queryable over a time window. The in-memory
// sink is the contractual baseline (best effort, no durability); the SQLite
// sink trades that up for a durable file.
package analytics

import (
	"time"

	"petrocore-backend/internal/chatbot"
)

// ConversationMetrics is the per-session aggregate: one row per session,
// created at session start, updated every turn, closed on session end.
type ConversationMetrics struct {
	SessionID    string                  `json:"session_id"`
	StartTime    time.Time               `json:"start_time"`
	EndTime      *time.Time              `json:"end_time,omitempty"`
	MessageCount int                     `json:"message_count"`
	Language     chatbot.Language        `json:"language"`
	LeadScore    int                     `json:"lead_score"`
	Intents      []chatbot.Intent        `json:"intents"`
	Conversion   chatbot.ConversionEvent `json:"conversion"`
}

// TurnEvent is one recorded message, either direction.
type TurnEvent struct {
	SessionID  string           `json:"session_id"`
	Role       chatbot.Role     `json:"role"`
	Content    string           `json:"content"`
	Timestamp  time.Time        `json:"timestamp"`
	Intent     chatbot.Intent   `json:"intent,omitempty"`
	Confidence float64          `json:"confidence,omitempty"`
	Language   chatbot.Language `json:"language,omitempty"`
}

// Report aggregates sessions whose start time falls inside a window.
type Report struct {
	From                 time.Time                       `json:"from"`
	To                   time.Time                       `json:"to"`
	TotalSessions        int                             `json:"total_sessions"`
	TotalMessages        int                             `json:"total_messages"`
	LanguageDistribution map[chatbot.Language]int        `json:"language_distribution"`
	IntentDistribution   map[chatbot.Intent]int          `json:"intent_distribution"`
	LeadScoreBuckets     map[string]int                  `json:"lead_score_buckets"`
	Conversions          map[chatbot.ConversionEvent]int `json:"conversions"`
	ConversionRate       float64                         `json:"conversion_rate"`
}

// Sink records chatbot telemetry. Implementations must be safe for concurrent
// use; the pipeline itself is synchronous but sessions run in parallel.
type Sink interface {
	StartSession(sessionID string, lang chatbot.Language, start time.Time) error
	RecordTurn(event TurnEvent) error
	RecordIntent(sessionID string, intent chatbot.Intent, confidence float64) error
	UpdateSession(sessionID string, leadScore int, lang chatbot.Language, conversion chatbot.ConversionEvent) error
	EndSession(sessionID string, end time.Time) error
	Report(from, to time.Time) (*Report, error)
	Close() error
}

// leadScoreBucket maps a score to its distribution bucket label.
func leadScoreBucket(score int) string {
	switch {
	case score < 25:
		return "0-24"
	case score < 50:
		return "25-49"
	case score < 75:
		return "50-74"
	default:
		return "75-100"
	}
}

// computeReport folds session aggregates into a Report. Shared by both sinks
// so the two backends report identically.
func computeReport(from, to time.Time, sessions []ConversationMetrics) *Report {
	report := &Report{
		From:                 from,
		To:                   to,
		LanguageDistribution: make(map[chatbot.Language]int),
		IntentDistribution:   make(map[chatbot.Intent]int),
		LeadScoreBuckets:     make(map[string]int),
		Conversions:          make(map[chatbot.ConversionEvent]int),
	}
	converted := 0
	for _, s := range sessions {
		report.TotalSessions++
		report.TotalMessages += s.MessageCount
		if s.Language != "" {
			report.LanguageDistribution[s.Language]++
		}
		for _, intent := range s.Intents {
			report.IntentDistribution[intent]++
		}
		report.LeadScoreBuckets[leadScoreBucket(s.LeadScore)]++
		if s.Conversion != "" {
			report.Conversions[s.Conversion]++
			if s.Conversion != chatbot.ConversionNone {
				converted++
			}
		}
	}
	if report.TotalSessions > 0 {
		report.ConversionRate = float64(converted) / float64(report.TotalSessions)
	}
	return report
}

// inWindow reports whether a session start time falls inside [from, to).
func inWindow(start, from, to time.Time) bool {
	return !start.Before(from) && start.Before(to)
}

// appendIntent adds intent to the session's intent set, preserving first-seen
// order.
func appendIntent(intents []chatbot.Intent, intent chatbot.Intent) []chatbot.Intent {
	for _, existing := range intents {
		if existing == intent {
			return intents
		}
	}
	return append(intents, intent)
}
