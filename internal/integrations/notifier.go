package integrations

import (
	"context"
	"log"

	"petrocore-backend/internal/chatbot"
)

// EscalationAlert is what the session layer hands to a notifier when a turn
// escalates. LastMessage is included so the receiving human has context.
type EscalationAlert struct {
	SessionID   string
	RuleID      string
	Trigger     chatbot.Trigger
	Channel     chatbot.Channel
	Priority    chatbot.Priority
	LeadScore   int
	Language    chatbot.Language
	LastMessage string
}

// EscalationNotifier delivers escalation alerts to a human channel. Delivery
// is fire-and-forget from the pipeline's point of view; failures are logged,
// never surfaced to the visitor.
type EscalationNotifier interface {
	Notify(ctx context.Context, alert EscalationAlert) error
}

// LogNotifier writes alerts to the process log. It is the default when no
// Slack token is configured.
type LogNotifier struct{}

var _ EscalationNotifier = (*LogNotifier)(nil)

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

// Notify logs the alert.
func (n *LogNotifier) Notify(_ context.Context, alert EscalationAlert) error {
	log.Printf("[Escalation] session=%s rule=%s channel=%s priority=%s leadScore=%d lang=%s",
		alert.SessionID, alert.RuleID, alert.Channel, alert.Priority, alert.LeadScore, alert.Language)
	return nil
}
