package integrations

import (
	"context"
	"fmt"
	"log"

	"petrocore-backend/internal/chatbot"

	"github.com/slack-go/slack"
)

// Ensure SlackNotifier implements the EscalationNotifier interface.
var _ EscalationNotifier = (*SlackNotifier)(nil)

// SlackNotifier posts escalation alerts to Slack, routing sales and support
// escalations to their own channels.
type SlackNotifier struct {
	client         *slack.Client
	salesChannel   string
	supportChannel string
}

// NewSlackNotifier creates a notifier over a bot token and the two
// destination channels.
func NewSlackNotifier(botToken, salesChannel, supportChannel string) *SlackNotifier {
	return &SlackNotifier{
		client:         slack.New(botToken),
		salesChannel:   salesChannel,
		supportChannel: supportChannel,
	}
}

// Notify posts the alert to the channel matching the escalation's channel
// kind.
func (n *SlackNotifier) Notify(ctx context.Context, alert EscalationAlert) error {
	destination := n.supportChannel
	if alert.Channel == chatbot.ChannelSales {
		destination = n.salesChannel
	}

	text := fmt.Sprintf(
		":rotating_light: *Chatbot escalation* (%s priority)\n*Rule:* %s (%s)\n*Session:* %s\n*Lead score:* %d\n*Language:* %s\n*Last message:* %s",
		alert.Priority, alert.RuleID, alert.Trigger, alert.SessionID, alert.LeadScore, alert.Language, alert.LastMessage,
	)

	_, _, err := n.client.PostMessageContext(ctx, destination, slack.MsgOptionText(text, false))
	if err != nil {
		log.Printf("ERROR [SlackNotifier] Failed to post escalation for session %s to %s: %v", alert.SessionID, destination, err)
		return fmt.Errorf("failed to post escalation to Slack channel %s: %w", destination, err)
	}

	log.Printf("[SlackNotifier] Posted escalation for session %s to %s (rule=%s)", alert.SessionID, destination, alert.RuleID)
	return nil
}
