package services

import (
	"context"
	"errors"
	"math/rand"
	"reflect"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"petrocore-backend/internal/analytics"
	"petrocore-backend/internal/chatbot"
	"petrocore-backend/internal/integrations"
	"petrocore-backend/internal/models"
)

func newTestChatService(sink analytics.Sink) *ChatService {
	pipeline := chatbot.NewPipeline(chatbot.NewKnowledgeStore(), rand.New(rand.NewSource(1)))
	return NewChatService(pipeline, sink, integrations.NewLogNotifier(), nil, 30*time.Minute)
}

func TestHandleMessage_BasicTurn(t *testing.T) {
	sink := analytics.NewMemorySink()
	svc := newTestChatService(sink)

	resp, err := svc.HandleMessage(context.Background(), models.ChatMessageRequest{
		SessionID: "s-1",
		Message:   "hello",
	})
	if err != nil {
		t.Fatalf("HandleMessage failed: %v", err)
	}
	if resp.Message.Content == "" {
		t.Error("expected a non-empty assistant reply")
	}
	if resp.Context.Intent != chatbot.IntentGreeting {
		t.Errorf("expected greeting, got %s", resp.Context.Intent)
	}
	if resp.Context.SessionID != "s-1" {
		t.Errorf("context session mismatch: %s", resp.Context.SessionID)
	}
	if len(resp.Suggestions) == 0 {
		t.Error("expected quick-reply suggestions")
	}
	if svc.SessionCount() != 1 {
		t.Errorf("expected 1 live session, got %d", svc.SessionCount())
	}
	// Both directions of the turn reach analytics.
	if turns := sink.SessionTurns("s-1"); len(turns) != 2 {
		t.Errorf("expected 2 recorded turn events, got %d", len(turns))
	}
}

func TestHandleMessage_ValidationErrorsSurface(t *testing.T) {
	svc := newTestChatService(analytics.NewMemorySink())

	_, err := svc.HandleMessage(context.Background(), models.ChatMessageRequest{
		SessionID: "",
		Message:   "hello",
	})
	var vErr *chatbot.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *chatbot.ValidationError, got %v", err)
	}
	if vErr.Field != "sessionId" {
		t.Errorf("field = %q, want sessionId", vErr.Field)
	}
	if svc.SessionCount() != 0 {
		t.Error("invalid input must not create a session")
	}
}

func TestHandleMessage_SessionStatePersistsAcrossTurns(t *testing.T) {
	svc := newTestChatService(analytics.NewMemorySink())
	ctx := context.Background()

	first, err := svc.HandleMessage(ctx, models.ChatMessageRequest{SessionID: "s-1", Message: "hello"})
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.HandleMessage(ctx, models.ChatMessageRequest{SessionID: "s-1", Message: "what is your pricing?"})
	if err != nil {
		t.Fatal(err)
	}

	if second.Context.LeadScore <= first.Context.LeadScore {
		t.Errorf("lead score should accumulate across turns: %d -> %d",
			first.Context.LeadScore, second.Context.LeadScore)
	}
	if svc.SessionCount() != 1 {
		t.Errorf("same session ID must reuse the registry entry, got %d entries", svc.SessionCount())
	}
}

func TestHandleMessage_StatelessClientOverridesState(t *testing.T) {
	svc := newTestChatService(analytics.NewMemorySink())
	ctx := context.Background()

	if _, err := svc.HandleMessage(ctx, models.ChatMessageRequest{SessionID: "s-1", Message: "hello"}); err != nil {
		t.Fatal(err)
	}

	// A stateless widget resends its own view of the conversation.
	score := 50
	resp, err := svc.HandleMessage(ctx, models.ChatMessageRequest{
		SessionID: "s-1",
		Message:   "what does it cost?",
		ConversationHistory: []chatbot.Message{
			{ID: "m1", Role: chatbot.RoleUser, Content: "tell me about the platform",
				Metadata: &chatbot.MessageMetadata{Intent: chatbot.IntentProductInquiry, Confidence: 0.75}},
			{ID: "m2", Role: chatbot.RoleAssistant, Content: "..."},
		},
		PreviousLeadScore: &score,
	})
	if err != nil {
		t.Fatal(err)
	}
	// The supplied score (50) plus the pricing delta, not the registry's
	// greeting-only score.
	if resp.Context.LeadScore <= 50 {
		t.Errorf("expected supplied score to be the base, got %d", resp.Context.LeadScore)
	}
}

func TestHandleMessage_SubmittedHistoryNotMutated(t *testing.T) {
	svc := newTestChatService(analytics.NewMemorySink())
	ctx := context.Background()

	history := []chatbot.Message{
		{ID: "m1", Role: chatbot.RoleUser, Content: "tell me about the platform",
			Metadata: &chatbot.MessageMetadata{
				Intent:     chatbot.IntentProductInquiry,
				Confidence: 0.75,
				Entities:   map[string]string{chatbot.EntitySegment: "downstream"},
			}},
		{ID: "m2", Role: chatbot.RoleAssistant, Content: "PetroCore covers the full downstream chain."},
	}
	snapshot := cloneHistory(history)

	if _, err := svc.HandleMessage(ctx, models.ChatMessageRequest{
		SessionID:           "s-1",
		Message:             "what is your pricing?",
		ConversationHistory: history,
	}); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(history, snapshot) {
		t.Errorf("caller's history mutated after first turn:\n got %+v\nwant %+v", history, snapshot)
	}

	// A second turn appends to the stored session; the caller's slice and
	// its metadata must still be untouched.
	if _, err := svc.HandleMessage(ctx, models.ChatMessageRequest{
		SessionID: "s-1",
		Message:   "can we book a demo?",
	}); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(history, snapshot) {
		t.Errorf("caller's history mutated after second turn:\n got %+v\nwant %+v", history, snapshot)
	}
	if history[0].Metadata == snapshot[0].Metadata {
		t.Fatal("snapshot must not share metadata pointers with the input")
	}
}

func TestSweep_EvictsIdleSessions(t *testing.T) {
	sink := analytics.NewMemorySink()
	pipeline := chatbot.NewPipeline(chatbot.NewKnowledgeStore(), rand.New(rand.NewSource(1)))
	svc := NewChatService(pipeline, sink, integrations.NewLogNotifier(), nil, time.Minute)

	if _, err := svc.HandleMessage(context.Background(), models.ChatMessageRequest{SessionID: "s-1", Message: "hello"}); err != nil {
		t.Fatal(err)
	}

	// Not yet idle.
	svc.sweep(time.Now().UTC(), 0)
	if svc.SessionCount() != 1 {
		t.Fatalf("active session evicted early")
	}

	// Pretend two minutes pass.
	svc.sweep(time.Now().UTC().Add(2*time.Minute), 0)
	if svc.SessionCount() != 0 {
		t.Errorf("idle session not evicted")
	}

	// Eviction closes the analytics session.
	report, err := sink.Report(time.Now().UTC().Add(-time.Hour), time.Now().UTC().Add(time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if report.TotalSessions != 1 {
		t.Fatalf("expected the session still reported, got %d", report.TotalSessions)
	}
}

func TestHandleMessage_EscalationReported(t *testing.T) {
	svc := newTestChatService(analytics.NewMemorySink())
	score := 70
	resp, err := svc.HandleMessage(context.Background(), models.ChatMessageRequest{
		SessionID:         "s-1",
		Message:           "I want to speak to someone about pricing",
		PreviousLeadScore: &score,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !resp.ShouldEscalate {
		t.Fatal("expected escalation")
	}
	if resp.EscalationMessage == "" || len(resp.EscalationTriggers) == 0 {
		t.Errorf("escalation details missing: %+v", resp)
	}
	if resp.EscalationTriggers[0].RuleID != "high_lead_score" {
		t.Errorf("expected high_lead_score to lead, got %s", resp.EscalationTriggers[0].RuleID)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}
	long := strings.Repeat("x", 400)
	got := truncate(long, 300)
	if len(got) != 303 || !strings.HasSuffix(got, "...") {
		t.Errorf("truncate long: len=%d suffix=%q", len(got), got[len(got)-3:])
	}

	// A cut through the middle of a rune backs off to the previous boundary.
	accented := strings.Repeat("é", 200) // 400 bytes
	got = truncate(accented, 301)
	if !utf8.ValidString(got) {
		t.Errorf("truncate produced invalid UTF-8: %q", got)
	}
	if !strings.HasSuffix(got, "...") || len(got) > 304 {
		t.Errorf("truncate multibyte: len=%d", len(got))
	}
}
