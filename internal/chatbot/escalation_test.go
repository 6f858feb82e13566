package chatbot

import "testing"

func TestEvaluate_NoMatchOnQuietTurn(t *testing.T) {
	e := NewEscalationEngine()

	matched := e.Evaluate(TurnContext{
		LeadScore:    10,
		MessageCount: 1,
		LastMessage:  "tell me about the platform",
		Language:     LangEnglish,
	})
	if len(matched) != 0 {
		t.Fatalf("expected no matches, got %d", len(matched))
	}
}

func TestEvaluate_HighLeadScoreOutranksPricing(t *testing.T) {
	e := NewEscalationEngine()

	// Both the lead-score rule and the pricing-keyword rule hold; declaration
	// order decides which one leads.
	matched := e.Evaluate(TurnContext{
		LeadScore:    70,
		MessageCount: 4,
		LastMessage:  "can you send me your pricing",
		Language:     LangEnglish,
	})
	if len(matched) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matched))
	}
	if matched[0].ID != "high_lead_score" {
		t.Errorf("first match should be high_lead_score, got %s", matched[0].ID)
	}
	if matched[1].ID != "pricing_discussion" {
		t.Errorf("second match should be pricing_discussion, got %s", matched[1].ID)
	}
	if matched[0].Action.Channel != ChannelSales || matched[0].Action.Priority != PriorityHigh {
		t.Errorf("high_lead_score should route sales/high, got %s/%s",
			matched[0].Action.Channel, matched[0].Action.Priority)
	}
}

func TestEvaluate_PricingNeedsThreeMessages(t *testing.T) {
	e := NewEscalationEngine()

	early := e.Evaluate(TurnContext{LeadScore: 20, MessageCount: 2, LastMessage: "what does it cost"})
	if len(early) != 0 {
		t.Errorf("pricing rule should not fire before 3 messages, got %d matches", len(early))
	}

	late := e.Evaluate(TurnContext{LeadScore: 20, MessageCount: 3, LastMessage: "what does it cost"})
	if len(late) != 1 || late[0].ID != "pricing_discussion" {
		t.Fatalf("expected pricing_discussion at 3 messages, got %v", ruleIDs(late))
	}
}

func TestEvaluate_HumanRequest(t *testing.T) {
	e := NewEscalationEngine()

	matched := e.Evaluate(TurnContext{MessageCount: 1, LastMessage: "I want to speak to someone please"})
	if len(matched) != 1 || matched[0].ID != "human_request" {
		t.Fatalf("expected human_request, got %v", ruleIDs(matched))
	}
	if matched[0].Action.Channel != ChannelSupport || matched[0].Action.Priority != PriorityHigh {
		t.Errorf("human_request should route support/high, got %s/%s",
			matched[0].Action.Channel, matched[0].Action.Priority)
	}
}

func TestEvaluate_NegativeSentimentBoundary(t *testing.T) {
	e := NewEscalationEngine()

	at := e.Evaluate(TurnContext{MessageCount: 2, LastMessage: "hmm", Sentiment: -0.5})
	if len(at) != 1 || at[0].ID != "negative_sentiment" {
		t.Fatalf("sentiment -0.5 should fire negative_sentiment, got %v", ruleIDs(at))
	}

	above := e.Evaluate(TurnContext{MessageCount: 2, LastMessage: "hmm", Sentiment: -0.4})
	if len(above) != 0 {
		t.Errorf("sentiment -0.4 should not fire, got %v", ruleIDs(above))
	}
}

func TestEvaluate_RepeatedFailures(t *testing.T) {
	e := NewEscalationEngine()

	two := e.Evaluate(TurnContext{MessageCount: 2, LastMessage: "hmm", ConsecutiveFailures: 2})
	if len(two) != 0 {
		t.Errorf("2 failures should not fire, got %v", ruleIDs(two))
	}
	three := e.Evaluate(TurnContext{MessageCount: 3, LastMessage: "hmm", ConsecutiveFailures: 3})
	if len(three) != 1 || three[0].ID != "repeated_failures" {
		t.Fatalf("3 failures should fire repeated_failures, got %v", ruleIDs(three))
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	e := NewEscalationEngine()

	turn := TurnContext{
		LeadScore:    65,
		MessageCount: 5,
		LastMessage:  "pricing please, or let me talk to someone",
		Sentiment:    -0.6,
		Language:     LangEnglish,
	}
	first := e.Evaluate(turn)
	second := e.Evaluate(turn)
	if len(first) != len(second) {
		t.Fatalf("evaluate not idempotent: %d vs %d matches", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("match %d differs: %s vs %s", i, first[i].ID, second[i].ID)
		}
	}
}

func TestEvaluate_InactiveRulesSkipped(t *testing.T) {
	rules := []EscalationRule{
		{
			ID:         "disabled",
			Trigger:    TriggerLeadScore,
			Conditions: RuleConditions{MinLeadScore: 0},
			Action:     RuleAction{Channel: ChannelSales, Priority: PriorityLow},
			Active:     false,
		},
	}
	e := NewEscalationEngineWithRules(rules)

	matched := e.Evaluate(TurnContext{LeadScore: 100, MessageCount: 10, LastMessage: "pricing"})
	if len(matched) != 0 {
		t.Errorf("inactive rule must never match, got %v", ruleIDs(matched))
	}
}

func TestRuleMessage_LocalizedWithEnglishFallback(t *testing.T) {
	e := NewEscalationEngine()
	matched := e.Evaluate(TurnContext{LeadScore: 80, MessageCount: 1, LastMessage: "ok"})
	if len(matched) == 0 {
		t.Fatal("expected high_lead_score to match")
	}

	fr := matched[0].Message(LangFrench)
	en := matched[0].Message(LangEnglish)
	if fr == "" || en == "" {
		t.Fatal("localized messages must not be empty")
	}
	if fr == en {
		t.Error("French message should differ from English")
	}
	// Unknown language falls back to English.
	if matched[0].Message(Language("pt")) != en {
		t.Error("unknown language should fall back to English")
	}
}

func ruleIDs(rules []EscalationRule) []string {
	ids := make([]string, 0, len(rules))
	for _, r := range rules {
		ids = append(ids, r.ID)
	}
	return ids
}
