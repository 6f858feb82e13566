package chatbot

import "testing"

func TestLeadScoreIncrement_Table(t *testing.T) {
	a := NewLeadScoreAccumulator()

	tests := []struct {
		name       string
		intent     Intent
		entities   map[string]string
		confidence float64
		want       int
	}{
		{"demo at full confidence", IntentDemoRequest, nil, 1.0, 25},
		{"demo at 0.85", IntentDemoRequest, nil, 0.85, 21}, // 21.25 rounds down
		{"pricing at 0.9", IntentPricingInquiry, nil, 0.9, 18},
		{"greeting", IntentGreeting, nil, 0.95, 2},
		{"general inquiry", IntentGeneralInquiry, nil, 0.4, 0}, // 0.4 rounds to 0
		{"large company bonus", IntentProductInquiry, map[string]string{EntityCompanySize: "large"}, 1.0, 15},
		{"medium company no bonus", IntentProductInquiry, map[string]string{EntityCompanySize: "medium"}, 1.0, 10},
		{"high urgency bonus", IntentSupportRequest, map[string]string{EntityUrgency: "high"}, 1.0, 8},
		{"segment bonus", IntentPricingInquiry, map[string]string{EntitySegment: "upstream"}, 1.0, 22},
		{"all bonuses stack", IntentDemoRequest, map[string]string{
			EntityCompanySize: "large",
			EntityUrgency:     "high",
			EntitySegment:     "downstream",
		}, 1.0, 35},
		{"unknown intent", Intent("mystery"), nil, 1.0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.Increment(tt.intent, tt.entities, tt.confidence)
			if got != tt.want {
				t.Errorf("Increment(%s, %v, %.2f) = %d, want %d", tt.intent, tt.entities, tt.confidence, got, tt.want)
			}
		})
	}
}

func TestLeadScoreIncrement_NeverNegative(t *testing.T) {
	a := NewLeadScoreAccumulator()
	for _, intent := range AllIntents {
		if got := a.Increment(intent, nil, 0); got < 0 {
			t.Errorf("%s at zero confidence produced negative delta %d", intent, got)
		}
	}
}

func TestClampLeadScore(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{-10, 0},
		{0, 0},
		{55, 55},
		{100, 100},
		{130, 100},
	}
	for _, tt := range tests {
		if got := ClampLeadScore(tt.in); got != tt.want {
			t.Errorf("ClampLeadScore(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
