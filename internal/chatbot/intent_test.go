package chatbot

import (
	"testing"
)

func TestClassify_FirstTurnGreeting(t *testing.T) {
	c := NewIntentClassifier()

	match := c.Classify("hello", LangEnglish, nil)
	if match.Intent != IntentGreeting {
		t.Fatalf("expected greeting, got %s", match.Intent)
	}
	if match.Confidence < 0.9 {
		t.Errorf("first-turn greeting confidence should be >= 0.9, got %.2f", match.Confidence)
	}
}

func TestClassify_GreetingAfterFirstTurn(t *testing.T) {
	c := NewIntentClassifier()

	match := c.Classify("hello again", LangEnglish, []Intent{IntentProductInquiry})
	if match.Intent != IntentGreeting {
		t.Fatalf("expected greeting, got %s", match.Intent)
	}
	// Base 0.85 with the stale-greeting penalty applied.
	if match.Confidence >= 0.85 {
		t.Errorf("repeat greeting should score below base, got %.2f", match.Confidence)
	}
}

func TestClassify_PricingInquiry(t *testing.T) {
	c := NewIntentClassifier()

	match := c.Classify("what is your pricing?", LangEnglish, nil)
	if match.Intent != IntentPricingInquiry {
		t.Fatalf("expected pricing_inquiry, got %s", match.Intent)
	}
	if match.Confidence < 0.85 {
		t.Errorf("pricing confidence should be >= 0.85, got %.2f", match.Confidence)
	}
}

func TestClassify_UnmatchedFallsBack(t *testing.T) {
	c := NewIntentClassifier()

	for _, message := range []string{"qwghlm zxcvbn", "the weather is nice today", "   "} {
		match := c.Classify(message, LangEnglish, nil)
		if match.Intent != IntentGeneralInquiry {
			t.Errorf("%q: expected general_inquiry, got %s", message, match.Intent)
		}
		if match.Confidence > 0.5 {
			t.Errorf("%q: fallback confidence should be <= 0.5, got %.2f", message, match.Confidence)
		}
	}
}

func TestClassify_FrenchGreetingBeatsPricing(t *testing.T) {
	c := NewIntentClassifier()

	// "bonjour" earns the first-turn greeting boost; "devis" scores pricing
	// at its bare base. Greeting must win.
	match := c.Classify("Bonjour, je veux un devis", LangFrench, nil)
	if match.Intent != IntentGreeting {
		t.Fatalf("expected greeting, got %s (confidence %.2f)", match.Intent, match.Confidence)
	}
	if match.Confidence < 0.9 {
		t.Errorf("expected boosted confidence >= 0.9, got %.2f", match.Confidence)
	}
}

func TestClassify_RelatedIntentBoost(t *testing.T) {
	c := NewIntentClassifier()

	without := c.Classify("how much does it cost", LangEnglish, []Intent{IntentGreeting})
	with := c.Classify("how much does it cost", LangEnglish, []Intent{IntentProductInquiry})

	if without.Intent != IntentPricingInquiry || with.Intent != IntentPricingInquiry {
		t.Fatalf("expected pricing_inquiry both times, got %s / %s", without.Intent, with.Intent)
	}
	if with.Confidence <= without.Confidence {
		t.Errorf("recent product_inquiry should boost pricing: %.2f vs %.2f", with.Confidence, without.Confidence)
	}
}

func TestClassify_MultipleKeywordsRaiseConfidence(t *testing.T) {
	c := NewIntentClassifier()

	single := c.Classify("tell me about the platform", LangEnglish, []Intent{IntentGreeting})
	double := c.Classify("tell me about the platform and its inventory module", LangEnglish, []Intent{IntentGreeting})

	if single.Intent != IntentProductInquiry || double.Intent != IntentProductInquiry {
		t.Fatalf("expected product_inquiry both times, got %s / %s", single.Intent, double.Intent)
	}
	if double.Confidence <= single.Confidence {
		t.Errorf("extra keyword hits should raise confidence: %.2f vs %.2f", double.Confidence, single.Confidence)
	}
}

func TestClassify_ConfidenceNeverExceedsOne(t *testing.T) {
	c := NewIntentClassifier()

	// Stack enough keyword hits to overflow the formula without the cap.
	msg := "product erp platform feature module inventory depot fleet"
	match := c.Classify(msg, LangEnglish, []Intent{IntentProductInquiry})
	if match.Confidence > 1.0 {
		t.Errorf("confidence must be capped at 1.0, got %.2f", match.Confidence)
	}
}

func TestClassify_DeterministicTieBreak(t *testing.T) {
	c := NewIntentClassifier()

	// Same input must classify identically across calls.
	first := c.Classify("I need help with pricing", LangEnglish, nil)
	for i := 0; i < 10; i++ {
		again := c.Classify("I need help with pricing", LangEnglish, nil)
		if again.Intent != first.Intent || again.Confidence != first.Confidence {
			t.Fatalf("classification not deterministic: %s/%.2f vs %s/%.2f",
				first.Intent, first.Confidence, again.Intent, again.Confidence)
		}
	}
}

func TestClassify_EnglishTableAlwaysEligible(t *testing.T) {
	c := NewIntentClassifier()

	// English keywords must still match when the detected language is French.
	match := c.Classify("je voudrais un demo", LangFrench, []Intent{IntentPricingInquiry})
	if match.Intent != IntentDemoRequest {
		t.Fatalf("expected demo_request via default table, got %s", match.Intent)
	}
}
