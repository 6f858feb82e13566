package chatbot

import (
	"strings"
	"testing"
)

func TestKnowledgeLookup(t *testing.T) {
	k := NewKnowledgeStore()

	text, ok := k.Lookup(IntentPricingInquiry, LangEnglish, 0.85)
	if !ok || !strings.Contains(text, "$299") {
		t.Errorf("expected pricing copy, got ok=%v text=%q", ok, text)
	}

	// Below the item's confidence floor there is no answer.
	if _, ok := k.Lookup(IntentPricingInquiry, LangEnglish, 0.5); ok {
		t.Error("lookup below the confidence floor should miss")
	}

	// Intents without a knowledge item never answer.
	if _, ok := k.Lookup(IntentGreeting, LangEnglish, 1.0); ok {
		t.Error("greeting has no knowledge item and should miss")
	}

	// Every supported language has a localized pricing answer.
	for _, lang := range []Language{LangEnglish, LangFrench, LangArabic, LangSwahili, LangHausa} {
		if text, ok := k.Lookup(IntentPricingInquiry, lang, 0.9); !ok || text == "" {
			t.Errorf("missing %s pricing copy", lang)
		}
	}
}

func TestKnowledgeSetOverride(t *testing.T) {
	k := NewKnowledgeStore()

	if !k.SetOverride("pricing", LangEnglish, "New pricing copy from the CMS.") {
		t.Fatal("override of a known topic should succeed")
	}
	text, ok := k.Lookup(IntentPricingInquiry, LangEnglish, 0.9)
	if !ok || text != "New pricing copy from the CMS." {
		t.Errorf("override not served, got %q", text)
	}

	// Other languages for the same topic are untouched.
	fr, ok := k.Lookup(IntentPricingInquiry, LangFrench, 0.9)
	if !ok || !strings.Contains(fr, "299") {
		t.Errorf("French copy should be unchanged, got %q", fr)
	}

	if k.SetOverride("no-such-topic", LangEnglish, "text") {
		t.Error("override of an unknown topic should fail")
	}
	if k.SetOverride("pricing", Language("de"), "text") {
		t.Error("override with an unsupported language should fail")
	}
	if k.SetOverride("pricing", LangEnglish, "") {
		t.Error("override with empty text should fail")
	}
}

func TestKnowledgeOverrideDoesNotLeakAcrossStores(t *testing.T) {
	a := NewKnowledgeStore()
	b := NewKnowledgeStore()

	a.SetOverride("demo", LangEnglish, "store A override")
	text, ok := b.Lookup(IntentDemoRequest, LangEnglish, 0.9)
	if !ok || text == "store A override" {
		t.Error("override in one store must not affect another")
	}
}

func TestKnowledgeTopics(t *testing.T) {
	k := NewKnowledgeStore()
	topics := k.Topics()
	want := []string{"product-overview", "pricing", "demo", "support", "company"}
	if len(topics) != len(want) {
		t.Fatalf("expected %d topics, got %d", len(want), len(topics))
	}
	for i, topic := range want {
		if topics[i] != topic {
			t.Errorf("topic[%d] = %q, want %q", i, topics[i], topic)
		}
	}
}
