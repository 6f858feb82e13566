package chatbot

import "testing"

func TestDetect_Table(t *testing.T) {
	s := NewLanguageService()

	tests := []struct {
		name string
		text string
		hint Language
		want Language
	}{
		{"english default", "tell me about your product", "", LangEnglish},
		{"french keywords", "bonjour, je voudrais un devis", "", LangFrench},
		{"arabic script", "مرحبا، ما هي الأسعار؟", "", LangArabic},
		{"swahili keywords", "habari, nataka kujua bei", "", LangSwahili},
		{"hausa keywords", "sannu, ina son sanin farashi", "", LangHausa},
		{"valid hint wins", "hello there", LangFrench, LangFrench},
		{"invalid hint ignored", "bonjour", Language("de"), LangFrench},
		{"empty text", "", "", LangEnglish},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Detect(tt.text, tt.hint); got != tt.want {
				t.Errorf("Detect(%q, %q) = %s, want %s", tt.text, tt.hint, got, tt.want)
			}
		})
	}
}

func TestLocalizedStrings_EnglishFallback(t *testing.T) {
	s := NewLanguageService()

	for _, lang := range []Language{LangEnglish, LangFrench, LangArabic, LangSwahili, LangHausa, Language("pt")} {
		if s.ClarificationPrompt(lang) == "" {
			t.Errorf("ClarificationPrompt(%s) is empty", lang)
		}
		if s.ServiceUnavailable(lang) == "" {
			t.Errorf("ServiceUnavailable(%s) is empty", lang)
		}
		if len(s.Greetings(lang)) == 0 {
			t.Errorf("Greetings(%s) is empty", lang)
		}
	}
}
