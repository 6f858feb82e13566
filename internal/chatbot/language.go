package chatbot

import (
	"strings"
	"unicode"
)

// LanguageService detects the language of a message and supplies localized UI
// strings. Detection is heuristic: character-set checks for Arabic, keyword
// hints for the rest, falling back to English.
type LanguageService struct{}

// NewLanguageService creates a LanguageService.
func NewLanguageService() *LanguageService {
	return &LanguageService{}
}

var frenchHints = []string{
	"bonjour", "bonsoir", "merci", "devis", "prix", "tarif", "je veux",
	"je voudrais", "pouvez-vous", "s'il vous", "entreprise", "demande",
}

var swahiliHints = []string{
	"habari", "jambo", "asante", "bei", "tafadhali", "nataka", "kampuni",
	"karibu", "nzuri", "mbaya",
}

var hausaHints = []string{
	"sannu", "nagode", "farashi", "ina son", "kamfani", "don allah",
	"barka", "yaya",
}

// Detect returns the language of text. An explicit, valid hint wins outright.
func (s *LanguageService) Detect(text string, hint Language) Language {
	if hint.IsValid() {
		return hint
	}
	lower := strings.ToLower(text)

	for _, r := range text {
		if unicode.Is(unicode.Arabic, r) {
			return LangArabic
		}
	}
	if containsAny(lower, frenchHints) {
		return LangFrench
	}
	if containsAny(lower, swahiliHints) {
		return LangSwahili
	}
	if containsAny(lower, hausaHints) {
		return LangHausa
	}
	return DefaultLanguage
}

func containsAny(lower string, hints []string) bool {
	for _, h := range hints {
		if strings.Contains(lower, h) {
			return true
		}
	}
	return false
}

// localized returns the entry of table for lang, falling back to English.
// Tables are expected to always carry an English entry.
func localized(table map[Language]string, lang Language) string {
	if v, ok := table[lang]; ok {
		return v
	}
	return table[LangEnglish]
}

// localizedList is the slice-valued counterpart of localized.
func localizedList(table map[Language][]string, lang Language) []string {
	if v, ok := table[lang]; ok {
		return v
	}
	return table[LangEnglish]
}

// ClarificationPrompt is the generic "I didn't get that" reply.
func (s *LanguageService) ClarificationPrompt(lang Language) string {
	return localized(clarificationPrompts, lang)
}

// ServiceUnavailable is the reply shown when the pipeline itself fails.
func (s *LanguageService) ServiceUnavailable(lang Language) string {
	return localized(serviceUnavailableMessages, lang)
}

// Greetings returns the localized greeting pool used for first-turn replies.
func (s *LanguageService) Greetings(lang Language) []string {
	return localizedList(greetingPool, lang)
}

var clarificationPrompts = map[Language]string{
	LangEnglish: "I'm not sure I understood that. Could you tell me a bit more about what you're looking for — our product, pricing, or a demo?",
	LangFrench:  "Je ne suis pas sûr d'avoir compris. Pouvez-vous préciser ce que vous recherchez — notre produit, les tarifs, ou une démonstration ?",
	LangArabic:  "لم أفهم طلبك تماماً. هل يمكنك التوضيح — هل تبحث عن المنتج أم الأسعار أم عرض توضيحي؟",
	LangSwahili: "Samahani, sikuelewa vizuri. Unaweza kufafanua — unatafuta bidhaa yetu, bei, au onyesho?",
	LangHausa:   "Ban gane sosai ba. Za ka iya bayyana — kana neman bayani kan kayanmu, farashi, ko gwaji?",
}

var serviceUnavailableMessages = map[Language]string{
	LangEnglish: "Sorry, our assistant is temporarily unavailable. Please try again in a moment.",
	LangFrench:  "Désolé, notre assistant est temporairement indisponible. Veuillez réessayer dans un instant.",
	LangArabic:  "عذراً، المساعد غير متاح مؤقتاً. يرجى المحاولة مرة أخرى بعد قليل.",
	LangSwahili: "Samahani, msaidizi wetu haupatikani kwa sasa. Tafadhali jaribu tena baadaye.",
	LangHausa:   "Yi hakuri, mataimakinmu ba ya aiki a yanzu. Don Allah sake gwadawa nan gaba kadan.",
}

var greetingPool = map[Language][]string{
	LangEnglish: {
		"Hello! Welcome to PetroCore. I can help you with product information, pricing, or booking a demo. What brings you here today?",
		"Hi there! I'm the PetroCore assistant. Ask me anything about our petroleum ERP platform.",
		"Welcome! How can I help — product details, pricing, or a live demo?",
	},
	LangFrench: {
		"Bonjour ! Bienvenue chez PetroCore. Je peux vous renseigner sur le produit, les tarifs ou organiser une démonstration. Que puis-je faire pour vous ?",
		"Bonjour ! Je suis l'assistant PetroCore. Posez-moi vos questions sur notre ERP pétrolier.",
	},
	LangArabic: {
		"مرحباً بك في PetroCore! يمكنني مساعدتك بمعلومات عن المنتج أو الأسعار أو حجز عرض توضيحي. كيف أساعدك اليوم؟",
		"أهلاً! أنا مساعد PetroCore. اسألني عن منصة تخطيط الموارد الخاصة بنا.",
	},
	LangSwahili: {
		"Habari! Karibu PetroCore. Ninaweza kukusaidia kuhusu bidhaa, bei, au kupanga onyesho. Nikusaidieje leo?",
		"Jambo! Mimi ni msaidizi wa PetroCore. Niulize chochote kuhusu mfumo wetu wa ERP.",
	},
	LangHausa: {
		"Sannu! Barka da zuwa PetroCore. Zan iya taimaka maka da bayani kan kayanmu, farashi, ko shirya gwaji. Yaya zan taimaka?",
		"Sannu! Ni mataimakin PetroCore ne. Tambaye ni komai game da dandalin ERP namu.",
	},
}
