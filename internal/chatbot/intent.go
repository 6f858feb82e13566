package chatbot

import (
	"fmt"
	"strings"
)

// fallbackConfidence is the fixed confidence assigned when no keyword pattern
// matches any intent.
const fallbackConfidence = 0.40

const (
	firstTurnGreetingBoost = 0.10
	relatedIntentBoost     = 0.05
	staleGreetingPenalty   = -0.05
	extraKeywordStep       = 0.05
)

// intentProfile holds the scoring inputs for one candidate intent: its base
// confidence and the keyword patterns per language. English doubles as the
// default table and is always consulted; the detected language's table is
// consulted in addition when non-default.
type intentProfile struct {
	intent         Intent
	baseConfidence float64
	keywords       map[Language][]string
}

// intentProfiles is ordered by AllIntents declaration order; that order breaks
// confidence ties (first listed wins).
var intentProfiles = []intentProfile{
	{
		intent:         IntentGreeting,
		baseConfidence: 0.85,
		keywords: map[Language][]string{
			LangEnglish: {"hello", "hi ", "hey", "good morning", "good afternoon", "good evening"},
			LangFrench:  {"bonjour", "bonsoir", "salut"},
			LangArabic:  {"مرحبا", "السلام عليكم", "أهلا"},
			LangSwahili: {"habari", "jambo", "hujambo", "mambo"},
			LangHausa:   {"sannu", "barka", "ina kwana", "ina wuni"},
		},
	},
	{
		intent:         IntentProductInquiry,
		baseConfidence: 0.75,
		keywords: map[Language][]string{
			LangEnglish: {"product", "erp", "platform", "feature", "module", "inventory", "depot", "fleet", "what do you do", "what does petrocore"},
			LangFrench:  {"produit", "fonctionnalit", "logiciel", "plateforme", "stock"},
			LangArabic:  {"المنتج", "النظام", "المنصة", "الميزات"},
			LangSwahili: {"bidhaa", "mfumo", "huduma gani"},
			LangHausa:   {"kaya", "dandali", "me kuke yi"},
		},
	},
	{
		intent:         IntentPricingInquiry,
		baseConfidence: 0.85,
		keywords: map[Language][]string{
			LangEnglish: {"pricing", "price", "cost", "how much", "quote", "subscription", "license fee"},
			LangFrench:  {"prix", "tarif", "devis", "combien", "abonnement"},
			LangArabic:  {"السعر", "الأسعار", "التكلفة", "كم يكلف"},
			LangSwahili: {"bei", "gharama", "ni kiasi gani"},
			LangHausa:   {"farashi", "nawa ne", "kudin"},
		},
	},
	{
		intent:         IntentDemoRequest,
		baseConfidence: 0.85,
		keywords: map[Language][]string{
			LangEnglish: {"demo", "trial", "demonstration", "try it", "test drive", "see it in action"},
			LangFrench:  {"démo", "demonstration", "démonstration", "essai", "essayer"},
			LangArabic:  {"عرض توضيحي", "تجربة", "تجريب"},
			LangSwahili: {"onyesho", "jaribio", "kujaribu"},
			LangHausa:   {"gwaji", "gwada", "nuna min"},
		},
	},
	{
		intent:         IntentSupportRequest,
		baseConfidence: 0.75,
		keywords: map[Language][]string{
			LangEnglish: {"support", "help", "issue", "problem", "not working", "broken", "error"},
			LangFrench:  {"aide", "assistance", "problème", "panne", "erreur"},
			LangArabic:  {"مساعدة", "دعم", "مشكلة", "خطأ"},
			LangSwahili: {"msaada", "tatizo", "shida", "hitilafu"},
			LangHausa:   {"taimako", "matsala", "kuskure"},
		},
	},
	{
		intent:         IntentContactHuman,
		baseConfidence: 0.80,
		keywords: map[Language][]string{
			LangEnglish: {"human", "agent", "real person", "speak to someone", "talk to someone", "sales rep", "representative", "call me"},
			LangFrench:  {"humain", "conseiller", "parler à quelqu", "commercial"},
			LangArabic:  {"شخص حقيقي", "موظف", "التحدث مع"},
			LangSwahili: {"mtu halisi", "ongea na mtu", "wakala"},
			LangHausa:   {"mutum na gaske", "yi magana da mutum"},
		},
	},
	{
		intent:         IntentCompanyInfo,
		baseConfidence: 0.70,
		keywords: map[Language][]string{
			LangEnglish: {"about you", "about petrocore", "your company", "who are you", "where are you based", "headquarters", "founded"},
			LangFrench:  {"votre entreprise", "qui êtes-vous", "à propos"},
			LangArabic:  {"من أنتم", "عن الشركة", "أين مقركم"},
			LangSwahili: {"kampuni yenu", "nyinyi ni nani", "kuhusu"},
			LangHausa:   {"kamfaninku", "ku waye", "game da ku"},
		},
	},
	{
		intent:         IntentGoodbye,
		baseConfidence: 0.80,
		keywords: map[Language][]string{
			LangEnglish: {"bye", "goodbye", "thanks, that's all", "see you", "that is all"},
			LangFrench:  {"au revoir", "à bientôt", "c'est tout"},
			LangArabic:  {"وداعا", "مع السلامة", "شكرا لك"},
			LangSwahili: {"kwaheri", "asante sana", "tutaonana"},
			LangHausa:   {"sai anjima", "nagode", "mun gode"},
		},
	},
}

// relatedIntents drives the context boost: an intent earns the boost when one
// of its related intents (or itself) appeared in the last few turns.
var relatedIntents = map[Intent][]Intent{
	IntentProductInquiry: {IntentProductInquiry, IntentCompanyInfo},
	IntentPricingInquiry: {IntentPricingInquiry, IntentProductInquiry, IntentDemoRequest},
	IntentDemoRequest:    {IntentDemoRequest, IntentPricingInquiry, IntentProductInquiry},
	IntentSupportRequest: {IntentSupportRequest},
	IntentContactHuman:   {IntentContactHuman, IntentSupportRequest},
	IntentCompanyInfo:    {IntentCompanyInfo, IntentProductInquiry},
}

// IntentClassifier scores a message against the fixed intent set using keyword
// containment counts. Matching is deliberately substring-based and
// case-insensitive — no tokenization or stemming — so partial-word collisions
// ("support" inside "supportive") are a known, accepted limitation.
type IntentClassifier struct {
	profiles []intentProfile
}

// NewIntentClassifier creates a classifier over the built-in intent profiles.
func NewIntentClassifier() *IntentClassifier {
	return &IntentClassifier{profiles: intentProfiles}
}

// Classify scores message against every candidate intent and returns the best
// match. recentIntents are the intents of the last three user turns, oldest
// first; an empty slice marks the very first turn. If nothing matches, the
// result is general_inquiry at a fixed low confidence.
func (c *IntentClassifier) Classify(message string, lang Language, recentIntents []Intent) IntentMatch {
	lower := strings.ToLower(strings.TrimSpace(message))
	if lower == "" {
		return IntentMatch{Intent: IntentGeneralInquiry, Confidence: fallbackConfidence}
	}

	firstTurn := len(recentIntents) == 0
	best := IntentMatch{Intent: IntentGeneralInquiry, Confidence: 0}

	for _, p := range c.profiles {
		boost, note := c.contextBoost(p.intent, recentIntents, firstTurn)

		// The default-language table is always eligible; the detected
		// language's table is scored independently and the better of the
		// two kept.
		conf := scoreTable(lower, p.keywords[DefaultLanguage], p.baseConfidence, boost)
		if lang != DefaultLanguage {
			if langConf := scoreTable(lower, p.keywords[lang], p.baseConfidence, boost); langConf > conf {
				conf = langConf
			}
		}
		if conf > best.Confidence {
			best = IntentMatch{Intent: p.intent, Confidence: conf, ContextNote: note}
		}
	}

	if best.Confidence <= 0 {
		return IntentMatch{Intent: IntentGeneralInquiry, Confidence: fallbackConfidence}
	}
	return best
}

// scoreTable applies the confidence formula to one keyword table:
// min(base + (hits-1)*0.05 + boost, 1.0), or 0 when nothing hits.
func scoreTable(lower string, keywords []string, base, boost float64) float64 {
	hits := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			hits++
		}
	}
	if hits == 0 {
		return 0
	}
	conf := base + float64(hits-1)*extraKeywordStep + boost
	if conf > 1.0 {
		conf = 1.0
	}
	if conf < 0 {
		conf = 0
	}
	return conf
}

func (c *IntentClassifier) contextBoost(intent Intent, recentIntents []Intent, firstTurn bool) (float64, string) {
	if intent == IntentGreeting {
		if firstTurn {
			return firstTurnGreetingBoost, "first-turn greeting boost"
		}
		return staleGreetingPenalty, "greeting after first turn"
	}
	related, ok := relatedIntents[intent]
	if !ok {
		return 0, ""
	}
	for _, recent := range recentIntents {
		for _, r := range related {
			if recent == r {
				return relatedIntentBoost, fmt.Sprintf("context boost from recent %s", recent)
			}
		}
	}
	return 0, ""
}
