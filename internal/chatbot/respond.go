package chatbot

import "math/rand"

// Lead score at or above which pricing conversations get the sales-handoff
// flavored reply.
const salesHandoffScore = 60

// ResponseGenerator selects the assistant reply for a turn. Resolution order:
// knowledge-base item, generic intent template, entity-conditioned paragraph,
// lead-score-conditioned override, and finally the first-turn greeting or a
// clarification prompt. It never returns an empty string.
//
// The random source is injected so tests can pin greeting selection.
type ResponseGenerator struct {
	knowledge *KnowledgeStore
	language  *LanguageService
	rng       *rand.Rand
}

// NewResponseGenerator creates a generator over the given knowledge store and
// language service. rng must not be nil.
func NewResponseGenerator(knowledge *KnowledgeStore, language *LanguageService, rng *rand.Rand) *ResponseGenerator {
	return &ResponseGenerator{knowledge: knowledge, language: language, rng: rng}
}

var genericTemplates = map[Intent]map[Language]string{
	IntentGreeting: {
		// First-turn greetings come from the randomized pool; this template
		// serves repeat greetings mid-conversation.
		LangEnglish: "Hello again! What else can I help you with — product details, pricing, or a demo?",
		LangFrench:  "Rebonjour ! Que puis-je faire d'autre pour vous — produit, tarifs, ou une démonstration ?",
		LangArabic:  "مرحباً مجدداً! كيف أساعدك أكثر — المنتج أم الأسعار أم عرض توضيحي؟",
		LangSwahili: "Habari tena! Nikusaidie nini kingine — bidhaa, bei, au onyesho?",
		LangHausa:   "Sannu kuma! Me kuma zan taimaka — bayanin kaya, farashi, ko gwaji?",
	},
	IntentContactHuman: {
		LangEnglish: "I'll get a member of our team to continue this conversation with you. In the meantime, is there anything I can clarify?",
		LangFrench:  "Un membre de notre équipe va poursuivre cette conversation avec vous. En attendant, puis-je préciser quelque chose ?",
		LangArabic:  "سيتابع أحد أعضاء فريقنا هذه المحادثة معك. في هذه الأثناء، هل أوضح لك شيئاً؟",
		LangSwahili: "Mmoja wa timu yetu ataendeleza mazungumzo haya nawe. Wakati huo, kuna ninachoweza kufafanua?",
		LangHausa:   "Daya daga cikin tawagarmu zai ci gaba da wannan tattaunawa da kai. A halin yanzu, akwai abin da zan bayyana?",
	},
	IntentGoodbye: {
		LangEnglish: "Thanks for stopping by! If you'd like to see PetroCore in action later, the demo form is always open. Have a great day!",
		LangFrench:  "Merci de votre visite ! Si vous souhaitez voir PetroCore en action plus tard, le formulaire de démonstration reste ouvert. Bonne journée !",
		LangArabic:  "شكراً لزيارتك! إذا أردت رؤية PetroCore لاحقاً فنموذج طلب العرض متاح دائماً. يوماً سعيداً!",
		LangSwahili: "Asante kwa kutembelea! Ukitaka kuona PetroCore baadaye, fomu ya onyesho iko wazi kila wakati. Siku njema!",
		LangHausa:   "Mun gode da ziyararka! Idan kana son ganin PetroCore daga baya, fom din gwaji a bude yake koyaushe. Ka huta lafiya!",
	},
}

// Segment-specific paragraphs for product conversations where classification
// confidence was too low for the knowledge base but an industry segment was
// extracted.
var segmentResponses = map[string]map[Language]string{
	"upstream": {
		LangEnglish: "For upstream operators, PetroCore tracks field production, drilling consumables, and joint-venture cost allocation, with audit-ready reporting. Want me to arrange a demo focused on upstream workflows?",
		LangFrench:  "Pour l'amont pétrolier, PetroCore suit la production des champs, les consommables de forage et la répartition des coûts de coentreprise, avec un reporting prêt pour l'audit. Voulez-vous une démonstration axée sur l'amont ?",
	},
	"midstream": {
		LangEnglish: "For midstream operations, PetroCore manages depot stock reconciliation, pipeline and fleet logistics, and terminal throughput billing in real time. Want me to arrange a demo focused on midstream workflows?",
		LangFrench:  "Pour le midstream, PetroCore gère la réconciliation des stocks de dépôt, la logistique pipeline et flotte, et la facturation des terminaux en temps réel. Voulez-vous une démonstration axée sur le midstream ?",
	},
	"downstream": {
		LangEnglish: "For downstream and retail, PetroCore covers station wet-stock management, pump reconciliation, shift accounting, and loyalty integrations. Want me to arrange a demo focused on retail workflows?",
		LangFrench:  "Pour l'aval et le retail, PetroCore couvre la gestion des stocks en station, la réconciliation des pompes, la comptabilité des équipes et les programmes de fidélité. Voulez-vous une démonstration axée sur le retail ?",
	},
}

var salesHandoffResponses = map[Language]string{
	LangEnglish: "Given everything you've told me, the fastest route is a conversation with our sales team — they can put together exact pricing for your operation today. I've flagged your interest; expect to hear from them shortly.",
	LangFrench:  "Vu tout ce que vous m'avez dit, le plus rapide est un échange avec notre équipe commerciale — elle peut établir un tarif exact pour votre activité dès aujourd'hui. J'ai signalé votre intérêt ; vous serez contacté rapidement.",
	LangArabic:  "بناءً على ما أخبرتني به، أسرع طريق هو التحدث مع فريق المبيعات — يمكنهم إعداد تسعير دقيق لعملك اليوم. لقد سجلت اهتمامك وسيتواصلون معك قريباً.",
	LangSwahili: "Kutokana na yote uliyoniambia, njia ya haraka ni mazungumzo na timu yetu ya mauzo — wanaweza kukuandalia bei kamili leo. Nimeweka alama ya nia yako; watakupigia hivi karibuni.",
	LangHausa:   "Bisa duk abin da ka fada min, hanya mafi sauri ita ce tattaunawa da tawagar sayarwa — za su iya shirya maka farashi na gaske yau. Na yi alamar sha'awarka; za su tuntube ka nan ba da dadewa ba.",
}

// Generate resolves the reply for a classified turn. firstTurn selects the
// randomized greeting fallback instead of the clarification prompt.
func (g *ResponseGenerator) Generate(match IntentMatch, lang Language, leadScore int, firstTurn bool) string {
	// First-turn greetings always come from the randomized pool, so the
	// conversation opens with variety rather than the repeat-greeting
	// template.
	if match.Intent == IntentGreeting && firstTurn {
		return g.randomGreeting(lang)
	}

	if text, ok := g.knowledge.Lookup(match.Intent, lang, match.Confidence); ok {
		return text
	}

	if templates, ok := genericTemplates[match.Intent]; ok {
		if text := localized(templates, lang); text != "" {
			return text
		}
	}

	if match.Intent == IntentProductInquiry {
		if segment := match.Entities[EntitySegment]; segment != "" {
			if responses, ok := segmentResponses[segment]; ok {
				if text := localized(responses, lang); text != "" {
					return text
				}
			}
		}
	}

	if match.Intent == IntentPricingInquiry && leadScore >= salesHandoffScore {
		return localized(salesHandoffResponses, lang)
	}

	if firstTurn {
		return g.randomGreeting(lang)
	}
	return g.language.ClarificationPrompt(lang)
}

func (g *ResponseGenerator) randomGreeting(lang Language) string {
	pool := g.language.Greetings(lang)
	if len(pool) == 0 {
		return g.language.ClarificationPrompt(lang)
	}
	return pool[g.rng.Intn(len(pool))]
}

var intentSuggestions = map[Intent]map[Language][]string{
	IntentGreeting: {
		LangEnglish: {"Tell me about the product", "What does it cost?", "Book a demo"},
		LangFrench:  {"Parlez-moi du produit", "Quels sont les tarifs ?", "Réserver une démo"},
		LangArabic:  {"أخبرني عن المنتج", "كم التكلفة؟", "احجز عرضاً توضيحياً"},
		LangSwahili: {"Nieleze kuhusu bidhaa", "Bei ni kiasi gani?", "Panga onyesho"},
		LangHausa:   {"Fada min game da kayan", "Nawa ne farashin?", "Shirya gwaji"},
	},
	IntentProductInquiry: {
		LangEnglish: {"Depot management", "Retail stations", "Fleet tracking", "See pricing"},
		LangFrench:  {"Gestion des dépôts", "Stations-service", "Suivi de flotte", "Voir les tarifs"},
	},
	IntentPricingInquiry: {
		LangEnglish: {"Book a demo", "Compare plans", "Talk to sales"},
		LangFrench:  {"Réserver une démo", "Comparer les offres", "Parler au commercial"},
	},
	IntentDemoRequest: {
		LangEnglish: {"Share my email", "What happens next?", "See pricing first"},
		LangFrench:  {"Laisser mon e-mail", "Et ensuite ?", "Voir d'abord les tarifs"},
	},
	IntentSupportRequest: {
		LangEnglish: {"Contact support", "Talk to a person", "Back to product info"},
	},
	IntentCompanyInfo: {
		LangEnglish: {"Tell me about the product", "Where are you based?", "Book a demo"},
	},
	IntentGeneralInquiry: {
		LangEnglish: {"Product overview", "Pricing", "Book a demo", "Talk to a person"},
		LangFrench:  {"Aperçu du produit", "Tarifs", "Réserver une démo", "Parler à quelqu'un"},
	},
}

// Suggestions returns up to four quick-reply prompts for the intent, localized
// when a translation exists.
func (g *ResponseGenerator) Suggestions(intent Intent, lang Language) []string {
	table, ok := intentSuggestions[intent]
	if !ok {
		table = intentSuggestions[IntentGeneralInquiry]
	}
	suggestions := localizedList(table, lang)
	if len(suggestions) > 4 {
		suggestions = suggestions[:4]
	}
	// Copy so callers never alias the static tables.
	out := make([]string, len(suggestions))
	copy(out, suggestions)
	return out
}
