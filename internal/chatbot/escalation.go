package chatbot

import "strings"

// Trigger identifies the kind of predicate an escalation rule evaluates.
type Trigger string

const (
	TriggerLeadScore     Trigger = "lead_score"
	TriggerKeyword       Trigger = "keyword"
	TriggerSentiment     Trigger = "sentiment"
	TriggerRepeatFailure Trigger = "repeat_failure"
)

// Channel names the human destination an escalation hands off to.
type Channel string

const (
	ChannelSales   Channel = "sales"
	ChannelSupport Channel = "support"
)

// Priority grades the urgency of an escalation.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// RuleConditions holds the trigger-specific thresholds of a rule. Which fields
// are consulted depends on the rule's Trigger.
type RuleConditions struct {
	MinLeadScore    int      // lead_score
	MinMessageCount int      // lead_score, keyword (0 = no minimum)
	Keywords        []string // keyword
	MaxSentiment    float64  // sentiment: fires when sentiment <= this
	MinFailures     int      // repeat_failure
}

// RuleAction describes what a matched rule hands to the caller.
type RuleAction struct {
	Channel  Channel
	Priority Priority
	Messages map[Language]string
}

// EscalationRule is one entry of the static rule table. Declaration order is
// authoritative: when several rules match a turn, the first declared rule
// supplies the escalation message and channel.
type EscalationRule struct {
	ID         string
	Trigger    Trigger
	Conditions RuleConditions
	Action     RuleAction
	Active     bool
}

// Message returns the rule's localized handoff message.
func (r *EscalationRule) Message(lang Language) string {
	return localized(r.Action.Messages, lang)
}

// TurnContext is the snapshot of a single turn that rules are evaluated
// against.
type TurnContext struct {
	LeadScore           int
	MessageCount        int
	LastMessage         string
	Sentiment           float64
	ConsecutiveFailures int
	RecentIntents       []Intent
	Language            Language
}

// defaultEscalationRules is the production rule table, in authority order.
var defaultEscalationRules = []EscalationRule{
	{
		ID:         "high_lead_score",
		Trigger:    TriggerLeadScore,
		Conditions: RuleConditions{MinLeadScore: 60},
		Action: RuleAction{
			Channel:  ChannelSales,
			Priority: PriorityHigh,
			Messages: map[Language]string{
				LangEnglish: "You seem seriously interested — let me connect you with one of our sales specialists who can walk you through pricing and a tailored demo.",
				LangFrench:  "Vous semblez très intéressé — je vous mets en relation avec un spécialiste commercial pour les tarifs et une démonstration personnalisée.",
				LangArabic:  "يبدو اهتمامك جدياً — سأوصلك بأحد مختصي المبيعات لمناقشة الأسعار وعرض توضيحي مخصص.",
				LangSwahili: "Unaonekana una nia ya dhati — nitakuunganisha na mtaalamu wetu wa mauzo kwa bei na onyesho maalum.",
				LangHausa:   "Ka nuna sha'awa sosai — zan hada ka da kwararren sayarwa don farashi da gwaji na musamman.",
			},
		},
		Active: true,
	},
	{
		ID:      "pricing_discussion",
		Trigger: TriggerKeyword,
		Conditions: RuleConditions{
			Keywords:        []string{"pricing", "price", "quote", "cost", "devis", "tarif", "prix", "bei", "farashi"},
			MinMessageCount: 3,
		},
		Action: RuleAction{
			Channel:  ChannelSales,
			Priority: PriorityMedium,
			Messages: map[Language]string{
				LangEnglish: "Pricing depends a lot on your setup — a quick call with our sales team will get you an exact quote. Shall I arrange one?",
				LangFrench:  "Les tarifs dépendent de votre configuration — un appel rapide avec notre équipe commerciale vous donnera un devis exact. Je l'organise ?",
				LangArabic:  "تعتمد الأسعار على احتياجاتك — مكالمة قصيرة مع فريق المبيعات تمنحك عرضاً دقيقاً. هل أرتبها لك؟",
				LangSwahili: "Bei hutegemea mahitaji yako — simu fupi na timu yetu ya mauzo itakupa nukuu kamili. Niipange?",
				LangHausa:   "Farashi ya danganta da bukatunka — gajeriyar waya da tawagar sayarwa za ta ba ka kimar gaske. In shirya?",
			},
		},
		Active: true,
	},
	{
		ID:      "human_request",
		Trigger: TriggerKeyword,
		Conditions: RuleConditions{
			Keywords: []string{"human", "agent", "real person", "speak to someone", "talk to someone", "parler à quelqu", "conseiller", "mtu halisi", "mutum na gaske"},
		},
		Action: RuleAction{
			Channel:  ChannelSupport,
			Priority: PriorityHigh,
			Messages: map[Language]string{
				LangEnglish: "Of course — I'm handing this conversation to a member of our team. They'll be with you shortly.",
				LangFrench:  "Bien sûr — je transmets cette conversation à un membre de notre équipe. Il sera avec vous dans un instant.",
				LangArabic:  "بالتأكيد — سأحوّل المحادثة إلى أحد أعضاء فريقنا وسيكون معك قريباً.",
				LangSwahili: "Bila shaka — ninakabidhi mazungumzo haya kwa mmoja wa timu yetu. Atakuwa nawe hivi karibuni.",
				LangHausa:   "Tabbas — zan mika wannan tattaunawa ga daya daga cikin tawagarmu. Zai kasance tare da kai nan ba da dadewa ba.",
			},
		},
		Active: true,
	},
	{
		ID:         "negative_sentiment",
		Trigger:    TriggerSentiment,
		Conditions: RuleConditions{MaxSentiment: -0.5},
		Action: RuleAction{
			Channel:  ChannelSupport,
			Priority: PriorityMedium,
			Messages: map[Language]string{
				LangEnglish: "I'm sorry this hasn't gone smoothly. Let me bring in a member of our team to sort this out properly.",
				LangFrench:  "Je suis désolé que cela ne se passe pas bien. Je fais intervenir un membre de notre équipe pour régler cela.",
				LangArabic:  "آسف لأن الأمور لم تسر كما ينبغي. سأُشرك أحد أعضاء فريقنا لحل الأمر.",
				LangSwahili: "Samahani kwa usumbufu. Nitamleta mmoja wa timu yetu kutatua hili ipasavyo.",
				LangHausa:   "Yi hakuri da wannan. Zan kawo daya daga cikin tawagarmu don magance wannan yadda ya kamata.",
			},
		},
		Active: true,
	},
	{
		ID:         "repeated_failures",
		Trigger:    TriggerRepeatFailure,
		Conditions: RuleConditions{MinFailures: 3},
		Action: RuleAction{
			Channel:  ChannelSupport,
			Priority: PriorityMedium,
			Messages: map[Language]string{
				LangEnglish: "I seem to be having trouble understanding what you need. Let me connect you with a person who can help directly.",
				LangFrench:  "J'ai du mal à comprendre votre demande. Je vous mets en relation avec une personne qui pourra vous aider directement.",
				LangArabic:  "يبدو أنني أواجه صعوبة في فهم طلبك. سأوصلك بشخص يمكنه مساعدتك مباشرة.",
				LangSwahili: "Naona ninashindwa kuelewa unachohitaji. Nitakuunganisha na mtu atakayekusaidia moja kwa moja.",
				LangHausa:   "Da alama ina samun wahalar fahimtar bukatarka. Zan hada ka da wanda zai iya taimaka kai tsaye.",
			},
		},
		Active: true,
	},
}

// EscalationEngine evaluates the ordered rule table against a turn. It keeps
// no state between calls; cooldown or suppression is the session layer's
// business, not the engine's.
type EscalationEngine struct {
	rules []EscalationRule
}

// NewEscalationEngine creates an engine over the production rule table.
func NewEscalationEngine() *EscalationEngine {
	return NewEscalationEngineWithRules(defaultEscalationRules)
}

// NewEscalationEngineWithRules creates an engine over a custom rule table.
// The slice's order is the authority order.
func NewEscalationEngineWithRules(rules []EscalationRule) *EscalationEngine {
	return &EscalationEngine{rules: rules}
}

// Evaluate returns every active rule whose predicate holds for turn, in
// declaration order. An empty result means no escalation. The first element
// of a non-empty result is authoritative for channel and message selection;
// the rest are reported for analytics and audit.
func (e *EscalationEngine) Evaluate(turn TurnContext) []EscalationRule {
	var matched []EscalationRule
	for _, rule := range e.rules {
		if !rule.Active {
			continue
		}
		if e.matches(rule, turn) {
			matched = append(matched, rule)
		}
	}
	return matched
}

func (e *EscalationEngine) matches(rule EscalationRule, turn TurnContext) bool {
	switch rule.Trigger {
	case TriggerLeadScore:
		return turn.LeadScore >= rule.Conditions.MinLeadScore &&
			turn.MessageCount >= rule.Conditions.MinMessageCount
	case TriggerKeyword:
		if turn.MessageCount < rule.Conditions.MinMessageCount {
			return false
		}
		return containsAny(strings.ToLower(turn.LastMessage), rule.Conditions.Keywords)
	case TriggerSentiment:
		return turn.Sentiment <= rule.Conditions.MaxSentiment
	case TriggerRepeatFailure:
		return turn.ConsecutiveFailures >= rule.Conditions.MinFailures
	}
	return false
}
