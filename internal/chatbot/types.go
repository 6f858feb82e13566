package chatbot

import (
	"time"
)

// Language identifies one of the supported conversation languages.
type Language string

const (
	LangEnglish Language = "en"
	LangFrench  Language = "fr"
	LangArabic  Language = "ar"
	LangSwahili Language = "sw"
	LangHausa   Language = "ha"
)

// DefaultLanguage is used when detection finds nothing better.
const DefaultLanguage = LangEnglish

// IsValid reports whether l is one of the supported languages.
func (l Language) IsValid() bool {
	switch l {
	case LangEnglish, LangFrench, LangArabic, LangSwahili, LangHausa:
		return true
	}
	return false
}

// Intent is the coarse classification of a user message's purpose.
type Intent string

const (
	IntentGreeting       Intent = "greeting"
	IntentProductInquiry Intent = "product_inquiry"
	IntentPricingInquiry Intent = "pricing_inquiry"
	IntentDemoRequest    Intent = "demo_request"
	IntentSupportRequest Intent = "support_request"
	IntentContactHuman   Intent = "contact_human"
	IntentCompanyInfo    Intent = "company_info"
	IntentGoodbye        Intent = "goodbye"
	IntentGeneralInquiry Intent = "general_inquiry"
)

// AllIntents lists every intent in declaration order. Declaration order is
// significant: it is the tie-breaker in classification and determines which
// keyword tables are consulted first.
var AllIntents = []Intent{
	IntentGreeting,
	IntentProductInquiry,
	IntentPricingInquiry,
	IntentDemoRequest,
	IntentSupportRequest,
	IntentContactHuman,
	IntentCompanyInfo,
	IntentGoodbye,
	IntentGeneralInquiry,
}

// IsValid reports whether i is one of the recognized intents.
func (i Intent) IsValid() bool {
	switch i {
	case IntentGreeting, IntentProductInquiry, IntentPricingInquiry,
		IntentDemoRequest, IntentSupportRequest, IntentContactHuman,
		IntentCompanyInfo, IntentGoodbye, IntentGeneralInquiry:
		return true
	}
	return false
}

// Role distinguishes who authored a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Stage tracks where a conversation sits in the qualification funnel.
// Transitions are advisory: greeting -> information -> qualification ->
// escalation | closing.
type Stage string

const (
	StageGreeting      Stage = "greeting"
	StageInformation   Stage = "information"
	StageQualification Stage = "qualification"
	StageEscalation    Stage = "escalation"
	StageClosing       Stage = "closing"
)

// Entity family keys produced by the EntityExtractor.
const (
	EntityCompanySize = "company_size"
	EntitySegment     = "segment"
	EntityRegion      = "region"
	EntityUrgency     = "urgency"
)

// MessageMetadata carries per-turn classification results attached to a stored
// message. All fields are optional.
type MessageMetadata struct {
	Intent     Intent            `json:"intent,omitempty"`
	Confidence float64           `json:"confidence,omitempty"`
	Entities   map[string]string `json:"entities,omitempty"`
}

// Message is a single entry in a session's conversation history. Messages are
// immutable once appended; insertion order is significant (recent-intent
// context and recency checks walk the tail of the history).
type Message struct {
	ID        string           `json:"id"`
	Role      Role             `json:"role"`
	Content   string           `json:"content"`
	Timestamp time.Time        `json:"timestamp"`
	Language  Language         `json:"language,omitempty"`
	Metadata  *MessageMetadata `json:"metadata,omitempty"`
}

// SessionContext is the per-session mutable state threaded through the
// pipeline. LeadScore stays within [0,100] at all times.
type SessionContext struct {
	SessionID           string
	Language            Language
	LeadScore           int
	Stage               Stage
	ConversationHistory []Message
	ConsecutiveFailures int
}

// RecentIntents returns the intents of the last n user messages that carry
// classification metadata, most recent last.
func (s *SessionContext) RecentIntents(n int) []Intent {
	intents := make([]Intent, 0, n)
	for i := len(s.ConversationHistory) - 1; i >= 0 && len(intents) < n; i-- {
		msg := s.ConversationHistory[i]
		if msg.Role != RoleUser || msg.Metadata == nil || msg.Metadata.Intent == "" {
			continue
		}
		intents = append(intents, msg.Metadata.Intent)
	}
	// Walked backwards; restore chronological order.
	for i, j := 0, len(intents)-1; i < j; i, j = i+1, j-1 {
		intents[i], intents[j] = intents[j], intents[i]
	}
	return intents
}

// UserMessageCount returns the number of user-authored messages in the history.
func (s *SessionContext) UserMessageCount() int {
	count := 0
	for _, msg := range s.ConversationHistory {
		if msg.Role == RoleUser {
			count++
		}
	}
	return count
}

// IntentMatch is the result of classifying a single message. It lives for one
// turn, except where copied into Message.Metadata.
type IntentMatch struct {
	Intent      Intent
	Confidence  float64
	Entities    map[string]string
	ContextNote string
}

// ClampLeadScore bounds a lead score to the [0,100] invariant.
func ClampLeadScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
