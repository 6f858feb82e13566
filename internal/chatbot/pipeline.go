package chatbot

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxMessageLength is the upper bound on an inbound message, in characters.
const MaxMessageLength = 2000

// recentIntentWindow is how many prior user turns feed the context boost.
const recentIntentWindow = 3

// ConversionEvent marks the sales outcome a turn produced, if any.
type ConversionEvent string

const (
	ConversionDemoRequested   ConversionEvent = "demo_requested"
	ConversionContactProvided ConversionEvent = "contact_provided"
	ConversionEscalated       ConversionEvent = "escalated"
	ConversionNone            ConversionEvent = "none"
)

// ValidationError reports an invalid turn input with field-level detail. It is
// the client-facing 4xx-equivalent signal; nothing past validation returns it.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

// TurnInput is the boundary contract consumed by the pipeline, independent of
// transport.
type TurnInput struct {
	SessionID           string
	Message             string
	Language            Language // optional hint; empty means detect
	ConversationHistory []Message
	PreviousLeadScore   int
}

// Validate rejects malformed input before it enters the pipeline. Returns a
// *ValidationError, never a coerced input.
func (in *TurnInput) Validate() error {
	if strings.TrimSpace(in.SessionID) == "" {
		return &ValidationError{Field: "sessionId", Reason: "must not be empty"}
	}
	if in.Message == "" {
		return &ValidationError{Field: "message", Reason: "must not be empty"}
	}
	if utf8.RuneCountInString(in.Message) > MaxMessageLength {
		return &ValidationError{Field: "message", Reason: fmt.Sprintf("must be at most %d characters", MaxMessageLength)}
	}
	if in.Language != "" && !in.Language.IsValid() {
		return &ValidationError{Field: "language", Reason: fmt.Sprintf("unsupported language %q", in.Language)}
	}
	if in.PreviousLeadScore < 0 || in.PreviousLeadScore > 100 {
		return &ValidationError{Field: "previousLeadScore", Reason: "must be within [0,100]"}
	}
	for i, msg := range in.ConversationHistory {
		if msg.Role != RoleUser && msg.Role != RoleAssistant {
			return &ValidationError{Field: fmt.Sprintf("conversationHistory[%d].role", i), Reason: fmt.Sprintf("unknown role %q", msg.Role)}
		}
		if msg.Content == "" {
			return &ValidationError{Field: fmt.Sprintf("conversationHistory[%d].content", i), Reason: "must not be empty"}
		}
	}
	return nil
}

// EscalationTrigger is the per-rule slice of a turn's escalation outcome
// reported to callers.
type EscalationTrigger struct {
	Trigger  Trigger  `json:"trigger"`
	Priority Priority `json:"priority"`
	Channel  Channel  `json:"channel"`
	RuleID   string   `json:"rule_id"`
}

// TurnSummary is the per-turn context block of the pipeline output.
type TurnSummary struct {
	SessionID  string            `json:"session_id"`
	LeadScore  int               `json:"lead_score"`
	Language   Language          `json:"language"`
	Intent     Intent            `json:"intent"`
	Confidence float64           `json:"confidence"`
	Entities   map[string]string `json:"entities,omitempty"`
	Sentiment  float64           `json:"sentiment"`
}

// TurnOutput is everything one processed message produces.
type TurnOutput struct {
	Message            Message
	Context            TurnSummary
	Suggestions        []string
	ShouldEscalate     bool
	EscalationMessage  string
	EscalationTriggers []EscalationTrigger
	Conversion         ConversionEvent
	Stage              Stage
}

// Pipeline wires the classification, scoring, escalation, and response
// components into the per-message control flow. All steps are synchronous and
// CPU-bound; the pipeline holds no cross-session state.
type Pipeline struct {
	language   *LanguageService
	classifier *IntentClassifier
	extractor  *EntityExtractor
	sentiment  *SentimentScorer
	leadScore  *LeadScoreAccumulator
	escalation *EscalationEngine
	generator  *ResponseGenerator
}

// NewPipeline assembles the full pipeline over the given knowledge store. rng
// seeds the response generator's greeting selection.
func NewPipeline(knowledge *KnowledgeStore, rng *rand.Rand) *Pipeline {
	language := NewLanguageService()
	return &Pipeline{
		language:   language,
		classifier: NewIntentClassifier(),
		extractor:  NewEntityExtractor(),
		sentiment:  NewSentimentScorer(),
		leadScore:  NewLeadScoreAccumulator(),
		escalation: NewEscalationEngine(),
		generator:  NewResponseGenerator(knowledge, language, rng),
	}
}

// Language exposes the pipeline's language service, for callers that need
// localized boundary strings (the generic failure reply, mainly).
func (p *Pipeline) Language() *LanguageService {
	return p.language
}

// Process runs one validated message through the pipeline against the given
// session, mutating the session's history, lead score, failure counter, and
// stage. The caller owns session locking.
//
// The components are total functions over well-formed input, so errors here
// are unexpected by construction; the recover guard keeps a malformed
// knowledge-base entry or similar from tearing down the conversation.
func (p *Pipeline) Process(session *SessionContext, in TurnInput) (out *TurnOutput, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fmt.Errorf("pipeline failure: %v", r)
		}
	}()

	lang := p.language.Detect(in.Message, in.Language)
	session.Language = lang

	recent := session.RecentIntents(recentIntentWindow)
	firstTurn := len(recent) == 0 && session.UserMessageCount() == 0

	match := p.classifier.Classify(in.Message, lang, recent)
	match.Entities = p.extractor.Extract(in.Message, match.Intent)
	sentiment := p.sentiment.Score(in.Message, lang)

	delta := p.leadScore.Increment(match.Intent, match.Entities, match.Confidence)
	session.LeadScore = ClampLeadScore(session.LeadScore + delta)

	if match.Intent == IntentGeneralInquiry {
		session.ConsecutiveFailures++
	} else {
		session.ConsecutiveFailures = 0
	}

	userMsg := Message{
		ID:        uuid.NewString(),
		Role:      RoleUser,
		Content:   in.Message,
		Timestamp: time.Now().UTC(),
		Language:  lang,
		Metadata: &MessageMetadata{
			Intent:     match.Intent,
			Confidence: match.Confidence,
			Entities:   match.Entities,
		},
	}
	session.ConversationHistory = append(session.ConversationHistory, userMsg)

	turn := TurnContext{
		LeadScore:           session.LeadScore,
		MessageCount:        session.UserMessageCount(),
		LastMessage:         in.Message,
		Sentiment:           sentiment,
		ConsecutiveFailures: session.ConsecutiveFailures,
		RecentIntents:       recent,
		Language:            lang,
	}
	matched := p.escalation.Evaluate(turn)

	reply := p.generator.Generate(match, lang, session.LeadScore, firstTurn)

	session.Stage = advanceStage(session.Stage, match.Intent, len(matched) > 0)

	assistantMsg := Message{
		ID:        uuid.NewString(),
		Role:      RoleAssistant,
		Content:   reply,
		Timestamp: time.Now().UTC(),
		Language:  lang,
	}
	session.ConversationHistory = append(session.ConversationHistory, assistantMsg)

	out = &TurnOutput{
		Message: assistantMsg,
		Context: TurnSummary{
			SessionID:  session.SessionID,
			LeadScore:  session.LeadScore,
			Language:   lang,
			Intent:     match.Intent,
			Confidence: match.Confidence,
			Entities:   match.Entities,
			Sentiment:  sentiment,
		},
		Suggestions: p.generator.Suggestions(match.Intent, lang),
		Stage:       session.Stage,
		Conversion:  detectConversion(in.Message, match, len(matched) > 0),
	}
	if len(matched) > 0 {
		out.ShouldEscalate = true
		out.EscalationMessage = matched[0].Message(lang)
		out.EscalationTriggers = make([]EscalationTrigger, 0, len(matched))
		for _, rule := range matched {
			out.EscalationTriggers = append(out.EscalationTriggers, EscalationTrigger{
				Trigger:  rule.Trigger,
				Priority: rule.Action.Priority,
				Channel:  rule.Action.Channel,
				RuleID:   rule.ID,
			})
		}
	}
	return out, nil
}

// stageRank orders the funnel; transitions only move forward.
var stageRank = map[Stage]int{
	StageGreeting:      0,
	StageInformation:   1,
	StageQualification: 2,
	StageEscalation:    3,
	StageClosing:       3,
}

func advanceStage(current Stage, intent Intent, escalated bool) Stage {
	if current == "" {
		current = StageGreeting
	}
	next := current
	switch {
	case escalated:
		next = StageEscalation
	case intent == IntentGoodbye:
		next = StageClosing
	case intent == IntentDemoRequest || intent == IntentPricingInquiry || intent == IntentContactHuman:
		next = StageQualification
	case intent == IntentProductInquiry || intent == IntentCompanyInfo || intent == IntentSupportRequest:
		next = StageInformation
	}
	if stageRank[next] < stageRank[current] {
		return current
	}
	return next
}

var emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

// ExtractEmail returns the first email address found in the message, or ""
// when none is present. Used by the lead-capture path after a
// contact_provided conversion.
func ExtractEmail(message string) string {
	return emailPattern.FindString(message)
}

// detectConversion picks the turn's conversion event. A concrete contact
// detail outranks a stated demo interest, which outranks a bare escalation.
func detectConversion(message string, match IntentMatch, escalated bool) ConversionEvent {
	switch {
	case emailPattern.MatchString(message):
		return ConversionContactProvided
	case match.Intent == IntentDemoRequest && match.Confidence >= 0.6:
		return ConversionDemoRequested
	case escalated:
		return ConversionEscalated
	}
	return ConversionNone
}
