package chatbot

import "math"

// Base point values per intent. Fixed lookup; the accumulator scales these by
// classification confidence.
var intentBasePoints = map[Intent]int{
	IntentDemoRequest:    25,
	IntentPricingInquiry: 20,
	IntentContactHuman:   15,
	IntentProductInquiry: 10,
	IntentSupportRequest: 5,
	IntentCompanyInfo:    5,
	IntentGoodbye:        2,
	IntentGreeting:       2,
	IntentGeneralInquiry: 1,
}

// Entity bonuses layered on top of the intent points.
const (
	largeCompanyBonus = 5
	highUrgencyBonus  = 3
	segmentBonus      = 2
)

// LeadScoreAccumulator maps a classified turn onto a bounded lead-score
// increment. The caller owns the running total and the [0,100] clamp.
type LeadScoreAccumulator struct{}

// NewLeadScoreAccumulator creates an accumulator.
func NewLeadScoreAccumulator() *LeadScoreAccumulator {
	return &LeadScoreAccumulator{}
}

// Increment returns the lead-score delta for one turn: the intent's base
// points scaled by confidence, rounded to nearest, plus fixed entity bonuses.
// The delta is never negative.
func (a *LeadScoreAccumulator) Increment(intent Intent, entities map[string]string, confidence float64) int {
	base := intentBasePoints[intent]
	delta := int(math.Round(float64(base) * confidence))

	if entities[EntityCompanySize] == "large" {
		delta += largeCompanyBonus
	}
	if entities[EntityUrgency] == "high" {
		delta += highUrgencyBonus
	}
	if entities[EntitySegment] != "" {
		delta += segmentBonus
	}

	if delta < 0 {
		delta = 0
	}
	return delta
}
