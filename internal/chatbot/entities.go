package chatbot

import "strings"

// entityFamily is one extraction family: an entity key plus the candidate
// values and the keyword lists that select them. The first matching value
// wins within a family.
type entityFamily struct {
	key        string
	candidates []entityCandidate
}

type entityCandidate struct {
	value    string
	keywords []string
}

var entityFamilies = []entityFamily{
	{
		key: EntityCompanySize,
		candidates: []entityCandidate{
			{value: "large", keywords: []string{"enterprise", "multinational", "500 employees", "1000 employees", "large company", "nationwide", "grande entreprise", "multi-country"}},
			{value: "medium", keywords: []string{"medium", "mid-size", "midsize", "100 employees", "50 employees", "regional"}},
			{value: "small", keywords: []string{"small business", "startup", "small company", "family business", "petite entreprise", "few employees"}},
		},
	},
	{
		key: EntitySegment,
		candidates: []entityCandidate{
			{value: "upstream", keywords: []string{"upstream", "exploration", "drilling", "production field", "oilfield", "rig"}},
			{value: "midstream", keywords: []string{"midstream", "pipeline", "depot", "terminal", "storage tank", "transport", "logistics", "distribution"}},
			{value: "downstream", keywords: []string{"downstream", "retail", "station", "refinery", "filling station", "petrol station", "gas station", "forecourt", "lubricant"}},
		},
	},
	{
		key: EntityRegion,
		candidates: []entityCandidate{
			{value: "west_africa", keywords: []string{"nigeria", "ghana", "lagos", "accra", "senegal", "west africa", "côte d'ivoire", "ivory coast"}},
			{value: "east_africa", keywords: []string{"kenya", "nairobi", "tanzania", "uganda", "east africa", "ethiopia"}},
			{value: "north_africa", keywords: []string{"egypt", "morocco", "algeria", "tunisia", "libya", "north africa"}},
			{value: "middle_east", keywords: []string{"dubai", "uae", "saudi", "qatar", "middle east", "oman", "kuwait"}},
			{value: "europe", keywords: []string{"europe", "uk", "london", "france", "germany", "netherlands"}},
		},
	},
	{
		key: EntityUrgency,
		candidates: []entityCandidate{
			{value: "high", keywords: []string{"urgent", "asap", "immediately", "right away", "this week", "as soon as", "tout de suite", "haraka"}},
		},
	},
}

// EntityExtractor pulls coarse entities out of message text through keyword
// membership tests. Every family is checked on every call; the intent argument
// is accepted for interface symmetry with the classifier but does not gate
// extraction.
type EntityExtractor struct {
	families []entityFamily
}

// NewEntityExtractor creates an extractor over the built-in entity families.
func NewEntityExtractor() *EntityExtractor {
	return &EntityExtractor{families: entityFamilies}
}

// Extract returns the entities found in message. Each family contributes at
// most one value; families with no hit are absent from the map.
func (e *EntityExtractor) Extract(message string, _ Intent) map[string]string {
	lower := strings.ToLower(message)
	entities := make(map[string]string)
	for _, family := range e.families {
		for _, cand := range family.candidates {
			if containsAny(lower, cand.keywords) {
				entities[family.key] = cand.value
				break
			}
		}
	}
	return entities
}
