package chatbot

import "strings"

// sentimentDivisor normalizes raw keyword counts into [-1,1]; three hits in
// either direction saturate the score.
const sentimentDivisor = 3.0

type sentimentLexicon struct {
	positive []string
	negative []string
}

var sentimentLexicons = map[Language]sentimentLexicon{
	LangEnglish: {
		positive: []string{"great", "good", "excellent", "love", "perfect", "thanks", "thank you", "amazing", "helpful", "awesome", "interested", "impressive"},
		negative: []string{"bad", "terrible", "awful", "hate", "useless", "disappointed", "frustrat", "angry", "waste", "expensive", "slow", "confusing", "worst"},
	},
	LangFrench: {
		positive: []string{"merci", "excellent", "parfait", "génial", "super", "intéressé", "utile"},
		negative: []string{"mauvais", "terrible", "nul", "déçu", "frustré", "cher", "lent", "inutile"},
	},
	LangArabic: {
		positive: []string{"ممتاز", "رائع", "شكرا", "جيد", "مفيد"},
		negative: []string{"سيء", "فظيع", "محبط", "غاضب", "مكلف", "بطيء"},
	},
	LangSwahili: {
		positive: []string{"nzuri", "asante", "vizuri", "bora", "safi"},
		negative: []string{"mbaya", "vibaya", "ghali", "polepole", "sijafurahi"},
	},
	LangHausa: {
		positive: []string{"nagode", "madalla", "kyau", "da kyau"},
		negative: []string{"mummuna", "ba kyau", "tsada", "sannu a hankali", "bacin rai"},
	},
}

// SentimentScorer sums positive and negative keyword hits per language and
// normalizes the balance into [-1,1]. Stateless; pure function of its inputs.
type SentimentScorer struct {
	lexicons map[Language]sentimentLexicon
}

// NewSentimentScorer creates a scorer over the built-in lexicons.
func NewSentimentScorer() *SentimentScorer {
	return &SentimentScorer{lexicons: sentimentLexicons}
}

// Score returns the sentiment of message in [-1,1]. Unsupported languages fall
// back to the English lexicon.
func (s *SentimentScorer) Score(message string, lang Language) float64 {
	lex, ok := s.lexicons[lang]
	if !ok {
		lex = s.lexicons[DefaultLanguage]
	}
	lower := strings.ToLower(message)

	raw := 0
	for _, kw := range lex.positive {
		if strings.Contains(lower, kw) {
			raw++
		}
	}
	for _, kw := range lex.negative {
		if strings.Contains(lower, kw) {
			raw--
		}
	}

	score := float64(raw) / sentimentDivisor
	if score > 1 {
		return 1
	}
	if score < -1 {
		return -1
	}
	return score
}
