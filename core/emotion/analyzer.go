package emotion

import (
	"strings"
	"time"
	"unicode"
)

// Analyzer scores raw text against a fixed emotion lexicon. It is pure and
// deterministic: the same input always produces the same scores.
type Analyzer struct {
	lexicon map[Label]map[string]bool
}

// NewAnalyzer creates an Analyzer using the given lexicon. A nil lexicon
// falls back to DefaultLexicon.
func NewAnalyzer(lexicon Lexicon) *Analyzer {
	if lexicon == nil {
		lexicon = DefaultLexicon()
	}

	indexed := make(map[Label]map[string]bool, len(lexicon))
	for label, words := range lexicon {
		set := make(map[string]bool, len(words))
		for _, w := range words {
			set[strings.ToLower(w)] = true
		}
		indexed[label] = set
	}

	return &Analyzer{lexicon: indexed}
}

// Analyze tokenizes the text and scores each emotion label by keyword
// frequency. Empty or unmatchable input yields a neutral analysis with
// zero scores and no dominant label.
func (a *Analyzer) Analyze(text string) Analysis {
	analysis := Analysis{
		Sentiment:  SentimentNeutral,
		Scores:     make(map[Label]float64, len(a.lexicon)),
		AnalyzedAt: time.Now(),
	}
	for _, label := range AllLabels() {
		analysis.Scores[label] = 0
	}

	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return analysis
	}

	for _, token := range tokens {
		for label, words := range a.lexicon {
			if words[token] {
				analysis.Scores[label]++
			}
		}
	}

	analysis.Dominant = dominantLabel(analysis.Scores)
	analysis.Sentiment = deriveSentiment(analysis.Scores)
	return analysis
}

// Tokenize lowercases the input, strips punctuation, and splits on
// whitespace. Tokens that reduce to nothing are dropped.
func Tokenize(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			return unicode.ToLower(r)
		case unicode.IsSpace(r):
			return r
		default:
			return ' '
		}
	}, text)

	return strings.Fields(cleaned)
}

func dominantLabel(scores map[Label]float64) Label {
	var dominant Label
	max := 0.0
	for _, label := range AllLabels() {
		if scores[label] > max {
			max = scores[label]
			dominant = label
		}
	}
	return dominant
}

func deriveSentiment(scores map[Label]float64) Sentiment {
	positive := 0.0
	negative := 0.0
	for label, score := range scores {
		switch {
		case positiveLabels[label]:
			positive += score
		case negativeLabels[label]:
			negative += score
		}
	}

	switch {
	case positive > negative:
		return SentimentPositive
	case negative > positive:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}
