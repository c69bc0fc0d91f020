// Package llm classifies task complexity and selects a serving model from a
// caller-supplied list. Both operations are pure: no stored state, no I/O.
package llm

import "strings"

// Complexity is the coarse difficulty tier assigned to an input.
type Complexity string

const (
	ComplexitySimple    Complexity = "simple"
	ComplexityModerate  Complexity = "moderate"
	ComplexityComplex   Complexity = "complex"
	ComplexityReasoning Complexity = "reasoning"
)

const (
	// shortInputWordLimit is the word count at or below which input is
	// always simple, before any keyword checks run.
	shortInputWordLimit = 3

	// Length fallback thresholds when no keyword set matches.
	complexWordThreshold  = 50
	moderateWordThreshold = 15
)

// Keyword sets checked in strict priority order: reasoning beats complex
// beats moderate beats simple. First matching set wins.
var reasoningKeywords = []string{
	"step by step", "prove", "theorem", "derive", "logic puzzle",
	"chain of thought", "reason through", "deduce", "formal proof",
	"mathematical", "riddle",
}

var complexKeywords = []string{
	"architecture", "refactor", "optimize", "algorithm", "distributed",
	"concurrency", "design a system", "migrate", "performance tuning",
	"security audit", "scalability", "trade-off",
}

var moderateKeywords = []string{
	"explain", "compare", "summarize", "analyze", "describe", "outline",
	"difference between", "how does", "walk me through", "review",
}

var simpleKeywords = []string{
	"hello", "hi there", "thanks", "thank you", "yes", "no", "ok",
	"what time", "define",
}

// ClassifyTaskComplexity assigns one of the four tiers. Inputs of three or
// fewer words are always simple. Otherwise the keyword sets are checked in
// priority order; with no match the word count decides.
func ClassifyTaskComplexity(text string) Complexity {
	words := strings.Fields(text)
	if len(words) <= shortInputWordLimit {
		return ComplexitySimple
	}

	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, reasoningKeywords):
		return ComplexityReasoning
	case containsAny(lower, complexKeywords):
		return ComplexityComplex
	case containsAny(lower, moderateKeywords):
		return ComplexityModerate
	case containsAny(lower, simpleKeywords):
		return ComplexitySimple
	}

	switch {
	case len(words) > complexWordThreshold:
		return ComplexityComplex
	case len(words) > moderateWordThreshold:
		return ComplexityModerate
	default:
		return ComplexitySimple
	}
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
