package learning

import (
	"sort"
	"strings"
	"unicode"
)

const (
	maxExtractedTopics = 10
	minTopicLength     = 3
)

var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "but": true,
	"not": true, "you": true, "all": true, "can": true, "had": true,
	"her": true, "was": true, "one": true, "our": true, "out": true,
	"has": true, "him": true, "his": true, "how": true, "its": true,
	"may": true, "new": true, "now": true, "old": true, "see": true,
	"two": true, "way": true, "who": true, "did": true, "get": true,
	"let": true, "say": true, "she": true, "too": true, "use": true,
	"that": true, "this": true, "with": true, "have": true, "will": true,
	"your": true, "from": true, "they": true, "know": true, "want": true,
	"been": true, "good": true, "much": true, "some": true, "time": true,
	"very": true, "when": true, "just": true, "into": true, "than": true,
	"them": true, "then": true, "were": true, "what": true, "about": true,
	"would": true, "there": true, "their": true, "could": true, "which": true,
	"should": true, "please": true, "really": true, "thing": true,
	"things": true, "going": true, "doing": true, "like": true, "need": true,
	"make": true, "also": true, "more": true, "each": true, "other": true,
}

// ExtractTopics lowercases the text, strips non-word characters, drops stop
// words and very short tokens, and returns the ten most frequent remaining
// tokens. Ties keep first-seen order so the output is deterministic.
func ExtractTopics(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, text)

	counts := make(map[string]int)
	var order []string

	for _, token := range strings.Fields(cleaned) {
		if len(token) < minTopicLength || stopWords[token] {
			continue
		}
		if counts[token] == 0 {
			order = append(order, token)
		}
		counts[token]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > maxExtractedTopics {
		order = order[:maxExtractedTopics]
	}
	return order
}
