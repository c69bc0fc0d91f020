package proactive

import (
	"strings"

	"github.com/adalundhe/psyche/core/learning"
)

// defaultMatchWeight is credited for a topic filter match when the caller
// supplies no interest score for it.
const defaultMatchWeight = 0.5

// FilterContent checks one content item against a subscription. The filter
// set is the subscription's explicit topic filters, or the keys of the
// supplied interests when the subscription has none. Topics match by
// case-insensitive bidirectional substring. Relevance is the matched
// weight total over the filter count, clamped to 1.
func FilterContent(sub *Subscription, item learning.ContentItem, interests map[string]float64) ContentMatch {
	if sub == nil || !sub.OptedIn {
		return ContentMatch{}
	}

	filters := sub.TopicFilters
	if len(filters) == 0 {
		filters = make([]string, 0, len(interests))
		for topic := range interests {
			filters = append(filters, topic)
		}
	}
	if len(filters) == 0 {
		return ContentMatch{}
	}

	total := 0.0
	var matched []string
	for _, topic := range item.Topics {
		weight, ok := bestFilterMatch(topic, filters, interests)
		if !ok {
			continue
		}
		total += weight
		matched = append(matched, topic)
	}

	filterCount := len(filters)
	if filterCount < 1 {
		filterCount = 1
	}
	relevance := total / float64(filterCount)
	if relevance > 1 {
		relevance = 1
	}

	return ContentMatch{
		Matched:       relevance >= sub.MinRelevance && len(matched) > 0,
		Relevance:     relevance,
		MatchedTopics: matched,
	}
}

func bestFilterMatch(topic string, filters []string, interests map[string]float64) (float64, bool) {
	topicLower := strings.ToLower(topic)

	best := 0.0
	found := false
	for _, filter := range filters {
		filterLower := strings.ToLower(filter)
		if !strings.Contains(topicLower, filterLower) &&
			!strings.Contains(filterLower, topicLower) {
			continue
		}

		weight, ok := interests[filter]
		if !ok {
			weight = defaultMatchWeight
		}
		if !found || weight > best {
			best = weight
			found = true
		}
	}
	return best, found
}
