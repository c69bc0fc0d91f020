package learning

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultRecommendationLimit caps how many recommendations are
	// returned when the caller does not say otherwise.
	DefaultRecommendationLimit = 5

	// DefaultMinRecommendationRelevance filters out weak matches.
	DefaultMinRecommendationRelevance = 0.1
)

// Recommender scores content catalogs against a user's learned topic
// interests.
type Recommender struct {
	engine *Engine
	config Config
	now    func() time.Time
}

// NewRecommender creates a Recommender reading interests from engine.
func NewRecommender(engine *Engine, config Config) *Recommender {
	return &Recommender{
		engine: engine,
		config: config,
		now:    time.Now,
	}
}

// Generate scores each catalog item against the user's topic interests.
// Users with no tracked interests get an empty result, not an error, and
// a disabled EnableRecommendations knob short-circuits the same way.
// Items with identical relevance keep catalog order, so output is
// deterministic. A non-positive limit or negative minRelevance takes the
// package default.
func (r *Recommender) Generate(_ context.Context, userID string, catalog []ContentItem, limit int, minRelevance float64) []Recommendation {
	if !r.config.EnableRecommendations {
		return nil
	}
	if limit <= 0 {
		limit = DefaultRecommendationLimit
	}
	if minRelevance < 0 {
		minRelevance = DefaultMinRecommendationRelevance
	}

	prefs := r.engine.Preferences(userID)
	if prefs == nil || len(prefs.TopicInterests) == 0 {
		return nil
	}

	var recommendations []Recommendation
	for _, item := range catalog {
		relevance, matched := scoreItem(item, prefs.TopicInterests)
		if relevance < minRelevance || len(matched) == 0 {
			continue
		}

		recommendations = append(recommendations, Recommendation{
			ID:            "rec_" + uuid.NewString(),
			Title:         item.Title,
			Summary:       item.Summary,
			URL:           item.URL,
			Relevance:     relevance,
			MatchedTopics: matched,
			GeneratedAt:   r.now(),
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Relevance > recommendations[j].Relevance
	})

	if len(recommendations) > limit {
		recommendations = recommendations[:limit]
	}
	return recommendations
}

// scoreItem adds the best matching interest weight for each item topic and
// divides by the item's topic count. Items with no topics score zero.
func scoreItem(item ContentItem, interests map[string]float64) (float64, []string) {
	if len(item.Topics) == 0 {
		return 0, nil
	}

	total := 0.0
	var matched []string
	for _, topic := range item.Topics {
		weight, ok := bestInterestMatch(topic, interests)
		if ok {
			total += weight
			matched = append(matched, topic)
		}
	}

	return total / float64(len(item.Topics)), matched
}

// bestInterestMatch finds the strongest interest whose name matches the
// topic by case-insensitive exact or bidirectional substring match.
func bestInterestMatch(topic string, interests map[string]float64) (float64, bool) {
	topicLower := strings.ToLower(topic)

	best := 0.0
	found := false
	for interest, weight := range interests {
		interestLower := strings.ToLower(interest)
		if !strings.Contains(topicLower, interestLower) &&
			!strings.Contains(interestLower, topicLower) {
			continue
		}
		if !found || weight > best {
			best = weight
			found = true
		}
	}
	return best, found
}
