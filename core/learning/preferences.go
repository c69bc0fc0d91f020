package learning

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"
)

const (
	// topicDecayRate is the per-step recency decay: the most recent
	// interaction carries weight 1.0, the one before it 0.95, and so on.
	topicDecayRate = 0.95

	// Verbosity thresholds over mean input length in characters.
	conciseInputLength  = 50
	moderateInputLength = 200
)

var formalMarkers = []string{
	"regards", "sincerely", "would you kindly", "could you please",
	"i would appreciate", "furthermore", "therefore", "pursuant",
}

var casualMarkers = []string{
	"hey", "yeah", "lol", "gonna", "wanna", "btw", "thx", "cool",
	"dude", "haha",
}

// Engine recomputes user preferences from the full chat history on each
// update. For the small bounded histories the logger retains this is
// cheaper than keeping an incremental decay accumulator correct.
type Engine struct {
	mu    sync.RWMutex
	store InteractionStore
	prefs map[string]*UserPreferences
	now   func() time.Time
}

// NewEngine creates a preference engine reading history from store.
func NewEngine(store InteractionStore) *Engine {
	return &Engine{
		store: store,
		prefs: make(map[string]*UserPreferences),
		now:   time.Now,
	}
}

// UpdatePreferences recomputes the user's profile from scratch. Topic
// weights are recency-decayed and normalized so the top topic is exactly
// 1.0. An empty history preserves the previously inferred style instead of
// regressing to defaults.
func (e *Engine) UpdatePreferences(ctx context.Context, userID string) (*UserPreferences, error) {
	history, err := e.store.History(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("update preferences: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	prefs, ok := e.prefs[userID]
	if !ok {
		prefs = &UserPreferences{
			UserID:         userID,
			TopicInterests: make(map[string]float64),
			PreferredStyle: Style{
				Verbosity: VerbosityModerate,
				Formality: FormalityNeutral,
			},
		}
		e.prefs[userID] = prefs
	}

	prefs.UpdatedAt = e.now()

	if len(history) == 0 {
		return copyPreferences(prefs), nil
	}

	prefs.TopicInterests = scoreTopics(history)
	prefs.PreferredStyle = inferStyle(history)
	prefs.InteractionCount = len(history)

	return copyPreferences(prefs), nil
}

// Preferences returns the last computed profile for a user, or nil when
// the user has never been updated.
func (e *Engine) Preferences(userID string) *UserPreferences {
	e.mu.RLock()
	defer e.mu.RUnlock()

	prefs, ok := e.prefs[userID]
	if !ok {
		return nil
	}
	return copyPreferences(prefs)
}

// scoreTopics sums recency-decayed weights per topic across the history
// and normalizes by the maximum, so weights land in [0, 1] with at least
// one topic at exactly 1.0.
func scoreTopics(history []ChatInteraction) map[string]float64 {
	scores := make(map[string]float64)
	length := len(history)

	for i, interaction := range history {
		weight := math.Pow(topicDecayRate, float64(length-1-i))
		for _, topic := range interaction.Topics {
			scores[topic] += weight
		}
	}

	max := 0.0
	for _, score := range scores {
		if score > max {
			max = score
		}
	}
	if max > 0 {
		for topic := range scores {
			scores[topic] /= max
		}
	}
	return scores
}

func inferStyle(history []ChatInteraction) Style {
	totalLength := 0
	formal := 0
	casual := 0

	for _, interaction := range history {
		totalLength += len(interaction.Input)

		lower := strings.ToLower(interaction.Input)
		for _, marker := range formalMarkers {
			if strings.Contains(lower, marker) {
				formal++
			}
		}
		for _, marker := range casualMarkers {
			if strings.Contains(lower, marker) {
				casual++
			}
		}
	}

	mean := float64(totalLength) / float64(len(history))

	style := Style{Formality: FormalityNeutral}
	switch {
	case mean < conciseInputLength:
		style.Verbosity = VerbosityConcise
	case mean < moderateInputLength:
		style.Verbosity = VerbosityModerate
	default:
		style.Verbosity = VerbosityDetailed
	}

	switch {
	case formal > casual:
		style.Formality = FormalityFormal
	case casual > formal:
		style.Formality = FormalityCasual
	}
	return style
}

func copyPreferences(prefs *UserPreferences) *UserPreferences {
	cp := *prefs
	cp.TopicInterests = make(map[string]float64, len(prefs.TopicInterests))
	for topic, weight := range prefs.TopicInterests {
		cp.TopicInterests[topic] = weight
	}
	return &cp
}
