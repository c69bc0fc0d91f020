package orchestrator

import (
	"sort"

	"github.com/adalundhe/psyche/core/emotion"
	"github.com/adalundhe/psyche/core/learning"
)

// maxRelevantTopics caps how many interest topics flow into the hints.
const maxRelevantTopics = 5

// synthesizeHints maps the emotional read and learned preferences onto
// phrasing guidance. A negative session trend overrides the per-message
// tone with empathetic.
func synthesizeHints(emotionalContext *emotion.Context, prefs *learning.UserPreferences) Hints {
	hints := Hints{
		Tone:      ToneNeutral,
		Verbosity: learning.VerbosityModerate,
	}

	if emotionalContext != nil && len(emotionalContext.History) > 0 {
		latest := emotionalContext.History[len(emotionalContext.History)-1]
		hints.Tone = toneForLabel(latest.Dominant)
		if emotionalContext.Trend == emotion.TrendNegative {
			hints.Tone = ToneEmpathetic
		}
	}

	if prefs != nil {
		if prefs.PreferredStyle.Verbosity != "" {
			hints.Verbosity = prefs.PreferredStyle.Verbosity
		}
		hints.RelevantTopics = topInterests(prefs.TopicInterests, maxRelevantTopics)
	}

	return hints
}

func toneForLabel(label emotion.Label) string {
	switch label {
	case emotion.LabelSadness, emotion.LabelFear:
		return ToneEmpathetic
	case emotion.LabelAnger, emotion.LabelDisgust:
		return ToneCalming
	case emotion.LabelJoy, emotion.LabelAnticipation:
		return ToneEnthusiastic
	case emotion.LabelTrust:
		return ToneEncouraging
	default:
		return ToneNeutral
	}
}

// topInterests returns up to limit topics ordered by descending weight,
// alphabetical on ties so the hint is deterministic.
func topInterests(interests map[string]float64, limit int) []string {
	if len(interests) == 0 {
		return nil
	}

	topics := make([]string, 0, len(interests))
	for topic := range interests {
		topics = append(topics, topic)
	}
	sort.Slice(topics, func(i, j int) bool {
		if interests[topics[i]] != interests[topics[j]] {
			return interests[topics[i]] > interests[topics[j]]
		}
		return topics[i] < topics[j]
	})

	if len(topics) > limit {
		topics = topics[:limit]
	}
	return topics
}
