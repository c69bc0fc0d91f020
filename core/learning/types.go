// Package learning tracks chat history, learns per-user topic interests and
// style preferences from it, and scores content catalogs against those
// interests. Storage sits behind InteractionStore so tests run in memory
// while deployments can persist to SQLite.
package learning

import "time"

// PrivacyLevel controls how much of an interaction is retained.
type PrivacyLevel string

const (
	// PrivacyOff discards interactions entirely.
	PrivacyOff PrivacyLevel = "off"

	// PrivacyMinimal keeps only a truncated prefix of the text.
	PrivacyMinimal PrivacyLevel = "minimal"

	// PrivacyStandard redacts email and phone patterns. The patterns
	// cover common US-style formats; international phone formats are
	// not guaranteed to be caught.
	PrivacyStandard PrivacyLevel = "standard"

	// PrivacyFull stores text verbatim.
	PrivacyFull PrivacyLevel = "full"
)

// ChatInteraction is one logged exchange. Input and Output are redacted
// according to the privacy level at write time; the redaction is
// irreversible.
type ChatInteraction struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Input     string    `json:"input"`
	Output    string    `json:"output"`
	Channel   string    `json:"channel,omitempty"`
	Topics    []string  `json:"topics,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Verbosity preference tiers inferred from mean input length.
const (
	VerbosityConcise  = "concise"
	VerbosityModerate = "moderate"
	VerbosityDetailed = "detailed"
)

// Formality preference tiers inferred from marker word counts.
const (
	FormalityCasual  = "casual"
	FormalityNeutral = "neutral"
	FormalityFormal  = "formal"
)

// Style is the response style a user appears to prefer.
type Style struct {
	Verbosity string `json:"verbosity"`
	Formality string `json:"formality"`
}

// UserPreferences is the learned profile for one user. TopicInterests is
// normalized so the strongest topic always carries weight 1.0.
type UserPreferences struct {
	UserID           string             `json:"user_id"`
	TopicInterests   map[string]float64 `json:"topic_interests"`
	PreferredStyle   Style              `json:"preferred_style"`
	InteractionCount int                `json:"interaction_count"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// ContentItem is one entry of a caller-supplied content catalog.
type ContentItem struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Summary string   `json:"summary,omitempty"`
	URL     string   `json:"url,omitempty"`
	Topics  []string `json:"topics"`
}

// Recommendation is an ephemeral, derived catalog match.
type Recommendation struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Summary       string    `json:"summary,omitempty"`
	URL           string    `json:"url,omitempty"`
	Relevance     float64   `json:"relevance"`
	MatchedTopics []string  `json:"matched_topics"`
	GeneratedAt   time.Time `json:"generated_at"`
}

// Config configures the learning subsystem.
type Config struct {
	Enabled                bool         `yaml:"enabled"`
	PrivacyLevel           PrivacyLevel `yaml:"privacy_level"`
	MaxInteractionsPerUser int          `yaml:"max_interactions_per_user"`
	TrackTopics            bool         `yaml:"track_topics"`
	EnableRecommendations  bool         `yaml:"enable_recommendations"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		Enabled:                true,
		PrivacyLevel:           PrivacyStandard,
		MaxInteractionsPerUser: 200,
		TrackTopics:            true,
		EnableRecommendations:  true,
	}
}
