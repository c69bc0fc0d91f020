// Package proactive handles opt-in content matching and rate-limited
// notification creation. Subscriptions are upserted per user; notifications
// are gated by a per-user daily quota, a channel whitelist, and two
// independent relevance thresholds (the subscription's own and the
// system default).
package proactive

import "time"

// Subscription is one user's opt-in state. One per user, upsert semantics.
type Subscription struct {
	UserID       string    `json:"user_id"`
	OptedIn      bool      `json:"opted_in"`
	Channels     []string  `json:"channels,omitempty"`
	TopicFilters []string  `json:"topic_filters,omitempty"`
	MinRelevance float64   `json:"min_relevance"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NotificationStatus is the delivery lifecycle state.
type NotificationStatus string

const (
	StatusPending   NotificationStatus = "pending"
	StatusDelivered NotificationStatus = "delivered"
	StatusFailed    NotificationStatus = "failed"
)

// Notification is one created proactive message.
type Notification struct {
	ID        string             `json:"id"`
	UserID    string             `json:"user_id"`
	Title     string             `json:"title"`
	Body      string             `json:"body"`
	URL       string             `json:"url,omitempty"`
	Relevance float64            `json:"relevance"`
	Topics    []string           `json:"topics,omitempty"`
	Channel   string             `json:"channel"`
	CreatedAt time.Time          `json:"created_at"`
	Status    NotificationStatus `json:"status"`
}

// ContentMatch is the outcome of filtering one content item against a
// subscription.
type ContentMatch struct {
	Matched       bool     `json:"matched"`
	Relevance     float64  `json:"relevance"`
	MatchedTopics []string `json:"matched_topics,omitempty"`
}

// Config configures the proactive subsystem. AvailableChannels entries may
// be glob patterns (e.g. "push-*").
type Config struct {
	Enabled               bool     `yaml:"enabled"`
	DefaultMinRelevance   float64  `yaml:"default_min_relevance"`
	MaxDailyNotifications int      `yaml:"max_daily_notifications"`
	AvailableChannels     []string `yaml:"available_channels"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		Enabled:               true,
		DefaultMinRelevance:   0.3,
		MaxDailyNotifications: 5,
		AvailableChannels:     []string{"chat", "email"},
	}
}
