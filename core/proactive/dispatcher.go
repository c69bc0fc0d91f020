package proactive

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gobwas/glob"
	"github.com/google/uuid"

	"github.com/adalundhe/psyche/core/learning"
)

// Dispatcher creates notifications subject to the configured gates:
// system enabled, per-user per-UTC-day quota, channel whitelist, and the
// default relevance threshold. All gates are policy no-ops, signaled by a
// nil return rather than an error.
type Dispatcher struct {
	mu            sync.Mutex
	config        Config
	channelGlobs  []glob.Glob
	notifications map[string][]Notification
	dailyCounts   map[string]int
	log           *slog.Logger
	now           func() time.Time
}

// NewDispatcher creates a Dispatcher. Invalid channel patterns are
// skipped; zero config fields take defaults.
func NewDispatcher(config Config, log *slog.Logger) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}
	defaults := DefaultConfig()
	if config.MaxDailyNotifications <= 0 {
		config.MaxDailyNotifications = defaults.MaxDailyNotifications
	}
	if len(config.AvailableChannels) == 0 {
		config.AvailableChannels = defaults.AvailableChannels
	}

	return &Dispatcher{
		config:        config,
		channelGlobs:  compileChannelGlobs(config.AvailableChannels),
		notifications: make(map[string][]Notification),
		dailyCounts:   make(map[string]int),
		log:           log,
		now:           time.Now,
	}
}

func compileChannelGlobs(patterns []string) []glob.Glob {
	matchers := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		matcher, err := glob.Compile(pattern)
		if err != nil {
			continue
		}
		matchers = append(matchers, matcher)
	}
	return matchers
}

// Draft is the caller-supplied content of a notification.
type Draft struct {
	Title     string
	Body      string
	URL       string
	Relevance float64
	Topics    []string
	Channel   string
}

// CreateNotification applies all gates and, when they pass, stores and
// returns a new pending notification. The returned value is a deep copy.
// A nil return with nil error means a gate declined the notification.
func (d *Dispatcher) CreateNotification(_ context.Context, userID string, draft Draft) (*Notification, error) {
	if !d.config.Enabled {
		return nil, nil
	}
	if !d.channelAllowed(draft.Channel) {
		d.log.Debug("notification channel not whitelisted",
			"user_id", userID, "channel", draft.Channel)
		return nil, nil
	}
	if draft.Relevance < d.config.DefaultMinRelevance {
		return nil, nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	dayKey := userID + "|" + d.now().UTC().Format("2006-01-02")
	if d.dailyCounts[dayKey] >= d.config.MaxDailyNotifications {
		d.log.Debug("daily notification quota reached", "user_id", userID)
		return nil, nil
	}

	notification := Notification{
		ID:        "notif_" + uuid.NewString(),
		UserID:    userID,
		Title:     draft.Title,
		Body:      draft.Body,
		URL:       draft.URL,
		Relevance: draft.Relevance,
		Topics:    draft.Topics,
		Channel:   draft.Channel,
		CreatedAt: d.now(),
		Status:    StatusPending,
	}

	d.notifications[userID] = append(d.notifications[userID], copyNotification(notification))
	d.dailyCounts[dayKey]++

	result := copyNotification(notification)
	return &result, nil
}

// Dispatch filters each catalog item through the subscription and creates
// a notification per match. Used by the orchestrator's proactive step.
func (d *Dispatcher) Dispatch(ctx context.Context, sub *Subscription, catalog []learning.ContentItem, interests map[string]float64) ([]Notification, error) {
	if sub == nil || !sub.OptedIn {
		return nil, nil
	}

	channel := firstAllowedChannel(sub.Channels, d.channelGlobs)
	if channel == "" {
		return nil, nil
	}

	var created []Notification
	for _, item := range catalog {
		match := FilterContent(sub, item, interests)
		if !match.Matched {
			continue
		}

		notification, err := d.CreateNotification(ctx, sub.UserID, Draft{
			Title:     item.Title,
			Body:      item.Summary,
			URL:       item.URL,
			Relevance: match.Relevance,
			Topics:    match.MatchedTopics,
			Channel:   channel,
		})
		if err != nil {
			return created, err
		}
		if notification != nil {
			created = append(created, *notification)
		}
	}
	return created, nil
}

// Notifications returns deep copies of a user's stored notifications.
func (d *Dispatcher) Notifications(userID string) []Notification {
	d.mu.Lock()
	defer d.mu.Unlock()

	stored := d.notifications[userID]
	result := make([]Notification, len(stored))
	for i, notification := range stored {
		result[i] = copyNotification(notification)
	}
	return result
}

// UpdateStatus moves a notification to a new delivery status. It returns
// nil when the notification does not exist.
func (d *Dispatcher) UpdateStatus(userID, notificationID string, status NotificationStatus) *Notification {
	d.mu.Lock()
	defer d.mu.Unlock()

	stored := d.notifications[userID]
	for i := range stored {
		if stored[i].ID == notificationID {
			stored[i].Status = status
			cp := copyNotification(stored[i])
			return &cp
		}
	}
	return nil
}

func (d *Dispatcher) channelAllowed(channel string) bool {
	for _, matcher := range d.channelGlobs {
		if matcher.Match(channel) {
			return true
		}
	}
	return false
}

func firstAllowedChannel(channels []string, matchers []glob.Glob) string {
	for _, channel := range channels {
		for _, matcher := range matchers {
			if matcher.Match(channel) {
				return channel
			}
		}
	}
	return ""
}
