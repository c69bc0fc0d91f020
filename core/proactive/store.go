package proactive

import (
	"sync"
	"time"
)

// SubscriptionStore keeps one subscription per user with upsert semantics.
// All reads and writes exchange deep copies so callers can never mutate
// stored state through a returned value.
type SubscriptionStore struct {
	mu            sync.RWMutex
	subscriptions map[string]Subscription
	now           func() time.Time
}

// NewSubscriptionStore creates an empty store.
func NewSubscriptionStore() *SubscriptionStore {
	return &SubscriptionStore{
		subscriptions: make(map[string]Subscription),
		now:           time.Now,
	}
}

// Upsert creates or replaces the user's subscription and stamps UpdatedAt.
func (s *SubscriptionStore) Upsert(sub Subscription) Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub.UpdatedAt = s.now()
	s.subscriptions[sub.UserID] = copySubscription(sub)
	return copySubscription(sub)
}

// Get returns the user's subscription, or nil when none exists.
func (s *SubscriptionStore) Get(userID string) *Subscription {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sub, ok := s.subscriptions[userID]
	if !ok {
		return nil
	}
	cp := copySubscription(sub)
	return &cp
}

// Delete removes the user's subscription.
func (s *SubscriptionStore) Delete(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subscriptions, userID)
}

func copySubscription(sub Subscription) Subscription {
	cp := sub
	if sub.Channels != nil {
		cp.Channels = make([]string, len(sub.Channels))
		copy(cp.Channels, sub.Channels)
	}
	if sub.TopicFilters != nil {
		cp.TopicFilters = make([]string, len(sub.TopicFilters))
		copy(cp.TopicFilters, sub.TopicFilters)
	}
	return cp
}

func copyNotification(notification Notification) Notification {
	cp := notification
	if notification.Topics != nil {
		cp.Topics = make([]string, len(notification.Topics))
		copy(cp.Topics, notification.Topics)
	}
	return cp
}
