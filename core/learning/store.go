package learning

import (
	"context"
	"sync"
)

// InteractionStore is the persistence boundary for chat history. The
// in-memory implementation backs tests; MemoryStore and SQLiteStore are
// interchangeable.
type InteractionStore interface {
	// Append stores one interaction at the end of the user's history.
	Append(ctx context.Context, interaction ChatInteraction) error

	// History returns the user's interactions in insertion order.
	History(ctx context.Context, userID string) ([]ChatInteraction, error)

	// Count reports how many interactions the user has.
	Count(ctx context.Context, userID string) (int, error)

	// TrimOldest drops interactions from the front until at most keep
	// remain, preserving insertion order of the survivors.
	TrimOldest(ctx context.Context, userID string, keep int) error

	// Clear removes all history for the user.
	Clear(ctx context.Context, userID string) error
}

// MemoryStore is a thread-safe in-memory InteractionStore.
type MemoryStore struct {
	mu           sync.RWMutex
	interactions map[string][]ChatInteraction
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		interactions: make(map[string][]ChatInteraction),
	}
}

func (m *MemoryStore) Append(_ context.Context, interaction ChatInteraction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.interactions[interaction.UserID] = append(
		m.interactions[interaction.UserID],
		copyInteraction(interaction),
	)
	return nil
}

func (m *MemoryStore) History(_ context.Context, userID string) ([]ChatInteraction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stored := m.interactions[userID]
	history := make([]ChatInteraction, len(stored))
	for i, interaction := range stored {
		history[i] = copyInteraction(interaction)
	}
	return history, nil
}

func (m *MemoryStore) Count(_ context.Context, userID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.interactions[userID]), nil
}

func (m *MemoryStore) TrimOldest(_ context.Context, userID string, keep int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := m.interactions[userID]
	if keep < 0 {
		keep = 0
	}
	if len(stored) <= keep {
		return nil
	}

	trimmed := make([]ChatInteraction, keep)
	copy(trimmed, stored[len(stored)-keep:])
	m.interactions[userID] = trimmed
	return nil
}

func (m *MemoryStore) Clear(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.interactions, userID)
	return nil
}

func copyInteraction(interaction ChatInteraction) ChatInteraction {
	cp := interaction
	if interaction.Topics != nil {
		cp.Topics = make([]string, len(interaction.Topics))
		copy(cp.Topics, interaction.Topics)
	}
	return cp
}
