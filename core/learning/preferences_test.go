package learning

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedInteraction(t *testing.T, store *MemoryStore, userID, input string, topics []string) {
	t.Helper()
	err := store.Append(context.Background(), ChatInteraction{
		ID:        "chat_test",
		UserID:    userID,
		Input:     input,
		Output:    "ok",
		Topics:    topics,
		Timestamp: time.Now(),
	})
	require.NoError(t, err)
}

func TestEngine_UpdatePreferences_NormalizedWeights(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	engine := NewEngine(store)

	seedInteraction(t, store, "u1", "about golang", []string{"golang"})
	seedInteraction(t, store, "u1", "about golang again", []string{"golang"})
	seedInteraction(t, store, "u1", "about rust", []string{"rust"})

	prefs, err := engine.UpdatePreferences(context.Background(), "u1")
	require.NoError(t, err)

	assert.InDelta(t, 1.0, prefs.TopicInterests["golang"], 1e-9)
	assert.Greater(t, prefs.TopicInterests["golang"], prefs.TopicInterests["rust"])
	for topic, weight := range prefs.TopicInterests {
		assert.LessOrEqual(t, weight, 1.0, "topic %s", topic)
		assert.GreaterOrEqual(t, weight, 0.0, "topic %s", topic)
	}
}

func TestEngine_UpdatePreferences_RecencyDecay(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	engine := NewEngine(store)

	// Older topic appears once at the front, newer topic once at the
	// back: the newer one must weigh more.
	seedInteraction(t, store, "u1", "first", []string{"older"})
	seedInteraction(t, store, "u1", "second", []string{"filler"})
	seedInteraction(t, store, "u1", "third", []string{"newer"})

	prefs, err := engine.UpdatePreferences(context.Background(), "u1")
	require.NoError(t, err)

	assert.InDelta(t, 1.0, prefs.TopicInterests["newer"], 1e-9)
	assert.Less(t, prefs.TopicInterests["older"], prefs.TopicInterests["newer"])
}

func TestEngine_UpdatePreferences_Idempotent(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	engine := NewEngine(store)

	seedInteraction(t, store, "u1", "about golang concurrency", []string{"golang", "concurrency"})
	seedInteraction(t, store, "u1", "more golang", []string{"golang"})

	first, err := engine.UpdatePreferences(context.Background(), "u1")
	require.NoError(t, err)
	second, err := engine.UpdatePreferences(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, first.TopicInterests, second.TopicInterests)
	assert.Equal(t, first.PreferredStyle, second.PreferredStyle)
	assert.Equal(t, first.InteractionCount, second.InteractionCount)
}

func TestEngine_UpdatePreferences_Verbosity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"short inputs read concise", "short one", VerbosityConcise},
		{"medium inputs read moderate", strings.Repeat("medium words here ", 5), VerbosityModerate},
		{"long inputs read detailed", strings.Repeat("this is a much longer message ", 10), VerbosityDetailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewMemoryStore()
			engine := NewEngine(store)
			seedInteraction(t, store, "u1", tt.input, []string{"x"})

			prefs, err := engine.UpdatePreferences(context.Background(), "u1")
			require.NoError(t, err)
			assert.Equal(t, tt.want, prefs.PreferredStyle.Verbosity)
		})
	}
}

func TestEngine_UpdatePreferences_EmptyHistoryPreservesStyle(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	engine := NewEngine(store)

	longInput := strings.Repeat("long detailed message content ", 10)
	seedInteraction(t, store, "u1", longInput, []string{"topic"})

	prefs, err := engine.UpdatePreferences(context.Background(), "u1")
	require.NoError(t, err)
	require.Equal(t, VerbosityDetailed, prefs.PreferredStyle.Verbosity)

	require.NoError(t, store.Clear(context.Background(), "u1"))

	prefs, err = engine.UpdatePreferences(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, VerbosityDetailed, prefs.PreferredStyle.Verbosity)
}

func TestEngine_UpdatePreferences_Formality(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	engine := NewEngine(store)
	seedInteraction(t, store, "u1", "hey dude, gonna check this out lol", []string{"x"})

	prefs, err := engine.UpdatePreferences(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, FormalityCasual, prefs.PreferredStyle.Formality)
}

func TestEngine_Preferences_UnknownUser(t *testing.T) {
	t.Parallel()

	engine := NewEngine(NewMemoryStore())
	assert.Nil(t, engine.Preferences("nobody"))
}

func TestEngine_Preferences_ReturnsCopy(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	engine := NewEngine(store)
	seedInteraction(t, store, "u1", "about golang", []string{"golang"})

	_, err := engine.UpdatePreferences(context.Background(), "u1")
	require.NoError(t, err)

	prefs := engine.Preferences("u1")
	prefs.TopicInterests["golang"] = 0

	fresh := engine.Preferences("u1")
	assert.InDelta(t, 1.0, fresh.TopicInterests["golang"], 1e-9)
}
