package orchestrator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adalundhe/psyche/core/emotion"
	"github.com/adalundhe/psyche/core/learning"
	"github.com/adalundhe/psyche/core/llm"
	"github.com/adalundhe/psyche/core/proactive"
	"github.com/adalundhe/psyche/faculties"
)

func newTestOrchestrator(t *testing.T) (*Orchestrator, *proactive.SubscriptionStore) {
	t.Helper()

	tracker, err := emotion.NewTracker(emotion.NewAnalyzer(emotion.DefaultLexicon()), emotion.DefaultTrackerConfig())
	require.NoError(t, err)

	store := learning.NewMemoryStore()
	engine := learning.NewEngine(store)
	subscriptions := proactive.NewSubscriptionStore()

	router, err := faculties.NewRouter(faculties.RouterConfig{})
	require.NoError(t, err)
	t.Cleanup(router.Close)

	orch, err := New(Deps{
		Tracker:       tracker,
		Logger:        learning.NewLogger(store, learning.DefaultConfig(), nil),
		Engine:        engine,
		Recommender:   learning.NewRecommender(engine, learning.DefaultConfig()),
		Subscriptions: subscriptions,
		Dispatcher:    proactive.NewDispatcher(proactive.DefaultConfig(), nil),
		Router:        router,
	})
	require.NoError(t, err)
	return orch, subscriptions
}

func TestProcessMessageFullPipeline(t *testing.T) {
	t.Parallel()

	orch, _ := newTestOrchestrator(t)

	result, err := orch.ProcessMessage(context.Background(), Request{
		Input:      "I am so happy today!",
		UserID:     "user-1",
		SessionKey: "session-1",
	})
	require.NoError(t, err)

	require.NotNil(t, result.Emotion)
	assert.Equal(t, emotion.SentimentPositive, result.Emotion.Sentiment)
	assert.Equal(t, emotion.LabelJoy, result.Emotion.Dominant)

	assert.Equal(t, llm.ComplexitySimple, result.Complexity)
	assert.Nil(t, result.ModelSelection)

	require.NotNil(t, result.Interaction)
	assert.Equal(t, "user-1", result.Interaction.UserID)

	require.NotNil(t, result.Preferences)
	assert.Equal(t, 1, result.Preferences.InteractionCount)

	assert.Equal(t, ToneEnthusiastic, result.Hints.Tone)
	assert.Equal(t, faculties.FacultyNone, result.Activation.Faculty)
	assert.Nil(t, result.FacultyResult)
}

func TestProcessMessageValidation(t *testing.T) {
	t.Parallel()

	orch, _ := newTestOrchestrator(t)
	ctx := context.Background()

	_, err := orch.ProcessMessage(ctx, Request{UserID: "user-1"})
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = orch.ProcessMessage(ctx, Request{Input: "hello"})
	assert.ErrorIs(t, err, ErrEmptyUserID)
}

func TestProcessMessageSelectsModelWhenGiven(t *testing.T) {
	t.Parallel()

	orch, _ := newTestOrchestrator(t)

	result, err := orch.ProcessMessage(context.Background(), Request{
		Input:  "hello",
		UserID: "user-1",
		Models: []llm.ModelInfo{
			{Name: "big", SizeBytes: 9_000_000_000},
			{Name: "small", SizeBytes: 1_000_000_000},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, llm.ComplexitySimple, result.Complexity)
	require.NotNil(t, result.ModelSelection)
	assert.Equal(t, "small", result.ModelSelection.Model)
}

func TestProcessMessageUnroutedInput(t *testing.T) {
	t.Parallel()

	orch, _ := newTestOrchestrator(t)

	result, err := orch.ProcessMessage(context.Background(), Request{
		Input:  "What's the weather today?",
		UserID: "user-1",
	})
	require.NoError(t, err)
	assert.Equal(t, faculties.FacultyNone, result.Activation.Faculty)
	assert.Nil(t, result.FacultyResult)
}

func TestProcessMessageRoutesToFaculty(t *testing.T) {
	t.Parallel()

	orch, _ := newTestOrchestrator(t)

	result, err := orch.ProcessMessage(context.Background(), Request{
		Input:  "My email is john@example.com and phone is 555-1234",
		UserID: "user-1",
	})
	require.NoError(t, err)

	assert.Equal(t, faculties.FacultyPrivacy, result.Activation.Faculty)
	require.NotNil(t, result.FacultyResult)
	assert.True(t, result.FacultyResult.Success)
}

func TestProcessMessageGeneratesRecommendationsAndNotifications(t *testing.T) {
	t.Parallel()

	orch, subscriptions := newTestOrchestrator(t)
	ctx := context.Background()

	subscriptions.Upsert(proactive.Subscription{
		UserID:       "user-1",
		OptedIn:      true,
		Channels:     []string{"chat"},
		TopicFilters: []string{"kubernetes"},
		MinRelevance: 0.1,
	})

	catalog := []learning.ContentItem{
		{ID: "c1", Title: "Kubernetes deep dive", Topics: []string{"kubernetes"}},
		{ID: "c2", Title: "Baking focaccia", Topics: []string{"baking"}},
	}

	// Seed an interest before expecting catalog matches.
	_, err := orch.ProcessMessage(ctx, Request{
		Input:  "kubernetes kubernetes cluster upgrades keep failing on the kubernetes nodes",
		UserID: "user-1",
	})
	require.NoError(t, err)

	result, err := orch.ProcessMessage(ctx, Request{
		Input:   "tell me more about kubernetes operators and kubernetes controllers",
		UserID:  "user-1",
		Catalog: catalog,
	})
	require.NoError(t, err)

	require.NotEmpty(t, result.Recommendations)
	assert.Equal(t, "c1", result.Recommendations[0].ID)

	require.NotEmpty(t, result.Notifications)
	assert.Equal(t, "Kubernetes deep dive", result.Notifications[0].Title)
	assert.Equal(t, "chat", result.Notifications[0].Channel)
}

func TestProcessMessageRecommendationsKeepRelevanceFloor(t *testing.T) {
	t.Parallel()

	orch, _ := newTestOrchestrator(t)
	ctx := context.Background()

	// A mostly-unrelated item: one matching topic out of twelve puts
	// its relevance near 0.083, below the recommender's 0.1 floor.
	diluted := []string{
		"kubernetes", "pottery", "orchids", "falconry", "origami",
		"juggling", "numismatics", "calligraphy", "bonsai", "topiary",
		"quilting", "spelunking",
	}

	_, err := orch.ProcessMessage(ctx, Request{
		Input:  "kubernetes kubernetes kubernetes",
		UserID: "user-1",
	})
	require.NoError(t, err)

	result, err := orch.ProcessMessage(ctx, Request{
		Input:  "kubernetes",
		UserID: "user-1",
		Catalog: []learning.ContentItem{
			{ID: "c1", Title: "Kubernetes networking", Topics: []string{"kubernetes"}},
			{ID: "c2", Title: "A hobbyist miscellany", Topics: diluted},
		},
	})
	require.NoError(t, err)

	require.Len(t, result.Recommendations, 1)
	assert.Equal(t, "c1", result.Recommendations[0].ID)
}

func TestProcessMessageNegativeTrendUpgradesTone(t *testing.T) {
	t.Parallel()

	orch, _ := newTestOrchestrator(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := orch.ProcessMessage(ctx, Request{
			Input:      "this is terrible and sad, I feel awful",
			UserID:     "user-1",
			SessionKey: "session-1",
		})
		require.NoError(t, err)
	}

	// A trusting message alone maps to encouraging, but the negative
	// session trend wins.
	result, err := orch.ProcessMessage(ctx, Request{
		Input:      "I trust you to help",
		UserID:     "user-1",
		SessionKey: "session-1",
	})
	require.NoError(t, err)
	assert.Equal(t, ToneEmpathetic, result.Hints.Tone)
}

func TestProcessMessageSessionKeyDefaultsToUserID(t *testing.T) {
	t.Parallel()

	orch, _ := newTestOrchestrator(t)

	result, err := orch.ProcessMessage(context.Background(), Request{
		Input:  "hello there friend",
		UserID: "user-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "user-1", result.EmotionalContext.SessionKey)
}

func TestNewRequiresTrackerAndRouter(t *testing.T) {
	t.Parallel()

	_, err := New(Deps{})
	require.Error(t, err)

	router, err := faculties.NewRouter(faculties.RouterConfig{})
	require.NoError(t, err)
	defer router.Close()

	_, err = New(Deps{Router: router})
	require.Error(t, err)
}
