// Package orchestrator composes the cognitive pipeline: every inbound
// message flows through emotion tracking, complexity classification,
// interaction logging, preference learning, proactive matching, hint
// synthesis, and faculty routing, in that fixed order.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/adalundhe/psyche/core/emotion"
	"github.com/adalundhe/psyche/core/learning"
	"github.com/adalundhe/psyche/core/llm"
	"github.com/adalundhe/psyche/core/proactive"
	"github.com/adalundhe/psyche/faculties"
)

var (
	ErrEmptyInput  = errors.New("orchestrator: input is empty")
	ErrEmptyUserID = errors.New("orchestrator: userID is required")
)

// Deps are the pipeline stages. Tracker and Router are required; the
// learning and proactive stages degrade to no-ops when their dependency
// is nil.
type Deps struct {
	Tracker       *emotion.Tracker
	Logger        *learning.Logger
	Engine        *learning.Engine
	Recommender   *learning.Recommender
	Subscriptions *proactive.SubscriptionStore
	Dispatcher    *proactive.Dispatcher
	Router        *faculties.Router

	Log *slog.Logger
}

// Orchestrator runs the fixed message-processing pipeline.
type Orchestrator struct {
	deps Deps
	log  *slog.Logger
}

// New validates the required stages and builds the orchestrator.
func New(deps Deps) (*Orchestrator, error) {
	if deps.Tracker == nil {
		return nil, errors.New("orchestrator: emotion tracker is required")
	}
	if deps.Router == nil {
		return nil, errors.New("orchestrator: faculty router is required")
	}

	log := deps.Log
	if log == nil {
		log = slog.Default()
	}

	return &Orchestrator{deps: deps, log: log}, nil
}

// ProcessMessage runs the full pipeline for one message. Stage order is
// fixed; later stages see the outputs of earlier ones (preferences feed
// notification matching and hints, emotion feeds hints).
func (o *Orchestrator) ProcessMessage(ctx context.Context, req Request) (*Result, error) {
	if req.Input == "" {
		return nil, ErrEmptyInput
	}
	if req.UserID == "" {
		return nil, ErrEmptyUserID
	}

	sessionKey := req.SessionKey
	if sessionKey == "" {
		sessionKey = req.UserID
	}

	result := &Result{}

	emotionalContext := o.deps.Tracker.ProcessMessage(sessionKey, req.Input)
	result.EmotionalContext = emotionalContext
	if len(emotionalContext.History) > 0 {
		latest := emotionalContext.History[len(emotionalContext.History)-1]
		result.Emotion = &latest
	}

	result.Complexity = llm.ClassifyTaskComplexity(req.Input)
	if req.Models != nil {
		selection := llm.SelectModelForTask(req.Models, result.Complexity)
		result.ModelSelection = &selection
	}

	if o.deps.Logger != nil {
		interaction, err := o.deps.Logger.LogInteraction(ctx, req.UserID, req.Input, "", &learning.LogOptions{
			Channel: req.Channel,
		})
		if err != nil {
			return nil, fmt.Errorf("logging interaction: %w", err)
		}
		result.Interaction = interaction
	}

	if o.deps.Engine != nil {
		prefs, err := o.deps.Engine.UpdatePreferences(ctx, req.UserID)
		if err != nil {
			return nil, fmt.Errorf("updating preferences: %w", err)
		}
		result.Preferences = prefs
	}

	if o.deps.Recommender != nil && len(req.Catalog) > 0 {
		// Negative minRelevance asks for the recommender's own floor;
		// zero would be an explicit "no filtering".
		result.Recommendations = o.deps.Recommender.Generate(ctx, req.UserID, req.Catalog, 0, -1)
	}

	notifications, err := o.dispatchProactive(ctx, req, result.Preferences)
	if err != nil {
		return nil, err
	}
	result.Notifications = notifications

	result.Hints = synthesizeHints(emotionalContext, result.Preferences)

	activation, facultyResult := o.deps.Router.Execute(ctx, faculties.Request{
		Input:      req.Input,
		UserID:     req.UserID,
		SessionKey: sessionKey,
	})
	result.Activation = activation
	result.FacultyResult = facultyResult

	o.log.Debug("message processed",
		"user_id", req.UserID,
		"session_key", sessionKey,
		"complexity", result.Complexity,
		"faculty", activation.Faculty,
		"notifications", len(result.Notifications),
	)

	return result, nil
}

// dispatchProactive generates notifications when a subscribed, opted-in
// user has a catalog to match against. Interests come from the freshly
// updated preferences so matching reflects this very message.
func (o *Orchestrator) dispatchProactive(ctx context.Context, req Request, prefs *learning.UserPreferences) ([]proactive.Notification, error) {
	if o.deps.Subscriptions == nil || o.deps.Dispatcher == nil || len(req.Catalog) == 0 {
		return nil, nil
	}

	sub := o.deps.Subscriptions.Get(req.UserID)
	if sub == nil || !sub.OptedIn {
		return nil, nil
	}

	var interests map[string]float64
	if prefs != nil {
		interests = prefs.TopicInterests
	}

	notifications, err := o.deps.Dispatcher.Dispatch(ctx, sub, req.Catalog, interests)
	if err != nil {
		return nil, fmt.Errorf("dispatching notifications: %w", err)
	}
	return notifications, nil
}
