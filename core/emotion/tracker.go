package emotion

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	// DefaultWindowSize bounds the per-session analysis history.
	DefaultWindowSize = 10

	// DefaultTrendWindow is how many recent analyses the trend inspects.
	DefaultTrendWindow = 5

	// DefaultMaxSessions caps concurrently tracked sessions. Least
	// recently active sessions evict first.
	DefaultMaxSessions = 1024
)

// TrackerConfig configures the emotional context tracker.
type TrackerConfig struct {
	WindowSize  int `yaml:"window_size"`
	TrendWindow int `yaml:"trend_window"`
	MaxSessions int `yaml:"max_sessions"`
}

// DefaultTrackerConfig returns the default tracker configuration.
func DefaultTrackerConfig() TrackerConfig {
	return TrackerConfig{
		WindowSize:  DefaultWindowSize,
		TrendWindow: DefaultTrendWindow,
		MaxSessions: DefaultMaxSessions,
	}
}

// Tracker maintains a bounded rolling window of emotion analyses per
// session and derives a sentiment trend from the most recent entries.
type Tracker struct {
	mu       sync.Mutex
	analyzer *Analyzer
	sessions *lru.Cache[string, *sessionState]
	config   TrackerConfig
}

type sessionState struct {
	history []Analysis
}

// NewTracker creates a Tracker. Zero config fields take defaults; a nil
// analyzer gets the default lexicon.
func NewTracker(analyzer *Analyzer, config TrackerConfig) (*Tracker, error) {
	if analyzer == nil {
		analyzer = NewAnalyzer(nil)
	}
	if config.WindowSize <= 0 {
		config.WindowSize = DefaultWindowSize
	}
	if config.TrendWindow <= 0 {
		config.TrendWindow = DefaultTrendWindow
	}
	if config.MaxSessions <= 0 {
		config.MaxSessions = DefaultMaxSessions
	}

	sessions, err := lru.New[string, *sessionState](config.MaxSessions)
	if err != nil {
		return nil, err
	}

	return &Tracker{
		analyzer: analyzer,
		sessions: sessions,
		config:   config,
	}, nil
}

// ProcessMessage analyzes the text, appends the analysis to the session's
// window (evicting the oldest entry past the window size), and returns a
// snapshot of the updated context.
func (t *Tracker) ProcessMessage(sessionKey, text string) *Context {
	analysis := t.analyzer.Analyze(text)

	t.mu.Lock()
	defer t.mu.Unlock()

	state, ok := t.sessions.Get(sessionKey)
	if !ok {
		state = &sessionState{}
		t.sessions.Add(sessionKey, state)
	}

	state.history = append(state.history, analysis)
	if len(state.history) > t.config.WindowSize {
		state.history = state.history[len(state.history)-t.config.WindowSize:]
	}

	return t.snapshot(sessionKey, state)
}

// Context returns the current context for a session, or nil when the
// session is unknown.
func (t *Tracker) Context(sessionKey string) *Context {
	t.mu.Lock()
	defer t.mu.Unlock()

	state, ok := t.sessions.Get(sessionKey)
	if !ok {
		return nil
	}
	return t.snapshot(sessionKey, state)
}

// Clear drops a session's history. Unknown sessions are a no-op.
func (t *Tracker) Clear(sessionKey string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sessions.Remove(sessionKey)
}

// Len reports how many sessions are currently tracked.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sessions.Len()
}

func (t *Tracker) snapshot(sessionKey string, state *sessionState) *Context {
	history := make([]Analysis, len(state.history))
	for i, analysis := range state.history {
		scores := make(map[Label]float64, len(analysis.Scores))
		for label, score := range analysis.Scores {
			scores[label] = score
		}
		analysis.Scores = scores
		history[i] = analysis
	}

	return &Context{
		SessionKey: sessionKey,
		History:    history,
		Trend:      computeTrend(history, t.config.TrendWindow),
	}
}

// computeTrend inspects the most recent window entries. A strict majority
// of positive or negative sentiments sets the trend; an exact tie between
// nonzero counts is mixed; everything else is neutral.
func computeTrend(history []Analysis, window int) Trend {
	if len(history) == 0 {
		return TrendNeutral
	}
	if window < len(history) {
		history = history[len(history)-window:]
	}

	positive := 0
	negative := 0
	for _, analysis := range history {
		switch analysis.Sentiment {
		case SentimentPositive:
			positive++
		case SentimentNegative:
			negative++
		}
	}

	switch {
	case positive > negative:
		return TrendPositive
	case negative > positive:
		return TrendNegative
	case positive > 0:
		return TrendMixed
	default:
		return TrendNeutral
	}
}
