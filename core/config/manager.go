// Package config aggregates the per-subsystem configuration into one
// process-wide snapshot. The snapshot is replaced atomically: readers
// always see a complete config, never a half-applied one. Sources stack
// as defaults, then the YAML file, then environment overrides, then any
// Configure* patches applied at runtime.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"gopkg.in/yaml.v3"

	"github.com/adalundhe/psyche/core/emotion"
	"github.com/adalundhe/psyche/core/learning"
	"github.com/adalundhe/psyche/core/proactive"
	"github.com/adalundhe/psyche/core/selfupdate"
)

// RoutingConfig controls the faculty router.
type RoutingConfig struct {
	CacheDecisions    bool `yaml:"cache_decisions"`
	ClassifierEnabled bool `yaml:"classifier_enabled"`
}

// Config is the full cognitive-layer configuration.
type Config struct {
	Emotion    emotion.TrackerConfig `yaml:"emotion"`
	Learning   learning.Config       `yaml:"learning"`
	Proactive  proactive.Config      `yaml:"proactive"`
	SelfUpdate selfupdate.Config     `yaml:"self_update"`
	Routing    RoutingConfig         `yaml:"routing"`
}

// DefaultConfig assembles the documented per-subsystem defaults.
func DefaultConfig() *Config {
	return &Config{
		Emotion:    emotion.DefaultTrackerConfig(),
		Learning:   learning.DefaultConfig(),
		Proactive:  proactive.DefaultConfig(),
		SelfUpdate: selfupdate.DefaultConfig(),
		Routing: RoutingConfig{
			CacheDecisions: true,
		},
	}
}

// Manager owns the current config snapshot and its reload lifecycle.
type Manager struct {
	configPtr atomic.Pointer[Config]
	path      string

	watchers  []func(*Config)
	watcherMu sync.RWMutex

	stopWatch chan struct{}
	watchOnce sync.Once
}

// NewManager creates a manager for an optional YAML file path. An empty
// path means defaults plus environment only.
func NewManager(path string) *Manager {
	m := &Manager{
		path:      path,
		stopWatch: make(chan struct{}),
	}
	m.configPtr.Store(DefaultConfig())
	return m
}

// Get returns the current snapshot. The returned pointer must be treated
// as read-only; use the Configure* methods to change settings.
func (m *Manager) Get() *Config {
	return m.configPtr.Load()
}

// Load rebuilds the snapshot from defaults, file, and environment.
func (m *Manager) Load() error {
	cfg := DefaultConfig()

	if err := m.loadYAMLFile(cfg); err != nil {
		return fmt.Errorf("config file: %w", err)
	}
	applyEnvironment(cfg)

	m.configPtr.Store(cfg)
	m.notifyWatchers(cfg)
	return nil
}

// Reload is Load; it exists so the file watcher reads naturally.
func (m *Manager) Reload() error {
	return m.Load()
}

func (m *Manager) loadYAMLFile(cfg *Config) error {
	if m.path == "" {
		return nil
	}

	data, err := os.ReadFile(m.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, cfg)
}

// applyEnvironment overrides a small set of operationally useful knobs.
func applyEnvironment(cfg *Config) {
	if v := os.Getenv("PSYCHE_LEARNING_ENABLED"); v != "" {
		cfg.Learning.Enabled = parseBool(v)
	}
	if v := os.Getenv("PSYCHE_LEARNING_PRIVACY_LEVEL"); v != "" {
		cfg.Learning.PrivacyLevel = learning.PrivacyLevel(strings.ToLower(v))
	}
	if v := os.Getenv("PSYCHE_LEARNING_MAX_INTERACTIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Learning.MaxInteractionsPerUser = n
		}
	}
	if v := os.Getenv("PSYCHE_PROACTIVE_ENABLED"); v != "" {
		cfg.Proactive.Enabled = parseBool(v)
	}
	if v := os.Getenv("PSYCHE_PROACTIVE_MAX_DAILY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Proactive.MaxDailyNotifications = n
		}
	}
	if v := os.Getenv("PSYCHE_SELFUPDATE_ENABLED"); v != "" {
		cfg.SelfUpdate.Enabled = parseBool(v)
	}
	if v := os.Getenv("PSYCHE_SELFUPDATE_AUTO_APPLY_LOW_RISK"); v != "" {
		cfg.SelfUpdate.AutoApplyLowRisk = parseBool(v)
	}
	if v := os.Getenv("PSYCHE_ROUTING_CACHE_DECISIONS"); v != "" {
		cfg.Routing.CacheDecisions = parseBool(v)
	}
}

// OnChange registers a callback invoked after every snapshot replacement.
func (m *Manager) OnChange(fn func(*Config)) {
	m.watcherMu.Lock()
	m.watchers = append(m.watchers, fn)
	m.watcherMu.Unlock()
}

func (m *Manager) notifyWatchers(cfg *Config) {
	m.watcherMu.RLock()
	watchers := m.watchers
	m.watcherMu.RUnlock()

	for _, fn := range watchers {
		fn(cfg)
	}
}

// Close stops the file watcher if one is running.
func (m *Manager) Close() error {
	m.watchOnce.Do(func() {
		close(m.stopWatch)
	})
	return nil
}

func parseBool(v string) bool {
	return strings.ToLower(v) == "true" || v == "1"
}
