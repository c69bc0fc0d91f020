package config

import (
	"github.com/adalundhe/psyche/core/learning"
)

// Patches shallow-merge into the live snapshot: nil fields leave the
// current value alone, set fields replace it. Each Configure* call
// produces and publishes a fresh snapshot.

// LearningPatch is a partial learning config.
type LearningPatch struct {
	Enabled                *bool
	PrivacyLevel           *learning.PrivacyLevel
	MaxInteractionsPerUser *int
	TrackTopics            *bool
	EnableRecommendations  *bool
}

// ProactivePatch is a partial proactive config.
type ProactivePatch struct {
	Enabled               *bool
	DefaultMinRelevance   *float64
	MaxDailyNotifications *int
	AvailableChannels     []string
}

// SelfUpdatePatch is a partial self-update config.
type SelfUpdatePatch struct {
	Enabled             *bool
	AutoApplyLowRisk    *bool
	RequireApproval     *bool
	MaxPendingProposals *int
}

// ConfigureLearning merges the patch and publishes the new snapshot.
func (m *Manager) ConfigureLearning(patch LearningPatch) *Config {
	return m.mutate(func(cfg *Config) {
		if patch.Enabled != nil {
			cfg.Learning.Enabled = *patch.Enabled
		}
		if patch.PrivacyLevel != nil {
			cfg.Learning.PrivacyLevel = *patch.PrivacyLevel
		}
		if patch.MaxInteractionsPerUser != nil {
			cfg.Learning.MaxInteractionsPerUser = *patch.MaxInteractionsPerUser
		}
		if patch.TrackTopics != nil {
			cfg.Learning.TrackTopics = *patch.TrackTopics
		}
		if patch.EnableRecommendations != nil {
			cfg.Learning.EnableRecommendations = *patch.EnableRecommendations
		}
	})
}

// ConfigureProactive merges the patch and publishes the new snapshot.
func (m *Manager) ConfigureProactive(patch ProactivePatch) *Config {
	return m.mutate(func(cfg *Config) {
		if patch.Enabled != nil {
			cfg.Proactive.Enabled = *patch.Enabled
		}
		if patch.DefaultMinRelevance != nil {
			cfg.Proactive.DefaultMinRelevance = *patch.DefaultMinRelevance
		}
		if patch.MaxDailyNotifications != nil {
			cfg.Proactive.MaxDailyNotifications = *patch.MaxDailyNotifications
		}
		if patch.AvailableChannels != nil {
			cfg.Proactive.AvailableChannels = append([]string(nil), patch.AvailableChannels...)
		}
	})
}

// ConfigureSelfUpdate merges the patch and publishes the new snapshot.
func (m *Manager) ConfigureSelfUpdate(patch SelfUpdatePatch) *Config {
	return m.mutate(func(cfg *Config) {
		if patch.Enabled != nil {
			cfg.SelfUpdate.Enabled = *patch.Enabled
		}
		if patch.AutoApplyLowRisk != nil {
			cfg.SelfUpdate.AutoApplyLowRisk = *patch.AutoApplyLowRisk
		}
		if patch.RequireApproval != nil {
			cfg.SelfUpdate.RequireApproval = *patch.RequireApproval
		}
		if patch.MaxPendingProposals != nil {
			cfg.SelfUpdate.MaxPendingProposals = *patch.MaxPendingProposals
		}
	})
}

// mutate copies the current snapshot, applies fn, stores and announces
// the result. Copy-then-swap keeps concurrent readers consistent.
func (m *Manager) mutate(fn func(*Config)) *Config {
	current := m.configPtr.Load()
	next := *current
	next.Proactive.AvailableChannels = append([]string(nil), current.Proactive.AvailableChannels...)

	fn(&next)

	m.configPtr.Store(&next)
	m.notifyWatchers(&next)
	return &next
}

// Helpers for building patches inline.

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }

// Int returns a pointer to n.
func Int(n int) *int { return &n }

// Float returns a pointer to f.
func Float(f float64) *float64 { return &f }

// Privacy returns a pointer to level.
func Privacy(level learning.PrivacyLevel) *learning.PrivacyLevel { return &level }
