// Package selfupdate tracks candidate self-improvement proposals through a
// fixed discovery → testing → approval → application state machine.
package selfupdate

import "time"

// Status is a proposal's lifecycle state.
type Status string

const (
	StatusDiscovered       Status = "discovered"
	StatusAnalyzing        Status = "analyzing"
	StatusTesting          Status = "testing"
	StatusAwaitingApproval Status = "awaiting_approval"
	StatusApproved         Status = "approved"
	StatusApplied          Status = "applied"
	StatusRejected         Status = "rejected"
	StatusFailed           Status = "failed"
)

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusApplied, StatusRejected, StatusFailed:
		return true
	default:
		return false
	}
}

// Level grades impact and risk.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

var levelRank = map[Level]int{
	LevelLow:    1,
	LevelMedium: 2,
	LevelHigh:   3,
}

// TestResults records the outcome of validating a proposal.
type TestResults struct {
	Passed  bool      `json:"passed"`
	Summary string    `json:"summary,omitempty"`
	RanAt   time.Time `json:"ran_at"`
}

// Proposal is one tracked candidate improvement.
type Proposal struct {
	ID              string       `json:"id"`
	Title           string       `json:"title"`
	Description     string       `json:"description"`
	Category        string       `json:"category"`
	Source          string       `json:"source,omitempty"`
	Status          Status       `json:"status"`
	Impact          Level        `json:"impact"`
	Risk            Level        `json:"risk"`
	DiscoveredAt    time.Time    `json:"discovered_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
	TestResults     *TestResults `json:"test_results,omitempty"`
	RejectionReason string       `json:"rejection_reason,omitempty"`
}

// SafetyCheck is one independent evaluation inside a safety report.
type SafetyCheck struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail,omitempty"`
}

// SafetyReport is the outcome of running all safety checks. RiskLevel is
// derived from the proposal's own risk and category, not from the check
// outcomes.
type SafetyReport struct {
	Safe      bool          `json:"safe"`
	Checks    []SafetyCheck `json:"checks"`
	RiskLevel Level         `json:"risk_level"`
}

// Config configures the self-update subsystem.
type Config struct {
	Enabled             bool `yaml:"enabled"`
	AutoApplyLowRisk    bool `yaml:"auto_apply_low_risk"`
	RequireApproval     bool `yaml:"require_approval"`
	MaxPendingProposals int  `yaml:"max_pending_proposals"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		Enabled:             true,
		AutoApplyLowRisk:    false,
		RequireApproval:     true,
		MaxPendingProposals: 10,
	}
}
