package selfupdate

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// minDescriptionLength is required by the description safety check.
const minDescriptionLength = 20

// Categories whose changes are inherently riskier than their graded risk.
var highRiskCategories = map[string]bool{
	"core":     true,
	"security": true,
}

// validTransitions is the explicit state machine. Anything not listed is
// an invalid transition and is refused with a nil return, never a panic.
var validTransitions = map[Status][]Status{
	StatusDiscovered:       {StatusAnalyzing, StatusRejected, StatusFailed},
	StatusAnalyzing:        {StatusTesting, StatusRejected, StatusFailed},
	StatusTesting:          {StatusAwaitingApproval, StatusRejected, StatusFailed},
	StatusAwaitingApproval: {StatusApproved, StatusRejected},
	StatusApproved:         {StatusApplied, StatusRejected, StatusFailed},
}

// Manager owns the proposal store and enforces transitions.
type Manager struct {
	mu        sync.Mutex
	config    Config
	proposals map[string]*Proposal
	log       *slog.Logger
	now       func() time.Time
}

// NewManager creates a Manager. Zero config fields take defaults.
func NewManager(config Config, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	if config.MaxPendingProposals <= 0 {
		config.MaxPendingProposals = DefaultConfig().MaxPendingProposals
	}

	return &Manager{
		config:    config,
		proposals: make(map[string]*Proposal),
		log:       log,
		now:       time.Now,
	}
}

// Discovery is the caller-supplied description of a candidate update.
type Discovery struct {
	Title       string
	Description string
	Category    string
	Source      string
	Impact      Level
	Risk        Level
}

// DiscoverUpdate registers a new proposal in the discovered state. It
// returns nil when the subsystem is disabled or the count of non-terminal
// proposals has reached the configured cap.
func (m *Manager) DiscoverUpdate(discovery Discovery) *Proposal {
	if !m.config.Enabled {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pendingCountLocked() >= m.config.MaxPendingProposals {
		m.log.Debug("proposal cap reached, discovery refused",
			"cap", m.config.MaxPendingProposals)
		return nil
	}

	now := m.now()
	proposal := &Proposal{
		ID:           "prop_" + uuid.NewString(),
		Title:        discovery.Title,
		Description:  discovery.Description,
		Category:     discovery.Category,
		Source:       discovery.Source,
		Status:       StatusDiscovered,
		Impact:       discovery.Impact,
		Risk:         discovery.Risk,
		DiscoveredAt: now,
		UpdatedAt:    now,
	}
	m.proposals[proposal.ID] = proposal

	cp := *proposal
	return &cp
}

// TransitionOptions carries optional data recorded with a transition.
type TransitionOptions struct {
	TestResults     *TestResults
	RejectionReason string
}

// UpdateProposalStatus attempts an explicit transition. Invalid transitions
// and unknown proposals return nil. Two policy shortcuts cascade within
// the same call: a transition into awaiting_approval is promoted straight
// to approved when approval is not required, and an approved low-risk
// proposal with passing tests is promoted to applied when auto-apply is
// on. Both promotions can fire in sequence.
func (m *Manager) UpdateProposalStatus(id string, target Status, opts *TransitionOptions) *Proposal {
	m.mu.Lock()
	defer m.mu.Unlock()

	proposal, ok := m.proposals[id]
	if !ok {
		return nil
	}
	if !transitionAllowed(proposal.Status, target) {
		m.log.Debug("invalid proposal transition refused",
			"proposal_id", id, "from", proposal.Status, "to", target)
		return nil
	}

	proposal.Status = target
	proposal.UpdatedAt = m.now()
	if opts != nil {
		if opts.TestResults != nil {
			results := *opts.TestResults
			proposal.TestResults = &results
		}
		if opts.RejectionReason != "" {
			proposal.RejectionReason = opts.RejectionReason
		}
	}

	m.applyPolicyPromotionsLocked(proposal)

	cp := *proposal
	if proposal.TestResults != nil {
		results := *proposal.TestResults
		cp.TestResults = &results
	}
	return &cp
}

func (m *Manager) applyPolicyPromotionsLocked(proposal *Proposal) {
	if proposal.Status == StatusAwaitingApproval && !m.config.RequireApproval {
		proposal.Status = StatusApproved
		m.log.Debug("proposal auto-approved", "proposal_id", proposal.ID)
	}

	if proposal.Status == StatusApproved &&
		m.config.AutoApplyLowRisk &&
		proposal.Risk == LevelLow &&
		proposal.TestResults != nil &&
		proposal.TestResults.Passed {
		proposal.Status = StatusApplied
		m.log.Debug("low-risk proposal auto-applied", "proposal_id", proposal.ID)
	}
}

// Proposal returns a copy of the proposal, or nil when unknown.
func (m *Manager) Proposal(id string) *Proposal {
	m.mu.Lock()
	defer m.mu.Unlock()

	proposal, ok := m.proposals[id]
	if !ok {
		return nil
	}

	cp := *proposal
	if proposal.TestResults != nil {
		results := *proposal.TestResults
		cp.TestResults = &results
	}
	return &cp
}

// PendingCount reports how many proposals are in a non-terminal state.
func (m *Manager) PendingCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pendingCountLocked()
}

func (m *Manager) pendingCountLocked() int {
	count := 0
	for _, proposal := range m.proposals {
		if !proposal.Status.IsTerminal() {
			count++
		}
	}
	return count
}

// RunSafetyCheck evaluates the four independent checks. Safe means every
// check passed. The report's risk level comes from the proposal itself:
// its graded risk, bumped one level for high-risk categories.
func (m *Manager) RunSafetyCheck(id string) (*SafetyReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	proposal, ok := m.proposals[id]
	if !ok {
		return nil, fmt.Errorf("safety check: proposal %s not found", id)
	}

	checks := []SafetyCheck{
		categoryRiskCheck(proposal),
		impactRatioCheck(proposal),
		testVerificationCheck(proposal),
		descriptionCheck(proposal),
	}

	safe := true
	for _, check := range checks {
		if !check.Passed {
			safe = false
			break
		}
	}

	return &SafetyReport{
		Safe:      safe,
		Checks:    checks,
		RiskLevel: deriveRiskLevel(proposal),
	}, nil
}

func categoryRiskCheck(proposal *Proposal) SafetyCheck {
	check := SafetyCheck{Name: "category_risk"}
	if highRiskCategories[proposal.Category] && proposal.Risk != LevelLow {
		check.Detail = fmt.Sprintf("category %q requires low graded risk", proposal.Category)
		return check
	}
	check.Passed = true
	return check
}

func impactRatioCheck(proposal *Proposal) SafetyCheck {
	check := SafetyCheck{Name: "impact_ratio"}
	if levelRank[proposal.Impact] < levelRank[proposal.Risk] {
		check.Detail = "impact does not justify risk"
		return check
	}
	check.Passed = true
	return check
}

func testVerificationCheck(proposal *Proposal) SafetyCheck {
	check := SafetyCheck{Name: "test_verification"}
	if proposal.TestResults == nil || !proposal.TestResults.Passed {
		check.Detail = "no passing test results recorded"
		return check
	}
	check.Passed = true
	return check
}

func descriptionCheck(proposal *Proposal) SafetyCheck {
	check := SafetyCheck{Name: "description"}
	if len(proposal.Description) < minDescriptionLength {
		check.Detail = fmt.Sprintf("description shorter than %d characters", minDescriptionLength)
		return check
	}
	check.Passed = true
	return check
}

func deriveRiskLevel(proposal *Proposal) Level {
	if !highRiskCategories[proposal.Category] {
		return proposal.Risk
	}
	switch proposal.Risk {
	case LevelLow:
		return LevelMedium
	default:
		return LevelHigh
	}
}

func transitionAllowed(from, to Status) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
