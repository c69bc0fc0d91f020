package selfupdate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lowRiskDiscovery() Discovery {
	return Discovery{
		Title:       "Refresh keyword lists",
		Description: "Update the intent keyword lists from recent traffic",
		Category:    "heuristics",
		Source:      "telemetry",
		Impact:      LevelMedium,
		Risk:        LevelLow,
	}
}

func passingResults() *TestResults {
	return &TestResults{Passed: true, Summary: "all green", RanAt: time.Now()}
}

func advanceToAwaiting(t *testing.T, m *Manager, id string, results *TestResults) *Proposal {
	t.Helper()

	require.NotNil(t, m.UpdateProposalStatus(id, StatusAnalyzing, nil))
	require.NotNil(t, m.UpdateProposalStatus(id, StatusTesting, nil))
	proposal := m.UpdateProposalStatus(id, StatusAwaitingApproval, &TransitionOptions{TestResults: results})
	require.NotNil(t, proposal)
	return proposal
}

func TestManager_DiscoverUpdate(t *testing.T) {
	t.Parallel()

	m := NewManager(DefaultConfig(), nil)

	proposal := m.DiscoverUpdate(lowRiskDiscovery())
	require.NotNil(t, proposal)
	assert.Equal(t, StatusDiscovered, proposal.Status)
	assert.NotEmpty(t, proposal.ID)
	assert.Equal(t, 1, m.PendingCount())
}

func TestManager_DiscoverUpdate_Disabled(t *testing.T) {
	t.Parallel()

	config := DefaultConfig()
	config.Enabled = false
	m := NewManager(config, nil)

	assert.Nil(t, m.DiscoverUpdate(lowRiskDiscovery()))
}

func TestManager_DiscoverUpdate_CapOnPending(t *testing.T) {
	t.Parallel()

	config := DefaultConfig()
	config.MaxPendingProposals = 2
	m := NewManager(config, nil)

	require.NotNil(t, m.DiscoverUpdate(lowRiskDiscovery()))
	second := m.DiscoverUpdate(lowRiskDiscovery())
	require.NotNil(t, second)
	assert.Nil(t, m.DiscoverUpdate(lowRiskDiscovery()))

	// Moving a proposal into a terminal state frees capacity.
	require.NotNil(t, m.UpdateProposalStatus(second.ID, StatusRejected,
		&TransitionOptions{RejectionReason: "superseded"}))
	assert.NotNil(t, m.DiscoverUpdate(lowRiskDiscovery()))
}

func TestManager_UpdateProposalStatus_ValidPath(t *testing.T) {
	t.Parallel()

	m := NewManager(DefaultConfig(), nil)
	proposal := m.DiscoverUpdate(lowRiskDiscovery())

	updated := advanceToAwaiting(t, m, proposal.ID, passingResults())
	assert.Equal(t, StatusAwaitingApproval, updated.Status)
	require.NotNil(t, updated.TestResults)
	assert.True(t, updated.TestResults.Passed)
}

func TestManager_UpdateProposalStatus_InvalidTransition(t *testing.T) {
	t.Parallel()

	m := NewManager(DefaultConfig(), nil)
	proposal := m.DiscoverUpdate(lowRiskDiscovery())

	// discovered cannot jump straight to approved or applied.
	assert.Nil(t, m.UpdateProposalStatus(proposal.ID, StatusApproved, nil))
	assert.Nil(t, m.UpdateProposalStatus(proposal.ID, StatusApplied, nil))

	// Refusal leaves state untouched.
	assert.Equal(t, StatusDiscovered, m.Proposal(proposal.ID).Status)
}

func TestManager_UpdateProposalStatus_UnknownProposal(t *testing.T) {
	t.Parallel()

	m := NewManager(DefaultConfig(), nil)
	assert.Nil(t, m.UpdateProposalStatus("prop_missing", StatusAnalyzing, nil))
}

func TestManager_Cascade_FullAutoApply(t *testing.T) {
	t.Parallel()

	config := DefaultConfig()
	config.AutoApplyLowRisk = true
	config.RequireApproval = false
	m := NewManager(config, nil)

	proposal := m.DiscoverUpdate(lowRiskDiscovery())
	updated := advanceToAwaiting(t, m, proposal.ID, passingResults())

	// awaiting_approval -> approved -> applied in one call.
	assert.Equal(t, StatusApplied, updated.Status)
}

func TestManager_Cascade_MediumRiskStopsAtApproved(t *testing.T) {
	t.Parallel()

	config := DefaultConfig()
	config.AutoApplyLowRisk = true
	config.RequireApproval = false
	m := NewManager(config, nil)

	discovery := lowRiskDiscovery()
	discovery.Risk = LevelMedium
	proposal := m.DiscoverUpdate(discovery)
	updated := advanceToAwaiting(t, m, proposal.ID, passingResults())

	assert.Equal(t, StatusApproved, updated.Status)
}

func TestManager_Cascade_FailingTestsStopAtApproved(t *testing.T) {
	t.Parallel()

	config := DefaultConfig()
	config.AutoApplyLowRisk = true
	config.RequireApproval = false
	m := NewManager(config, nil)

	proposal := m.DiscoverUpdate(lowRiskDiscovery())
	failing := &TestResults{Passed: false, RanAt: time.Now()}
	updated := advanceToAwaiting(t, m, proposal.ID, failing)

	assert.Equal(t, StatusApproved, updated.Status)
}

func TestManager_Cascade_ApprovalStillRequired(t *testing.T) {
	t.Parallel()

	config := DefaultConfig()
	config.AutoApplyLowRisk = true
	m := NewManager(config, nil)

	proposal := m.DiscoverUpdate(lowRiskDiscovery())
	updated := advanceToAwaiting(t, m, proposal.ID, passingResults())
	require.Equal(t, StatusAwaitingApproval, updated.Status)

	// Explicit approval then triggers the auto-apply promotion.
	approved := m.UpdateProposalStatus(proposal.ID, StatusApproved, nil)
	require.NotNil(t, approved)
	assert.Equal(t, StatusApplied, approved.Status)
}

func TestManager_RunSafetyCheck_AllPass(t *testing.T) {
	t.Parallel()

	m := NewManager(DefaultConfig(), nil)
	proposal := m.DiscoverUpdate(lowRiskDiscovery())
	advanceToAwaiting(t, m, proposal.ID, passingResults())

	report, err := m.RunSafetyCheck(proposal.ID)
	require.NoError(t, err)

	assert.True(t, report.Safe)
	assert.Len(t, report.Checks, 4)
	assert.Equal(t, LevelLow, report.RiskLevel)
}

func TestManager_RunSafetyCheck_FailsWithoutTests(t *testing.T) {
	t.Parallel()

	m := NewManager(DefaultConfig(), nil)
	proposal := m.DiscoverUpdate(lowRiskDiscovery())

	report, err := m.RunSafetyCheck(proposal.ID)
	require.NoError(t, err)
	assert.False(t, report.Safe)
}

func TestManager_RunSafetyCheck_ShortDescription(t *testing.T) {
	t.Parallel()

	m := NewManager(DefaultConfig(), nil)
	discovery := lowRiskDiscovery()
	discovery.Description = "too short"
	proposal := m.DiscoverUpdate(discovery)
	advanceToAwaiting(t, m, proposal.ID, passingResults())

	report, err := m.RunSafetyCheck(proposal.ID)
	require.NoError(t, err)
	assert.False(t, report.Safe)
}

func TestManager_RunSafetyCheck_ImpactBelowRisk(t *testing.T) {
	t.Parallel()

	m := NewManager(DefaultConfig(), nil)
	discovery := lowRiskDiscovery()
	discovery.Impact = LevelLow
	discovery.Risk = LevelHigh
	proposal := m.DiscoverUpdate(discovery)
	advanceToAwaiting(t, m, proposal.ID, passingResults())

	report, err := m.RunSafetyCheck(proposal.ID)
	require.NoError(t, err)
	assert.False(t, report.Safe)
}

func TestManager_RunSafetyCheck_RiskLevelFromCategory(t *testing.T) {
	t.Parallel()

	m := NewManager(DefaultConfig(), nil)
	discovery := lowRiskDiscovery()
	discovery.Category = "security"
	proposal := m.DiscoverUpdate(discovery)

	report, err := m.RunSafetyCheck(proposal.ID)
	require.NoError(t, err)
	assert.Equal(t, LevelMedium, report.RiskLevel)
}

func TestManager_RunSafetyCheck_UnknownProposal(t *testing.T) {
	t.Parallel()

	m := NewManager(DefaultConfig(), nil)
	_, err := m.RunSafetyCheck("prop_missing")
	assert.Error(t, err)
}

func TestManager_Proposal_ReturnsCopy(t *testing.T) {
	t.Parallel()

	m := NewManager(DefaultConfig(), nil)
	proposal := m.DiscoverUpdate(lowRiskDiscovery())

	cp := m.Proposal(proposal.ID)
	cp.Status = StatusApplied

	assert.Equal(t, StatusDiscovered, m.Proposal(proposal.ID).Status)
}
