package faculties

import (
	"context"
)

var simulatorKeywords = []string{
	"simulate", "simulation", "what if", "what would happen",
	"hypothetical", "scenario", "dry run", "play out", "model the outcome",
}

// simulatorBranches are the fixed outcome branches every scenario is
// expanded into. Likelihoods sum to 1.
var simulatorBranches = []struct {
	Label      string
	Likelihood float64
}{
	{"optimistic", 0.25},
	{"expected", 0.5},
	{"pessimistic", 0.25},
}

// Simulator expands a hypothetical into canned outcome branches via a
// simulated scenario engine. It holds no state.
type Simulator struct{}

// NewSimulator creates the scenario faculty.
func NewSimulator() *Simulator { return &Simulator{} }

func (s *Simulator) Name() Name { return FacultySimulator }

func (s *Simulator) Detect(input string) bool {
	return matchesAny(input, simulatorKeywords)
}

func (s *Simulator) Handle(_ context.Context, req Request) Result {
	if req.Input == "" {
		return Fail("simulator: input is required")
	}

	scenario := firstWords(req.Input, 12)
	outcomes := make([]map[string]any, 0, len(simulatorBranches))
	for _, branch := range simulatorBranches {
		outcomes = append(outcomes, map[string]any{
			"branch":     branch.Label,
			"likelihood": branch.Likelihood,
			"summary":    branch.Label + " projection for: " + scenario,
		})
	}

	return Result{
		Success: true,
		Data: map[string]any{
			"scenario": scenario,
			"outcomes": outcomes,
		},
		Metadata: map[string]any{
			"tool":      "gymnasium",
			"simulated": true,
			"branches":  len(simulatorBranches),
		},
	}
}
