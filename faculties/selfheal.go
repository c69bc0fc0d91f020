package faculties

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var selfHealKeywords = []string{
	"error", "exception", "stack trace", "traceback", "panic", "crash",
	"crashed", "broken", "failing", "bug in", "not working", "diagnose",
	"fix itself", "self-heal",
}

// SelfHeal diagnoses reported failures through a simulated software
// engineering agent. Incidents are tracked in memory so follow-up
// messages can reference them.
type SelfHeal struct {
	mu        sync.Mutex
	incidents map[string]incident
	now       func() time.Time
}

type incident struct {
	ID         string    `json:"id"`
	Report     string    `json:"report"`
	Diagnosis  string    `json:"diagnosis"`
	ReportedAt time.Time `json:"reported_at"`
}

// NewSelfHeal creates the self-healing faculty.
func NewSelfHeal() *SelfHeal {
	return &SelfHeal{
		incidents: make(map[string]incident),
		now:       time.Now,
	}
}

func (s *SelfHeal) Name() Name { return FacultySelfHeal }

func (s *SelfHeal) Detect(input string) bool {
	return matchesAny(input, selfHealKeywords)
}

func (s *SelfHeal) Handle(_ context.Context, req Request) Result {
	if req.Input == "" {
		return Fail("selfheal: input is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	inc := incident{
		ID:         "inc_" + uuid.NewString(),
		Report:     req.Input,
		Diagnosis:  diagnose(req.Input),
		ReportedAt: s.now(),
	}
	s.incidents[inc.ID] = inc

	return Result{
		Success: true,
		Data: map[string]any{
			"incident_id": inc.ID,
			"diagnosis":   inc.Diagnosis,
			"plan": []string{
				"reproduce the failure",
				"isolate the faulty component",
				"apply a candidate patch",
				"re-run validation",
			},
		},
		Metadata: map[string]any{
			"tool":      "swe-agent",
			"simulated": true,
		},
	}
}

// IncidentCount reports how many incidents have been recorded.
func (s *SelfHeal) IncidentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.incidents)
}

func diagnose(report string) string {
	switch {
	case matchesAny(report, []string{"panic", "crash", "crashed"}):
		return "abrupt termination: likely nil dereference or unrecovered panic"
	case matchesAny(report, []string{"stack trace", "traceback", "exception"}):
		return "raised exception: inspect the innermost frame first"
	default:
		return fmt.Sprintf("behavioral fault reported: %q", firstWords(report, 8))
	}
}

func firstWords(text string, n int) string {
	words := strings.Fields(text)
	if len(words) <= n {
		return text
	}
	return strings.Join(words[:n], " ") + "..."
}
