package faculties

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

var autodidactKeywords = []string{
	"teach yourself", "learn about", "study plan", "curriculum",
	"self-study", "practice exercises", "quiz me", "learning path",
	"improve your knowledge",
}

// curriculumStages are the fixed phases a study plan is broken into.
var curriculumStages = []string{"survey", "deep dive", "practice", "review"}

// Autodidact drafts self-study curricula through a simulated learning
// pipeline and keeps the plans it has produced per user.
type Autodidact struct {
	mu    sync.Mutex
	plans map[string][]studyPlan
	now   func() time.Time
}

type studyPlan struct {
	ID        string    `json:"id"`
	Topic     string    `json:"topic"`
	Stages    []string  `json:"stages"`
	CreatedAt time.Time `json:"created_at"`
}

// NewAutodidact creates the self-study faculty.
func NewAutodidact() *Autodidact {
	return &Autodidact{
		plans: make(map[string][]studyPlan),
		now:   time.Now,
	}
}

func (a *Autodidact) Name() Name { return FacultyAutodidact }

func (a *Autodidact) Detect(input string) bool {
	return matchesAny(input, autodidactKeywords)
}

func (a *Autodidact) Handle(_ context.Context, req Request) Result {
	if req.UserID == "" {
		return Fail("autodidact: userID is required")
	}
	if req.Input == "" {
		return Fail("autodidact: input is required")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	plan := studyPlan{
		ID:        "plan_" + uuid.NewString(),
		Topic:     firstWords(req.Input, 8),
		Stages:    append([]string(nil), curriculumStages...),
		CreatedAt: a.now(),
	}
	a.plans[req.UserID] = append(a.plans[req.UserID], plan)

	return Result{
		Success: true,
		Data: map[string]any{
			"plan_id": plan.ID,
			"topic":   plan.Topic,
			"stages":  plan.Stages,
			"total":   len(a.plans[req.UserID]),
		},
		Metadata: map[string]any{
			"tool":      "dspy",
			"simulated": true,
		},
	}
}

// PlanCount reports how many study plans a user has accumulated.
func (a *Autodidact) PlanCount(userID string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.plans[userID])
}
