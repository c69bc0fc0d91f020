package faculties

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

var workflowKeywords = []string{
	"automate", "automation", "workflow", "every morning", "every day at",
	"on a schedule", "recurring task", "set up a trigger", "cron",
}

// Workflow registers automation definitions with a simulated workflow
// engine. Definitions accumulate in memory per user.
type Workflow struct {
	mu        sync.Mutex
	workflows map[string][]workflowDef
	now       func() time.Time
}

type workflowDef struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	Active      bool      `json:"active"`
}

// NewWorkflow creates the workflow faculty.
func NewWorkflow() *Workflow {
	return &Workflow{
		workflows: make(map[string][]workflowDef),
		now:       time.Now,
	}
}

func (w *Workflow) Name() Name { return FacultyWorkflow }

func (w *Workflow) Detect(input string) bool {
	return matchesAny(input, workflowKeywords)
}

func (w *Workflow) Handle(_ context.Context, req Request) Result {
	if req.UserID == "" {
		return Fail("workflow: userID is required")
	}
	if req.Input == "" {
		return Fail("workflow: input is required")
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	def := workflowDef{
		ID:          "wf_" + uuid.NewString(),
		Description: req.Input,
		CreatedAt:   w.now(),
		Active:      true,
	}
	w.workflows[req.UserID] = append(w.workflows[req.UserID], def)

	return Result{
		Success: true,
		Data: map[string]any{
			"workflow_id": def.ID,
			"active":      true,
			"total":       len(w.workflows[req.UserID]),
		},
		Metadata: map[string]any{
			"tool":      "n8n",
			"simulated": true,
		},
	}
}

// WorkflowCount reports how many workflows a user has registered.
func (w *Workflow) WorkflowCount(userID string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.workflows[userID])
}
