package faculties

import (
	"context"
	"fmt"
)

var councilKeywords = []string{
	"council", "debate", "deliberate", "multiple perspectives",
	"what do you all think", "second opinion", "weigh in", "vote on",
	"pros and cons of", "devil's advocate",
}

// councilSeats are the simulated deliberation roles.
var councilSeats = []string{"pragmatist", "skeptic", "visionary"}

// Council gathers perspectives from a simulated multi-agent crew.
type Council struct{}

// NewCouncil creates the council faculty.
func NewCouncil() *Council { return &Council{} }

func (c *Council) Name() Name { return FacultyCouncil }

func (c *Council) Detect(input string) bool {
	return matchesAny(input, councilKeywords)
}

func (c *Council) Handle(_ context.Context, req Request) Result {
	if req.Input == "" {
		return Fail("council: input is required")
	}

	perspectives := make([]map[string]any, 0, len(councilSeats))
	for _, seat := range councilSeats {
		perspectives = append(perspectives, map[string]any{
			"role":     seat,
			"position": fmt.Sprintf("%s assessment of: %s", seat, firstWords(req.Input, 10)),
		})
	}

	return Result{
		Success: true,
		Data: map[string]any{
			"perspectives": perspectives,
			"consensus":    "deliberation recorded, no blocking objections",
		},
		Metadata: map[string]any{
			"tool":      "crewai",
			"simulated": true,
			"seats":     len(councilSeats),
		},
	}
}
