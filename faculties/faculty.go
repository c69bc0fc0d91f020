// Package faculties implements the keyword-routed handler modules of the
// cognitive layer. Each faculty pairs a pure intent detector with a handler
// that delegates to one simulated external tool. Every handler returns the
// same Result envelope and never panics out of the package: expected
// failures (missing parameter, unknown entity) are signaled in the
// envelope, and anything unexpected is recovered at the router boundary.
package faculties

import "context"

// Name identifies a faculty.
type Name string

const (
	FacultySelfHeal   Name = "selfheal"
	FacultyCouncil    Name = "council"
	FacultyMemory     Name = "memory"
	FacultySenses     Name = "senses"
	FacultyResearch   Name = "research"
	FacultyWorkflow   Name = "workflow"
	FacultyPrivacy    Name = "privacy"
	FacultyShepherd   Name = "shepherd"
	FacultySimulator  Name = "simulator"
	FacultyAutodidact Name = "autodidact"

	// FacultyNone means no faculty claimed the input.
	FacultyNone Name = "none"
)

// Request is the handler input.
type Request struct {
	Input      string
	UserID     string
	SessionKey string
	Params     map[string]any
}

// Result is the uniform envelope every faculty and tool returns.
type Result struct {
	Success  bool           `json:"success"`
	Data     map[string]any `json:"data,omitempty"`
	Error    string         `json:"error,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Ok builds a success Result.
func Ok(data map[string]any) Result {
	return Result{Success: true, Data: data}
}

// Fail builds a failure Result.
func Fail(message string) Result {
	return Result{Success: false, Error: message}
}

// Faculty is one routed handler module.
type Faculty interface {
	// Name returns the faculty identifier.
	Name() Name

	// Detect reports whether the input falls in this faculty's territory.
	// It must be pure: string inspection only, no side effects.
	Detect(input string) bool

	// Handle services the request, delegating to the faculty's tool.
	Handle(ctx context.Context, req Request) Result
}

// Activation is a routing decision. It is stateless and never persisted.
type Activation struct {
	Faculty    Name    `json:"faculty"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
}
