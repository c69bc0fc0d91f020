package faculties

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

var shepherdKeywords = []string{
	"deploy model", "serve model", "model serving", "load the model",
	"unload the model", "vllm", "inference endpoint", "gpu memory",
	"which models are loaded", "model status",
}

// Shepherd tracks which models a simulated serving backend has loaded.
// Load/unload requests mutate the roster; everything else reports it.
type Shepherd struct {
	mu     sync.Mutex
	loaded map[string]servedModel
	now    func() time.Time
}

type servedModel struct {
	Name     string    `json:"name"`
	LoadedAt time.Time `json:"loaded_at"`
}

// NewShepherd creates the model-serving faculty.
func NewShepherd() *Shepherd {
	return &Shepherd{
		loaded: make(map[string]servedModel),
		now:    time.Now,
	}
}

func (s *Shepherd) Name() Name { return FacultyShepherd }

func (s *Shepherd) Detect(input string) bool {
	return matchesAny(input, shepherdKeywords)
}

func (s *Shepherd) Handle(_ context.Context, req Request) Result {
	if req.Input == "" {
		return Fail("shepherd: input is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lower := strings.ToLower(req.Input)
	model, _ := req.Params["model"].(string)

	switch {
	case strings.Contains(lower, "unload"):
		if model == "" {
			return Fail("shepherd: model parameter is required to unload")
		}
		if _, ok := s.loaded[model]; !ok {
			return Fail("shepherd: model not loaded: " + model)
		}
		delete(s.loaded, model)
		return Result{
			Success: true,
			Data: map[string]any{
				"action": "unloaded",
				"model":  model,
				"loaded": s.rosterLocked(),
			},
			Metadata: map[string]any{"tool": "vllm", "simulated": true},
		}
	case strings.Contains(lower, "deploy") || strings.Contains(lower, "serve") || strings.Contains(lower, "load"):
		if model == "" {
			return Fail("shepherd: model parameter is required to load")
		}
		s.loaded[model] = servedModel{Name: model, LoadedAt: s.now()}
		return Result{
			Success: true,
			Data: map[string]any{
				"action": "loaded",
				"model":  model,
				"loaded": s.rosterLocked(),
			},
			Metadata: map[string]any{"tool": "vllm", "simulated": true},
		}
	default:
		return Result{
			Success: true,
			Data: map[string]any{
				"action": "status",
				"loaded": s.rosterLocked(),
			},
			Metadata: map[string]any{"tool": "vllm", "simulated": true},
		}
	}
}

// rosterLocked returns the loaded model names in sorted order. Callers hold mu.
func (s *Shepherd) rosterLocked() []string {
	names := make([]string, 0, len(s.loaded))
	for name := range s.loaded {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
