package llm

import (
	"fmt"
	"sort"
)

// FallbackModel is returned when the caller supplies no models at all.
const FallbackModel = "llama3.2:1b"

// ModelInfo describes one locally served model.
type ModelInfo struct {
	Name         string `json:"name"`
	SizeBytes    int64  `json:"size_bytes"`
	IsReasoning  bool   `json:"is_reasoning,omitempty"`
	Parameters   string `json:"parameters,omitempty"`
	Quantization string `json:"quantization,omitempty"`
}

// Selection is the outcome of picking a model for a complexity tier.
type Selection struct {
	Model  string `json:"model"`
	Reason string `json:"reason"`
}

// SelectModelForTask picks a model by size heuristics:
//
//   - simple: smallest model
//   - moderate: size-sorted median by index
//   - complex: largest model
//   - reasoning: largest reasoning-flagged model, else largest overall
//
// An empty model list yields the fixed fallback identifier.
func SelectModelForTask(models []ModelInfo, complexity Complexity) Selection {
	if len(models) == 0 {
		return Selection{
			Model:  FallbackModel,
			Reason: "no models available, using fallback default",
		}
	}

	sorted := make([]ModelInfo, len(models))
	copy(sorted, models)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SizeBytes < sorted[j].SizeBytes
	})

	switch complexity {
	case ComplexitySimple:
		pick := sorted[0]
		return Selection{
			Model:  pick.Name,
			Reason: fmt.Sprintf("smallest model for simple task (%d bytes)", pick.SizeBytes),
		}

	case ComplexityModerate:
		pick := sorted[len(sorted)/2]
		return Selection{
			Model:  pick.Name,
			Reason: "mid-sized model for moderate task",
		}

	case ComplexityReasoning:
		if pick, ok := largestReasoning(sorted); ok {
			return Selection{
				Model:  pick.Name,
				Reason: fmt.Sprintf("largest reasoning model (%s)", pick.Name),
			}
		}
		pick := sorted[len(sorted)-1]
		return Selection{
			Model:  pick.Name,
			Reason: "No reasoning model available, using largest model",
		}

	default: // complex
		pick := sorted[len(sorted)-1]
		return Selection{
			Model:  pick.Name,
			Reason: fmt.Sprintf("largest model for complex task (%d bytes)", pick.SizeBytes),
		}
	}
}

func largestReasoning(sortedAsc []ModelInfo) (ModelInfo, bool) {
	for i := len(sortedAsc) - 1; i >= 0; i-- {
		if sortedAsc[i].IsReasoning {
			return sortedAsc[i], true
		}
	}
	return ModelInfo{}, false
}
