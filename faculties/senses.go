package faculties

import "context"

var sensesKeywords = []string{
	"transcribe", "audio", "recording", "voice note", "listen to",
	"this image", "this picture", "look at this photo", "screenshot",
	"what do you see", "spoken",
}

// Senses wraps a simulated perception stack (speech-to-text and vision).
type Senses struct{}

// NewSenses creates the senses faculty.
func NewSenses() *Senses { return &Senses{} }

func (s *Senses) Name() Name { return FacultySenses }

func (s *Senses) Detect(input string) bool {
	return matchesAny(input, sensesKeywords)
}

func (s *Senses) Handle(_ context.Context, req Request) Result {
	if req.Input == "" {
		return Fail("senses: input is required")
	}

	modality := "audio"
	tool := "whisper"
	if matchesAny(req.Input, []string{"image", "picture", "photo", "screenshot", "see"}) {
		modality = "vision"
		tool = "clip"
	}

	return Result{
		Success: true,
		Data: map[string]any{
			"modality": modality,
			"summary":  "no media attached; describe or attach the " + modality + " source",
		},
		Metadata: map[string]any{
			"tool":      tool,
			"simulated": true,
		},
	}
}
