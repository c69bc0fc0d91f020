package faculties

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// Classifier resolves an input to a faculty when the keyword detectors
// miss. Implementations may be ML-backed; the router treats any error as
// "no opinion" and falls through to FacultyNone.
type Classifier interface {
	Classify(ctx context.Context, input string) (*Activation, error)
}

// MessageClient is the slice of the Anthropic API the LLM classifier
// needs. Satisfied by anthropic.MessageService; tests substitute a fake.
type MessageClient interface {
	New(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error)
}

type messageServiceClient struct {
	messages *anthropic.MessageService
}

func (m *messageServiceClient) New(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	return m.messages.New(ctx, params)
}

const (
	defaultClassifierModel     = "claude-3-5-haiku-latest"
	defaultClassifierMaxTokens = 256
)

const classifierSystemPrompt = `You route chat messages to exactly one faculty.
Faculties: selfheal (errors, crashes, debugging), council (deliberation,
multiple perspectives), memory (recall or store personal facts), senses
(audio or image input), research (document search, deep research),
workflow (automation, schedules), privacy (PII, data removal), shepherd
(model serving), simulator (hypotheticals, what-if), autodidact
(self-study, curricula), none (anything else).
Respond with only a JSON object: {"faculty": "...", "confidence": 0.0-1.0, "reason": "..."}`

// LLMClassifier asks an Anthropic model to pick the faculty.
type LLMClassifier struct {
	client    MessageClient
	model     string
	maxTokens int64
}

// NewLLMClassifier builds a classifier over the real Anthropic API. An
// empty apiKey defers to the SDK's environment lookup.
func NewLLMClassifier(apiKey string) *LLMClassifier {
	opts := []option.RequestOption{}
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	client := anthropic.NewClient(opts...)
	return NewLLMClassifierWithClient(&messageServiceClient{messages: &client.Messages})
}

// NewLLMClassifierWithClient builds a classifier over a custom client.
func NewLLMClassifierWithClient(client MessageClient) *LLMClassifier {
	return &LLMClassifier{
		client:    client,
		model:     defaultClassifierModel,
		maxTokens: defaultClassifierMaxTokens,
	}
}

func (c *LLMClassifier) Classify(ctx context.Context, input string) (*Activation, error) {
	resp, err := c.client.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: classifierSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(input)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("classification request failed: %w", err)
	}

	text := extractTextContent(resp)
	if text == "" {
		return nil, fmt.Errorf("no text content in classification response")
	}
	return parseActivation(text)
}

func extractTextContent(resp *anthropic.Message) string {
	var text string
	for _, block := range resp.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	return text
}

func parseActivation(text string) (*Activation, error) {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("no JSON object in classification response")
	}

	var parsed struct {
		Faculty    string  `json:"faculty"`
		Confidence float64 `json:"confidence"`
		Reason     string  `json:"reason"`
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), &parsed); err != nil {
		return nil, fmt.Errorf("parsing classification response: %w", err)
	}

	name := Name(strings.ToLower(strings.TrimSpace(parsed.Faculty)))
	if !validFacultyName(name) {
		return nil, fmt.Errorf("classification returned unknown faculty %q", parsed.Faculty)
	}
	if parsed.Confidence < 0 {
		parsed.Confidence = 0
	}
	if parsed.Confidence > 1 {
		parsed.Confidence = 1
	}

	return &Activation{
		Faculty:    name,
		Confidence: parsed.Confidence,
		Reason:     parsed.Reason,
	}, nil
}

func validFacultyName(name Name) bool {
	switch name {
	case FacultySelfHeal, FacultyCouncil, FacultyMemory, FacultySenses,
		FacultyResearch, FacultyWorkflow, FacultyPrivacy, FacultyShepherd,
		FacultySimulator, FacultyAutodidact, FacultyNone:
		return true
	}
	return false
}
