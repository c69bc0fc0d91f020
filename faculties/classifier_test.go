package faculties

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMessageClient struct {
	message *anthropic.Message
	err     error
	lastIn  string
}

func (f *fakeMessageClient) New(_ context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	if len(params.Messages) > 0 {
		for _, block := range params.Messages[0].Content {
			if block.OfText != nil {
				f.lastIn = block.OfText.Text
			}
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.message, nil
}

func textMessage(body map[string]any) *anthropic.Message {
	jsonBytes, _ := json.Marshal(body)
	return &anthropic.Message{
		ID:   "msg-test-1",
		Role: "assistant",
		Content: []anthropic.ContentBlockUnion{
			{Type: "text", Text: "Here is the routing decision: " + string(jsonBytes)},
		},
	}
}

func TestLLMClassifierParsesDecision(t *testing.T) {
	t.Parallel()

	client := &fakeMessageClient{
		message: textMessage(map[string]any{
			"faculty":    "research",
			"confidence": 0.7,
			"reason":     "open-ended factual question",
		}),
	}
	classifier := NewLLMClassifierWithClient(client)

	act, err := classifier.Classify(context.Background(), "who signed the treaty")
	require.NoError(t, err)
	assert.Equal(t, FacultyResearch, act.Faculty)
	assert.Equal(t, 0.7, act.Confidence)
	assert.Equal(t, "who signed the treaty", client.lastIn)
}

func TestLLMClassifierClampsConfidence(t *testing.T) {
	t.Parallel()

	client := &fakeMessageClient{
		message: textMessage(map[string]any{"faculty": "council", "confidence": 3.2}),
	}
	classifier := NewLLMClassifierWithClient(client)

	act, err := classifier.Classify(context.Background(), "input")
	require.NoError(t, err)
	assert.Equal(t, 1.0, act.Confidence)
}

func TestLLMClassifierRejectsUnknownFaculty(t *testing.T) {
	t.Parallel()

	client := &fakeMessageClient{
		message: textMessage(map[string]any{"faculty": "oracle", "confidence": 0.9}),
	}
	classifier := NewLLMClassifierWithClient(client)

	_, err := classifier.Classify(context.Background(), "input")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown faculty")
}

func TestLLMClassifierPropagatesAPIError(t *testing.T) {
	t.Parallel()

	client := &fakeMessageClient{err: errors.New("rate limited")}
	classifier := NewLLMClassifierWithClient(client)

	_, err := classifier.Classify(context.Background(), "input")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "classification request failed")
}

func TestParseActivationNoJSON(t *testing.T) {
	t.Parallel()

	_, err := parseActivation("no structured content here")
	require.Error(t, err)
}
