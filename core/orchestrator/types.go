package orchestrator

import (
	"github.com/adalundhe/psyche/core/emotion"
	"github.com/adalundhe/psyche/core/learning"
	"github.com/adalundhe/psyche/core/llm"
	"github.com/adalundhe/psyche/core/proactive"
	"github.com/adalundhe/psyche/faculties"
)

// Request carries one inbound chat message plus the optional catalogs the
// pipeline can act on. A nil Models slice skips model selection; a nil
// Catalog skips recommendation and notification generation.
type Request struct {
	Input      string
	UserID     string
	SessionKey string
	Channel    string
	Models     []llm.ModelInfo
	Catalog    []learning.ContentItem
}

// Tone values for response hints.
const (
	ToneNeutral      = "neutral"
	ToneEmpathetic   = "empathetic"
	ToneCalming      = "calming"
	ToneEnthusiastic = "enthusiastic"
	ToneEncouraging  = "encouraging"
)

// Hints guide how the downstream response generator should phrase its
// reply. They are advisory only.
type Hints struct {
	Tone           string   `json:"tone"`
	Verbosity      string   `json:"verbosity"`
	RelevantTopics []string `json:"relevant_topics,omitempty"`
}

// Result aggregates every stage's output for one processed message.
// Pointer fields are nil when the corresponding stage was skipped or
// declined (disabled learning, no catalog, no routed faculty).
type Result struct {
	Emotion          *emotion.Analysis         `json:"emotion,omitempty"`
	EmotionalContext *emotion.Context          `json:"emotional_context,omitempty"`
	Complexity       llm.Complexity            `json:"complexity"`
	ModelSelection   *llm.Selection            `json:"model_selection,omitempty"`
	Interaction      *learning.ChatInteraction `json:"interaction,omitempty"`
	Preferences      *learning.UserPreferences `json:"preferences,omitempty"`
	Recommendations  []learning.Recommendation `json:"recommendations,omitempty"`
	Notifications    []proactive.Notification  `json:"notifications,omitempty"`
	Hints            Hints                     `json:"hints"`
	Activation       faculties.Activation      `json:"activation"`
	FacultyResult    *faculties.Result         `json:"faculty_result,omitempty"`
}
