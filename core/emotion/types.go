package emotion

import "time"

// Label identifies one of the fixed emotion categories scored by the analyzer.
type Label string

const (
	LabelJoy          Label = "joy"
	LabelSadness      Label = "sadness"
	LabelAnger        Label = "anger"
	LabelFear         Label = "fear"
	LabelDisgust      Label = "disgust"
	LabelTrust        Label = "trust"
	LabelAnticipation Label = "anticipation"
	LabelSurprise     Label = "surprise"
)

// AllLabels returns the scored labels in canonical order. Argmax ties break
// toward the earlier label in this slice.
func AllLabels() []Label {
	return []Label{
		LabelJoy,
		LabelSadness,
		LabelAnger,
		LabelFear,
		LabelDisgust,
		LabelTrust,
		LabelAnticipation,
		LabelSurprise,
	}
}

// Sentiment is the coarse polarity derived from the label aggregate.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Trend summarizes the recent direction of a session's sentiment history.
type Trend string

const (
	TrendPositive Trend = "positive"
	TrendNegative Trend = "negative"
	TrendNeutral  Trend = "neutral"
	TrendMixed    Trend = "mixed"
)

// Analysis is the per-message scoring result. It is derived, never persisted
// beyond the session's rolling window.
type Analysis struct {
	Sentiment  Sentiment         `json:"sentiment"`
	Dominant   Label             `json:"dominant,omitempty"`
	Scores     map[Label]float64 `json:"scores"`
	AnalyzedAt time.Time         `json:"analyzed_at"`
}

// Context is the rolling emotional state for one session key.
type Context struct {
	SessionKey string     `json:"session_key"`
	History    []Analysis `json:"history"`
	Trend      Trend      `json:"trend"`
}
