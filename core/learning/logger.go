package learning

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/google/uuid"
)

const (
	// minimalPreviewLength is how much text the minimal privacy level
	// retains before the ellipsis marker.
	minimalPreviewLength = 80

	ellipsisMarker = "..."

	emailPlaceholder = "[email]"
	phonePlaceholder = "[phone]"
)

// Redaction patterns for the standard privacy level. These target common
// email and US-style phone formats; they are not an exhaustive PII
// scrubber and international phone formats can slip through.
var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phonePattern = regexp.MustCompile(`\+?\d{0,3}[\s.-]?\(?\d{3}\)?[\s.-]?\d{3,4}[\s.-]?\d{4}|\b\d{3}[\s.-]\d{4}\b`)
)

// Logger records chat interactions subject to the configured privacy
// level and per-user history cap.
type Logger struct {
	store  InteractionStore
	config Config
	log    *slog.Logger
	now    func() time.Time
}

// NewLogger creates a Logger writing into store. A nil slog logger falls
// back to slog.Default().
func NewLogger(store InteractionStore, config Config, log *slog.Logger) *Logger {
	if log == nil {
		log = slog.Default()
	}
	if config.MaxInteractionsPerUser <= 0 {
		config.MaxInteractionsPerUser = DefaultConfig().MaxInteractionsPerUser
	}

	return &Logger{
		store:  store,
		config: config,
		log:    log,
		now:    time.Now,
	}
}

// LogOptions carries optional per-interaction metadata.
type LogOptions struct {
	Channel string
}

// LogInteraction redacts and stores one exchange. It returns (nil, nil)
// when logging is disabled or the privacy level is off: that is a policy
// no-op, not an error. The returned interaction is a copy; mutating it
// does not affect stored state.
func (l *Logger) LogInteraction(ctx context.Context, userID, input, output string, opts *LogOptions) (*ChatInteraction, error) {
	if !l.config.Enabled || l.config.PrivacyLevel == PrivacyOff {
		return nil, nil
	}
	if userID == "" {
		return nil, fmt.Errorf("log interaction: userID is required")
	}

	redactedInput := Redact(input, l.config.PrivacyLevel)
	redactedOutput := Redact(output, l.config.PrivacyLevel)

	interaction := ChatInteraction{
		ID:        "chat_" + uuid.NewString(),
		UserID:    userID,
		Input:     redactedInput,
		Output:    redactedOutput,
		Timestamp: l.now(),
	}
	if opts != nil {
		interaction.Channel = opts.Channel
	}
	if l.config.TrackTopics {
		interaction.Topics = ExtractTopics(redactedInput)
	}

	if err := l.store.Append(ctx, interaction); err != nil {
		return nil, fmt.Errorf("log interaction: %w", err)
	}

	count, err := l.store.Count(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("log interaction: %w", err)
	}
	if count > l.config.MaxInteractionsPerUser {
		if err := l.store.TrimOldest(ctx, userID, l.config.MaxInteractionsPerUser); err != nil {
			return nil, fmt.Errorf("log interaction: %w", err)
		}
		l.log.Debug("trimmed chat history",
			"user_id", userID,
			"cap", l.config.MaxInteractionsPerUser)
	}

	result := copyInteraction(interaction)
	return &result, nil
}

// History returns the user's logged interactions, oldest first.
func (l *Logger) History(ctx context.Context, userID string) ([]ChatInteraction, error) {
	return l.store.History(ctx, userID)
}

// InteractionCount reports how many interactions are retained for a user.
func (l *Logger) InteractionCount(ctx context.Context, userID string) (int, error) {
	return l.store.Count(ctx, userID)
}

// Redact applies the privacy level's retention policy to text. PrivacyOff
// returns the empty string; callers gate on the level before storing.
func Redact(text string, level PrivacyLevel) string {
	switch level {
	case PrivacyOff:
		return ""
	case PrivacyMinimal:
		runes := []rune(text)
		if len(runes) <= minimalPreviewLength {
			return text
		}
		return string(runes[:minimalPreviewLength]) + ellipsisMarker
	case PrivacyStandard:
		redacted := emailPattern.ReplaceAllString(text, emailPlaceholder)
		return phonePattern.ReplaceAllString(redacted, phonePlaceholder)
	default:
		return text
	}
}
