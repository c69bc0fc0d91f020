package faculties

import (
	"context"
	"regexp"
)

var privacyKeywords = []string{
	"private", "confidential", "delete my data", "my personal data",
	"gdpr", "anonymize", "redact", "privacy",
}

// PII patterns the privacy faculty scans for. Same coverage caveat as the
// chat logger: common email/phone/SSN shapes, not an exhaustive scrubber.
var piiClasses = []struct {
	name    string
	pattern *regexp.Regexp
}{
	{"email", regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)},
	{"ssn", regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)},
	{"phone", regexp.MustCompile(`\+?\d{0,3}[\s.-]?\(?\d{3}\)?[\s.-]?\d{3,4}[\s.-]?\d{4}|\b\d{3}[\s.-]\d{4}\b`)},
}

// Privacy flags personally identifiable information in the input and
// reports which classes were found. Detection fires on either an explicit
// privacy request or the presence of PII itself.
type Privacy struct{}

// NewPrivacy creates the privacy faculty.
func NewPrivacy() *Privacy { return &Privacy{} }

func (p *Privacy) Name() Name { return FacultyPrivacy }

func (p *Privacy) Detect(input string) bool {
	if matchesAny(input, privacyKeywords) {
		return true
	}
	for _, class := range piiClasses {
		if class.pattern.MatchString(input) {
			return true
		}
	}
	return false
}

func (p *Privacy) Handle(_ context.Context, req Request) Result {
	if req.Input == "" {
		return Fail("privacy: input is required")
	}

	var detected []string
	redacted := req.Input
	for _, class := range piiClasses {
		if class.pattern.MatchString(redacted) {
			detected = append(detected, class.name)
			redacted = class.pattern.ReplaceAllString(redacted, "["+class.name+"]")
		}
	}

	return Result{
		Success: true,
		Data: map[string]any{
			"pii_detected": detected,
			"redacted":     redacted,
			"advice":       "sensitive values are masked before any downstream processing",
		},
		Metadata: map[string]any{
			"tool":      "presidio",
			"simulated": true,
		},
	}
}
