package faculties

import "strings"

// matchesAny is the shared substring test behind every keyword detector.
func matchesAny(input string, keywords []string) bool {
	lower := strings.ToLower(input)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
