package conversation

import "regexp"

// introPattern is a best-effort match for a self-introduction. It takes the
// first alphabetic token after the phrase and nothing else.
var introPattern = regexp.MustCompile(`(?i)(?:my name is|i'm|i am)\s+([a-zA-Z]+)`)

// ExtractName returns the name a user introduced themselves with, or "" when
// text has no introduction phrase.
func ExtractName(text string) string {
	m := introPattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1]
}
