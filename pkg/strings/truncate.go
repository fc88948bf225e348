// Package strings holds small text helpers shared by the command and
// session packages.
package strings

import (
	"strings"
)

// DefaultSummaryLen is the width used for console text in log lines.
const DefaultSummaryLen = 60

// MinSummaryLen is the smallest width Summarize honours: one character plus "...".
const MinSummaryLen = 4

// Summarize collapses s onto a single line and shortens it to at most maxLen
// runes, ending in "..." when anything was cut.
func Summarize(s string, maxLen int) string {
	if maxLen < MinSummaryLen {
		maxLen = MinSummaryLen
	}

	s = strings.Join(strings.Fields(s), " ")

	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen-3]) + "..."
	}
	return s
}
