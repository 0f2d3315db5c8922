// Package moderation combines independent content checks into a single
// accept/reject verdict for a drafted report.
package moderation

import (
	"regexp"
	"strings"
)

// Gibberish heuristic thresholds.
const (
	// minShortTextLen flags texts under this length with at most
	// maxShortTextWords words.
	minShortTextLen   = 10
	maxShortTextWords = 2
)

// consonantRunPattern matches a run of consecutive characters that are
// neither vowels nor whitespace; keyboard mashing produces these.
// The letter y counts as a vowel so words like "rhythms" pass.
var consonantRunPattern = regexp.MustCompile(`[^aeiouyAEIOUY\s]{6,}`)

// casingRunPattern matches an abrupt uppercase-run-then-lowercase-run,
// which suggests randomly cased input rather than a sentence.
var casingRunPattern = regexp.MustCompile(`[A-Z]{3,}[a-z]{3,}`)

// junkTokens is a fixed denylist of keyboard-walk and filler tokens.
var junkTokens = []string{
	"asdf",
	"qwerty",
	"zxcv",
	"asdasd",
	"qazwsx",
	"lorem ipsum",
	"test123",
}

// IsGibberish reports whether the text looks like meaningless filler.
// It is a pure local heuristic: an OR of independent checks, no external
// calls, safe to run before any paid classifier.
func IsGibberish(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return true
	}

	if consonantRunPattern.MatchString(trimmed) {
		return true
	}

	if casingRunPattern.MatchString(trimmed) {
		return true
	}

	if len(trimmed) < minShortTextLen && len(strings.Fields(trimmed)) <= maxShortTextWords {
		return true
	}

	lower := strings.ToLower(trimmed)
	for _, token := range junkTokens {
		if strings.Contains(lower, token) {
			return true
		}
	}

	return false
}
