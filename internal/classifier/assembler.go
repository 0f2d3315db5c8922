package classifier

import (
	"strings"

	"github.com/srishhttii05/resolvex/internal/domain"
)

const (
	// titleTruncateLen is how much of the description seeds a missing title.
	titleTruncateLen = 80
	// untitledPlaceholder is used when both title and description are empty.
	untitledPlaceholder = "Untitled"
	truncationMarker    = "..."
)

// Assemble composes a finished report from a classification result and the
// raw title/description text. Total: it never fails.
func Assemble(classification domain.ClassificationResult, rawTitle, rawDescription string) domain.Report {
	title := strings.TrimSpace(rawTitle)
	description := strings.TrimSpace(rawDescription)

	if title == "" {
		title = deriveTitle(description)
	}

	return domain.Report{
		Title:       title,
		Category:    classification.Category,
		Description: description,
		Priority:    classification.Priority,
		MatchStage:  classification.MatchStage,
	}
}

// deriveTitle builds a title from the leading description text.
// Truncation counts characters, not bytes, so multibyte text is never
// split mid-rune.
func deriveTitle(description string) string {
	if description == "" {
		return untitledPlaceholder
	}
	runes := []rune(description)
	if len(runes) > titleTruncateLen {
		runes = runes[:titleTruncateLen]
	}
	return string(runes) + truncationMarker
}
