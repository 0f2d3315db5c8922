package domain

// ModerationStatus is the terminal outcome of the moderation pipeline.
type ModerationStatus string

const (
	// ModerationOk means every check passed.
	ModerationOk ModerationStatus = "ok"
	// ModerationSpam means a check rejected the report.
	ModerationSpam ModerationStatus = "spam"
	// ModerationError means an external check itself failed.
	ModerationError ModerationStatus = "error"
)

// RelevanceVerdict is the answer of the external relevance classifier.
type RelevanceVerdict string

const (
	// RelevanceValid means the text describes a civic issue.
	RelevanceValid RelevanceVerdict = "valid"
	// RelevanceSpam means the text is gibberish or off-domain.
	RelevanceSpam RelevanceVerdict = "spam"
)

// ImageRelevance is the answer of the external per-image check.
type ImageRelevance string

const (
	// ImageRelevant means the image plausibly shows a civic issue.
	ImageRelevant ImageRelevance = "relevant"
	// ImageIrrelevant means the image does not belong in a report.
	ImageIrrelevant ImageRelevance = "irrelevant"
)

// ModerationVerdict is returned to the caller and never retried internally.
type ModerationVerdict struct {
	Status  ModerationStatus `json:"status"`
	Message string           `json:"message"`
}
