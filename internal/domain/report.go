// Package domain defines the value objects shared across the decision pipeline.
package domain

// Priority indicates how urgently a report should be triaged.
type Priority string

const (
	// PriorityHigh marks categories that need immediate attention.
	PriorityHigh Priority = "high"
	// PriorityMedium is the default priority for all other categories.
	PriorityMedium Priority = "medium"
)

// MatchStage identifies which stage of the normalizer resolved the category.
type MatchStage string

const (
	// MatchStageExact means the raw label equalled a taxonomy entry name.
	MatchStageExact MatchStage = "exact"
	// MatchStageSubstring means an entry name appeared inside the raw label.
	MatchStageSubstring MatchStage = "substring"
	// MatchStageKeyword means a keyword-table scan selected the entry.
	MatchStageKeyword MatchStage = "keyword"
	// MatchStageFallback means no stage matched and the default entry was used.
	MatchStageFallback MatchStage = "fallback"
)

// ClassificationInput is the sanitized output of the external vision model.
// Malformed model responses are recovered into an input with empty fields
// before normalization, so every field may be empty.
type ClassificationInput struct {
	RawLabel       string `json:"raw_label"`
	SupportingText string `json:"supporting_text"`
	MediaPresent   bool   `json:"media_present"`
}

// ClassificationResult is the outcome of normalizing a raw model label
// against a taxonomy. Computed once per upload and never mutated.
type ClassificationResult struct {
	Category   string     `json:"category"`
	MatchStage MatchStage `json:"match_stage"`
	Priority   Priority   `json:"priority"`
}

// Report is the finished report payload returned to the caller.
type Report struct {
	Title       string     `json:"issue_title"`
	Category    string     `json:"issue_category"`
	Description string     `json:"detailed_description"`
	Priority    Priority   `json:"priority"`
	MatchStage  MatchStage `json:"match_stage,omitempty"`
}
