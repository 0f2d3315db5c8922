package moderation

import (
	"context"
	"fmt"

	"github.com/srishhttii05/resolvex/internal/domain"
	"github.com/srishhttii05/resolvex/internal/logging"
)

// Verdict messages returned to the caller.
const (
	msgGibberish      = "This looks like gibberish or irrelevant spam"
	msgUnsafeContent  = "Inappropriate or harmful report detected"
	msgIrrelevant     = "This report is unrelated to civic issues"
	msgIrrelevantImg  = "Inappropriate or irrelevant image detected"
	msgReportAccepted = "Report is valid"
)

// SafetyClassifier flags harmful or unsafe text.
type SafetyClassifier interface {
	ClassifyTextSafety(ctx context.Context, text string) (bool, error)
}

// RelevanceClassifier judges whether text describes a civic issue.
type RelevanceClassifier interface {
	ClassifyRelevance(ctx context.Context, title, description string) (domain.RelevanceVerdict, error)
}

// ImageChecker judges whether a submitted image belongs in a report.
type ImageChecker interface {
	CheckImageRelevance(ctx context.Context, imageB64 string) (domain.ImageRelevance, error)
}

// Checks is the injected capability set the pipeline evaluates.
type Checks struct {
	Safety    SafetyClassifier
	Relevance RelevanceClassifier
	Images    ImageChecker
}

// Pipeline evaluates a fixed sequence of signals and short-circuits on
// the first rejection. Order is a policy decision: the free local
// gibberish heuristic runs before any external classifier.
type Pipeline struct {
	checks    Checks
	maxImages int
	logger    logging.Logger
}

// NewPipeline creates a moderation pipeline over the given capability set.
// maxImages caps how many images are checked; zero or negative means no cap.
func NewPipeline(checks Checks, maxImages int, logger logging.Logger) *Pipeline {
	return &Pipeline{
		checks:    checks,
		maxImages: maxImages,
		logger:    logger,
	}
}

// Moderate runs the report through every stage in order and returns a
// terminal verdict. External check failures surface as an error verdict
// carrying the cause; they are never downgraded to ok or spam.
func (p *Pipeline) Moderate(ctx context.Context, title, description string, images []string) domain.ModerationVerdict {
	// 1. Local gibberish heuristic on title and description independently.
	titleFlagged := IsGibberish(title)
	if titleFlagged || IsGibberish(description) {
		p.logger.Info("report rejected by gibberish heuristic",
			"title_flagged", titleFlagged,
		)
		return spam(msgGibberish)
	}

	combined := title + "\n" + description

	// 2. External safety classification on the combined text.
	flagged, err := p.checks.Safety.ClassifyTextSafety(ctx, combined)
	if err != nil {
		return p.checkError("safety", err)
	}
	if flagged {
		p.logger.Info("report rejected by safety classifier")
		return spam(msgUnsafeContent)
	}

	// 3. External relevance classification.
	verdict, err := p.checks.Relevance.ClassifyRelevance(ctx, title, description)
	if err != nil {
		return p.checkError("relevance", err)
	}
	if verdict == domain.RelevanceSpam {
		p.logger.Info("report rejected by relevance classifier")
		return spam(msgIrrelevant)
	}

	// 4. Per-image relevance, in submission order; stop at first rejection.
	toCheck := images
	if p.maxImages > 0 && len(toCheck) > p.maxImages {
		toCheck = toCheck[:p.maxImages]
	}
	for i, img := range toCheck {
		relevance, imgErr := p.checks.Images.CheckImageRelevance(ctx, img)
		if imgErr != nil {
			return p.checkError("image", imgErr)
		}
		if relevance == domain.ImageIrrelevant {
			p.logger.Info("report rejected by image check", "image_index", i)
			return spam(msgIrrelevantImg)
		}
	}

	// 5. All stages passed.
	return domain.ModerationVerdict{
		Status:  domain.ModerationOk,
		Message: msgReportAccepted,
	}
}

func (p *Pipeline) checkError(stage string, err error) domain.ModerationVerdict {
	p.logger.Error("moderation check failed", "stage", stage, "error", err)
	return domain.ModerationVerdict{
		Status:  domain.ModerationError,
		Message: fmt.Sprintf("%s check failed: %v", stage, err),
	}
}

func spam(message string) domain.ModerationVerdict {
	return domain.ModerationVerdict{
		Status:  domain.ModerationSpam,
		Message: message,
	}
}
