// Package api exposes the decision pipeline over HTTP.
package api

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/srishhttii05/resolvex/internal/classifier"
	"github.com/srishhttii05/resolvex/internal/database"
	"github.com/srishhttii05/resolvex/internal/domain"
	"github.com/srishhttii05/resolvex/internal/logging"
	"github.com/srishhttii05/resolvex/internal/taxonomy"
)

// Media kinds accepted by the classification endpoint.
const (
	mediaKindImage = "image"
	mediaKindVideo = "video"
)

// videoPlaceholderTitle titles the fixed report for video uploads, which
// skip the vision classifier entirely.
const videoPlaceholderTitle = "Video Report"

// IssueExtractor is the vision capability behind media classification.
type IssueExtractor interface {
	ExtractIssue(ctx context.Context, imageB64 string) (domain.ClassificationInput, error)
}

// Moderator runs a drafted report through the moderation pipeline.
type Moderator interface {
	Moderate(ctx context.Context, title, description string, images []string) domain.ModerationVerdict
}

// WaterAssessor decides the verdict for one water sample.
type WaterAssessor interface {
	Assess(ctx context.Context, sample domain.WaterSample) (domain.WaterQualityVerdict, error)
}

// Chatter answers portal assistant questions.
type Chatter interface {
	Chat(ctx context.Context, message string) (string, error)
}

// Recorder receives decision metrics. Satisfied by telemetry.Provider.
type Recorder interface {
	RecordClassification(ctx context.Context, category, matchStage string, duration time.Duration)
	RecordModeration(ctx context.Context, status string)
	RecordWaterAssessment(ctx context.Context, status string)
}

// Handler handles HTTP requests for the decision engine API
type Handler struct {
	normalizers map[string]*classifier.Normalizer
	extractor   IssueExtractor
	moderator   Moderator
	water       WaterAssessor
	chatter     Chatter
	history     *database.DecisionHistoryRepository
	recorder    Recorder
	serviceName string
	version     string
	logger      logging.Logger
}

// Deps collects the handler's collaborators. Water and History may be
// nil: the water route then reports unavailable, and persistence is
// skipped.
type Deps struct {
	Normalizers map[string]*classifier.Normalizer
	Extractor   IssueExtractor
	Moderator   Moderator
	Water       WaterAssessor
	Chatter     Chatter
	History     *database.DecisionHistoryRepository
	Recorder    Recorder
	ServiceName string
	Version     string
	Logger      logging.Logger
}

// NewHandler creates a new API handler
func NewHandler(deps Deps) *Handler {
	recorder := deps.Recorder
	if recorder == nil {
		recorder = nopRecorder{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	return &Handler{
		normalizers: deps.Normalizers,
		extractor:   deps.Extractor,
		moderator:   deps.Moderator,
		water:       deps.Water,
		chatter:     deps.Chatter,
		history:     deps.History,
		recorder:    recorder,
		serviceName: deps.ServiceName,
		version:     deps.Version,
		logger:      logger,
	}
}

// ClassifyMedia handles POST /api/v1/media/classify. It accepts a
// multipart upload (file, kind, domain) and returns a finished report.
func (h *Handler) ClassifyMedia(c *gin.Context) {
	start := time.Now()

	domainParam := c.PostForm("domain")
	normalizer, ok := h.normalizers[normalizeDomain(domainParam)]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown report domain: " + domainParam})
		return
	}

	kind := c.PostForm("kind")
	if kind == "" {
		kind = mediaKindImage
	}

	switch kind {
	case mediaKindVideo:
		// Videos are queued for manual review; the classifier never runs.
		report := videoPlaceholder(normalizer.Taxonomy())
		h.logger.Info("video upload accepted without classification",
			"domain", normalizer.Taxonomy().Name,
		)
		h.saveClassification(c.Request.Context(), report)
		c.JSON(http.StatusOK, report)
		return
	case mediaKindImage:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported media kind: " + kind})
		return
	}

	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "media file is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("failed to read uploaded media", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read media file"})
		return
	}

	input, err := h.extractor.ExtractIssue(c.Request.Context(), base64.StdEncoding.EncodeToString(data))
	if err != nil {
		h.logger.Error("vision extraction failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "media classification unavailable"})
		return
	}

	result := normalizer.NormalizeInput(input)
	report := classifier.Assemble(result, input.RawLabel, input.SupportingText)

	h.logger.Info("media classified",
		"category", report.Category,
		"match_stage", string(report.MatchStage),
		"priority", string(report.Priority),
	)
	h.recorder.RecordClassification(c.Request.Context(), report.Category, string(report.MatchStage), time.Since(start))
	h.saveClassification(c.Request.Context(), report)

	c.JSON(http.StatusOK, report)
}

// ModerateReport handles POST /api/v1/reports/moderate.
func (h *Handler) ModerateReport(c *gin.Context) {
	var req ModerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid moderation request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	verdict := h.moderator.Moderate(c.Request.Context(), req.Title, req.Description, req.Images)

	h.recorder.RecordModeration(c.Request.Context(), string(verdict.Status))
	if h.history != nil {
		if err := h.history.SaveModeration(c.Request.Context(), req.Title, verdict); err != nil {
			h.logger.Warn("failed to persist moderation verdict", "error", err)
		}
	}

	status := http.StatusOK
	if verdict.Status == domain.ModerationError {
		status = http.StatusInternalServerError
	}
	c.JSON(status, verdict)
}

// PredictWater handles POST /api/v1/water/predict. When the model failed
// to load at startup the operation reports unavailable.
func (h *Handler) PredictWater(c *gin.Context) {
	if h.water == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "water quality model not loaded"})
		return
	}

	var req WaterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid water sample request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sample := toWaterSample(req)
	verdict, err := h.water.Assess(c.Request.Context(), sample)
	if err != nil {
		h.logger.Error("water assessment failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "water assessment failed"})
		return
	}

	h.recorder.RecordWaterAssessment(c.Request.Context(), string(verdict.Status))
	if h.history != nil {
		if err := h.history.SaveWaterAssessment(c.Request.Context(), sample, verdict); err != nil {
			h.logger.Warn("failed to persist water assessment", "error", err)
		}
	}

	c.JSON(http.StatusOK, WaterResponse{
		Status:          verdict.Status,
		Recommendations: verdict.Recommendations,
	})
}

// Chat handles POST /api/v1/chat.
func (h *Handler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply, err := h.chatter.Chat(c.Request.Context(), req.Message)
	if err != nil {
		h.logger.Error("chat completion failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "assistant unavailable"})
		return
	}

	c.JSON(http.StatusOK, ChatResponse{Reply: reply})
}

// ListTaxonomies handles GET /api/v1/taxonomies.
func (h *Handler) ListTaxonomies(c *gin.Context) {
	response := make([]TaxonomyResponse, 0, len(h.normalizers))
	for _, dom := range []string{taxonomy.DomainCivic, taxonomy.DomainWaste} {
		normalizer, ok := h.normalizers[dom]
		if !ok {
			continue
		}
		response = append(response, TaxonomyResponse{
			Domain:     dom,
			Categories: normalizer.Taxonomy().Names(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"taxonomies": response})
}

// GetStats handles GET /api/v1/stats
func (h *Handler) GetStats(c *gin.Context) {
	if h.history == nil {
		c.JSON(http.StatusOK, emptyStats())
		return
	}

	stats, err := h.history.GetStats(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to get stats", "error", err)
		// Return empty stats instead of error to avoid breaking dashboards
		c.JSON(http.StatusOK, emptyStats())
		return
	}

	c.JSON(http.StatusOK, stats)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": h.serviceName,
		"version": h.version,
	})
}

// ReadyCheck handles GET /ready
func (h *Handler) ReadyCheck(c *gin.Context) {
	checks := gin.H{
		"classifier":  "ok",
		"water_model": "ok",
	}
	if h.water == nil {
		checks["water_model"] = "unavailable"
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"checks": checks,
	})
}

func (h *Handler) saveClassification(ctx context.Context, report domain.Report) {
	if h.history == nil {
		return
	}
	if err := h.history.SaveClassification(ctx, report); err != nil {
		h.logger.Warn("failed to persist classification", "error", err)
	}
}

// videoPlaceholder builds the fixed report for a video upload: default
// category, medium priority, no classifier involvement.
func videoPlaceholder(tax *taxonomy.Taxonomy) domain.Report {
	return domain.Report{
		Title:    videoPlaceholderTitle,
		Category: tax.Fallback().Name,
		Priority: domain.PriorityMedium,
	}
}

func normalizeDomain(d string) string {
	if d == "" {
		return taxonomy.DomainCivic
	}
	return d
}

func emptyStats() gin.H {
	return gin.H{
		"total_classifications":   0,
		"total_moderations":       0,
		"total_water_assessments": 0,
		"moderations_rejected":    0,
		"water_samples_poor":      0,
		"categories":              gin.H{},
	}
}

type nopRecorder struct{}

func (nopRecorder) RecordClassification(context.Context, string, string, time.Duration) {}
func (nopRecorder) RecordModeration(context.Context, string)                            {}
func (nopRecorder) RecordWaterAssessment(context.Context, string)                       {}
