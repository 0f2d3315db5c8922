// Package openaiclient implements the external classifier capabilities
// (vision extraction, safety, relevance, chat) over the OpenAI API.
package openaiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/srishhttii05/resolvex/internal/config"
	"github.com/srishhttii05/resolvex/internal/domain"
	"github.com/srishhttii05/resolvex/internal/logging"
)

// ErrUnavailable indicates the OpenAI API could not be reached or refused
// the request. Callers decide whether that is fatal for their operation.
var ErrUnavailable = errors.New("openai service unavailable")

// Capability labels used for spans and metrics.
const (
	capExtractIssue   = "extract_issue"
	capTextSafety     = "text_safety"
	capRelevance      = "relevance"
	capImageRelevance = "image_relevance"
	capChat           = "chat"
)

// Classifier answer tokens. The prompts instruct the model to reply with
// exactly one of these; anything else is treated as the permissive answer.
const (
	answerSpam       = "SPAM"
	answerValid      = "VALID"
	answerIrrelevant = "IRRELEVANT"
	answerRelevant   = "RELEVANT"
)

const extractionPrompt = `You are analysing a photo submitted to a civic issue reporting portal.
Identify the single civic issue most prominent in the image.
Respond with a JSON object with exactly these fields:
  "raw_label": a short category label for the issue (e.g. "Pothole", "Street Light"),
  "supporting_text": one or two sentences describing what the image shows.
If the image shows no civic issue, use an empty raw_label and describe the scene.`

const relevancePrompt = `You are a moderator for a civic issue reporting portal.
Given a report title and description, decide whether it describes a genuine
civic issue (roads, lighting, waste, water, traffic, sidewalks, public
infrastructure). Reply with exactly one word: VALID if it does, SPAM if it
is advertising, abuse, a personal matter, or otherwise off-topic.`

const imageRelevancePrompt = `You are a moderator for a civic issue reporting portal.
Decide whether this image plausibly documents a civic issue such as road
damage, broken lighting, garbage, water problems, or damaged public
infrastructure. Reply with exactly one word: RELEVANT or IRRELEVANT.`

const chatSystemPrompt = `You are the assistant for a civic issue reporting portal.
Help citizens report issues like potholes, broken street lights, garbage,
water problems and traffic signals, and explain how their reports are
handled. Keep answers short and practical. Politely decline questions
unrelated to civic issues.`

// Telemetry receives per-call observability for every outbound request.
// Satisfied by telemetry.Provider.
type Telemetry interface {
	RecordExternalCall(ctx context.Context, capability string, duration time.Duration, err error)
	StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span)
}

// Client calls the OpenAI API for every externally delegated judgement.
// A shared token-bucket limiter throttles all capabilities together.
type Client struct {
	client         *openai.Client
	visionModel    string
	relevanceModel string
	chatModel      string
	limiter        *rate.Limiter
	telemetry      Telemetry
	logger         logging.Logger
}

// New creates a client from the service configuration. telemetry may be
// nil to run without instrumentation.
func New(cfg config.OpenAIConfig, telemetry Telemetry, logger logging.Logger) *Client {
	apiCfg := openai.DefaultConfig(cfg.APIKey)
	apiCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	if telemetry == nil {
		telemetry = nopTelemetry{}
	}

	return &Client{
		client:         openai.NewClientWithConfig(apiCfg),
		visionModel:    cfg.VisionModel,
		relevanceModel: cfg.RelevanceModel,
		chatModel:      cfg.ChatModel,
		limiter:        rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		telemetry:      telemetry,
		logger:         logger,
	}
}

// startCall opens a span for one capability call and returns a completion
// callback that records latency and outcome. Rate-limiter waiting is not
// counted; timing starts once the request is allowed through.
func (c *Client) startCall(ctx context.Context, capability string) (context.Context, func(error)) {
	ctx, span := c.telemetry.StartSpan(ctx, "openai."+capability,
		attribute.String("capability", capability),
	)
	start := time.Now()
	return ctx, func(err error) {
		c.telemetry.RecordExternalCall(ctx, capability, time.Since(start), err)
		if err != nil {
			span.RecordError(err)
		}
		span.End()
	}
}

// extractionResponse mirrors the JSON object the vision prompt asks for.
type extractionResponse struct {
	RawLabel       string `json:"raw_label"`
	SupportingText string `json:"supporting_text"`
}

// ExtractIssue runs the vision model over an uploaded image and returns
// the raw label and supporting text for normalization. A malformed model
// response is recovered into empty fields rather than an error; only
// transport failures propagate.
func (c *Client) ExtractIssue(ctx context.Context, imageB64 string) (domain.ClassificationInput, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return domain.ClassificationInput{}, err
	}

	ctx, done := c.startCall(ctx, capExtractIssue)
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.visionModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: extractionPrompt},
					imagePart(imageB64),
				},
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	done(err)
	if err != nil {
		return domain.ClassificationInput{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	input := domain.ClassificationInput{MediaPresent: true}
	if len(resp.Choices) == 0 {
		return input, nil
	}

	var parsed extractionResponse
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &parsed); err != nil {
		c.logger.Warn("vision extraction returned malformed JSON, using empty fields",
			"error", err,
		)
		return input, nil
	}

	input.RawLabel = strings.TrimSpace(parsed.RawLabel)
	input.SupportingText = strings.TrimSpace(parsed.SupportingText)
	return input, nil
}

// ClassifyTextSafety reports whether the text violates content policy.
func (c *Client) ClassifyTextSafety(ctx context.Context, text string) (bool, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return false, err
	}

	ctx, done := c.startCall(ctx, capTextSafety)
	resp, err := c.client.Moderations(ctx, openai.ModerationRequest{Input: text})
	done(err)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if len(resp.Results) == 0 {
		return false, nil
	}
	return resp.Results[0].Flagged, nil
}

// ClassifyRelevance asks the model whether the report describes a civic issue.
func (c *Client) ClassifyRelevance(ctx context.Context, title, description string) (domain.RelevanceVerdict, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	ctx, done := c.startCall(ctx, capRelevance)
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.relevanceModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: relevancePrompt},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("Title: %s\nDescription: %s", title, description),
			},
		},
	})
	done(err)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	if answerIs(resp, answerSpam) {
		return domain.RelevanceSpam, nil
	}
	return domain.RelevanceValid, nil
}

// CheckImageRelevance asks the vision model whether an image belongs in a report.
func (c *Client) CheckImageRelevance(ctx context.Context, imageB64 string) (domain.ImageRelevance, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	ctx, done := c.startCall(ctx, capImageRelevance)
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.visionModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: imageRelevancePrompt},
					imagePart(imageB64),
				},
			},
		},
	})
	done(err)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	if answerIs(resp, answerIrrelevant) {
		return domain.ImageIrrelevant, nil
	}
	return domain.ImageRelevant, nil
}

// Chat answers a free-form portal question.
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	ctx, done := c.startCall(ctx, capChat)
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: chatSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: message},
		},
	})
	done(err)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// answerIs reports whether the first choice equals the expected token,
// ignoring case and surrounding punctuation the model sometimes adds.
func answerIs(resp openai.ChatCompletionResponse, expected string) bool {
	if len(resp.Choices) == 0 {
		return false
	}
	answer := strings.ToUpper(strings.TrimSpace(resp.Choices[0].Message.Content))
	answer = strings.Trim(answer, ".!\"'")
	return answer == expected
}

// imagePart wraps a base64 image as a data-URI vision attachment.
// Already-prefixed data URIs pass through unchanged.
func imagePart(imageB64 string) openai.ChatMessagePart {
	url := imageB64
	if !strings.HasPrefix(url, "data:") {
		url = "data:image/jpeg;base64," + url
	}
	return openai.ChatMessagePart{
		Type: openai.ChatMessagePartTypeImageURL,
		ImageURL: &openai.ChatMessageImageURL{
			URL:    url,
			Detail: openai.ImageURLDetailLow,
		},
	}
}

// nopTelemetry discards all instrumentation.
type nopTelemetry struct{}

func (nopTelemetry) RecordExternalCall(context.Context, string, time.Duration, error) {}

func (nopTelemetry) StartSpan(ctx context.Context, _ string, _ ...attribute.KeyValue) (context.Context, trace.Span) {
	return ctx, trace.SpanFromContext(ctx)
}
