package api

import (
	"github.com/srishhttii05/resolvex/internal/domain"
)

// ModerateRequest is the report submitted for moderation. Neither text
// field is required at the boundary: empty title or description flows
// through to the pipeline, whose gibberish check rejects it as Spam.
type ModerateRequest struct {
	Title       string   `json:"issue_title"`
	Description string   `json:"detailed_description"`
	Images      []string `json:"images"`
}

// WaterRequest is one water sample. Out-of-domain values are accepted;
// the predictor extrapolates rather than the API rejecting them.
type WaterRequest struct {
	PH           float64 `json:"ph"`
	Turbidity    float64 `json:"turbidity"`
	TDS          float64 `json:"tds"`
	Conductivity float64 `json:"conductivity"`
	Hardness     float64 `json:"hardness"`
	Coliform     string  `json:"coliform"`
}

// WaterResponse is the verdict for one water sample.
type WaterResponse struct {
	Status          domain.WaterStatus `json:"status"`
	Recommendations []string           `json:"recommendations"`
}

// ChatRequest is one portal assistant question.
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// ChatResponse is the assistant's reply.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// TaxonomyResponse describes one taxonomy for the frontend dropdowns.
type TaxonomyResponse struct {
	Domain     string   `json:"domain"`
	Categories []string `json:"categories"`
}

// toWaterSample converts the request into the domain sample. Unknown
// coliform strings are treated as absent; only explicit detection
// triggers the hard rule.
func toWaterSample(req WaterRequest) domain.WaterSample {
	coliform := domain.ColiformLevel(req.Coliform)
	switch coliform {
	case domain.ColiformPresent, domain.ColiformHigh:
	default:
		coliform = domain.ColiformAbsent
	}
	return domain.WaterSample{
		PH:           req.PH,
		Turbidity:    req.Turbidity,
		TDS:          req.TDS,
		Conductivity: req.Conductivity,
		Hardness:     req.Hardness,
		Coliform:     coliform,
	}
}
