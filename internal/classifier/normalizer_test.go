package classifier

import (
	"testing"

	"github.com/srishhttii05/resolvex/internal/domain"
	"github.com/srishhttii05/resolvex/internal/logging"
	"github.com/srishhttii05/resolvex/internal/taxonomy"
)

func newCivicNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	return NewNormalizer(taxonomy.Civic(), logging.Nop())
}

func TestNormalize_Stages(t *testing.T) {
	n := newCivicNormalizer(t)

	tests := []struct {
		name           string
		rawLabel       string
		supportingText string
		wantCategory   string
		wantStage      domain.MatchStage
		wantPriority   domain.Priority
	}{
		{
			name:         "exact entry name",
			rawLabel:     "Pothole",
			wantCategory: "Pothole",
			wantStage:    domain.MatchStageExact,
			wantPriority: domain.PriorityHigh,
		},
		{
			name:         "exact ignores casing",
			rawLabel:     "street light",
			wantCategory: "Street Light",
			wantStage:    domain.MatchStageExact,
			wantPriority: domain.PriorityMedium,
		},
		{
			name:         "exact ignores accents",
			rawLabel:     "Pothòle",
			wantCategory: "Pothole",
			wantStage:    domain.MatchStageExact,
			wantPriority: domain.PriorityHigh,
		},
		{
			name:         "entry name inside decorated label",
			rawLabel:     "Category: Pothole (urgent)",
			wantCategory: "Pothole",
			wantStage:    domain.MatchStageSubstring,
			wantPriority: domain.PriorityHigh,
		},
		{
			name:         "free prose resolves through keyword table",
			rawLabel:     "I see a large pothole in the road",
			wantCategory: "Pothole",
			wantStage:    domain.MatchStageKeyword,
			wantPriority: domain.PriorityHigh,
		},
		{
			name:           "keyword from supporting text only",
			rawLabel:       "",
			supportingText: "a broken lamp post near the corner",
			wantCategory:   "Street Light",
			wantStage:      domain.MatchStageKeyword,
			wantPriority:   domain.PriorityMedium,
		},
		{
			name:         "no match lands on fallback",
			rawLabel:     "something entirely unrelated",
			wantCategory: "Other",
			wantStage:    domain.MatchStageFallback,
			wantPriority: domain.PriorityMedium,
		},
		{
			name:         "empty input lands on fallback",
			rawLabel:     "",
			wantCategory: "Other",
			wantStage:    domain.MatchStageFallback,
			wantPriority: domain.PriorityMedium,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := n.Normalize(tt.rawLabel, tt.supportingText)
			if got.Category != tt.wantCategory {
				t.Errorf("category = %q, want %q", got.Category, tt.wantCategory)
			}
			if got.MatchStage != tt.wantStage {
				t.Errorf("match stage = %q, want %q", got.MatchStage, tt.wantStage)
			}
			if got.Priority != tt.wantPriority {
				t.Errorf("priority = %q, want %q", got.Priority, tt.wantPriority)
			}
		})
	}
}

func TestNormalize_KeywordDeclarationOrderWinsTies(t *testing.T) {
	n := newCivicNormalizer(t)

	// Mentions both a water keyword ("drain") and a pothole keyword
	// ("road maintenance"); the pothole table is declared first.
	got := n.Normalize("the drain near the road maintenance site", "")
	if got.Category != "Pothole" {
		t.Errorf("category = %q, want Pothole (earliest declared keyword)", got.Category)
	}
	if got.MatchStage != domain.MatchStageKeyword {
		t.Errorf("match stage = %q, want keyword", got.MatchStage)
	}
}

func TestNormalize_IsTotal(t *testing.T) {
	n := newCivicNormalizer(t)

	inputs := []string{"", "   ", "!!!???", "éàü", "1234567890", "\n\t"}
	for _, in := range inputs {
		got := n.Normalize(in, "")
		if got.Category == "" {
			t.Errorf("Normalize(%q) returned empty category", in)
		}
	}
}

func TestNormalize_WasteDomain(t *testing.T) {
	n := NewNormalizer(taxonomy.Waste(), logging.Nop())

	got := n.Normalize("there is a used syringe on the pavement", "")
	if got.Category != "Biomedical" {
		t.Errorf("category = %q, want Biomedical", got.Category)
	}
	if got.Priority != domain.PriorityHigh {
		t.Errorf("priority = %q, want high", got.Priority)
	}
}

func TestNormalizeInput(t *testing.T) {
	n := newCivicNormalizer(t)

	got := n.NormalizeInput(domain.ClassificationInput{
		RawLabel:       "Garbage/Waste",
		SupportingText: "overflowing bins",
	})
	if got.Category != "Garbage/Waste" {
		t.Errorf("category = %q, want Garbage/Waste", got.Category)
	}
	if got.MatchStage != domain.MatchStageExact {
		t.Errorf("match stage = %q, want exact", got.MatchStage)
	}
}

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Hello,   World!  ", "hello world"},
		{"Garbage/Waste", "garbage/waste"},
		{"E-Waste", "e-waste"},
		{"Pothòle", "pothole"},
		{"", ""},
		{"!!!", ""},
	}
	for _, tt := range tests {
		if got := normalizeText(tt.in); got != tt.want {
			t.Errorf("normalizeText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
