// Package classifier reconciles free-form model output against the closed
// taxonomies and assembles finished report payloads.
package classifier

import (
	"strings"
	"unicode"

	ahocorasick "github.com/cloudflare/ahocorasick"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/srishhttii05/resolvex/internal/domain"
	"github.com/srishhttii05/resolvex/internal/logging"
	"github.com/srishhttii05/resolvex/internal/taxonomy"
)

// Normalizer maps an external model's unconstrained text label onto one
// taxonomy entry using a staged match policy: exact name, name substring,
// keyword table, fallback. It is total: every input resolves to an entry.
type Normalizer struct {
	tax      *taxonomy.Taxonomy
	matcher  *ahocorasick.Matcher
	keywords []string // flattened keyword table in declared order
	kwEntry  []int    // keyword index -> entry index
	logger   logging.Logger
}

// NewNormalizer builds a normalizer for one taxonomy. The Aho-Corasick
// automaton is built over the flattened keyword table; declaration order
// is preserved so ties resolve to the earliest declared keyword.
func NewNormalizer(tax *taxonomy.Taxonomy, logger logging.Logger) *Normalizer {
	n := &Normalizer{tax: tax, logger: logger}

	for entryIdx, entry := range tax.Entries {
		for _, kw := range entry.Keywords {
			normalized := normalizeText(kw)
			if normalized == "" {
				continue
			}
			n.keywords = append(n.keywords, normalized)
			n.kwEntry = append(n.kwEntry, entryIdx)
		}
	}
	if len(n.keywords) > 0 {
		n.matcher = ahocorasick.NewStringMatcher(n.keywords)
	}

	logger.Debug("normalizer initialized",
		"taxonomy", tax.Name,
		"entries", len(tax.Entries),
		"keywords", len(n.keywords),
	)
	return n
}

// Normalize resolves a raw label (and optional supporting text) to a
// taxonomy entry. It never fails; unmatched input lands on the fallback.
func (n *Normalizer) Normalize(rawLabel, supportingText string) domain.ClassificationResult {
	label := normalizeText(rawLabel)

	// 1. Exact stage: trimmed raw label equals an entry name.
	for _, entry := range n.tax.Entries {
		if label == normalizeText(entry.Name) && label != "" {
			return n.result(entry, domain.MatchStageExact)
		}
	}

	// 2. Substring stage: first declared entry whose name, as declared,
	// appears inside the raw label. Matching the declared casing keeps
	// decorated labels ("Category: Pothole") here while leaving free
	// prose to the keyword stage.
	labelVerbatim := strings.TrimSpace(removeAccents(rawLabel))
	for _, entry := range n.tax.Entries {
		if entry.Fallback {
			continue
		}
		if labelVerbatim != "" && strings.Contains(labelVerbatim, entry.Name) {
			return n.result(entry, domain.MatchStageSubstring)
		}
	}

	// 3. Keyword stage: first keyword by table declaration order found
	// anywhere in the combined haystack.
	haystack := normalizeText(rawLabel + " " + supportingText)
	if n.matcher != nil && haystack != "" {
		hits := n.matcher.Match([]byte(haystack))
		if best := earliestDeclared(hits, len(n.keywords)); best >= 0 {
			entry := n.tax.Entries[n.kwEntry[best]]
			n.logger.Debug("keyword match",
				"taxonomy", n.tax.Name,
				"keyword", n.keywords[best],
				"category", entry.Name,
			)
			return n.result(entry, domain.MatchStageKeyword)
		}
	}

	// 4. Fallback.
	return n.result(n.tax.Fallback(), domain.MatchStageFallback)
}

// NormalizeInput is a convenience over a sanitized ClassificationInput.
func (n *Normalizer) NormalizeInput(in domain.ClassificationInput) domain.ClassificationResult {
	return n.Normalize(in.RawLabel, in.SupportingText)
}

// Taxonomy returns the taxonomy this normalizer is bound to.
func (n *Normalizer) Taxonomy() *taxonomy.Taxonomy {
	return n.tax
}

func (n *Normalizer) result(entry taxonomy.Entry, stage domain.MatchStage) domain.ClassificationResult {
	priority := domain.PriorityMedium
	if entry.HighPriority {
		priority = domain.PriorityHigh
	}
	return domain.ClassificationResult{
		Category:   entry.Name,
		MatchStage: stage,
		Priority:   priority,
	}
}

// earliestDeclared picks the lowest pattern index from the automaton hits,
// which is the first keyword by table declaration order.
func earliestDeclared(hits []int, keywordCount int) int {
	best := -1
	for _, hit := range hits {
		if hit < 0 || hit >= keywordCount {
			continue
		}
		if best == -1 || hit < best {
			best = hit
		}
	}
	return best
}

// normalizeText lowercases, strips accents, and collapses punctuation to
// spaces so matching is insensitive to casing and punctuation drift in
// model output.
func normalizeText(text string) string {
	text = strings.ToLower(removeAccents(text))

	var b strings.Builder
	b.Grow(len(text))
	lastSpace := false
	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '/' || r == '-':
			b.WriteRune(r)
			lastSpace = false
		default:
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// removeAccents strips combining marks so accented model output still
// matches plain-ASCII taxonomy names and keywords.
func removeAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}
