// Package taxonomy defines the closed category sets used by the normalizer.
// Each taxonomy is an ordered list of entries; entry order and keyword order
// are significant because they decide ties during keyword matching.
package taxonomy

import (
	"fmt"
	"strings"
)

// Entry is one allowed category within a taxonomy.
type Entry struct {
	Name         string
	Keywords     []string
	HighPriority bool
	Fallback     bool
}

// Taxonomy is a closed, ordered set of categories for one report domain.
type Taxonomy struct {
	Name    string
	Entries []Entry
}

// Fallback returns the designated default entry.
// Validate guarantees exactly one exists.
func (t *Taxonomy) Fallback() Entry {
	for _, e := range t.Entries {
		if e.Fallback {
			return e
		}
	}
	// Unreachable for validated taxonomies; return a safe default anyway.
	return Entry{Name: "Other", Fallback: true}
}

// Names returns the entry names in declared order.
func (t *Taxonomy) Names() []string {
	names := make([]string, len(t.Entries))
	for i, e := range t.Entries {
		names[i] = e.Name
	}
	return names
}

// Validate checks the taxonomy invariants: unique case-insensitive names,
// exactly one fallback entry, non-empty keyword lists on non-fallback
// entries, and no keywords on the fallback (it is never keyword-matched).
func (t *Taxonomy) Validate() error {
	if len(t.Entries) == 0 {
		return fmt.Errorf("taxonomy %q has no entries", t.Name)
	}

	seen := make(map[string]bool, len(t.Entries))
	fallbacks := 0
	for _, e := range t.Entries {
		key := strings.ToLower(e.Name)
		if seen[key] {
			return fmt.Errorf("taxonomy %q: duplicate entry name %q", t.Name, e.Name)
		}
		seen[key] = true

		if e.Fallback {
			fallbacks++
			if len(e.Keywords) != 0 {
				return fmt.Errorf("taxonomy %q: fallback entry %q must not carry keywords", t.Name, e.Name)
			}
			continue
		}
		if len(e.Keywords) == 0 {
			return fmt.Errorf("taxonomy %q: entry %q has no keywords", t.Name, e.Name)
		}
	}

	if fallbacks != 1 {
		return fmt.Errorf("taxonomy %q: expected exactly one fallback entry, found %d", t.Name, fallbacks)
	}
	return nil
}
