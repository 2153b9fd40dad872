// Package standards holds the read-only registry of supported AAOIFI
// Financial Accounting Standards. The catalog is loaded once at startup and
// never mutated, so it is safe for unlimited concurrent readers.
package standards

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed standards.yaml
var embeddedCatalog []byte

// StandardDefinition describes one AAOIFI standard: identifying metadata,
// the key terms used for fallback classification, and the recognition and
// measurement rules echoed back to callers.
type StandardDefinition struct {
	ID                  string   `yaml:"id" json:"id"`
	Name                string   `yaml:"name" json:"name"`
	KeyTerms            []string `yaml:"key_terms" json:"key_terms"`
	RecognitionCriteria []string `yaml:"recognition_criteria" json:"recognition_criteria"`
	MeasurementRules    []string `yaml:"measurement_rules" json:"measurement_rules"`
}

// ErrNotFound reports that no standard matched a lookup. Callers treat this
// as a classification failure, not a crash.
type ErrNotFound struct {
	Query string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("standard not found for %s", e.Query)
}

type catalogFile struct {
	Standards []StandardDefinition `yaml:"standards"`
}

// Catalog is an ordered, immutable registry of standard definitions.
// Registration order is the tie-breaker for keyword matches.
type Catalog struct {
	ordered []StandardDefinition
	byID    map[string]*StandardDefinition

	// minOverlap is the smallest key-term intersection MatchByKeywords
	// accepts. Below it the match is treated as not found.
	minOverlap int
}

// NewCatalog parses a catalog from YAML bytes.
func NewCatalog(data []byte, minOverlap int) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse standards catalog: %w", err)
	}
	if len(file.Standards) == 0 {
		return nil, fmt.Errorf("standards catalog is empty")
	}
	if minOverlap < 1 {
		minOverlap = 1
	}

	c := &Catalog{
		ordered:    file.Standards,
		byID:       make(map[string]*StandardDefinition, len(file.Standards)),
		minOverlap: minOverlap,
	}
	for i := range c.ordered {
		def := &c.ordered[i]
		if _, dup := c.byID[def.ID]; dup {
			return nil, fmt.Errorf("duplicate standard id %q in catalog", def.ID)
		}
		c.byID[def.ID] = def
	}
	return c, nil
}

// Load builds the catalog from the embedded definitions, or from the YAML
// file at path when one is configured.
func Load(path string, minOverlap int) (*Catalog, error) {
	data := embeddedCatalog
	if path != "" {
		fileData, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read standards catalog %s: %w", path, err)
		}
		data = fileData
	}
	return NewCatalog(data, minOverlap)
}

// LookupByID returns the standard registered under id.
func (c *Catalog) LookupByID(id string) (*StandardDefinition, error) {
	if def, ok := c.byID[id]; ok {
		return def, nil
	}
	return nil, &ErrNotFound{Query: fmt.Sprintf("id %q", id)}
}

// MatchByKeywords returns the standard whose key terms overlap the given
// tokens the most. Ties go to the first-registered standard. An overlap
// below the configured minimum counts as no match.
func (c *Catalog) MatchByKeywords(tokens map[string]bool) (*StandardDefinition, error) {
	var best *StandardDefinition
	bestScore := 0
	for i := range c.ordered {
		def := &c.ordered[i]
		score := 0
		for _, term := range def.KeyTerms {
			if termMatches(term, tokens) {
				score++
			}
		}
		// Strict > keeps the first-registered standard on ties.
		if score > bestScore {
			best = def
			bestScore = score
		}
	}
	if best == nil || bestScore < c.minOverlap {
		return nil, &ErrNotFound{Query: "keyword match"}
	}
	return best, nil
}

// All returns the definitions in registration order.
func (c *Catalog) All() []StandardDefinition {
	out := make([]StandardDefinition, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// termMatches reports whether a key term (possibly multi-word, e.g.
// "exchange rate") is covered by the token set: every word of the term must
// be present.
func termMatches(term string, tokens map[string]bool) bool {
	words := strings.Fields(strings.ToLower(term))
	if len(words) == 0 {
		return false
	}
	for _, w := range words {
		if !tokens[w] {
			return false
		}
	}
	return true
}

// Tokenize lowercases free text and splits it into a token set suitable for
// MatchByKeywords. Punctuation other than apostrophes and hyphens is
// stripped so "Istisna'a," still yields "istisna'a".
func Tokenize(texts ...string) map[string]bool {
	tokens := make(map[string]bool)
	for _, text := range texts {
		for _, field := range strings.Fields(strings.ToLower(text)) {
			cleaned := strings.TrimFunc(field, func(r rune) bool {
				return !isTokenRune(r)
			})
			if cleaned != "" {
				tokens[cleaned] = true
			}
		}
	}
	return tokens
}

func isTokenRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		return true
	case r == '\'' || r == '-':
		return true
	}
	return false
}
