// Copyright Sigma Labs Ltd., 2026. All rights reserved.

package institutes

import (
	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"github.com/sigmalabs/pharmazer/internal/ner"
	"github.com/sigmalabs/pharmazer/pkg/types"
)

// defaultMinScore is the acceptance threshold on the 0-100 similarity
// scale.
const defaultMinScore = 90

// Outcome is a cached match result for one raw organization mention.
// A zero Outcome records that the mention matched nothing.
type Outcome struct {
	Name    string
	Matched bool
}

// Cache memoizes match outcomes by raw mention text for one run. The same
// organization string recurs across affiliations constantly; a hit skips
// every similarity computation. Written sequentially; a parallel-row design
// would need a locked or sharded variant.
type Cache map[string]Outcome

// NewCache returns an empty run-scoped cache.
func NewCache() Cache {
	return make(Cache)
}

// Scorer computes a 0-100 similarity between a mention and a reference
// name. Tests substitute a counting implementation.
type Scorer interface {
	Score(mention, reference string) float64
}

// LevenshteinScorer scores with a normalized edit-distance ratio.
type LevenshteinScorer struct {
	metric *metrics.Levenshtein
}

// NewScorer returns the production scorer.
func NewScorer() *LevenshteinScorer {
	return &LevenshteinScorer{metric: metrics.NewLevenshtein()}
}

// Score returns the normalized similarity of a and b scaled to 0-100.
func (s *LevenshteinScorer) Score(a, b string) float64 {
	return strutil.Similarity(a, b, s.metric) * 100
}

// Matcher finds the best-matching canonical institution name for the
// organization mentions of one affiliation.
type Matcher struct {
	names    []string
	scorer   Scorer
	minScore float64
}

// NewMatcher builds a matcher over the reference names.
func NewMatcher(names []string, scorer Scorer, cfg types.MatchConfig) *Matcher {
	minScore := cfg.MinScore
	if minScore <= 0 {
		minScore = defaultMinScore
	}
	return &Matcher{names: names, scorer: scorer, minScore: minScore}
}

// Match returns the canonical institution name and the raw mention it was
// matched from.
//
// Organization spans are considered last-mentioned-first, since addresses
// put the most specific organization at the end. The first mention with a
// cached outcome short-circuits the whole matcher. Otherwise every mention
// is scored against every reference name and the single best pairing at or
// above the threshold wins and is cached. When nothing qualifies the
// scored mentions are cached as misses and the first candidate is still
// reported, so the raw mention survives even without a canonical match.
func (m *Matcher) Match(entities []ner.Entity, cache Cache) (canonical, mention string) {
	var candidates []string
	for ent := range ner.Reversed(entities) {
		if ent.Label == ner.LabelOrg {
			candidates = append(candidates, ent.Text)
		}
	}

	if len(candidates) == 0 {
		return "", ""
	}

	for _, org := range candidates {
		if out, ok := cache[org]; ok {
			return out.Name, org
		}
	}

	var bestName, bestOrg string
	bestScore := 0.0

	for _, org := range candidates {
		for _, ref := range m.names {
			score := m.scorer.Score(org, ref)
			if score >= m.minScore && score > bestScore {
				bestScore = score
				bestName = ref
				bestOrg = org
			}
		}
	}

	if bestName != "" {
		cache[bestOrg] = Outcome{Name: bestName, Matched: true}
		return bestName, bestOrg
	}

	for _, org := range candidates {
		cache[org] = Outcome{}
	}
	return "", candidates[0]
}
