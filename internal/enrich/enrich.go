// Copyright Sigma Labs Ltd., 2026. All rights reserved.

// Package enrich turns free-text affiliation strings into structured fields
// and flattens the citation tree into one output row per article, author,
// and affiliation.
package enrich

import (
	"context"
	"fmt"

	"github.com/sigmalabs/pharmazer/internal/country"
	"github.com/sigmalabs/pharmazer/internal/institutes"
	"github.com/sigmalabs/pharmazer/internal/ner"
	"github.com/sigmalabs/pharmazer/internal/textextract"
	"github.com/sigmalabs/pharmazer/pkg/types"
)

// Fields is the structured result of enriching one affiliation string.
// Empty strings mean the field could not be resolved.
type Fields struct {
	// Email is the contact address found in the text.
	Email string

	// Zipcode is the postal code found in the text.
	Zipcode string

	// SourceName is the raw organization mention the matcher settled on.
	SourceName string

	// GridName is the canonical institution name from the reference
	// dataset, when a mention scored above the threshold.
	GridName string

	// GridID is the external identifier of GridName.
	GridID string

	// Country is the canonical country name.
	Country string
}

// Enricher runs the extraction sequence for one affiliation string:
// email, then postal code, then entity tagging, then country normalization
// and institution matching, then identifier resolution. The match cache is
// shared across every affiliation of a run.
type Enricher struct {
	tagger    ner.Tagger
	store     *institutes.Store
	matcher   *institutes.Matcher
	countries country.Set
	cache     institutes.Cache
}

// NewEnricher wires an enricher over the given tagger and reference store.
func NewEnricher(tagger ner.Tagger, store *institutes.Store, cfg types.MatchConfig) *Enricher {
	return &Enricher{
		tagger:    tagger,
		store:     store,
		matcher:   institutes.NewMatcher(store.Names(), institutes.NewScorer(), cfg),
		countries: country.NewSet(),
		cache:     institutes.NewCache(),
	}
}

// Enrich extracts the structured fields of one affiliation string.
//
// On a tagging failure the pattern-extracted fields already resolved are
// returned alongside the error; the caller decides whether to record the
// partial result. Reference-integrity errors from identifier resolution
// propagate as-is so they stay distinguishable from extraction failures.
func (e *Enricher) Enrich(ctx context.Context, affiliation string) (Fields, error) {
	var fields Fields

	var remaining string
	fields.Email, remaining = textextract.ExtractEmail(affiliation)
	fields.Zipcode, remaining = textextract.ExtractZipcode(remaining)

	entities, err := e.tagger.Tag(ctx, remaining)
	if err != nil {
		return fields, fmt.Errorf("tagging affiliation: %w", err)
	}

	fields.GridName, fields.SourceName = e.matcher.Match(entities, e.cache)

	fields.GridID, err = e.store.IdentifierFor(fields.GridName)
	if err != nil {
		return fields, err
	}

	fields.Country = country.Normalize(entities, e.countries)

	return fields, nil
}
