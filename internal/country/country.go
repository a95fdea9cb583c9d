// Copyright Sigma Labs Ltd., 2026. All rights reserved.

// Package country resolves tagged geopolitical-entity spans to canonical
// ISO 3166-1 English short names.
package country

import (
	"github.com/pariz/gountries"

	"github.com/sigmalabs/pharmazer/internal/ner"
)

// Set holds the canonical country names accepted by Normalize.
type Set map[string]struct{}

// NewSet builds the canonical set from the embedded ISO 3166-1 data.
func NewSet() Set {
	query := gountries.New()

	set := make(Set)
	for _, c := range query.FindAllCountries() {
		set[c.Name.Common] = struct{}{}
	}
	return set
}

// Contains reports whether name is a canonical country name.
func (s Set) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// aliases resolve common affiliation spellings that are not ISO short
// names. Checked before set membership.
var aliases = map[string]string{
	"UK":                       "United Kingdom",
	"U.K":                      "United Kingdom",
	"USA":                      "United States",
	"U.S.A":                    "United States",
	"United States of America": "United States",
}

// Normalize returns the canonical country name of the affiliation, walking
// geopolitical-entity spans last-mentioned-first. The first span that
// resolves through the alias table or matches a canonical name wins.
// Returns "" when no span qualifies.
func Normalize(entities []ner.Entity, countries Set) string {
	for ent := range ner.Reversed(entities) {
		if ent.Label != ner.LabelGPE {
			continue
		}

		if canonical, ok := aliases[ent.Text]; ok {
			return canonical
		}
		if countries.Contains(ent.Text) {
			return ent.Text
		}
	}
	return ""
}
