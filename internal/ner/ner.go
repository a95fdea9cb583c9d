// Copyright Sigma Labs Ltd., 2026. All rights reserved.

// Package ner wraps a pretrained named-entity recognition capability behind
// a small tagging interface. The engine only consumes entity spans; model
// choice and hosting (HTTP service or local container) stay behind the
// Tagger contract.
package ner

import (
	"context"
	"fmt"
	"iter"

	"github.com/sigmalabs/pharmazer/pkg/types"
)

// Entity labels the engine cares about. Other labels pass through and are
// ignored downstream.
const (
	LabelOrg = "ORG"
	LabelGPE = "GPE"
)

// Entity is one tagged span: a category label and the surface text.
type Entity struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// Tagger produces the ordered entity spans of a text. Implementations
// report unavailability at construction time; Tag errors are per-call.
type Tagger interface {
	Tag(ctx context.Context, text string) ([]Entity, error)
}

// Reversed iterates entities last-mentioned-first. Affiliation strings put
// the most specific organization and location at the end, so both country
// and institution extraction walk entities in this order.
func Reversed(entities []Entity) iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		for i := len(entities) - 1; i >= 0; i-- {
			if !yield(entities[i]) {
				return
			}
		}
	}
}

// New builds the configured tagger backend. A backend that cannot reach its
// model is a startup error for the whole pipeline, not a per-row one.
func New(cfg types.TaggerConfig) (Tagger, error) {
	switch cfg.Backend {
	case types.BackendService, "":
		return NewServiceTagger(cfg)
	case types.BackendContainer:
		return NewContainerTagger(cfg)
	default:
		return nil, fmt.Errorf("unknown tagger backend %q", cfg.Backend)
	}
}
