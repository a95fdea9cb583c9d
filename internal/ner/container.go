// Copyright Sigma Labs Ltd., 2026. All rights reserved.

package ner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/sigmalabs/pharmazer/internal/container"
	"github.com/sigmalabs/pharmazer/pkg/types"
)

// defaultImage is the bundled single-shot NER image: reads text on stdin,
// writes {"ents": [...]} on stdout.
const defaultImage = "pharmazer-ner:latest"

// Runner is the container capability the tagger needs. *container.Engine
// satisfies it; tests supply a fake.
type Runner interface {
	Name() string
	HasImage(image string) error
	Pipe(image string, stdin io.Reader, stdout io.Writer) error
}

// ContainerTagger pipes text through an NER container image, one document
// per invocation. Slower than the service backend but needs nothing beyond
// a container engine and the image.
type ContainerTagger struct {
	runner Runner
	image  string
}

// NewContainerTagger detects a container engine and verifies the NER image
// exists locally before returning.
func NewContainerTagger(cfg types.TaggerConfig) (*ContainerTagger, error) {
	engine, err := container.Detect()
	if err != nil {
		return nil, err
	}
	return newContainerTagger(engine, cfg.Image)
}

func newContainerTagger(runner Runner, image string) (*ContainerTagger, error) {
	if image == "" {
		image = defaultImage
	}
	if err := runner.HasImage(image); err != nil {
		return nil, fmt.Errorf("NER image not available in %s: %w", runner.Name(), err)
	}
	return &ContainerTagger{runner: runner, image: image}, nil
}

// Tag runs the image over text and returns the decoded entity spans.
func (t *ContainerTagger) Tag(ctx context.Context, text string) ([]Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := t.runner.Pipe(t.image, strings.NewReader(text), &out); err != nil {
		return nil, fmt.Errorf("tagging with %s: %w", t.image, err)
	}

	var body entResponse
	if err := json.Unmarshal(out.Bytes(), &body); err != nil {
		return nil, fmt.Errorf("parsing %s output: %w", t.image, err)
	}
	return body.Ents, nil
}
