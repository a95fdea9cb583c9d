// Copyright Sigma Labs Ltd., 2026. All rights reserved.

package ner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sigmalabs/pharmazer/internal/httputil"
	"github.com/sigmalabs/pharmazer/pkg/types"
)

// ServiceTagger calls an NER HTTP service that accepts {"text": ...} on
// /ent and answers with the tagged spans. The service is expected to run
// with parsing and part-of-speech stages disabled; entity recognition is
// all the pipeline needs.
type ServiceTagger struct {
	baseURL    string
	client     *http.Client
	userAgent  string
	maxRetries int
}

// entResponse is the wire shape of a tagging response.
type entResponse struct {
	Ents []Entity `json:"ents"`
}

// NewServiceTagger builds a tagger against cfg.ServiceURL and verifies the
// service is reachable. An unreachable service fails construction.
func NewServiceTagger(cfg types.TaggerConfig) (*ServiceTagger, error) {
	if cfg.ServiceURL == "" {
		return nil, fmt.Errorf("tagger service URL not configured")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	t := &ServiceTagger{
		baseURL:    strings.TrimSuffix(cfg.ServiceURL, "/"),
		client:     &http.Client{Timeout: timeout},
		userAgent:  cfg.UserAgent,
		maxRetries: cfg.MaxRetries,
	}

	if err := t.ping(); err != nil {
		return nil, fmt.Errorf("NER service unavailable at %s: %w", t.baseURL, err)
	}
	return t, nil
}

func (t *ServiceTagger) ping() error {
	resp, err := t.client.Get(t.baseURL + "/health")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned HTTP %d", resp.StatusCode)
	}
	return nil
}

// Tag sends text to the service and returns its entity spans in document
// order.
func (t *ServiceTagger) Tag(ctx context.Context, text string) ([]Entity, error) {
	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, fmt.Errorf("encoding tag request: %w", err)
	}

	newReq := func() (*http.Request, error) {
		req, err := http.NewRequest(http.MethodPost, t.baseURL+"/ent", bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		if t.userAgent != "" {
			req.Header.Set("User-Agent", t.userAgent)
		}
		return req, nil
	}

	resp, err := httputil.PostWithRetry(ctx, t.client, newReq, t.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("NER service request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("NER service returned HTTP %d", resp.StatusCode)
	}

	var body entResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("parsing NER response: %w", err)
	}
	return body.Ents, nil
}
