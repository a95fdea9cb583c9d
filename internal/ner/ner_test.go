package ner

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigmalabs/pharmazer/pkg/types"
)

func TestReversed(t *testing.T) {
	entities := []Entity{
		{Label: LabelOrg, Text: "Dept of Biology"},
		{Label: LabelOrg, Text: "Harvard University"},
		{Label: LabelGPE, Text: "USA"},
	}

	var got []string
	for e := range Reversed(entities) {
		got = append(got, e.Text)
	}
	assert.Equal(t, []string{"USA", "Harvard University", "Dept of Biology"}, got)
}

func TestReversedStopsEarly(t *testing.T) {
	entities := []Entity{{Text: "a"}, {Text: "b"}, {Text: "c"}}

	var got []string
	for e := range Reversed(entities) {
		got = append(got, e.Text)
		if len(got) == 1 {
			break
		}
	}
	assert.Equal(t, []string{"c"}, got)
}

// nerServer fakes the tagging service: /health plus /ent answering with
// canned entities.
func nerServer(t *testing.T, ents []Entity) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/ent", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req map[string]string
		if err := json.Unmarshal(body, &req); err != nil || req["text"] == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(map[string][]Entity{"ents": ents})
	})
	return httptest.NewServer(mux)
}

func TestServiceTagger(t *testing.T) {
	want := []Entity{
		{Label: LabelOrg, Text: "Harvard University"},
		{Label: LabelGPE, Text: "USA"},
	}
	ts := nerServer(t, want)
	defer ts.Close()

	tagger, err := NewServiceTagger(types.TaggerConfig{ServiceURL: ts.URL})
	require.NoError(t, err)

	got, err := tagger.Tag(context.Background(), "Harvard University, USA")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestServiceTaggerUnavailableAtStartup(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	url := ts.URL
	ts.Close()

	_, err := NewServiceTagger(types.TaggerConfig{ServiceURL: url})
	assert.ErrorContains(t, err, "NER service unavailable")
}

func TestServiceTaggerErrorStatus(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/ent", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	tagger, err := NewServiceTagger(types.TaggerConfig{ServiceURL: ts.URL})
	require.NoError(t, err)

	_, err = tagger.Tag(context.Background(), "text")
	assert.ErrorContains(t, err, "HTTP 500")
}

// fakeRunner scripts container behaviour for the container tagger.
type fakeRunner struct {
	missing bool
	out     string
	pipeErr error
}

func (f *fakeRunner) Name() string { return "docker" }

func (f *fakeRunner) HasImage(image string) error {
	if f.missing {
		return fmt.Errorf("image %s not found", image)
	}
	return nil
}

func (f *fakeRunner) Pipe(_ string, stdin io.Reader, stdout io.Writer) error {
	if f.pipeErr != nil {
		return f.pipeErr
	}
	io.Copy(io.Discard, stdin)
	fmt.Fprint(stdout, f.out)
	return nil
}

func TestContainerTagger(t *testing.T) {
	runner := &fakeRunner{out: `{"ents":[{"label":"GPE","text":"France"}]}`}

	tagger, err := newContainerTagger(runner, "")
	require.NoError(t, err)

	got, err := tagger.Tag(context.Background(), "Institut Pasteur, France")
	require.NoError(t, err)
	assert.Equal(t, []Entity{{Label: LabelGPE, Text: "France"}}, got)
}

func TestContainerTaggerMissingImage(t *testing.T) {
	_, err := newContainerTagger(&fakeRunner{missing: true}, "custom:1")
	assert.ErrorContains(t, err, "NER image not available")
}

func TestContainerTaggerBadOutput(t *testing.T) {
	tagger, err := newContainerTagger(&fakeRunner{out: "not json"}, "")
	require.NoError(t, err)

	_, err = tagger.Tag(context.Background(), strings.Repeat("x", 10))
	assert.ErrorContains(t, err, "parsing")
}
