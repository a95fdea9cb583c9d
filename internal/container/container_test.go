// Copyright Sigma Labs Ltd., 2026. All rights reserved.

package container

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCommander scripts command outcomes for tests.
type fakeCommander struct {
	onPath  map[string]bool
	quiet   map[string]error // keyed by "name arg arg..."
	pipeOut string
	pipeErr error
	calls   []string
}

func (f *fakeCommander) LookPath(file string) (string, error) {
	if f.onPath[file] {
		return "/usr/bin/" + file, nil
	}
	return "", fmt.Errorf("%s: executable file not found in $PATH", file)
}

func (f *fakeCommander) RunQuiet(name string, args ...string) error {
	key := strings.Join(append([]string{name}, args...), " ")
	f.calls = append(f.calls, key)
	return f.quiet[key]
}

func (f *fakeCommander) RunPiped(name string, args []string, stdin io.Reader, stdout io.Writer) error {
	f.calls = append(f.calls, strings.Join(append([]string{name}, args...), " "))
	if f.pipeErr != nil {
		return f.pipeErr
	}
	io.Copy(io.Discard, stdin)
	fmt.Fprint(stdout, f.pipeOut)
	return nil
}

func TestDetectPrefersDocker(t *testing.T) {
	cmd := &fakeCommander{onPath: map[string]bool{"docker": true, "podman": true}, quiet: map[string]error{}}

	engine, err := detect(cmd)
	require.NoError(t, err)
	assert.Equal(t, "docker", engine.Name())
}

func TestDetectFallsBackToPodman(t *testing.T) {
	cmd := &fakeCommander{
		onPath: map[string]bool{"podman": true},
		quiet:  map[string]error{},
	}

	engine, err := detect(cmd)
	require.NoError(t, err)
	assert.Equal(t, "podman", engine.Name())
}

func TestDetectNoneAvailable(t *testing.T) {
	cmd := &fakeCommander{onPath: map[string]bool{}, quiet: map[string]error{}}

	_, err := detect(cmd)
	assert.ErrorContains(t, err, "no container engine available")
}

func TestHasImage(t *testing.T) {
	cmd := &fakeCommander{
		onPath: map[string]bool{"docker": true},
		quiet: map[string]error{
			"docker image inspect missing:latest": fmt.Errorf("exit status 1"),
		},
	}
	engine := newDocker(cmd)

	assert.NoError(t, engine.HasImage("ner:latest"))
	assert.ErrorContains(t, engine.HasImage("missing:latest"), "not found")
}

func TestPipe(t *testing.T) {
	cmd := &fakeCommander{
		onPath:  map[string]bool{"docker": true},
		quiet:   map[string]error{},
		pipeOut: "tagged",
	}
	engine := newDocker(cmd)

	var out bytes.Buffer
	require.NoError(t, engine.Pipe("ner:latest", strings.NewReader("text"), &out))
	assert.Equal(t, "tagged", out.String())
	assert.Contains(t, cmd.calls, "docker run --rm -i ner:latest")
}
