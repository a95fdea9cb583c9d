// Copyright Sigma Labs Ltd., 2026. All rights reserved.

// Package container detects a local container engine (docker or podman) and
// pipes text through single-shot containers, which is how the pipeline runs
// its NER image when no tagging service is configured.
package container

import (
	"fmt"
	"io"
	"os/exec"
)

const (
	binDocker = "docker"
	binPodman = "podman"
)

// Commander abstracts command execution for testing.
type Commander interface {
	LookPath(file string) (string, error)
	RunQuiet(name string, args ...string) error
	RunPiped(name string, args []string, stdin io.Reader, stdout io.Writer) error
}

// osCommander is the production Commander backed by os/exec.
type osCommander struct{}

func (osCommander) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osCommander) RunQuiet(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func (osCommander) RunPiped(name string, args []string, stdin io.Reader, stdout io.Writer) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	return cmd.Run()
}

// Engine runs containers through one binary. Docker and podman share the
// logic and differ only in name and the image-existence subcommand.
type Engine struct {
	bin         string
	inspectArgs []string
	cmd         Commander
}

// Name returns the engine binary name ("docker" or "podman").
func (e *Engine) Name() string { return e.bin }

func (e *Engine) available() bool {
	if _, err := e.cmd.LookPath(e.bin); err != nil {
		return false
	}
	return e.cmd.RunQuiet(e.bin, "info") == nil
}

// HasImage checks whether the named image exists locally. Returns nil when
// the image is found.
func (e *Engine) HasImage(image string) error {
	args := append(append([]string{}, e.inspectArgs...), image)
	if err := e.cmd.RunQuiet(e.bin, args...); err != nil {
		return fmt.Errorf("image %s not found in %s: %w", image, e.bin, err)
	}
	return nil
}

// Pipe runs a disposable container with the given image, wiring stdin and
// stdout through it.
func (e *Engine) Pipe(image string, stdin io.Reader, stdout io.Writer) error {
	args := []string{"run", "--rm", "-i", image}
	if err := e.cmd.RunPiped(e.bin, args, stdin, stdout); err != nil {
		return fmt.Errorf("running %s container %s: %w", e.bin, image, err)
	}
	return nil
}

func newDocker(cmd Commander) *Engine {
	return &Engine{bin: binDocker, inspectArgs: []string{"image", "inspect"}, cmd: cmd}
}

func newPodman(cmd Commander) *Engine {
	return &Engine{bin: binPodman, inspectArgs: []string{"image", "exists"}, cmd: cmd}
}

var defaultCommander Commander = osCommander{}

// Detect tries docker first, then podman. Returns an error when neither
// engine is available.
func Detect() (*Engine, error) {
	return detect(defaultCommander)
}

func detect(cmd Commander) (*Engine, error) {
	if docker := newDocker(cmd); docker.available() {
		return docker, nil
	}
	if podman := newPodman(cmd); podman.available() {
		return podman, nil
	}
	return nil, fmt.Errorf(
		"no container engine available: neither %s nor %s found or operational",
		binDocker, binPodman,
	)
}
