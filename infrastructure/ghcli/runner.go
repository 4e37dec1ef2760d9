// Package ghcli drives the GitHub CLI (gh) as the issue collaborator.
package ghcli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"time"
)

// Output is the captured result of one command.
type Output struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// Runner executes external commands.
//
// A non-zero exit is reported through Output.ExitCode, not as an error;
// the error is reserved for commands that could not be run at all.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Output, error)
}

// ExecRunner runs commands as child processes.
type ExecRunner struct {
	// Dir is the working directory; the current one when empty.
	Dir string
	// Env adds variables to the inherited environment.
	Env map[string]string
}

// Run implements Runner.
func (r ExecRunner) Run(ctx context.Context, name string, args ...string) (Output, error) {
	cmd := exec.CommandContext(ctx, name, args...) // #nosec G204 -- fixed gh subcommands
	cmd.Dir = r.Dir
	cmd.Env = os.Environ()
	for k, v := range r.Env {
		cmd.Env = append(cmd.Env, k+"="+v)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	out := Output{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		out.ExitCode = exitErr.ExitCode()
		return out, nil
	}
	return out, err
}
