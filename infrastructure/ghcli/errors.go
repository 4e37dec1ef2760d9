package ghcli

import (
	"fmt"
	"strings"
)

// CommandError describes a gh invocation that failed.
type CommandError struct {
	// Args are the gh arguments, without the binary.
	Args []string
	// ExitCode is the process exit status; -1 if it never ran.
	ExitCode int
	// Stderr is the trimmed standard error output.
	Stderr string

	kind error
	err  error
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	cmd := "gh " + strings.Join(e.Args[:min(2, len(e.Args))], " ")
	switch {
	case e.err != nil:
		return fmt.Sprintf("%v: %s: %v", e.kind, cmd, e.err)
	case e.Stderr != "":
		return fmt.Sprintf("%v: %s: exit status %d: %s", e.kind, cmd, e.ExitCode, e.Stderr)
	default:
		return fmt.Sprintf("%v: %s: exit status %d", e.kind, cmd, e.ExitCode)
	}
}

// Unwrap returns the operation sentinel and, if the command never ran,
// the underlying cause.
func (e *CommandError) Unwrap() []error {
	if e.err != nil {
		return []error{e.kind, e.err}
	}
	return []error{e.kind}
}
