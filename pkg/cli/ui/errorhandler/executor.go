// Package errorhandler runs the root command and turns its failures into operator-facing errors.
package errorhandler

import (
	"bytes"
	"errors"
	"strings"

	"github.com/devantler-tech/hostkit/pkg/svc/provisioner/provisionerr"
	"github.com/devantler-tech/hostkit/pkg/svc/remote"
	"github.com/devantler-tech/hostkit/pkg/svc/secret"
	"github.com/spf13/cobra"
)

// Executor runs a cobra command and collects what cobra printed to stderr.
type Executor struct {
	normalizer Normalizer
}

// NewExecutor returns an Executor using the default normalizer.
func NewExecutor() *Executor {
	return &Executor{normalizer: Normalizer{}}
}

// Execute runs cmd. On failure it returns a *CommandError carrying the normalized
// stderr output and the original error.
func (e *Executor) Execute(cmd *cobra.Command) error {
	if cmd == nil {
		return nil
	}

	var stderr bytes.Buffer

	previous := cmd.ErrOrStderr()

	cmd.SetErr(&stderr)
	defer cmd.SetErr(previous)

	err := cmd.Execute()
	if err == nil {
		return nil
	}

	return &CommandError{message: e.normalizer.Normalize(stderr.String()), cause: err}
}

// CommandError is a failed command run.
type CommandError struct {
	message string
	cause   error
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	switch {
	case e == nil:
		return ""
	case e.cause == nil:
		return e.message
	case e.message == "":
		return e.cause.Error()
	case strings.Contains(e.message, e.cause.Error()):
		return e.message
	default:
		return e.message + ": " + e.cause.Error()
	}
}

// Unwrap returns the original error.
func (e *CommandError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.cause
}

// Hint suggests what the operator can do about err. It returns "" when there is nothing to add.
func Hint(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, provisionerr.ErrAlreadyExists):
		return "the name is taken on the host; pick another name or remove the existing account first"
	case errors.Is(err, provisionerr.ErrNameSpaceExhausted):
		return "no free database name was found; raise spec.database.maxAttempts or clean up unused databases"
	case errors.Is(err, secret.ErrEntropySourceUnavailable):
		return "the local random source failed; no remote changes were made after this point"
	case errors.Is(err, remote.ErrRemoteCommand):
		return "re-run with --verbose to log every remote program; steps that completed remain on the host"
	default:
		return ""
	}
}

// Normalizer cleans up cobra's stderr output.
type Normalizer struct{}

// Normalize trims whitespace and drops the "Error: " prefix of the first line.
// Following lines, such as usage hints, are kept.
func (Normalizer) Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	first, rest, found := strings.Cut(trimmed, "\n")
	first = strings.TrimPrefix(strings.TrimSpace(first), "Error: ")

	if !found {
		return first
	}

	return first + "\n" + rest
}
