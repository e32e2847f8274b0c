// Package confirm provides confirmation prompt utilities for host-wide changes.
package confirm

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/devantler-tech/hostkit/pkg/utils/notify"
	"golang.org/x/term"
)

// ErrCancelled is returned when the operator does not confirm.
var ErrCancelled = errors.New("cancelled by operator")

// Preview lists the changes a command is about to make.
type Preview struct {
	Host    string
	Changes []string
}

var (
	//nolint:gochecknoglobals // dependency injection for tests
	ttyCheckerMu sync.RWMutex
	//nolint:gochecknoglobals // dependency injection for tests
	ttyCheckerOverride func(io.Reader) bool
)

// SetTTYCheckerForTests overrides the TTY checker for testing.
// Returns a restore function that should be called to reset the override.
func SetTTYCheckerForTests(checker func(io.Reader) bool) func() {
	ttyCheckerMu.Lock()

	previous := ttyCheckerOverride
	ttyCheckerOverride = checker

	ttyCheckerMu.Unlock()

	return func() {
		ttyCheckerMu.Lock()

		ttyCheckerOverride = previous

		ttyCheckerMu.Unlock()
	}
}

// IsTTY reports whether in is an interactive terminal.
func IsTTY(in io.Reader) bool {
	ttyCheckerMu.RLock()

	override := ttyCheckerOverride

	ttyCheckerMu.RUnlock()

	if override != nil {
		return override(in)
	}

	file, ok := in.(*os.File)

	return ok && term.IsTerminal(int(file.Fd()))
}

// ShouldSkipPrompt reports whether to proceed without asking: with force set or when
// in is not a terminal, as in CI pipelines.
func ShouldSkipPrompt(force bool, in io.Reader) bool {
	return force || !IsTTY(in)
}

// ShowPreview writes the planned changes to writer.
func ShowPreview(writer io.Writer, preview Preview) {
	notify.Warningf(writer, "The following changes will be made on %s:", preview.Host)

	var text strings.Builder

	for i, change := range preview.Changes {
		if i > 0 {
			text.WriteString("\n")
		}

		text.WriteString("  - " + change)
	}

	notify.Infof(writer, "%s", text.String())
}

// PromptForConfirmation asks the operator to type "yes" and reads the answer from in.
// Only "yes", in any case, confirms.
func PromptForConfirmation(in io.Reader, writer io.Writer) bool {
	notify.Warningf(writer, `Type "yes" to continue: `)

	input, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false
	}

	return strings.EqualFold(strings.TrimSpace(input), "yes")
}

// Confirm shows preview and asks for confirmation unless the prompt should be skipped.
func Confirm(in io.Reader, writer io.Writer, preview Preview, force bool) error {
	if ShouldSkipPrompt(force, in) {
		return nil
	}

	ShowPreview(writer, preview)

	if !PromptForConfirmation(in, writer) {
		return ErrCancelled
	}

	return nil
}
