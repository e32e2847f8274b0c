package errorhandler_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/devantler-tech/hostkit/pkg/cli/ui/errorhandler"
	"github.com/devantler-tech/hostkit/pkg/svc/provisioner/provisionerr"
	"github.com/devantler-tech/hostkit/pkg/svc/remote"
	"github.com/devantler-tech/hostkit/pkg/svc/secret"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func TestExecute_Success(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{Use: "hostkit", RunE: func(*cobra.Command, []string) error { return nil }}

	require.NoError(t, errorhandler.NewExecutor().Execute(cmd))
	require.NoError(t, errorhandler.NewExecutor().Execute(nil))
}

func TestExecute_WrapsRunError(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{
		Use:          "hostkit",
		SilenceUsage: true,
		RunE:         func(*cobra.Command, []string) error { return fmt.Errorf("provision: %w", errBoom) },
	}
	cmd.SetArgs([]string{})

	err := errorhandler.NewExecutor().Execute(cmd)

	require.ErrorIs(t, err, errBoom)

	var cmdErr *errorhandler.CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, "provision: boom", cmdErr.Error())
}

func TestExecute_UnknownSubcommand(t *testing.T) {
	t.Parallel()

	root := &cobra.Command{Use: "hostkit"}
	root.AddCommand(&cobra.Command{Use: "connect", Run: func(*cobra.Command, []string) {}})
	root.SetArgs([]string{"conect"})

	err := errorhandler.NewExecutor().Execute(root)

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown command "conect"`)
	assert.NotContains(t, err.Error(), "Error: ")
}

func TestCommandError_NilReceiver(t *testing.T) {
	t.Parallel()

	var cmdErr *errorhandler.CommandError

	assert.Empty(t, cmdErr.Error())
	assert.NoError(t, cmdErr.Unwrap())
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "empty", raw: "  \n", want: ""},
		{name: "prefix", raw: "Error: bad flag\n", want: "bad flag"},
		{name: "usage kept", raw: "Error: bad flag\nRun 'hostkit --help'\n", want: "bad flag\nRun 'hostkit --help'"},
		{name: "no prefix", raw: "plain", want: "plain"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, errorhandler.Normalizer{}.Normalize(testCase.raw))
		})
	}
}

func TestHint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		err   error
		empty bool
		want  string
	}{
		{name: "nil", err: nil, empty: true},
		{name: "unknown", err: errBoom, empty: true},
		{name: "already exists", err: fmt.Errorf("x: %w", provisionerr.ErrAlreadyExists), want: "pick another name"},
		{name: "exhausted", err: provisionerr.ErrNameSpaceExhausted, want: "maxAttempts"},
		{name: "entropy", err: secret.ErrEntropySourceUnavailable, want: "random source"},
		{
			name: "remote",
			err:  fmt.Errorf("publish: %w", &remote.CommandError{Program: "ln", ExitStatus: 1}),
			want: "--verbose",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			hint := errorhandler.Hint(testCase.err)
			if testCase.empty {
				assert.Empty(t, hint)

				return
			}

			assert.Contains(t, hint, testCase.want)
		})
	}
}
