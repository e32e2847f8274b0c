package flags_test

import (
	"testing"

	"github.com/devantler-tech/hostkit/pkg/cli/flags"
	"github.com/devantler-tech/hostkit/pkg/utils/timer"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsBenchmarkEnabled_NilCommand(t *testing.T) {
	t.Parallel()

	_, err := flags.IsBenchmarkEnabled(nil)
	require.ErrorIs(t, err, flags.ErrNilCommand)
}

func TestIsBenchmarkEnabled_FlagFalse(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{}
	cmd.Flags().Bool(flags.BenchmarkFlagName, false, "")

	enabled, err := flags.IsBenchmarkEnabled(cmd)
	require.NoError(t, err)
	assert.False(t, enabled)
}

func TestIsBenchmarkEnabled_FlagTrue(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{}
	cmd.Flags().Bool(flags.BenchmarkFlagName, true, "")

	enabled, err := flags.IsBenchmarkEnabled(cmd)
	require.NoError(t, err)
	assert.True(t, enabled)
}

func TestIsBenchmarkEnabled_InheritedFromParent(t *testing.T) {
	t.Parallel()

	parent := &cobra.Command{}
	parent.PersistentFlags().Bool(flags.BenchmarkFlagName, true, "")

	child := &cobra.Command{}
	parent.AddCommand(child)

	enabled, err := flags.IsBenchmarkEnabled(child)
	require.NoError(t, err)
	assert.True(t, enabled)
}

func TestIsBenchmarkEnabled_FlagNotFound(t *testing.T) {
	t.Parallel()

	_, err := flags.IsBenchmarkEnabled(&cobra.Command{})
	require.ErrorIs(t, err, flags.ErrFlagNotFound)
	assert.ErrorContains(t, err, "--benchmark")
}

func TestIsVerbose(t *testing.T) {
	t.Parallel()

	assert.False(t, flags.IsVerbose(nil))
	assert.False(t, flags.IsVerbose(&cobra.Command{}))

	cmd := &cobra.Command{}
	cmd.Flags().Bool(flags.VerboseFlagName, true, "")
	assert.True(t, flags.IsVerbose(cmd))
}

func TestMaybeTimer(t *testing.T) {
	t.Parallel()

	tmr := timer.New()

	tests := []struct {
		name    string
		cmd     func() *cobra.Command
		timer   timer.Timer
		wantNil bool
	}{
		{name: "nil command", cmd: func() *cobra.Command { return nil }, timer: tmr, wantNil: true},
		{
			name: "nil timer",
			cmd: func() *cobra.Command {
				cmd := &cobra.Command{}
				cmd.Flags().Bool(flags.BenchmarkFlagName, true, "")

				return cmd
			},
			wantNil: true,
		},
		{
			name: "disabled",
			cmd: func() *cobra.Command {
				cmd := &cobra.Command{}
				cmd.Flags().Bool(flags.BenchmarkFlagName, false, "")

				return cmd
			},
			timer:   tmr,
			wantNil: true,
		},
		{name: "flag missing", cmd: func() *cobra.Command { return &cobra.Command{} }, timer: tmr, wantNil: true},
		{
			name: "enabled",
			cmd: func() *cobra.Command {
				cmd := &cobra.Command{}
				cmd.Flags().Bool(flags.BenchmarkFlagName, true, "")

				return cmd
			},
			timer: tmr,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			result := flags.MaybeTimer(tc.cmd(), tc.timer)
			if tc.wantNil {
				assert.Nil(t, result)

				return
			}

			assert.Equal(t, tc.timer, result)
		})
	}
}

func TestAddPersistentFlags(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{}
	flags.AddPersistentFlags(cmd.PersistentFlags())

	for _, name := range []string{
		flags.ConfigFlagName,
		flags.HostFlagName,
		flags.PortFlagName,
		flags.UserFlagName,
		flags.IdentityFileFlagName,
		flags.PublicKeyFileFlagName,
		flags.KnownHostsFileFlagName,
		flags.InsecureIgnoreHostKeyFlagName,
		flags.TimeoutFlagName,
		flags.AskPasswordFlagName,
		flags.VerboseFlagName,
		flags.BenchmarkFlagName,
	} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}

	user, err := cmd.PersistentFlags().GetString(flags.UserFlagName)
	require.NoError(t, err)
	assert.Equal(t, "root", user)
}
