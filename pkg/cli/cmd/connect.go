package cmd

import (
	"github.com/devantler-tech/hostkit/pkg/cli/flags"
	"github.com/devantler-tech/hostkit/pkg/cli/helpers"
	"github.com/devantler-tech/hostkit/pkg/di"
	"github.com/devantler-tech/hostkit/pkg/svc/provisioner/server"
	"github.com/devantler-tech/hostkit/pkg/svc/remote"
	"github.com/devantler-tech/hostkit/pkg/utils/notify"
	"github.com/devantler-tech/hostkit/pkg/utils/timer"
	"github.com/spf13/cobra"
)

const connectLongDesc = `Connect to the target host and print its kernel identification.

Use it to check the connection settings before provisioning.

Examples:
  hostkit --host example.com connect
  hostkit --host example.com --user admin --ask-password connect`

// NewConnectCmd creates the connect command.
func NewConnectCmd(runtimeContainer *di.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:          "connect",
		Short:        "Check the connection to the target host",
		Long:         connectLongDesc,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         helpers.WithOperator(runtimeContainer, HandleConnectRunE),
	}
}

// HandleConnectRunE identifies the host behind session.
func HandleConnectRunE(
	cmd *cobra.Command,
	_ []string,
	_ *helpers.Target,
	session *remote.Session,
	tmr timer.Timer,
) error {
	identity, err := server.Identify(cmd.Context(), session.Standard)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	notify.SuccessWithTimerf(out, flags.MaybeTimer(cmd, tmr), "connected to %s as %s", session.Host, session.User)
	notify.Infof(out, "%s", identity)

	return nil
}
