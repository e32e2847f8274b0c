package cmd

import (
	"fmt"

	"github.com/devantler-tech/hostkit/pkg/cli/cmd/db"
	"github.com/devantler-tech/hostkit/pkg/cli/cmd/server"
	"github.com/devantler-tech/hostkit/pkg/cli/cmd/tenant"
	"github.com/devantler-tech/hostkit/pkg/cli/cmd/venv"
	"github.com/devantler-tech/hostkit/pkg/cli/flags"
	"github.com/devantler-tech/hostkit/pkg/cli/ui/errorhandler"
	runtime "github.com/devantler-tech/hostkit/pkg/di"
	"github.com/spf13/cobra"
)

const rootLongDesc = `hostkit provisions Python web hosting tenants on a Debian or Ubuntu host over SSH.

Every tenant gets a UNIX account, a Python virtual environment, a uWSGI vassal behind an
nginx virtual host and a PostgreSQL role owning its own database. Connection settings come
from hostkit.yaml, HOSTKIT_* environment variables and the flags below, in increasing order
of precedence.

Examples:
  # Write a hostkit.yaml for the host
  hostkit init --host example.com

  # Check the connection, then prepare the host once
  hostkit connect
  hostkit server setup

  # Provision a Python 3 tenant with generated passwords
  hostkit tenant create acme.example

  # Provision a Python 2 tenant with a chosen password
  hostkit tenant create legacy.example s3cret --python 2

  # Install packages as the tenant
  hostkit --user acme.example --ask-password venv pip-install django`

// NewRootCmd creates and returns the root command with version info and subcommands.
func NewRootCmd(version, commit, date string) *cobra.Command {
	return NewRootCmdWithRuntime(version, commit, date, runtime.NewRuntime())
}

// NewRootCmdWithRuntime creates the root command with runtimeContainer supplying the
// dependencies of every subcommand.
func NewRootCmdWithRuntime(version, commit, date string, runtimeContainer *runtime.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "hostkit",
		Short:        "Provision Python hosting tenants over SSH",
		Long:         rootLongDesc,
		RunE:         handleRootRunE,
		SilenceUsage: true,
	}

	cmd.Version = fmt.Sprintf("%s (Built on %s from Git SHA %s)", version, date, commit)

	flags.AddPersistentFlags(cmd.PersistentFlags())

	cmd.AddCommand(NewInitCmd(runtimeContainer))
	cmd.AddCommand(NewConnectCmd(runtimeContainer))
	cmd.AddCommand(server.NewServerCmd(runtimeContainer))
	cmd.AddCommand(tenant.NewTenantCmd(runtimeContainer))
	cmd.AddCommand(db.NewDBCmd(runtimeContainer))
	cmd.AddCommand(venv.NewVenvCmd(runtimeContainer))

	return cmd
}

// Execute runs the provided root command and handles errors.
func Execute(cmd *cobra.Command) error {
	executor := errorhandler.NewExecutor()

	err := executor.Execute(cmd)
	if err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// --- internals ---

// handleRootRunE handles the root command.
func handleRootRunE(
	cmd *cobra.Command,
	_ []string,
) error {
	// The err can safely be ignored, as it can never fail at runtime.
	_ = cmd.Help()

	return nil
}
