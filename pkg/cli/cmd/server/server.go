// Package server provides the commands that prepare the target host.
package server

import (
	"fmt"

	"github.com/devantler-tech/hostkit/pkg/cli/flags"
	"github.com/devantler-tech/hostkit/pkg/cli/helpers"
	"github.com/devantler-tech/hostkit/pkg/cli/ui/confirm"
	"github.com/devantler-tech/hostkit/pkg/di"
	hostserver "github.com/devantler-tech/hostkit/pkg/svc/provisioner/server"
	"github.com/devantler-tech/hostkit/pkg/svc/remote"
	"github.com/devantler-tech/hostkit/pkg/utils/notify"
	"github.com/devantler-tech/hostkit/pkg/utils/timer"
	"github.com/spf13/cobra"
)

// NewServerCmd creates the parent server command.
func NewServerCmd(runtimeContainer *di.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "server",
		Short:        "Prepare the target host",
		Long:         "Prepare the target host for tenants and reload its web services.",
		Args:         cobra.NoArgs,
		RunE:         handleServerRunE,
		SilenceUsage: true,
	}

	cmd.AddCommand(NewSetupCmd(runtimeContainer))
	cmd.AddCommand(NewReloadCmd(runtimeContainer))

	return cmd
}

const setupLongDesc = `Prepare a fresh Debian or Ubuntu host for tenants.

Setup pins the system locale, relaxes sshd's StrictModes, upgrades the system, installs
nginx, uWSGI with its emperor and Python plugins, PostgreSQL and the Python build
dependencies, raises nginx's server_names_hash_bucket_size and removes nginx's default site.
It runs with administrative privilege and is meant to run once per host.

On a terminal the planned changes are shown and must be confirmed; --force skips the prompt.

Examples:
  hostkit --host example.com server setup
  hostkit --host example.com server setup --force`

// NewSetupCmd creates the server setup command.
func NewSetupCmd(runtimeContainer *di.Runtime) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:          "setup",
		Short:        "Install and configure the hosting stack",
		Long:         setupLongDesc,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
	}

	cmd.RunE = helpers.WithOperator(runtimeContainer,
		func(cmd *cobra.Command, _ []string, target *helpers.Target, session *remote.Session, tmr timer.Timer) error {
			return HandleSetupRunE(cmd, target, session, tmr, force)
		})

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip the confirmation prompt")

	return cmd
}

// HandleSetupRunE prepares the host through the operator's administrative handle.
func HandleSetupRunE(
	cmd *cobra.Command,
	target *helpers.Target,
	session *remote.Session,
	tmr timer.Timer,
	force bool,
) error {
	out := notify.NewStageSeparatingWriter(cmd.OutOrStdout())
	manager := hostserver.NewManager(hostserver.OptionsFromSpec(target.Host.Spec.Server), out)

	err := confirm.Confirm(cmd.InOrStdin(), out, confirm.Preview{Host: session.Host, Changes: manager.Plan()}, force)
	if err != nil {
		return err
	}

	notify.Titlef(out, "🛠️", "Preparing %s...", session.Host)

	err = manager.Setup(cmd.Context(), session.Admin)
	if err != nil {
		return fmt.Errorf("set up %s: %w", session.Host, err)
	}

	notify.SuccessWithTimerf(out, flags.MaybeTimer(cmd, tmr), "%s is ready for tenants", session.Host)

	return nil
}

const reloadLongDesc = `Reload web services on the target host.

Without arguments the services from spec.server.services are reloaded, which default to
nginx and uwsgi-emperor.

Examples:
  hostkit --host example.com server reload
  hostkit --host example.com server reload nginx`

// NewReloadCmd creates the server reload command.
func NewReloadCmd(runtimeContainer *di.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:          "reload [service...]",
		Short:        "Reload web services",
		Long:         reloadLongDesc,
		SilenceUsage: true,
		RunE:         helpers.WithOperator(runtimeContainer, HandleReloadRunE),
	}
}

// HandleReloadRunE reloads the named services, or the configured ones when none are named.
func HandleReloadRunE(
	cmd *cobra.Command,
	args []string,
	target *helpers.Target,
	session *remote.Session,
	tmr timer.Timer,
) error {
	services := args
	if len(services) == 0 {
		services = target.Host.Spec.Server.Services
	}

	err := hostserver.ReloadServices(cmd.Context(), session.Admin, services...)
	if err != nil {
		return err
	}

	notify.SuccessWithTimerf(cmd.OutOrStdout(), flags.MaybeTimer(cmd, tmr), "services reloaded on %s", session.Host)

	return nil
}

func handleServerRunE(cmd *cobra.Command, _ []string) error {
	err := cmd.Help()
	if err != nil {
		return fmt.Errorf("displaying server command help: %w", err)
	}

	return nil
}
