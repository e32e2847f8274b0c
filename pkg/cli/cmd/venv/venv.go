// Package venv provides the commands that manage Python virtual environments.
//
// These commands act as the connected user, so they are usually run with --user set to the
// tenant and --ask-password.
package venv

import (
	"fmt"

	"github.com/devantler-tech/hostkit/pkg/cli/flags"
	"github.com/devantler-tech/hostkit/pkg/cli/helpers"
	"github.com/devantler-tech/hostkit/pkg/di"
	"github.com/devantler-tech/hostkit/pkg/svc/provisioner/domain"
	"github.com/devantler-tech/hostkit/pkg/svc/provisioner/sandbox"
	"github.com/devantler-tech/hostkit/pkg/svc/remote"
	"github.com/devantler-tech/hostkit/pkg/utils/notify"
	"github.com/devantler-tech/hostkit/pkg/utils/timer"
	"github.com/spf13/cobra"
)

const venvFlagName = "venv"

// NewVenvCmd creates the parent venv command.
func NewVenvCmd(runtimeContainer *di.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "venv",
		Short:        "Manage Python virtual environments",
		Long:         "Create Python virtual environments and install packages into them as the connected user.",
		Args:         cobra.NoArgs,
		RunE:         handleVenvRunE,
		SilenceUsage: true,
	}

	cmd.AddCommand(NewCreateCmd(runtimeContainer))
	cmd.AddCommand(NewPipInstallCmd(runtimeContainer))
	cmd.AddCommand(NewPipInstallRequirementsCmd(runtimeContainer))

	return cmd
}

const createLongDesc = `Create a Python virtual environment in the connected user's home.

The environment is activated from ~/.bashrc and gets pip from the official bootstrap script.
An existing environment is kept and only the activation and pip steps run again.

Examples:
  hostkit --host example.com --user acme --ask-password venv create venv 3`

// NewCreateCmd creates the venv create command.
func NewCreateCmd(runtimeContainer *di.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:          "create <name> <2|3>",
		Short:        "Create a virtual environment",
		Long:         createLongDesc,
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE:         helpers.WithOperator(runtimeContainer, HandleCreateRunE),
	}
}

// HandleCreateRunE creates sandbox args[0] for Python args[1].
func HandleCreateRunE(
	cmd *cobra.Command,
	args []string,
	target *helpers.Target,
	session *remote.Session,
	tmr timer.Timer,
) error {
	manager := sandbox.NewManager(domain.SandboxOptions(target.Host.Spec.Sandbox))

	box, err := manager.Create(cmd.Context(), session, args[0], args[1])
	if err != nil {
		return err
	}

	notify.SuccessWithTimerf(cmd.OutOrStdout(), flags.MaybeTimer(cmd, tmr),
		"python %s environment ready at %s", box.Version, box.Path(session.Home()))

	return nil
}

const pipInstallLongDesc = `Install or upgrade packages inside a virtual environment.

Examples:
  hostkit --host example.com --user acme --ask-password venv pip-install django psycopg2
  hostkit --host example.com --user acme --ask-password venv pip-install flask --venv env`

// NewPipInstallCmd creates the venv pip-install command.
func NewPipInstallCmd(runtimeContainer *di.Runtime) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:          "pip-install <package...>",
		Short:        "Install packages into a virtual environment",
		Long:         pipInstallLongDesc,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
	}

	cmd.RunE = helpers.WithOperator(runtimeContainer,
		func(cmd *cobra.Command, args []string, target *helpers.Target, session *remote.Session, tmr timer.Timer) error {
			venv := sandboxName(name, target)

			err := sandbox.PipInstall(cmd.Context(), session, venv, args...)
			if err != nil {
				return err
			}

			notify.SuccessWithTimerf(cmd.OutOrStdout(), flags.MaybeTimer(cmd, tmr),
				"installed %d package(s) into %s", len(args), venv)

			return nil
		})

	addVenvFlag(cmd, &name)

	return cmd
}

const pipInstallRequirementsLongDesc = `Install a requirements file inside a virtual environment.

Without --file the requirements.txt of the connected user's site directory is used.

Examples:
  hostkit --host example.com --user acme --ask-password venv pip-install-requirements
  hostkit --host example.com --user acme --ask-password venv pip-install-requirements --file /home/acme/reqs.txt`

// NewPipInstallRequirementsCmd creates the venv pip-install-requirements command.
func NewPipInstallRequirementsCmd(runtimeContainer *di.Runtime) *cobra.Command {
	var name, file string

	cmd := &cobra.Command{
		Use:          "pip-install-requirements",
		Short:        "Install a requirements file into a virtual environment",
		Long:         pipInstallRequirementsLongDesc,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
	}

	cmd.RunE = helpers.WithOperator(runtimeContainer,
		func(cmd *cobra.Command, _ []string, target *helpers.Target, session *remote.Session, tmr timer.Timer) error {
			venv := sandboxName(name, target)

			err := sandbox.PipInstallRequirements(cmd.Context(), session, venv, file)
			if err != nil {
				return err
			}

			notify.SuccessWithTimerf(cmd.OutOrStdout(), flags.MaybeTimer(cmd, tmr), "requirements installed into %s", venv)

			return nil
		})

	addVenvFlag(cmd, &name)
	cmd.Flags().StringVarP(&file, "file", "f", "", "absolute path of the requirements file on the host")

	return cmd
}

func addVenvFlag(cmd *cobra.Command, name *string) {
	cmd.Flags().StringVar(name, venvFlagName, "", "virtual environment name (default from spec.sandbox.name)")
}

func sandboxName(flagValue string, target *helpers.Target) string {
	if flagValue != "" {
		return flagValue
	}

	return target.Host.Spec.Sandbox.Name
}

func handleVenvRunE(cmd *cobra.Command, _ []string) error {
	err := cmd.Help()
	if err != nil {
		return fmt.Errorf("displaying venv command help: %w", err)
	}

	return nil
}
