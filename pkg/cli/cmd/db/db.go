// Package db provides the commands that manage tenant PostgreSQL roles.
package db

import (
	"fmt"

	"github.com/devantler-tech/hostkit/pkg/cli/flags"
	"github.com/devantler-tech/hostkit/pkg/cli/helpers"
	"github.com/devantler-tech/hostkit/pkg/di"
	"github.com/devantler-tech/hostkit/pkg/svc/provisioner/database"
	"github.com/devantler-tech/hostkit/pkg/svc/provisioner/domain"
	"github.com/devantler-tech/hostkit/pkg/svc/remote"
	"github.com/devantler-tech/hostkit/pkg/utils/notify"
	"github.com/devantler-tech/hostkit/pkg/utils/timer"
	"github.com/spf13/cobra"
)

// NewDBCmd creates the parent db command.
func NewDBCmd(runtimeContainer *di.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "db",
		Short:        "Manage tenant databases",
		Long:         "Manage PostgreSQL roles and databases for tenants on the target host.",
		Args:         cobra.NoArgs,
		RunE:         handleDBRunE,
		SilenceUsage: true,
	}

	cmd.AddCommand(NewCreateCmd(runtimeContainer))

	return cmd
}

const createLongDesc = `Create a PostgreSQL login role and a database it owns.

The role may create databases. The database name is random with a fixed suffix and is
guaranteed not to exist on the server when it is created. A password is generated unless
one is given. The command fails when the role already exists.

Examples:
  hostkit --host example.com db create acme
  hostkit --host example.com db create acme s3cret`

// NewCreateCmd creates the db create command.
func NewCreateCmd(runtimeContainer *di.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:          "create <role> [password]",
		Short:        "Create a role and its database",
		Long:         createLongDesc,
		Args:         cobra.RangeArgs(1, 2),
		SilenceUsage: true,
		RunE:         helpers.WithOperator(runtimeContainer, HandleCreateRunE),
	}
}

// HandleCreateRunE creates the role args[0] through the operator's administrative handle.
func HandleCreateRunE(
	cmd *cobra.Command,
	args []string,
	target *helpers.Target,
	session *remote.Session,
	tmr timer.Timer,
) error {
	password := ""
	if len(args) > 1 {
		password = args[1]
	}

	manager := database.NewManager(domain.DatabaseOptions(target.Host.Spec.Database), target.Secrets)

	identity, err := manager.Create(cmd.Context(), session.Admin, args[0], password)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	notify.SuccessWithTimerf(out, flags.MaybeTimer(cmd, tmr), "role %s created", identity.Name)
	notify.Infof(out, "database %s, password %s", identity.Database, identity.Password)

	return nil
}

func handleDBRunE(cmd *cobra.Command, _ []string) error {
	err := cmd.Help()
	if err != nil {
		return fmt.Errorf("displaying db command help: %w", err)
	}

	return nil
}
