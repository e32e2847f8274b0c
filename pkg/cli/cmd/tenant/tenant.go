// Package tenant provides the commands that create tenants and manage their access.
package tenant

import (
	"errors"
	"fmt"

	"github.com/devantler-tech/hostkit/pkg/apis/host/v1alpha1"
	"github.com/devantler-tech/hostkit/pkg/cli/flags"
	"github.com/devantler-tech/hostkit/pkg/cli/helpers"
	"github.com/devantler-tech/hostkit/pkg/di"
	"github.com/devantler-tech/hostkit/pkg/svc/provisioner/domain"
	tenantprovisioner "github.com/devantler-tech/hostkit/pkg/svc/provisioner/tenant"
	"github.com/devantler-tech/hostkit/pkg/svc/remote"
	"github.com/devantler-tech/hostkit/pkg/utils/notify"
	"github.com/devantler-tech/hostkit/pkg/utils/timer"
	"github.com/spf13/cobra"
)

// ErrNoPublicKey is returned by push-key when the configured public key file does not exist.
var ErrNoPublicKey = errors.New("no public key found; set spec.connection.publicKeyFile or pass --public-key-file")

// NewTenantCmd creates the parent tenant command.
func NewTenantCmd(runtimeContainer *di.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "tenant",
		Short:        "Manage hosting tenants",
		Long:         "Create hosting tenants and manage their accounts on the target host.",
		Args:         cobra.NoArgs,
		RunE:         handleTenantRunE,
		SilenceUsage: true,
	}

	cmd.AddCommand(NewCreateCmd(runtimeContainer))
	cmd.AddCommand(NewUserCmd(runtimeContainer))
	cmd.AddCommand(NewPushKeyCmd(runtimeContainer))

	return cmd
}

const createLongDesc = `Provision a complete tenant for a domain.

The tenant gets a UNIX account named after the domain, the operator's public key, a Python
virtual environment, a uWSGI vassal behind an nginx virtual host, and a PostgreSQL role that
owns a database with a generated name. The credentials are written to README.txt in the
tenant's home.

Passwords are generated unless one is given. A given password is used for the database role
as well. Steps run in order and stop at the first failure; completed steps are not undone.

Examples:
  # Python 3 tenant with generated passwords
  hostkit --host example.com tenant create acme.example

  # Python 2 tenant with a chosen password
  hostkit --host example.com tenant create legacy.example s3cret --python 2`

// NewCreateCmd creates the tenant create command.
func NewCreateCmd(runtimeContainer *di.Runtime) *cobra.Command {
	var version v1alpha1.PythonVersion

	cmd := &cobra.Command{
		Use:          "create <domain> [password]",
		Short:        "Provision a tenant for a domain",
		Long:         createLongDesc,
		Args:         cobra.RangeArgs(1, 2),
		SilenceUsage: true,
	}

	cmd.RunE = helpers.WithOperator(runtimeContainer,
		func(cmd *cobra.Command, args []string, target *helpers.Target, session *remote.Session, tmr timer.Timer) error {
			if !cmd.Flags().Changed("python") {
				version = target.Host.Spec.Tenant.PythonVersion
			}

			return HandleCreateRunE(cmd, args, target, session, tmr, version)
		})

	cmd.Flags().Var(&version, "python", "Python major version of the tenant (2 or 3, default from spec.tenant.pythonVersion)")

	return cmd
}

// HandleCreateRunE provisions the tenant named by args[0].
func HandleCreateRunE(
	cmd *cobra.Command,
	args []string,
	target *helpers.Target,
	session *remote.Session,
	tmr timer.Timer,
	version v1alpha1.PythonVersion,
) error {
	out := notify.NewStageSeparatingWriter(cmd.OutOrStdout())

	publicKey, err := target.PublicKey()
	if err != nil {
		return err
	}

	notify.Titlef(out, "🐍", "Provisioning %s on %s...", args[0], session.Host)

	provisioner := domain.NewFromHost(target.Host, target.Dialer, target.Secrets, publicKey, out)

	result, err := provisioner.Provision(cmd.Context(), session, domain.Request{
		Domain:   args[0],
		Password: optionalArg(args, 1),
		Version:  string(version),
	})
	if err != nil {
		return fmt.Errorf("provision %s: %w", args[0], err)
	}

	notify.SuccessWithTimerf(out, flags.MaybeTimer(cmd, tmr), "tenant %s provisioned", result.Unix.Name)
	notify.Infof(out, "unix user %s, password %s\ndatabase %s owned by %s, password %s\ncredentials saved to %s",
		result.Unix.Name, result.Unix.Password,
		result.Database.Database, result.Database.Name, result.Database.Password,
		result.ManifestPath)

	return nil
}

const userLongDesc = `Create a UNIX account for a tenant without provisioning anything else.

The account gets a home directory, the web group as primary group and administrative group
membership. A password is generated unless one is given.

Examples:
  hostkit --host example.com tenant user acme
  hostkit --host example.com tenant user acme s3cret`

// NewUserCmd creates the tenant user command.
func NewUserCmd(runtimeContainer *di.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:          "user <name> [password]",
		Short:        "Create a tenant account",
		Long:         userLongDesc,
		Args:         cobra.RangeArgs(1, 2),
		SilenceUsage: true,
		RunE:         helpers.WithOperator(runtimeContainer, HandleUserRunE),
	}
}

// HandleUserRunE creates the account named by args[0].
func HandleUserRunE(
	cmd *cobra.Command,
	args []string,
	target *helpers.Target,
	session *remote.Session,
	tmr timer.Timer,
) error {
	manager := tenantprovisioner.NewManager(domain.TenantOptions(target.Host.Spec.Tenant), target.Secrets)

	identity, err := manager.Create(cmd.Context(), session, args[0], optionalArg(args, 1))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	notify.SuccessWithTimerf(out, flags.MaybeTimer(cmd, tmr), "account %s created", identity.Name)
	notify.Infof(out, "password %s", identity.Password)

	return nil
}

const pushKeyLongDesc = `Authorize the operator's public key for an existing tenant.

The key is appended to the tenant's authorized_keys unless it is already there. The command
connects as the tenant, so it needs the tenant's password: pass it with --password or enter it
when prompted.

Examples:
  hostkit --host example.com tenant push-key acme
  hostkit --host example.com tenant push-key acme --public-key-file ~/.ssh/deploy.pub`

// NewPushKeyCmd creates the tenant push-key command.
func NewPushKeyCmd(runtimeContainer *di.Runtime) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:          "push-key <name>",
		Short:        "Authorize the operator's public key for a tenant",
		Long:         pushKeyLongDesc,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
	}

	cmd.RunE = helpers.RunOnTarget(runtimeContainer,
		func(cmd *cobra.Command, args []string, target *helpers.Target, tmr timer.Timer) error {
			return HandlePushKeyRunE(cmd, args, target, tmr, password)
		})

	cmd.Flags().StringVarP(&password, "password", "p", "", "tenant password (prompted for when empty)")

	return cmd
}

// HandlePushKeyRunE connects as the tenant args[0] and authorizes the configured public key.
func HandlePushKeyRunE(
	cmd *cobra.Command,
	args []string,
	target *helpers.Target,
	tmr timer.Timer,
	password string,
) error {
	name := args[0]

	err := tenantprovisioner.ValidateName(name)
	if err != nil {
		return err
	}

	publicKey, err := target.PublicKey()
	if err != nil {
		return err
	}

	if len(publicKey) == 0 {
		return ErrNoPublicKey
	}

	if password == "" {
		password, err = helpers.ReadPassword(cmd.InOrStdin(), cmd.OutOrStdout(), name+"'s password: ")
		if err != nil {
			return err
		}
	}

	session, err := target.Dialer.Dial(cmd.Context(), remote.Credentials{User: name, Password: password})
	if err != nil {
		return fmt.Errorf("connect as %s: %w", name, err)
	}

	defer func() { _ = session.Close() }()

	err = tenantprovisioner.AuthorizeKey(cmd.Context(), session, publicKey)
	if err != nil {
		return err
	}

	notify.SuccessWithTimerf(cmd.OutOrStdout(), flags.MaybeTimer(cmd, tmr), "public key authorized for %s", name)

	return nil
}

func optionalArg(args []string, index int) string {
	if len(args) > index {
		return args[index]
	}

	return ""
}

func handleTenantRunE(cmd *cobra.Command, _ []string) error {
	err := cmd.Help()
	if err != nil {
		return fmt.Errorf("displaying tenant command help: %w", err)
	}

	return nil
}
