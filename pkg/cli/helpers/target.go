package helpers

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/devantler-tech/hostkit/pkg/apis/host/v1alpha1"
	"github.com/devantler-tech/hostkit/pkg/cli/flags"
	sshclient "github.com/devantler-tech/hostkit/pkg/client/ssh"
	"github.com/devantler-tech/hostkit/pkg/di"
	configmanagerinterface "github.com/devantler-tech/hostkit/pkg/io/config-manager"
	configmanager "github.com/devantler-tech/hostkit/pkg/io/config-manager/hostkit"
	"github.com/devantler-tech/hostkit/pkg/svc/remote"
	"github.com/devantler-tech/hostkit/pkg/utils/timer"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// LoadConfig loads the host configuration with environment and flag overrides applied.
// Loading notices are printed only with --verbose.
func LoadConfig(cmd *cobra.Command, tmr timer.Timer) (*v1alpha1.Host, error) {
	configFile := ""
	if flag := cmd.Flags().Lookup(flags.ConfigFlagName); flag != nil {
		configFile = flag.Value.String()
	}

	manager := configmanager.NewConfigManager(cmd.OutOrStdout(), configFile)

	err := manager.BindFlags(cmd.Flags())
	if err != nil {
		return nil, err
	}

	host, err := manager.Load(configmanagerinterface.LoadOptions{
		Timer:  flags.MaybeTimer(cmd, tmr),
		Silent: !flags.IsVerbose(cmd),
	})
	if err != nil {
		return nil, fmt.Errorf("load hostkit configuration: %w", err)
	}

	return host, nil
}

// SSHConfig converts the connection section of the config into client settings.
func SSHConfig(conn v1alpha1.Connection, password string) sshclient.Config {
	return sshclient.Config{
		Host:                  conn.Host,
		Port:                  conn.Port,
		User:                  conn.User,
		Password:              password,
		IdentityFile:          conn.IdentityFile,
		KnownHostsFile:        conn.KnownHostsFile,
		InsecureIgnoreHostKey: conn.InsecureIgnoreHostKey,
		UseAgent:              conn.UseAgent,
		Timeout:               conn.Timeout,
	}
}

// Target is the configured host together with the dependencies commands need to act on it.
type Target struct {
	Host    *v1alpha1.Host
	Dialer  remote.Dialer
	Logger  *logrus.Logger
	Secrets di.SecretGenerator

	password string
}

// NewTarget loads the configuration and resolves the dialer, logger and secret generator.
// With --ask-password the operator password is prompted for once, here.
func NewTarget(cmd *cobra.Command, injector di.Injector, tmr timer.Timer) (*Target, error) {
	host, err := LoadConfig(cmd, tmr)
	if err != nil {
		return nil, err
	}

	logger, err := di.ResolveLogger(injector)
	if err != nil {
		return nil, err
	}

	if flags.IsVerbose(cmd) {
		logger.SetLevel(logrus.DebugLevel)
	}

	factory, err := di.ResolveDialerFactory(injector)
	if err != nil {
		return nil, err
	}

	secrets, err := di.ResolveSecrets(injector)
	if err != nil {
		return nil, err
	}

	conn := host.Spec.Connection
	password := ""

	askPassword, _ := flags.Bool(cmd, flags.AskPasswordFlagName)
	if askPassword {
		password, err = ReadPassword(cmd.InOrStdin(), cmd.OutOrStdout(),
			fmt.Sprintf("%s@%s's password: ", conn.User, conn.Host))
		if err != nil {
			return nil, err
		}
	}

	return &Target{
		Host:     host,
		Dialer:   factory(SSHConfig(conn, password), logger),
		Logger:   logger,
		Secrets:  secrets,
		password: password,
	}, nil
}

// Operator dials the configured operator account.
func (t *Target) Operator(ctx context.Context) (*remote.Session, error) {
	conn := t.Host.Spec.Connection

	session, err := t.Dialer.Dial(ctx, remote.Credentials{User: conn.User, Password: t.password})
	if err != nil {
		return nil, fmt.Errorf("connect to %s as %s: %w", conn.Host, conn.User, err)
	}

	return session, nil
}

// PublicKey reads the operator's public key. A missing file yields nil.
func (t *Target) PublicKey() ([]byte, error) {
	path := t.Host.Spec.Connection.PublicKeyFile
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // path comes from the operator's own config
	if errors.Is(err, fs.ErrNotExist) {
		t.Logger.WithField("public_key_file", path).Debug("public key file not found")

		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("read public key: %w", err)
	}

	return data, nil
}
