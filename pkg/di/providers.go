package di

import (
	"io"
	"os"

	sshclient "github.com/devantler-tech/hostkit/pkg/client/ssh"
	"github.com/devantler-tech/hostkit/pkg/svc/remote"
	"github.com/devantler-tech/hostkit/pkg/svc/secret"
	"github.com/devantler-tech/hostkit/pkg/utils/timer"
	"github.com/samber/do/v2"
	"github.com/sirupsen/logrus"
)

// DialerFactory builds a dialer for the connection settings resolved from config and flags.
type DialerFactory func(cfg sshclient.Config, logger logrus.FieldLogger) remote.Dialer

// SecretGenerator produces random credentials.
type SecretGenerator interface {
	Generate(length int) (string, error)
}

// NewRuntime returns the runtime used by the root command.
func NewRuntime() *Runtime {
	return New(
		ProvideTimer,
		ProvideLogger(os.Stderr),
		ProvideSecrets,
		ProvideDialerFactory(SSHDialerFactory),
	)
}

// SSHDialerFactory dials the target host over SSH.
func SSHDialerFactory(cfg sshclient.Config, logger logrus.FieldLogger) remote.Dialer {
	return sshclient.NewDialer(cfg, logger)
}

// ProvideTimer registers a wall-clock timer.
func ProvideTimer(i Injector) error {
	do.Provide(i, func(Injector) (timer.Timer, error) {
		return timer.New(), nil
	})

	return nil
}

// ProvideLogger registers the diagnostics logger writing to out at warn level.
func ProvideLogger(out io.Writer) Module {
	return func(i Injector) error {
		do.Provide(i, func(Injector) (*logrus.Logger, error) {
			logger := logrus.New()
			logger.SetOutput(out)
			logger.SetLevel(logrus.WarnLevel)
			logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

			return logger, nil
		})

		return nil
	}
}

// ProvideSecrets registers the crypto/rand backed secret generator.
func ProvideSecrets(i Injector) error {
	do.Provide(i, func(Injector) (SecretGenerator, error) {
		return secret.NewGenerator(), nil
	})

	return nil
}

// ProvideDialerFactory registers factory as the way commands reach the target host.
func ProvideDialerFactory(factory DialerFactory) Module {
	return func(i Injector) error {
		do.ProvideValue(i, factory)

		return nil
	}
}
