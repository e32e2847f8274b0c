package di

import (
	"fmt"

	"github.com/devantler-tech/hostkit/pkg/utils/timer"
	"github.com/samber/do/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// ResolveTimer retrieves the timer.
func ResolveTimer(injector Injector) (timer.Timer, error) {
	tmr, err := do.Invoke[timer.Timer](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve timer dependency: %w", err)
	}

	return tmr, nil
}

// ResolveLogger retrieves the diagnostics logger.
func ResolveLogger(injector Injector) (*logrus.Logger, error) {
	logger, err := do.Invoke[*logrus.Logger](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve logger dependency: %w", err)
	}

	return logger, nil
}

// ResolveSecrets retrieves the secret generator.
func ResolveSecrets(injector Injector) (SecretGenerator, error) {
	secrets, err := do.Invoke[SecretGenerator](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve secret generator dependency: %w", err)
	}

	return secrets, nil
}

// ResolveDialerFactory retrieves the dialer factory.
func ResolveDialerFactory(injector Injector) (DialerFactory, error) {
	factory, err := do.Invoke[DialerFactory](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve dialer factory dependency: %w", err)
	}

	return factory, nil
}

// WithTimer resolves the timer and starts it before calling handler.
func WithTimer(
	handler func(cmd *cobra.Command, injector Injector, tmr timer.Timer) error,
) func(cmd *cobra.Command, injector Injector) error {
	return func(cmd *cobra.Command, injector Injector) error {
		tmr, err := ResolveTimer(injector)
		if err != nil {
			return err
		}

		tmr.Start()

		return handler(cmd, injector, tmr)
	}
}
