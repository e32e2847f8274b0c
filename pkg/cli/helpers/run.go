package helpers

import (
	"github.com/devantler-tech/hostkit/pkg/di"
	"github.com/devantler-tech/hostkit/pkg/svc/remote"
	"github.com/devantler-tech/hostkit/pkg/utils/timer"
	"github.com/spf13/cobra"
)

// TargetHandler is a command body that acts on the configured host.
type TargetHandler func(cmd *cobra.Command, args []string, target *Target, tmr timer.Timer) error

// OperatorHandler is a command body that acts through the operator session.
type OperatorHandler func(
	cmd *cobra.Command,
	args []string,
	target *Target,
	session *remote.Session,
	tmr timer.Timer,
) error

// RunOnTarget adapts handler to cobra's RunE. Each run gets a fresh injector, a started
// timer and a Target built from the command's flags.
func RunOnTarget(runtime *di.Runtime, handler TargetHandler) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return runtime.Invoke(func(injector di.Injector) error {
			return di.WithTimer(func(cmd *cobra.Command, injector di.Injector, tmr timer.Timer) error {
				target, err := NewTarget(cmd, injector, tmr)
				if err != nil {
					return err
				}

				return handler(cmd, args, target, tmr)
			})(cmd, injector)
		})
	}
}

// WithOperator is RunOnTarget for handlers that only need the operator session.
// The session is closed when handler returns.
func WithOperator(runtime *di.Runtime, handler OperatorHandler) func(*cobra.Command, []string) error {
	return RunOnTarget(runtime, func(cmd *cobra.Command, args []string, target *Target, tmr timer.Timer) error {
		session, err := target.Operator(cmd.Context())
		if err != nil {
			return err
		}

		defer func() { _ = session.Close() }()

		return handler(cmd, args, target, session, tmr)
	})
}
