package cmd

import (
	"errors"
	"fmt"

	"github.com/devantler-tech/hostkit/pkg/apis/host/v1alpha1"
	"github.com/devantler-tech/hostkit/pkg/cli/flags"
	"github.com/devantler-tech/hostkit/pkg/di"
	"github.com/devantler-tech/hostkit/pkg/fsutil"
	configmanager "github.com/devantler-tech/hostkit/pkg/io/config-manager/hostkit"
	"github.com/devantler-tech/hostkit/pkg/utils/notify"
	"github.com/devantler-tech/hostkit/pkg/utils/timer"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// ErrConfigExists is returned by init when the output file exists and --force is not set.
var ErrConfigExists = errors.New("configuration file already exists; use --force to overwrite it")

const initLongDesc = `Write a hostkit.yaml with every default filled in.

The file is read from the working directory by later commands. Values given with --host,
--port and --user are written into the connection section.

Examples:
  hostkit init --host example.com
  hostkit init --output ~/.config/hostkit/hostkit.yaml --force`

// NewInitCmd creates the init command.
func NewInitCmd(runtimeContainer *di.Runtime) *cobra.Command {
	var (
		output string
		force  bool
	)

	cmd := &cobra.Command{
		Use:          "init",
		Short:        "Scaffold a hostkit.yaml",
		Long:         initLongDesc,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
	}

	cmd.RunE = di.RunEWithRuntime(runtimeContainer, di.WithTimer(
		func(cmd *cobra.Command, _ di.Injector, tmr timer.Timer) error {
			return HandleInitRunE(cmd, tmr, output, force)
		}))

	cmd.Flags().StringVarP(&output, "output", "o", configmanager.DefaultConfigFile, "file to write")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	return cmd
}

// HandleInitRunE writes the default configuration to output.
func HandleInitRunE(cmd *cobra.Command, tmr timer.Timer, output string, force bool) error {
	host := v1alpha1.NewHost()

	err := applyConnectionFlags(cmd, &host.Spec.Connection)
	if err != nil {
		return err
	}

	content, err := yaml.Marshal(host)
	if err != nil {
		return fmt.Errorf("marshal configuration: %w", err)
	}

	path, err := fsutil.ExpandHomePath(output)
	if err != nil {
		return fmt.Errorf("expand %s: %w", output, err)
	}

	written, err := fsutil.TryWriteFile(string(content), path, force)
	if err != nil {
		return err
	}

	if !written {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	}

	out := cmd.OutOrStdout()

	notify.Generatef(out, "%s", path)
	notify.SuccessWithTimerf(out, flags.MaybeTimer(cmd, tmr), "configuration scaffolded")

	return nil
}

func applyConnectionFlags(cmd *cobra.Command, conn *v1alpha1.Connection) error {
	set := cmd.Flags()

	var err error

	if set.Changed(flags.HostFlagName) {
		conn.Host, err = set.GetString(flags.HostFlagName)
		if err != nil {
			return fmt.Errorf("read --%s: %w", flags.HostFlagName, err)
		}
	}

	if set.Changed(flags.PortFlagName) {
		conn.Port, err = set.GetInt(flags.PortFlagName)
		if err != nil {
			return fmt.Errorf("read --%s: %w", flags.PortFlagName, err)
		}
	}

	if set.Changed(flags.UserFlagName) {
		conn.User, err = set.GetString(flags.UserFlagName)
		if err != nil {
			return fmt.Errorf("read --%s: %w", flags.UserFlagName, err)
		}
	}

	return nil
}
