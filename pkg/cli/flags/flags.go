package flags

import (
	"errors"
	"fmt"

	"github.com/devantler-tech/hostkit/pkg/apis/host/v1alpha1"
	"github.com/devantler-tech/hostkit/pkg/utils/timer"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Persistent flag names on the root command.
const (
	ConfigFlagName                = "config"
	HostFlagName                  = "host"
	PortFlagName                  = "port"
	UserFlagName                  = "user"
	IdentityFileFlagName          = "identity-file"
	PublicKeyFileFlagName         = "public-key-file"
	KnownHostsFileFlagName        = "known-hosts-file"
	InsecureIgnoreHostKeyFlagName = "insecure-ignore-host-key"
	TimeoutFlagName               = "timeout"
	AskPasswordFlagName           = "ask-password"
	VerboseFlagName               = "verbose"
	BenchmarkFlagName             = "benchmark"
)

var (
	// ErrNilCommand is returned when a flag is read from a nil command.
	ErrNilCommand = errors.New("command is nil")
	// ErrFlagNotFound is returned when neither the command nor its parents define the flag.
	ErrFlagNotFound = errors.New("flag not found")
)

// AddPersistentFlags registers hostkit's global flags on set.
// Connection flags override hostkit.yaml and HOSTKIT_* variables only when given.
func AddPersistentFlags(set *pflag.FlagSet) {
	set.String(ConfigFlagName, "", "config file (default ./hostkit.yaml or ~/.config/hostkit/hostkit.yaml)")
	set.String(HostFlagName, "", "target host name or address")
	set.Int(PortFlagName, v1alpha1.DefaultPort, "SSH port of the target host")
	set.StringP(UserFlagName, "u", v1alpha1.DefaultUser, "operator account on the target host")
	set.StringP(IdentityFileFlagName, "i", v1alpha1.DefaultIdentityFile, "private key used to authenticate")
	set.String(PublicKeyFileFlagName, v1alpha1.DefaultPublicKeyFile, "public key authorized for new tenants")
	set.String(KnownHostsFileFlagName, v1alpha1.DefaultKnownHostsFile, "known_hosts file used to verify the host key")
	set.Bool(InsecureIgnoreHostKeyFlagName, false, "skip host key verification")
	set.Duration(TimeoutFlagName, v1alpha1.DefaultTimeout, "SSH dial timeout")
	set.Bool(AskPasswordFlagName, false, "prompt for the operator password")
	set.BoolP(VerboseFlagName, "v", false, "log remote programs and configuration loading")
	set.Bool(BenchmarkFlagName, false, "show timing output")
}

// Bool reads the boolean flag name from cmd, falling back to inherited persistent flags.
func Bool(cmd *cobra.Command, name string) (bool, error) {
	if cmd == nil {
		return false, ErrNilCommand
	}

	flag := cmd.Flags().Lookup(name)
	if flag == nil {
		flag = cmd.InheritedFlags().Lookup(name)
	}

	if flag == nil {
		return false, fmt.Errorf("%w: --%s", ErrFlagNotFound, name)
	}

	return flag.Value.String() == "true", nil
}

// IsBenchmarkEnabled reports whether --benchmark is set.
func IsBenchmarkEnabled(cmd *cobra.Command) (bool, error) {
	return Bool(cmd, BenchmarkFlagName)
}

// IsVerbose reports whether --verbose is set. A missing flag counts as false.
func IsVerbose(cmd *cobra.Command) bool {
	verbose, err := Bool(cmd, VerboseFlagName)

	return err == nil && verbose
}

// MaybeTimer returns tmr when benchmarking is enabled and nil otherwise, so success
// messages only carry timings on request.
func MaybeTimer(cmd *cobra.Command, tmr timer.Timer) timer.Timer {
	if cmd == nil || tmr == nil {
		return nil
	}

	enabled, err := IsBenchmarkEnabled(cmd)
	if err != nil || !enabled {
		return nil
	}

	return tmr
}
