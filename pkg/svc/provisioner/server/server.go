// Package server prepares the target host once and reloads its services.
package server

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"al.essio.dev/pkg/shellescape"
	"github.com/devantler-tech/hostkit/pkg/apis/host/v1alpha1"
	"github.com/devantler-tech/hostkit/pkg/svc/provisioner/provisionerr"
	"github.com/devantler-tech/hostkit/pkg/svc/remote"
	"github.com/devantler-tech/hostkit/pkg/utils/notify"
)

// Host-wide files touched by Setup.
const (
	LocaleFile   = "/etc/default/locale"
	SSHDConfig   = "/etc/ssh/sshd_config"
	NginxConfig  = "/etc/nginx/nginx.conf"
	DefaultSite  = "/etc/nginx/sites-enabled/default"
	DefaultLang  = v1alpha1.DefaultLocale
	aptNoPrompts = "DEBIAN_FRONTEND=noninteractive "
)

var serviceName = regexp.MustCompile(`^[A-Za-z0-9@._-]+$`)

// DefaultPackages is the fixed list Setup installs.
func DefaultPackages() []string {
	return v1alpha1.DefaultPackages()
}

// DefaultServices are reloaded when ReloadServices is given none.
func DefaultServices() []string {
	return v1alpha1.DefaultServices()
}

// Options configures host preparation.
type Options struct {
	Locale   string
	Packages []string
}

// DefaultOptions returns the preparation defaults.
func DefaultOptions() Options {
	return Options{Locale: DefaultLang, Packages: DefaultPackages()}
}

// OptionsFromSpec maps the server section of the config. Empty fields keep the defaults.
func OptionsFromSpec(spec v1alpha1.ServerSpec) Options {
	opts := DefaultOptions()

	if spec.Locale != "" {
		opts.Locale = spec.Locale
	}

	if len(spec.Packages) > 0 {
		opts.Packages = append([]string(nil), spec.Packages...)
	}

	return opts
}

// Manager prepares the host. Progress is written to Writer when set.
type Manager struct {
	options Options
	Writer  io.Writer
}

// NewManager returns a Manager.
func NewManager(options Options, writer io.Writer) *Manager {
	if options.Locale == "" {
		options.Locale = DefaultLang
	}

	if len(options.Packages) == 0 {
		options.Packages = DefaultPackages()
	}

	return &Manager{options: options, Writer: writer}
}

type step struct {
	activity string
	run      func(ctx context.Context, admin remote.Executor) error
}

// Setup sets the locale, relaxes sshd StrictModes, upgrades the system, installs the
// package list, raises nginx's server name bucket size and disables the default site.
// Every step is safe to repeat.
func (m *Manager) Setup(ctx context.Context, admin remote.Executor) error {
	for _, s := range m.steps() {
		if m.Writer != nil {
			notify.Activityf(m.Writer, "%s", s.activity)
		}

		err := s.run(ctx, admin)
		if err != nil {
			return fmt.Errorf("%s: %w", s.activity, err)
		}
	}

	return nil
}

// Plan describes the steps Setup runs, in order.
func (m *Manager) Plan() []string {
	steps := m.steps()
	plan := make([]string, 0, len(steps))

	for _, s := range steps {
		plan = append(plan, s.activity)
	}

	return plan
}

func (m *Manager) steps() []step {
	quotedPackages := make([]string, 0, len(m.options.Packages))
	for _, pkg := range m.options.Packages {
		quotedPackages = append(quotedPackages, shellescape.Quote(pkg))
	}

	return []step{
		{activity: "setting locale " + m.options.Locale, run: func(ctx context.Context, admin remote.Executor) error {
			for _, variable := range []string{"LANGUAGE", "LC_ALL"} {
				err := remote.AppendLine(ctx, admin, LocaleFile, fmt.Sprintf("%s=%q", variable, m.options.Locale))
				if err != nil {
					return err
				}
			}

			return nil
		}},
		{activity: "relaxing sshd StrictModes", run: commands(
			"sed -i -e 's/StrictModes yes/StrictModes no/' "+SSHDConfig,
			"service ssh restart",
		)},
		{activity: "upgrading system packages", run: commands(
			aptNoPrompts+"apt-get update -q",
			aptNoPrompts+"apt-get upgrade -y -q",
		)},
		{activity: "installing packages", run: commands(
			aptNoPrompts + "apt-get install -y -q " + strings.Join(quotedPackages, " "),
		)},
		{activity: "tuning nginx", run: commands(
			"sed -i -e 's/# server_names_hash_bucket_size 64;/server_names_hash_bucket_size 96;/' "+NginxConfig,
			"rm -f "+DefaultSite,
			"service nginx reload",
		)},
	}
}

func commands(cmds ...string) func(ctx context.Context, admin remote.Executor) error {
	return func(ctx context.Context, admin remote.Executor) error {
		for _, cmd := range cmds {
			_, err := admin.Run(ctx, cmd)
			if err != nil {
				return err
			}
		}

		return nil
	}
}

// ReloadServices reloads each service in order, or DefaultServices when none are given.
func ReloadServices(ctx context.Context, admin remote.Executor, services ...string) error {
	if len(services) == 0 {
		services = DefaultServices()
	}

	for _, name := range services {
		if !serviceName.MatchString(name) {
			return fmt.Errorf("%w: %q is not a service name", provisionerr.ErrInvalidArgument, name)
		}
	}

	for _, name := range services {
		_, err := admin.Run(ctx, "service "+name+" reload")
		if err != nil {
			return fmt.Errorf("reload %s: %w", name, err)
		}
	}

	return nil
}

// Identify returns the kernel identification of the host.
func Identify(ctx context.Context, exec remote.Executor) (string, error) {
	out, err := exec.Run(ctx, "uname -a")
	if err != nil {
		return "", fmt.Errorf("identify host: %w", err)
	}

	return strings.TrimSpace(out), nil
}
