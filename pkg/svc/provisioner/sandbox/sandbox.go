// Package sandbox manages a tenant's Python virtual environment.
package sandbox

import (
	"context"
	"fmt"
	"regexp"

	"al.essio.dev/pkg/shellescape"
	"github.com/devantler-tech/hostkit/pkg/apis/host/v1alpha1"
	"github.com/devantler-tech/hostkit/pkg/io/generator/siteconfig"
	"github.com/devantler-tech/hostkit/pkg/svc/checker"
	"github.com/devantler-tech/hostkit/pkg/svc/provisioner/provisionerr"
	"github.com/devantler-tech/hostkit/pkg/svc/remote"
)

// Pip bootstrap scripts per interpreter major version.
const (
	BootstrapURL2 = v1alpha1.DefaultBootstrapURL2
	BootstrapURL3 = v1alpha1.DefaultBootstrapURL3
)

const bootstrapScript = "get-pip.py"

var namePattern = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_.-]*$`)

// Sandbox is a virtual environment in a tenant's home.
type Sandbox struct {
	Name    string
	Version string
}

// Path returns the sandbox directory under home.
func (s Sandbox) Path(home string) string {
	return home + "/" + s.Name
}

// ActivateScript returns the activation script of the sandbox under home.
func (s Sandbox) ActivateScript(home string) string {
	return s.Path(home) + "/bin/activate"
}

// Options configures sandbox creation.
type Options struct {
	// BootstrapURLs maps an interpreter major version to the get-pip script it runs.
	BootstrapURLs map[string]string
}

// DefaultOptions returns the public pip bootstrap locations.
func DefaultOptions() Options {
	return Options{
		BootstrapURLs: map[string]string{
			siteconfig.Python2: BootstrapURL2,
			siteconfig.Python3: BootstrapURL3,
		},
	}
}

// Manager creates sandboxes.
type Manager struct {
	options Options
}

// NewManager returns a Manager. Missing bootstrap URLs fall back to the defaults.
func NewManager(options Options) *Manager {
	defaults := DefaultOptions().BootstrapURLs
	urls := make(map[string]string, len(defaults))

	for version, url := range defaults {
		urls[version] = url
	}

	for version, url := range options.BootstrapURLs {
		if url != "" {
			urls[version] = url
		}
	}

	return &Manager{options: Options{BootstrapURLs: urls}}
}

// ValidateVersion rejects interpreter versions other than "2" and "3".
func ValidateVersion(version string) error {
	switch version {
	case siteconfig.Python2, siteconfig.Python3:
		return nil
	default:
		return fmt.Errorf("%w: python version must be %q or %q, got %q",
			provisionerr.ErrInvalidArgument, siteconfig.Python2, siteconfig.Python3, version)
	}
}

// ValidateName rejects sandbox names that would escape the tenant's home.
func ValidateName(name string) error {
	if !namePattern.MatchString(name) || name == "." || name == ".." {
		return fmt.Errorf("%w: %q is not a valid sandbox name", provisionerr.ErrInvalidArgument, name)
	}

	return nil
}

// Create makes sure the session user has a sandbox called name for the given version.
//
// Creation is skipped when the sandbox already exists. Auto-activation and the pip
// bootstrap always run.
func (m *Manager) Create(ctx context.Context, session *remote.Session, name, version string) (Sandbox, error) {
	err := ValidateVersion(version)
	if err != nil {
		return Sandbox{}, err
	}

	err = ValidateName(name)
	if err != nil {
		return Sandbox{}, err
	}

	box := Sandbox{Name: name, Version: version}
	home := session.Home()

	exists, err := checker.SandboxExists(ctx, session.Standard, home, name)
	if err != nil {
		return Sandbox{}, err
	}

	if !exists {
		_, err = session.Standard.Run(ctx, creationCommand(box.Path(home), version))
		if err != nil {
			return Sandbox{}, fmt.Errorf("create sandbox %s: %w", name, err)
		}
	}

	err = remote.AppendLine(ctx, session.Standard, home+"/.bashrc", "source "+box.ActivateScript(home))
	if err != nil {
		return Sandbox{}, fmt.Errorf("register activation of %s: %w", name, err)
	}

	err = m.bootstrapPip(ctx, session, box)
	if err != nil {
		return Sandbox{}, err
	}

	return box, nil
}

func (m *Manager) bootstrapPip(ctx context.Context, session *remote.Session, box Sandbox) error {
	script := box.Path(session.Home()) + "/" + bootstrapScript
	quoted := shellescape.Quote(script)
	command := fmt.Sprintf("curl -fsSL -o %[1]s %[2]s && python %[1]s && rm -f %[1]s",
		quoted, shellescape.Quote(m.options.BootstrapURLs[box.Version]))

	_, err := Scoped(session, box.Name).Run(ctx, command)
	if err != nil {
		return fmt.Errorf("bootstrap pip in %s: %w", box.Name, err)
	}

	return nil
}

func creationCommand(path, version string) string {
	quoted := shellescape.Quote(path)
	if version == siteconfig.Python2 {
		return "python -m virtualenv " + quoted + " --no-pip"
	}

	return "python3 -m venv " + quoted + " --symlinks --without-pip"
}
