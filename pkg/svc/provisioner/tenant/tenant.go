// Package tenant creates the OS-level account that owns a tenant's resources.
package tenant

import (
	"context"
	"fmt"
	"regexp"

	"al.essio.dev/pkg/shellescape"
	"github.com/devantler-tech/hostkit/pkg/apis/host/v1alpha1"
	"github.com/devantler-tech/hostkit/pkg/svc/checker"
	"github.com/devantler-tech/hostkit/pkg/svc/provisioner/provisionerr"
	"github.com/devantler-tech/hostkit/pkg/svc/remote"
	"github.com/devantler-tech/hostkit/pkg/svc/secret"
)

// Account defaults.
const (
	DefaultGroup      = v1alpha1.DefaultWebGroup
	DefaultAdminGroup = v1alpha1.DefaultAdminGroup
	DefaultShell      = v1alpha1.DefaultShell
)

// namePattern accepts POSIX account names plus dots, so domain names are valid tenants.
var namePattern = regexp.MustCompile(`^[a-z_][a-z0-9_.-]{0,31}$`)

// SecretGenerator produces passwords of a given length.
type SecretGenerator interface {
	Generate(length int) (string, error)
}

// Options controls how tenant accounts are created.
type Options struct {
	Group          string
	AdminGroup     string
	Shell          string
	PasswordLength int
}

// DefaultOptions returns the account defaults.
func DefaultOptions() Options {
	return Options{
		Group:          DefaultGroup,
		AdminGroup:     DefaultAdminGroup,
		Shell:          DefaultShell,
		PasswordLength: secret.DefaultLength,
	}
}

// Identity is the resolved account of a tenant.
type Identity struct {
	Name     string
	Password string
}

// Manager creates tenant accounts.
type Manager struct {
	options Options
	secrets SecretGenerator
}

// NewManager returns a Manager. A nil secrets generator uses crypto/rand.
func NewManager(options Options, secrets SecretGenerator) *Manager {
	if secrets == nil {
		secrets = secret.NewGenerator()
	}

	return &Manager{options: options, secrets: secrets}
}

// ValidateName rejects names that cannot be used as an account name.
func ValidateName(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("%w: %q is not a valid account name", provisionerr.ErrInvalidArgument, name)
	}

	return nil
}

// Create adds the OS account name with password, generating one when password is empty.
// It fails with provisionerr.ErrAlreadyExists, without side effects, when the account exists.
func (m *Manager) Create(ctx context.Context, session *remote.Session, name, password string) (Identity, error) {
	err := ValidateName(name)
	if err != nil {
		return Identity{}, err
	}

	exists, err := checker.TenantExists(ctx, session.Standard, name)
	if err != nil {
		return Identity{}, err
	}

	if exists {
		return Identity{}, fmt.Errorf("%w: username %s is taken", provisionerr.ErrAlreadyExists, name)
	}

	if password == "" {
		password, err = m.secrets.Generate(m.options.PasswordLength)
		if err != nil {
			return Identity{}, fmt.Errorf("generate password for %s: %w", name, err)
		}
	}

	useradd := fmt.Sprintf("useradd --create-home --gid %s --groups %s --shell %s %s",
		shellescape.Quote(m.options.Group),
		shellescape.Quote(m.options.AdminGroup),
		shellescape.Quote(m.options.Shell),
		shellescape.Quote(name),
	)

	_, err = session.Admin.Run(ctx, useradd)
	if err != nil {
		return Identity{}, fmt.Errorf("create account %s: %w", name, err)
	}

	_, err = session.Admin.Run(ctx, "printf '%s\\n' "+shellescape.Quote(name+":"+password)+" | chpasswd")
	if err != nil {
		return Identity{}, fmt.Errorf("set password for %s: %w", name, err)
	}

	return Identity{Name: name, Password: password}, nil
}
