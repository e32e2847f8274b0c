// Package database creates PostgreSQL roles and the database each one owns.
package database

import (
	"context"
	"fmt"

	"github.com/devantler-tech/hostkit/pkg/apis/host/v1alpha1"
	"github.com/devantler-tech/hostkit/pkg/svc/checker"
	"github.com/devantler-tech/hostkit/pkg/svc/provisioner/provisionerr"
	"github.com/devantler-tech/hostkit/pkg/svc/remote"
	"github.com/devantler-tech/hostkit/pkg/svc/secret"
	"github.com/jackc/pgx/v5"
)

// Defaults for role and database creation.
const (
	DefaultNameLength  = v1alpha1.DefaultDBNameLength
	DefaultNameSuffix  = v1alpha1.DefaultDBNameSuffix
	DefaultMaxAttempts = v1alpha1.DefaultMaxAttempts
)

// SecretGenerator produces passwords and name tokens of a given length.
type SecretGenerator interface {
	Generate(length int) (string, error)
}

// Options controls role and database creation.
type Options struct {
	PasswordLength int
	NameLength     int
	NameSuffix     string
	MaxAttempts    int
}

// DefaultOptions returns the database defaults.
func DefaultOptions() Options {
	return Options{
		PasswordLength: secret.DefaultLength,
		NameLength:     DefaultNameLength,
		NameSuffix:     DefaultNameSuffix,
		MaxAttempts:    DefaultMaxAttempts,
	}
}

// Identity is a created role together with the database it owns.
type Identity struct {
	Name     string
	Password string
	Database string
}

// Manager creates roles and databases.
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

// Create adds a login role name that may create databases, then creates a
// uniquely named database owned by it. An empty password is generated.
// admin must carry administrative privilege.
func (m *Manager) Create(ctx context.Context, admin remote.Executor, name, password string) (Identity, error) {
	if name == "" {
		return Identity{}, fmt.Errorf("%w: role name is empty", provisionerr.ErrInvalidArgument)
	}

	exists, err := checker.RoleExists(ctx, admin, name)
	if err != nil {
		return Identity{}, err
	}

	if exists {
		return Identity{}, fmt.Errorf("%w: role %s", provisionerr.ErrAlreadyExists, name)
	}

	if password == "" {
		password, err = m.secrets.Generate(m.options.PasswordLength)
		if err != nil {
			return Identity{}, fmt.Errorf("generate password for role %s: %w", name, err)
		}
	}

	role := quoteIdent(name)

	_, err = admin.Run(ctx, checker.PSQL(fmt.Sprintf(
		"CREATE ROLE %s WITH LOGIN CREATEDB PASSWORD %s", role, checker.QuoteLiteral(password),
	)))
	if err != nil {
		return Identity{}, fmt.Errorf("create role %s: %w", name, err)
	}

	dbName, err := AllocateName(ctx, m.candidate, func(ctx context.Context, candidate string) (bool, error) {
		return checker.DatabaseExists(ctx, admin, candidate)
	}, m.options.MaxAttempts)
	if err != nil {
		return Identity{}, fmt.Errorf("allocate database name for %s: %w", name, err)
	}

	_, err = admin.Run(ctx, checker.PSQL(fmt.Sprintf("CREATE DATABASE %s OWNER %s", quoteIdent(dbName), role)))
	if err != nil {
		return Identity{}, fmt.Errorf("create database %s: %w", dbName, err)
	}

	return Identity{Name: name, Password: password, Database: dbName}, nil
}

func (m *Manager) candidate() (string, error) {
	token, err := m.secrets.Generate(m.options.NameLength)
	if err != nil {
		return "", err
	}

	return token + m.options.NameSuffix, nil
}

func quoteIdent(name string) string {
	return pgx.Identifier{name}.Sanitize()
}
