package domain_test

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"strings"
	"testing"

	"github.com/devantler-tech/hostkit/pkg/svc/provisioner/database"
	"github.com/devantler-tech/hostkit/pkg/svc/provisioner/domain"
	"github.com/devantler-tech/hostkit/pkg/svc/provisioner/provisionerr"
	"github.com/devantler-tech/hostkit/pkg/svc/provisioner/tenant"
	"github.com/devantler-tech/hostkit/pkg/svc/remote"
	"github.com/devantler-tech/hostkit/pkg/svc/remote/remotetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"
)

// queueSecrets hands out fixed values in order.
type queueSecrets struct {
	values []string
}

func (q *queueSecrets) Generate(length int) (string, error) {
	value := q.values[0]
	q.values = q.values[1:]

	return value[:length], nil
}

type fixture struct {
	dialer   *remotetest.Dialer
	operator *remotetest.Fake
	tenant   *remotetest.Fake
	out      *bytes.Buffer
	prov     *domain.Provisioner
}

func newFixture(t *testing.T, secrets []string) fixture {
	t.Helper()

	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	sshPub, err := ssh.NewPublicKey(pub)
	require.NoError(t, err)

	dialer := remotetest.NewDialer()
	operator := remotetest.New().Respond("getent passwd", "absent", "present")
	tenantFake := dialer.For("acme").Respond("bin/activate; then", "absent")
	generator := &queueSecrets{values: secrets}
	out := &bytes.Buffer{}

	return fixture{
		dialer:   dialer,
		operator: operator,
		tenant:   tenantFake,
		out:      out,
		prov: &domain.Provisioner{
			Dialer:    dialer,
			Tenants:   tenant.NewManager(tenant.DefaultOptions(), generator),
			Databases: database.NewManager(database.DefaultOptions(), generator),
			PublicKey: ssh.MarshalAuthorizedKey(sshPub),
			Writer:    out,
		},
	}
}

func TestProvision_CleanHost(t *testing.T) {
	t.Parallel()

	fix := newFixture(t, []string{"UnixPass01", "RolePass02", "DbToken00003"})

	result, err := fix.prov.Provision(context.Background(), fix.operator.Session("root"), domain.Request{
		Domain:  "acme",
		Version: "3",
	})

	require.NoError(t, err)
	assert.Equal(t, tenant.Identity{Name: "acme", Password: "UnixPass01"}, result.Unix)
	assert.Equal(t, database.Identity{Name: "acme", Password: "RolePass02", Database: "DbToken00003_DB"}, result.Database)
	assert.Equal(t, "/etc/nginx/sites-available/acme", result.Publication.ProxyConfigPath)
	assert.Equal(t, "/home/acme/README.txt", result.ManifestPath)

	assert.Equal(t, []remote.Credentials{{User: "acme", Password: "UnixPass01"}}, fix.dialer.Dialed())

	assert.Len(t, fix.operator.Matching("useradd"), 1)
	assert.Len(t, fix.operator.Matching("CREATE ROLE"), 1)
	assert.Len(t, fix.operator.Matching(`CREATE DATABASE "DbToken00003_DB" OWNER "acme"`), 1)

	assert.Len(t, fix.tenant.Matching("authorized_keys"), 2)
	assert.Len(t, fix.tenant.Matching("python3 -m venv /home/acme/venv"), 1)
	assert.Len(t, fix.tenant.Matching("plugins = python3"), 1)
	enabled := fix.tenant.Matching("ln -sfn /etc/nginx/sites-available/acme /etc/nginx/sites-enabled/acme")
	require.Len(t, enabled, 1)
	assert.True(t, enabled[0].Admin)

	manifests := fix.tenant.Matching("> /home/acme/README.txt")
	require.Len(t, manifests, 1)
	assert.Contains(t, manifests[0].Command, "UnixPass01")
	assert.Contains(t, manifests[0].Command, "RolePass02")
	assert.Contains(t, manifests[0].Command, "DbToken00003_DB")
	assert.Len(t, fix.tenant.Matching("chmod 600 /home/acme/README.txt"), 1)

	assert.Empty(t, fix.operator.Matching("README"), "manifest is written as the tenant")
	assert.Contains(t, fix.out.String(), "► creating account acme")
}

func TestProvision_StepOrder(t *testing.T) {
	t.Parallel()

	fix := newFixture(t, []string{"UnixPass01", "RolePass02", "DbToken00003"})

	_, err := fix.prov.Provision(context.Background(), fix.operator.Session("root"), domain.Request{Domain: "acme", Version: "2"})
	require.NoError(t, err)

	tenantCommands := strings.Join(fix.tenant.Commands(), "\n")
	keyAt := strings.Index(tenantCommands, "authorized_keys")
	venvAt := strings.Index(tenantCommands, "virtualenv")
	publishAt := strings.Index(tenantCommands, "uwsgi.ini")
	manifestAt := strings.Index(tenantCommands, "README.txt")

	assert.Less(t, keyAt, venvAt)
	assert.Less(t, venvAt, publishAt)
	assert.Less(t, publishAt, manifestAt)
}

func TestProvision_ExplicitPasswordIsSharedWithRole(t *testing.T) {
	t.Parallel()

	fix := newFixture(t, []string{"DbToken00003"})

	result, err := fix.prov.Provision(context.Background(), fix.operator.Session("root"), domain.Request{
		Domain:   "acme",
		Password: "Chosen1234",
		Version:  "3",
	})

	require.NoError(t, err)
	assert.Equal(t, "Chosen1234", result.Unix.Password)
	assert.Equal(t, "Chosen1234", result.Database.Password)
}

func TestProvision_RerunFailsBeforeTouchingWebConfig(t *testing.T) {
	t.Parallel()

	fix := newFixture(t, []string{"UnixPass01", "RolePass02", "DbToken00003"})
	operator := fix.operator.Session("root")

	_, err := fix.prov.Provision(context.Background(), operator, domain.Request{Domain: "acme", Version: "3"})
	require.NoError(t, err)

	fix.operator.Reset()
	fix.tenant.Reset()

	_, err = fix.prov.Provision(context.Background(), operator, domain.Request{Domain: "acme", Version: "3"})

	require.ErrorIs(t, err, provisionerr.ErrAlreadyExists)
	assert.Len(t, fix.operator.Commands(), 1)
	assert.Empty(t, fix.tenant.Received(), "web configuration untouched")
	assert.Len(t, fix.dialer.Dialed(), 1)
}

func TestProvision_InvalidVersionIssuesNoCommands(t *testing.T) {
	t.Parallel()

	fix := newFixture(t, nil)

	_, err := fix.prov.Provision(context.Background(), fix.operator.Session("root"), domain.Request{Domain: "acme", Version: "4"})

	require.ErrorIs(t, err, provisionerr.ErrInvalidArgument)
	assert.Empty(t, fix.operator.Received())
	assert.Empty(t, fix.dialer.Dialed())
}

func TestProvision_WithoutPublicKeyWarns(t *testing.T) {
	t.Parallel()

	fix := newFixture(t, []string{"UnixPass01", "RolePass02", "DbToken00003"})
	fix.prov.PublicKey = nil

	_, err := fix.prov.Provision(context.Background(), fix.operator.Session("root"), domain.Request{Domain: "acme", Version: "3"})

	require.NoError(t, err)
	assert.Empty(t, fix.tenant.Matching("authorized_keys"))
	assert.Contains(t, fix.out.String(), "⚠ no public key configured")
}

func TestProvision_TenantDialFailure(t *testing.T) {
	t.Parallel()

	fix := newFixture(t, []string{"UnixPass01"})
	errRefused := errors.New("connection refused")
	fix.dialer.FailDial("acme", errRefused)

	_, err := fix.prov.Provision(context.Background(), fix.operator.Session("root"), domain.Request{Domain: "acme", Version: "3"})

	require.ErrorIs(t, err, errRefused)
	assert.ErrorContains(t, err, "connect as acme")
	assert.Empty(t, fix.operator.Matching("CREATE ROLE"))
}

func TestProvision_DatabaseFailureKeepsEarlierSteps(t *testing.T) {
	t.Parallel()

	fix := newFixture(t, []string{"UnixPass01", "RolePass02"})
	fix.operator.Respond("pg_roles", "1")

	_, err := fix.prov.Provision(context.Background(), fix.operator.Session("root"), domain.Request{Domain: "acme", Version: "3"})

	require.ErrorIs(t, err, provisionerr.ErrAlreadyExists)
	assert.Len(t, fix.tenant.Matching("uwsgi.ini"), 2, "publish already ran")
	assert.Empty(t, fix.tenant.Matching("README.txt"))
}
