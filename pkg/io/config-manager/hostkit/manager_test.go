package configmanager_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/devantler-tech/hostkit/pkg/apis/host/v1alpha1"
	configmanagerinterface "github.com/devantler-tech/hostkit/pkg/io/config-manager"
	configmanager "github.com/devantler-tech/hostkit/pkg/io/config-manager/hostkit"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `apiVersion: hostkit.devantler.tech/v1alpha1
kind: Host
spec:
  connection:
    host: 203.0.113.7
    user: deploy
    port: 2222
    identityFile: /keys/id_ed25519
    timeout: 45s
  tenant:
    pythonVersion: "2"
  web:
    processes: 4
  server:
    services: [nginx]
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "hostkit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad_FromFile(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, sampleConfig)

	var out bytes.Buffer

	manager := configmanager.NewConfigManager(&out, path)

	host, err := manager.Load(configmanagerinterface.LoadOptions{})

	require.NoError(t, err)
	assert.Equal(t, "203.0.113.7", host.Spec.Connection.Host)
	assert.Equal(t, "deploy", host.Spec.Connection.User)
	assert.Equal(t, 2222, host.Spec.Connection.Port)
	assert.Equal(t, "/keys/id_ed25519", host.Spec.Connection.IdentityFile)
	assert.Equal(t, 45*time.Second, host.Spec.Connection.Timeout)
	assert.Equal(t, v1alpha1.PythonVersion2, host.Spec.Tenant.PythonVersion)
	assert.Equal(t, 4, host.Spec.Web.Processes)
	assert.Equal(t, []string{"nginx"}, host.Spec.Server.Services)

	assert.Equal(t, v1alpha1.DefaultSandboxName, host.Spec.Sandbox.Name, "unset keys keep defaults")
	assert.Equal(t, v1alpha1.DefaultMaxBodySize, host.Spec.Web.MaxBodySize)
	assert.True(t, filepath.IsAbs(host.Spec.Connection.KnownHostsFile))

	assert.Equal(t, path, manager.ConfigFileUsed())
	assert.Contains(t, out.String(), "using config "+path)
}

func TestLoad_CachesResult(t *testing.T) {
	t.Parallel()

	manager := configmanager.NewConfigManager(&bytes.Buffer{}, writeConfig(t, sampleConfig))

	first, err := manager.Load(configmanagerinterface.LoadOptions{Silent: true})
	require.NoError(t, err)

	second, err := manager.Load(configmanagerinterface.LoadOptions{Silent: true})
	require.NoError(t, err)

	assert.Same(t, first, second)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Parallel()

	manager := configmanager.NewConfigManager(&bytes.Buffer{}, filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := manager.Load(configmanagerinterface.LoadOptions{Silent: true})

	require.ErrorContains(t, err, "read config file")
}

func TestLoad_InvalidFile(t *testing.T) {
	t.Parallel()

	manager := configmanager.NewConfigManager(&bytes.Buffer{}, writeConfig(t, "spec: [unbalanced"))

	_, err := manager.Load(configmanagerinterface.LoadOptions{Silent: true})

	require.Error(t, err)
}

func TestLoad_ValidationFailure(t *testing.T) {
	t.Parallel()

	manager := configmanager.NewConfigManager(&bytes.Buffer{}, writeConfig(t, "spec:\n  connection:\n    user: root\n"))

	_, err := manager.Load(configmanagerinterface.LoadOptions{Silent: true})

	require.ErrorIs(t, err, v1alpha1.ErrHostRequired)
}

func TestLoad_SkipValidation(t *testing.T) {
	t.Parallel()

	manager := configmanager.NewConfigManager(&bytes.Buffer{}, writeConfig(t, "spec: {}\n"))

	host, err := manager.Load(configmanagerinterface.LoadOptions{Silent: true, SkipValidation: true})

	require.NoError(t, err)
	assert.Empty(t, host.Spec.Connection.Host)
}

func TestLoad_FlagsOverrideFile(t *testing.T) {
	t.Parallel()

	flags := pflag.NewFlagSet("hostkit", pflag.ContinueOnError)
	flags.String("host", "", "")
	flags.Int("port", 22, "")
	flags.String("user", "root", "")
	flags.Duration("timeout", 0, "")
	require.NoError(t, flags.Parse([]string{"--host", "198.51.100.9", "--timeout", "5s"}))

	manager := configmanager.NewConfigManager(&bytes.Buffer{}, writeConfig(t, sampleConfig))
	require.NoError(t, manager.BindFlags(flags))

	host, err := manager.Load(configmanagerinterface.LoadOptions{Silent: true})

	require.NoError(t, err)
	assert.Equal(t, "198.51.100.9", host.Spec.Connection.Host, "changed flag wins")
	assert.Equal(t, 5*time.Second, host.Spec.Connection.Timeout)
	assert.Equal(t, 2222, host.Spec.Connection.Port, "unchanged flag does not override file")
	assert.Equal(t, "deploy", host.Spec.Connection.User)
}

//nolint:paralleltest // uses t.Setenv
func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	t.Setenv("HOSTKIT_SPEC_CONNECTION_HOST", "env.example.com")
	t.Setenv("HOSTKIT_SPEC_DATABASE_MAXATTEMPTS", "7")

	manager := configmanager.NewConfigManager(&bytes.Buffer{}, writeConfig(t, sampleConfig))

	host, err := manager.Load(configmanagerinterface.LoadOptions{Silent: true})

	require.NoError(t, err)
	assert.Equal(t, "env.example.com", host.Spec.Connection.Host)
	assert.Equal(t, 7, host.Spec.Database.MaxAttempts)
}

//nolint:paralleltest // uses t.Setenv
func TestLoad_ExpandsPlaceholders(t *testing.T) {
	t.Setenv("HOSTKIT_TEST_TARGET", "placeholder.example.com")

	manager := configmanager.NewConfigManager(&bytes.Buffer{}, writeConfig(t,
		"spec:\n  connection:\n    host: ${HOSTKIT_TEST_TARGET}\n    identityFile: ${HOSTKIT_TEST_KEYDIR:-/keys}/id\n",
	))

	host, err := manager.Load(configmanagerinterface.LoadOptions{Silent: true})

	require.NoError(t, err)
	assert.Equal(t, "placeholder.example.com", host.Spec.Connection.Host)
	assert.Equal(t, "/keys/id", host.Spec.Connection.IdentityFile)
}

func TestLoad_IgnoreConfigFile(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	manager := configmanager.NewConfigManager(&out, writeConfig(t, sampleConfig))

	host, err := manager.Load(configmanagerinterface.LoadOptions{IgnoreConfigFile: true, SkipValidation: true})

	require.NoError(t, err)
	assert.Empty(t, host.Spec.Connection.Host)
	assert.Empty(t, manager.ConfigFileUsed())
	assert.Contains(t, out.String(), "no hostkit.yaml found")
}

func TestFlagKeys(t *testing.T) {
	t.Parallel()

	keys := configmanager.FlagKeys()

	assert.Equal(t, "spec.connection.host", keys["host"])
	assert.Equal(t, "spec.connection.identityFile", keys["identity-file"])
}
