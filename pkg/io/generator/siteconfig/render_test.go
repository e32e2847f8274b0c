package siteconfig_test

import (
	"os"
	"strings"
	"testing"

	"github.com/devantler-tech/hostkit/pkg/io/generator/siteconfig"
	"github.com/devantler-tech/hostkit/pkg/svc/provisioner/provisionerr"
	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	exitCode := m.Run()

	_, err := snaps.Clean(m, snaps.CleanOpts{Sort: true})
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to clean snapshots: " + err.Error() + "\n")

		os.Exit(1)
	}

	os.Exit(exitCode)
}

func TestRenderManifest(t *testing.T) {
	t.Parallel()

	out, err := siteconfig.RenderManifest(siteconfig.Manifest{
		Layout:           siteconfig.NewLayout("acme", siteconfig.DefaultSandbox),
		UnixUser:         "acme",
		UnixPassword:     "Unix1Pass2",
		DatabaseUser:     "acme",
		DatabasePassword: "Db3Pass4x5",
		DatabaseName:     "AbCdEfGhJkMn_DB",
	})

	require.NoError(t, err)
	snaps.MatchSnapshot(t, out)
}

func TestRenderUnitConfig(t *testing.T) {
	t.Parallel()

	for _, version := range []string{siteconfig.Python2, siteconfig.Python3} {
		t.Run("python"+version, func(t *testing.T) {
			t.Parallel()

			params, err := siteconfig.NewUnitConfig(siteconfig.NewLayout("acme", siteconfig.DefaultSandbox), version)
			require.NoError(t, err)

			out, err := siteconfig.RenderUnitConfig(params)

			require.NoError(t, err)
			snaps.MatchSnapshot(t, out)
		})
	}
}

func TestRenderVirtualHost(t *testing.T) {
	t.Parallel()

	out, err := siteconfig.RenderVirtualHost(siteconfig.NewVirtualHost(siteconfig.NewLayout("acme", siteconfig.DefaultSandbox)))

	require.NoError(t, err)
	snaps.MatchSnapshot(t, out)
}

func TestRenderUnitConfig_SelectsExactlyOnePlugin(t *testing.T) {
	t.Parallel()

	layout := siteconfig.NewLayout("acme", siteconfig.DefaultSandbox)

	py2, err := siteconfig.NewUnitConfig(layout, siteconfig.Python2)
	require.NoError(t, err)

	py3, err := siteconfig.NewUnitConfig(layout, siteconfig.Python3)
	require.NoError(t, err)

	out2, err := siteconfig.RenderUnitConfig(py2)
	require.NoError(t, err)

	out3, err := siteconfig.RenderUnitConfig(py3)
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(out2, "plugins = "))
	assert.Contains(t, out2, "plugins = python2\n")
	assert.NotContains(t, out2, "python3")
	assert.Contains(t, out3, "plugins = python3\n")
	assert.NotContains(t, out3, "python2")
}

func TestNewUnitConfig_RejectsUnknownVersion(t *testing.T) {
	t.Parallel()

	for _, version := range []string{"", "1", "3.12", "python3", "4"} {
		_, err := siteconfig.NewUnitConfig(siteconfig.NewLayout("acme", "venv"), version)

		require.ErrorIs(t, err, provisionerr.ErrInvalidArgument, "version %q", version)
	}
}

func TestRenderVirtualHost_HonoursOverrides(t *testing.T) {
	t.Parallel()

	params := siteconfig.NewVirtualHost(siteconfig.NewLayout("shop.example.com", "venv"))
	params.Port = 8080
	params.MaxBodySize = "10M"

	out, err := siteconfig.RenderVirtualHost(params)

	require.NoError(t, err)
	assert.Contains(t, out, "upstream shop.example.com {\n")
	assert.Contains(t, out, "  listen 8080;\n")
	assert.Contains(t, out, "  server_name shop.example.com;\n")
	assert.Contains(t, out, "  client_max_body_size 10M;\n")
	assert.Contains(t, out, "    alias /home/shop.example.com/site-dir/staticfiles;\n")
}

func TestNewLayout(t *testing.T) {
	t.Parallel()

	layout := siteconfig.NewLayout("acme", "venv")

	assert.Equal(t, "/home/acme", layout.Home)
	assert.Equal(t, "/home/acme/venv", layout.Sandbox)
	assert.Equal(t, "/home/acme/site-dir/staticfiles", layout.StaticDir)
	assert.Equal(t, "/home/acme/site-dir/requirements.txt", layout.Requirements)
	assert.Equal(t, "/home/acme/uwsgi.sock", layout.Socket)
	assert.Equal(t, "/home/acme/README.txt", layout.Manifest)
}
