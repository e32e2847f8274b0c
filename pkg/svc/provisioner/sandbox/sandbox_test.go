package sandbox_test

import (
	"context"
	"testing"

	"github.com/devantler-tech/hostkit/pkg/svc/provisioner/provisionerr"
	"github.com/devantler-tech/hostkit/pkg/svc/provisioner/sandbox"
	"github.com/devantler-tech/hostkit/pkg/svc/remote/remotetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		version   string
		creation  string
		bootstrap string
	}{
		{
			name:      "python3",
			version:   "3",
			creation:  "python3 -m venv /home/acme/venv --symlinks --without-pip",
			bootstrap: sandbox.BootstrapURL3,
		},
		{
			name:      "python2",
			version:   "2",
			creation:  "python -m virtualenv /home/acme/venv --no-pip",
			bootstrap: sandbox.BootstrapURL2,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			fake := remotetest.New().Respond("bin/activate; then", "absent")

			box, err := sandbox.NewManager(sandbox.DefaultOptions()).
				Create(context.Background(), fake.Session("acme"), "venv", testCase.version)

			require.NoError(t, err)
			assert.Equal(t, sandbox.Sandbox{Name: "venv", Version: testCase.version}, box)

			commands := fake.Commands()
			require.Len(t, commands, 4)
			assert.Contains(t, commands[0], "test -f /home/acme/venv/bin/activate")
			assert.Equal(t, testCase.creation, commands[1])
			assert.Contains(t, commands[2], "'source /home/acme/venv/bin/activate'")
			assert.Contains(t, commands[2], "/home/acme/.bashrc")
			assert.Equal(t,
				". /home/acme/venv/bin/activate && curl -fsSL -o /home/acme/venv/get-pip.py "+testCase.bootstrap+
					" && python /home/acme/venv/get-pip.py && rm -f /home/acme/venv/get-pip.py",
				commands[3],
			)

			for _, call := range fake.Received() {
				assert.False(t, call.Admin)
			}
		})
	}
}

func TestCreate_ExistingSandboxSkipsOnlyCreation(t *testing.T) {
	t.Parallel()

	fake := remotetest.New().Respond("bin/activate; then", "present")

	_, err := sandbox.NewManager(sandbox.Options{}).Create(context.Background(), fake.Session("acme"), "venv", "3")

	require.NoError(t, err)
	assert.Empty(t, fake.Matching("-m venv"))
	assert.Len(t, fake.Matching(".bashrc"), 1)
	assert.Len(t, fake.Matching("get-pip.py"), 1)
}

func TestCreate_InvalidVersionIssuesNoCommands(t *testing.T) {
	t.Parallel()

	for _, version := range []string{"", "1", "4", "3.11", "python3", " 3"} {
		fake := remotetest.New()

		_, err := sandbox.NewManager(sandbox.DefaultOptions()).
			Create(context.Background(), fake.Session("acme"), "venv", version)

		require.ErrorIs(t, err, provisionerr.ErrInvalidArgument, "version %q", version)
		assert.Empty(t, fake.Received(), "version %q", version)
	}
}

func TestCreate_InvalidName(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"", ".", "..", "../etc", "a/b", "-x"} {
		fake := remotetest.New()

		_, err := sandbox.NewManager(sandbox.DefaultOptions()).
			Create(context.Background(), fake.Session("acme"), name, "3")

		require.ErrorIs(t, err, provisionerr.ErrInvalidArgument, "name %q", name)
		assert.Empty(t, fake.Received())
	}
}

func TestCreate_CustomBootstrapURL(t *testing.T) {
	t.Parallel()

	fake := remotetest.New().Respond("bin/activate; then", "absent")
	opts := sandbox.Options{BootstrapURLs: map[string]string{"3": "https://mirror.example.com/get-pip.py"}}

	_, err := sandbox.NewManager(opts).Create(context.Background(), fake.Session("acme"), "venv", "3")

	require.NoError(t, err)
	assert.Len(t, fake.Matching("https://mirror.example.com/get-pip.py"), 1)
}

func TestCreate_CreationFailureStops(t *testing.T) {
	t.Parallel()

	fake := remotetest.New().
		Respond("bin/activate; then", "absent").
		Fail("-m venv", assert.AnError)

	_, err := sandbox.NewManager(sandbox.DefaultOptions()).Create(context.Background(), fake.Session("acme"), "venv", "3")

	require.ErrorIs(t, err, assert.AnError)
	assert.Empty(t, fake.Matching(".bashrc"))
}

func TestActivateCommand(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ". /home/acme/venv/bin/activate && pip freeze",
		sandbox.ActivateCommand("/home/acme/venv/bin/activate", "pip freeze"))
}

func TestPipInstall(t *testing.T) {
	t.Parallel()

	fake := remotetest.New()

	err := sandbox.PipInstall(context.Background(), fake.Session("acme"), "venv", "django", "requests>=2")

	require.NoError(t, err)
	assert.Equal(t,
		[]string{". /home/acme/venv/bin/activate && pip install -U django 'requests>=2'"},
		fake.Commands(),
	)
}

func TestPipInstall_NoPackages(t *testing.T) {
	t.Parallel()

	fake := remotetest.New()

	err := sandbox.PipInstall(context.Background(), fake.Session("acme"), "venv")

	require.ErrorIs(t, err, provisionerr.ErrInvalidArgument)
	assert.Empty(t, fake.Received())
}

func TestPipInstall_RejectsNamesOutsideHome(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"..", "../other/venv", "/opt/venv", ""} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			fake := remotetest.New()

			err := sandbox.PipInstall(context.Background(), fake.Session("acme"), name, "django")
			require.ErrorIs(t, err, provisionerr.ErrInvalidArgument)

			err = sandbox.PipInstallRequirements(context.Background(), fake.Session("acme"), name, "")
			require.ErrorIs(t, err, provisionerr.ErrInvalidArgument)

			assert.Empty(t, fake.Received())
		})
	}
}

func TestPipInstallRequirements(t *testing.T) {
	t.Parallel()

	t.Run("default path", func(t *testing.T) {
		t.Parallel()

		fake := remotetest.New()

		err := sandbox.PipInstallRequirements(context.Background(), fake.Session("acme"), "venv", "")

		require.NoError(t, err)
		assert.Equal(t,
			[]string{". /home/acme/venv/bin/activate && pip install -U -r /home/acme/site-dir/requirements.txt"},
			fake.Commands(),
		)
	})

	t.Run("explicit path", func(t *testing.T) {
		t.Parallel()

		fake := remotetest.New()

		err := sandbox.PipInstallRequirements(context.Background(), fake.Session("acme"), "venv", "/srv/reqs.txt")

		require.NoError(t, err)
		assert.Len(t, fake.Matching("-r /srv/reqs.txt"), 1)
	})

	t.Run("failure", func(t *testing.T) {
		t.Parallel()

		fake := remotetest.New().Fail("pip install", assert.AnError)

		err := sandbox.PipInstallRequirements(context.Background(), fake.Session("acme"), "venv", "")

		require.ErrorIs(t, err, assert.AnError)
	})
}

func TestSandboxPaths(t *testing.T) {
	t.Parallel()

	box := sandbox.Sandbox{Name: "venv", Version: "3"}

	assert.Equal(t, "/home/acme/venv", box.Path("/home/acme"))
	assert.Equal(t, "/home/acme/venv/bin/activate", box.ActivateScript("/home/acme"))
}
