package sandbox

import (
	"context"
	"fmt"
	"strings"

	"al.essio.dev/pkg/shellescape"
	"github.com/devantler-tech/hostkit/pkg/io/generator/siteconfig"
	"github.com/devantler-tech/hostkit/pkg/svc/provisioner/provisionerr"
	"github.com/devantler-tech/hostkit/pkg/svc/remote"
)

// ActivateCommand returns command prefixed so that it runs inside the sandbox
// whose activation script is activateScript.
func ActivateCommand(activateScript, command string) string {
	return ". " + shellescape.Quote(activateScript) + " && " + command
}

// Scoped returns an executor that runs every command as the session user inside sandbox name.
func Scoped(session *remote.Session, name string) remote.Executor {
	activate := Sandbox{Name: name}.ActivateScript(session.Home())

	return remote.ExecutorFunc(func(ctx context.Context, command string) (string, error) {
		return session.Standard.Run(ctx, ActivateCommand(activate, command))
	})
}

// PipInstall upgrades or installs packages in sandbox name.
func PipInstall(ctx context.Context, session *remote.Session, name string, packages ...string) error {
	err := ValidateName(name)
	if err != nil {
		return err
	}

	if len(packages) == 0 {
		return fmt.Errorf("%w: no packages given", provisionerr.ErrInvalidArgument)
	}

	quoted := make([]string, 0, len(packages))
	for _, pkg := range packages {
		quoted = append(quoted, shellescape.Quote(pkg))
	}

	_, err = Scoped(session, name).Run(ctx, "pip install -U "+strings.Join(quoted, " "))
	if err != nil {
		return fmt.Errorf("pip install in %s: %w", name, err)
	}

	return nil
}

// PipInstallRequirements installs a requirements file in sandbox name.
// An empty path means the requirements file of the tenant's site directory.
func PipInstallRequirements(ctx context.Context, session *remote.Session, name, path string) error {
	err := ValidateName(name)
	if err != nil {
		return err
	}

	if path == "" {
		path = siteconfig.NewLayout(session.User, name).Requirements
	}

	_, err = Scoped(session, name).Run(ctx, "pip install -U -r "+shellescape.Quote(path))
	if err != nil {
		return fmt.Errorf("pip install -r %s in %s: %w", path, name, err)
	}

	return nil
}
