// Package domain provisions a complete hosting tenant for one domain.
//
// Steps run strictly in order and stop at the first failure. Nothing is rolled back,
// and the idempotency guards of the account, sandbox and database steps make a
// repeated run fail early rather than duplicate work.
package domain

import (
	"context"
	"fmt"
	"io"

	"github.com/devantler-tech/hostkit/pkg/io/generator/siteconfig"
	"github.com/devantler-tech/hostkit/pkg/svc/provisioner/database"
	"github.com/devantler-tech/hostkit/pkg/svc/provisioner/sandbox"
	"github.com/devantler-tech/hostkit/pkg/svc/provisioner/tenant"
	"github.com/devantler-tech/hostkit/pkg/svc/provisioner/web"
	"github.com/devantler-tech/hostkit/pkg/svc/remote"
	"github.com/devantler-tech/hostkit/pkg/utils/notify"
)

// Request asks for one tenant.
type Request struct {
	// Domain names the tenant account, its virtual host and its database role.
	Domain string
	// Password is used for the account when set. It is also used for the database
	// role; otherwise the role gets its own generated password.
	Password string
	// Version is the interpreter major version, "2" or "3".
	Version string
}

// Result holds everything created for the tenant.
type Result struct {
	Unix         tenant.Identity
	Database     database.Identity
	Publication  web.Publication
	ManifestPath string
}

// Provisioner runs the tenant flow. Zero-valued managers use their defaults.
type Provisioner struct {
	// Dialer opens the tenant's own session once the account exists.
	Dialer      remote.Dialer
	Tenants     *tenant.Manager
	Sandboxes   *sandbox.Manager
	Web         *web.Manager
	Databases   *database.Manager
	SandboxName string
	// PublicKey is authorized for the tenant. The step is skipped when empty.
	PublicKey []byte
	// Writer receives progress messages. Nil discards them.
	Writer io.Writer
}

// Provision creates the tenant described by req. operator must be an administrative
// session on the target host.
func (p *Provisioner) Provision(ctx context.Context, operator *remote.Session, req Request) (*Result, error) {
	p.applyDefaults()

	err := sandbox.ValidateVersion(req.Version)
	if err != nil {
		return nil, err
	}

	err = tenant.ValidateName(req.Domain)
	if err != nil {
		return nil, err
	}

	notify.Activityf(p.Writer, "creating account %s", req.Domain)

	unix, err := p.Tenants.Create(ctx, operator, req.Domain, req.Password)
	if err != nil {
		return nil, err
	}

	session, err := p.Dialer.Dial(ctx, remote.Credentials{User: unix.Name, Password: unix.Password})
	if err != nil {
		return nil, fmt.Errorf("connect as %s: %w", unix.Name, err)
	}

	defer func() { _ = session.Close() }()

	return p.provisionAs(ctx, operator, session, unix, req)
}

func (p *Provisioner) provisionAs(
	ctx context.Context,
	operator, session *remote.Session,
	unix tenant.Identity,
	req Request,
) (*Result, error) {
	if len(p.PublicKey) == 0 {
		notify.Warningf(p.Writer, "no public key configured, %s will need password logins", unix.Name)
	} else {
		notify.Activityf(p.Writer, "authorizing public key")

		err := tenant.AuthorizeKey(ctx, session, p.PublicKey)
		if err != nil {
			return nil, err
		}
	}

	notify.Activityf(p.Writer, "creating python %s sandbox %s", req.Version, p.SandboxName)

	_, err := p.Sandboxes.Create(ctx, session, p.SandboxName, req.Version)
	if err != nil {
		return nil, err
	}

	notify.Activityf(p.Writer, "publishing %s", unix.Name)

	publication, err := p.Web.Publish(ctx, session, req.Version)
	if err != nil {
		return nil, err
	}

	rolePassword := ""
	if req.Password != "" && req.Password == unix.Password {
		rolePassword = unix.Password
	}

	notify.Activityf(p.Writer, "creating database role %s", unix.Name)

	db, err := p.Databases.Create(ctx, operator.Admin, unix.Name, rolePassword)
	if err != nil {
		return nil, err
	}

	manifestPath, err := p.writeManifest(ctx, session, unix, db)
	if err != nil {
		return nil, err
	}

	return &Result{Unix: unix, Database: db, Publication: publication, ManifestPath: manifestPath}, nil
}

func (p *Provisioner) writeManifest(
	ctx context.Context,
	session *remote.Session,
	unix tenant.Identity,
	db database.Identity,
) (string, error) {
	layout := siteconfig.NewLayout(unix.Name, p.SandboxName)

	text, err := siteconfig.RenderManifest(siteconfig.Manifest{
		Layout:           layout,
		UnixUser:         unix.Name,
		UnixPassword:     unix.Password,
		DatabaseUser:     db.Name,
		DatabasePassword: db.Password,
		DatabaseName:     db.Database,
	})
	if err != nil {
		return "", err
	}

	notify.Generatef(p.Writer, "%s", layout.Manifest)

	err = remote.WriteFile(ctx, session.Standard, layout.Manifest, text)
	if err != nil {
		return "", err
	}

	_, err = session.Standard.Run(ctx, "chmod 600 "+layout.Manifest)
	if err != nil {
		return "", fmt.Errorf("restrict %s: %w", layout.Manifest, err)
	}

	return layout.Manifest, nil
}

func (p *Provisioner) applyDefaults() {
	if p.Tenants == nil {
		p.Tenants = tenant.NewManager(tenant.DefaultOptions(), nil)
	}

	if p.Sandboxes == nil {
		p.Sandboxes = sandbox.NewManager(sandbox.DefaultOptions())
	}

	if p.Web == nil {
		p.Web = web.NewManager(web.DefaultOptions())
	}

	if p.Databases == nil {
		p.Databases = database.NewManager(database.DefaultOptions(), nil)
	}

	if p.SandboxName == "" {
		p.SandboxName = siteconfig.DefaultSandbox
	}

	if p.Writer == nil {
		p.Writer = io.Discard
	}
}
