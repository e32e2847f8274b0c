package domain

import (
	"io"

	"github.com/devantler-tech/hostkit/pkg/apis/host/v1alpha1"
	"github.com/devantler-tech/hostkit/pkg/io/generator/siteconfig"
	"github.com/devantler-tech/hostkit/pkg/svc/provisioner/database"
	"github.com/devantler-tech/hostkit/pkg/svc/provisioner/sandbox"
	"github.com/devantler-tech/hostkit/pkg/svc/provisioner/tenant"
	"github.com/devantler-tech/hostkit/pkg/svc/provisioner/web"
	"github.com/devantler-tech/hostkit/pkg/svc/remote"
)

// SecretGenerator produces random credentials for every manager built by NewFromHost.
type SecretGenerator interface {
	Generate(length int) (string, error)
}

// NewFromHost builds a Provisioner configured by host.
func NewFromHost(
	host *v1alpha1.Host,
	dialer remote.Dialer,
	secrets SecretGenerator,
	publicKey []byte,
	writer io.Writer,
) *Provisioner {
	if host == nil {
		host = v1alpha1.NewHost()
	}

	return &Provisioner{
		Dialer:      dialer,
		Tenants:     tenant.NewManager(TenantOptions(host.Spec.Tenant), secrets),
		Sandboxes:   sandbox.NewManager(SandboxOptions(host.Spec.Sandbox)),
		Web:         web.NewManager(WebOptions(host.Spec.Web, host.Spec.Sandbox)),
		Databases:   database.NewManager(DatabaseOptions(host.Spec.Database), secrets),
		SandboxName: host.Spec.Sandbox.Name,
		PublicKey:   publicKey,
		Writer:      writer,
	}
}

// TenantOptions maps the tenant section of the config.
func TenantOptions(spec v1alpha1.TenantSpec) tenant.Options {
	opts := tenant.DefaultOptions()

	setString(&opts.Group, spec.Group)
	setString(&opts.AdminGroup, spec.AdminGroup)
	setString(&opts.Shell, spec.Shell)
	setInt(&opts.PasswordLength, spec.PasswordLength)

	return opts
}

// SandboxOptions maps the sandbox section of the config.
func SandboxOptions(spec v1alpha1.SandboxSpec) sandbox.Options {
	opts := sandbox.DefaultOptions()

	if spec.BootstrapURL2 != "" {
		opts.BootstrapURLs[siteconfig.Python2] = spec.BootstrapURL2
	}

	if spec.BootstrapURL3 != "" {
		opts.BootstrapURLs[siteconfig.Python3] = spec.BootstrapURL3
	}

	return opts
}

// WebOptions maps the web section of the config. The unit points at the configured sandbox.
func WebOptions(spec v1alpha1.WebSpec, sandboxSpec v1alpha1.SandboxSpec) web.Options {
	opts := web.DefaultOptions()

	setString(&opts.WebGroup, spec.WebGroup)
	setString(&opts.LogGroup, spec.LogGroup)
	setInt(&opts.Processes, spec.Processes)
	setInt(&opts.Port, spec.Port)
	setString(&opts.MaxBodySize, spec.MaxBodySize)
	setString(&opts.VassalDir, spec.VassalDir)
	setString(&opts.SitesAvailable, spec.SitesAvailable)
	setString(&opts.SitesEnabled, spec.SitesEnabled)
	setString(&opts.SandboxName, sandboxSpec.Name)

	return opts
}

// DatabaseOptions maps the database section of the config.
func DatabaseOptions(spec v1alpha1.DatabaseSpec) database.Options {
	opts := database.DefaultOptions()

	setInt(&opts.PasswordLength, spec.PasswordLength)
	setInt(&opts.NameLength, spec.NameLength)
	setString(&opts.NameSuffix, spec.NameSuffix)
	setInt(&opts.MaxAttempts, spec.MaxAttempts)

	return opts
}

func setString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

func setInt(dst *int, value int) {
	if value > 0 {
		*dst = value
	}
}
