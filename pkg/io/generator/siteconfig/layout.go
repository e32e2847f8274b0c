package siteconfig

import (
	"github.com/devantler-tech/hostkit/pkg/apis/host/v1alpha1"
	"github.com/devantler-tech/hostkit/pkg/svc/remote"
)

// Directory and file names inside a tenant's home.
const (
	SiteDirName      = "site-dir"
	StaticDirName    = "staticfiles"
	EntryPointName   = "wsgi.py"
	UnitConfigName   = "uwsgi.ini"
	UnitLogName      = "uwsgi.log"
	SocketName       = "uwsgi.sock"
	AccessLogName    = "nginx_access.log"
	ErrorLogName     = "nginx_error.log"
	ManifestName     = "README.txt"
	DefaultSandbox   = v1alpha1.DefaultSandboxName
	RequirementsName = "requirements.txt"
)

// Layout is the set of absolute paths owned by one tenant.
type Layout struct {
	Tenant       string
	Home         string
	Sandbox      string
	SiteDir      string
	StaticDir    string
	EntryPoint   string
	Requirements string
	UnitConfig   string
	UnitLog      string
	Socket       string
	AccessLog    string
	ErrorLog     string
	Manifest     string
}

// NewLayout returns the paths for tenant with its sandbox named sandbox.
func NewLayout(tenant, sandbox string) Layout {
	home := remote.HomeDir(tenant)
	site := home + "/" + SiteDirName

	return Layout{
		Tenant:       tenant,
		Home:         home,
		Sandbox:      home + "/" + sandbox,
		SiteDir:      site,
		StaticDir:    site + "/" + StaticDirName,
		EntryPoint:   site + "/" + EntryPointName,
		Requirements: site + "/" + RequirementsName,
		UnitConfig:   home + "/" + UnitConfigName,
		UnitLog:      home + "/" + UnitLogName,
		Socket:       home + "/" + SocketName,
		AccessLog:    home + "/" + AccessLogName,
		ErrorLog:     home + "/" + ErrorLogName,
		Manifest:     home + "/" + ManifestName,
	}
}
