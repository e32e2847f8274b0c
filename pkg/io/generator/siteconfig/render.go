package siteconfig

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/devantler-tech/hostkit/pkg/apis/host/v1alpha1"
	"github.com/devantler-tech/hostkit/pkg/svc/provisioner/provisionerr"
)

// Defaults shared by the unit and virtual host parameters.
const (
	DefaultWebGroup    = v1alpha1.DefaultWebGroup
	DefaultProcesses   = v1alpha1.DefaultProcesses
	DefaultPort        = v1alpha1.DefaultHTTPPort
	DefaultMaxBodySize = v1alpha1.DefaultMaxBodySize
)

// Supported interpreter major versions.
const (
	Python2 = "2"
	Python3 = "3"
)

//nolint:gochecknoglobals // parsed once from constant text
var (
	unitConfigTmpl  = template.Must(template.New("uwsgi.ini").Parse(unitConfigTemplate))
	virtualHostTmpl = template.Must(template.New("nginx.conf").Parse(virtualHostTemplate))
	manifestTmpl    = template.Must(template.New("README.txt").Parse(manifestTemplate))
)

// UnitConfig parameterizes the uWSGI vassal configuration.
type UnitConfig struct {
	Layout    Layout
	Plugin    string
	WebGroup  string
	Processes int
}

// VirtualHost parameterizes the nginx server block.
type VirtualHost struct {
	Layout      Layout
	ServerName  string
	Port        int
	MaxBodySize string
}

// Manifest parameterizes the README written to the tenant's home.
type Manifest struct {
	Layout           Layout
	UnixUser         string
	UnixPassword     string
	DatabaseUser     string
	DatabasePassword string
	DatabaseName     string
}

// PluginFor returns the uWSGI plugin serving the given interpreter major version.
func PluginFor(version string) (string, error) {
	switch version {
	case Python2:
		return "python2", nil
	case Python3:
		return "python3", nil
	default:
		return "", fmt.Errorf("%w: python version must be %q or %q, got %q",
			provisionerr.ErrInvalidArgument, Python2, Python3, version)
	}
}

// NewUnitConfig returns unit parameters with defaults for the given layout and version.
func NewUnitConfig(layout Layout, version string) (UnitConfig, error) {
	plugin, err := PluginFor(version)
	if err != nil {
		return UnitConfig{}, err
	}

	return UnitConfig{
		Layout:    layout,
		Plugin:    plugin,
		WebGroup:  DefaultWebGroup,
		Processes: DefaultProcesses,
	}, nil
}

// NewVirtualHost returns virtual host parameters with defaults for the given layout.
// The server name is the tenant name.
func NewVirtualHost(layout Layout) VirtualHost {
	return VirtualHost{
		Layout:      layout,
		ServerName:  layout.Tenant,
		Port:        DefaultPort,
		MaxBodySize: DefaultMaxBodySize,
	}
}

// RenderUnitConfig renders the uWSGI configuration.
func RenderUnitConfig(params UnitConfig) (string, error) {
	return execute(unitConfigTmpl, params)
}

// RenderVirtualHost renders the nginx configuration.
func RenderVirtualHost(params VirtualHost) (string, error) {
	return execute(virtualHostTmpl, params)
}

// RenderManifest renders the credentials manifest.
func RenderManifest(params Manifest) (string, error) {
	return execute(manifestTmpl, params)
}

func execute(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer

	err := tmpl.Execute(&buf, data)
	if err != nil {
		return "", fmt.Errorf("render %s (%s): %w", tmpl.Name(), TemplateVersion, err)
	}

	return buf.String(), nil
}
