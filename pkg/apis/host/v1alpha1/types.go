// Package v1alpha1 defines the hostkit.yaml configuration.
package v1alpha1

import "time"

const (
	// Group is the API group of hostkit configuration.
	Group = "hostkit.devantler.tech"
	// Version is the API version of this package.
	Version = "v1alpha1"
	// Kind is the kind of the configuration document.
	Kind = "Host"
	// APIVersion is the full API version.
	APIVersion = Group + "/" + Version
)

// Host describes one target host and how tenants are provisioned on it.
type Host struct {
	APIVersion string `mapstructure:"apiVersion" yaml:"apiVersion"`
	Kind       string `mapstructure:"kind"       yaml:"kind"`
	Spec       Spec   `mapstructure:"spec"       yaml:"spec"`
}

// Spec is the desired provisioning setup.
type Spec struct {
	Connection Connection   `mapstructure:"connection" yaml:"connection"`
	Tenant     TenantSpec   `mapstructure:"tenant"     yaml:"tenant"`
	Sandbox    SandboxSpec  `mapstructure:"sandbox"    yaml:"sandbox"`
	Web        WebSpec      `mapstructure:"web"        yaml:"web"`
	Database   DatabaseSpec `mapstructure:"database"   yaml:"database"`
	Server     ServerSpec   `mapstructure:"server"     yaml:"server"`
}

// Connection is how the operator reaches the host.
type Connection struct {
	Host                  string        `mapstructure:"host"                  yaml:"host"`
	Port                  int           `mapstructure:"port"                  yaml:"port"`
	User                  string        `mapstructure:"user"                  yaml:"user"`
	IdentityFile          string        `mapstructure:"identityFile"          yaml:"identityFile"`
	PublicKeyFile         string        `mapstructure:"publicKeyFile"         yaml:"publicKeyFile"`
	KnownHostsFile        string        `mapstructure:"knownHostsFile"        yaml:"knownHostsFile"`
	InsecureIgnoreHostKey bool          `mapstructure:"insecureIgnoreHostKey" yaml:"insecureIgnoreHostKey"`
	UseAgent              bool          `mapstructure:"useAgent"              yaml:"useAgent"`
	Timeout               time.Duration `mapstructure:"timeout"               yaml:"timeout"`
}

// TenantSpec configures tenant accounts.
type TenantSpec struct {
	Group          string        `mapstructure:"group"          yaml:"group"`
	AdminGroup     string        `mapstructure:"adminGroup"     yaml:"adminGroup"`
	Shell          string        `mapstructure:"shell"          yaml:"shell"`
	PasswordLength int           `mapstructure:"passwordLength" yaml:"passwordLength"`
	PythonVersion  PythonVersion `mapstructure:"pythonVersion"  yaml:"pythonVersion"`
}

// SandboxSpec configures tenant virtual environments.
type SandboxSpec struct {
	Name          string `mapstructure:"name"          yaml:"name"`
	BootstrapURL2 string `mapstructure:"bootstrapURL2" yaml:"bootstrapURL2"`
	BootstrapURL3 string `mapstructure:"bootstrapURL3" yaml:"bootstrapURL3"`
}

// WebSpec configures the uWSGI vassal and nginx virtual host.
type WebSpec struct {
	WebGroup       string `mapstructure:"webGroup"       yaml:"webGroup"`
	LogGroup       string `mapstructure:"logGroup"       yaml:"logGroup"`
	Processes      int    `mapstructure:"processes"      yaml:"processes"`
	Port           int    `mapstructure:"port"           yaml:"port"`
	MaxBodySize    string `mapstructure:"maxBodySize"    yaml:"maxBodySize"`
	VassalDir      string `mapstructure:"vassalDir"      yaml:"vassalDir"`
	SitesAvailable string `mapstructure:"sitesAvailable" yaml:"sitesAvailable"`
	SitesEnabled   string `mapstructure:"sitesEnabled"   yaml:"sitesEnabled"`
}

// DatabaseSpec configures PostgreSQL roles and databases.
type DatabaseSpec struct {
	PasswordLength int    `mapstructure:"passwordLength" yaml:"passwordLength"`
	NameLength     int    `mapstructure:"nameLength"     yaml:"nameLength"`
	NameSuffix     string `mapstructure:"nameSuffix"     yaml:"nameSuffix"`
	MaxAttempts    int    `mapstructure:"maxAttempts"    yaml:"maxAttempts"`
}

// ServerSpec configures one-time host preparation.
type ServerSpec struct {
	Locale   string   `mapstructure:"locale"   yaml:"locale"`
	Packages []string `mapstructure:"packages" yaml:"packages"`
	Services []string `mapstructure:"services" yaml:"services"`
}
