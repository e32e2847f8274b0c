package v1alpha1

import "time"

// Connection defaults.
const (
	DefaultPort           = 22
	DefaultUser           = "root"
	DefaultIdentityFile   = "~/.ssh/id_rsa"
	DefaultPublicKeyFile  = "~/.ssh/id_rsa.pub"
	DefaultKnownHostsFile = "~/.ssh/known_hosts"
	DefaultTimeout        = 30 * time.Second
)

// Provisioning defaults.
const (
	DefaultWebGroup       = "www-data"
	DefaultAdminGroup     = "sudo"
	DefaultShell          = "/bin/bash"
	DefaultPasswordLength = 10
	DefaultSandboxName    = "venv"
	DefaultBootstrapURL2  = "https://bootstrap.pypa.io/pip/2.7/get-pip.py"
	DefaultBootstrapURL3  = "https://bootstrap.pypa.io/get-pip.py"
	DefaultLogGroup       = "root"
	DefaultProcesses      = 2
	DefaultHTTPPort       = 80
	DefaultMaxBodySize    = "75M"
	DefaultVassalDir      = "/etc/uwsgi-emperor/vassals"
	DefaultSitesAvailable = "/etc/nginx/sites-available"
	DefaultSitesEnabled   = "/etc/nginx/sites-enabled"
	DefaultDBNameLength   = 12
	DefaultDBNameSuffix   = "_DB"
	DefaultMaxAttempts    = 32
	DefaultLocale         = "en_US.UTF-8"
)

// DefaultPackages is the fixed package list installed by server setup.
func DefaultPackages() []string {
	return []string{
		"nginx", "uwsgi", "uwsgi-emperor", "uwsgi-plugin-python", "uwsgi-plugin-python3",
		"libpq-dev", "postgresql", "postgresql-contrib",
		"python-virtualenv", "python-dev", "python3-dev", "python3-venv", "curl",
	}
}

// DefaultServices are reloaded by server reload when no service is named.
func DefaultServices() []string {
	return []string{"nginx", "uwsgi-emperor"}
}
