package v1alpha1

import "github.com/devantler-tech/hostkit/pkg/utils/envvar"

// ExpandEnvVars expands ${VAR} and ${VAR:-default} placeholders in the connection settings.
func (h *Host) ExpandEnvVars() {
	conn := &h.Spec.Connection

	conn.Host = envvar.Expand(conn.Host)
	conn.User = envvar.Expand(conn.User)
	conn.IdentityFile = envvar.Expand(conn.IdentityFile)
	conn.PublicKeyFile = envvar.Expand(conn.PublicKeyFile)
	conn.KnownHostsFile = envvar.Expand(conn.KnownHostsFile)
}
