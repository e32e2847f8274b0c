package ssh

import (
	"errors"
	"net"
	"os"
	"strconv"
	"time"
)

// DefaultPort is the SSH port used when Config.Port is zero.
const DefaultPort = 22

// DefaultTimeout bounds the TCP dial and SSH handshake.
const DefaultTimeout = 30 * time.Second

// ErrNoAuthMethods is returned when neither a password, an identity file nor an agent is usable.
var ErrNoAuthMethods = errors.New("no usable ssh authentication method")

// Config describes how to reach and authenticate against the target host.
type Config struct {
	Host                  string
	Port                  int
	User                  string
	Password              string
	IdentityFile          string
	KnownHostsFile        string
	InsecureIgnoreHostKey bool
	UseAgent              bool
	// AgentSocket is the ssh-agent socket. Defaults to $SSH_AUTH_SOCK.
	AgentSocket           string
	Timeout               time.Duration
}

// Address returns host:port for the target.
func (c Config) Address() string {
	port := c.Port
	if port == 0 {
		port = DefaultPort
	}

	return net.JoinHostPort(c.Host, strconv.Itoa(port))
}

func (c Config) agentSocket() string {
	if c.AgentSocket != "" {
		return c.AgentSocket
	}

	return os.Getenv("SSH_AUTH_SOCK")
}

func (c Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout
	}

	return c.Timeout
}
