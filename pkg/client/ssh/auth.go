package ssh

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
	"golang.org/x/crypto/ssh/knownhosts"
)

// authMethods returns the configured authentication methods in preference order:
// password, identity file, then the running ssh-agent. The closer releases the agent
// connection and is nil when no agent is in use.
func authMethods(cfg Config, logger logrus.FieldLogger) ([]ssh.AuthMethod, io.Closer, error) {
	var methods []ssh.AuthMethod

	if cfg.Password != "" {
		methods = append(methods, ssh.Password(cfg.Password))
	}

	if cfg.IdentityFile != "" {
		signer, err := loadSigner(cfg.IdentityFile)

		switch {
		case err == nil:
			methods = append(methods, ssh.PublicKeys(signer))
		case errors.Is(err, os.ErrNotExist):
			logger.WithField("identity_file", cfg.IdentityFile).Debug("identity file not found, skipping")
		default:
			var passphraseErr *ssh.PassphraseMissingError
			if !errors.As(err, &passphraseErr) {
				return nil, nil, err
			}

			logger.WithField("identity_file", cfg.IdentityFile).
				Debug("identity file is passphrase protected, relying on agent")
		}
	}

	var agentConn io.Closer

	if cfg.UseAgent {
		if socket := cfg.agentSocket(); socket != "" {
			conn, err := net.Dial("unix", socket)
			if err != nil {
				logger.WithError(err).Debug("ssh-agent unreachable, skipping")
			} else {
				agentConn = conn
				methods = append(methods, ssh.PublicKeysCallback(agent.NewClient(conn).Signers))
			}
		}
	}

	if len(methods) == 0 {
		return nil, nil, ErrNoAuthMethods
	}

	return methods, agentConn, nil
}

func loadSigner(path string) (ssh.Signer, error) {
	pem, err := os.ReadFile(path) //nolint:gosec // path comes from operator config
	if err != nil {
		return nil, fmt.Errorf("read identity file: %w", err)
	}

	signer, err := ssh.ParsePrivateKey(pem)
	if err != nil {
		return nil, fmt.Errorf("parse identity file %s: %w", path, err)
	}

	return signer, nil
}

func hostKeyCallback(cfg Config) (ssh.HostKeyCallback, error) {
	if cfg.InsecureIgnoreHostKey {
		return ssh.InsecureIgnoreHostKey(), nil //nolint:gosec // explicit operator opt-in
	}

	callback, err := knownhosts.New(cfg.KnownHostsFile)
	if err != nil {
		return nil, fmt.Errorf("load known hosts %s: %w", cfg.KnownHostsFile, err)
	}

	return callback, nil
}
