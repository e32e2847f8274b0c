package ssh

import (
	"context"

	"github.com/devantler-tech/hostkit/pkg/svc/remote"
	"github.com/sirupsen/logrus"
)

// Dialer opens remote sessions against one configured host.
// Credentials passed to Dial override the configured user and password,
// which is how the provisioner switches to a freshly created tenant.
type Dialer struct {
	config Config
	logger logrus.FieldLogger
}

var _ remote.Dialer = (*Dialer)(nil)

// NewDialer returns a Dialer for the host described by cfg.
func NewDialer(cfg Config, logger logrus.FieldLogger) *Dialer {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Dialer{config: cfg, logger: logger}
}

// Config returns the connection settings the dialer was built with.
func (d *Dialer) Config() Config {
	return d.config
}

// Dial implements remote.Dialer.
func (d *Dialer) Dial(ctx context.Context, creds remote.Credentials) (*remote.Session, error) {
	cfg := d.config

	if creds.User != "" && creds.User != cfg.User {
		cfg.User = creds.User
		cfg.Password = ""
	}

	if creds.Password != "" {
		cfg.Password = creds.Password
	}

	client, err := Dial(ctx, cfg, d.logger)
	if err != nil {
		return nil, err
	}

	return client.Session(), nil
}
