package ssh

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"time"

	"al.essio.dev/pkg/shellescape"
	"github.com/devantler-tech/hostkit/pkg/svc/remote"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/ssh"
)

// Client is an authenticated SSH connection to the target host.
type Client struct {
	conn     *ssh.Client
	host     string
	user     string
	password string
	agent    io.Closer
	logger   logrus.FieldLogger
}

// Dial connects and authenticates using cfg. The context bounds the dial only.
func Dial(ctx context.Context, cfg Config, logger logrus.FieldLogger) (*Client, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	auth, agentConn, err := authMethods(cfg, logger)
	if err != nil {
		return nil, err
	}

	client, err := connect(ctx, cfg, auth, logger)
	if err != nil {
		closeAgent(agentConn)

		return nil, err
	}

	client.agent = agentConn

	return client, nil
}

func connect(ctx context.Context, cfg Config, auth []ssh.AuthMethod, logger logrus.FieldLogger) (*Client, error) {
	hostKeys, err := hostKeyCallback(cfg)
	if err != nil {
		return nil, err
	}

	clientCfg := &ssh.ClientConfig{
		User:            cfg.User,
		Auth:            auth,
		HostKeyCallback: hostKeys,
		Timeout:         cfg.timeout(),
	}

	address := cfg.Address()
	dialer := net.Dialer{Timeout: cfg.timeout()}

	netConn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", address, err)
	}

	sshConn, chans, reqs, err := ssh.NewClientConn(netConn, address, clientCfg)
	if err != nil {
		_ = netConn.Close()

		return nil, fmt.Errorf("ssh handshake with %s as %s: %w", address, cfg.User, err)
	}

	logger.WithFields(logrus.Fields{"host": address, "user": cfg.User}).Debug("ssh connection established")

	return &Client{
		conn:     ssh.NewClient(sshConn, chans, reqs),
		host:     cfg.Host,
		user:     cfg.User,
		password: cfg.Password,
		logger:   logger,
	}, nil
}

// Run executes command as the connected user.
func (c *Client) Run(ctx context.Context, command string) (string, error) {
	return c.exec(ctx, command, "", false)
}

// RunPrivileged executes command with administrative privilege.
func (c *Client) RunPrivileged(ctx context.Context, command string) (string, error) {
	wrapped, stdin := privilegedCommand(c.user, c.password, command)

	return c.exec(ctx, wrapped, stdin, true)
}

// Session exposes the client as a remote.Session with both capability handles.
func (c *Client) Session() *remote.Session {
	return remote.NewSession(
		c.host,
		c.user,
		remote.ExecutorFunc(c.Run),
		remote.ExecutorFunc(c.RunPrivileged),
		c,
	)
}

// Close terminates the connection and releases the ssh-agent connection, if any.
func (c *Client) Close() error {
	closeAgent(c.agent)
	c.agent = nil

	err := c.conn.Close()
	if err != nil && !errors.Is(err, net.ErrClosed) {
		return fmt.Errorf("close ssh connection: %w", err)
	}

	return nil
}

func (c *Client) exec(ctx context.Context, command, stdin string, privileged bool) (string, error) {
	program := remote.Program(command)
	if privileged {
		program = remote.Program(strings.TrimPrefix(command, sudoPrefix))
	}

	entry := c.logger.WithFields(logrus.Fields{
		"host":       c.host,
		"user":       c.user,
		"program":    program,
		"privileged": privileged,
	})

	session, err := c.conn.NewSession()
	if err != nil {
		return "", &remote.CommandError{Program: program, ExitStatus: -1, Err: err}
	}
	defer func() { _ = session.Close() }()

	var stdout, stderr bytes.Buffer

	session.Stdout = &stdout
	session.Stderr = &stderr

	if stdin != "" {
		session.Stdin = strings.NewReader(stdin)
	}

	started := time.Now()
	done := make(chan error, 1)

	go func() { done <- session.Run(command) }()

	select {
	case <-ctx.Done():
		_ = session.Signal(ssh.SIGKILL)
		entry.Warn("remote command interrupted")

		return "", fmt.Errorf("%s interrupted: %w", program, ctx.Err())
	case err = <-done:
	}

	entry = entry.WithField("duration", time.Since(started).Round(time.Millisecond))

	if err != nil {
		cmdErr := &remote.CommandError{Program: program, ExitStatus: -1, Stderr: stderr.String(), Err: err}

		var exitErr *ssh.ExitError
		if errors.As(err, &exitErr) {
			cmdErr.ExitStatus = exitErr.ExitStatus()
			cmdErr.Err = nil
		}

		entry.WithField("exit_status", cmdErr.ExitStatus).Debug("remote command failed")

		return stdout.String(), cmdErr
	}

	entry.Debug("remote command finished")

	return stdout.String(), nil
}

const sudoPrefix = "sudo -S -p '' sh -c "

// privilegedCommand wraps command for administrative execution and returns the
// stdin to feed it. Root runs commands as is.
func privilegedCommand(user, password, command string) (string, string) {
	if user == "root" {
		return command, ""
	}

	stdin := ""
	if password != "" {
		stdin = password + "\n"
	}

	return sudoPrefix + shellescape.Quote(command), stdin
}

func closeAgent(conn io.Closer) {
	if conn != nil {
		_ = conn.Close()
	}
}
