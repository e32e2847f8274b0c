package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"al.essio.dev/pkg/shellescape"
)

// Executor runs a shell command on the target host and returns its standard output.
// A non-zero exit status is reported as a *CommandError.
type Executor interface {
	Run(ctx context.Context, command string) (string, error)
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(ctx context.Context, command string) (string, error)

// Run calls f(ctx, command).
func (f ExecutorFunc) Run(ctx context.Context, command string) (string, error) {
	return f(ctx, command)
}

// Credentials identify the account a session is opened as.
// An empty Password means key or agent authentication only.
type Credentials struct {
	User     string
	Password string
}

// Dialer opens sessions against the configured target host.
type Dialer interface {
	Dial(ctx context.Context, creds Credentials) (*Session, error)
}

// Session is an open connection to the target host under one identity.
type Session struct {
	// Host is the address the session is connected to.
	Host string
	// User is the account the session runs as.
	User string
	// Standard runs commands as User.
	Standard Executor
	// Admin runs commands with administrative privilege.
	Admin Executor

	closer io.Closer
}

// NewSession assembles a Session. closer may be nil.
func NewSession(host, user string, standard, admin Executor, closer io.Closer) *Session {
	return &Session{
		Host:     host,
		User:     user,
		Standard: standard,
		Admin:    admin,
		closer:   closer,
	}
}

// Home returns the home directory of the session user.
func (s *Session) Home() string {
	return HomeDir(s.User)
}

// Close releases the underlying connection.
func (s *Session) Close() error {
	if s == nil || s.closer == nil {
		return nil
	}

	err := s.closer.Close()
	if err != nil {
		return fmt.Errorf("close session for %s@%s: %w", s.User, s.Host, err)
	}

	return nil
}

// HomeDir returns the home directory for an account created by hostkit.
func HomeDir(user string) string {
	if user == "root" {
		return "/root"
	}

	return "/home/" + user
}

// WriteFile overwrites path with content. The content is written verbatim.
func WriteFile(ctx context.Context, exec Executor, path, content string) error {
	command := fmt.Sprintf("printf '%%s' %s > %s", shellescape.Quote(content), shellescape.Quote(path))

	_, err := exec.Run(ctx, command)
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}

// AppendLine appends line to path unless the file already contains it as a whole line.
// The file is created when missing.
func AppendLine(ctx context.Context, exec Executor, path, line string) error {
	quotedLine := shellescape.Quote(line)
	quotedPath := shellescape.Quote(path)
	command := fmt.Sprintf(
		"touch %[2]s && (grep -qxF -- %[1]s %[2]s || printf '%%s\\n' %[1]s >> %[2]s)",
		quotedLine, quotedPath,
	)

	_, err := exec.Run(ctx, command)
	if err != nil {
		return fmt.Errorf("append to %s: %w", path, err)
	}

	return nil
}

// Program returns the first word of a shell command, used to describe
// a command without exposing its arguments.
func Program(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}

	return fields[0]
}

// ErrRemoteCommand matches every *CommandError via errors.Is.
var ErrRemoteCommand = errors.New("remote command failed")

// CommandError reports a remote command that exited with a non-zero status.
// Only the program name is kept so that credentials in arguments never reach logs.
type CommandError struct {
	Program    string
	ExitStatus int
	Stderr     string
	Err        error
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%s: %s exited with status %d", ErrRemoteCommand, e.Program, e.ExitStatus)

	stderr := strings.TrimSpace(e.Stderr)
	if stderr != "" {
		msg += ": " + stderr
	}

	return msg
}

// Unwrap exposes the transport error, if any.
func (e *CommandError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrRemoteCommand.
func (e *CommandError) Is(target error) bool {
	return target == ErrRemoteCommand
}
