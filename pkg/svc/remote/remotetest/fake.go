// Package remotetest provides testify mocks of remote.Executor and remote.Dialer.
package remotetest

import (
	"context"
	"strings"

	"github.com/devantler-tech/hostkit/pkg/svc/remote"
	"github.com/stretchr/testify/mock"
)

const (
	execMethod = "Exec"
	dialMethod = "Dial"
)

// Call is one command received by a Fake.
type Call struct {
	Command string
	Admin   bool
}

// Fake is a mock of both handles of a session. Every command is recorded with the
// privilege it was issued at. Commands without a matching response succeed with empty output.
type Fake struct {
	mock.Mock
}

// New returns a Fake that answers every command with empty output.
func New() *Fake {
	fake := &Fake{}
	fake.On(execMethod, mock.Anything, mock.Anything, mock.Anything).Return("", nil)

	return fake
}

// Exec mocks running command at standard or administrative privilege.
func (f *Fake) Exec(ctx context.Context, command string, admin bool) (string, error) {
	err := ctx.Err()
	if err != nil {
		return "", err //nolint:wrapcheck // Mock function, wrapping not needed
	}

	args := f.MethodCalled(execMethod, ctx, command, admin)

	return args.String(0), args.Error(1) //nolint:wrapcheck // Mock function, wrapping not needed
}

// Respond answers commands containing match with outputs in order, repeating the last one.
// Later responses take precedence over earlier ones. Not safe to call while commands run.
func (f *Fake) Respond(match string, outputs ...string) *Fake {
	if len(outputs) == 0 {
		outputs = []string{""}
	}

	existing := len(f.ExpectedCalls)

	for i, output := range outputs {
		call := f.On(execMethod, mock.Anything, containing(match), mock.Anything).Return(output, nil)
		if i < len(outputs)-1 {
			call.Once()
		}
	}

	f.preferLatest(existing)

	return f
}

// Fail makes commands containing match return err.
func (f *Fake) Fail(match string, err error) *Fake {
	existing := len(f.ExpectedCalls)

	f.On(execMethod, mock.Anything, containing(match), mock.Anything).Return("", err)
	f.preferLatest(existing)

	return f
}

// Standard returns the handle that records calls as standard privilege.
func (f *Fake) Standard() remote.Executor {
	return remote.ExecutorFunc(func(ctx context.Context, command string) (string, error) {
		return f.Exec(ctx, command, false)
	})
}

// Admin returns the handle that records calls as administrative privilege.
func (f *Fake) Admin() remote.Executor {
	return remote.ExecutorFunc(func(ctx context.Context, command string) (string, error) {
		return f.Exec(ctx, command, true)
	})
}

// Session returns a session for user whose handles both record into f.
func (f *Fake) Session(user string) *remote.Session {
	return remote.NewSession("fake-host", user, f.Standard(), f.Admin(), nil)
}

// Received returns the recorded commands in the order they were issued.
func (f *Fake) Received() []Call {
	var calls []Call

	for _, call := range f.Calls {
		if call.Method != execMethod {
			continue
		}

		calls = append(calls, Call{Command: call.Arguments.String(1), Admin: call.Arguments.Bool(2)})
	}

	return calls
}

// Commands returns the recorded command strings.
func (f *Fake) Commands() []string {
	calls := f.Received()
	commands := make([]string, 0, len(calls))

	for _, call := range calls {
		commands = append(commands, call.Command)
	}

	return commands
}

// Matching returns the recorded calls whose command contains substr.
func (f *Fake) Matching(substr string) []Call {
	var matched []Call

	for _, call := range f.Received() {
		if strings.Contains(call.Command, substr) {
			matched = append(matched, call)
		}
	}

	return matched
}

// Reset forgets recorded calls but keeps responses.
func (f *Fake) Reset() {
	f.Calls = nil
}

// preferLatest moves the expectations registered after the first existing ones to the front,
// since testify matches expectations in registration order.
func (f *Fake) preferLatest(existing int) {
	f.ExpectedCalls = reorder(f.ExpectedCalls, existing)
}

// Dialer is a mock of remote.Dialer. Successful dials return a session backed by the
// Fake registered for the dialed user.
type Dialer struct {
	mock.Mock

	hosts map[string]*Fake
}

// NewDialer returns a Dialer on which every dial succeeds.
func NewDialer() *Dialer {
	dialer := &Dialer{hosts: map[string]*Fake{}}
	dialer.On(dialMethod, mock.Anything, mock.Anything).Return(nil)

	return dialer
}

// For returns the fake that sessions for user record into, creating it on first use.
func (d *Dialer) For(user string) *Fake {
	fake, ok := d.hosts[user]
	if !ok {
		fake = New()
		d.hosts[user] = fake
	}

	return fake
}

// FailDial makes dials as user return err.
func (d *Dialer) FailDial(user string, err error) *Dialer {
	existing := len(d.ExpectedCalls)

	d.On(dialMethod, mock.Anything, mock.MatchedBy(func(creds remote.Credentials) bool {
		return creds.User == user
	})).Return(err)

	d.ExpectedCalls = reorder(d.ExpectedCalls, existing)

	return d
}

// Dial implements remote.Dialer.
func (d *Dialer) Dial(ctx context.Context, creds remote.Credentials) (*remote.Session, error) {
	args := d.MethodCalled(dialMethod, ctx, creds)

	err := args.Error(0)
	if err != nil {
		return nil, err //nolint:wrapcheck // Mock function, wrapping not needed
	}

	return d.For(creds.User).Session(creds.User), nil
}

// Dialed returns the credentials of every dial attempt in order.
func (d *Dialer) Dialed() []remote.Credentials {
	var dialed []remote.Credentials

	for _, call := range d.Calls {
		if call.Method != dialMethod {
			continue
		}

		creds, _ := call.Arguments.Get(1).(remote.Credentials)
		dialed = append(dialed, creds)
	}

	return dialed
}

func containing(match string) any {
	return mock.MatchedBy(func(command string) bool {
		return strings.Contains(command, match)
	})
}

func reorder(calls []*mock.Call, existing int) []*mock.Call {
	reordered := make([]*mock.Call, 0, len(calls))
	reordered = append(reordered, calls[existing:]...)

	return append(reordered, calls[:existing]...)
}
