// Package ssh implements remote.Executor over golang.org/x/crypto/ssh.
//
// A [Client] holds one authenticated connection and opens a fresh SSH session for
// every command, so commands never share shell state. Administrative commands run
// directly when connected as root and through sudo otherwise, with the session
// password supplied on stdin.
//
// Usage:
//
//	dialer := ssh.NewDialer(ssh.Config{Host: "11.22.33.44", User: "root"}, logger)
//	session, err := dialer.Dial(ctx, remote.Credentials{User: "root"})
package ssh
