// Package remote defines the contract for running shell commands on the target host.
//
// A [Session] carries the identity it was opened with and two capability-scoped
// executor handles: Standard runs at the session user's privilege and Admin runs
// with administrative privilege. Provisioners receive the handle they need
// explicitly rather than escalating on their own.
//
// The SSH implementation lives in pkg/client/ssh; tests use pkg/svc/remote/remotetest.
package remote
