// Package client provides clients for the systems hostkit talks to.
//
//   - ssh: SSH connections to the target host, used as administrator or as a tenant
package client
