// Package svc provides the service layer of hostkit.
//
// This package contains the logic that sits between the CLI commands and the
// remote host.
//
// Subpackages:
//   - remote: command execution over an SSH session with existence checks
//   - provisioner: host preparation and tenant provisioning
//   - secret: random password generation
//   - checker: post-provisioning verification of a tenant database
package svc
