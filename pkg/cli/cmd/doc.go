// Package cmd provides the command-line interface for hostkit.
//
// This package contains the root command, init and connect, and delegates to subcommand packages:
//   - server: one-time host preparation and service reloads
//   - tenant: complete tenant provisioning, bare accounts and key distribution
//   - db: PostgreSQL roles and databases
//   - venv: Python virtual environments and package installation
package cmd
