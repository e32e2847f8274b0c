// Package io groups configuration input and generated output for hostkit.
//
// Subpackages:
//   - config-manager: loading the host configuration from files, environment and flags
//   - generator: rendering per-tenant site files such as the uWSGI ini and nginx server block
//
// For low-level file writes and home directory expansion, see the fsutil package.
package io
