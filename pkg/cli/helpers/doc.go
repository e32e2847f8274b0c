// Package helpers provides common CLI utilities for command handling.
//
// Key functionality:
//   - Loading the host configuration with flag overrides applied
//   - Building the SSH target and dialing the operator session
//   - Reading passwords without echo and the operator's public key
package helpers
