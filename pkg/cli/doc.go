// Package cli provides reusable helpers for command wiring and execution.
//
//   - cli/cmd: the hostkit command tree
//   - cli/flags: persistent flag registration and lookups
//   - cli/helpers: configuration loading, target resolution and password prompts
//   - cli/ui: confirmation prompts and error handling
package cli
