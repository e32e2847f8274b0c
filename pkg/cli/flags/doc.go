// Package flags provides flag handling utilities for CLI commands.
//
// This package holds the names of hostkit's persistent flags and helpers that read
// them from a command or any of its parents.
package flags
