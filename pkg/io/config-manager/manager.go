// Package configmanager defines how commands load typed configuration.
package configmanager

import "github.com/devantler-tech/hostkit/pkg/utils/timer"

// LoadOptions configures how configuration is loaded.
type LoadOptions struct {
	// Timer adds timing output to the completion message when set.
	Timer timer.Timer
	// Silent suppresses loading notifications.
	Silent bool
	// IgnoreConfigFile skips reading config files, leaving defaults, environment and flags.
	IgnoreConfigFile bool
	// SkipValidation skips validation, for commands that need only part of the config.
	SkipValidation bool
}

// ConfigManager loads configuration of type T.
type ConfigManager[T any] interface {
	// Load returns the configuration, reading it on the first call.
	Load(opts LoadOptions) (*T, error)
}
