// Package configmanager loads hostkit.yaml into a v1alpha1.Host.
//
// Values are resolved in this order, highest first: changed command-line flags,
// HOSTKIT_* environment variables, the config file, then the built-in defaults.
// Nested keys map to environment variables by replacing dots with underscores,
// so spec.connection.host is HOSTKIT_SPEC_CONNECTION_HOST.
package configmanager
