package v1alpha1

import "errors"

// ErrInvalidPythonVersion is returned for interpreter versions other than 2 and 3.
var ErrInvalidPythonVersion = errors.New("invalid python version")

// ErrHostRequired is returned when no target host is configured.
var ErrHostRequired = errors.New("target host is required")

// ErrUserRequired is returned when no login user is configured.
var ErrUserRequired = errors.New("login user is required")

// ErrInvalidPort is returned for ports outside 1-65535.
var ErrInvalidPort = errors.New("invalid port")

// ErrInvalidLength is returned for non-positive password or name lengths.
var ErrInvalidLength = errors.New("invalid length")

// ErrInvalidSandboxName is returned for sandbox names that are empty or contain a slash.
var ErrInvalidSandboxName = errors.New("invalid sandbox name")
