package v1alpha1

import (
	"fmt"
	"slices"
	"strings"
)

// PythonVersion is the interpreter major version of a tenant sandbox.
type PythonVersion string

// Supported interpreter versions.
const (
	PythonVersion2 PythonVersion = "2"
	PythonVersion3 PythonVersion = "3"
)

// ValidPythonVersions returns the supported interpreter versions.
func ValidPythonVersions() []PythonVersion {
	return []PythonVersion{PythonVersion2, PythonVersion3}
}

// Set implements pflag.Value. "python3" and "3" are both accepted.
func (p *PythonVersion) Set(value string) error {
	candidate := PythonVersion(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(value)), "python"))
	if !candidate.IsValid() {
		return fmt.Errorf("%w: %s (valid options: %s, %s)", ErrInvalidPythonVersion, value, PythonVersion2, PythonVersion3)
	}

	*p = candidate

	return nil
}

// IsValid reports whether p is supported.
func (p PythonVersion) IsValid() bool {
	return slices.Contains(ValidPythonVersions(), p)
}

// String implements pflag.Value.
func (p *PythonVersion) String() string {
	return string(*p)
}

// Type implements pflag.Value.
func (p *PythonVersion) Type() string {
	return "PythonVersion"
}
