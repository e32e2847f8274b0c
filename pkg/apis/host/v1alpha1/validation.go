package v1alpha1

import (
	"errors"
	"fmt"
	"strings"
)

const maxPort = 65535

// Validate checks the fields every command depends on and joins all problems found.
func (h *Host) Validate() error {
	var errs []error

	conn := h.Spec.Connection

	if strings.TrimSpace(conn.Host) == "" {
		errs = append(errs, fmt.Errorf("%w: set spec.connection.host or pass --host", ErrHostRequired))
	}

	if strings.TrimSpace(conn.User) == "" {
		errs = append(errs, ErrUserRequired)
	}

	if conn.Port < 1 || conn.Port > maxPort {
		errs = append(errs, fmt.Errorf("%w: %d", ErrInvalidPort, conn.Port))
	}

	if h.Spec.Web.Port < 1 || h.Spec.Web.Port > maxPort {
		errs = append(errs, fmt.Errorf("%w: web port %d", ErrInvalidPort, h.Spec.Web.Port))
	}

	if !h.Spec.Tenant.PythonVersion.IsValid() {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidPythonVersion, h.Spec.Tenant.PythonVersion))
	}

	for name, length := range map[string]int{
		"tenant password":   h.Spec.Tenant.PasswordLength,
		"database password": h.Spec.Database.PasswordLength,
		"database name":     h.Spec.Database.NameLength,
	} {
		if length <= 0 {
			errs = append(errs, fmt.Errorf("%w: %s length %d", ErrInvalidLength, name, length))
		}
	}

	sandbox := h.Spec.Sandbox.Name
	if sandbox == "" || strings.Contains(sandbox, "/") {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidSandboxName, sandbox))
	}

	return errors.Join(errs...)
}
