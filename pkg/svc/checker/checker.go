// Package checker provides the side-effect-free existence predicates that make
// tenant, database role and sandbox creation idempotent.
//
// Every check exits 0 and prints a marker, so a non-zero exit always means the
// check itself could not run.
package checker

import (
	"context"
	"fmt"
	"strings"

	"al.essio.dev/pkg/shellescape"
	"github.com/devantler-tech/hostkit/pkg/svc/remote"
)

const (
	presentMarker = "present"
	absentMarker  = "absent"
)

// TenantExists reports whether an OS account named name exists.
func TenantExists(ctx context.Context, exec remote.Executor, name string) (bool, error) {
	return check(ctx, exec, "tenant "+name, "getent passwd "+shellescape.Quote(name)+" >/dev/null")
}

// SandboxExists reports whether the session user has a sandbox at home/name.
func SandboxExists(ctx context.Context, exec remote.Executor, home, name string) (bool, error) {
	activate := home + "/" + name + "/bin/activate"

	return check(ctx, exec, "sandbox "+name, "test -f "+shellescape.Quote(activate))
}

// RoleExists reports whether a PostgreSQL role named name exists.
// admin must carry administrative privilege.
func RoleExists(ctx context.Context, admin remote.Executor, name string) (bool, error) {
	query := "SELECT 1 FROM pg_roles WHERE rolname = " + QuoteLiteral(name)

	return sqlCheck(ctx, admin, "role "+name, query)
}

// DatabaseExists reports whether a PostgreSQL database named name exists.
// admin must carry administrative privilege.
func DatabaseExists(ctx context.Context, admin remote.Executor, name string) (bool, error) {
	query := "SELECT 1 FROM pg_database WHERE datname = " + QuoteLiteral(name)

	return sqlCheck(ctx, admin, "database "+name, query)
}

// PSQL returns the shell command that runs sql through psql as the postgres superuser.
func PSQL(sql string) string {
	return "sudo -u postgres psql -v ON_ERROR_STOP=1 -tAc " + shellescape.Quote(sql)
}

// QuoteLiteral quotes s as a SQL string literal.
func QuoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func check(ctx context.Context, exec remote.Executor, subject, test string) (bool, error) {
	out, err := exec.Run(ctx, fmt.Sprintf("if %s; then echo %s; else echo %s; fi", test, presentMarker, absentMarker))
	if err != nil {
		return false, fmt.Errorf("check %s: %w", subject, err)
	}

	return parseMarker(subject, out)
}

func sqlCheck(ctx context.Context, admin remote.Executor, subject, query string) (bool, error) {
	out, err := admin.Run(ctx, PSQL(query))
	if err != nil {
		return false, fmt.Errorf("check %s: %w", subject, err)
	}

	return strings.TrimSpace(out) == "1", nil
}

func parseMarker(subject, out string) (bool, error) {
	switch strings.TrimSpace(out) {
	case presentMarker:
		return true, nil
	case absentMarker:
		return false, nil
	default:
		return false, fmt.Errorf("%w: check %s: unexpected output %q", ErrUnexpectedOutput, subject, out)
	}
}
