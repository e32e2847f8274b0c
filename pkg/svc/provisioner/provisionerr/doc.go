// Package provisionerr provides the error kinds shared by the tenant provisioners.
//
// The sentinels are wrapped with fmt.Errorf("...: %w") by the provisioners so that
// command handlers can branch with errors.Is regardless of which step failed.
package provisionerr
