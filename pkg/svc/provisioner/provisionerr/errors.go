package provisionerr

import "errors"

// Sentinel errors for provisioning failures.
var (
	// ErrAlreadyExists is returned when a tenant or database role name is already taken.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidArgument is returned for input rejected before any remote command is issued.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNameSpaceExhausted is returned when the unique-name allocator runs out of attempts.
	ErrNameSpaceExhausted = errors.New("no unused name found")
)
