package database

import (
	"context"
	"fmt"

	"github.com/devantler-tech/hostkit/pkg/svc/provisioner/provisionerr"
)

// ExistsFunc reports whether a candidate name is already taken.
type ExistsFunc func(ctx context.Context, candidate string) (bool, error)

// AllocateName draws candidates from generate until exists reports one as free.
// It gives up with provisionerr.ErrNameSpaceExhausted after maxAttempts candidates.
// A non-positive maxAttempts uses DefaultMaxAttempts.
func AllocateName(
	ctx context.Context,
	generate func() (string, error),
	exists ExistsFunc,
	maxAttempts int,
) (string, error) {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	for range maxAttempts {
		candidate, err := generate()
		if err != nil {
			return "", fmt.Errorf("generate name: %w", err)
		}

		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}

		if !taken {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w after %d attempts", provisionerr.ErrNameSpaceExhausted, maxAttempts)
}
