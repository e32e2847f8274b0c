// Package secret generates random credentials for tenants and database roles.
package secret

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"github.com/devantler-tech/hostkit/pkg/apis/host/v1alpha1"
	"github.com/devantler-tech/hostkit/pkg/svc/provisioner/provisionerr"
	"github.com/mr-tron/base58"
)

// Alphabet is the set of characters a generated secret is drawn from.
// It is the base58 alphabet, which leaves out 0, O, I and l.
const Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// DefaultLength is the length of generated tenant and role passwords.
const DefaultLength = v1alpha1.DefaultPasswordLength

// ErrEntropySourceUnavailable is returned when the random source cannot be read.
var ErrEntropySourceUnavailable = errors.New("entropy source unavailable")

// Generator produces secrets from a random byte source.
type Generator struct {
	// Reader is the random byte source. Defaults to crypto/rand.Reader when nil.
	Reader io.Reader
}

// NewGenerator returns a Generator backed by crypto/rand.
func NewGenerator() *Generator {
	return &Generator{Reader: rand.Reader}
}

// Generate returns a secret of exactly length characters drawn from Alphabet.
//
// Base58-encoding n random bytes yields at least n characters, so the encoding
// is truncated to length.
func (g *Generator) Generate(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("%w: secret length must be positive, got %d", provisionerr.ErrInvalidArgument, length)
	}

	reader := g.Reader
	if reader == nil {
		reader = rand.Reader
	}

	buf := make([]byte, length)

	_, err := io.ReadFull(reader, buf)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEntropySourceUnavailable, err)
	}

	return base58.Encode(buf)[:length], nil
}

// Generate returns a secret of exactly length characters using crypto/rand.
func Generate(length int) (string, error) {
	return NewGenerator().Generate(length)
}
