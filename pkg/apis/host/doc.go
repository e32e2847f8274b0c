// Package host groups the versions of the Host configuration kind.
package host
