// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying hashing algorithm (e.g., bcrypt), keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password. The salt is
	// random per call; the output length is fixed for a given work factor.
	// An error here means the underlying entropy or resources are exhausted
	// and must be treated as fatal, never retried silently.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a hash to see if they match.
	// A malformed or empty hash yields false, never an error, so callers
	// cannot leak account existence through differing error behavior.
	Check(password, hash string) bool

	// DummyHash returns a fixed, well-formed hash of a throwaway value.
	// Callers verify against it when no real credential exists, keeping
	// response timing uniform between "unknown user" and "wrong password".
	DummyHash() string
}
