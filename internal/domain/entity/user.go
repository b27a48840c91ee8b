// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is the core entity in the system, representing a single account.
// Exactly one User exists per email address at any committed point in time;
// the persistence layer enforces this with a unique index.
type User struct {
	ID           uuid.UUID // Assigned by the store on creation, immutable, never reused after deletion.
	Name         string    // Display name, 1-100 characters.
	Email        string    // Login identifier, stored in normalized (lowercase) form.
	PasswordHash string    // bcrypt hash of the current password. Never empty once the User is persisted.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this account.
}

// NormalizeEmail applies the email normalization policy: trim surrounding
// whitespace and lowercase-fold. Uniqueness checks and lookups must always
// operate on the normalized form, so every path funnels through here.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
