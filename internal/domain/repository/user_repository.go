// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"userhub/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserPatch describes a partial update of a user record. Nil fields are left
// untouched. Email must already be normalized by the caller.
type UserPatch struct {
	Name         *string
	Email        *string
	PasswordHash *string
}

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
//
// Implementations must enforce email uniqueness at the storage layer (a
// unique index or equivalent) and translate the resulting constraint
// violation to domainerrors.ErrEmailTaken, so that two concurrent creates
// racing past the service-level pre-check cannot both commit.
type UserRepository interface {
	// FindAll retrieves an unordered snapshot of all users.
	FindAll(ctx context.Context) ([]*entity.User, error)

	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their normalized email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create persists a new user entity and assigns its ID.
	Create(ctx context.Context, user *entity.User) error

	// UpdateFields applies a partial update to the user with the given ID.
	// Returns ErrUserNotFound when no such user exists.
	UpdateFields(ctx context.Context, id uuid.UUID, patch UserPatch) error

	// Delete permanently removes the user with the given ID.
	// Returns ErrUserNotFound when no such user exists. IDs are never reused.
	Delete(ctx context.Context, id uuid.UUID) error
}
