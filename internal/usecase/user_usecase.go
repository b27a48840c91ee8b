// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CreateUserInput defines the data required to create a new user.
// The shape is validated at the delivery boundary before it reaches here.
type CreateUserInput struct {
	Name            string
	Email           string
	Password        string
	PasswordConfirm string
}

// UpdateUserInput defines the data required to update a user's profile fields.
type UpdateUserInput struct {
	Name  string
	Email string
}

// ChangePasswordInput defines the data required to rotate a user's password.
type ChangePasswordInput struct {
	Password                string
	NewPassword             string
	NewPasswordConfirmation string
}

// --- Output DTOs ---

// UserOutput is the external projection of a user. It deliberately omits the
// password hash; nothing outside the usecase layer ever sees it.
type UserOutput struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// CreateUserOutput echoes back the created account's public fields.
// Neither the assigned ID nor the hash is part of the creation contract.
type CreateUserOutput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserUsecase defines the interface for user account lifecycle operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	ListUsers(ctx context.Context) ([]*UserOutput, error)
	GetUser(ctx context.Context, id uuid.UUID) (*UserOutput, error)
	CreateUser(ctx context.Context, input *CreateUserInput) (*CreateUserOutput, error)
	UpdateUser(ctx context.Context, id uuid.UUID, input *UpdateUserInput) error
	DeleteUser(ctx context.Context, id uuid.UUID) error
	ChangePassword(ctx context.Context, id uuid.UUID, input *ChangePasswordInput) error

	// IsEmailTaken is a standalone pre-flight existence check; the create and
	// update paths use the same normalization and lookup internally.
	IsEmailTaken(ctx context.Context, email string) (bool, error)
}
