// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "userhub/internal/delivery/context"
	"userhub/internal/domain/entity"
	domainerrors "userhub/internal/domain/errors"
	"userhub/internal/domain/repository"
	"userhub/internal/domain/service"
	"userhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// userService implements the UserUsecase interface.
type userService struct {
	userRepo  repository.UserRepository
	txManager repository.TransactionManager
	hasher    service.PasswordHasher
	logger    *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(
	userRepo repository.UserRepository,
	txManager repository.TransactionManager,
	hasher service.PasswordHasher,
	logger *slog.Logger,
) usecase.UserUsecase {
	return &userService{
		userRepo:  userRepo,
		txManager: txManager,
		hasher:    hasher,
		logger:    logger,
	}
}

func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListUsers returns the projection of every account. No pagination: the
// snapshot is returned whole, which is acceptable at this service's scale.
func (srv *userService) ListUsers(ctx context.Context) ([]*usecase.UserOutput, error) {
	users, err := srv.userRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	outputs := make([]*usecase.UserOutput, 0, len(users))
	for _, user := range users {
		outputs = append(outputs, toUserOutput(user))
	}

	return outputs, nil
}

// GetUser returns the projection of a single account.
func (srv *userService) GetUser(ctx context.Context, id uuid.UUID) (*usecase.UserOutput, error) {
	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "unknown user")
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return toUserOutput(user), nil
}

// CreateUser orchestrates account creation: confirmation check, uniqueness
// fast path, hashing, insert. The storage-level unique index remains the
// authoritative guard; if a concurrent create wins the race between the
// pre-check and the insert, the translated constraint violation surfaces as
// the same EmailTaken failure.
func (srv *userService) CreateUser(ctx context.Context, input *usecase.CreateUserInput) (*usecase.CreateUserOutput, error) {
	if input.Password != input.PasswordConfirm {
		return nil, errors.Wrap(domainerrors.ErrPasswordMismatch, "password confirmation does not match")
	}

	email := entity.NormalizeEmail(input.Email)

	taken, err := srv.IsEmailTaken(ctx, email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check email availability")
	}
	if taken {
		srv.log(ctx).Warn("Create user rejected, email taken", slog.String("email", email))

		return nil, errors.Wrap(domainerrors.ErrEmailTaken, "email already registered")
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during user creation", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	newUser := &entity.User{
		Name:         input.Name,
		Email:        email,
		PasswordHash: hashedPassword,
	}

	if err := srv.userRepo.Create(ctx, newUser); err != nil {
		return nil, errors.Wrap(err, "failed to create user")
	}

	srv.log(ctx).Debug("User created", slog.Any("userID", newUser.ID), slog.String("email", email))

	return &usecase.CreateUserOutput{
		Name:  newUser.Name,
		Email: newUser.Email,
	}, nil
}

// UpdateUser changes an account's name and email. The whole read-then-write
// sequence runs inside one transaction. The uniqueness check excludes the
// account's own record, so re-submitting the current email is never a
// conflict.
func (srv *userService) UpdateUser(ctx context.Context, id uuid.UUID, input *usecase.UpdateUserInput) error {
	email := entity.NormalizeEmail(input.Email)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		if _, err := userRepo.FindByID(ctx, id); err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrUserNotFound, "unknown user")
			}

			return errors.Wrap(err, "failed to find user")
		}

		owner, err := userRepo.FindByEmail(ctx, email)
		if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to check email availability")
		}
		if err == nil && owner.ID != id {
			return errors.Wrap(domainerrors.ErrEmailTaken, "email already registered to another user")
		}

		patch := repository.UserPatch{
			Name:  &input.Name,
			Email: &email,
		}
		if err := userRepo.UpdateFields(ctx, id, patch); err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrUserNotFound, "unknown user")
			}

			var appErr domainerrors.AppError
			if errors.As(err, &appErr) {
				return err
			}

			return errors.Wrap(domainerrors.ErrUserUpdateFailed, err.Error())
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Update user failed", slog.Any("userID", id), slog.Any("error", err))

		return err
	}

	srv.log(ctx).Debug("User updated", slog.Any("userID", id))

	return nil
}

// DeleteUser permanently removes an account. The store reports absence
// atomically, so no separate existence check is needed.
func (srv *userService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := srv.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(domainerrors.ErrUserNotFound, "unknown user")
		}

		srv.log(ctx).Error("Delete user failed", slog.Any("userID", id), slog.Any("error", err))

		var appErr domainerrors.AppError
		if errors.As(err, &appErr) {
			return err
		}

		return errors.Wrap(domainerrors.ErrUserDeleteFailed, err.Error())
	}

	srv.log(ctx).Debug("User deleted", slog.Any("userID", id))

	return nil
}

// ChangePassword rotates an account's credential. The ordering is fixed:
// confirmation mismatch fails before any store access, then the old password
// is verified, then the new hash is written. When the account does not exist
// the hasher still runs against a fixed dummy hash so response timing does
// not reveal whether the account was there. bcrypt runs outside any
// transaction because it is CPU-bound.
func (srv *userService) ChangePassword(ctx context.Context, id uuid.UUID, input *usecase.ChangePasswordInput) error {
	if input.NewPassword != input.NewPasswordConfirmation {
		return errors.Wrap(domainerrors.ErrPasswordMismatch, "new password confirmation does not match")
	}

	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Burn the same work a real verification would.
			srv.hasher.Check(input.Password, srv.hasher.DummyHash())

			return errors.Wrap(domainerrors.ErrUserNotFound, "unknown user")
		}

		return errors.Wrap(err, "failed to find user")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Change password rejected, wrong old password", slog.Any("userID", id))

		return errors.Wrap(domainerrors.ErrInvalidPassword, "incorrect old password")
	}

	newHash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		srv.log(ctx).Error("Failed to hash new password", slog.Any("error", err))

		return errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	patch := repository.UserPatch{PasswordHash: &newHash}
	if err := srv.userRepo.UpdateFields(ctx, id, patch); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(domainerrors.ErrUserNotFound, "unknown user")
		}

		var appErr domainerrors.AppError
		if errors.As(err, &appErr) {
			return err
		}

		return errors.Wrap(domainerrors.ErrUserUpdateFailed, err.Error())
	}

	srv.log(ctx).Debug("Password changed", slog.Any("userID", id))

	return nil
}

// IsEmailTaken reports whether any account owns the given email, after
// normalization.
func (srv *userService) IsEmailTaken(ctx context.Context, email string) (bool, error) {
	_, err := srv.userRepo.FindByEmail(ctx, entity.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return false, nil
		}

		return false, errors.Wrap(err, "failed to look up email")
	}

	return true, nil
}

func toUserOutput(user *entity.User) *usecase.UserOutput {
	return &usecase.UserOutput{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}
