package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"userhub/internal/domain/repository"
	mockRepo "userhub/internal/mocks/repository"
	mockSvc "userhub/internal/mocks/service"
	"userhub/internal/usecase"

	"github.com/stretchr/testify/mock"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// userServiceFixtures holds all test dependencies for user service tests.
type userServiceFixtures struct {
	service   usecase.UserUsecase
	userRepo  *mockRepo.MockUserRepository
	txManager *mockRepo.MockTransactionManager
	hasher    *mockSvc.MockPasswordHasher
}

func createTestUserService(t *testing.T) userServiceFixtures {
	userRepo := mockRepo.NewMockUserRepository(t)
	txManager := mockRepo.NewMockTransactionManager(t)
	hasher := mockSvc.NewMockPasswordHasher(t)

	service := NewUserService(userRepo, txManager, hasher, newDiscardLogger())

	return userServiceFixtures{
		service:   service,
		userRepo:  userRepo,
		txManager: txManager,
		hasher:    hasher,
	}
}

func usecaseCreateInput(name, email, password, confirm string) *usecase.CreateUserInput {
	return &usecase.CreateUserInput{
		Name:            name,
		Email:           email,
		Password:        password,
		PasswordConfirm: confirm,
	}
}

func usecaseUpdateInput(name, email string) *usecase.UpdateUserInput {
	return &usecase.UpdateUserInput{Name: name, Email: email}
}

func usecaseChangePasswordInput(old, newPassword, confirmation string) *usecase.ChangePasswordInput {
	return &usecase.ChangePasswordInput{
		Password:                old,
		NewPassword:             newPassword,
		NewPasswordConfirmation: confirmation,
	}
}

// passthroughExecute makes the mocked transaction manager run the callback
// against the given factory and report its error, the way the real manager
// does on commit or rollback.
func passthroughExecute(fx userServiceFixtures, factory *mockRepo.MockRepositoryFactory) {
	fx.txManager.On("Execute", mock.Anything, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Return(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(factory)
		})
}
