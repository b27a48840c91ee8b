// Package usecase provides testify mocks for the usecase interfaces, used by
// the HTTP handler tests.
package usecase

import (
	"context"
	"testing"

	"userhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUserUsecase is a mock implementation of usecase.UserUsecase.
type MockUserUsecase struct {
	mock.Mock
}

func NewMockUserUsecase(t *testing.T) *MockUserUsecase {
	m := &MockUserUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockUserUsecase) ListUsers(ctx context.Context) ([]*usecase.UserOutput, error) {
	args := m.Called(ctx)
	if outputs, ok := args.Get(0).([]*usecase.UserOutput); ok {
		return outputs, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockUserUsecase) GetUser(ctx context.Context, id uuid.UUID) (*usecase.UserOutput, error) {
	args := m.Called(ctx, id)
	if output, ok := args.Get(0).(*usecase.UserOutput); ok {
		return output, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockUserUsecase) CreateUser(ctx context.Context, input *usecase.CreateUserInput) (*usecase.CreateUserOutput, error) {
	args := m.Called(ctx, input)
	if output, ok := args.Get(0).(*usecase.CreateUserOutput); ok {
		return output, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockUserUsecase) UpdateUser(ctx context.Context, id uuid.UUID, input *usecase.UpdateUserInput) error {
	args := m.Called(ctx, id, input)

	return args.Error(0)
}

func (m *MockUserUsecase) DeleteUser(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *MockUserUsecase) ChangePassword(ctx context.Context, id uuid.UUID, input *usecase.ChangePasswordInput) error {
	args := m.Called(ctx, id, input)

	return args.Error(0)
}

func (m *MockUserUsecase) IsEmailTaken(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)

	return args.Bool(0), args.Error(1)
}
