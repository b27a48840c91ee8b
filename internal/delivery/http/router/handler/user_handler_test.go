package handler

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"userhub/internal/delivery/http/validator"
	domainerrors "userhub/internal/domain/errors"
	mockUsecase "userhub/internal/mocks/usecase"
	"userhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type handlerFixtures struct {
	handler *UserHandler
	uc      *mockUsecase.MockUserUsecase
	echo    *echo.Echo
}

func createTestUserHandler(t *testing.T) handlerFixtures {
	uc := mockUsecase.NewMockUserUsecase(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	e := echo.New()
	e.Validator = validator.New()

	return handlerFixtures{
		handler: NewUserHandler(uc, logger),
		uc:      uc,
		echo:    e,
	}
}

func newJSONContext(fx handlerFixtures, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return fx.echo.NewContext(req, rec), rec
}

func TestUserHandler_ListUsers(t *testing.T) {
	fx := createTestUserHandler(t)

	outputs := []*usecase.UserOutput{
		{ID: uuid.New(), Name: "Alice", Email: "alice@example.com"},
	}
	fx.uc.On("ListUsers", mock.Anything).Return(outputs, nil)

	c, rec := newJSONContext(fx, http.MethodGet, "/users", "")

	require.NoError(t, fx.handler.ListUsers(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "alice@example.com")
	// Projections never carry credential material.
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestUserHandler_GetUser_InvalidID(t *testing.T) {
	fx := createTestUserHandler(t)

	c, _ := newJSONContext(fx, http.MethodGet, "/users/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	err := fx.handler.GetUser(c)

	require.Error(t, err)
	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "VALIDATION_FAILED", appErr.ErrorCode())
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode())
	fx.uc.AssertNotCalled(t, "GetUser", mock.Anything, mock.Anything)
}

func TestUserHandler_CreateUser_Success(t *testing.T) {
	fx := createTestUserHandler(t)

	fx.uc.On("CreateUser", mock.Anything, mock.MatchedBy(func(input *usecase.CreateUserInput) bool {
		return input.Name == "Alice" && input.Email == "alice@example.com" &&
			input.Password == "secret123" && input.PasswordConfirm == "secret123"
	})).Return(&usecase.CreateUserOutput{Name: "Alice", Email: "alice@example.com"}, nil)

	body := `{"name":"Alice","email":"alice@example.com","password":"secret123","password_confirm":"secret123"}`
	c, rec := newJSONContext(fx, http.MethodPost, "/users", body)

	require.NoError(t, fx.handler.CreateUser(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "alice@example.com")
}

func TestUserHandler_CreateUser_ValidationFailures(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{"missing name", `{"email":"a@b.com","password":"secret123","password_confirm":"secret123"}`},
		{"bad email", `{"name":"Alice","email":"not-an-email","password":"secret123","password_confirm":"secret123"}`},
		{"short password", `{"name":"Alice","email":"a@b.com","password":"abc","password_confirm":"abc"}`},
		{"long password", `{"name":"Alice","email":"a@b.com","password":"` + strings.Repeat("x", 33) + `","password_confirm":"` + strings.Repeat("x", 33) + `"}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fx := createTestUserHandler(t)

			c, _ := newJSONContext(fx, http.MethodPost, "/users", tc.body)

			err := fx.handler.CreateUser(c)

			assert.Error(t, err)
			fx.uc.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
		})
	}
}

func TestUserHandler_CreateUser_UsecaseErrorPropagates(t *testing.T) {
	fx := createTestUserHandler(t)

	fx.uc.On("CreateUser", mock.Anything, mock.Anything).
		Return(nil, errors.Wrap(domainerrors.ErrEmailTaken, "create user"))

	body := `{"name":"Alice","email":"alice@example.com","password":"secret123","password_confirm":"secret123"}`
	c, _ := newJSONContext(fx, http.MethodPost, "/users", body)

	err := fx.handler.CreateUser(c)

	assert.True(t, errors.Is(err, domainerrors.ErrEmailTaken))
}

func TestUserHandler_UpdateUser_Success(t *testing.T) {
	fx := createTestUserHandler(t)
	id := uuid.New()

	fx.uc.On("UpdateUser", mock.Anything, id, mock.MatchedBy(func(input *usecase.UpdateUserInput) bool {
		return input.Name == "Alice Renamed" && input.Email == "new@example.com"
	})).Return(nil)

	body := `{"name":"Alice Renamed","email":"new@example.com"}`
	c, rec := newJSONContext(fx, http.MethodPut, "/users/"+id.String(), body)
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	require.NoError(t, fx.handler.UpdateUser(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUserHandler_DeleteUser_Success(t *testing.T) {
	fx := createTestUserHandler(t)
	id := uuid.New()

	fx.uc.On("DeleteUser", mock.Anything, id).Return(nil)

	c, rec := newJSONContext(fx, http.MethodDelete, "/users/"+id.String(), "")
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	require.NoError(t, fx.handler.DeleteUser(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUserHandler_ChangePassword_Success(t *testing.T) {
	fx := createTestUserHandler(t)
	id := uuid.New()

	fx.uc.On("ChangePassword", mock.Anything, id, mock.MatchedBy(func(input *usecase.ChangePasswordInput) bool {
		return input.Password == "oldsecret" && input.NewPassword == "newsecret" &&
			input.NewPasswordConfirmation == "newsecret"
	})).Return(nil)

	body := `{"password":"oldsecret","new_password":"newsecret","new_password_confirmation":"newsecret"}`
	c, rec := newJSONContext(fx, http.MethodPost, "/users/"+id.String()+"/password", body)
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	require.NoError(t, fx.handler.ChangePassword(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUserHandler_HealthCheck(t *testing.T) {
	fx := createTestUserHandler(t)

	c, rec := newJSONContext(fx, http.MethodGet, "/health", "")

	require.NoError(t, HealthCheck(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
