package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"userhub/internal/domain/entity"
	"userhub/internal/domain/repository"
	"userhub/internal/domain/service"
	mockRepo "userhub/internal/mocks/repository"
	mockSvc "userhub/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type authTestFixtures struct {
	middleware *AuthMiddleware
	tokenSvc   *mockSvc.MockTokenService
	userRepo   *mockRepo.MockUserRepository
}

func createTestAuthMiddleware(t *testing.T) authTestFixtures {
	tokenSvc := mockSvc.NewMockTokenService(t)
	userRepo := mockRepo.NewMockUserRepository(t)

	return authTestFixtures{
		middleware: NewAuthMiddleware(tokenSvc, userRepo),
		tokenSvc:   tokenSvc,
		userRepo:   userRepo,
	}
}

// invokeAuth runs the Authenticate middleware around a trivial handler and
// returns the recorder plus whether the handler was reached.
func invokeAuth(t *testing.T, fx authTestFixtures, authHeader string) (*httptest.ResponseRecorder, bool, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handlerReached := false
	next := func(c echo.Context) error {
		handlerReached = true

		return c.NoContent(http.StatusOK)
	}

	err := fx.middleware.Authenticate(next)(c)

	return rec, handlerReached, err
}

func decodeErrorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body.Error.Code
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	fx := createTestAuthMiddleware(t)

	rec, reached, err := invokeAuth(t, fx, "")

	assert.NoError(t, err)
	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "AUTH_INVALID", decodeErrorCode(t, rec))
}

func TestAuthMiddleware_WrongScheme(t *testing.T) {
	fx := createTestAuthMiddleware(t)

	rec, reached, err := invokeAuth(t, fx, "Basic dXNlcjpwYXNz")

	assert.NoError(t, err)
	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_EmptyBearerToken(t *testing.T) {
	fx := createTestAuthMiddleware(t)

	rec, reached, _ := invokeAuth(t, fx, "Bearer ")

	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	fx := createTestAuthMiddleware(t)

	fx.tokenSvc.On("Validate", "garbage").Return(nil, errors.New("token is malformed"))

	rec, reached, err := invokeAuth(t, fx, "Bearer garbage")

	assert.NoError(t, err)
	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_ValidTokenUnknownSubject(t *testing.T) {
	fx := createTestAuthMiddleware(t)
	userID := uuid.New()

	// A well-signed token whose subject no longer exists must read as an
	// ordinary invalid token, not as a server error.
	fx.tokenSvc.On("Validate", "valid-token").Return(&service.Claims{UserID: userID}, nil)
	fx.userRepo.On("FindByID", mock.Anything, userID).Return(nil, repository.ErrUserNotFound)

	rec, reached, err := invokeAuth(t, fx, "Bearer valid-token")

	assert.NoError(t, err)
	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "AUTH_INVALID", decodeErrorCode(t, rec))
}

func TestAuthMiddleware_StoreFailurePropagates(t *testing.T) {
	fx := createTestAuthMiddleware(t)
	userID := uuid.New()

	fx.tokenSvc.On("Validate", "valid-token").Return(&service.Claims{UserID: userID}, nil)
	fx.userRepo.On("FindByID", mock.Anything, userID).Return(nil, errors.New("connection reset"))

	_, reached, err := invokeAuth(t, fx, "Bearer valid-token")

	// Infrastructure failures are not 401s; they bubble to the error handler.
	assert.Error(t, err)
	assert.False(t, reached)
}

func TestAuthMiddleware_Success(t *testing.T) {
	fx := createTestAuthMiddleware(t)
	user := &entity.User{ID: uuid.New(), Name: "Alice", Email: "alice@example.com"}

	fx.tokenSvc.On("Validate", "valid-token").Return(&service.Claims{UserID: user.ID}, nil)
	fx.userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer valid-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error {
		// The resolved identity is available to the handler.
		assert.Equal(t, user.ID, c.Get(ContextKeyUserID))
		assert.Equal(t, user, c.Get(ContextKeyUser))

		return c.NoContent(http.StatusOK)
	}

	err := fx.middleware.Authenticate(next)(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}
