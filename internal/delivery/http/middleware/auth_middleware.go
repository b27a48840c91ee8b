// Package middleware contains the echo middlewares for the HTTP delivery.
package middleware

import (
	"strings"

	"userhub/internal/delivery/http/response"
	"userhub/internal/domain/repository"
	"userhub/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const bearerScheme = "Bearer"

// Context keys set by Authenticate for downstream handlers.
const (
	ContextKeyUserID = "userID"
	ContextKeyUser   = "authUser"
)

// AuthMiddleware is the authentication gate: it validates the bearer token on
// every request and resolves it to an account identity before any handler
// runs. Authentication is stateless; nothing is remembered between requests.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	userRepo repository.UserRepository
}

// NewAuthMiddleware is the constructor for AuthMiddleware. The token service
// and user repository are injected explicitly; there is no process-global
// strategy registry.
func NewAuthMiddleware(tokenSvc service.TokenService, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, userRepo: userRepo}
}

// Authenticate is the core middleware function that validates the bearer token.
// Every failure short-circuits with 401 before the handler chain continues;
// no partial authentication state is ever produced.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return response.Unauthorized(c, "AUTH_INVALID", "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, bearerScheme+" ")
		if tokenString == authHeader || tokenString == "" {
			return response.Unauthorized(c, "AUTH_INVALID", "Invalid token format, must be a Bearer token")
		}

		claims, err := m.tokenSvc.Validate(tokenString)
		if err != nil {
			return response.Unauthorized(c, "AUTH_INVALID", "Invalid or expired token")
		}

		// A structurally valid token whose subject matches no account never
		// authenticates; it is indistinguishable from any other invalid token.
		user, err := m.userRepo.FindByID(c.Request().Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return response.Unauthorized(c, "AUTH_INVALID", "Invalid or expired token")
			}

			return errors.Wrap(err, "failed to resolve token subject")
		}

		// Expose the resolved identity for the lifetime of this request only.
		c.Set(ContextKeyUserID, user.ID)
		c.Set(ContextKeyUser, user)

		return next(c)
	}
}
