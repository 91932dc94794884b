package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"giftlist/internal/infrastructure/firebase"
	"giftlist/pkg/errors"
	"giftlist/pkg/logger"
	"giftlist/pkg/response"
)

const (
	UIDKey      = "uid"
	IdentityKey = "identity"
)

// TokenVerifier checks a bearer token and returns the identity behind it.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*firebase.Identity, error)
}

type AuthMiddleware struct {
	verifier TokenVerifier
}

func NewAuthMiddleware(verifier TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
	}
}

func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Error(c, errors.Unauthorized("Authorization header is required", nil))
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return response.Error(c, errors.Unauthorized("Invalid authorization format", nil))
		}

		identity, err := m.verifier.VerifyToken(c.Request().Context(), parts[1])
		if err != nil {
			logger.Debug("Token verification failed: %v", err)
			return response.Error(c, errors.Unauthorized("Invalid or expired token", nil))
		}

		c.Set(UIDKey, identity.UID)
		c.Set(IdentityKey, identity)
		return next(c)
	}
}

// UID returns the authenticated caller's id, or "" on public routes.
func UID(c echo.Context) string {
	uid, _ := c.Get(UIDKey).(string)
	return uid
}

// Identity returns the verified token identity, or nil on public routes.
func Identity(c echo.Context) *firebase.Identity {
	identity, _ := c.Get(IdentityKey).(*firebase.Identity)
	return identity
}
