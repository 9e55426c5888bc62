package middleware

import (
	"context"
	stdErrors "errors"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Samadhi-12/MinuteMe/errors"
	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
	"github.com/Samadhi-12/MinuteMe/internal/infrastructure/identity"
)

// Echo context keys set by EchoAuth
const (
	IdentityKey = "identity"
	UserIDKey   = "user_id"
)

// UserEnsurer maps a verified subject onto a stored user, creating it on first sight
type UserEnsurer interface {
	Ensure(ctx context.Context, subject, email, name string) (entities.Identity, error)
}

// EchoAuth returns an Echo middleware that verifies the bearer token and
// sets "identity" (entities.Identity) and "user_id" (string) into Echo context
func EchoAuth(verifier identity.Verifier, users UserEnsurer, logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return errors.ErrUnauthenticated()
			}

			ctx := c.Request().Context()
			principal, err := verifier.Verify(ctx, token)
			if err != nil {
				if logger != nil {
					logger.Debug("token rejected", zap.String("path", c.Path()), zap.Error(err))
				}
				if stdErrors.Is(err, identity.ErrTokenExpired) {
					return errors.ErrTokenExpired()
				}
				return errors.ErrInvalidToken()
			}

			id, err := users.Ensure(ctx, principal.Subject, principal.Email, principal.Name)
			if err != nil {
				return errors.FromDomain(err)
			}

			c.Set(IdentityKey, id)
			c.Set(UserIDKey, id.UserID)

			return next(c)
		}
	}
}

// RequireRole rejects identities whose stored role is not one of roles
func RequireRole(roles ...entities.UserRole) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFrom(c)
			if !ok {
				return errors.ErrUnauthenticated()
			}
			for _, role := range roles {
				if id.Role == role {
					return next(c)
				}
			}
			return errors.ErrPermissionDenied("insufficient role")
		}
	}
}

// IdentityFrom returns the identity stored by EchoAuth
func IdentityFrom(c echo.Context) (entities.Identity, bool) {
	id, ok := c.Get(IdentityKey).(entities.Identity)
	return id, ok
}

// extractToken reads the Authorization header first, then the access_token cookie
func extractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie.Value
	}
	return ""
}
