package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/docbrief/docbrief/errors"
	"github.com/docbrief/docbrief/internal/domain/entities"
	"github.com/docbrief/docbrief/internal/usecase/auth"
)

// ContextKey is the type for context keys
type ContextKey string

const (
	// UserContextKey is the context key for the authenticated user
	UserContextKey ContextKey = "user"
)

// GetUserFromContext retrieves the user from a request context
func GetUserFromContext(ctx context.Context) (*entities.User, bool) {
	user, ok := ctx.Value(UserContextKey).(*entities.User)
	return user, ok
}

// EchoAuth returns an Echo middleware that validates the bearer token
// and sets "user_id" (uuid.UUID) and "user" (*entities.User) into the
// Echo context
func EchoAuth(authService auth.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return errors.ErrUnauthenticated()
			}

			user, err := authService.Authenticate(c.Request().Context(), token)
			if err != nil {
				return err
			}

			c.Set("user", user)
			c.Set("user_id", user.ID)

			ctx := context.WithValue(c.Request().Context(), UserContextKey, user)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// extractToken reads the bearer token from the Authorization header,
// falling back to the access_token cookie
func extractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			return parts[1]
		}
	}

	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie.Value
	}

	return ""
}
