package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/frontdesk/hotel-system/internal/core/domain"
	"github.com/frontdesk/hotel-system/internal/core/ports"
)

// userKey is the echo.Context key holding the authenticated *domain.User.
const userKey = "user"

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header. An absent or malformed header yields domain.ErrUnauthorizedUser.
func BearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return "", domain.ErrUnauthorizedUser
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", domain.ErrUnauthorizedUser
	}
	return strings.TrimSpace(parts[1]), nil
}

// Auth resolves the bearer token to a stored user and attaches it to the
// context. Unknown usernames fail with domain.ErrInvalidUserCredentials.
func Auth(tokens ports.TokenVerifier, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := BearerToken(c)
			if err != nil {
				return err
			}

			username, err := tokens.Verify(token)
			if err != nil {
				return err
			}

			user, err := users.FindByUsername(c.Request().Context(), username)
			if err != nil {
				if errors.Is(err, domain.ErrUserDoesNotExist) {
					return domain.ErrInvalidUserCredentials
				}
				return err
			}

			SetUser(c, user)
			return next(c)
		}
	}
}

// SetUser attaches u to the request context.
func SetUser(c echo.Context, u *domain.User) {
	c.Set(userKey, u)
}

// User returns the user attached by Auth, or nil on unauthenticated routes.
func User(c echo.Context) *domain.User {
	u, _ := c.Get(userKey).(*domain.User)
	return u
}
