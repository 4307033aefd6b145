package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/frontdesk/hotel-system/internal/core/domain"
)

// RequireCapability rejects requests whose authenticated user lacks capability.
// It must run after Auth.
func RequireCapability(capability domain.Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := domain.Authorize(User(c), capability); err != nil {
				return err
			}
			return next(c)
		}
	}
}
