package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/frontdesk/hotel-system/internal/api/middleware"
	"github.com/frontdesk/hotel-system/internal/core/domain"
)

// currentUser returns the user attached by the Auth middleware. Handlers on
// guarded routes call it before any service call.
func currentUser(c echo.Context) (*domain.User, error) {
	u := middleware.User(c)
	if u == nil {
		return nil, domain.ErrUnauthorizedUser
	}
	return u, nil
}
