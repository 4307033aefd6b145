package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/frontdesk/hotel-system/internal/api/metrics"
	"github.com/frontdesk/hotel-system/internal/api/middleware"
	"github.com/frontdesk/hotel-system/internal/core/domain"
	"github.com/frontdesk/hotel-system/internal/core/ports"
)

type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Authenticate exchanges credentials for a token.
//
// @Summary      Get a token
// @Tags         tokens
// @Accept       json
// @Produce      plain
// @Param        body  body      tokenRequest  true  "Credentials"
// @Success      200   {string}  string        "Signed token"
// @Failure      400   {object}  errorResponse
// @Router       /api/Tokens/ [post]
func (h *UserHandler) Authenticate(c echo.Context) error {
	var req tokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	token, err := h.users.Authenticate(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("failure").Inc()
		return err
	}
	metrics.AuthAttemptsTotal.WithLabelValues("success").Inc()
	return c.String(http.StatusOK, token)
}

// Create adds a user on behalf of the admin whose token is in the
// Authorization header.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string             false  "Replay key"
// @Param        body             body      createUserRequest  true   "New user"
// @Success      201              {object}  tokenResponse
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      406              {object}  errorResponse
// @Failure      409              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Router       /api/Users/ [post]
func (h *UserHandler) Create(c echo.Context) error {
	creatorToken, err := middleware.BearerToken(c)
	if err != nil {
		return err
	}

	var req createUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	role := domain.Role(req.Role)
	if role == "" {
		role = domain.RoleUser
	}
	token, err := h.users.CreateUser(c.Request().Context(), ports.CreateUserInput{
		Username:   req.Username,
		Password:   req.Password,
		Role:       role,
		Department: domain.Department(req.Department),
	}, creatorToken)
	if err != nil {
		return err
	}

	metrics.UsersCreatedTotal.WithLabelValues(string(role)).Inc()
	return c.JSON(http.StatusCreated, tokenResponse{Token: token})
}

// Me returns the authenticated user.
//
// @Summary      Current user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  errorResponse
// @Router       /api/Users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// ChangePassword sets a new password for the caller, or for another user
// when the caller is an admin.
//
// @Summary      Change a password
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      changePasswordRequest  true  "New password"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/Users/change-password [post]
func (h *UserHandler) ChangePassword(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.users.ChangePassword(c.Request().Context(), actor, req.Username, req.NewPassword); err != nil {
		return err
	}

	target := req.Username
	if target == "" {
		target = actor.Username
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Password for " + target + " changed successfully"})
}

// ChangeRole promotes or demotes a user.
//
// @Summary      Change a role
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      changeRoleRequest  true  "Target user and role"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/Users/change-role [post]
func (h *UserHandler) ChangeRole(c echo.Context) error {
	var req changeRoleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.users.ChangeRole(c.Request().Context(), req.Username, domain.Role(req.Role)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Role of " + req.Username + " changed to " + req.Role})
}
