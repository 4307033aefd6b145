package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/frontdesk/hotel-system/internal/api/metrics"
	"github.com/frontdesk/hotel-system/internal/core/domain"
	"github.com/frontdesk/hotel-system/internal/core/ports"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// errorMapping binds a sentinel error to its HTTP rendering. An empty message
// means the wrapped error text is sent to the client.
type errorMapping struct {
	target  error
	kind    string
	status  int
	message string
}

// errorTable is checked in order; the first errors.Is match wins.
var errorTable = []errorMapping{
	{domain.ErrInvalidUserCredentials, "invalid_user_credentials", http.StatusBadRequest, "Incorrect username and/or password"},
	{domain.ErrUserDoesNotExist, "user_does_not_exist", http.StatusBadRequest, "User does not exist"},
	{domain.ErrCreatorDoesNotExist, "creator_does_not_exist", http.StatusBadRequest, "Creator does not exist"},
	{domain.ErrCreatorIsNotAdmin, "creator_is_not_admin", http.StatusNotAcceptable, "Creator is not an admin"},
	{domain.ErrInvalidToken, "invalid_token", http.StatusUnauthorized, "Invalid token received"},
	{domain.ErrTokenSigning, "token_signing", http.StatusBadRequest, "Couldn't sign jwt token for user"},
	{domain.ErrUserAlreadyExists, "user_already_exists", http.StatusConflict, "User already exists, username must be unique"},
	{domain.ErrUnauthorizedUser, "unauthorized_user", http.StatusUnauthorized, "User is not authorized"},
	{domain.ErrLastAdmin, "last_admin", http.StatusConflict, ""},

	{domain.ErrRoomDoesNotExist, "room_does_not_exist", http.StatusBadRequest, ""},
	{domain.ErrRoomNumberAlreadyExists, "room_number_already_exists", http.StatusBadRequest, ""},
	{domain.ErrRoomTypeDoesNotExist, "room_type_does_not_exist", http.StatusBadRequest, ""},
	{domain.ErrRoomTypeAlreadyExists, "room_type_already_exists", http.StatusBadRequest, ""},
	{domain.ErrMissingReservationID, "missing_reservation_id", http.StatusBadRequest, ""},
	{domain.ErrInvalidRoomState, "invalid_room_state", http.StatusBadRequest, ""},
	{domain.ErrRoomTypeIsNotEmpty, "room_type_is_not_empty", http.StatusNotAcceptable, ""},

	{ports.ErrIdempotencyKeyInFlight, "idempotency_in_flight", http.StatusConflict, ""},
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes and messages.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	for _, m := range errorTable {
		if !errors.Is(err, m.target) {
			continue
		}
		metrics.DomainErrorsTotal.WithLabelValues(m.kind).Inc()
		msg := m.message
		if msg == "" {
			msg = err.Error()
		}
		log.Info().
			Err(err).
			Int("status", m.status).
			Str("path", c.Path()).
			Msg("request rejected")
		return m.status, msg
	}

	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	metrics.DomainErrorsTotal.WithLabelValues("internal").Inc()
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
