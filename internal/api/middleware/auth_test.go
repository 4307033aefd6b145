package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/frontdesk/hotel-system/internal/core/domain"
	"github.com/frontdesk/hotel-system/internal/core/service"
)

type stubUsers struct {
	users map[string]*domain.User
}

func (s *stubUsers) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := s.users[username]
	if !ok {
		return nil, domain.ErrUserDoesNotExist
	}
	return u, nil
}

func (s *stubUsers) Create(context.Context, *domain.User) (*domain.User, error) { return nil, nil }
func (s *stubUsers) SetPassword(context.Context, string, string) error         { return nil }
func (s *stubUsers) SetRole(context.Context, string, domain.Role) error          { return nil }
func (s *stubUsers) AdminExists(context.Context) (bool, error)                   { return false, nil }
func (s *stubUsers) CountAdmins(context.Context) (int64, error)                  { return 0, nil }
func (s *stubUsers) Count(context.Context) (int64, error)                        { return int64(len(s.users)), nil }

func newGuard() (*service.TokenService, echo.MiddlewareFunc) {
	tokens := service.NewTokenService("secret", time.Hour)
	users := &stubUsers{users: map[string]*domain.User{
		"alice": {Username: "alice", Role: domain.RoleAdmin, Department: domain.DepartmentFrontDesk},
	}}
	return tokens, Auth(tokens, users)
}

func runGuard(t *testing.T, mw echo.MiddlewareFunc, header string) (*domain.User, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	var seen *domain.User
	err := mw(func(c echo.Context) error {
		seen = User(c)
		return c.NoContent(http.StatusOK)
	})(c)
	return seen, err
}

func TestAuth_ValidToken(t *testing.T) {
	tokens, mw := newGuard()
	token, _ := tokens.Issue("alice")

	user, err := runGuard(t, mw, "Bearer "+token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user == nil || user.Username != "alice" {
		t.Fatalf("user not attached: %+v", user)
	}
}

func TestAuth_SchemeIsCaseInsensitive(t *testing.T) {
	tokens, mw := newGuard()
	token, _ := tokens.Issue("alice")

	if _, err := runGuard(t, mw, "bearer "+token); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAuth_MissingOrMalformedHeader(t *testing.T) {
	_, mw := newGuard()

	for _, h := range []string{"", "Token abc", "Bearer", "Bearer   "} {
		user, err := runGuard(t, mw, h)
		if !errors.Is(err, domain.ErrUnauthorizedUser) {
			t.Errorf("header %q: expected ErrUnauthorizedUser, got %v", h, err)
		}
		if user != nil {
			t.Errorf("header %q: next must not run", h)
		}
	}
}

func TestAuth_TamperedToken(t *testing.T) {
	tokens, mw := newGuard()
	token, _ := tokens.Issue("alice")
	parts := strings.Split(token, ".")
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	user, err := runGuard(t, mw, "Bearer "+tampered)
	if !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if user != nil {
		t.Fatal("next must not run")
	}
}

func TestAuth_UnknownUser(t *testing.T) {
	tokens, mw := newGuard()
	token, _ := tokens.Issue("ghost")

	if _, err := runGuard(t, mw, "Bearer "+token); !errors.Is(err, domain.ErrInvalidUserCredentials) {
		t.Fatalf("expected ErrInvalidUserCredentials, got %v", err)
	}
}
