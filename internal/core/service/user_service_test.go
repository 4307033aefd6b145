package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/frontdesk/hotel-system/internal/core/domain"
	"github.com/frontdesk/hotel-system/internal/core/ports"
)

type stubUserRepo struct {
	users     map[string]*domain.User
	adminErr  error
	createErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserDoesNotExist
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUserAlreadyExists
	}
	copy := cloneUser(user)
	copy.ID = user.Username
	r.users[copy.Username] = copy
	return cloneUser(copy), nil
}

func (r *stubUserRepo) SetPassword(_ context.Context, username, hash string) error {
	u, ok := r.users[username]
	if !ok {
		return domain.ErrUserDoesNotExist
	}
	u.PasswordHash = hash
	return nil
}

func (r *stubUserRepo) SetRole(_ context.Context, username string, role domain.Role) error {
	u, ok := r.users[username]
	if !ok {
		return domain.ErrUserDoesNotExist
	}
	u.Role = role
	return nil
}

func (r *stubUserRepo) AdminExists(_ context.Context) (bool, error) {
	if r.adminErr != nil {
		return false, r.adminErr
	}
	for _, u := range r.users {
		if u.Role == domain.RoleAdmin {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) CountAdmins(_ context.Context) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.Role == domain.RoleAdmin {
			n++
		}
	}
	return n, nil
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

const testSecret = "test-secret"

func newUserSvc(repo *stubUserRepo) (*UserService, *TokenService) {
	tokens := NewTokenService(testSecret, time.Hour)
	svc := NewUserService(repo, tokens, DefaultAdmin{Department: domain.DepartmentFrontDesk}, zerolog.Nop())
	svc.cost = bcrypt.MinCost
	return svc, tokens
}

func seedUser(t *testing.T, repo *stubUserRepo, username, password string, role domain.Role, dept domain.Department) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	repo.users[username] = &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		Department:   dept,
	}
}

// ---------------------------------------------------------------------------
// Authenticate
// ---------------------------------------------------------------------------

func TestUserService_Authenticate_TokenVerifiesToUsername(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "carol", "s3cret", domain.RoleUser, domain.DepartmentHousekeeping)
	svc, tokens := newUserSvc(repo)

	token, err := svc.Authenticate(context.Background(), "carol", "s3cret")
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}

	username, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if username != "carol" {
		t.Fatalf("expected carol, got %q", username)
	}
}

func TestUserService_Authenticate_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "dave", "goodpass", domain.RoleUser, domain.DepartmentNone)
	svc, _ := newUserSvc(repo)

	for _, pw := range []string{"badpass", "goodpas", "GOODPASS", " goodpass"} {
		if _, err := svc.Authenticate(context.Background(), "dave", pw); !errors.Is(err, domain.ErrInvalidUserCredentials) {
			t.Errorf("password %q: expected ErrInvalidUserCredentials, got %v", pw, err)
		}
	}
}

func TestUserService_Authenticate_UnknownUser(t *testing.T) {
	svc, _ := newUserSvc(newStubUserRepo())

	if _, err := svc.Authenticate(context.Background(), "ghost", "pass"); !errors.Is(err, domain.ErrInvalidUserCredentials) {
		t.Fatalf("expected ErrInvalidUserCredentials, got %v", err)
	}
}

func TestUserService_Authenticate_EmptyInput(t *testing.T) {
	svc, _ := newUserSvc(newStubUserRepo())

	if _, err := svc.Authenticate(context.Background(), "", "pass"); !errors.Is(err, domain.ErrInvalidUserCredentials) {
		t.Fatalf("expected ErrInvalidUserCredentials, got %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "alice", ""); !errors.Is(err, domain.ErrInvalidUserCredentials) {
		t.Fatalf("expected ErrInvalidUserCredentials, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// CreateUser
// ---------------------------------------------------------------------------

func TestUserService_CreateUser_ByAdmin(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "admin", "admin", domain.RoleAdmin, domain.DepartmentFrontDesk)
	svc, tokens := newUserSvc(repo)

	adminToken, _ := tokens.Issue("admin")
	token, err := svc.CreateUser(context.Background(), ports.CreateUserInput{
		Username: "bob",
		Password: "pw",
		Role:     domain.RoleUser,
	}, adminToken)
	if err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	if name, err := tokens.Verify(token); err != nil || name != "bob" {
		t.Fatalf("expected token for bob, got %q (%v)", name, err)
	}

	bob, err := repo.FindByUsername(context.Background(), "bob")
	if err != nil {
		t.Fatalf("bob not stored: %v", err)
	}
	if bob.Role != domain.RoleUser {
		t.Errorf("expected role User, got %s", bob.Role)
	}
	if bob.PasswordHash == "pw" {
		t.Error("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(bob.PasswordHash), []byte("pw")); err != nil {
		t.Errorf("stored hash does not match password: %v", err)
	}
}

func TestUserService_CreateUser_DefaultsToUserRole(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "admin", "admin", domain.RoleAdmin, domain.DepartmentFrontDesk)
	svc, tokens := newUserSvc(repo)

	adminToken, _ := tokens.Issue("admin")
	if _, err := svc.CreateUser(context.Background(), ports.CreateUserInput{Username: "erin", Password: "pw"}, adminToken); err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	if repo.users["erin"].Role != domain.RoleUser {
		t.Errorf("expected default role User, got %s", repo.users["erin"].Role)
	}
}

func TestUserService_CreateUser_Failures(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "admin", "admin", domain.RoleAdmin, domain.DepartmentFrontDesk)
	seedUser(t, repo, "clerk", "clerk", domain.RoleUser, domain.DepartmentFrontDesk)
	svc, tokens := newUserSvc(repo)

	adminToken, _ := tokens.Issue("admin")
	clerkToken, _ := tokens.Issue("clerk")
	ghostToken, _ := tokens.Issue("ghost")
	foreignToken, _ := NewTokenService("other-secret", time.Hour).Issue("admin")

	cases := []struct {
		name    string
		input   ports.CreateUserInput
		token   string
		wantErr error
	}{
		{"garbage token", ports.CreateUserInput{Username: "x", Password: "y"}, "garbage", domain.ErrInvalidToken},
		{"foreign signature", ports.CreateUserInput{Username: "x", Password: "y"}, foreignToken, domain.ErrInvalidToken},
		{"creator missing", ports.CreateUserInput{Username: "x", Password: "y"}, ghostToken, domain.ErrCreatorDoesNotExist},
		{"creator not admin", ports.CreateUserInput{Username: "x", Password: "y"}, clerkToken, domain.ErrCreatorIsNotAdmin},
		{"duplicate username", ports.CreateUserInput{Username: "clerk", Password: "y"}, adminToken, domain.ErrUserAlreadyExists},
		{"empty password", ports.CreateUserInput{Username: "x"}, adminToken, domain.ErrInvalidUserCredentials},
		{"bad role", ports.CreateUserInput{Username: "x", Password: "y", Role: "Owner"}, adminToken, domain.ErrInvalidUserCredentials},
		{"bad department", ports.CreateUserInput{Username: "x", Password: "y", Department: "Spa"}, adminToken, domain.ErrInvalidUserCredentials},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.CreateUser(context.Background(), tc.input, tc.token); !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}

	if _, ok := repo.users["x"]; ok {
		t.Error("no failed call may create a user")
	}
}

// ---------------------------------------------------------------------------
// ChangePassword / ChangeRole
// ---------------------------------------------------------------------------

func TestUserService_ChangePassword_Self(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "frank", "old", domain.RoleUser, domain.DepartmentNone)
	svc, _ := newUserSvc(repo)

	actor, _ := repo.FindByUsername(context.Background(), "frank")
	if err := svc.ChangePassword(context.Background(), actor, "", "new"); err != nil {
		t.Fatalf("change password: %v", err)
	}

	if _, err := svc.Authenticate(context.Background(), "frank", "new"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "frank", "old"); !errors.Is(err, domain.ErrInvalidUserCredentials) {
		t.Fatalf("old password still accepted: %v", err)
	}
}

func TestUserService_ChangePassword_OtherUserNeedsAdmin(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "frank", "pw", domain.RoleUser, domain.DepartmentNone)
	seedUser(t, repo, "gina", "pw", domain.RoleUser, domain.DepartmentNone)
	seedUser(t, repo, "admin", "pw", domain.RoleAdmin, domain.DepartmentBackOffice)
	svc, _ := newUserSvc(repo)

	frank, _ := repo.FindByUsername(context.Background(), "frank")
	if err := svc.ChangePassword(context.Background(), frank, "gina", "hijack"); !errors.Is(err, domain.ErrUnauthorizedUser) {
		t.Fatalf("expected ErrUnauthorizedUser, got %v", err)
	}

	admin, _ := repo.FindByUsername(context.Background(), "admin")
	if err := svc.ChangePassword(context.Background(), admin, "gina", "reset"); err != nil {
		t.Fatalf("admin reset failed: %v", err)
	}
	if err := svc.ChangePassword(context.Background(), admin, "nobody", "reset"); !errors.Is(err, domain.ErrUserDoesNotExist) {
		t.Fatalf("expected ErrUserDoesNotExist, got %v", err)
	}
}

func TestUserService_ChangeRole(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "hank", "pw", domain.RoleUser, domain.DepartmentFrontDesk)
	svc, _ := newUserSvc(repo)

	if err := svc.ChangeRole(context.Background(), "hank", domain.RoleAdmin); err != nil {
		t.Fatalf("change role: %v", err)
	}
	if repo.users["hank"].Role != domain.RoleAdmin {
		t.Errorf("expected Admin, got %s", repo.users["hank"].Role)
	}
	if err := svc.ChangeRole(context.Background(), "nobody", domain.RoleAdmin); !errors.Is(err, domain.ErrUserDoesNotExist) {
		t.Errorf("expected ErrUserDoesNotExist, got %v", err)
	}
	if err := svc.ChangeRole(context.Background(), "hank", "Owner"); !errors.Is(err, domain.ErrInvalidUserCredentials) {
		t.Errorf("expected ErrInvalidUserCredentials for bad role, got %v", err)
	}
}

func TestUserService_ChangeRole_KeepsLastAdmin(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newUserSvc(repo)

	if err := svc.EnsureDefaultAdmin(context.Background()); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if err := svc.ChangeRole(context.Background(), "admin", domain.RoleUser); !errors.Is(err, domain.ErrLastAdmin) {
		t.Fatalf("expected ErrLastAdmin, got %v", err)
	}
	if repo.users["admin"].Role != domain.RoleAdmin {
		t.Fatalf("last admin was demoted to %s", repo.users["admin"].Role)
	}
	if err := svc.EnsureDefaultAdmin(context.Background()); err != nil {
		t.Fatalf("second bootstrap: %v", err)
	}

	seedUser(t, repo, "ivy", "pw", domain.RoleAdmin, domain.DepartmentBackOffice)
	if err := svc.ChangeRole(context.Background(), "admin", domain.RoleUser); err != nil {
		t.Fatalf("demote with another admin present: %v", err)
	}
	if err := svc.ChangeRole(context.Background(), "ivy", domain.RoleUser); !errors.Is(err, domain.ErrLastAdmin) {
		t.Fatalf("expected ErrLastAdmin for ivy, got %v", err)
	}
}

func TestUserService_PasswordTooLong(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "admin", "admin", domain.RoleAdmin, domain.DepartmentFrontDesk)
	svc, tokens := newUserSvc(repo)
	long := strings.Repeat("p", 80)

	adminToken, _ := tokens.Issue("admin")
	_, err := svc.CreateUser(context.Background(), ports.CreateUserInput{Username: "jay", Password: long}, adminToken)
	if !errors.Is(err, domain.ErrInvalidUserCredentials) {
		t.Fatalf("create: expected ErrInvalidUserCredentials, got %v", err)
	}
	if _, ok := repo.users["jay"]; ok {
		t.Fatal("user with oversized password must not be stored")
	}

	admin, _ := repo.FindByUsername(context.Background(), "admin")
	if err := svc.ChangePassword(context.Background(), admin, "", long); !errors.Is(err, domain.ErrInvalidUserCredentials) {
		t.Fatalf("change password: expected ErrInvalidUserCredentials, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// EnsureDefaultAdmin
// ---------------------------------------------------------------------------

func TestUserService_EnsureDefaultAdmin_Idempotent(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newUserSvc(repo)

	if err := svc.EnsureDefaultAdmin(context.Background()); err != nil {
		t.Fatalf("first bootstrap: %v", err)
	}
	if n, _ := repo.Count(context.Background()); n != 1 {
		t.Fatalf("expected 1 user after bootstrap, got %d", n)
	}
	admin := repo.users["admin"]
	if admin == nil || admin.Role != domain.RoleAdmin || admin.Department != domain.DepartmentFrontDesk {
		t.Fatalf("unexpected bootstrap admin: %+v", admin)
	}

	if err := svc.EnsureDefaultAdmin(context.Background()); err != nil {
		t.Fatalf("second bootstrap: %v", err)
	}
	if n, _ := repo.Count(context.Background()); n != 1 {
		t.Fatalf("expected user count unchanged, got %d", n)
	}

	if _, err := svc.Authenticate(context.Background(), "admin", "admin"); err != nil {
		t.Fatalf("default credentials rejected: %v", err)
	}
}

func TestUserService_EnsureDefaultAdmin_SkipsWhenAdminExists(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "boss", "pw", domain.RoleAdmin, domain.DepartmentBackOffice)
	svc, _ := newUserSvc(repo)

	if err := svc.EnsureDefaultAdmin(context.Background()); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if _, ok := repo.users["admin"]; ok {
		t.Fatal("default admin must not be created when an admin exists")
	}
}

func TestUserService_EnsureDefaultAdmin_StoreError(t *testing.T) {
	repo := newStubUserRepo()
	repo.adminErr = errors.New("mongo unavailable")
	svc, _ := newUserSvc(repo)

	if err := svc.EnsureDefaultAdmin(context.Background()); err == nil {
		t.Fatal("expected error when the store is unavailable")
	}
}
