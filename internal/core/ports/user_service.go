package ports

import (
	"context"

	"github.com/frontdesk/hotel-system/internal/core/domain"
)

// TokenIssuer signs identity tokens for a username.
type TokenIssuer interface {
	Issue(username string) (string, error)
}

// TokenVerifier decodes a token back to the username it was issued for.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// TokenService issues and verifies identity tokens.
type TokenService interface {
	TokenIssuer
	TokenVerifier
}

// CreateUserInput carries the account fields supplied by the creating admin.
type CreateUserInput struct {
	Username   string
	Password   string
	Role       domain.Role
	Department domain.Department
}

// UserService defines the user use cases.
type UserService interface {
	Authenticate(ctx context.Context, username, password string) (string, error)
	CreateUser(ctx context.Context, input CreateUserInput, creatorToken string) (string, error)
	ChangePassword(ctx context.Context, actor *domain.User, username, newPassword string) error
	ChangeRole(ctx context.Context, username string, role domain.Role) error
	GetUser(ctx context.Context, username string) (*domain.User, error)
	EnsureDefaultAdmin(ctx context.Context) error
}
