package ports

import (
	"context"

	"github.com/frontdesk/hotel-system/internal/core/domain"
)

// UserRepository defines the persistence operations of the credential store.
type UserRepository interface {
	// FindByUsername returns domain.ErrUserDoesNotExist when no user matches.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// Create returns domain.ErrUserAlreadyExists on a username collision.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	SetPassword(ctx context.Context, username, passwordHash string) error
	SetRole(ctx context.Context, username string, role domain.Role) error
	AdminExists(ctx context.Context) (bool, error)
	CountAdmins(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int64, error)
}
