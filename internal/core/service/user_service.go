package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/frontdesk/hotel-system/internal/core/domain"
	"github.com/frontdesk/hotel-system/internal/core/ports"
)

// DefaultAdmin describes the account created when the store has no admin.
type DefaultAdmin struct {
	Username   string
	Password   string
	Department domain.Department
}

// UserService implements authentication and user administration.
type UserService struct {
	repo   ports.UserRepository
	tokens ports.TokenService
	admin  DefaultAdmin
	cost   int
	log    zerolog.Logger
}

func NewUserService(repo ports.UserRepository, tokens ports.TokenService, admin DefaultAdmin, log zerolog.Logger) *UserService {
	if admin.Username == "" {
		admin.Username = "admin"
	}
	if admin.Password == "" {
		admin.Password = "admin"
	}
	return &UserService{
		repo:   repo,
		tokens: tokens,
		admin:  admin,
		cost:   bcrypt.DefaultCost,
		log:    log,
	}
}

// Authenticate checks the password of username and returns a fresh token.
// Unknown users and wrong passwords are indistinguishable to the caller.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", domain.ErrInvalidUserCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserDoesNotExist) {
			return "", domain.ErrInvalidUserCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", domain.ErrInvalidUserCredentials
	}

	return s.tokens.Issue(user.Username)
}

// CreateUser creates an account on behalf of the admin identified by
// creatorToken and returns the new user's token.
func (s *UserService) CreateUser(ctx context.Context, in ports.CreateUserInput, creatorToken string) (string, error) {
	creatorName, err := s.tokens.Verify(creatorToken)
	if err != nil {
		return "", domain.ErrInvalidToken
	}

	creator, err := s.repo.FindByUsername(ctx, creatorName)
	if err != nil {
		if errors.Is(err, domain.ErrUserDoesNotExist) {
			return "", domain.ErrCreatorDoesNotExist
		}
		return "", err
	}
	if !creator.IsAdmin() {
		return "", domain.ErrCreatorIsNotAdmin
	}

	if in.Role == "" {
		in.Role = domain.RoleUser
	}
	if in.Username == "" || in.Password == "" || !in.Role.Valid() || !in.Department.Valid() {
		return "", domain.ErrInvalidUserCredentials
	}

	if _, err := s.create(ctx, in); err != nil {
		return "", err
	}

	token, err := s.tokens.Issue(in.Username)
	if err != nil {
		return "", err
	}

	s.log.Info().
		Str("username", in.Username).
		Str("role", string(in.Role)).
		Str("creator", creator.Username).
		Msg("user created")
	return token, nil
}

// ChangePassword sets a new password. Users may change their own; changing
// someone else's requires the users capability.
func (s *UserService) ChangePassword(ctx context.Context, actor *domain.User, username, newPassword string) error {
	if actor == nil {
		return domain.ErrUnauthorizedUser
	}
	if username == "" {
		username = actor.Username
	}
	if username != actor.Username {
		if err := domain.Authorize(actor, domain.CapManageUsers); err != nil {
			return err
		}
	}
	if newPassword == "" {
		return domain.ErrInvalidUserCredentials
	}

	hash, err := s.hash(newPassword)
	if err != nil {
		return err
	}
	if err := s.repo.SetPassword(ctx, username, hash); err != nil {
		return err
	}

	s.log.Info().Str("username", username).Str("actor", actor.Username).Msg("password changed")
	return nil
}

// ChangeRole sets the role of username. The last remaining admin cannot be
// demoted.
func (s *UserService) ChangeRole(ctx context.Context, username string, role domain.Role) error {
	if !role.Valid() {
		return domain.ErrInvalidUserCredentials
	}
	if role != domain.RoleAdmin {
		user, err := s.repo.FindByUsername(ctx, username)
		if err != nil {
			return err
		}
		if user.IsAdmin() {
			admins, err := s.repo.CountAdmins(ctx)
			if err != nil {
				return fmt.Errorf("count admins: %w", err)
			}
			if admins <= 1 {
				return fmt.Errorf("%w: %s", domain.ErrLastAdmin, username)
			}
		}
	}
	if err := s.repo.SetRole(ctx, username, role); err != nil {
		return err
	}
	s.log.Info().Str("username", username).Str("role", string(role)).Msg("role changed")
	return nil
}

func (s *UserService) GetUser(ctx context.Context, username string) (*domain.User, error) {
	return s.repo.FindByUsername(ctx, username)
}

// EnsureDefaultAdmin creates the bootstrap admin when no admin exists.
// Calling it again once an admin exists is a no-op.
func (s *UserService) EnsureDefaultAdmin(ctx context.Context) error {
	exists, err := s.repo.AdminExists(ctx)
	if err != nil {
		return fmt.Errorf("check admin: %w", err)
	}
	if exists {
		s.log.Info().Msg("admin user exists, skipping default admin creation")
		return nil
	}

	s.log.Warn().Str("username", s.admin.Username).Msg("no admin user found, creating default admin")
	_, err = s.create(ctx, ports.CreateUserInput{
		Username:   s.admin.Username,
		Password:   s.admin.Password,
		Role:       domain.RoleAdmin,
		Department: s.admin.Department,
	})
	if err != nil {
		return fmt.Errorf("create default admin: %w", err)
	}

	s.log.Warn().
		Str("username", s.admin.Username).
		Msg("default admin created with well-known credentials; change the password before exposing this service")
	return nil
}

func (s *UserService) create(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	hash, err := s.hash(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return s.repo.Create(ctx, &domain.User{
		Username:     in.Username,
		PasswordHash: hash,
		Role:         in.Role,
		Department:   in.Department,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

// hash bcrypts password. Passwords bcrypt cannot take are bad input, not a
// server fault.
func (s *UserService) hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("%w: password longer than 72 bytes", domain.ErrInvalidUserCredentials)
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
