package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/teamhub/portal/internal/core/domain"
	"github.com/teamhub/portal/internal/core/ports"
)

// AuthService implements credential verification and current-user resolution.
type AuthService struct {
	repo ports.UserRepository
}

func NewAuthService(repo ports.UserRepository) *AuthService {
	return &AuthService{repo: repo}
}

// HashPassword derives a bcrypt hash suitable for storage. The output embeds
// the algorithm, cost, and a random salt, so two calls on the same input
// produce different hashes that both verify.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Login checks the submitted credentials against the stored account. An
// unknown username and a wrong password both collapse into
// ErrInvalidCredentials so that responses never reveal whether an account
// exists. A stored hash that bcrypt cannot parse also fails verification
// rather than surfacing as a server error.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}

// ResolveUser materialises the full account record for a session's username
// claim. The claim itself is trusted (sessions live server-side); the lookup
// exists only to supply fields the session does not carry. An empty username
// means no session claim and yields ErrNoSession without touching the store.
func (s *AuthService) ResolveUser(ctx context.Context, username string) (*domain.User, error) {
	if username == "" {
		return nil, domain.ErrNoSession
	}
	return s.repo.FindByUsername(ctx, username)
}
