package ports

import (
	"context"

	"github.com/teamhub/portal/internal/core/domain"
)

// AuthService verifies credentials and resolves the account behind a session.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*domain.User, error)
	ResolveUser(ctx context.Context, username string) (*domain.User, error)
}
