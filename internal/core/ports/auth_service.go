package ports

import (
	"context"

	"github.com/allegro-music/allegro/internal/core/domain"
)

// AddUserInput carries a user creation request. Token is ignored while the
// store has no users.
type AddUserInput struct {
	Username string
	Password string
	Token    string
}

// AddUserResult reports the outcome of a successful creation.
type AddUserResult struct {
	User *domain.User
	// Bootstrap is true when this was the first user and was made an admin.
	Bootstrap bool
}

// AuthService covers the credential store and the authorization gate.
type AuthService interface {
	AddUser(ctx context.Context, in AddUserInput) (*AddUserResult, error)
	// Login returns a session token. A still valid token is reused.
	Login(ctx context.Context, username, password string) (string, error)
	CountUsers(ctx context.Context) (int64, error)
	ResolveUser(ctx context.Context, token string) (*domain.User, error)
	IsAdmin(ctx context.Context, token string) (bool, error)
	// RequireAdmin returns the admin user behind token, or domain.ErrInvalidToken
	// or domain.ErrNotAdmin.
	RequireAdmin(ctx context.Context, token string) (*domain.User, error)
}
