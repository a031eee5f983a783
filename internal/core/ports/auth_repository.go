package ports

import (
	"context"
	"time"

	"github.com/allegro-music/allegro/internal/core/domain"
)

// UserRepository persists accounts and their session.
type UserRepository interface {
	Count(ctx context.Context) (int64, error)
	// Create inserts the user and returns it with its id.
	// Errors: domain.ErrUserExists when the username is taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByUsername errors with domain.ErrUserNotFound on a miss.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// FindBySessionToken errors with domain.ErrUserNotFound on a miss. It does
	// not check expiry.
	FindBySessionToken(ctx context.Context, token string) (*domain.User, error)
	// UpdateSession overwrites the stored token and its creation time.
	UpdateSession(ctx context.Context, username, token string, createdAt time.Time) error
}

// AdminRepository manages the admin set. Membership is a row per username.
type AdminRepository interface {
	IsAdmin(ctx context.Context, username string) (bool, error)
	Grant(ctx context.Context, username string) error
}

// LoginLimiter throttles repeated failed logins for one username.
type LoginLimiter interface {
	Allowed(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}
