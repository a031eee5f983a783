package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/allegro-music/allegro/internal/api/metrics"
	"github.com/allegro-music/allegro/internal/core/domain"
	"github.com/allegro-music/allegro/internal/core/ports"
)

// AuthService implements user creation, login and the admin check.
type AuthService struct {
	users      ports.UserRepository
	admins     ports.AdminRepository
	limiter    ports.LoginLimiter
	sessionTTL time.Duration
	now        func() time.Time
	log        zerolog.Logger
}

// AuthOption customises an AuthService.
type AuthOption func(*AuthService)

// WithLoginLimiter enables throttling of failed logins.
func WithLoginLimiter(l ports.LoginLimiter) AuthOption {
	return func(s *AuthService) {
		if l != nil {
			s.limiter = l
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) AuthOption {
	return func(s *AuthService) { s.now = now }
}

func NewAuthService(users ports.UserRepository, admins ports.AdminRepository, sessionTTL time.Duration, log zerolog.Logger, opts ...AuthOption) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = domain.DefaultSessionTTL
	}
	s := &AuthService{
		users:      users,
		admins:     admins,
		limiter:    noopLimiter{},
		sessionTTL: sessionTTL,
		now:        func() time.Time { return time.Now().UTC() },
		log:        log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddUser creates a user. The very first user needs no token and becomes an
// admin; every later user must be created by an admin.
func (s *AuthService) AddUser(ctx context.Context, in ports.AddUserInput) (*ports.AddUserResult, error) {
	bootstrap, err := s.authorizeUserCreation(ctx, in.Token)
	if err != nil {
		return nil, err
	}

	salt := NewSalt()
	user, err := s.users.Create(ctx, &domain.User{
		Username:     in.Username,
		PasswordHash: HashPassword(in.Password, salt),
		Salt:         salt,
	})
	if err != nil {
		return nil, err
	}

	if bootstrap {
		if err := s.admins.Grant(ctx, user.Username); err != nil {
			return nil, fmt.Errorf("grant bootstrap admin: %w", err)
		}
		s.log.Info().Str("username", user.Username).Msg("bootstrap admin created")
	} else {
		s.log.Info().Str("username", user.Username).Msg("user created")
	}
	metrics.UsersCreatedTotal.WithLabelValues(strconv.FormatBool(bootstrap)).Inc()

	return &ports.AddUserResult{User: user, Bootstrap: bootstrap}, nil
}

// authorizeUserCreation grants creation unconditionally while the store is
// empty (bootstrap) and otherwise requires an admin token.
func (s *AuthService) authorizeUserCreation(ctx context.Context, token string) (bool, error) {
	n, err := s.users.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	if n == 0 {
		return true, nil
	}
	if _, err := s.RequireAdmin(ctx, token); err != nil {
		metrics.AuthorizationDenialsTotal.WithLabelValues("add_user").Inc()
		return false, err
	}
	return false, nil
}

// Login checks the password and returns the session token, reusing the
// current one while it is still valid.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	allowed, err := s.limiter.Allowed(ctx, username)
	if err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("login limiter check failed, continuing")
	} else if !allowed {
		metrics.AuthAttemptsTotal.WithLabelValues("throttled").Inc()
		return "", domain.ErrTooManyAttempts
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.AuthAttemptsTotal.WithLabelValues("denied").Inc()
			return "", domain.ErrInvalidCredentials
		}
		metrics.AuthAttemptsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("login: %w", err)
	}

	if !VerifyPassword(password, user.Salt, user.PasswordHash) {
		if err := s.limiter.RecordFailure(ctx, username); err != nil {
			s.log.Warn().Err(err).Str("username", username).Msg("failed to record login failure")
		}
		metrics.AuthAttemptsTotal.WithLabelValues("denied").Inc()
		return "", domain.ErrInvalidCredentials
	}

	if err := s.limiter.Reset(ctx, username); err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("failed to reset login failures")
	}

	now := s.now()
	if user.HasValidSession(now, s.sessionTTL) {
		metrics.AuthAttemptsTotal.WithLabelValues("granted").Inc()
		return *user.SessionToken, nil
	}

	token := NewSessionToken()
	if err := s.users.UpdateSession(ctx, user.Username, token, now); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("issue session: %w", err)
	}
	metrics.AuthAttemptsTotal.WithLabelValues("granted").Inc()
	s.log.Debug().Str("username", user.Username).Msg("session issued")
	return token, nil
}

func (s *AuthService) CountUsers(ctx context.Context) (int64, error) {
	return s.users.Count(ctx)
}

// ResolveUser maps a token to its user. Unknown and expired tokens both yield
// domain.ErrInvalidToken.
func (s *AuthService) ResolveUser(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrInvalidToken
	}
	user, err := s.users.FindBySessionToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, fmt.Errorf("resolve token: %w", err)
	}
	if !user.HasValidSession(s.now(), s.sessionTTL) {
		return nil, domain.ErrInvalidToken
	}
	return user, nil
}

func (s *AuthService) RequireAdmin(ctx context.Context, token string) (*domain.User, error) {
	user, err := s.ResolveUser(ctx, token)
	if err != nil {
		return nil, err
	}
	ok, err := s.admins.IsAdmin(ctx, user.Username)
	if err != nil {
		return nil, fmt.Errorf("admin lookup: %w", err)
	}
	if !ok {
		return nil, domain.ErrNotAdmin
	}
	return user, nil
}

func (s *AuthService) IsAdmin(ctx context.Context, token string) (bool, error) {
	_, err := s.RequireAdmin(ctx, token)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, domain.ErrInvalidToken), errors.Is(err, domain.ErrNotAdmin):
		return false, nil
	default:
		return false, err
	}
}

type noopLimiter struct{}

func (noopLimiter) Allowed(context.Context, string) (bool, error) { return true, nil }
func (noopLimiter) RecordFailure(context.Context, string) error   { return nil }
func (noopLimiter) Reset(context.Context, string) error           { return nil }
