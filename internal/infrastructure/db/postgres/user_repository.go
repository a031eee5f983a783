package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/allegro-music/allegro/internal/core/domain"
)

const userColumns = `id, username, password_hash, salt, session, created_at`

type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.withConn(ctx, func(conn *pgxpool.Conn) error {
		return conn.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	})
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	created := *user
	err := r.db.withConn(ctx, func(conn *pgxpool.Conn) error {
		return conn.QueryRow(ctx,
			`INSERT INTO users (username, password_hash, salt) VALUES ($1, $2, $3) RETURNING id`,
			user.Username, user.PasswordHash, user.Salt,
		).Scan(&created.ID)
	})
	if err != nil {
		if hasCode(err, uniqueViolation) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &created, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

func (r *UserRepository) FindBySessionToken(ctx context.Context, token string) (*domain.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE session = $1`, token)
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var u domain.User
	err := r.db.withConn(ctx, func(conn *pgxpool.Conn) error {
		return conn.QueryRow(ctx, query, arg).Scan(
			&u.ID, &u.Username, &u.PasswordHash, &u.Salt, &u.SessionToken, &u.SessionCreatedAt,
		)
	})
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

// UpdateSession overwrites the session. Concurrent logins race; the last
// write wins.
func (r *UserRepository) UpdateSession(ctx context.Context, username, token string, createdAt time.Time) error {
	return r.db.withConn(ctx, func(conn *pgxpool.Conn) error {
		tag, err := conn.Exec(ctx,
			`UPDATE users SET session = $1, created_at = $2 WHERE username = $3`,
			token, createdAt, username,
		)
		if err != nil {
			return fmt.Errorf("update session: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrUserNotFound
		}
		return nil
	})
}

// AdminRepository stores the admin set, one row per username.
type AdminRepository struct {
	db *DB
}

func NewAdminRepository(db *DB) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) IsAdmin(ctx context.Context, username string) (bool, error) {
	var ok bool
	err := r.db.withConn(ctx, func(conn *pgxpool.Conn) error {
		return conn.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM admin WHERE username = $1)`, username,
		).Scan(&ok)
	})
	if err != nil {
		return false, fmt.Errorf("admin lookup: %w", err)
	}
	return ok, nil
}

// Grant is idempotent.
func (r *AdminRepository) Grant(ctx context.Context, username string) error {
	return r.db.withConn(ctx, func(conn *pgxpool.Conn) error {
		_, err := conn.Exec(ctx,
			`INSERT INTO admin (username) VALUES ($1) ON CONFLICT (username) DO NOTHING`, username,
		)
		if err != nil {
			return fmt.Errorf("grant admin: %w", err)
		}
		return nil
	})
}
