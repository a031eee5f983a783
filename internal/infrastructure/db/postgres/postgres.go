package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const (
	defaultAcquireTimeout = 5 * time.Second
	defaultMaxRetries     = 5
	defaultRetryDelay     = time.Second
	pingTimeout           = 5 * time.Second

	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// Config captures the settings for the connection pool.
type Config struct {
	URL            string
	MaxConns       int32
	AcquireTimeout time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
}

// DB wraps the pool. Every repository call checks out one connection for its
// duration and returns it on every path.
type DB struct {
	pool           *pgxpool.Pool
	acquireTimeout time.Duration
	logger         zerolog.Logger
}

// Connect builds the pool and retries with exponential backoff until the
// database answers a ping.
func Connect(ctx context.Context, cfg Config, logger zerolog.Logger) (*DB, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse config: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.AcquireTimeout <= 0 {
		cfg.AcquireTimeout = defaultAcquireTimeout
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = defaultRetryDelay
	}

	var lastErr error
	for attempt := 1; attempt <= cfg.MaxRetries; attempt++ {
		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err == nil {
			pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
			err = pool.Ping(pingCtx)
			cancel()
			if err == nil {
				logger.Info().Int("attempt", attempt).Int32("max_conns", poolCfg.MaxConns).Msg("postgres connected")
				return &DB{pool: pool, acquireTimeout: cfg.AcquireTimeout, logger: logger}, nil
			}
			pool.Close()
		}
		lastErr = err
		logger.Warn().Err(err).Int("attempt", attempt).Int("max_retries", cfg.MaxRetries).Msg("postgres connection attempt failed")

		if attempt < cfg.MaxRetries {
			delay := cfg.RetryDelay * time.Duration(1<<uint(attempt-1))
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, fmt.Errorf("postgres: connect cancelled: %w", ctx.Err())
			}
		}
	}
	return nil, fmt.Errorf("postgres: failed to connect after %d attempts: %w", cfg.MaxRetries, lastErr)
}

// NewDB wraps an existing pool.
func NewDB(pool *pgxpool.Pool, acquireTimeout time.Duration, logger zerolog.Logger) *DB {
	if acquireTimeout <= 0 {
		acquireTimeout = defaultAcquireTimeout
	}
	return &DB{pool: pool, acquireTimeout: acquireTimeout, logger: logger}
}

// withConn checks out a connection under the acquire timeout, runs fn and
// releases the connection.
func (db *DB) withConn(ctx context.Context, fn func(conn *pgxpool.Conn) error) error {
	acquireCtx, cancel := context.WithTimeout(ctx, db.acquireTimeout)
	conn, err := db.pool.Acquire(acquireCtx)
	cancel()
	if err != nil {
		return fmt.Errorf("postgres: acquire connection: %w", err)
	}
	defer conn.Release()
	return fn(conn)
}

func (db *DB) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.pool.Ping(pingCtx); err != nil {
		return fmt.Errorf("postgres ping: %w", err)
	}
	return nil
}

func (db *DB) Close() {
	db.pool.Close()
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
