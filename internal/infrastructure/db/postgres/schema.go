package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema is applied in order. Every statement is idempotent; there is no
// versioning.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            SERIAL PRIMARY KEY,
		username      VARCHAR(50)  NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		salt          VARCHAR(255) NOT NULL,
		session       VARCHAR(255),
		created_at    TIMESTAMPTZ
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS users_session_idx ON users (session)`,
	`CREATE TABLE IF NOT EXISTS admin (
		id       SERIAL PRIMARY KEY,
		username VARCHAR(50) NOT NULL UNIQUE REFERENCES users (username)
	)`,
	`CREATE TABLE IF NOT EXISTS performers (
		id          SERIAL PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT,
		image_path  TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS composers (
		id          SERIAL PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT,
		image_path  TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS songwriters (
		id          SERIAL PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT,
		image_path  TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS pieces (
		id          SERIAL PRIMARY KEY,
		name        TEXT NOT NULL,
		movements   INTEGER,
		description TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS piece_composers (
		piece_id    INTEGER NOT NULL REFERENCES pieces (id),
		composer_id INTEGER NOT NULL REFERENCES composers (id),
		PRIMARY KEY (piece_id, composer_id)
	)`,
	`CREATE TABLE IF NOT EXISTS piece_songwriters (
		piece_id      INTEGER NOT NULL REFERENCES pieces (id),
		songwriter_id INTEGER NOT NULL REFERENCES songwriters (id),
		PRIMARY KEY (piece_id, songwriter_id)
	)`,
	`CREATE TABLE IF NOT EXISTS releases (
		id          SERIAL PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT,
		image_path  TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS release_performers (
		release_id   INTEGER NOT NULL REFERENCES releases (id),
		performer_id INTEGER NOT NULL REFERENCES performers (id),
		PRIMARY KEY (release_id, performer_id)
	)`,
	`CREATE TABLE IF NOT EXISTS recordings (
		id           SERIAL PRIMARY KEY,
		piece_name   TEXT    NOT NULL,
		piece_id     INTEGER NOT NULL REFERENCES pieces (id),
		release_id   INTEGER NOT NULL REFERENCES releases (id),
		track_number INTEGER NOT NULL,
		file_path    TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS recordings_release_idx ON recordings (release_id)`,
	`CREATE TABLE IF NOT EXISTS recording_performers (
		recording_id INTEGER NOT NULL REFERENCES recordings (id),
		performer_id INTEGER NOT NULL REFERENCES performers (id),
		PRIMARY KEY (recording_id, performer_id)
	)`,
}

// EnsureSchema creates any missing table or index.
func (db *DB) EnsureSchema(ctx context.Context) error {
	return db.withConn(ctx, func(conn *pgxpool.Conn) error {
		for _, stmt := range schema {
			if _, err := conn.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("ensure schema: %w", err)
			}
		}
		db.logger.Info().Int("statements", len(schema)).Msg("schema ensured")
		return nil
	})
}
