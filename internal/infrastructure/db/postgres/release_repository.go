package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/allegro-music/allegro/internal/core/domain"
	"github.com/allegro-music/allegro/internal/core/ports"
)

const releaseColumns = `id, name, description, image_path`

type ReleaseRepository struct {
	db *DB
}

func NewReleaseRepository(db *DB) *ReleaseRepository {
	return &ReleaseRepository{db: db}
}

func (r *ReleaseRepository) Create(ctx context.Context, rel *domain.Release) (int32, error) {
	var id int32
	err := r.db.withConn(ctx, func(conn *pgxpool.Conn) error {
		return conn.QueryRow(ctx,
			`INSERT INTO releases (name, description) VALUES ($1, $2) RETURNING id`,
			rel.Name, rel.Description,
		).Scan(&id)
	})
	if err != nil {
		return 0, fmt.Errorf("insert release: %w", err)
	}
	return id, nil
}

func (r *ReleaseRepository) SetImagePath(ctx context.Context, id int32, path string) error {
	return r.db.withConn(ctx, func(conn *pgxpool.Conn) error {
		tag, err := conn.Exec(ctx, `UPDATE releases SET image_path = $1 WHERE id = $2`, path, id)
		if err != nil {
			return fmt.Errorf("update release image path: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

func (r *ReleaseRepository) FindByID(ctx context.Context, id int32) (*domain.Release, error) {
	var rel domain.Release
	err := r.db.withConn(ctx, func(conn *pgxpool.Conn) error {
		return conn.QueryRow(ctx, `SELECT `+releaseColumns+` FROM releases WHERE id = $1`, id).
			Scan(&rel.ID, &rel.Name, &rel.Description, &rel.ImagePath)
	})
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find release: %w", err)
	}
	return &rel, nil
}

func (r *ReleaseRepository) List(ctx context.Context) ([]domain.Release, error) {
	return r.query(ctx, `SELECT `+releaseColumns+` FROM releases ORDER BY id`)
}

func (r *ReleaseRepository) SearchByName(ctx context.Context, pattern string) ([]domain.Release, error) {
	return r.query(ctx, `SELECT `+releaseColumns+` FROM releases WHERE name ILIKE $1 ORDER BY id`, pattern)
}

func (r *ReleaseRepository) AddPerformer(ctx context.Context, releaseID, performerID int32) error {
	return r.db.insertEdge(ctx, releasePerformers, releaseID, performerID)
}

func (r *ReleaseRepository) PerformerIDs(ctx context.Context, releaseIDs []int32) (ports.Edge, error) {
	return r.db.loadEdge(ctx, releasePerformers, releaseIDs)
}

func (r *ReleaseRepository) RecordingIDs(ctx context.Context, releaseIDs []int32) (ports.Edge, error) {
	return r.db.loadEdge(ctx, releaseRecordings, releaseIDs)
}

func (r *ReleaseRepository) query(ctx context.Context, sql string, args ...any) ([]domain.Release, error) {
	var out []domain.Release
	err := r.db.withConn(ctx, func(conn *pgxpool.Conn) error {
		rows, err := conn.Query(ctx, sql, args...)
		if err != nil {
			return err
		}
		out, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Release, error) {
			var rel domain.Release
			err := row.Scan(&rel.ID, &rel.Name, &rel.Description, &rel.ImagePath)
			return rel, err
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("query releases: %w", err)
	}
	return out, nil
}
