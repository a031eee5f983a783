package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/allegro-music/allegro/internal/core/domain"
)

// ContributorRepository serves performers, composers and songwriters. The
// three tables share one shape and differ only by name.
type ContributorRepository struct {
	db *DB
}

func NewContributorRepository(db *DB) *ContributorRepository {
	return &ContributorRepository{db: db}
}

func contributorTable(kind domain.ContributorKind) (string, error) {
	switch kind {
	case domain.Performer:
		return "performers", nil
	case domain.Composer:
		return "composers", nil
	case domain.Songwriter:
		return "songwriters", nil
	}
	return "", fmt.Errorf("%w: %d", domain.ErrInvalidArtistType, int(kind))
}

func (r *ContributorRepository) Create(ctx context.Context, c *domain.Contributor) (int32, error) {
	table, err := contributorTable(c.Kind)
	if err != nil {
		return 0, err
	}
	var id int32
	err = r.db.withConn(ctx, func(conn *pgxpool.Conn) error {
		return conn.QueryRow(ctx,
			fmt.Sprintf(`INSERT INTO %s (name, description) VALUES ($1, $2) RETURNING id`, table),
			c.Name, c.Description,
		).Scan(&id)
	})
	if err != nil {
		return 0, fmt.Errorf("insert into %s: %w", table, err)
	}
	return id, nil
}

func (r *ContributorRepository) SetImagePath(ctx context.Context, kind domain.ContributorKind, id int32, path string) error {
	table, err := contributorTable(kind)
	if err != nil {
		return err
	}
	return r.db.withConn(ctx, func(conn *pgxpool.Conn) error {
		tag, err := conn.Exec(ctx, fmt.Sprintf(`UPDATE %s SET image_path = $1 WHERE id = $2`, table), path, id)
		if err != nil {
			return fmt.Errorf("update %s image path: %w", table, err)
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

func (r *ContributorRepository) FindByID(ctx context.Context, kind domain.ContributorKind, id int32) (*domain.Contributor, error) {
	table, err := contributorTable(kind)
	if err != nil {
		return nil, err
	}
	c := domain.Contributor{Kind: kind}
	err = r.db.withConn(ctx, func(conn *pgxpool.Conn) error {
		return conn.QueryRow(ctx,
			fmt.Sprintf(`SELECT id, name, description, image_path FROM %s WHERE id = $1`, table), id,
		).Scan(&c.ID, &c.Name, &c.Description, &c.ImagePath)
	})
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find in %s: %w", table, err)
	}
	return &c, nil
}

func (r *ContributorRepository) List(ctx context.Context, kind domain.ContributorKind) ([]domain.Contributor, error) {
	table, err := contributorTable(kind)
	if err != nil {
		return nil, err
	}
	return r.query(ctx, kind, fmt.Sprintf(`SELECT id, name, description, image_path FROM %s ORDER BY id`, table))
}

// SearchByName matches name against a LIKE pattern, case-insensitively.
func (r *ContributorRepository) SearchByName(ctx context.Context, kind domain.ContributorKind, pattern string) ([]domain.Contributor, error) {
	table, err := contributorTable(kind)
	if err != nil {
		return nil, err
	}
	return r.query(ctx, kind,
		fmt.Sprintf(`SELECT id, name, description, image_path FROM %s WHERE name ILIKE $1 ORDER BY id`, table),
		pattern,
	)
}

func (r *ContributorRepository) query(ctx context.Context, kind domain.ContributorKind, sql string, args ...any) ([]domain.Contributor, error) {
	var out []domain.Contributor
	err := r.db.withConn(ctx, func(conn *pgxpool.Conn) error {
		rows, err := conn.Query(ctx, sql, args...)
		if err != nil {
			return err
		}
		out, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Contributor, error) {
			c := domain.Contributor{Kind: kind}
			err := row.Scan(&c.ID, &c.Name, &c.Description, &c.ImagePath)
			return c, err
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", kind, err)
	}
	return out, nil
}
