package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/allegro-music/allegro/internal/core/domain"
	"github.com/allegro-music/allegro/internal/core/ports"
)

const pieceColumns = `id, name, movements, description`

type PieceRepository struct {
	db *DB
}

func NewPieceRepository(db *DB) *PieceRepository {
	return &PieceRepository{db: db}
}

func (r *PieceRepository) Create(ctx context.Context, p *domain.Piece) (int32, error) {
	var id int32
	err := r.db.withConn(ctx, func(conn *pgxpool.Conn) error {
		return conn.QueryRow(ctx,
			`INSERT INTO pieces (name, movements, description) VALUES ($1, $2, $3) RETURNING id`,
			p.Name, p.Movements, p.Description,
		).Scan(&id)
	})
	if err != nil {
		return 0, fmt.Errorf("insert piece: %w", err)
	}
	return id, nil
}

func (r *PieceRepository) FindByID(ctx context.Context, id int32) (*domain.Piece, error) {
	var p domain.Piece
	err := r.db.withConn(ctx, func(conn *pgxpool.Conn) error {
		return conn.QueryRow(ctx, `SELECT `+pieceColumns+` FROM pieces WHERE id = $1`, id).
			Scan(&p.ID, &p.Name, &p.Movements, &p.Description)
	})
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find piece: %w", err)
	}
	return &p, nil
}

func (r *PieceRepository) List(ctx context.Context) ([]domain.Piece, error) {
	return r.query(ctx, `SELECT `+pieceColumns+` FROM pieces ORDER BY id`)
}

func (r *PieceRepository) SearchByName(ctx context.Context, pattern string) ([]domain.Piece, error) {
	return r.query(ctx, `SELECT `+pieceColumns+` FROM pieces WHERE name ILIKE $1 ORDER BY id`, pattern)
}

func (r *PieceRepository) AddComposer(ctx context.Context, pieceID, composerID int32) error {
	return r.db.insertEdge(ctx, pieceComposers, pieceID, composerID)
}

func (r *PieceRepository) AddSongwriter(ctx context.Context, pieceID, songwriterID int32) error {
	return r.db.insertEdge(ctx, pieceSongwriters, pieceID, songwriterID)
}

func (r *PieceRepository) ComposerIDs(ctx context.Context, pieceIDs []int32) (ports.Edge, error) {
	return r.db.loadEdge(ctx, pieceComposers, pieceIDs)
}

func (r *PieceRepository) SongwriterIDs(ctx context.Context, pieceIDs []int32) (ports.Edge, error) {
	return r.db.loadEdge(ctx, pieceSongwriters, pieceIDs)
}

func (r *PieceRepository) query(ctx context.Context, sql string, args ...any) ([]domain.Piece, error) {
	var out []domain.Piece
	err := r.db.withConn(ctx, func(conn *pgxpool.Conn) error {
		rows, err := conn.Query(ctx, sql, args...)
		if err != nil {
			return err
		}
		out, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Piece, error) {
			var p domain.Piece
			err := row.Scan(&p.ID, &p.Name, &p.Movements, &p.Description)
			return p, err
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("query pieces: %w", err)
	}
	return out, nil
}
