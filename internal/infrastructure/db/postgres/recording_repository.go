package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/allegro-music/allegro/internal/core/domain"
	"github.com/allegro-music/allegro/internal/core/ports"
)

const recordingColumns = `id, piece_name, piece_id, release_id, track_number, file_path`

type RecordingRepository struct {
	db *DB
}

func NewRecordingRepository(db *DB) *RecordingRepository {
	return &RecordingRepository{db: db}
}

func (r *RecordingRepository) Create(ctx context.Context, rec *domain.Recording) (int32, error) {
	var id int32
	err := r.db.withConn(ctx, func(conn *pgxpool.Conn) error {
		return conn.QueryRow(ctx,
			`INSERT INTO recordings (piece_name, piece_id, release_id, track_number)
			 VALUES ($1, $2, $3, $4) RETURNING id`,
			rec.PieceName, rec.PieceID, rec.ReleaseID, rec.TrackNumber,
		).Scan(&id)
	})
	if err != nil {
		return 0, fmt.Errorf("insert recording: %w", err)
	}
	return id, nil
}

func (r *RecordingRepository) SetFilePath(ctx context.Context, id int32, path string) error {
	return r.db.withConn(ctx, func(conn *pgxpool.Conn) error {
		tag, err := conn.Exec(ctx, `UPDATE recordings SET file_path = $1 WHERE id = $2`, path, id)
		if err != nil {
			return fmt.Errorf("update recording file path: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

func (r *RecordingRepository) FindByID(ctx context.Context, id int32) (*domain.Recording, error) {
	var rec domain.Recording
	err := r.db.withConn(ctx, func(conn *pgxpool.Conn) error {
		return conn.QueryRow(ctx, `SELECT `+recordingColumns+` FROM recordings WHERE id = $1`, id).
			Scan(&rec.ID, &rec.PieceName, &rec.PieceID, &rec.ReleaseID, &rec.TrackNumber, &rec.FilePath)
	})
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find recording: %w", err)
	}
	return &rec, nil
}

func (r *RecordingRepository) List(ctx context.Context) ([]domain.Recording, error) {
	return r.query(ctx, `SELECT `+recordingColumns+` FROM recordings ORDER BY id`)
}

func (r *RecordingRepository) SearchByPieceName(ctx context.Context, pattern string) ([]domain.Recording, error) {
	return r.query(ctx, `SELECT `+recordingColumns+` FROM recordings WHERE piece_name ILIKE $1 ORDER BY id`, pattern)
}

func (r *RecordingRepository) AddPerformer(ctx context.Context, recordingID, performerID int32) error {
	return r.db.insertEdge(ctx, recordingPerformers, recordingID, performerID)
}

func (r *RecordingRepository) PerformerIDs(ctx context.Context, recordingIDs []int32) (ports.Edge, error) {
	return r.db.loadEdge(ctx, recordingPerformers, recordingIDs)
}

func (r *RecordingRepository) query(ctx context.Context, sql string, args ...any) ([]domain.Recording, error) {
	var out []domain.Recording
	err := r.db.withConn(ctx, func(conn *pgxpool.Conn) error {
		rows, err := conn.Query(ctx, sql, args...)
		if err != nil {
			return err
		}
		out, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Recording, error) {
			var rec domain.Recording
			err := row.Scan(&rec.ID, &rec.PieceName, &rec.PieceID, &rec.ReleaseID, &rec.TrackNumber, &rec.FilePath)
			return rec, err
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("query recordings: %w", err)
	}
	return out, nil
}
