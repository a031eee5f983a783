package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/allegro-music/allegro/internal/core/ports"
)

// edgeTable names a many-to-many table and its two id columns.
type edgeTable struct {
	name   string
	parent string
	child  string
}

var (
	pieceComposers      = edgeTable{name: "piece_composers", parent: "piece_id", child: "composer_id"}
	pieceSongwriters    = edgeTable{name: "piece_songwriters", parent: "piece_id", child: "songwriter_id"}
	releasePerformers   = edgeTable{name: "release_performers", parent: "release_id", child: "performer_id"}
	recordingPerformers = edgeTable{name: "recording_performers", parent: "recording_id", child: "performer_id"}

	// releaseRecordings reads the recordings of a release from the
	// recordings table itself.
	releaseRecordings = edgeTable{name: "recordings", parent: "release_id", child: "id"}
)

func (t edgeTable) insertSQL() string {
	return fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`, t.name, t.parent, t.child)
}

func (t edgeTable) selectSQL() string {
	return fmt.Sprintf(`SELECT %[2]s, %[3]s FROM %[1]s WHERE %[2]s = ANY($1) ORDER BY %[2]s, %[3]s`, t.name, t.parent, t.child)
}

// insertEdge writes one pair. Duplicate and dangling pairs come back as
// errors for the caller to skip.
func (db *DB) insertEdge(ctx context.Context, t edgeTable, parent, child int32) error {
	return db.withConn(ctx, func(conn *pgxpool.Conn) error {
		_, err := conn.Exec(ctx, t.insertSQL(), parent, child)
		switch {
		case err == nil:
			return nil
		case hasCode(err, uniqueViolation):
			return fmt.Errorf("%s: pair (%d, %d) already exists: %w", t.name, parent, child, err)
		case hasCode(err, foreignKeyViolation):
			return fmt.Errorf("%s: pair (%d, %d) references a missing row: %w", t.name, parent, child, err)
		default:
			return fmt.Errorf("%s: insert: %w", t.name, err)
		}
	})
}

// loadEdge reads the children of every parent in one query.
func (db *DB) loadEdge(ctx context.Context, t edgeTable, parents []int32) (ports.Edge, error) {
	edge := ports.Edge{}
	if len(parents) == 0 {
		return edge, nil
	}
	err := db.withConn(ctx, func(conn *pgxpool.Conn) error {
		rows, err := conn.Query(ctx, t.selectSQL(), parents)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var parent, child int32
			if err := rows.Scan(&parent, &child); err != nil {
				return err
			}
			edge[parent] = append(edge[parent], child)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("%s: load: %w", t.name, err)
	}
	return edge, nil
}
