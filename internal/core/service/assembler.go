package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/allegro-music/allegro/internal/api/metrics"
	"github.com/allegro-music/allegro/internal/core/domain"
	"github.com/allegro-music/allegro/internal/core/ports"
)

// Edge table names, used as metric labels and in log fields.
const (
	edgePieceComposers     = "piece_composers"
	edgePieceSongwriters   = "piece_songwriters"
	edgeReleasePerformers  = "release_performers"
	edgeReleaseRecordings  = "recordings"
	edgeRecordingPerformer = "recording_performers"
)

// Assembler turns base rows into views by attaching the ids found in their
// edge tables. Each edge table is read once per call regardless of how many
// rows are assembled.
type Assembler struct {
	pieces     ports.PieceRepository
	releases   ports.ReleaseRepository
	recordings ports.RecordingRepository
	logger     zerolog.Logger
}

func NewAssembler(pieces ports.PieceRepository, releases ports.ReleaseRepository, recordings ports.RecordingRepository, logger zerolog.Logger) *Assembler {
	return &Assembler{pieces: pieces, releases: releases, recordings: recordings, logger: logger}
}

// Pieces builds piece views in the order of rows.
func (a *Assembler) Pieces(ctx context.Context, rows []domain.Piece) []domain.PieceView {
	ids := make([]int32, len(rows))
	for i, p := range rows {
		ids[i] = p.ID
	}
	composers := a.loadEdge(ctx, edgePieceComposers, ids, a.pieces.ComposerIDs)
	songwriters := a.loadEdge(ctx, edgePieceSongwriters, ids, a.pieces.SongwriterIDs)

	views := make([]domain.PieceView, len(rows))
	for i, p := range rows {
		views[i] = domain.PieceView{
			Piece:         p,
			ComposerIDs:   present(composers[p.ID]),
			SongwriterIDs: absentWhenEmpty(songwriters[p.ID]),
		}
	}
	return views
}

// Releases builds release views in the order of rows.
func (a *Assembler) Releases(ctx context.Context, rows []domain.Release) []domain.ReleaseView {
	ids := make([]int32, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	performers := a.loadEdge(ctx, edgeReleasePerformers, ids, a.releases.PerformerIDs)
	recordings := a.loadEdge(ctx, edgeReleaseRecordings, ids, a.releases.RecordingIDs)

	views := make([]domain.ReleaseView, len(rows))
	for i, r := range rows {
		views[i] = domain.ReleaseView{
			Release:      r,
			PerformerIDs: present(performers[r.ID]),
			RecordingIDs: absentWhenEmpty(recordings[r.ID]),
		}
	}
	return views
}

// Recordings builds recording views in the order of rows. An empty performer
// list stays an empty list.
func (a *Assembler) Recordings(ctx context.Context, rows []domain.Recording) []domain.RecordingView {
	ids := make([]int32, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	performers := a.loadEdge(ctx, edgeRecordingPerformer, ids, a.recordings.PerformerIDs)

	views := make([]domain.RecordingView, len(rows))
	for i, r := range rows {
		views[i] = domain.RecordingView{
			Recording:    r,
			PerformerIDs: present(performers[r.ID]),
		}
	}
	return views
}

// loadEdge never fails: a lookup error is logged and read as no edges.
func (a *Assembler) loadEdge(ctx context.Context, table string, parents []int32, load func(context.Context, []int32) (ports.Edge, error)) ports.Edge {
	if len(parents) == 0 {
		return ports.Edge{}
	}
	edge, err := load(ctx, parents)
	if err != nil {
		metrics.EdgeReadFailuresTotal.WithLabelValues(table).Inc()
		a.logger.Warn().Err(err).Str("edge", table).Int("parents", len(parents)).Msg("edge lookup failed, assembling without it")
		return ports.Edge{}
	}
	if edge == nil {
		return ports.Edge{}
	}
	return edge
}

func present(ids []int32) []int32 {
	if ids == nil {
		return []int32{}
	}
	return ids
}

func absentWhenEmpty(ids []int32) []int32 {
	if len(ids) == 0 {
		return nil
	}
	return ids
}
