package ports

import (
	"context"

	"github.com/allegro-music/allegro/internal/core/domain"
)

// Edge maps a parent id to the child ids found in one edge table.
type Edge map[int32][]int32

// ContributorRepository serves the three contributor tables, selected by kind.
type ContributorRepository interface {
	Create(ctx context.Context, c *domain.Contributor) (int32, error)
	SetImagePath(ctx context.Context, kind domain.ContributorKind, id int32, path string) error
	// FindByID errors with domain.ErrNotFound on a miss.
	FindByID(ctx context.Context, kind domain.ContributorKind, id int32) (*domain.Contributor, error)
	List(ctx context.Context, kind domain.ContributorKind) ([]domain.Contributor, error)
	SearchByName(ctx context.Context, kind domain.ContributorKind, pattern string) ([]domain.Contributor, error)
}

type PieceRepository interface {
	Create(ctx context.Context, p *domain.Piece) (int32, error)
	FindByID(ctx context.Context, id int32) (*domain.Piece, error)
	List(ctx context.Context) ([]domain.Piece, error)
	SearchByName(ctx context.Context, pattern string) ([]domain.Piece, error)

	AddComposer(ctx context.Context, pieceID, composerID int32) error
	AddSongwriter(ctx context.Context, pieceID, songwriterID int32) error
	ComposerIDs(ctx context.Context, pieceIDs []int32) (Edge, error)
	SongwriterIDs(ctx context.Context, pieceIDs []int32) (Edge, error)
}

type ReleaseRepository interface {
	Create(ctx context.Context, r *domain.Release) (int32, error)
	SetImagePath(ctx context.Context, id int32, path string) error
	FindByID(ctx context.Context, id int32) (*domain.Release, error)
	List(ctx context.Context) ([]domain.Release, error)
	SearchByName(ctx context.Context, pattern string) ([]domain.Release, error)

	AddPerformer(ctx context.Context, releaseID, performerID int32) error
	PerformerIDs(ctx context.Context, releaseIDs []int32) (Edge, error)
	// RecordingIDs groups recordings by the release they belong to.
	RecordingIDs(ctx context.Context, releaseIDs []int32) (Edge, error)
}

type RecordingRepository interface {
	Create(ctx context.Context, r *domain.Recording) (int32, error)
	SetFilePath(ctx context.Context, id int32, path string) error
	FindByID(ctx context.Context, id int32) (*domain.Recording, error)
	List(ctx context.Context) ([]domain.Recording, error)
	// SearchByPieceName matches against the denormalized piece name.
	SearchByPieceName(ctx context.Context, pattern string) ([]domain.Recording, error)

	AddPerformer(ctx context.Context, recordingID, performerID int32) error
	PerformerIDs(ctx context.Context, recordingIDs []int32) (Edge, error)
}
