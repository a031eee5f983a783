package ports

import (
	"context"

	"github.com/allegro-music/allegro/internal/core/domain"
)

// AddContributorInput is the service DTO for a new performer, composer or songwriter.
type AddContributorInput struct {
	Kind        domain.ContributorKind
	Name        string
	Description *string
	HasImage    bool
	Token       string
}

type AddPieceInput struct {
	Name          string
	Movements     *int32
	Description   *string
	ComposerIDs   []int32
	SongwriterIDs []int32
	Token         string
}

type AddReleaseInput struct {
	Name         string
	Description  *string
	PerformerIDs []int32
	HasImage     bool
	Token        string
}

type AddRecordingInput struct {
	PieceID      int32
	ReleaseID    int32
	PerformerIDs []int32
	TrackNumber  int32
	Token        string
}

// AddResult is returned by every create. Path is the derived image or file
// path, empty when none was assigned.
type AddResult struct {
	ID   int32
	Path string
}

// CatalogService exposes catalog writes, reads and search. Writes and search
// fail with domain.ErrInvalidToken or domain.ErrNotAdmin before touching the
// store when the caller is not an admin.
type CatalogService interface {
	AddContributor(ctx context.Context, in AddContributorInput) (*AddResult, error)
	AddPiece(ctx context.Context, in AddPieceInput) (*AddResult, error)
	AddRelease(ctx context.Context, in AddReleaseInput) (*AddResult, error)
	AddRecording(ctx context.Context, in AddRecordingInput) (*AddResult, error)

	GetContributor(ctx context.Context, kind domain.ContributorKind, id int32) (*domain.Contributor, error)
	ListContributors(ctx context.Context, kind domain.ContributorKind) ([]domain.Contributor, error)
	GetPiece(ctx context.Context, id int32) (*domain.PieceView, error)
	ListPieces(ctx context.Context) ([]domain.PieceView, error)
	GetRelease(ctx context.Context, id int32) (*domain.ReleaseView, error)
	ListReleases(ctx context.Context) ([]domain.ReleaseView, error)
	GetRecording(ctx context.Context, id int32) (*domain.RecordingView, error)
	ListRecordings(ctx context.Context) ([]domain.RecordingView, error)

	SearchContributors(ctx context.Context, kind domain.ContributorKind, query, token string) ([]domain.Contributor, error)
	SearchPieces(ctx context.Context, query, token string) ([]domain.PieceView, error)
	SearchReleases(ctx context.Context, query, token string) ([]domain.ReleaseView, error)
	SearchRecordings(ctx context.Context, query, token string) ([]domain.RecordingView, error)
}
