package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/allegro-music/allegro/internal/api/metrics"
	"github.com/allegro-music/allegro/internal/core/domain"
	"github.com/allegro-music/allegro/internal/core/ports"
)

// CatalogService implements catalog writes, reads and search on top of the
// entity repositories. Writes are not transactional: the base row is inserted
// first and each edge row on its own, so a create may partially succeed.
type CatalogService struct {
	auth         ports.AuthService
	contributors ports.ContributorRepository
	pieces       ports.PieceRepository
	releases     ports.ReleaseRepository
	recordings   ports.RecordingRepository
	assembler    *Assembler
	audit        ports.AuditPublisher
	now          func() time.Time
	logger       zerolog.Logger
}

// CatalogRepositories groups the repositories the catalog reads and writes.
type CatalogRepositories struct {
	Contributors ports.ContributorRepository
	Pieces       ports.PieceRepository
	Releases     ports.ReleaseRepository
	Recordings   ports.RecordingRepository
}

// NewCatalogService wires the service. audit may be nil, in which case no
// events are published.
func NewCatalogService(auth ports.AuthService, repos CatalogRepositories, audit ports.AuditPublisher, logger zerolog.Logger) *CatalogService {
	if audit == nil {
		audit = noopPublisher{}
	}
	return &CatalogService{
		auth:         auth,
		contributors: repos.Contributors,
		pieces:       repos.Pieces,
		releases:     repos.Releases,
		recordings:   repos.Recordings,
		assembler:    NewAssembler(repos.Pieces, repos.Releases, repos.Recordings, logger),
		audit:        audit,
		now:          func() time.Time { return time.Now().UTC() },
		logger:       logger,
	}
}

// ── Writes ────────────────────────────────────────────────────────────────────

func (s *CatalogService) AddContributor(ctx context.Context, in ports.AddContributorInput) (*ports.AddResult, error) {
	if !in.Kind.Valid() {
		return nil, domain.ErrInvalidArtistType
	}
	actor, err := s.authorize(ctx, in.Token, "add_"+in.Kind.String())
	if err != nil {
		return nil, err
	}

	id, err := s.contributors.Create(ctx, &domain.Contributor{
		Kind:        in.Kind,
		Name:        in.Name,
		Description: in.Description,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", in.Kind, err)
	}

	var path string
	if in.HasImage {
		path = domain.DerivedPath(in.Kind.String(), id)
		if err := s.contributors.SetImagePath(ctx, in.Kind, id, path); err != nil {
			return nil, fmt.Errorf("set %s image path: %w", in.Kind, err)
		}
	}

	s.recordWrite(in.Kind.String(), id, actor, path, 0)
	return &ports.AddResult{ID: id, Path: path}, nil
}

func (s *CatalogService) AddPiece(ctx context.Context, in ports.AddPieceInput) (*ports.AddResult, error) {
	actor, err := s.authorize(ctx, in.Token, "add_piece")
	if err != nil {
		return nil, err
	}

	id, err := s.pieces.Create(ctx, &domain.Piece{
		Name:        in.Name,
		Movements:   in.Movements,
		Description: in.Description,
	})
	if err != nil {
		return nil, fmt.Errorf("create piece: %w", err)
	}

	failures := s.link(ctx, edgePieceComposers, id, in.ComposerIDs, s.pieces.AddComposer)
	failures += s.link(ctx, edgePieceSongwriters, id, in.SongwriterIDs, s.pieces.AddSongwriter)

	s.recordWrite("piece", id, actor, "", failures)
	return &ports.AddResult{ID: id}, nil
}

func (s *CatalogService) AddRelease(ctx context.Context, in ports.AddReleaseInput) (*ports.AddResult, error) {
	actor, err := s.authorize(ctx, in.Token, "add_release")
	if err != nil {
		return nil, err
	}

	id, err := s.releases.Create(ctx, &domain.Release{
		Name:        in.Name,
		Description: in.Description,
	})
	if err != nil {
		return nil, fmt.Errorf("create release: %w", err)
	}

	var path string
	if in.HasImage {
		path = domain.DerivedPath(domain.ReleasePathKind, id)
		if err := s.releases.SetImagePath(ctx, id, path); err != nil {
			return nil, fmt.Errorf("set release image path: %w", err)
		}
	}

	failures := s.link(ctx, edgeReleasePerformers, id, in.PerformerIDs, s.releases.AddPerformer)

	s.recordWrite(domain.ReleasePathKind, id, actor, path, failures)
	return &ports.AddResult{ID: id, Path: path}, nil
}

// AddRecording copies the piece name onto the recording and always assigns
// the file path.
func (s *CatalogService) AddRecording(ctx context.Context, in ports.AddRecordingInput) (*ports.AddResult, error) {
	actor, err := s.authorize(ctx, in.Token, "add_recording")
	if err != nil {
		return nil, err
	}

	piece, err := s.pieces.FindByID(ctx, in.PieceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrPieceNotFound
		}
		return nil, fmt.Errorf("find piece %d: %w", in.PieceID, err)
	}

	id, err := s.recordings.Create(ctx, &domain.Recording{
		PieceName:   piece.Name,
		PieceID:     piece.ID,
		ReleaseID:   in.ReleaseID,
		TrackNumber: in.TrackNumber,
	})
	if err != nil {
		return nil, fmt.Errorf("create recording: %w", err)
	}

	path := domain.DerivedPath(domain.RecordingPathKind, id)
	if err := s.recordings.SetFilePath(ctx, id, path); err != nil {
		return nil, fmt.Errorf("set recording file path: %w", err)
	}

	failures := s.link(ctx, edgeRecordingPerformer, id, in.PerformerIDs, s.recordings.AddPerformer)

	s.recordWrite(domain.RecordingPathKind, id, actor, path, failures)
	return &ports.AddResult{ID: id, Path: path}, nil
}

// ── Reads ─────────────────────────────────────────────────────────────────────

func (s *CatalogService) GetContributor(ctx context.Context, kind domain.ContributorKind, id int32) (*domain.Contributor, error) {
	if !kind.Valid() {
		return nil, domain.ErrInvalidArtistType
	}
	return s.contributors.FindByID(ctx, kind, id)
}

func (s *CatalogService) ListContributors(ctx context.Context, kind domain.ContributorKind) ([]domain.Contributor, error) {
	if !kind.Valid() {
		return nil, domain.ErrInvalidArtistType
	}
	return s.contributors.List(ctx, kind)
}

func (s *CatalogService) GetPiece(ctx context.Context, id int32) (*domain.PieceView, error) {
	p, err := s.pieces.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := s.assembler.Pieces(ctx, []domain.Piece{*p})[0]
	return &view, nil
}

func (s *CatalogService) ListPieces(ctx context.Context) ([]domain.PieceView, error) {
	rows, err := s.pieces.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.assembler.Pieces(ctx, rows), nil
}

func (s *CatalogService) GetRelease(ctx context.Context, id int32) (*domain.ReleaseView, error) {
	r, err := s.releases.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := s.assembler.Releases(ctx, []domain.Release{*r})[0]
	return &view, nil
}

func (s *CatalogService) ListReleases(ctx context.Context) ([]domain.ReleaseView, error) {
	rows, err := s.releases.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.assembler.Releases(ctx, rows), nil
}

func (s *CatalogService) GetRecording(ctx context.Context, id int32) (*domain.RecordingView, error) {
	r, err := s.recordings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := s.assembler.Recordings(ctx, []domain.Recording{*r})[0]
	return &view, nil
}

func (s *CatalogService) ListRecordings(ctx context.Context) ([]domain.RecordingView, error) {
	rows, err := s.recordings.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.assembler.Recordings(ctx, rows), nil
}

// ── Search ────────────────────────────────────────────────────────────────────

func (s *CatalogService) SearchContributors(ctx context.Context, kind domain.ContributorKind, query, token string) ([]domain.Contributor, error) {
	if !kind.Valid() {
		return nil, domain.ErrInvalidArtistType
	}
	if _, err := s.authorize(ctx, token, "search_"+kind.String()); err != nil {
		return nil, err
	}
	metrics.SearchRequestsTotal.WithLabelValues(kind.String()).Inc()
	return s.contributors.SearchByName(ctx, kind, domain.SearchPattern(query))
}

func (s *CatalogService) SearchPieces(ctx context.Context, query, token string) ([]domain.PieceView, error) {
	if _, err := s.authorize(ctx, token, "search_piece"); err != nil {
		return nil, err
	}
	metrics.SearchRequestsTotal.WithLabelValues("piece").Inc()
	rows, err := s.pieces.SearchByName(ctx, domain.SearchPattern(query))
	if err != nil {
		return nil, err
	}
	return s.assembler.Pieces(ctx, rows), nil
}

func (s *CatalogService) SearchReleases(ctx context.Context, query, token string) ([]domain.ReleaseView, error) {
	if _, err := s.authorize(ctx, token, "search_release"); err != nil {
		return nil, err
	}
	metrics.SearchRequestsTotal.WithLabelValues(domain.ReleasePathKind).Inc()
	rows, err := s.releases.SearchByName(ctx, domain.SearchPattern(query))
	if err != nil {
		return nil, err
	}
	return s.assembler.Releases(ctx, rows), nil
}

// SearchRecordings matches against the piece name stored on each recording.
func (s *CatalogService) SearchRecordings(ctx context.Context, query, token string) ([]domain.RecordingView, error) {
	if _, err := s.authorize(ctx, token, "search_recording"); err != nil {
		return nil, err
	}
	metrics.SearchRequestsTotal.WithLabelValues(domain.RecordingPathKind).Inc()
	rows, err := s.recordings.SearchByPieceName(ctx, domain.SearchPattern(query))
	if err != nil {
		return nil, err
	}
	return s.assembler.Recordings(ctx, rows), nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// authorize returns the username of the admin behind token.
func (s *CatalogService) authorize(ctx context.Context, token, operation string) (string, error) {
	user, err := s.auth.RequireAdmin(ctx, token)
	if err != nil {
		if domain.IsAuthorization(err) {
			metrics.AuthorizationDenialsTotal.WithLabelValues(operation).Inc()
			s.logger.Debug().Str("operation", operation).Err(err).Msg("request refused")
		}
		return "", err
	}
	return user.Username, nil
}

// link inserts one edge row per child and returns how many inserts failed.
// Failed inserts are skipped.
func (s *CatalogService) link(ctx context.Context, table string, parent int32, children []int32, insert func(context.Context, int32, int32) error) int {
	failures := 0
	for _, child := range children {
		if err := insert(ctx, parent, child); err != nil {
			failures++
			metrics.EdgeWriteFailuresTotal.WithLabelValues(table).Inc()
			s.logger.Warn().Err(err).Str("edge", table).Int32("parent_id", parent).Int32("child_id", child).Msg("edge insert failed, skipping")
		}
	}
	return failures
}

func (s *CatalogService) recordWrite(entity string, id int32, actor, path string, edgeFailures int) {
	metrics.CatalogWritesTotal.WithLabelValues(entity).Inc()
	s.logger.Info().Str("entity", entity).Int32("id", id).Str("actor", actor).Int("edge_failures", edgeFailures).Msg("catalog entity created")
	s.audit.Publish(domain.CatalogEvent{
		Entity:       entity,
		EntityID:     id,
		Action:       "create",
		Actor:        actor,
		Path:         path,
		EdgeFailures: edgeFailures,
		OccurredAt:   s.now(),
	})
}

type noopPublisher struct{}

func (noopPublisher) Publish(domain.CatalogEvent) {}
