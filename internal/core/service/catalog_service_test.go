package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/allegro-music/allegro/internal/core/domain"
	"github.com/allegro-music/allegro/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory catalog store
// ---------------------------------------------------------------------------

type edgeRow struct{ parent, child int32 }

type memCatalog struct {
	nextID       int32
	contributors map[domain.ContributorKind][]domain.Contributor
	pieces       []domain.Piece
	releases     []domain.Release
	recordings   []domain.Recording
	edges        map[string][]edgeRow
	edgeReadErr  map[string]error
	listErr      error
}

func newMemCatalog() *memCatalog {
	return &memCatalog{
		contributors: make(map[domain.ContributorKind][]domain.Contributor),
		edges:        make(map[string][]edgeRow),
		edgeReadErr:  make(map[string]error),
	}
}

func (m *memCatalog) id() int32 {
	m.nextID++
	return m.nextID
}

// insertEdge rejects duplicate pairs the way a composite primary key does.
func (m *memCatalog) insertEdge(table string, parent, child int32) error {
	for _, e := range m.edges[table] {
		if e.parent == parent && e.child == child {
			return fmt.Errorf("duplicate key in %s", table)
		}
	}
	m.edges[table] = append(m.edges[table], edgeRow{parent, child})
	return nil
}

func (m *memCatalog) loadEdge(table string, parents []int32) (ports.Edge, error) {
	if err := m.edgeReadErr[table]; err != nil {
		return nil, err
	}
	want := make(map[int32]bool, len(parents))
	for _, p := range parents {
		want[p] = true
	}
	out := ports.Edge{}
	for _, e := range m.edges[table] {
		if want[e.parent] {
			out[e.parent] = append(out[e.parent], e.child)
		}
	}
	for _, ids := range out {
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	}
	return out, nil
}

// likeMatch evaluates an ILIKE pattern.
func likeMatch(pattern, s string) bool {
	var b strings.Builder
	b.WriteString("(?is)^")
	escaped := false
	for _, r := range pattern {
		switch {
		case escaped:
			b.WriteString(regexp.QuoteMeta(string(r)))
			escaped = false
		case r == '\\':
			escaped = true
		case r == '%':
			b.WriteString(".*")
		case r == '_':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")
	return regexp.MustCompile(b.String()).MatchString(s)
}

type memContributors struct{ *memCatalog }

func (r memContributors) Create(_ context.Context, c *domain.Contributor) (int32, error) {
	row := *c
	row.ID = r.id()
	r.contributors[c.Kind] = append(r.contributors[c.Kind], row)
	return row.ID, nil
}

func (r memContributors) SetImagePath(_ context.Context, kind domain.ContributorKind, id int32, path string) error {
	for i := range r.contributors[kind] {
		if r.contributors[kind][i].ID == id {
			p := path
			r.contributors[kind][i].ImagePath = &p
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r memContributors) FindByID(_ context.Context, kind domain.ContributorKind, id int32) (*domain.Contributor, error) {
	for _, c := range r.contributors[kind] {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r memContributors) List(_ context.Context, kind domain.ContributorKind) ([]domain.Contributor, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return append([]domain.Contributor{}, r.contributors[kind]...), nil
}

func (r memContributors) SearchByName(_ context.Context, kind domain.ContributorKind, pattern string) ([]domain.Contributor, error) {
	out := []domain.Contributor{}
	for _, c := range r.contributors[kind] {
		if likeMatch(pattern, c.Name) {
			out = append(out, c)
		}
	}
	return out, nil
}

type memPieces struct{ *memCatalog }

func (r memPieces) Create(_ context.Context, p *domain.Piece) (int32, error) {
	row := *p
	row.ID = r.id()
	r.pieces = append(r.pieces, row)
	return row.ID, nil
}

func (r memPieces) FindByID(_ context.Context, id int32) (*domain.Piece, error) {
	for _, p := range r.pieces {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r memPieces) List(_ context.Context) ([]domain.Piece, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return append([]domain.Piece{}, r.pieces...), nil
}

func (r memPieces) SearchByName(_ context.Context, pattern string) ([]domain.Piece, error) {
	out := []domain.Piece{}
	for _, p := range r.pieces {
		if likeMatch(pattern, p.Name) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r memPieces) AddComposer(_ context.Context, pieceID, composerID int32) error {
	return r.insertEdge(edgePieceComposers, pieceID, composerID)
}

func (r memPieces) AddSongwriter(_ context.Context, pieceID, songwriterID int32) error {
	return r.insertEdge(edgePieceSongwriters, pieceID, songwriterID)
}

func (r memPieces) ComposerIDs(_ context.Context, ids []int32) (ports.Edge, error) {
	return r.loadEdge(edgePieceComposers, ids)
}

func (r memPieces) SongwriterIDs(_ context.Context, ids []int32) (ports.Edge, error) {
	return r.loadEdge(edgePieceSongwriters, ids)
}

type memReleases struct{ *memCatalog }

func (r memReleases) Create(_ context.Context, rel *domain.Release) (int32, error) {
	row := *rel
	row.ID = r.id()
	r.releases = append(r.releases, row)
	return row.ID, nil
}

func (r memReleases) SetImagePath(_ context.Context, id int32, path string) error {
	for i := range r.releases {
		if r.releases[i].ID == id {
			p := path
			r.releases[i].ImagePath = &p
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r memReleases) FindByID(_ context.Context, id int32) (*domain.Release, error) {
	for _, rel := range r.releases {
		if rel.ID == id {
			return &rel, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r memReleases) List(_ context.Context) ([]domain.Release, error) {
	return append([]domain.Release{}, r.releases...), nil
}

func (r memReleases) SearchByName(_ context.Context, pattern string) ([]domain.Release, error) {
	out := []domain.Release{}
	for _, rel := range r.releases {
		if likeMatch(pattern, rel.Name) {
			out = append(out, rel)
		}
	}
	return out, nil
}

func (r memReleases) AddPerformer(_ context.Context, releaseID, performerID int32) error {
	return r.insertEdge(edgeReleasePerformers, releaseID, performerID)
}

func (r memReleases) PerformerIDs(_ context.Context, ids []int32) (ports.Edge, error) {
	return r.loadEdge(edgeReleasePerformers, ids)
}

func (r memReleases) RecordingIDs(_ context.Context, ids []int32) (ports.Edge, error) {
	want := make(map[int32]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := ports.Edge{}
	for _, rec := range r.recordings {
		if want[rec.ReleaseID] {
			out[rec.ReleaseID] = append(out[rec.ReleaseID], rec.ID)
		}
	}
	return out, nil
}

type memRecordings struct{ *memCatalog }

func (r memRecordings) Create(_ context.Context, rec *domain.Recording) (int32, error) {
	row := *rec
	row.ID = r.id()
	r.recordings = append(r.recordings, row)
	return row.ID, nil
}

func (r memRecordings) SetFilePath(_ context.Context, id int32, path string) error {
	for i := range r.recordings {
		if r.recordings[i].ID == id {
			p := path
			r.recordings[i].FilePath = &p
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r memRecordings) FindByID(_ context.Context, id int32) (*domain.Recording, error) {
	for _, rec := range r.recordings {
		if rec.ID == id {
			return &rec, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r memRecordings) List(_ context.Context) ([]domain.Recording, error) {
	return append([]domain.Recording{}, r.recordings...), nil
}

func (r memRecordings) SearchByPieceName(_ context.Context, pattern string) ([]domain.Recording, error) {
	out := []domain.Recording{}
	for _, rec := range r.recordings {
		if likeMatch(pattern, rec.PieceName) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r memRecordings) AddPerformer(_ context.Context, recordingID, performerID int32) error {
	return r.insertEdge(edgeRecordingPerformer, recordingID, performerID)
}

func (r memRecordings) PerformerIDs(_ context.Context, ids []int32) (ports.Edge, error) {
	return r.loadEdge(edgeRecordingPerformer, ids)
}

// ---------------------------------------------------------------------------
// Auth and audit stubs
// ---------------------------------------------------------------------------

type stubAuth struct {
	admins map[string]string // token → username
	users  map[string]string // token → username, not admin
}

func (a *stubAuth) AddUser(context.Context, ports.AddUserInput) (*ports.AddUserResult, error) {
	return nil, errors.New("not implemented")
}
func (a *stubAuth) Login(context.Context, string, string) (string, error) {
	return "", errors.New("not implemented")
}
func (a *stubAuth) CountUsers(context.Context) (int64, error) { return 0, nil }

func (a *stubAuth) ResolveUser(_ context.Context, token string) (*domain.User, error) {
	if name, ok := a.admins[token]; ok {
		return &domain.User{Username: name}, nil
	}
	if name, ok := a.users[token]; ok {
		return &domain.User{Username: name}, nil
	}
	return nil, domain.ErrInvalidToken
}

func (a *stubAuth) RequireAdmin(ctx context.Context, token string) (*domain.User, error) {
	u, err := a.ResolveUser(ctx, token)
	if err != nil {
		return nil, err
	}
	if _, ok := a.admins[token]; !ok {
		return nil, domain.ErrNotAdmin
	}
	return u, nil
}

func (a *stubAuth) IsAdmin(ctx context.Context, token string) (bool, error) {
	_, err := a.RequireAdmin(ctx, token)
	return err == nil, nil
}

type recordingPublisher struct{ events []domain.CatalogEvent }

func (p *recordingPublisher) Publish(e domain.CatalogEvent) { p.events = append(p.events, e) }

const (
	adminToken = "admin-token"
	userToken  = "user-token"
)

func newCatalogSvc() (*CatalogService, *memCatalog, *recordingPublisher) {
	store := newMemCatalog()
	pub := &recordingPublisher{}
	auth := &stubAuth{
		admins: map[string]string{adminToken: "root"},
		users:  map[string]string{userToken: "alice"},
	}
	svc := NewCatalogService(auth, CatalogRepositories{
		Contributors: memContributors{store},
		Pieces:       memPieces{store},
		Releases:     memReleases{store},
		Recordings:   memRecordings{store},
	}, pub, zerolog.Nop())
	return svc, store, pub
}

func strPtr(s string) *string { return &s }

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestCatalogService_WritesRequireAdmin(t *testing.T) {
	svc, store, pub := newCatalogSvc()
	ctx := context.Background()

	for _, token := range []string{"", "unknown", userToken} {
		_, err := svc.AddContributor(ctx, ports.AddContributorInput{Kind: domain.Composer, Name: "Bach", Token: token})
		if !domain.IsAuthorization(err) {
			t.Fatalf("token %q: expected authorization error, got %v", token, err)
		}
		_, err = svc.AddPiece(ctx, ports.AddPieceInput{Name: "Mass", ComposerIDs: []int32{1}, Token: token})
		if !domain.IsAuthorization(err) {
			t.Fatalf("token %q: expected authorization error, got %v", token, err)
		}
		_, err = svc.AddRelease(ctx, ports.AddReleaseInput{Name: "Album", Token: token})
		if !domain.IsAuthorization(err) {
			t.Fatalf("token %q: expected authorization error, got %v", token, err)
		}
		_, err = svc.AddRecording(ctx, ports.AddRecordingInput{PieceID: 1, ReleaseID: 1, Token: token})
		if !domain.IsAuthorization(err) {
			t.Fatalf("token %q: expected authorization error, got %v", token, err)
		}
	}

	if store.nextID != 0 || len(store.edges) != 0 {
		t.Fatalf("unauthorized calls must not write, store=%+v", store)
	}
	if len(pub.events) != 0 {
		t.Fatalf("unauthorized calls must not publish, got %d events", len(pub.events))
	}

	if _, err := svc.AddContributor(ctx, ports.AddContributorInput{Kind: domain.Composer, Name: "Bach", Token: userToken}); !errors.Is(err, domain.ErrNotAdmin) {
		t.Fatalf("expected ErrNotAdmin for non-admin, got %v", err)
	}
	if _, err := svc.AddContributor(ctx, ports.AddContributorInput{Kind: domain.Composer, Name: "Bach", Token: "unknown"}); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for unknown token, got %v", err)
	}
}

func TestCatalogService_ContributorImagePathRoundTrip(t *testing.T) {
	svc, _, pub := newCatalogSvc()
	ctx := context.Background()

	for _, kind := range domain.ContributorKinds {
		with, err := svc.AddContributor(ctx, ports.AddContributorInput{Kind: kind, Name: "With", HasImage: true, Token: adminToken})
		if err != nil {
			t.Fatalf("AddContributor(%s): %v", kind, err)
		}
		want := fmt.Sprintf("%s-%d", kind, with.ID)
		if with.Path != want {
			t.Fatalf("expected path %q, got %q", want, with.Path)
		}
		got, err := svc.GetContributor(ctx, kind, with.ID)
		if err != nil {
			t.Fatalf("GetContributor: %v", err)
		}
		if got.ImagePath == nil || *got.ImagePath != want {
			t.Fatalf("expected stored image path %q, got %v", want, got.ImagePath)
		}

		without, err := svc.AddContributor(ctx, ports.AddContributorInput{Kind: kind, Name: "Without", Description: strPtr("d"), Token: adminToken})
		if err != nil {
			t.Fatalf("AddContributor(%s): %v", kind, err)
		}
		if without.Path != "" {
			t.Fatalf("expected empty path, got %q", without.Path)
		}
		got, _ = svc.GetContributor(ctx, kind, without.ID)
		if got.ImagePath != nil {
			t.Fatalf("expected nil image path, got %q", *got.ImagePath)
		}
		if got.Description == nil || *got.Description != "d" {
			t.Fatalf("description not stored")
		}
	}

	if len(pub.events) != 6 {
		t.Fatalf("expected 6 audit events, got %d", len(pub.events))
	}
	if pub.events[0].Actor != "root" || pub.events[0].Entity != "performer" {
		t.Fatalf("unexpected event %+v", pub.events[0])
	}
}

func TestCatalogService_AddContributor_InvalidKind(t *testing.T) {
	svc, store, _ := newCatalogSvc()

	_, err := svc.AddContributor(context.Background(), ports.AddContributorInput{Kind: 0, Name: "x", Token: adminToken})
	if !errors.Is(err, domain.ErrInvalidArtistType) {
		t.Fatalf("expected ErrInvalidArtistType, got %v", err)
	}
	if store.nextID != 0 {
		t.Fatalf("invalid kind must not write")
	}
}

func TestCatalogService_PieceView(t *testing.T) {
	svc, _, _ := newCatalogSvc()
	ctx := context.Background()

	res, err := svc.AddPiece(ctx, ports.AddPieceInput{Name: "Mass in B minor", ComposerIDs: []int32{7, 5}, Token: adminToken})
	if err != nil {
		t.Fatalf("AddPiece: %v", err)
	}
	if res.Path != "" {
		t.Fatalf("pieces have no derived path, got %q", res.Path)
	}

	view, err := svc.GetPiece(ctx, res.ID)
	if err != nil {
		t.Fatalf("GetPiece: %v", err)
	}
	if len(view.ComposerIDs) != 2 || !containsAll(view.ComposerIDs, 5, 7) {
		t.Fatalf("expected composers {5,7}, got %v", view.ComposerIDs)
	}
	if view.SongwriterIDs != nil {
		t.Fatalf("expected absent songwriter ids, got %v", view.SongwriterIDs)
	}

	withSongwriter, _ := svc.AddPiece(ctx, ports.AddPieceInput{Name: "Lied", ComposerIDs: []int32{}, SongwriterIDs: []int32{3}, Token: adminToken})
	view, _ = svc.GetPiece(ctx, withSongwriter.ID)
	if view.ComposerIDs == nil || len(view.ComposerIDs) != 0 {
		t.Fatalf("expected present empty composer ids, got %#v", view.ComposerIDs)
	}
	if len(view.SongwriterIDs) != 1 || view.SongwriterIDs[0] != 3 {
		t.Fatalf("expected songwriter [3], got %v", view.SongwriterIDs)
	}
}

func TestCatalogService_DuplicateEdgeIsSkipped(t *testing.T) {
	svc, _, pub := newCatalogSvc()
	ctx := context.Background()

	res, err := svc.AddPiece(ctx, ports.AddPieceInput{Name: "Fugue", ComposerIDs: []int32{5, 5, 7}, Token: adminToken})
	if err != nil {
		t.Fatalf("duplicate edge must not fail the write, got %v", err)
	}
	view, _ := svc.GetPiece(ctx, res.ID)
	if len(view.ComposerIDs) != 2 {
		t.Fatalf("expected 2 composers, got %v", view.ComposerIDs)
	}
	if got := pub.events[len(pub.events)-1].EdgeFailures; got != 1 {
		t.Fatalf("expected 1 edge failure in the audit event, got %d", got)
	}
}

func TestCatalogService_GetMissingReturnsNotFound(t *testing.T) {
	svc, _, _ := newCatalogSvc()
	ctx := context.Background()

	if _, err := svc.GetPiece(ctx, 42); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetPiece: expected ErrNotFound, got %v", err)
	}
	if _, err := svc.GetRelease(ctx, 42); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetRelease: expected ErrNotFound, got %v", err)
	}
	if _, err := svc.GetRecording(ctx, 42); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetRecording: expected ErrNotFound, got %v", err)
	}
	if _, err := svc.GetContributor(ctx, domain.Performer, 42); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetContributor: expected ErrNotFound, got %v", err)
	}
}

func TestCatalogService_ReleaseAndRecordingViews(t *testing.T) {
	svc, _, _ := newCatalogSvc()
	ctx := context.Background()

	piece, _ := svc.AddPiece(ctx, ports.AddPieceInput{Name: "Goldberg Variations", ComposerIDs: []int32{1}, Token: adminToken})
	release, err := svc.AddRelease(ctx, ports.AddReleaseInput{Name: "1955", PerformerIDs: []int32{9}, HasImage: true, Token: adminToken})
	if err != nil {
		t.Fatalf("AddRelease: %v", err)
	}
	if release.Path != fmt.Sprintf("release-%d", release.ID) {
		t.Fatalf("unexpected release path %q", release.Path)
	}

	view, _ := svc.GetRelease(ctx, release.ID)
	if view.RecordingIDs != nil {
		t.Fatalf("expected absent recording ids before any recording, got %v", view.RecordingIDs)
	}
	if len(view.PerformerIDs) != 1 || view.PerformerIDs[0] != 9 {
		t.Fatalf("expected performers [9], got %v", view.PerformerIDs)
	}

	rec, err := svc.AddRecording(ctx, ports.AddRecordingInput{PieceID: piece.ID, ReleaseID: release.ID, PerformerIDs: []int32{}, TrackNumber: 1, Token: adminToken})
	if err != nil {
		t.Fatalf("AddRecording: %v", err)
	}
	if rec.Path != fmt.Sprintf("recording-%d", rec.ID) {
		t.Fatalf("unexpected recording path %q", rec.Path)
	}

	recView, err := svc.GetRecording(ctx, rec.ID)
	if err != nil {
		t.Fatalf("GetRecording: %v", err)
	}
	if recView.PerformerIDs == nil || len(recView.PerformerIDs) != 0 {
		t.Fatalf("expected present empty performer ids, got %#v", recView.PerformerIDs)
	}
	if recView.PieceName != "Goldberg Variations" {
		t.Fatalf("expected copied piece name, got %q", recView.PieceName)
	}
	if recView.FilePath == nil || *recView.FilePath != rec.Path {
		t.Fatalf("expected stored file path %q, got %v", rec.Path, recView.FilePath)
	}

	view, _ = svc.GetRelease(ctx, release.ID)
	if len(view.RecordingIDs) != 1 || view.RecordingIDs[0] != rec.ID {
		t.Fatalf("expected recording ids [%d], got %v", rec.ID, view.RecordingIDs)
	}
}

func TestCatalogService_AddRecording_UnknownPiece(t *testing.T) {
	svc, store, _ := newCatalogSvc()

	_, err := svc.AddRecording(context.Background(), ports.AddRecordingInput{PieceID: 99, ReleaseID: 1, Token: adminToken})
	if !errors.Is(err, domain.ErrPieceNotFound) {
		t.Fatalf("expected ErrPieceNotFound, got %v", err)
	}
	if len(store.recordings) != 0 {
		t.Fatalf("no recording must be written")
	}
}

func TestCatalogService_ListBatchesEdges(t *testing.T) {
	svc, _, _ := newCatalogSvc()
	ctx := context.Background()

	a, _ := svc.AddPiece(ctx, ports.AddPieceInput{Name: "A", ComposerIDs: []int32{1, 2}, Token: adminToken})
	b, _ := svc.AddPiece(ctx, ports.AddPieceInput{Name: "B", ComposerIDs: []int32{3}, SongwriterIDs: []int32{4}, Token: adminToken})

	views, err := svc.ListPieces(ctx)
	if err != nil {
		t.Fatalf("ListPieces: %v", err)
	}
	if len(views) != 2 || views[0].ID != a.ID || views[1].ID != b.ID {
		t.Fatalf("unexpected order %+v", views)
	}
	if !containsAll(views[0].ComposerIDs, 1, 2) || views[0].SongwriterIDs != nil {
		t.Fatalf("unexpected first view %+v", views[0])
	}
	if !containsAll(views[1].ComposerIDs, 3) || !containsAll(views[1].SongwriterIDs, 4) {
		t.Fatalf("unexpected second view %+v", views[1])
	}
}

func TestCatalogService_EdgeReadFailureDefaultsToEmpty(t *testing.T) {
	svc, store, _ := newCatalogSvc()
	ctx := context.Background()

	res, _ := svc.AddPiece(ctx, ports.AddPieceInput{Name: "A", ComposerIDs: []int32{1}, SongwriterIDs: []int32{2}, Token: adminToken})
	store.edgeReadErr[edgePieceComposers] = errors.New("connection reset")
	store.edgeReadErr[edgePieceSongwriters] = errors.New("connection reset")

	view, err := svc.GetPiece(ctx, res.ID)
	if err != nil {
		t.Fatalf("edge failure must not fail the read, got %v", err)
	}
	if view.ComposerIDs == nil || len(view.ComposerIDs) != 0 || view.SongwriterIDs != nil {
		t.Fatalf("expected empty edges, got %+v", view)
	}
}

func TestCatalogService_ListError(t *testing.T) {
	svc, store, _ := newCatalogSvc()
	store.listErr = errors.New("pool exhausted")

	if _, err := svc.ListPieces(context.Background()); err == nil {
		t.Fatalf("expected infrastructure error")
	}
	if _, err := svc.ListContributors(context.Background(), domain.Composer); err == nil {
		t.Fatalf("expected infrastructure error")
	}
}

func TestCatalogService_Search(t *testing.T) {
	svc, _, _ := newCatalogSvc()
	ctx := context.Background()

	_, _ = svc.AddContributor(ctx, ports.AddContributorInput{Kind: domain.Composer, Name: "Strauss Insert", Token: adminToken})
	_, _ = svc.AddContributor(ctx, ports.AddContributorInput{Kind: domain.Performer, Name: "Strauss Insert", Token: adminToken})
	_, _ = svc.AddPiece(ctx, ports.AddPieceInput{Name: "Strauss Insert", ComposerIDs: []int32{1}, Token: adminToken})

	got, err := svc.SearchContributors(ctx, domain.Composer, "stra ins", adminToken)
	if err != nil {
		t.Fatalf("SearchContributors: %v", err)
	}
	if len(got) != 1 || got[0].Kind != domain.Composer {
		t.Fatalf("expected one composer match, got %+v", got)
	}

	got, _ = svc.SearchContributors(ctx, domain.Composer, "zz", adminToken)
	if len(got) != 0 {
		t.Fatalf("expected no match for zz, got %+v", got)
	}

	pieces, err := svc.SearchPieces(ctx, "STRA ins", adminToken)
	if err != nil || len(pieces) != 1 {
		t.Fatalf("expected one piece match, got %v %v", pieces, err)
	}
	if !containsAll(pieces[0].ComposerIDs, 1) {
		t.Fatalf("search results must be assembled, got %+v", pieces[0])
	}

	if _, err := svc.SearchPieces(ctx, "stra", userToken); !errors.Is(err, domain.ErrNotAdmin) {
		t.Fatalf("expected ErrNotAdmin, got %v", err)
	}
	if _, err := svc.SearchRecordings(ctx, "stra", ""); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestCatalogService_SearchRecordingsByPieceName(t *testing.T) {
	svc, _, _ := newCatalogSvc()
	ctx := context.Background()

	piece, _ := svc.AddPiece(ctx, ports.AddPieceInput{Name: "Cello Suite No. 1", ComposerIDs: []int32{1}, Token: adminToken})
	release, _ := svc.AddRelease(ctx, ports.AddReleaseInput{Name: "Suites", Token: adminToken})
	_, _ = svc.AddRecording(ctx, ports.AddRecordingInput{PieceID: piece.ID, ReleaseID: release.ID, PerformerIDs: []int32{2}, TrackNumber: 1, Token: adminToken})

	recs, err := svc.SearchRecordings(ctx, "cello suite", adminToken)
	if err != nil || len(recs) != 1 {
		t.Fatalf("expected one recording, got %v %v", recs, err)
	}
	if !containsAll(recs[0].PerformerIDs, 2) {
		t.Fatalf("expected performer 2, got %v", recs[0].PerformerIDs)
	}

	releases, err := svc.SearchReleases(ctx, "suite", adminToken)
	if err != nil || len(releases) != 1 {
		t.Fatalf("expected one release, got %v %v", releases, err)
	}
}

func containsAll(ids []int32, want ...int32) bool {
	set := make(map[int32]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	for _, w := range want {
		if !set[w] {
			return false
		}
	}
	return true
}
