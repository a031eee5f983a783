package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/allegro-music/allegro/internal/core/domain"
	"github.com/allegro-music/allegro/internal/core/ports"
)

// stubCatalogService embeds the interface so each test only sets what it
// exercises; anything else panics.
type stubCatalogService struct {
	ports.CatalogService

	addContributorFn     func(ctx context.Context, in ports.AddContributorInput) (*ports.AddResult, error)
	addPieceFn           func(ctx context.Context, in ports.AddPieceInput) (*ports.AddResult, error)
	addRecordingFn       func(ctx context.Context, in ports.AddRecordingInput) (*ports.AddResult, error)
	getContributorFn     func(ctx context.Context, kind domain.ContributorKind, id int32) (*domain.Contributor, error)
	getPieceFn           func(ctx context.Context, id int32) (*domain.PieceView, error)
	listReleasesFn       func(ctx context.Context) ([]domain.ReleaseView, error)
	listRecordingsFn     func(ctx context.Context) ([]domain.RecordingView, error)
	searchPiecesFn       func(ctx context.Context, query, token string) ([]domain.PieceView, error)
	searchContributorsFn func(ctx context.Context, kind domain.ContributorKind, query, token string) ([]domain.Contributor, error)
}

func (s *stubCatalogService) AddContributor(ctx context.Context, in ports.AddContributorInput) (*ports.AddResult, error) {
	return s.addContributorFn(ctx, in)
}

func (s *stubCatalogService) AddPiece(ctx context.Context, in ports.AddPieceInput) (*ports.AddResult, error) {
	return s.addPieceFn(ctx, in)
}

func (s *stubCatalogService) AddRecording(ctx context.Context, in ports.AddRecordingInput) (*ports.AddResult, error) {
	return s.addRecordingFn(ctx, in)
}

func (s *stubCatalogService) GetContributor(ctx context.Context, kind domain.ContributorKind, id int32) (*domain.Contributor, error) {
	return s.getContributorFn(ctx, kind, id)
}

func (s *stubCatalogService) GetPiece(ctx context.Context, id int32) (*domain.PieceView, error) {
	return s.getPieceFn(ctx, id)
}

func (s *stubCatalogService) ListReleases(ctx context.Context) ([]domain.ReleaseView, error) {
	return s.listReleasesFn(ctx)
}

func (s *stubCatalogService) ListRecordings(ctx context.Context) ([]domain.RecordingView, error) {
	return s.listRecordingsFn(ctx)
}

func (s *stubCatalogService) SearchPieces(ctx context.Context, query, token string) ([]domain.PieceView, error) {
	return s.searchPiecesFn(ctx, query, token)
}

func (s *stubCatalogService) SearchContributors(ctx context.Context, kind domain.ContributorKind, query, token string) ([]domain.Contributor, error) {
	return s.searchContributorsFn(ctx, kind, query, token)
}

func TestCatalogHandler_AddArtist_ReturnsImagePath(t *testing.T) {
	stub := &stubCatalogService{
		addContributorFn: func(_ context.Context, in ports.AddContributorInput) (*ports.AddResult, error) {
			if in.Kind != domain.Composer || in.Name != "Clara Schumann" || !in.HasImage || in.Token != "tok" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.AddResult{ID: 5, Path: domain.DerivedPath(in.Kind.String(), 5)}, nil
		},
	}
	c, rec := newJSONContext(http.MethodPost, "/music/add/artist",
		`{"name":"Clara Schumann","has_image":true,"artist_type":"composer","token":"tok"}`)

	if err := NewCatalogHandler(stub).AddArtist(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	resp := decodeBody(t, rec)
	if resp["success"] != true || resp["message"] != "composer-5" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestCatalogHandler_AddArtist_InvalidType(t *testing.T) {
	stub := &stubCatalogService{
		addContributorFn: func(context.Context, ports.AddContributorInput) (*ports.AddResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	c, rec := newJSONContext(http.MethodPost, "/music/add/artist",
		`{"name":"X","has_image":false,"artist_type":"conductor","token":"tok"}`)

	if err := NewCatalogHandler(stub).AddArtist(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decodeBody(t, rec)
	msg, _ := resp["message"].(string)
	if resp["success"] != false || !strings.Contains(msg, "artist_type") {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestCatalogHandler_AddPiece_NotAdmin(t *testing.T) {
	stub := &stubCatalogService{
		addPieceFn: func(_ context.Context, in ports.AddPieceInput) (*ports.AddResult, error) {
			if len(in.ComposerIDs) != 2 || in.SongwriterIDs != nil {
				t.Fatalf("unexpected input: %+v", in)
			}
			return nil, domain.ErrNotAdmin
		},
	}
	c, rec := newJSONContext(http.MethodPost, "/music/add/piece",
		`{"name":"Requiem","composer_ids":[5,7],"token":"user"}`)

	if err := NewCatalogHandler(stub).AddPiece(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	resp := decodeBody(t, rec)
	if resp["success"] != false || resp["message"] != "User is not an admin" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestCatalogHandler_AddPiece_EmptyMessage(t *testing.T) {
	stub := &stubCatalogService{
		addPieceFn: func(context.Context, ports.AddPieceInput) (*ports.AddResult, error) {
			return &ports.AddResult{ID: 1}, nil
		},
	}
	c, rec := newJSONContext(http.MethodPost, "/music/add/piece", `{"name":"Requiem","composer_ids":[],"token":"t"}`)

	if err := NewCatalogHandler(stub).AddPiece(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decodeBody(t, rec)
	if resp["success"] != true || resp["message"] != "" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestCatalogHandler_AddRecording_PieceNotFound(t *testing.T) {
	stub := &stubCatalogService{
		addRecordingFn: func(context.Context, ports.AddRecordingInput) (*ports.AddResult, error) {
			return nil, domain.ErrPieceNotFound
		},
	}
	c, rec := newJSONContext(http.MethodPost, "/music/add/recording",
		`{"piece_id":99,"release_id":1,"performer_ids":[],"track_number":1,"token":"t"}`)

	if err := NewCatalogHandler(stub).AddRecording(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decodeBody(t, rec)
	if resp["success"] != false || resp["message"] != "Piece not found" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestCatalogHandler_GetPiece_Found(t *testing.T) {
	stub := &stubCatalogService{
		getPieceFn: func(_ context.Context, id int32) (*domain.PieceView, error) {
			return &domain.PieceView{
				Piece:       domain.Piece{ID: id, Name: "Requiem"},
				ComposerIDs: []int32{5, 7},
			}, nil
		},
	}
	c, rec := newJSONContext(http.MethodPost, "/music/get/piece", `{"id":3}`)

	if err := NewCatalogHandler(stub).GetPiece(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decodeBody(t, rec)
	msg, _ := resp["message"].(map[string]any)
	if resp["success"] != true || msg["id"] != float64(3) {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if ids, _ := msg["composer_ids"].([]any); len(ids) != 2 {
		t.Fatalf("expected two composer ids, got %v", msg["composer_ids"])
	}
	if v, present := msg["songwriter_ids"]; !present || v != nil {
		t.Fatalf("expected songwriter_ids null, got %v", v)
	}
}

func TestCatalogHandler_GetPiece_NotFoundSentinel(t *testing.T) {
	stub := &stubCatalogService{
		getPieceFn: func(context.Context, int32) (*domain.PieceView, error) {
			return nil, domain.ErrNotFound
		},
	}
	c, rec := newJSONContext(http.MethodPost, "/music/get/piece", `{"id":42}`)

	if err := NewCatalogHandler(stub).GetPiece(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	resp := decodeBody(t, rec)
	msg, _ := resp["message"].(map[string]any)
	if resp["success"] != false || msg["id"] != float64(domain.SentinelID) {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestCatalogHandler_GetContributor_UsesRouteKind(t *testing.T) {
	stub := &stubCatalogService{
		getContributorFn: func(_ context.Context, kind domain.ContributorKind, id int32) (*domain.Contributor, error) {
			if kind != domain.Songwriter || id != 8 {
				t.Fatalf("unexpected args: %v %d", kind, id)
			}
			return &domain.Contributor{ID: id, Kind: kind, Name: "Cole Porter"}, nil
		},
	}
	c, rec := newJSONContext(http.MethodPost, "/music/get/songwriter", `{"id":8}`)

	if err := NewCatalogHandler(stub).GetContributor(domain.Songwriter)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decodeBody(t, rec)
	msg, _ := resp["message"].(map[string]any)
	if resp["success"] != true || msg["name"] != "Cole Porter" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestCatalogHandler_ListReleases_EmptyIsArray(t *testing.T) {
	stub := &stubCatalogService{
		listReleasesFn: func(context.Context) ([]domain.ReleaseView, error) { return nil, nil },
	}
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/music/get/releases", nil), rec)

	if err := NewCatalogHandler(stub).ListReleases(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != `{"success":true,"message":[]}` {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestCatalogHandler_ListRecordings_Error(t *testing.T) {
	stub := &stubCatalogService{
		listRecordingsFn: func(context.Context) ([]domain.RecordingView, error) {
			return nil, errors.New("pool timeout")
		},
	}
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/music/get/recordings", nil), rec)

	if err := NewCatalogHandler(stub).ListRecordings(c); err == nil {
		t.Fatalf("expected error to reach the error handler")
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("handler must not write a body")
	}
}

func TestCatalogHandler_SearchPieces_Refused(t *testing.T) {
	stub := &stubCatalogService{
		searchPiecesFn: func(context.Context, string, string) ([]domain.PieceView, error) {
			return nil, domain.ErrInvalidToken
		},
	}
	c, rec := newJSONContext(http.MethodPost, "/music/search/piece", `{"query":"req","token":"bogus"}`)

	if err := NewCatalogHandler(stub).SearchPieces(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != `{"success":false,"message":[]}` {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestCatalogHandler_SearchContributors(t *testing.T) {
	stub := &stubCatalogService{
		searchContributorsFn: func(_ context.Context, kind domain.ContributorKind, query, token string) ([]domain.Contributor, error) {
			if kind != domain.Performer || query != "glenn gould" || token != "admin" {
				t.Fatalf("unexpected args: %v %q %q", kind, query, token)
			}
			return []domain.Contributor{{ID: 1, Kind: kind, Name: "Glenn Gould"}}, nil
		},
	}
	c, rec := newJSONContext(http.MethodPost, "/music/search/performer", `{"query":"glenn gould","token":"admin"}`)

	if err := NewCatalogHandler(stub).SearchContributors(domain.Performer)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decodeBody(t, rec)
	items, _ := resp["message"].([]any)
	if resp["success"] != true || len(items) != 1 {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}
