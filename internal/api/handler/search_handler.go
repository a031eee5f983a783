package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/allegro-music/allegro/internal/core/domain"
)

// searchResult answers a search. A refused caller gets an empty list with
// success=false.
func searchResult[V, R any](c echo.Context, items []V, err error, toResponse func(V) R) error {
	if err != nil {
		if _, ok := failureMessage(err); ok {
			return c.JSON(http.StatusCreated, failure([]R{}))
		}
		return err
	}
	return c.JSON(http.StatusCreated, success(mapAll(items, toResponse)))
}

func bindSearch(c echo.Context) (searchRequest, error) {
	var req searchRequest
	if err := c.Bind(&req); err != nil {
		return req, err
	}
	req.Token = requestToken(c, req.Token)
	return req, nil
}

// SearchContributors returns the search handler for one contributor kind.
// Admin only.
//
// @Summary      Search performers, composers or songwriters by name
// @Tags         search
// @Accept       json
// @Produce      json
// @Param        body  body      searchRequest  true  "Whitespace separated terms, matched in order"
// @Success      201   {object}  response[[]contributorResponse]
// @Failure      500
// @Router       /music/search/performer [post]
// @Router       /music/search/composer [post]
// @Router       /music/search/songwriter [post]
func (h *CatalogHandler) SearchContributors(kind domain.ContributorKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		req, err := bindSearch(c)
		if err != nil {
			return err
		}
		items, err := h.service.SearchContributors(c.Request().Context(), kind, req.Query, req.Token)
		return searchResult(c, items, err, toContributorResponse)
	}
}

// SearchPieces
//
// @Summary      Search pieces by name
// @Tags         search
// @Accept       json
// @Produce      json
// @Param        body  body      searchRequest  true  "Whitespace separated terms, matched in order"
// @Success      201   {object}  response[[]pieceResponse]
// @Failure      500
// @Router       /music/search/piece [post]
func (h *CatalogHandler) SearchPieces(c echo.Context) error {
	req, err := bindSearch(c)
	if err != nil {
		return err
	}
	items, err := h.service.SearchPieces(c.Request().Context(), req.Query, req.Token)
	return searchResult(c, items, err, toPieceResponse)
}

// SearchReleases
//
// @Summary      Search releases by name
// @Tags         search
// @Accept       json
// @Produce      json
// @Param        body  body      searchRequest  true  "Whitespace separated terms, matched in order"
// @Success      201   {object}  response[[]releaseResponse]
// @Failure      500
// @Router       /music/search/release [post]
func (h *CatalogHandler) SearchReleases(c echo.Context) error {
	req, err := bindSearch(c)
	if err != nil {
		return err
	}
	items, err := h.service.SearchReleases(c.Request().Context(), req.Query, req.Token)
	return searchResult(c, items, err, toReleaseResponse)
}

// SearchRecordings matches on the piece name stored with each recording.
//
// @Summary      Search recordings by piece name
// @Tags         search
// @Accept       json
// @Produce      json
// @Param        body  body      searchRequest  true  "Whitespace separated terms, matched in order"
// @Success      201   {object}  response[[]recordingResponse]
// @Failure      500
// @Router       /music/search/recording [post]
func (h *CatalogHandler) SearchRecordings(c echo.Context) error {
	req, err := bindSearch(c)
	if err != nil {
		return err
	}
	items, err := h.service.SearchRecordings(c.Request().Context(), req.Query, req.Token)
	return searchResult(c, items, err, toRecordingResponse)
}
