package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/allegro-music/allegro/internal/core/domain"
)

// getOne answers a single-item read. A miss is answered with the not-found
// sentinel and success=false.
func getOne[V, R any](c echo.Context, view *V, err error, notFound V, toResponse func(V) R) error {
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.JSON(http.StatusCreated, failure(toResponse(notFound)))
		}
		return err
	}
	return c.JSON(http.StatusCreated, success(toResponse(*view)))
}

func bindID(c echo.Context) (int32, error) {
	var req idRequest
	if err := c.Bind(&req); err != nil {
		return 0, err
	}
	return req.ID, nil
}

// GetContributor returns the handler for one contributor kind.
//
// @Summary      Get a performer, composer or songwriter
// @Tags         music
// @Accept       json
// @Produce      json
// @Param        body  body      idRequest  true  "Identifier"
// @Success      201   {object}  response[contributorResponse]  "id is -1 when not found"
// @Failure      500
// @Router       /music/get/performer [post]
// @Router       /music/get/composer [post]
// @Router       /music/get/songwriter [post]
func (h *CatalogHandler) GetContributor(kind domain.ContributorKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := bindID(c)
		if err != nil {
			return err
		}
		v, err := h.service.GetContributor(c.Request().Context(), kind, id)
		return getOne(c, v, err, domain.NotFoundContributor(kind), toContributorResponse)
	}
}

// ListContributors returns the handler listing one contributor kind.
//
// @Summary      List performers, composers or songwriters
// @Tags         music
// @Produce      json
// @Success      201  {object}  response[[]contributorResponse]
// @Failure      500
// @Router       /music/get/performers [get]
// @Router       /music/get/composers [get]
// @Router       /music/get/songwriters [get]
func (h *CatalogHandler) ListContributors(kind domain.ContributorKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		items, err := h.service.ListContributors(c.Request().Context(), kind)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusCreated, success(mapAll(items, toContributorResponse)))
	}
}

// GetPiece returns a piece with its composer and songwriter ids.
//
// @Summary      Get a piece
// @Tags         music
// @Accept       json
// @Produce      json
// @Param        body  body      idRequest  true  "Identifier"
// @Success      201   {object}  response[pieceResponse]  "id is -1 when not found"
// @Failure      500
// @Router       /music/get/piece [post]
func (h *CatalogHandler) GetPiece(c echo.Context) error {
	id, err := bindID(c)
	if err != nil {
		return err
	}
	v, err := h.service.GetPiece(c.Request().Context(), id)
	return getOne(c, v, err, domain.NotFoundPiece(), toPieceResponse)
}

// ListPieces
//
// @Summary      List pieces
// @Tags         music
// @Produce      json
// @Success      201  {object}  response[[]pieceResponse]
// @Failure      500
// @Router       /music/get/pieces [get]
func (h *CatalogHandler) ListPieces(c echo.Context) error {
	items, err := h.service.ListPieces(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, success(mapAll(items, toPieceResponse)))
}

// GetRelease returns a release with its performer and recording ids.
//
// @Summary      Get a release
// @Tags         music
// @Accept       json
// @Produce      json
// @Param        body  body      idRequest  true  "Identifier"
// @Success      201   {object}  response[releaseResponse]  "id is -1 when not found"
// @Failure      500
// @Router       /music/get/release [post]
func (h *CatalogHandler) GetRelease(c echo.Context) error {
	id, err := bindID(c)
	if err != nil {
		return err
	}
	v, err := h.service.GetRelease(c.Request().Context(), id)
	return getOne(c, v, err, domain.NotFoundRelease(), toReleaseResponse)
}

// ListReleases
//
// @Summary      List releases
// @Tags         music
// @Produce      json
// @Success      201  {object}  response[[]releaseResponse]
// @Failure      500
// @Router       /music/get/releases [get]
func (h *CatalogHandler) ListReleases(c echo.Context) error {
	items, err := h.service.ListReleases(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, success(mapAll(items, toReleaseResponse)))
}

// GetRecording returns a recording with its performer ids.
//
// @Summary      Get a recording
// @Tags         music
// @Accept       json
// @Produce      json
// @Param        body  body      idRequest  true  "Identifier"
// @Success      201   {object}  response[recordingResponse]  "id is -1 when not found"
// @Failure      500
// @Router       /music/get/recording [post]
func (h *CatalogHandler) GetRecording(c echo.Context) error {
	id, err := bindID(c)
	if err != nil {
		return err
	}
	v, err := h.service.GetRecording(c.Request().Context(), id)
	return getOne(c, v, err, domain.NotFoundRecording(), toRecordingResponse)
}

// ListRecordings
//
// @Summary      List recordings
// @Tags         music
// @Produce      json
// @Success      201  {object}  response[[]recordingResponse]
// @Failure      500
// @Router       /music/get/recordings [get]
func (h *CatalogHandler) ListRecordings(c echo.Context) error {
	items, err := h.service.ListRecordings(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, success(mapAll(items, toRecordingResponse)))
}
