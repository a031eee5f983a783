package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/allegro-music/allegro/internal/core/domain"
	"github.com/allegro-music/allegro/internal/core/ports"
)

// CatalogHandler serves the /music routes.
type CatalogHandler struct {
	service ports.CatalogService
}

func NewCatalogHandler(service ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// addResult answers a create. The message is the derived path, or "" when
// none was assigned.
func addResult(c echo.Context, res *ports.AddResult, err error) error {
	if err != nil {
		if msg, ok := failureMessage(err); ok {
			return c.JSON(http.StatusCreated, failure(msg))
		}
		return err
	}
	return c.JSON(http.StatusCreated, success(res.Path))
}

// AddArtist creates a performer, composer or songwriter.
//
// @Summary      Add a performer, composer or songwriter
// @Tags         music
// @Accept       json
// @Produce      json
// @Param        body  body      addArtistRequest  true  "Contributor"
// @Success      201   {object}  response[string]  "message is the image path, or empty"
// @Failure      500
// @Router       /music/add/artist [post]
func (h *CatalogHandler) AddArtist(c echo.Context) error {
	var req addArtistRequest
	invalid, err := bindAndValidate(c, &req)
	if err != nil {
		return err
	}
	if invalid != "" {
		return c.JSON(http.StatusCreated, failure(invalid))
	}

	kind, err := domain.ParseContributorKind(req.ArtistType)
	if err != nil {
		return addResult(c, nil, err)
	}

	res, err := h.service.AddContributor(c.Request().Context(), ports.AddContributorInput{
		Kind:        kind,
		Name:        req.Name,
		Description: req.Description,
		HasImage:    req.HasImage,
		Token:       requestToken(c, req.Token),
	})
	return addResult(c, res, err)
}

// AddPiece creates a piece and links its composers and songwriters.
//
// @Summary      Add a piece
// @Tags         music
// @Accept       json
// @Produce      json
// @Param        body  body      addPieceRequest  true  "Piece"
// @Success      201   {object}  response[string]
// @Failure      500
// @Router       /music/add/piece [post]
func (h *CatalogHandler) AddPiece(c echo.Context) error {
	var req addPieceRequest
	invalid, err := bindAndValidate(c, &req)
	if err != nil {
		return err
	}
	if invalid != "" {
		return c.JSON(http.StatusCreated, failure(invalid))
	}

	res, err := h.service.AddPiece(c.Request().Context(), toAddPieceInput(req, requestToken(c, req.Token)))
	return addResult(c, res, err)
}

// AddRelease creates a release and links its performers.
//
// @Summary      Add a release
// @Tags         music
// @Accept       json
// @Produce      json
// @Param        body  body      addReleaseRequest  true  "Release"
// @Success      201   {object}  response[string]  "message is the image path, or empty"
// @Failure      500
// @Router       /music/add/release [post]
func (h *CatalogHandler) AddRelease(c echo.Context) error {
	var req addReleaseRequest
	invalid, err := bindAndValidate(c, &req)
	if err != nil {
		return err
	}
	if invalid != "" {
		return c.JSON(http.StatusCreated, failure(invalid))
	}

	res, err := h.service.AddRelease(c.Request().Context(), toAddReleaseInput(req, requestToken(c, req.Token)))
	return addResult(c, res, err)
}

// AddRecording creates a recording of an existing piece on a release.
//
// @Summary      Add a recording
// @Tags         music
// @Accept       json
// @Produce      json
// @Param        body  body      addRecordingRequest  true  "Recording"
// @Success      201   {object}  response[string]  "message is the file path"
// @Failure      500
// @Router       /music/add/recording [post]
func (h *CatalogHandler) AddRecording(c echo.Context) error {
	var req addRecordingRequest
	invalid, err := bindAndValidate(c, &req)
	if err != nil {
		return err
	}
	if invalid != "" {
		return c.JSON(http.StatusCreated, failure(invalid))
	}

	res, err := h.service.AddRecording(c.Request().Context(), toAddRecordingInput(req, requestToken(c, req.Token)))
	return addResult(c, res, err)
}
