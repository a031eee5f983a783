package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// errorResponse is the envelope for routing errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Renders routing errors (unknown path, wrong method) as {"error": "<message>"}.
//   - Answers everything else, undecodable bodies included, with 500 and no
//     body, after logging the cause.
//
// Handlers answer every processed request themselves, so anything reaching
// this handler is either a routing miss or a failure.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) && isRoutingError(he.Code) {
			_ = c.JSON(he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)})
			return
		}

		log.Error().
			Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("request failed")

		_ = c.NoContent(http.StatusInternalServerError)
	}
}

func isRoutingError(code int) bool {
	return code == http.StatusNotFound || code == http.StatusMethodNotAllowed
}
