package handler

import (
	"errors"
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/allegro-music/allegro/internal/api/middleware"
	"github.com/allegro-music/allegro/internal/core/domain"
)

// requestToken returns the token sent in the body, falling back to the
// bearer token extracted by middleware.BearerToken.
func requestToken(c echo.Context, bodyToken string) string {
	if bodyToken != "" {
		return bodyToken
	}
	token, _ := c.Get(middleware.TokenContextKey).(string)
	return token
}

// failureMessage maps errors that end a request with success=false to the
// message sent to the client. ok is false for anything else, which the
// caller returns to the error handler as an infrastructure failure.
func failureMessage(err error) (msg string, ok bool) {
	switch {
	case errors.Is(err, domain.ErrInvalidToken):
		return "Invalid token", true
	case errors.Is(err, domain.ErrNotAdmin):
		return "User is not an admin", true
	case errors.Is(err, domain.ErrUserExists):
		return "User already exists", true
	case errors.Is(err, domain.ErrPieceNotFound):
		return "Piece not found", true
	case errors.Is(err, domain.ErrInvalidArtistType):
		return "Invalid artist type", true
	case errors.Is(err, domain.ErrNotFound):
		return "Not found", true
	}
	return "", false
}

// bindAndValidate decodes the body into req. A decode error is returned as
// is; a validation error is returned as its message with a nil error.
func bindAndValidate(c echo.Context, req any) (invalid string, err error) {
	if err := c.Bind(req); err != nil {
		return "", fmt.Errorf("decode request: %w", err)
	}
	if err := c.Validate(req); err != nil {
		return err.Error(), nil
	}
	return "", nil
}
