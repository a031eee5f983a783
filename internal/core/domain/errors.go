package domain

import "errors"

var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrNotAdmin           = errors.New("user is not an admin")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTooManyAttempts    = errors.New("too many failed login attempts")

	ErrNotFound          = errors.New("not found")
	ErrPieceNotFound     = errors.New("piece not found")
	ErrInvalidArtistType = errors.New("invalid artist type")
)

// IsAuthorization reports whether err is a refusal by the admin check.
func IsAuthorization(err error) bool {
	return errors.Is(err, ErrInvalidToken) || errors.Is(err, ErrNotAdmin)
}
