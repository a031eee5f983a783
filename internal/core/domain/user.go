package domain

import "time"

// DefaultSessionTTL is how long a session token stays valid after it was issued.
const DefaultSessionTTL = 7 * 24 * time.Hour

// User models an account able to log in. The session fields are rewritten on
// login and are never part of the identity.
type User struct {
	ID               int32
	Username         string
	PasswordHash     string
	Salt             string
	SessionToken     *string
	SessionCreatedAt *time.Time
}

// HasValidSession reports whether the user holds a token issued less than ttl ago.
func (u *User) HasValidSession(now time.Time, ttl time.Duration) bool {
	if u == nil || u.SessionToken == nil || *u.SessionToken == "" || u.SessionCreatedAt == nil {
		return false
	}
	return now.Sub(*u.SessionCreatedAt) < ttl
}
