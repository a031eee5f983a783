package service

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"github.com/google/uuid"
	"golang.org/x/crypto/pbkdf2"
)

const (
	pbkdf2Iterations = 100_000
	hashLen          = sha256.Size
)

// HashPassword derives the stored hash for password under salt.
func HashPassword(password, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), pbkdf2Iterations, hashLen, sha256.New)
	return hex.EncodeToString(key)
}

// VerifyPassword re-derives the hash and compares it in constant time.
func VerifyPassword(password, salt, hash string) bool {
	want, err := hex.DecodeString(hash)
	if err != nil || len(want) != hashLen {
		return false
	}
	got := pbkdf2.Key([]byte(password), []byte(salt), pbkdf2Iterations, hashLen, sha256.New)
	return subtle.ConstantTimeCompare(got, want) == 1
}

// NewSalt returns a fresh random salt for one user.
func NewSalt() string {
	return uuid.NewString()
}

// NewSessionToken returns a fresh random session token.
func NewSessionToken() string {
	return uuid.NewString()
}
