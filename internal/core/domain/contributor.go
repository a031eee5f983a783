package domain

import (
	"fmt"
	"strings"
)

// ContributorKind distinguishes the three structurally identical contributor
// entities.
type ContributorKind int

const (
	Performer ContributorKind = iota + 1
	Composer
	Songwriter
)

// ContributorKinds lists every kind in route order.
var ContributorKinds = []ContributorKind{Performer, Composer, Songwriter}

// ParseContributorKind maps the wire value of artist_type onto a kind.
func ParseContributorKind(s string) (ContributorKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "performer":
		return Performer, nil
	case "composer":
		return Composer, nil
	case "songwriter":
		return Songwriter, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidArtistType, s)
}

// String returns the wire name, which is also the derived path prefix.
func (k ContributorKind) String() string {
	switch k {
	case Performer:
		return "performer"
	case Composer:
		return "composer"
	case Songwriter:
		return "songwriter"
	}
	return fmt.Sprintf("ContributorKind(%d)", int(k))
}

// Valid reports whether k is one of the declared kinds.
func (k ContributorKind) Valid() bool {
	return k >= Performer && k <= Songwriter
}

// Contributor is a performer, composer or songwriter row.
type Contributor struct {
	ID          int32
	Kind        ContributorKind
	Name        string
	Description *string
	ImagePath   *string
}

// NotFoundContributor is the sentinel returned when a lookup misses.
func NotFoundContributor(kind ContributorKind) Contributor {
	return Contributor{ID: SentinelID, Kind: kind}
}
