package domain

import "fmt"

// SentinelID marks a view that stands in for a row that does not exist.
const SentinelID int32 = -1

// Path prefixes for entities that are not contributors.
const (
	ReleasePathKind   = "release"
	RecordingPathKind = "recording"
)

// DerivedPath builds the image or file name of an entity once its id is known.
func DerivedPath(kind string, id int32) string {
	return fmt.Sprintf("%s-%d", kind, id)
}
