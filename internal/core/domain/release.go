package domain

// Release is the base row of an album or other published collection.
type Release struct {
	ID          int32
	Name        string
	Description *string
	ImagePath   *string
}

// ReleaseView adds performer and recording identifiers. RecordingIDs is nil
// when the release has no recordings; PerformerIDs is never nil.
type ReleaseView struct {
	Release
	PerformerIDs []int32
	RecordingIDs []int32
}

// NotFoundRelease is the sentinel view returned when a lookup misses.
func NotFoundRelease() ReleaseView {
	return ReleaseView{Release: Release{ID: SentinelID}, PerformerIDs: []int32{}}
}
