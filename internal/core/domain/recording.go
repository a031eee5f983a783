package domain

// Recording is one track of a release. PieceName is copied from the piece when
// the recording is created and is not kept in sync afterwards.
type Recording struct {
	ID          int32
	PieceName   string
	PieceID     int32
	ReleaseID   int32
	TrackNumber int32
	FilePath    *string
}

// RecordingView adds performer identifiers. Unlike pieces and releases, an
// empty performer list stays an empty slice.
type RecordingView struct {
	Recording
	PerformerIDs []int32
}

// NotFoundRecording is the sentinel view returned when a lookup misses.
func NotFoundRecording() RecordingView {
	return RecordingView{Recording: Recording{ID: SentinelID}, PerformerIDs: []int32{}}
}
