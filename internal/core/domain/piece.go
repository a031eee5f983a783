package domain

// Piece is the base row of a musical work.
type Piece struct {
	ID          int32
	Name        string
	Movements   *int32
	Description *string
}

// PieceView is a piece with the identifiers of its composers and songwriters.
// SongwriterIDs is nil when the piece has none; ComposerIDs is never nil.
type PieceView struct {
	Piece
	ComposerIDs   []int32
	SongwriterIDs []int32
}

// NotFoundPiece is the sentinel view returned when a lookup misses.
func NotFoundPiece() PieceView {
	return PieceView{Piece: Piece{ID: SentinelID}, ComposerIDs: []int32{}}
}
