package handler

// Field names are the wire contract shared with existing clients; keep them
// byte-for-byte.

// response is the envelope of every processed request.
type response[T any] struct {
	Success bool `json:"success"`
	Message T    `json:"message"`
}

func success[T any](message T) response[T] {
	return response[T]{Success: true, Message: message}
}

func failure[T any](message T) response[T] {
	return response[T]{Success: false, Message: message}
}

// --- Auth ---

type authRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type addUserRequest struct {
	Username string `json:"username" validate:"required,max=50"`
	Password string `json:"password" validate:"required"`
	Token    string `json:"token"`
}

type authResponse struct {
	Access bool    `json:"access"`
	Token  *string `json:"token"`
}

// --- Catalog writes ---

type addArtistRequest struct {
	Name        string  `json:"name"        validate:"required"`
	Description *string `json:"description"`
	HasImage    bool    `json:"has_image"`
	ArtistType  string  `json:"artist_type" validate:"required,oneof=performer composer songwriter"`
	Token       string  `json:"token"`
}

type addReleaseRequest struct {
	Name         string  `json:"name"          validate:"required"`
	PerformerIDs []int32 `json:"performer_ids"`
	Description  *string `json:"description"`
	HasImage     bool    `json:"has_image"`
	Token        string  `json:"token"`
}

type addPieceRequest struct {
	Name          string  `json:"name"           validate:"required"`
	Movements     *int32  `json:"movements"      validate:"omitempty,min=0"`
	ComposerIDs   []int32 `json:"composer_ids"`
	SongwriterIDs []int32 `json:"songwriter_ids"`
	Description   *string `json:"description"`
	Token         string  `json:"token"`
}

type addRecordingRequest struct {
	PieceID      int32   `json:"piece_id"`
	ReleaseID    int32   `json:"release_id"`
	PerformerIDs []int32 `json:"performer_ids"`
	TrackNumber  int32   `json:"track_number"`
	Token        string  `json:"token"`
}

// --- Reads ---

type searchRequest struct {
	Query string `json:"query"`
	Token string `json:"token"`
}

type idRequest struct {
	ID int32 `json:"id"`
}

type contributorResponse struct {
	ID          int32   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	ImagePath   *string `json:"image_path"`
}

// pieceResponse: songwriter_ids is null when the piece has none.
type pieceResponse struct {
	ID            int32   `json:"id"`
	Name          string  `json:"name"`
	Movements     *int32  `json:"movements"`
	Description   *string `json:"description"`
	ComposerIDs   []int32 `json:"composer_ids"`
	SongwriterIDs []int32 `json:"songwriter_ids"`
}

// releaseResponse: recording_ids is null when the release has none.
type releaseResponse struct {
	ID           int32   `json:"id"`
	Name         string  `json:"name"`
	Description  *string `json:"description"`
	ImagePath    *string `json:"image_path"`
	PerformerIDs []int32 `json:"performer_ids"`
	RecordingIDs []int32 `json:"recording_ids"`
}

type recordingResponse struct {
	ID           int32   `json:"id"`
	PieceName    string  `json:"piece_name"`
	PieceID      int32   `json:"piece_id"`
	ReleaseID    int32   `json:"release_id"`
	TrackNumber  int32   `json:"track_number"`
	FilePath     *string `json:"file_path"`
	PerformerIDs []int32 `json:"performer_ids"`
}
