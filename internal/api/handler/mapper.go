package handler

import (
	"github.com/allegro-music/allegro/internal/core/domain"
	"github.com/allegro-music/allegro/internal/core/ports"
)

// --- Request → Service input ---

func toAddPieceInput(req addPieceRequest, token string) ports.AddPieceInput {
	return ports.AddPieceInput{
		Name:          req.Name,
		Movements:     req.Movements,
		Description:   req.Description,
		ComposerIDs:   req.ComposerIDs,
		SongwriterIDs: req.SongwriterIDs,
		Token:         token,
	}
}

func toAddReleaseInput(req addReleaseRequest, token string) ports.AddReleaseInput {
	return ports.AddReleaseInput{
		Name:         req.Name,
		Description:  req.Description,
		PerformerIDs: req.PerformerIDs,
		HasImage:     req.HasImage,
		Token:        token,
	}
}

func toAddRecordingInput(req addRecordingRequest, token string) ports.AddRecordingInput {
	return ports.AddRecordingInput{
		PieceID:      req.PieceID,
		ReleaseID:    req.ReleaseID,
		PerformerIDs: req.PerformerIDs,
		TrackNumber:  req.TrackNumber,
		Token:        token,
	}
}

// --- Domain → Response ---

func toContributorResponse(c domain.Contributor) contributorResponse {
	return contributorResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		ImagePath:   c.ImagePath,
	}
}

func toPieceResponse(v domain.PieceView) pieceResponse {
	return pieceResponse{
		ID:            v.ID,
		Name:          v.Name,
		Movements:     v.Movements,
		Description:   v.Description,
		ComposerIDs:   v.ComposerIDs,
		SongwriterIDs: v.SongwriterIDs,
	}
}

func toReleaseResponse(v domain.ReleaseView) releaseResponse {
	return releaseResponse{
		ID:           v.ID,
		Name:         v.Name,
		Description:  v.Description,
		ImagePath:    v.ImagePath,
		PerformerIDs: v.PerformerIDs,
		RecordingIDs: v.RecordingIDs,
	}
}

func toRecordingResponse(v domain.RecordingView) recordingResponse {
	return recordingResponse{
		ID:           v.ID,
		PieceName:    v.PieceName,
		PieceID:      v.PieceID,
		ReleaseID:    v.ReleaseID,
		TrackNumber:  v.TrackNumber,
		FilePath:     v.FilePath,
		PerformerIDs: v.PerformerIDs,
	}
}

// mapAll converts a slice, never returning nil so lists encode as [].
func mapAll[T, R any](items []T, fn func(T) R) []R {
	out := make([]R, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}
