// file: internal/services/playlist_service.go
package services

import (
	"context"
	"fmt"

	"vidtube/internal/models"
	"vidtube/internal/repositories"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type playlistService struct {
	playlists repositories.PlaylistRepository
	videos    repositories.VideoRepository
	users     repositories.UserRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPlaylistService creates a new PlaylistService.
func NewPlaylistService(
	playlists repositories.PlaylistRepository,
	videos repositories.VideoRepository,
	users repositories.UserRepository,
	validator *validator.Validate,
	logger *zap.Logger,
) PlaylistService {
	return &playlistService{
		playlists: playlists,
		videos:    videos,
		users:     users,
		validator: validator,
		logger:    logger,
	}
}

// CreatePlaylist creates an empty playlist.
func (s *playlistService) CreatePlaylist(ctx context.Context, req *CreatePlaylistRequest) (*models.Playlist, error) {
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}

	playlist := &models.Playlist{
		OwnerID:     req.OwnerID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.playlists.Create(ctx, playlist); err != nil {
		return nil, NewInternalError("failed to create playlist", err)
	}
	return playlist, nil
}

// GetPlaylist returns a playlist with its ordered video IDs.
func (s *playlistService) GetPlaylist(ctx context.Context, playlistID int64) (*models.Playlist, error) {
	playlist, err := s.playlists.GetByID(ctx, playlistID)
	if err != nil {
		return nil, NewInternalError("failed to get playlist", err)
	}
	if playlist == nil {
		return nil, NewNotFoundError("playlist not found")
	}
	return playlist, nil
}

// ListUserPlaylists returns a user's playlists without expanding videos.
func (s *playlistService) ListUserPlaylists(ctx context.Context, userID int64) ([]*models.Playlist, error) {
	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return nil, NewInternalError("failed to check user", err)
	}
	if !exists {
		return nil, NewNotFoundError(fmt.Sprintf("user %d not found", userID))
	}

	playlists, err := s.playlists.ListByOwner(ctx, userID)
	if err != nil {
		return nil, NewInternalError("failed to list playlists", err)
	}
	return playlists, nil
}

// UpdatePlaylist applies an owner-only partial update to name or description.
func (s *playlistService) UpdatePlaylist(ctx context.Context, req *UpdatePlaylistRequest) (*models.Playlist, error) {
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}
	if req.Name == nil && req.Description == nil {
		return nil, NewValidationError("at least one field must be provided", nil)
	}

	playlist, err := s.playlists.GetByID(ctx, req.PlaylistID)
	if err != nil {
		return nil, NewInternalError("failed to get playlist", err)
	}
	if playlist == nil {
		return nil, NewNotFoundError("playlist not found")
	}
	if err := requireOwner(playlist.OwnerID, req.ActorID, "playlist"); err != nil {
		return nil, err
	}

	if req.Name != nil {
		playlist.Name = *req.Name
	}
	if req.Description != nil {
		playlist.Description = *req.Description
	}

	if err := s.playlists.Update(ctx, playlist); err != nil {
		return nil, NewInternalError("failed to update playlist", err)
	}
	return playlist, nil
}

// DeletePlaylist removes an owner's playlist and its membership rows.
func (s *playlistService) DeletePlaylist(ctx context.Context, playlistID, actorID int64) error {
	playlist, err := s.playlists.GetByID(ctx, playlistID)
	if err != nil {
		return NewInternalError("failed to get playlist", err)
	}
	if playlist == nil {
		return NewNotFoundError("playlist not found")
	}
	if err := requireOwner(playlist.OwnerID, actorID, "playlist"); err != nil {
		return err
	}

	if err := s.playlists.Delete(ctx, playlistID); err != nil {
		return NewInternalError("failed to delete playlist", err)
	}
	s.logger.Info("Playlist deleted",
		zap.Int64("playlist_id", playlistID),
		zap.Int64("actor_id", actorID))
	return nil
}

// AddVideoToPlaylist appends a video to an owner's playlist. The same video
// may appear more than once.
func (s *playlistService) AddVideoToPlaylist(ctx context.Context, playlistID, videoID, actorID int64) (*models.Playlist, error) {
	playlist, err := s.playlists.GetByID(ctx, playlistID)
	if err != nil {
		return nil, NewInternalError("failed to get playlist", err)
	}
	if playlist == nil {
		return nil, NewNotFoundError("playlist not found")
	}
	if err := requireOwner(playlist.OwnerID, actorID, "playlist"); err != nil {
		return nil, err
	}

	video, err := s.videos.GetByID(ctx, videoID, nil)
	if err != nil {
		return nil, NewInternalError("failed to get video", err)
	}
	if video == nil {
		return nil, NewNotFoundError("video not found")
	}

	if err := s.playlists.AddVideo(ctx, playlistID, videoID); err != nil {
		return nil, NewInternalError("failed to add video to playlist", err)
	}
	playlist.VideoIDs = append(playlist.VideoIDs, videoID)
	return playlist, nil
}

// RemoveVideoFromPlaylist removes every occurrence of a video from an owner's
// playlist.
func (s *playlistService) RemoveVideoFromPlaylist(ctx context.Context, playlistID, videoID, actorID int64) (*models.Playlist, error) {
	playlist, err := s.playlists.GetByID(ctx, playlistID)
	if err != nil {
		return nil, NewInternalError("failed to get playlist", err)
	}
	if playlist == nil {
		return nil, NewNotFoundError("playlist not found")
	}
	if err := requireOwner(playlist.OwnerID, actorID, "playlist"); err != nil {
		return nil, err
	}

	if err := s.playlists.RemoveVideo(ctx, playlistID, videoID); err != nil {
		return nil, NewInternalError("failed to remove video from playlist", err)
	}

	remaining := playlist.VideoIDs[:0]
	for _, id := range playlist.VideoIDs {
		if id != videoID {
			remaining = append(remaining, id)
		}
	}
	playlist.VideoIDs = remaining
	return playlist, nil
}
