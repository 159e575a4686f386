// file: internal/repositories/playlist_repository.go
package repositories

import (
	"context"
	"fmt"

	"vidtube/internal/database"
	"vidtube/internal/models"

	"go.uber.org/zap"
)

type playlistRepository struct {
	*BaseRepository
}

// NewPlaylistRepository creates a new PlaylistRepository.
func NewPlaylistRepository(db *database.Manager, logger *zap.Logger) PlaylistRepository {
	return &playlistRepository{BaseRepository: NewBaseRepository(db, logger)}
}

func (r *playlistRepository) Create(ctx context.Context, playlist *models.Playlist) error {
	query := `
		INSERT INTO playlists (owner_id, name, description)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	err := r.QueryRowContext(ctx, query, playlist.OwnerID, playlist.Name, playlist.Description).
		Scan(&playlist.ID, &playlist.CreatedAt, &playlist.UpdatedAt)
	if err != nil {
		r.GetLogger().Error("Failed to create playlist",
			zap.Error(err),
			zap.Int64("owner_id", playlist.OwnerID),
		)
		return fmt.Errorf("failed to create playlist: %w", err)
	}
	return nil
}

func (r *playlistRepository) GetByID(ctx context.Context, id int64) (*models.Playlist, error) {
	query := `
		SELECT id, owner_id, name, description, created_at, updated_at
		FROM playlists
		WHERE id = $1`

	var playlist models.Playlist
	err := r.QueryRowContext(ctx, query, id).Scan(
		&playlist.ID, &playlist.OwnerID, &playlist.Name,
		&playlist.Description, &playlist.CreatedAt, &playlist.UpdatedAt,
	)
	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get playlist by id: %w", err)
	}

	// Positions preserve insertion order and permit duplicate entries.
	rows, err := r.QueryContext(ctx,
		`SELECT video_id FROM playlist_videos WHERE playlist_id = $1 ORDER BY position ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load playlist videos: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var videoID int64
		if err := rows.Scan(&videoID); err != nil {
			return nil, fmt.Errorf("failed to scan playlist video row: %w", err)
		}
		playlist.VideoIDs = append(playlist.VideoIDs, videoID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate playlist video rows: %w", err)
	}

	return &playlist, nil
}

func (r *playlistRepository) Update(ctx context.Context, playlist *models.Playlist) error {
	query := `
		UPDATE playlists
		SET name = $2, description = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.QueryRowContext(ctx, query, playlist.ID, playlist.Name, playlist.Description).
		Scan(&playlist.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update playlist: %w", err)
	}
	return nil
}

func (r *playlistRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.ExecContext(ctx, `DELETE FROM playlists WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}
	return nil
}

// ListByOwner returns a user's playlists without expanding their video lists.
func (r *playlistRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*models.Playlist, error) {
	query := `
		SELECT id, owner_id, name, description, created_at, updated_at
		FROM playlists
		WHERE owner_id = $1
		ORDER BY created_at DESC`

	rows, err := r.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}
	defer rows.Close()

	var playlists []*models.Playlist
	for rows.Next() {
		var playlist models.Playlist
		err := rows.Scan(
			&playlist.ID, &playlist.OwnerID, &playlist.Name,
			&playlist.Description, &playlist.CreatedAt, &playlist.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan playlist row: %w", err)
		}
		playlists = append(playlists, &playlist)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate playlist rows: %w", err)
	}
	return playlists, nil
}

func (r *playlistRepository) AddVideo(ctx context.Context, playlistID, videoID int64) error {
	query := `
		INSERT INTO playlist_videos (playlist_id, video_id, position)
		VALUES ($1, $2, COALESCE((SELECT MAX(position) + 1 FROM playlist_videos WHERE playlist_id = $1), 0))`

	if _, err := r.ExecContext(ctx, query, playlistID, videoID); err != nil {
		return fmt.Errorf("failed to add video to playlist: %w", err)
	}
	return nil
}

func (r *playlistRepository) RemoveVideo(ctx context.Context, playlistID, videoID int64) error {
	// Removes every occurrence, mirroring a pull-by-value on the sequence.
	if _, err := r.ExecContext(ctx,
		`DELETE FROM playlist_videos WHERE playlist_id = $1 AND video_id = $2`,
		playlistID, videoID,
	); err != nil {
		return fmt.Errorf("failed to remove video from playlist: %w", err)
	}
	return nil
}
