// ===============================
// FILE: internal/handlers/api/v1/playlists/playlists_controller.go
// ===============================

package playlists

import (
	"encoding/json"
	"net/http"
	"strconv"

	"vidtube/internal/contextutils"
	"vidtube/internal/response"
	"vidtube/internal/services"

	"go.uber.org/zap"
)

// PlaylistController handles playlist API endpoints.
type PlaylistController struct {
	services *services.Collection
	logger   *zap.Logger
	builder  *response.Builder
}

// NewPlaylistController creates a new playlist controller.
func NewPlaylistController(svc *services.Collection, logger *zap.Logger, builder *response.Builder) *PlaylistController {
	return &PlaylistController{services: svc, logger: logger, builder: builder}
}

// CreatePlaylist handles POST /api/v1/playlists
func (c *PlaylistController) CreatePlaylist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var body struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		c.builder.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}

	playlist, err := c.services.Playlist.CreatePlaylist(ctx, &services.CreatePlaylistRequest{
		OwnerID:     contextutils.GetActorID(ctx),
		Name:        body.Name,
		Description: body.Description,
	})
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteCreated(w, r, playlist, "playlist created successfully")
}

// GetPlaylist handles GET /api/v1/playlists/{id}
func (c *PlaylistController) GetPlaylist(w http.ResponseWriter, r *http.Request) {
	playlistID, err := parseID(r, "id")
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}

	playlist, err := c.services.Playlist.GetPlaylist(r.Context(), playlistID)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, playlist, "playlist fetched successfully")
}

// ListUserPlaylists handles GET /api/v1/users/{userId}/playlists
func (c *PlaylistController) ListUserPlaylists(w http.ResponseWriter, r *http.Request) {
	userID, err := parseID(r, "userId")
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}

	playlists, err := c.services.Playlist.ListUserPlaylists(r.Context(), userID)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, playlists, "playlists fetched successfully")
}

// UpdatePlaylist handles PATCH /api/v1/playlists/{id}
func (c *PlaylistController) UpdatePlaylist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	playlistID, err := parseID(r, "id")
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}

	var body struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		c.builder.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}

	playlist, err := c.services.Playlist.UpdatePlaylist(ctx, &services.UpdatePlaylistRequest{
		PlaylistID:  playlistID,
		ActorID:     contextutils.GetActorID(ctx),
		Name:        body.Name,
		Description: body.Description,
	})
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, playlist, "playlist updated successfully")
}

// DeletePlaylist handles DELETE /api/v1/playlists/{id}
func (c *PlaylistController) DeletePlaylist(w http.ResponseWriter, r *http.Request) {
	playlistID, err := parseID(r, "id")
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}

	if err := c.services.Playlist.DeletePlaylist(r.Context(), playlistID, contextutils.GetActorID(r.Context())); err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, nil, "playlist deleted successfully")
}

// AddVideo handles POST /api/v1/playlists/{id}/videos/{videoId}
func (c *PlaylistController) AddVideo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	playlistID, err := parseID(r, "id")
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	videoID, err := parseID(r, "videoId")
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}

	playlist, err := c.services.Playlist.AddVideoToPlaylist(ctx, playlistID, videoID, contextutils.GetActorID(ctx))
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, playlist, "video added to playlist")
}

// RemoveVideo handles DELETE /api/v1/playlists/{id}/videos/{videoId}
func (c *PlaylistController) RemoveVideo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	playlistID, err := parseID(r, "id")
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	videoID, err := parseID(r, "videoId")
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}

	playlist, err := c.services.Playlist.RemoveVideoFromPlaylist(ctx, playlistID, videoID, contextutils.GetActorID(ctx))
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, playlist, "video removed from playlist")
}

func parseID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, services.NewValidationError("invalid "+name, err)
	}
	return id, nil
}
