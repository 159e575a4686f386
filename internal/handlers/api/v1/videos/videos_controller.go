// ===============================
// FILE: internal/handlers/api/v1/videos/videos_controller.go
// ===============================

package videos

import (
	"net/http"
	"strconv"

	"vidtube/internal/config"
	"vidtube/internal/contextutils"
	"vidtube/internal/response"
	"vidtube/internal/services"

	"go.uber.org/zap"
)

// maxUploadMemory bounds the in-memory portion of multipart parsing; larger
// parts spill to temp files.
const maxUploadMemory = 32 << 20

// VideoController handles video API endpoints.
type VideoController struct {
	services *services.Collection
	cfg      *config.Config
	logger   *zap.Logger
	builder  *response.Builder
}

// NewVideoController creates a new video controller.
func NewVideoController(svc *services.Collection, cfg *config.Config, logger *zap.Logger, builder *response.Builder) *VideoController {
	return &VideoController{services: svc, cfg: cfg, logger: logger, builder: builder}
}

// PublishVideo handles POST /api/v1/videos
func (c *VideoController) PublishVideo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actorID := contextutils.GetActorID(ctx)

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		c.builder.WriteError(w, r, services.NewValidationError("invalid multipart form", err))
		return
	}

	req := &services.PublishVideoRequest{
		OwnerID:     actorID,
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
	}
	if raw := r.FormValue("is_published"); raw != "" {
		published, err := strconv.ParseBool(raw)
		if err != nil {
			c.builder.WriteError(w, r, services.NewValidationError("is_published must be a boolean", err))
			return
		}
		req.IsPublished = &published
	}
	if _, header, err := r.FormFile("video"); err == nil {
		req.VideoFile = header
	}
	if _, header, err := r.FormFile("thumbnail"); err == nil {
		req.Thumbnail = header
	}

	video, err := c.services.Video.PublishVideo(ctx, req)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}

	c.logger.Info("Video published via API",
		zap.Int64("video_id", video.ID),
		zap.Int64("owner_id", actorID))
	c.builder.WriteCreated(w, r, video, "video published successfully")
}

// GetVideo handles GET /api/v1/videos/{id}
func (c *VideoController) GetVideo(w http.ResponseWriter, r *http.Request) {
	videoID, err := parseID(r, "id")
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}

	video, err := c.services.Video.GetVideo(r.Context(), videoID, viewerID(r))
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, video, "video fetched successfully")
}

// ListVideos handles GET /api/v1/videos
func (c *VideoController) ListVideos(w http.ResponseWriter, r *http.Request) {
	params, err := response.ParsePagination(r, c.cfg.Pagination.DefaultLimit, c.cfg.Pagination.MaxLimit)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}

	req := &services.ListVideosRequest{
		Query:     r.URL.Query().Get("query"),
		SortBy:    r.URL.Query().Get("sort_by"),
		SortOrder: r.URL.Query().Get("sort_order"),
		Params:    params,
		ViewerID:  viewerID(r),
	}
	if raw := r.URL.Query().Get("user_id"); raw != "" {
		ownerID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || ownerID <= 0 {
			c.builder.WriteError(w, r, services.NewValidationError("user_id must be a positive integer", err))
			return
		}
		req.OwnerID = &ownerID
	}

	page, err := c.services.Video.ListVideos(r.Context(), req)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, page, "videos fetched successfully")
}

// UpdateVideo handles PATCH /api/v1/videos/{id}
func (c *VideoController) UpdateVideo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	videoID, err := parseID(r, "id")
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		c.builder.WriteError(w, r, services.NewValidationError("invalid multipart form", err))
		return
	}

	req := &services.UpdateVideoRequest{
		VideoID: videoID,
		ActorID: contextutils.GetActorID(ctx),
	}
	if r.Form.Has("title") {
		title := r.FormValue("title")
		req.Title = &title
	}
	if r.Form.Has("description") {
		description := r.FormValue("description")
		req.Description = &description
	}
	if _, header, err := r.FormFile("thumbnail"); err == nil {
		req.Thumbnail = header
	}

	video, err := c.services.Video.UpdateVideo(ctx, req)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, video, "video updated successfully")
}

// DeleteVideo handles DELETE /api/v1/videos/{id}
func (c *VideoController) DeleteVideo(w http.ResponseWriter, r *http.Request) {
	videoID, err := parseID(r, "id")
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}

	if err := c.services.Video.DeleteVideo(r.Context(), videoID, contextutils.GetActorID(r.Context())); err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, nil, "video deleted successfully")
}

// ListChannelVideos handles GET /api/v1/channels/{channelId}/videos
func (c *VideoController) ListChannelVideos(w http.ResponseWriter, r *http.Request) {
	channelID, err := parseID(r, "channelId")
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}

	videos, err := c.services.Video.ListChannelVideos(r.Context(), channelID, viewerID(r))
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, videos, "channel videos fetched successfully")
}

// TogglePublish handles PATCH /api/v1/videos/{id}/toggle-publish
func (c *VideoController) TogglePublish(w http.ResponseWriter, r *http.Request) {
	videoID, err := parseID(r, "id")
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}

	video, err := c.services.Video.TogglePublishStatus(r.Context(), videoID, contextutils.GetActorID(r.Context()))
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, video, "publish status toggled successfully")
}

// parseID extracts a positive integer path parameter.
func parseID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, services.NewValidationError("invalid "+name, err)
	}
	return id, nil
}

// viewerID returns the actor as an optional viewer for read enrichment.
func viewerID(r *http.Request) *int64 {
	if actorID := contextutils.GetActorID(r.Context()); actorID != 0 {
		return &actorID
	}
	return nil
}
