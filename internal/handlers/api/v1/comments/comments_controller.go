// ===============================
// FILE: internal/handlers/api/v1/comments/comments_controller.go
// ===============================

package comments

import (
	"encoding/json"
	"net/http"
	"strconv"

	"vidtube/internal/config"
	"vidtube/internal/contextutils"
	"vidtube/internal/response"
	"vidtube/internal/services"

	"go.uber.org/zap"
)

// CommentController handles comment API endpoints.
type CommentController struct {
	services *services.Collection
	cfg      *config.Config
	logger   *zap.Logger
	builder  *response.Builder
}

// NewCommentController creates a new comment controller.
func NewCommentController(svc *services.Collection, cfg *config.Config, logger *zap.Logger, builder *response.Builder) *CommentController {
	return &CommentController{services: svc, cfg: cfg, logger: logger, builder: builder}
}

// AddComment handles POST /api/v1/videos/{videoId}/comments
func (c *CommentController) AddComment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	videoID, err := parseID(r, "videoId")
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}

	var body struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		c.builder.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}

	comment, err := c.services.Comment.AddComment(ctx, &services.AddCommentRequest{
		VideoID: videoID,
		OwnerID: contextutils.GetActorID(ctx),
		Content: body.Content,
	})
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteCreated(w, r, comment, "comment added successfully")
}

// ListVideoComments handles GET /api/v1/videos/{videoId}/comments
func (c *CommentController) ListVideoComments(w http.ResponseWriter, r *http.Request) {
	videoID, err := parseID(r, "videoId")
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}

	params, err := response.ParsePagination(r, c.cfg.Pagination.DefaultLimit, c.cfg.Pagination.MaxLimit)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}

	page, err := c.services.Comment.ListVideoComments(r.Context(), videoID, params, viewerID(r))
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, page, "comments fetched successfully")
}

// UpdateComment handles PATCH /api/v1/comments/{id}
func (c *CommentController) UpdateComment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	commentID, err := parseID(r, "id")
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}

	var body struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		c.builder.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}

	comment, err := c.services.Comment.UpdateComment(ctx, &services.UpdateCommentRequest{
		CommentID: commentID,
		ActorID:   contextutils.GetActorID(ctx),
		Content:   body.Content,
	})
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, comment, "comment updated successfully")
}

// DeleteComment handles DELETE /api/v1/comments/{id}
func (c *CommentController) DeleteComment(w http.ResponseWriter, r *http.Request) {
	commentID, err := parseID(r, "id")
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}

	if err := c.services.Comment.DeleteComment(r.Context(), commentID, contextutils.GetActorID(r.Context())); err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, nil, "comment deleted successfully")
}

func parseID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, services.NewValidationError("invalid "+name, err)
	}
	return id, nil
}

func viewerID(r *http.Request) *int64 {
	if actorID := contextutils.GetActorID(r.Context()); actorID != 0 {
		return &actorID
	}
	return nil
}
