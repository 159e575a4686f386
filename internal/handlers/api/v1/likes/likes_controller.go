// ===============================
// FILE: internal/handlers/api/v1/likes/likes_controller.go
// ===============================

package likes

import (
	"net/http"
	"strconv"

	"vidtube/internal/config"
	"vidtube/internal/contextutils"
	"vidtube/internal/models"
	"vidtube/internal/response"
	"vidtube/internal/services"

	"go.uber.org/zap"
)

// LikeController handles like toggle endpoints.
type LikeController struct {
	services *services.Collection
	cfg      *config.Config
	logger   *zap.Logger
	builder  *response.Builder
}

// NewLikeController creates a new like controller.
func NewLikeController(svc *services.Collection, cfg *config.Config, logger *zap.Logger, builder *response.Builder) *LikeController {
	return &LikeController{services: svc, cfg: cfg, logger: logger, builder: builder}
}

// ToggleVideoLike handles POST /api/v1/likes/videos/{id}
func (c *LikeController) ToggleVideoLike(w http.ResponseWriter, r *http.Request) {
	c.toggle(w, r, models.LikeTargetVideo)
}

// ToggleCommentLike handles POST /api/v1/likes/comments/{id}
func (c *LikeController) ToggleCommentLike(w http.ResponseWriter, r *http.Request) {
	c.toggle(w, r, models.LikeTargetComment)
}

// ToggleTweetLike handles POST /api/v1/likes/tweets/{id}
func (c *LikeController) ToggleTweetLike(w http.ResponseWriter, r *http.Request) {
	c.toggle(w, r, models.LikeTargetTweet)
}

// ListLikedVideos handles GET /api/v1/likes/videos
func (c *LikeController) ListLikedVideos(w http.ResponseWriter, r *http.Request) {
	params, err := response.ParsePagination(r, c.cfg.Pagination.DefaultLimit, c.cfg.Pagination.MaxLimit)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}

	page, err := c.services.Like.ListLikedVideos(r.Context(), contextutils.GetActorID(r.Context()), params)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, page, "liked videos fetched successfully")
}

func (c *LikeController) toggle(w http.ResponseWriter, r *http.Request, kind models.LikeTarget) {
	ctx := r.Context()
	targetID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || targetID <= 0 {
		c.builder.WriteError(w, r, services.NewValidationError("invalid id", err))
		return
	}

	result, err := c.services.Like.ToggleLike(ctx, contextutils.GetActorID(ctx), kind, targetID)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}

	message := "like removed"
	if result.Active {
		message = "like added"
	}
	c.builder.WriteSuccess(w, r, result, message)
}
