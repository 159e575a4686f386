// ===============================
// FILE: internal/handlers/api/v1/dashboard/dashboard_controller.go
// ===============================

package dashboard

import (
	"net/http"

	"vidtube/internal/contextutils"
	"vidtube/internal/response"
	"vidtube/internal/services"

	"go.uber.org/zap"
)

// DashboardController handles the authenticated channel owner's rollup
// endpoints. The actor is always the channel; drafts are included because
// owners manage their own content here.
type DashboardController struct {
	services *services.Collection
	logger   *zap.Logger
	builder  *response.Builder
}

// NewDashboardController creates a new dashboard controller.
func NewDashboardController(svc *services.Collection, logger *zap.Logger, builder *response.Builder) *DashboardController {
	return &DashboardController{services: svc, logger: logger, builder: builder}
}

// GetChannelStats handles GET /api/v1/dashboard/stats
func (c *DashboardController) GetChannelStats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.services.Dashboard.GetChannelStats(r.Context(), contextutils.GetActorID(r.Context()))
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, stats, "channel stats fetched successfully")
}

// GetChannelVideos handles GET /api/v1/dashboard/videos
func (c *DashboardController) GetChannelVideos(w http.ResponseWriter, r *http.Request) {
	videos, err := c.services.Dashboard.GetChannelVideos(r.Context(), contextutils.GetActorID(r.Context()))
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, videos, "channel videos fetched successfully")
}
