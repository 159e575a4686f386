// file: internal/router/router.go
package router

import (
	"encoding/json"
	"net/http"

	"vidtube/internal/config"
	"vidtube/internal/database"
	"vidtube/internal/handlers/api/v1/comments"
	"vidtube/internal/handlers/api/v1/dashboard"
	"vidtube/internal/handlers/api/v1/likes"
	"vidtube/internal/handlers/api/v1/playlists"
	"vidtube/internal/handlers/api/v1/subscriptions"
	"vidtube/internal/handlers/api/v1/tweets"
	"vidtube/internal/handlers/api/v1/videos"
	"vidtube/internal/middleware"
	"vidtube/internal/monitoring"
	"vidtube/internal/response"
	"vidtube/internal/services"

	"go.uber.org/zap"
)

// SetupRouter configures all HTTP routes and returns the root handler.
func SetupRouter(
	svc *services.Collection,
	db *database.Manager,
	monitor *monitoring.Dashboard,
	auth *middleware.AuthMiddleware,
	builder *response.Builder,
	cfg *config.Config,
	logger *zap.Logger,
) http.Handler {
	mux := http.NewServeMux()

	videoCtrl := videos.NewVideoController(svc, cfg, logger, builder)
	commentCtrl := comments.NewCommentController(svc, cfg, logger, builder)
	tweetCtrl := tweets.NewTweetController(svc, cfg, logger, builder)
	likeCtrl := likes.NewLikeController(svc, cfg, logger, builder)
	subCtrl := subscriptions.NewSubscriptionController(svc, logger, builder)
	playlistCtrl := playlists.NewPlaylistController(svc, logger, builder)
	dashCtrl := dashboard.NewDashboardController(svc, logger, builder)

	// Health
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		health := db.Health(r.Context())
		status := http.StatusOK
		if health.Status != database.StatusHealthy {
			status = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(health)
	})
	mux.HandleFunc("GET /debug/status", monitor.StatusHandler)

	// Videos
	mux.Handle("POST /api/v1/videos", auth.RequireAuth(http.HandlerFunc(videoCtrl.PublishVideo)))
	mux.Handle("GET /api/v1/videos", auth.OptionalAuth(http.HandlerFunc(videoCtrl.ListVideos)))
	mux.Handle("GET /api/v1/videos/{id}", auth.OptionalAuth(http.HandlerFunc(videoCtrl.GetVideo)))
	mux.Handle("PATCH /api/v1/videos/{id}", auth.RequireAuth(http.HandlerFunc(videoCtrl.UpdateVideo)))
	mux.Handle("DELETE /api/v1/videos/{id}", auth.RequireAuth(http.HandlerFunc(videoCtrl.DeleteVideo)))
	mux.Handle("PATCH /api/v1/videos/{id}/toggle-publish", auth.RequireAuth(http.HandlerFunc(videoCtrl.TogglePublish)))
	mux.Handle("GET /api/v1/channels/{channelId}/videos", auth.OptionalAuth(http.HandlerFunc(videoCtrl.ListChannelVideos)))

	// Comments
	mux.Handle("POST /api/v1/videos/{videoId}/comments", auth.RequireAuth(http.HandlerFunc(commentCtrl.AddComment)))
	mux.Handle("GET /api/v1/videos/{videoId}/comments", auth.OptionalAuth(http.HandlerFunc(commentCtrl.ListVideoComments)))
	mux.Handle("PATCH /api/v1/comments/{id}", auth.RequireAuth(http.HandlerFunc(commentCtrl.UpdateComment)))
	mux.Handle("DELETE /api/v1/comments/{id}", auth.RequireAuth(http.HandlerFunc(commentCtrl.DeleteComment)))

	// Tweets
	mux.Handle("POST /api/v1/tweets", auth.RequireAuth(http.HandlerFunc(tweetCtrl.CreateTweet)))
	mux.Handle("GET /api/v1/users/{userId}/tweets", auth.OptionalAuth(http.HandlerFunc(tweetCtrl.ListUserTweets)))
	mux.Handle("PATCH /api/v1/tweets/{id}", auth.RequireAuth(http.HandlerFunc(tweetCtrl.UpdateTweet)))
	mux.Handle("DELETE /api/v1/tweets/{id}", auth.RequireAuth(http.HandlerFunc(tweetCtrl.DeleteTweet)))

	// Likes
	mux.Handle("POST /api/v1/likes/videos/{id}", auth.RequireAuth(http.HandlerFunc(likeCtrl.ToggleVideoLike)))
	mux.Handle("POST /api/v1/likes/comments/{id}", auth.RequireAuth(http.HandlerFunc(likeCtrl.ToggleCommentLike)))
	mux.Handle("POST /api/v1/likes/tweets/{id}", auth.RequireAuth(http.HandlerFunc(likeCtrl.ToggleTweetLike)))
	mux.Handle("GET /api/v1/likes/videos", auth.RequireAuth(http.HandlerFunc(likeCtrl.ListLikedVideos)))

	// Subscriptions
	mux.Handle("POST /api/v1/subscriptions/channels/{channelId}", auth.RequireAuth(http.HandlerFunc(subCtrl.ToggleSubscription)))
	mux.Handle("GET /api/v1/subscriptions/channels/{channelId}/subscribers", auth.OptionalAuth(http.HandlerFunc(subCtrl.ListChannelSubscribers)))
	mux.Handle("GET /api/v1/subscriptions/users/{userId}/channels", auth.OptionalAuth(http.HandlerFunc(subCtrl.ListSubscribedChannels)))

	// Playlists
	mux.Handle("POST /api/v1/playlists", auth.RequireAuth(http.HandlerFunc(playlistCtrl.CreatePlaylist)))
	mux.Handle("GET /api/v1/playlists/{id}", auth.OptionalAuth(http.HandlerFunc(playlistCtrl.GetPlaylist)))
	mux.Handle("GET /api/v1/users/{userId}/playlists", auth.OptionalAuth(http.HandlerFunc(playlistCtrl.ListUserPlaylists)))
	mux.Handle("PATCH /api/v1/playlists/{id}", auth.RequireAuth(http.HandlerFunc(playlistCtrl.UpdatePlaylist)))
	mux.Handle("DELETE /api/v1/playlists/{id}", auth.RequireAuth(http.HandlerFunc(playlistCtrl.DeletePlaylist)))
	mux.Handle("POST /api/v1/playlists/{id}/videos/{videoId}", auth.RequireAuth(http.HandlerFunc(playlistCtrl.AddVideo)))
	mux.Handle("DELETE /api/v1/playlists/{id}/videos/{videoId}", auth.RequireAuth(http.HandlerFunc(playlistCtrl.RemoveVideo)))

	// Dashboard (actor = channel)
	mux.Handle("GET /api/v1/dashboard/stats", auth.RequireAuth(http.HandlerFunc(dashCtrl.GetChannelStats)))
	mux.Handle("GET /api/v1/dashboard/videos", auth.RequireAuth(http.HandlerFunc(dashCtrl.GetChannelVideos)))

	return middleware.Chain(mux,
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logging(logger),
		middleware.CORS(cfg.Server.CORSOrigin),
	)
}
