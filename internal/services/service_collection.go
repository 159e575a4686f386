// file: internal/services/service_collection.go
package services

import (
	"vidtube/internal/cache"
	"vidtube/internal/config"
	"vidtube/internal/events"
	"vidtube/internal/repositories"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Collection bundles all services for handler wiring.
type Collection struct {
	Video        VideoService
	Comment      CommentService
	Tweet        TweetService
	Like         LikeService
	Subscription SubscriptionService
	Playlist     PlaylistService
	Dashboard    DashboardService
}

// NewCollection wires every service against the shared repositories, cache
// and media storage.
func NewCollection(
	repos *repositories.Collection,
	cacheStore cache.Cache,
	storage MediaStorage,
	bus *events.Bus,
	cfg *config.Config,
	logger *zap.Logger,
) *Collection {
	v := validator.New()

	return &Collection{
		Video:        NewVideoService(repos.Video, repos.User, storage, bus, v, logger, cfg.Cloudinary.Folder),
		Comment:      NewCommentService(repos.Comment, repos.Video, v, logger),
		Tweet:        NewTweetService(repos.Tweet, repos.User, v, logger),
		Like:         NewLikeService(repos.Like, repos.Video, repos.Comment, repos.Tweet, bus, v, logger),
		Subscription: NewSubscriptionService(repos.Subscription, repos.User, bus, logger),
		Playlist:     NewPlaylistService(repos.Playlist, repos.Video, repos.User, v, logger),
		Dashboard:    NewDashboardService(repos.Video, repos.User, cacheStore, cfg.Redis.StatsTTL, logger),
	}
}
