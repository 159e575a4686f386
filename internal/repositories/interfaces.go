// file: internal/repositories/interfaces.go
package repositories

import (
	"context"

	"vidtube/internal/database"
	"vidtube/internal/models"

	"go.uber.org/zap"
)

// Absent rows are reported as (nil, nil); callers translate that into their
// own not-found error. Store failures are returned wrapped.

// UserRepository defines the read-side user operations this service needs.
// Accounts are provisioned by the external identity service, so there is no
// create path here.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// VideoFilter narrows and orders video listings.
type VideoFilter struct {
	Query         string
	OwnerID       *int64
	PublishedOnly bool
	SortBy        string
	SortOrder     string
}

// VideoRepository defines video data operations, including the enriched
// read-model queries (owner projection, like counts, viewer like state).
type VideoRepository interface {
	Create(ctx context.Context, video *models.Video) error
	GetByID(ctx context.Context, id int64, viewerID *int64) (*models.Video, error)
	Update(ctx context.Context, video *models.Video) error
	Delete(ctx context.Context, id int64) error
	SetPublished(ctx context.Context, id int64, published bool) error
	IncrementViews(ctx context.Context, id int64) error

	List(ctx context.Context, filter VideoFilter, params models.PaginationParams, viewerID *int64) (*models.PaginatedResponse[*models.Video], error)
	ListByOwner(ctx context.Context, ownerID int64, viewerID *int64) ([]*models.Video, error)
	ListLikedBy(ctx context.Context, userID int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Video], error)

	GetChannelStats(ctx context.Context, channelID int64) (*models.ChannelStats, error)
}

// CommentRepository defines comment data operations.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id int64) error
	ListByVideo(ctx context.Context, videoID int64, params models.PaginationParams, viewerID *int64) (*models.PaginatedResponse[*models.Comment], error)
}

// TweetRepository defines tweet data operations.
type TweetRepository interface {
	Create(ctx context.Context, tweet *models.Tweet) error
	GetByID(ctx context.Context, id int64) (*models.Tweet, error)
	Update(ctx context.Context, tweet *models.Tweet) error
	Delete(ctx context.Context, id int64) error
	ListByOwner(ctx context.Context, ownerID int64, params models.PaginationParams, viewerID *int64) (*models.PaginatedResponse[*models.Tweet], error)
}

// LikeRepository maintains like relation rows. Create reports
// ErrDuplicateRelation when the unique (user, kind, target) constraint fires.
type LikeRepository interface {
	Get(ctx context.Context, userID int64, kind models.LikeTarget, targetID int64) (*models.Like, error)
	Create(ctx context.Context, like *models.Like) error
	Delete(ctx context.Context, userID int64, kind models.LikeTarget, targetID int64) (bool, error)
	CountByTarget(ctx context.Context, kind models.LikeTarget, targetID int64) (int64, error)
}

// SubscriptionRepository maintains subscription relation rows. Create reports
// ErrDuplicateRelation when the unique (subscriber, channel) constraint fires.
type SubscriptionRepository interface {
	Get(ctx context.Context, subscriberID, channelID int64) (*models.Subscription, error)
	Create(ctx context.Context, sub *models.Subscription) error
	Delete(ctx context.Context, subscriberID, channelID int64) (bool, error)
	ListSubscribers(ctx context.Context, channelID int64) ([]*models.Subscription, error)
	ListSubscribedChannels(ctx context.Context, subscriberID int64) ([]*models.Subscription, error)
}

// PlaylistRepository defines playlist data operations.
type PlaylistRepository interface {
	Create(ctx context.Context, playlist *models.Playlist) error
	GetByID(ctx context.Context, id int64) (*models.Playlist, error)
	Update(ctx context.Context, playlist *models.Playlist) error
	Delete(ctx context.Context, id int64) error
	ListByOwner(ctx context.Context, ownerID int64) ([]*models.Playlist, error)
	AddVideo(ctx context.Context, playlistID, videoID int64) error
	RemoveVideo(ctx context.Context, playlistID, videoID int64) error
}

// Collection bundles all repositories for service wiring.
type Collection struct {
	User         UserRepository
	Video        VideoRepository
	Comment      CommentRepository
	Tweet        TweetRepository
	Like         LikeRepository
	Subscription SubscriptionRepository
	Playlist     PlaylistRepository
}

// NewCollection builds every repository against the shared database manager.
func NewCollection(db *database.Manager, logger *zap.Logger) *Collection {
	return &Collection{
		User:         NewUserRepository(db, logger),
		Video:        NewVideoRepository(db, logger),
		Comment:      NewCommentRepository(db, logger),
		Tweet:        NewTweetRepository(db, logger),
		Like:         NewLikeRepository(db, logger),
		Subscription: NewSubscriptionRepository(db, logger),
		Playlist:     NewPlaylistRepository(db, logger),
	}
}
