// file: internal/services/interface.go
package services

import (
	"context"
	"mime/multipart"

	"vidtube/internal/models"
	"vidtube/internal/utils"
)

// ===============================
// SERVICE INTERFACES
// ===============================

// VideoService manages the video lifecycle and video read models.
type VideoService interface {
	PublishVideo(ctx context.Context, req *PublishVideoRequest) (*models.Video, error)
	GetVideo(ctx context.Context, videoID int64, viewerID *int64) (*models.Video, error)
	ListVideos(ctx context.Context, req *ListVideosRequest) (*models.PaginatedResponse[*models.Video], error)
	UpdateVideo(ctx context.Context, req *UpdateVideoRequest) (*models.Video, error)
	DeleteVideo(ctx context.Context, videoID, actorID int64) error
	TogglePublishStatus(ctx context.Context, videoID, actorID int64) (*models.Video, error)
	ListChannelVideos(ctx context.Context, channelID int64, viewerID *int64) ([]*models.Video, error)
}

// CommentService manages comments on videos.
type CommentService interface {
	AddComment(ctx context.Context, req *AddCommentRequest) (*models.Comment, error)
	ListVideoComments(ctx context.Context, videoID int64, params models.PaginationParams, viewerID *int64) (*models.PaginatedResponse[*models.Comment], error)
	UpdateComment(ctx context.Context, req *UpdateCommentRequest) (*models.Comment, error)
	DeleteComment(ctx context.Context, commentID, actorID int64) error
}

// TweetService manages short text posts.
type TweetService interface {
	CreateTweet(ctx context.Context, req *CreateTweetRequest) (*models.Tweet, error)
	ListUserTweets(ctx context.Context, userID int64, params models.PaginationParams, viewerID *int64) (*models.PaginatedResponse[*models.Tweet], error)
	UpdateTweet(ctx context.Context, req *UpdateTweetRequest) (*models.Tweet, error)
	DeleteTweet(ctx context.Context, tweetID, actorID int64) error
}

// LikeService is the toggle engine instantiated for likes. Each call flips
// the relation: the caller never chooses the target state.
type LikeService interface {
	ToggleLike(ctx context.Context, actorID int64, kind models.LikeTarget, targetID int64) (*models.ToggleResult, error)
	ListLikedVideos(ctx context.Context, actorID int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Video], error)
}

// SubscriptionService is the toggle engine instantiated for subscriptions.
type SubscriptionService interface {
	ToggleSubscription(ctx context.Context, subscriberID, channelID int64) (*models.ToggleResult, error)
	ListChannelSubscribers(ctx context.Context, channelID int64) ([]*models.Subscription, error)
	ListSubscribedChannels(ctx context.Context, subscriberID int64) ([]*models.Subscription, error)
}

// PlaylistService manages owner-curated video playlists.
type PlaylistService interface {
	CreatePlaylist(ctx context.Context, req *CreatePlaylistRequest) (*models.Playlist, error)
	GetPlaylist(ctx context.Context, playlistID int64) (*models.Playlist, error)
	ListUserPlaylists(ctx context.Context, userID int64) ([]*models.Playlist, error)
	UpdatePlaylist(ctx context.Context, req *UpdatePlaylistRequest) (*models.Playlist, error)
	DeletePlaylist(ctx context.Context, playlistID, actorID int64) error
	AddVideoToPlaylist(ctx context.Context, playlistID, videoID, actorID int64) (*models.Playlist, error)
	RemoveVideoFromPlaylist(ctx context.Context, playlistID, videoID, actorID int64) (*models.Playlist, error)
}

// DashboardService produces per-channel rollups.
type DashboardService interface {
	GetChannelStats(ctx context.Context, channelID int64) (*models.ChannelStats, error)
	GetChannelVideos(ctx context.Context, channelID int64) ([]*models.Video, error)
}

// MediaStorage is the external object-store boundary. Implementations upload
// a received file and report its public URL and, for videos, its duration.
type MediaStorage interface {
	UploadFile(ctx context.Context, file *multipart.FileHeader, folder string) (*utils.UploadResult, error)
	DeleteFile(ctx context.Context, publicID string) error
}

// ===============================
// REQUEST TYPES
// ===============================

// PublishVideoRequest carries a new video upload.
type PublishVideoRequest struct {
	OwnerID     int64                 `validate:"required"`
	Title       string                `validate:"required,max=255"`
	Description string                `validate:"required,max=5000"`
	IsPublished *bool                 // nil means published
	VideoFile   *multipart.FileHeader `validate:"required"`
	Thumbnail   *multipart.FileHeader `validate:"required"`
}

// ListVideosRequest narrows the public video listing.
type ListVideosRequest struct {
	Query     string
	OwnerID   *int64
	SortBy    string `validate:"omitempty,oneof=created_at views duration title"`
	SortOrder string `validate:"omitempty,oneof=asc desc"`
	Params    models.PaginationParams
	ViewerID  *int64
}

// UpdateVideoRequest carries a partial video update; at least one field must
// be present.
type UpdateVideoRequest struct {
	VideoID     int64 `validate:"required"`
	ActorID     int64 `validate:"required"`
	Title       *string
	Description *string
	Thumbnail   *multipart.FileHeader
}

// AddCommentRequest carries a new comment on a video.
type AddCommentRequest struct {
	VideoID int64  `validate:"required"`
	OwnerID int64  `validate:"required"`
	Content string `validate:"required,max=2000"`
}

// UpdateCommentRequest carries a comment content change.
type UpdateCommentRequest struct {
	CommentID int64  `validate:"required"`
	ActorID   int64  `validate:"required"`
	Content   string `validate:"required,max=2000"`
}

// CreateTweetRequest carries a new tweet.
type CreateTweetRequest struct {
	OwnerID int64  `validate:"required"`
	Content string `validate:"required,max=500"`
}

// UpdateTweetRequest carries a tweet content change.
type UpdateTweetRequest struct {
	TweetID int64  `validate:"required"`
	ActorID int64  `validate:"required"`
	Content string `validate:"required,max=500"`
}

// CreatePlaylistRequest carries a new playlist.
type CreatePlaylistRequest struct {
	OwnerID     int64  `validate:"required"`
	Name        string `validate:"required,max=100"`
	Description string `validate:"required,max=1000"`
}

// UpdatePlaylistRequest carries a partial playlist update; at least one field
// must be present.
type UpdatePlaylistRequest struct {
	PlaylistID  int64 `validate:"required"`
	ActorID     int64 `validate:"required"`
	Name        *string
	Description *string
}
