// file: internal/services/video_service.go
package services

import (
	"context"
	"fmt"
	"math"

	"vidtube/internal/events"
	"vidtube/internal/models"
	"vidtube/internal/repositories"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type videoService struct {
	videos    repositories.VideoRepository
	users     repositories.UserRepository
	storage   MediaStorage
	bus       *events.Bus
	validator *validator.Validate
	logger    *zap.Logger
	folder    string
}

// NewVideoService creates a new VideoService.
func NewVideoService(
	videos repositories.VideoRepository,
	users repositories.UserRepository,
	storage MediaStorage,
	bus *events.Bus,
	validator *validator.Validate,
	logger *zap.Logger,
	folder string,
) VideoService {
	return &videoService{
		videos:    videos,
		users:     users,
		storage:   storage,
		bus:       bus,
		validator: validator,
		logger:    logger,
		folder:    folder,
	}
}

// PublishVideo uploads the media and thumbnail, then persists the video with
// the duration reported by the media store, rounded to whole seconds.
func (s *videoService) PublishVideo(ctx context.Context, req *PublishVideoRequest) (*models.Video, error) {
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}

	videoUpload, err := s.storage.UploadFile(ctx, req.VideoFile, s.folder+"/videos")
	if err != nil {
		return nil, NewInternalError("failed to upload video file", err)
	}

	thumbUpload, err := s.storage.UploadFile(ctx, req.Thumbnail, s.folder+"/thumbnails")
	if err != nil {
		// The video asset is already stored; clean it up so a failed publish
		// leaves nothing behind.
		if delErr := s.storage.DeleteFile(ctx, videoUpload.PublicID); delErr != nil {
			s.logger.Warn("Failed to clean up orphaned video asset",
				zap.String("public_id", videoUpload.PublicID),
				zap.Error(delErr))
		}
		return nil, NewInternalError("failed to upload thumbnail", err)
	}

	published := true
	if req.IsPublished != nil {
		published = *req.IsPublished
	}

	video := &models.Video{
		OwnerID:      req.OwnerID,
		Title:        req.Title,
		Description:  req.Description,
		VideoURL:     videoUpload.URL,
		ThumbnailURL: thumbUpload.URL,
		Duration:     math.Round(videoUpload.Duration),
		IsPublished:  published,
	}

	if err := s.videos.Create(ctx, video); err != nil {
		return nil, NewInternalError("failed to create video", err)
	}

	s.logger.Info("Video published",
		zap.Int64("video_id", video.ID),
		zap.Int64("owner_id", video.OwnerID),
		zap.Float64("media_duration", video.Duration))
	s.bus.Publish(ctx, events.Event{
		Type:    events.TypeVideoPublished,
		ActorID: video.OwnerID,
		Payload: map[string]interface{}{"video_id": video.ID},
	})

	video.DurationFormatted = models.FormatDuration(video.Duration)
	return video, nil
}

// GetVideo returns a single enriched video and counts the view. The read is
// unfiltered: unpublished videos resolve for any viewer who has the ID.
func (s *videoService) GetVideo(ctx context.Context, videoID int64, viewerID *int64) (*models.Video, error) {
	video, err := s.videos.GetByID(ctx, videoID, viewerID)
	if err != nil {
		return nil, NewInternalError("failed to get video", err)
	}
	if video == nil {
		return nil, NewNotFoundError("video not found")
	}

	if err := s.videos.IncrementViews(ctx, videoID); err != nil {
		// A lost view count never blocks the read.
		s.logger.Warn("Failed to increment views",
			zap.Int64("video_id", videoID),
			zap.Error(err))
	} else {
		video.Views++
	}

	video.DurationFormatted = models.FormatDuration(video.Duration)
	return video, nil
}

// ListVideos returns a page of published videos matching the filter.
func (s *videoService) ListVideos(ctx context.Context, req *ListVideosRequest) (*models.PaginatedResponse[*models.Video], error) {
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}
	if err := validateStruct(s.validator, req.Params); err != nil {
		return nil, err
	}

	filter := repositories.VideoFilter{
		Query:         req.Query,
		OwnerID:       req.OwnerID,
		PublishedOnly: true,
		SortBy:        req.SortBy,
		SortOrder:     req.SortOrder,
	}

	page, err := s.videos.List(ctx, filter, req.Params, req.ViewerID)
	if err != nil {
		return nil, NewInternalError("failed to list videos", err)
	}
	formatDurations(page.Items)
	return page, nil
}

// UpdateVideo applies an owner-only partial update to title, description or
// thumbnail.
func (s *videoService) UpdateVideo(ctx context.Context, req *UpdateVideoRequest) (*models.Video, error) {
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}
	if req.Title == nil && req.Description == nil && req.Thumbnail == nil {
		return nil, NewValidationError("at least one field must be provided", nil)
	}

	video, err := s.videos.GetByID(ctx, req.VideoID, nil)
	if err != nil {
		return nil, NewInternalError("failed to get video", err)
	}
	if video == nil {
		return nil, NewNotFoundError("video not found")
	}
	if err := requireOwner(video.OwnerID, req.ActorID, "video"); err != nil {
		return nil, err
	}

	if req.Title != nil {
		video.Title = *req.Title
	}
	if req.Description != nil {
		video.Description = *req.Description
	}
	if req.Thumbnail != nil {
		upload, err := s.storage.UploadFile(ctx, req.Thumbnail, s.folder+"/thumbnails")
		if err != nil {
			return nil, NewInternalError("failed to upload thumbnail", err)
		}
		video.ThumbnailURL = upload.URL
	}

	if err := s.videos.Update(ctx, video); err != nil {
		return nil, NewInternalError("failed to update video", err)
	}
	video.DurationFormatted = models.FormatDuration(video.Duration)
	return video, nil
}

// DeleteVideo removes an owner's video.
func (s *videoService) DeleteVideo(ctx context.Context, videoID, actorID int64) error {
	video, err := s.videos.GetByID(ctx, videoID, nil)
	if err != nil {
		return NewInternalError("failed to get video", err)
	}
	if video == nil {
		return NewNotFoundError("video not found")
	}
	if err := requireOwner(video.OwnerID, actorID, "video"); err != nil {
		return err
	}

	if err := s.videos.Delete(ctx, videoID); err != nil {
		return NewInternalError("failed to delete video", err)
	}
	s.logger.Info("Video deleted",
		zap.Int64("video_id", videoID),
		zap.Int64("actor_id", actorID))
	s.bus.Publish(ctx, events.Event{
		Type:    events.TypeVideoDeleted,
		ActorID: actorID,
		Payload: map[string]interface{}{"video_id": videoID},
	})
	return nil
}

// TogglePublishStatus flips the publish flag of an owner's video.
func (s *videoService) TogglePublishStatus(ctx context.Context, videoID, actorID int64) (*models.Video, error) {
	video, err := s.videos.GetByID(ctx, videoID, nil)
	if err != nil {
		return nil, NewInternalError("failed to get video", err)
	}
	if video == nil {
		return nil, NewNotFoundError("video not found")
	}
	if err := requireOwner(video.OwnerID, actorID, "video"); err != nil {
		return nil, err
	}

	if err := s.videos.SetPublished(ctx, videoID, !video.IsPublished); err != nil {
		return nil, NewInternalError("failed to toggle publish status", err)
	}
	video.IsPublished = !video.IsPublished
	video.DurationFormatted = models.FormatDuration(video.Duration)
	return video, nil
}

// ListChannelVideos returns a channel's videos. Drafts are visible only to
// the channel owner; every other viewer sees published videos.
func (s *videoService) ListChannelVideos(ctx context.Context, channelID int64, viewerID *int64) ([]*models.Video, error) {
	exists, err := s.users.Exists(ctx, channelID)
	if err != nil {
		return nil, NewInternalError("failed to check channel", err)
	}
	if !exists {
		return nil, NewNotFoundError(fmt.Sprintf("channel %d not found", channelID))
	}

	videos, err := s.videos.ListByOwner(ctx, channelID, viewerID)
	if err != nil {
		return nil, NewInternalError("failed to list channel videos", err)
	}

	if viewerID == nil || *viewerID != channelID {
		published := videos[:0]
		for _, v := range videos {
			if v.IsPublished {
				published = append(published, v)
			}
		}
		videos = published
	}
	formatDurations(videos)
	return videos, nil
}

func formatDurations(videos []*models.Video) {
	for _, v := range videos {
		v.DurationFormatted = models.FormatDuration(v.Duration)
	}
}
