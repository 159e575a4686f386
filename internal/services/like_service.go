// file: internal/services/like_service.go
package services

import (
	"context"
	"fmt"

	"vidtube/internal/events"
	"vidtube/internal/models"
	"vidtube/internal/repositories"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type likeService struct {
	likes     repositories.LikeRepository
	videos    repositories.VideoRepository
	comments  repositories.CommentRepository
	tweets    repositories.TweetRepository
	bus       *events.Bus
	validator *validator.Validate
	logger    *zap.Logger
}

// NewLikeService creates a new LikeService.
func NewLikeService(
	likes repositories.LikeRepository,
	videos repositories.VideoRepository,
	comments repositories.CommentRepository,
	tweets repositories.TweetRepository,
	bus *events.Bus,
	validator *validator.Validate,
	logger *zap.Logger,
) LikeService {
	return &likeService{
		likes:     likes,
		videos:    videos,
		comments:  comments,
		tweets:    tweets,
		bus:       bus,
		validator: validator,
		logger:    logger,
	}
}

// ToggleLike flips the actor's like on a video, comment or tweet. The target
// must exist; the result reports whether the like is active afterwards.
func (s *likeService) ToggleLike(ctx context.Context, actorID int64, kind models.LikeTarget, targetID int64) (*models.ToggleResult, error) {
	if actorID == 0 {
		return nil, NewUnauthorizedError("authentication required")
	}
	if !kind.Valid() {
		return nil, NewValidationError(fmt.Sprintf("unknown like target %q", kind), nil)
	}
	if targetID <= 0 {
		return nil, NewValidationError("target id must be positive", nil)
	}

	exists, err := s.targetExists(ctx, kind, targetID)
	if err != nil {
		return nil, NewInternalError("failed to resolve like target", err)
	}
	if !exists {
		return nil, NewNotFoundError(fmt.Sprintf("%s not found", kind))
	}

	result, err := toggleRelation(ctx,
		func(ctx context.Context) (bool, error) {
			like, err := s.likes.Get(ctx, actorID, kind, targetID)
			return like != nil, err
		},
		func(ctx context.Context) error {
			return s.likes.Create(ctx, &models.Like{
				UserID:     actorID,
				TargetKind: kind,
				TargetID:   targetID,
			})
		},
		func(ctx context.Context) (bool, error) {
			return s.likes.Delete(ctx, actorID, kind, targetID)
		},
	)
	if err != nil {
		return nil, err
	}

	// Best effort: the event carries the post-toggle count so subscribers
	// need not re-query, but a count failure never fails the toggle.
	totalLikes, err := s.likes.CountByTarget(ctx, kind, targetID)
	if err != nil {
		s.logger.Warn("Failed to count likes for event",
			zap.String("target_kind", string(kind)),
			zap.Int64("target_id", targetID),
			zap.Error(err))
	}

	s.logger.Debug("Like toggled",
		zap.Int64("actor_id", actorID),
		zap.String("target_kind", string(kind)),
		zap.Int64("target_id", targetID),
		zap.Bool("active", result.Active))
	s.bus.Publish(ctx, events.Event{
		Type:    events.TypeLikeToggled,
		ActorID: actorID,
		Payload: map[string]interface{}{
			"target_kind": string(kind),
			"target_id":   targetID,
			"active":      result.Active,
			"total_likes": totalLikes,
		},
	})
	return result, nil
}

// ListLikedVideos returns a page of videos the actor has liked, most recently
// liked first.
func (s *likeService) ListLikedVideos(ctx context.Context, actorID int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Video], error) {
	if actorID == 0 {
		return nil, NewUnauthorizedError("authentication required")
	}
	if err := validateStruct(s.validator, params); err != nil {
		return nil, err
	}

	page, err := s.videos.ListLikedBy(ctx, actorID, params)
	if err != nil {
		return nil, NewInternalError("failed to list liked videos", err)
	}
	formatDurations(page.Items)
	return page, nil
}

func (s *likeService) targetExists(ctx context.Context, kind models.LikeTarget, targetID int64) (bool, error) {
	switch kind {
	case models.LikeTargetVideo:
		video, err := s.videos.GetByID(ctx, targetID, nil)
		return video != nil, err
	case models.LikeTargetComment:
		comment, err := s.comments.GetByID(ctx, targetID)
		return comment != nil, err
	case models.LikeTargetTweet:
		tweet, err := s.tweets.GetByID(ctx, targetID)
		return tweet != nil, err
	}
	return false, fmt.Errorf("unknown like target %q", kind)
}
