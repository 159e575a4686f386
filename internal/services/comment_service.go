// file: internal/services/comment_service.go
package services

import (
	"context"

	"vidtube/internal/models"
	"vidtube/internal/repositories"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type commentService struct {
	comments  repositories.CommentRepository
	videos    repositories.VideoRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCommentService creates a new CommentService.
func NewCommentService(
	comments repositories.CommentRepository,
	videos repositories.VideoRepository,
	validator *validator.Validate,
	logger *zap.Logger,
) CommentService {
	return &commentService{
		comments:  comments,
		videos:    videos,
		validator: validator,
		logger:    logger,
	}
}

// AddComment creates a comment on an existing video.
func (s *commentService) AddComment(ctx context.Context, req *AddCommentRequest) (*models.Comment, error) {
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}

	video, err := s.videos.GetByID(ctx, req.VideoID, nil)
	if err != nil {
		return nil, NewInternalError("failed to get video", err)
	}
	if video == nil {
		return nil, NewNotFoundError("video not found")
	}

	comment := &models.Comment{
		VideoID: req.VideoID,
		OwnerID: req.OwnerID,
		Content: req.Content,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, NewInternalError("failed to create comment", err)
	}
	return comment, nil
}

// ListVideoComments returns a page of a video's comments, oldest first.
func (s *commentService) ListVideoComments(ctx context.Context, videoID int64, params models.PaginationParams, viewerID *int64) (*models.PaginatedResponse[*models.Comment], error) {
	if err := validateStruct(s.validator, params); err != nil {
		return nil, err
	}

	video, err := s.videos.GetByID(ctx, videoID, nil)
	if err != nil {
		return nil, NewInternalError("failed to get video", err)
	}
	if video == nil {
		return nil, NewNotFoundError("video not found")
	}

	page, err := s.comments.ListByVideo(ctx, videoID, params, viewerID)
	if err != nil {
		return nil, NewInternalError("failed to list comments", err)
	}
	return page, nil
}

// UpdateComment applies an owner-only content change.
func (s *commentService) UpdateComment(ctx context.Context, req *UpdateCommentRequest) (*models.Comment, error) {
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}

	comment, err := s.comments.GetByID(ctx, req.CommentID)
	if err != nil {
		return nil, NewInternalError("failed to get comment", err)
	}
	if comment == nil {
		return nil, NewNotFoundError("comment not found")
	}
	if err := requireOwner(comment.OwnerID, req.ActorID, "comment"); err != nil {
		return nil, err
	}

	comment.Content = req.Content
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, NewInternalError("failed to update comment", err)
	}
	return comment, nil
}

// DeleteComment removes an owner's comment.
func (s *commentService) DeleteComment(ctx context.Context, commentID, actorID int64) error {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return NewInternalError("failed to get comment", err)
	}
	if comment == nil {
		return NewNotFoundError("comment not found")
	}
	if err := requireOwner(comment.OwnerID, actorID, "comment"); err != nil {
		return err
	}

	if err := s.comments.Delete(ctx, commentID); err != nil {
		return NewInternalError("failed to delete comment", err)
	}
	s.logger.Info("Comment deleted",
		zap.Int64("comment_id", commentID),
		zap.Int64("actor_id", actorID))
	return nil
}
