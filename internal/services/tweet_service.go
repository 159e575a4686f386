// file: internal/services/tweet_service.go
package services

import (
	"context"
	"fmt"

	"vidtube/internal/models"
	"vidtube/internal/repositories"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type tweetService struct {
	tweets    repositories.TweetRepository
	users     repositories.UserRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTweetService creates a new TweetService.
func NewTweetService(
	tweets repositories.TweetRepository,
	users repositories.UserRepository,
	validator *validator.Validate,
	logger *zap.Logger,
) TweetService {
	return &tweetService{
		tweets:    tweets,
		users:     users,
		validator: validator,
		logger:    logger,
	}
}

// CreateTweet creates a short text post.
func (s *tweetService) CreateTweet(ctx context.Context, req *CreateTweetRequest) (*models.Tweet, error) {
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}

	tweet := &models.Tweet{
		OwnerID: req.OwnerID,
		Content: req.Content,
	}
	if err := s.tweets.Create(ctx, tweet); err != nil {
		return nil, NewInternalError("failed to create tweet", err)
	}
	return tweet, nil
}

// ListUserTweets returns a page of a user's tweets, newest first.
func (s *tweetService) ListUserTweets(ctx context.Context, userID int64, params models.PaginationParams, viewerID *int64) (*models.PaginatedResponse[*models.Tweet], error) {
	if err := validateStruct(s.validator, params); err != nil {
		return nil, err
	}

	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return nil, NewInternalError("failed to check user", err)
	}
	if !exists {
		return nil, NewNotFoundError(fmt.Sprintf("user %d not found", userID))
	}

	page, err := s.tweets.ListByOwner(ctx, userID, params, viewerID)
	if err != nil {
		return nil, NewInternalError("failed to list tweets", err)
	}
	return page, nil
}

// UpdateTweet applies an owner-only content change.
func (s *tweetService) UpdateTweet(ctx context.Context, req *UpdateTweetRequest) (*models.Tweet, error) {
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}

	tweet, err := s.tweets.GetByID(ctx, req.TweetID)
	if err != nil {
		return nil, NewInternalError("failed to get tweet", err)
	}
	if tweet == nil {
		return nil, NewNotFoundError("tweet not found")
	}
	if err := requireOwner(tweet.OwnerID, req.ActorID, "tweet"); err != nil {
		return nil, err
	}

	tweet.Content = req.Content
	if err := s.tweets.Update(ctx, tweet); err != nil {
		return nil, NewInternalError("failed to update tweet", err)
	}
	return tweet, nil
}

// DeleteTweet removes an owner's tweet.
func (s *tweetService) DeleteTweet(ctx context.Context, tweetID, actorID int64) error {
	tweet, err := s.tweets.GetByID(ctx, tweetID)
	if err != nil {
		return NewInternalError("failed to get tweet", err)
	}
	if tweet == nil {
		return NewNotFoundError("tweet not found")
	}
	if err := requireOwner(tweet.OwnerID, actorID, "tweet"); err != nil {
		return err
	}

	if err := s.tweets.Delete(ctx, tweetID); err != nil {
		return NewInternalError("failed to delete tweet", err)
	}
	s.logger.Info("Tweet deleted",
		zap.Int64("tweet_id", tweetID),
		zap.Int64("actor_id", actorID))
	return nil
}
