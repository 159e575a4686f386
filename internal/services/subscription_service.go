// file: internal/services/subscription_service.go
package services

import (
	"context"
	"fmt"

	"vidtube/internal/events"
	"vidtube/internal/models"
	"vidtube/internal/repositories"

	"go.uber.org/zap"
)

type subscriptionService struct {
	subs   repositories.SubscriptionRepository
	users  repositories.UserRepository
	bus    *events.Bus
	logger *zap.Logger
}

// NewSubscriptionService creates a new SubscriptionService.
func NewSubscriptionService(
	subs repositories.SubscriptionRepository,
	users repositories.UserRepository,
	bus *events.Bus,
	logger *zap.Logger,
) SubscriptionService {
	return &subscriptionService{subs: subs, users: users, bus: bus, logger: logger}
}

// ToggleSubscription flips the subscriber's subscription to a channel.
// Subscribing to one's own channel is permitted.
func (s *subscriptionService) ToggleSubscription(ctx context.Context, subscriberID, channelID int64) (*models.ToggleResult, error) {
	if subscriberID == 0 {
		return nil, NewUnauthorizedError("authentication required")
	}
	if channelID <= 0 {
		return nil, NewValidationError("channel id must be positive", nil)
	}

	channel, err := s.users.GetByID(ctx, channelID)
	if err != nil {
		return nil, NewInternalError("failed to check channel", err)
	}
	if channel == nil {
		return nil, NewNotFoundError(fmt.Sprintf("channel %d not found", channelID))
	}

	result, err := toggleRelation(ctx,
		func(ctx context.Context) (bool, error) {
			sub, err := s.subs.Get(ctx, subscriberID, channelID)
			return sub != nil, err
		},
		func(ctx context.Context) error {
			return s.subs.Create(ctx, &models.Subscription{
				SubscriberID: subscriberID,
				ChannelID:    channelID,
			})
		},
		func(ctx context.Context) (bool, error) {
			return s.subs.Delete(ctx, subscriberID, channelID)
		},
	)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Subscription toggled",
		zap.Int64("subscriber_id", subscriberID),
		zap.Int64("channel_id", channelID),
		zap.Bool("active", result.Active))
	s.bus.Publish(ctx, events.Event{
		Type:    events.TypeSubscriptionToggle,
		ActorID: subscriberID,
		Payload: map[string]interface{}{
			"channel_id":       channelID,
			"channel_username": channel.Username,
			"active":           result.Active,
		},
	})
	return result, nil
}

// ListChannelSubscribers returns everyone subscribed to the channel.
func (s *subscriptionService) ListChannelSubscribers(ctx context.Context, channelID int64) ([]*models.Subscription, error) {
	exists, err := s.users.Exists(ctx, channelID)
	if err != nil {
		return nil, NewInternalError("failed to check channel", err)
	}
	if !exists {
		return nil, NewNotFoundError(fmt.Sprintf("channel %d not found", channelID))
	}

	subs, err := s.subs.ListSubscribers(ctx, channelID)
	if err != nil {
		return nil, NewInternalError("failed to list subscribers", err)
	}
	return subs, nil
}

// ListSubscribedChannels returns the channels the user subscribes to.
func (s *subscriptionService) ListSubscribedChannels(ctx context.Context, subscriberID int64) ([]*models.Subscription, error) {
	exists, err := s.users.Exists(ctx, subscriberID)
	if err != nil {
		return nil, NewInternalError("failed to check user", err)
	}
	if !exists {
		return nil, NewNotFoundError(fmt.Sprintf("user %d not found", subscriberID))
	}

	subs, err := s.subs.ListSubscribedChannels(ctx, subscriberID)
	if err != nil {
		return nil, NewInternalError("failed to list subscribed channels", err)
	}
	return subs, nil
}
