// file: internal/repositories/subscription_repository.go
package repositories

import (
	"context"
	"fmt"

	"vidtube/internal/database"
	"vidtube/internal/models"

	"go.uber.org/zap"
)

type subscriptionRepository struct {
	*BaseRepository
}

// NewSubscriptionRepository creates a new SubscriptionRepository.
func NewSubscriptionRepository(db *database.Manager, logger *zap.Logger) SubscriptionRepository {
	return &subscriptionRepository{BaseRepository: NewBaseRepository(db, logger)}
}

func (r *subscriptionRepository) Get(ctx context.Context, subscriberID, channelID int64) (*models.Subscription, error) {
	query := `
		SELECT id, subscriber_id, channel_id, created_at
		FROM subscriptions
		WHERE subscriber_id = $1 AND channel_id = $2`

	var sub models.Subscription
	err := r.QueryRowContext(ctx, query, subscriberID, channelID).Scan(
		&sub.ID, &sub.SubscriberID, &sub.ChannelID, &sub.CreatedAt,
	)
	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	return &sub, nil
}

// Create inserts a subscription row; the unique (subscriber_id, channel_id)
// index backstops concurrent toggles, surfaced as ErrDuplicateRelation.
func (r *subscriptionRepository) Create(ctx context.Context, sub *models.Subscription) error {
	query := `
		INSERT INTO subscriptions (subscriber_id, channel_id)
		VALUES ($1, $2)
		RETURNING id, created_at`

	err := r.QueryRowContext(ctx, query, sub.SubscriberID, sub.ChannelID).
		Scan(&sub.ID, &sub.CreatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return ErrDuplicateRelation
		}
		r.GetLogger().Error("Failed to create subscription",
			zap.Error(err),
			zap.Int64("subscriber_id", sub.SubscriberID),
			zap.Int64("channel_id", sub.ChannelID),
		)
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	return nil
}

func (r *subscriptionRepository) Delete(ctx context.Context, subscriberID, channelID int64) (bool, error) {
	result, err := r.ExecContext(ctx,
		`DELETE FROM subscriptions WHERE subscriber_id = $1 AND channel_id = $2`,
		subscriberID, channelID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete subscription: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read delete result: %w", err)
	}
	return affected > 0, nil
}

// ListSubscribers returns everyone subscribed to a channel, with the
// subscriber's public profile joined in.
func (r *subscriptionRepository) ListSubscribers(ctx context.Context, channelID int64) ([]*models.Subscription, error) {
	query := `
		SELECT s.id, s.subscriber_id, s.channel_id, s.created_at,
		       u.username, u.full_name, u.avatar_url
		FROM subscriptions s
		INNER JOIN users u ON s.subscriber_id = u.id
		WHERE s.channel_id = $1
		ORDER BY s.created_at ASC`

	rows, err := r.QueryContext(ctx, query, channelID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}
	defer rows.Close()

	var subs []*models.Subscription
	for rows.Next() {
		var sub models.Subscription
		var subscriber models.PublicUser
		err := rows.Scan(
			&sub.ID, &sub.SubscriberID, &sub.ChannelID, &sub.CreatedAt,
			&subscriber.Username, &subscriber.FullName, &subscriber.AvatarURL,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subscriber row: %w", err)
		}
		subscriber.ID = sub.SubscriberID
		sub.Subscriber = &subscriber
		subs = append(subs, &sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate subscriber rows: %w", err)
	}
	return subs, nil
}

// ListSubscribedChannels returns the channels a user subscribes to, with the
// channel owner's public profile joined in.
func (r *subscriptionRepository) ListSubscribedChannels(ctx context.Context, subscriberID int64) ([]*models.Subscription, error) {
	query := `
		SELECT s.id, s.subscriber_id, s.channel_id, s.created_at,
		       u.username, u.full_name, u.avatar_url
		FROM subscriptions s
		INNER JOIN users u ON s.channel_id = u.id
		WHERE s.subscriber_id = $1
		ORDER BY s.created_at ASC`

	rows, err := r.QueryContext(ctx, query, subscriberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribed channels: %w", err)
	}
	defer rows.Close()

	var subs []*models.Subscription
	for rows.Next() {
		var sub models.Subscription
		var channel models.PublicUser
		err := rows.Scan(
			&sub.ID, &sub.SubscriberID, &sub.ChannelID, &sub.CreatedAt,
			&channel.Username, &channel.FullName, &channel.AvatarURL,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subscribed channel row: %w", err)
		}
		channel.ID = sub.ChannelID
		sub.Channel = &channel
		subs = append(subs, &sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate subscribed channel rows: %w", err)
	}
	return subs, nil
}
