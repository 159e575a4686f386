// file: internal/repositories/tweet_repository.go
package repositories

import (
	"context"
	"fmt"

	"vidtube/internal/database"
	"vidtube/internal/models"

	"go.uber.org/zap"
)

type tweetRepository struct {
	*BaseRepository
}

// NewTweetRepository creates a new TweetRepository.
func NewTweetRepository(db *database.Manager, logger *zap.Logger) TweetRepository {
	return &tweetRepository{BaseRepository: NewBaseRepository(db, logger)}
}

func (r *tweetRepository) Create(ctx context.Context, tweet *models.Tweet) error {
	query := `
		INSERT INTO tweets (owner_id, content)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at`

	err := r.QueryRowContext(ctx, query, tweet.OwnerID, tweet.Content).
		Scan(&tweet.ID, &tweet.CreatedAt, &tweet.UpdatedAt)
	if err != nil {
		r.GetLogger().Error("Failed to create tweet",
			zap.Error(err),
			zap.Int64("owner_id", tweet.OwnerID),
		)
		return fmt.Errorf("failed to create tweet: %w", err)
	}
	return nil
}

func (r *tweetRepository) GetByID(ctx context.Context, id int64) (*models.Tweet, error) {
	query := `
		SELECT id, owner_id, content, created_at, updated_at
		FROM tweets
		WHERE id = $1`

	var tweet models.Tweet
	err := r.QueryRowContext(ctx, query, id).Scan(
		&tweet.ID, &tweet.OwnerID, &tweet.Content, &tweet.CreatedAt, &tweet.UpdatedAt,
	)
	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get tweet by id: %w", err)
	}
	return &tweet, nil
}

func (r *tweetRepository) Update(ctx context.Context, tweet *models.Tweet) error {
	query := `
		UPDATE tweets
		SET content = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.QueryRowContext(ctx, query, tweet.ID, tweet.Content).Scan(&tweet.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update tweet: %w", err)
	}
	return nil
}

func (r *tweetRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.ExecContext(ctx, `DELETE FROM tweets WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete tweet: %w", err)
	}
	return nil
}

// ListByOwner returns a page of a user's tweets enriched with the owner
// projection, like counts and the viewer's like state, newest first.
func (r *tweetRepository) ListByOwner(ctx context.Context, ownerID int64, params models.PaginationParams, viewerID *int64) (*models.PaginatedResponse[*models.Tweet], error) {
	var total int64
	err := r.QueryRowContext(ctx, `SELECT COUNT(*) FROM tweets WHERE owner_id = $1`, ownerID).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("failed to count tweets: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT
			t.id, t.owner_id, t.content, t.created_at, t.updated_at,
			u.username, u.full_name, u.avatar_url,
			COALESCE(lc.total_likes, 0) AS total_likes,
			(vl.id IS NOT NULL) AS is_liked
		FROM tweets t
		INNER JOIN users u ON t.owner_id = u.id
		%s
		%s
		WHERE t.owner_id = $1
		ORDER BY t.created_at DESC
		LIMIT $3 OFFSET $4`,
		likeCountJoin("tweet", "lc", "t.id"),
		viewerLikeJoin("tweet", "vl", "t.id", "$2"),
	)

	rows, err := r.QueryContext(ctx, query, ownerID, nullableID(viewerID), params.Limit, params.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list tweets: %w", err)
	}
	defer rows.Close()

	var tweets []*models.Tweet
	for rows.Next() {
		var tweet models.Tweet
		var owner models.PublicUser
		err := rows.Scan(
			&tweet.ID, &tweet.OwnerID, &tweet.Content, &tweet.CreatedAt, &tweet.UpdatedAt,
			&owner.Username, &owner.FullName, &owner.AvatarURL,
			&tweet.TotalLikes, &tweet.IsLiked,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tweet row: %w", err)
		}
		owner.ID = tweet.OwnerID
		tweet.Owner = &owner
		tweets = append(tweets, &tweet)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tweet rows: %w", err)
	}

	return models.NewPaginatedResponse(tweets, params, total), nil
}
