// file: internal/repositories/like_repository.go
package repositories

import (
	"context"
	"fmt"

	"vidtube/internal/database"
	"vidtube/internal/models"

	"go.uber.org/zap"
)

type likeRepository struct {
	*BaseRepository
}

// NewLikeRepository creates a new LikeRepository.
func NewLikeRepository(db *database.Manager, logger *zap.Logger) LikeRepository {
	return &likeRepository{BaseRepository: NewBaseRepository(db, logger)}
}

func (r *likeRepository) Get(ctx context.Context, userID int64, kind models.LikeTarget, targetID int64) (*models.Like, error) {
	query := `
		SELECT id, user_id, target_kind, target_id, created_at
		FROM likes
		WHERE user_id = $1 AND target_kind = $2 AND target_id = $3`

	var like models.Like
	err := r.QueryRowContext(ctx, query, userID, kind, targetID).Scan(
		&like.ID, &like.UserID, &like.TargetKind, &like.TargetID, &like.CreatedAt,
	)
	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get like: %w", err)
	}
	return &like, nil
}

// Create inserts a like row. The unique index on (user_id, target_kind,
// target_id) is the concurrency backstop: a violation means a concurrent
// toggle won the race, surfaced as ErrDuplicateRelation.
func (r *likeRepository) Create(ctx context.Context, like *models.Like) error {
	query := `
		INSERT INTO likes (user_id, target_kind, target_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.QueryRowContext(ctx, query, like.UserID, like.TargetKind, like.TargetID).
		Scan(&like.ID, &like.CreatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return ErrDuplicateRelation
		}
		r.GetLogger().Error("Failed to create like",
			zap.Error(err),
			zap.Int64("user_id", like.UserID),
			zap.String("target_kind", string(like.TargetKind)),
			zap.Int64("target_id", like.TargetID),
		)
		return fmt.Errorf("failed to create like: %w", err)
	}
	return nil
}

func (r *likeRepository) Delete(ctx context.Context, userID int64, kind models.LikeTarget, targetID int64) (bool, error) {
	result, err := r.ExecContext(ctx,
		`DELETE FROM likes WHERE user_id = $1 AND target_kind = $2 AND target_id = $3`,
		userID, kind, targetID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete like: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read delete result: %w", err)
	}
	return affected > 0, nil
}

func (r *likeRepository) CountByTarget(ctx context.Context, kind models.LikeTarget, targetID int64) (int64, error) {
	var count int64
	err := r.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM likes WHERE target_kind = $1 AND target_id = $2`,
		kind, targetID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return count, nil
}
