// file: internal/repositories/comment_repository.go
package repositories

import (
	"context"
	"fmt"

	"vidtube/internal/database"
	"vidtube/internal/models"

	"go.uber.org/zap"
)

type commentRepository struct {
	*BaseRepository
}

// NewCommentRepository creates a new CommentRepository.
func NewCommentRepository(db *database.Manager, logger *zap.Logger) CommentRepository {
	return &commentRepository{BaseRepository: NewBaseRepository(db, logger)}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (video_id, owner_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	err := r.QueryRowContext(ctx, query, comment.VideoID, comment.OwnerID, comment.Content).
		Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)
	if err != nil {
		r.GetLogger().Error("Failed to create comment",
			zap.Error(err),
			zap.Int64("video_id", comment.VideoID),
			zap.Int64("owner_id", comment.OwnerID),
		)
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	query := `
		SELECT id, video_id, owner_id, content, created_at, updated_at
		FROM comments
		WHERE id = $1`

	var comment models.Comment
	err := r.QueryRowContext(ctx, query, id).Scan(
		&comment.ID, &comment.VideoID, &comment.OwnerID,
		&comment.Content, &comment.CreatedAt, &comment.UpdatedAt,
	)
	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get comment by id: %w", err)
	}
	return &comment, nil
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	query := `
		UPDATE comments
		SET content = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.QueryRowContext(ctx, query, comment.ID, comment.Content).Scan(&comment.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}
	return nil
}

func (r *commentRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}

// ListByVideo returns a page of comments enriched with the owner projection,
// like counts and the viewer's like state, oldest first.
func (r *commentRepository) ListByVideo(ctx context.Context, videoID int64, params models.PaginationParams, viewerID *int64) (*models.PaginatedResponse[*models.Comment], error) {
	var total int64
	err := r.QueryRowContext(ctx, `SELECT COUNT(*) FROM comments WHERE video_id = $1`, videoID).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("failed to count comments: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT
			c.id, c.video_id, c.owner_id, c.content, c.created_at, c.updated_at,
			u.username, u.full_name, u.avatar_url,
			COALESCE(lc.total_likes, 0) AS total_likes,
			(vl.id IS NOT NULL) AS is_liked
		FROM comments c
		INNER JOIN users u ON c.owner_id = u.id
		%s
		%s
		WHERE c.video_id = $1
		ORDER BY c.created_at ASC
		LIMIT $3 OFFSET $4`,
		likeCountJoin("comment", "lc", "c.id"),
		viewerLikeJoin("comment", "vl", "c.id", "$2"),
	)

	rows, err := r.QueryContext(ctx, query, videoID, nullableID(viewerID), params.Limit, params.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		var comment models.Comment
		var owner models.PublicUser
		err := rows.Scan(
			&comment.ID, &comment.VideoID, &comment.OwnerID,
			&comment.Content, &comment.CreatedAt, &comment.UpdatedAt,
			&owner.Username, &owner.FullName, &owner.AvatarURL,
			&comment.TotalLikes, &comment.IsLiked,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment row: %w", err)
		}
		owner.ID = comment.OwnerID
		comment.Owner = &owner
		comments = append(comments, &comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate comment rows: %w", err)
	}

	return models.NewPaginatedResponse(comments, params, total), nil
}
