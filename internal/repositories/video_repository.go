// file: internal/repositories/video_repository.go
package repositories

import (
	"context"
	"fmt"
	"strings"

	"vidtube/internal/database"
	"vidtube/internal/models"

	"go.uber.org/zap"
)

type videoRepository struct {
	*BaseRepository
}

// NewVideoRepository creates a new VideoRepository.
func NewVideoRepository(db *database.Manager, logger *zap.Logger) VideoRepository {
	return &videoRepository{BaseRepository: NewBaseRepository(db, logger)}
}

// videoSelectColumns is shared by every enriched video read. The owner join
// projects public profile fields only; credential columns are never selected.
const videoSelectColumns = `
		v.id, v.owner_id, v.title, v.description, v.video_url, v.thumbnail_url,
		v.duration, v.views, v.is_published, v.created_at, v.updated_at,
		u.username, u.full_name, u.avatar_url,
		COALESCE(lc.total_likes, 0) AS total_likes,
		(vl.id IS NOT NULL) AS is_liked`

func (r *videoRepository) Create(ctx context.Context, video *models.Video) error {
	query := `
		INSERT INTO videos (owner_id, title, description, video_url, thumbnail_url, duration, is_published)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, views, created_at, updated_at`

	err := r.QueryRowContext(
		ctx, query,
		video.OwnerID, video.Title, video.Description,
		video.VideoURL, video.ThumbnailURL, video.Duration, video.IsPublished,
	).Scan(&video.ID, &video.Views, &video.CreatedAt, &video.UpdatedAt)
	if err != nil {
		r.GetLogger().Error("Failed to create video",
			zap.Error(err),
			zap.Int64("owner_id", video.OwnerID),
		)
		return fmt.Errorf("failed to create video: %w", err)
	}
	return nil
}

func (r *videoRepository) GetByID(ctx context.Context, id int64, viewerID *int64) (*models.Video, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM videos v
		INNER JOIN users u ON v.owner_id = u.id
		%s
		%s
		WHERE v.id = $1`,
		videoSelectColumns,
		likeCountJoin("video", "lc", "v.id"),
		viewerLikeJoin("video", "vl", "v.id", "$2"),
	)

	video, err := r.scanVideo(r.QueryRowContext(ctx, query, id, nullableID(viewerID)))
	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get video by id: %w", err)
	}
	return video, nil
}

func (r *videoRepository) Update(ctx context.Context, video *models.Video) error {
	query := `
		UPDATE videos
		SET title = $2, description = $3, thumbnail_url = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.QueryRowContext(ctx, query, video.ID, video.Title, video.Description, video.ThumbnailURL).
		Scan(&video.UpdatedAt)
	if err != nil {
		if r.IsNotFound(err) {
			return fmt.Errorf("video %d vanished during update", video.ID)
		}
		return fmt.Errorf("failed to update video: %w", err)
	}
	return nil
}

func (r *videoRepository) Delete(ctx context.Context, id int64) error {
	// Deletion does not cascade into comments or likes; orphaned rows are a
	// known gap carried over from the original data model.
	if _, err := r.ExecContext(ctx, `DELETE FROM videos WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}
	return nil
}

func (r *videoRepository) SetPublished(ctx context.Context, id int64, published bool) error {
	query := `UPDATE videos SET is_published = $2, updated_at = NOW() WHERE id = $1`
	if _, err := r.ExecContext(ctx, query, id, published); err != nil {
		return fmt.Errorf("failed to set publish state: %w", err)
	}
	return nil
}

func (r *videoRepository) IncrementViews(ctx context.Context, id int64) error {
	if _, err := r.ExecContext(ctx, `UPDATE videos SET views = views + 1 WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}
	return nil
}

// sortColumns whitelists client-supplied sort fields.
var sortColumns = map[string]string{
	"created_at": "v.created_at",
	"views":      "v.views",
	"duration":   "v.duration",
	"title":      "v.title",
}

func (r *videoRepository) List(ctx context.Context, filter VideoFilter, params models.PaginationParams, viewerID *int64) (*models.PaginatedResponse[*models.Video], error) {
	where := []string{"1=1"}
	args := []interface{}{nullableID(viewerID)}

	if filter.PublishedOnly {
		where = append(where, "v.is_published = TRUE")
	}
	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		where = append(where, fmt.Sprintf("v.title ILIKE $%d", len(args)))
	}
	if filter.OwnerID != nil {
		args = append(args, *filter.OwnerID)
		where = append(where, fmt.Sprintf("v.owner_id = $%d", len(args)))
	}

	orderBy := "v.created_at"
	if col, ok := sortColumns[filter.SortBy]; ok {
		orderBy = col
	}
	direction := "ASC"
	if strings.EqualFold(filter.SortOrder, "desc") {
		direction = "DESC"
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM videos v WHERE %s`, strings.Join(where, " AND "))
	var total int64
	// The count query binds the same args minus the leading viewer id.
	if err := r.QueryRowContext(ctx, shiftPlaceholders(countQuery, 1), args[1:]...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count videos: %w", err)
	}

	args = append(args, params.Limit, params.Offset())
	query := fmt.Sprintf(`
		SELECT %s
		FROM videos v
		INNER JOIN users u ON v.owner_id = u.id
		%s
		%s
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d`,
		videoSelectColumns,
		likeCountJoin("video", "lc", "v.id"),
		viewerLikeJoin("video", "vl", "v.id", "$1"),
		strings.Join(where, " AND "),
		orderBy, direction,
		len(args)-1, len(args),
	)

	videos, err := r.queryVideos(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return models.NewPaginatedResponse(videos, params, total), nil
}

func (r *videoRepository) ListByOwner(ctx context.Context, ownerID int64, viewerID *int64) ([]*models.Video, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM videos v
		INNER JOIN users u ON v.owner_id = u.id
		%s
		%s
		WHERE v.owner_id = $2
		ORDER BY v.created_at DESC`,
		videoSelectColumns,
		likeCountJoin("video", "lc", "v.id"),
		viewerLikeJoin("video", "vl", "v.id", "$1"),
	)

	return r.queryVideos(ctx, query, nullableID(viewerID), ownerID)
}

func (r *videoRepository) ListLikedBy(ctx context.Context, userID int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Video], error) {
	var total int64
	err := r.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM likes WHERE target_kind = 'video' AND user_id = $1`, userID,
	).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("failed to count liked videos: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM likes mine
		INNER JOIN videos v ON mine.target_kind = 'video' AND mine.target_id = v.id
		INNER JOIN users u ON v.owner_id = u.id
		%s
		%s
		WHERE mine.user_id = $1
		ORDER BY mine.created_at DESC
		LIMIT $2 OFFSET $3`,
		videoSelectColumns,
		likeCountJoin("video", "lc", "v.id"),
		viewerLikeJoin("video", "vl", "v.id", "$1"),
	)

	videos, err := r.queryVideos(ctx, query, userID, params.Limit, params.Offset())
	if err != nil {
		return nil, err
	}
	return models.NewPaginatedResponse(videos, params, total), nil
}

func (r *videoRepository) GetChannelStats(ctx context.Context, channelID int64) (*models.ChannelStats, error) {
	query := `
		SELECT
			COUNT(v.id) AS total_videos,
			COALESCE(SUM(v.views), 0) AS total_views,
			(SELECT COUNT(*)
			 FROM likes l
			 INNER JOIN videos lv ON l.target_kind = 'video' AND l.target_id = lv.id
			 WHERE lv.owner_id = $1) AS total_likes,
			(SELECT COUNT(*) FROM subscriptions s WHERE s.channel_id = $1) AS total_subscribers
		FROM videos v
		WHERE v.owner_id = $1`

	var stats models.ChannelStats
	err := r.QueryRowContext(ctx, query, channelID).Scan(
		&stats.TotalVideos, &stats.TotalViews, &stats.TotalLikes, &stats.TotalSubscribers,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get channel stats: %w", err)
	}
	return &stats, nil
}

// ===============================
// SCANNING HELPERS
// ===============================

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *videoRepository) scanVideo(row rowScanner) (*models.Video, error) {
	var video models.Video
	var owner models.PublicUser
	err := row.Scan(
		&video.ID, &video.OwnerID, &video.Title, &video.Description,
		&video.VideoURL, &video.ThumbnailURL, &video.Duration, &video.Views,
		&video.IsPublished, &video.CreatedAt, &video.UpdatedAt,
		&owner.Username, &owner.FullName, &owner.AvatarURL,
		&video.TotalLikes, &video.IsLiked,
	)
	if err != nil {
		return nil, err
	}
	owner.ID = video.OwnerID
	video.Owner = &owner
	video.DurationFormatted = models.FormatDuration(video.Duration)
	return &video, nil
}

func (r *videoRepository) queryVideos(ctx context.Context, query string, args ...interface{}) ([]*models.Video, error) {
	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	defer rows.Close()

	var videos []*models.Video
	for rows.Next() {
		video, err := r.scanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan video row: %w", err)
		}
		videos = append(videos, video)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate video rows: %w", err)
	}
	return videos, nil
}

// shiftPlaceholders renumbers $N placeholders down by offset, for reusing a
// WHERE fragment in a query with fewer leading bind parameters.
func shiftPlaceholders(query string, offset int) string {
	for n := 2; n <= 9; n++ {
		query = strings.ReplaceAll(query,
			fmt.Sprintf("$%d", n),
			fmt.Sprintf("$%d", n-offset),
		)
	}
	return query
}
