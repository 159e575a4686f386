// file: internal/repositories/like_repository_test.go
package repositories

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"vidtube/internal/database"
	"vidtube/internal/models"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMockManager(t *testing.T) (*database.Manager, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return database.NewManagerFromDB(db, zap.NewNop()), mock
}

func TestLikeRepositoryGet_AbsentRowReturnsNil(t *testing.T) {
	manager, mock := newMockManager(t)
	repo := NewLikeRepository(manager, zap.NewNop())

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, target_kind, target_id, created_at")).
		WithArgs(int64(1), models.LikeTargetVideo, int64(9)).
		WillReturnError(sql.ErrNoRows)

	like, err := repo.Get(context.Background(), 1, models.LikeTargetVideo, 9)
	require.NoError(t, err)
	assert.Nil(t, like)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeRepositoryCreate_ReturnsRowIdentity(t *testing.T) {
	manager, mock := newMockManager(t)
	repo := NewLikeRepository(manager, zap.NewNop())

	created := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO likes (user_id, target_kind, target_id)")).
		WithArgs(int64(1), models.LikeTargetVideo, int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(42), created))

	like := &models.Like{UserID: 1, TargetKind: models.LikeTargetVideo, TargetID: 9}
	require.NoError(t, repo.Create(context.Background(), like))
	assert.Equal(t, int64(42), like.ID)
	assert.Equal(t, created, like.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeRepositoryCreate_UniqueViolationSurfacesDuplicate(t *testing.T) {
	manager, mock := newMockManager(t)
	repo := NewLikeRepository(manager, zap.NewNop())

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO likes (user_id, target_kind, target_id)")).
		WithArgs(int64(1), models.LikeTargetVideo, int64(9)).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "uq_likes_user_target"})

	err := repo.Create(context.Background(), &models.Like{UserID: 1, TargetKind: models.LikeTargetVideo, TargetID: 9})
	assert.ErrorIs(t, err, ErrDuplicateRelation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeRepositoryDelete_ReportsWhetherARowExisted(t *testing.T) {
	manager, mock := newMockManager(t)
	repo := NewLikeRepository(manager, zap.NewNop())
	ctx := context.Background()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM likes WHERE user_id = $1 AND target_kind = $2 AND target_id = $3")).
		WithArgs(int64(1), models.LikeTargetComment, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	removed, err := repo.Delete(ctx, 1, models.LikeTargetComment, 5)
	require.NoError(t, err)
	assert.True(t, removed)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM likes WHERE user_id = $1 AND target_kind = $2 AND target_id = $3")).
		WithArgs(int64(1), models.LikeTargetComment, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	removed, err = repo.Delete(ctx, 1, models.LikeTargetComment, 5)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeRepositoryCountByTarget(t *testing.T) {
	manager, mock := newMockManager(t)
	repo := NewLikeRepository(manager, zap.NewNop())

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM likes WHERE target_kind = $1 AND target_id = $2")).
		WithArgs(models.LikeTargetTweet, int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(7)))

	count, err := repo.CountByTarget(context.Background(), models.LikeTargetTweet, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
