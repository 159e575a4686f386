package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"vidtube/internal/database"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// ErrDuplicateRelation reports that a relation insert hit the store-level
// uniqueness constraint. The toggle engine treats it as "relation already
// active" rather than a failure.
var ErrDuplicateRelation = errors.New("relation already exists")

const uniqueViolationCode = "23505"

// BaseRepository provides shared database plumbing for all repositories.
type BaseRepository struct {
	db     *database.Manager
	logger *zap.Logger
}

// NewBaseRepository creates a base repository around the database manager.
func NewBaseRepository(db *database.Manager, logger *zap.Logger) *BaseRepository {
	return &BaseRepository{db: db, logger: logger}
}

// ExecContext executes a statement through the managed pool.
func (r *BaseRepository) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return r.db.ExecContext(ctx, query, args...)
}

// QueryContext executes a query returning rows through the managed pool.
func (r *BaseRepository) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return r.db.QueryContext(ctx, query, args...)
}

// QueryRowContext executes a single-row query through the managed pool.
func (r *BaseRepository) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return r.db.QueryRowContext(ctx, query, args...)
}

// GetLogger returns the repository logger.
func (r *BaseRepository) GetLogger() *zap.Logger {
	return r.logger
}

// IsNotFound reports whether err is the driver's empty-result error.
func (r *BaseRepository) IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// IsUniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation. This is the backstop the toggle engine relies on.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolationCode
	}
	return false
}

// nullableID converts an optional viewer id into a driver value so that
// viewer-relative joins never match for anonymous readers.
func nullableID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}

// likeCountJoin returns the aggregate join counting likes per target row of
// the given kind. Placeholders: none; kind is interpolated from a fixed enum.
func likeCountJoin(kind, alias, column string) string {
	return fmt.Sprintf(`LEFT JOIN (
			SELECT target_id, COUNT(*) AS total_likes
			FROM likes
			WHERE target_kind = '%s'
			GROUP BY target_id
		) %s ON %s.target_id = %s`, kind, alias, alias, column)
}

// viewerLikeJoin returns the conditional join exposing whether the viewer
// (bound to the given placeholder) has liked each row.
func viewerLikeJoin(kind, alias, column, viewerPlaceholder string) string {
	return fmt.Sprintf(`LEFT JOIN likes %s ON %s.target_kind = '%s' AND %s.target_id = %s AND %s.user_id = %s`,
		alias, alias, kind, alias, column, alias, viewerPlaceholder)
}
