// file: internal/models/models.go
package models

import (
	"fmt"
	"time"
)

// ===============================
// CORE ENTITIES
// ===============================

// User represents a registered account. Credential material never leaves this
// package in serialized form; read models embed PublicUser instead.
type User struct {
	ID        int64  `json:"id" db:"id"`
	Username  string `json:"username" db:"username" validate:"required,min=3,max=50,alphanum"`
	Email     string `json:"email" db:"email" validate:"required,email,max=320"`
	FullName  string `json:"full_name" db:"full_name" validate:"required,max=100"`
	AvatarURL string `json:"avatar_url,omitempty" db:"avatar_url"`

	// Authentication (issued and verified outside this service)
	PasswordHash string `json:"-" db:"password_hash"`
	RefreshToken string `json:"-" db:"refresh_token"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// Computed (not in DB)
	SubscriberCount   int64 `json:"subscriber_count,omitempty" db:"-"`
	SubscriptionCount int64 `json:"subscription_count,omitempty" db:"-"`
}

// PublicUser is the owner projection embedded in read models. It carries only
// fields safe to show to any viewer; there is deliberately no way to reach
// credential or token fields through it.
type PublicUser struct {
	ID        int64  `json:"id" db:"id"`
	Username  string `json:"username" db:"username"`
	FullName  string `json:"full_name" db:"full_name"`
	AvatarURL string `json:"avatar_url,omitempty" db:"avatar_url"`
}

// Public returns the safe projection of a user.
func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		FullName:  u.FullName,
		AvatarURL: u.AvatarURL,
	}
}

// Video represents an uploaded video and its metadata.
type Video struct {
	ID           int64   `json:"id" db:"id"`
	OwnerID      int64   `json:"owner_id" db:"owner_id"`
	Title        string  `json:"title" db:"title" validate:"required,max=255"`
	Description  string  `json:"description" db:"description" validate:"required,max=5000"`
	VideoURL     string  `json:"video_url" db:"video_url"`
	ThumbnailURL string  `json:"thumbnail_url" db:"thumbnail_url"`
	Duration     float64 `json:"duration" db:"duration"`
	Views        int64   `json:"views" db:"views"`
	IsPublished  bool    `json:"is_published" db:"is_published"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// Computed (joined at read time, not stored)
	Owner             *PublicUser `json:"owner,omitempty" db:"-"`
	TotalLikes        int64       `json:"total_likes" db:"-"`
	IsLiked           bool        `json:"is_liked" db:"-"`
	DurationFormatted string      `json:"duration_formatted,omitempty" db:"-"`
}

// Comment is a comment on a video. Target of Like.
type Comment struct {
	ID      int64  `json:"id" db:"id"`
	VideoID int64  `json:"video_id" db:"video_id"`
	OwnerID int64  `json:"owner_id" db:"owner_id"`
	Content string `json:"content" db:"content" validate:"required,max=2000"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// Computed
	Owner      *PublicUser `json:"owner,omitempty" db:"-"`
	TotalLikes int64       `json:"total_likes" db:"-"`
	IsLiked    bool        `json:"is_liked" db:"-"`
}

// Tweet is a short text post by a user. Target of Like.
type Tweet struct {
	ID      int64  `json:"id" db:"id"`
	OwnerID int64  `json:"owner_id" db:"owner_id"`
	Content string `json:"content" db:"content" validate:"required,max=500"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// Computed
	Owner      *PublicUser `json:"owner,omitempty" db:"-"`
	TotalLikes int64       `json:"total_likes" db:"-"`
	IsLiked    bool        `json:"is_liked" db:"-"`
}

// ===============================
// TOGGLE RELATIONS
// ===============================

// LikeTarget identifies which collection a like points at. Exactly one kind
// per like row; the (user_id, target_kind, target_id) triple is unique.
type LikeTarget string

const (
	LikeTargetVideo   LikeTarget = "video"
	LikeTargetComment LikeTarget = "comment"
	LikeTargetTweet   LikeTarget = "tweet"
)

// Valid reports whether t is one of the known like targets.
func (t LikeTarget) Valid() bool {
	switch t {
	case LikeTargetVideo, LikeTargetComment, LikeTargetTweet:
		return true
	}
	return false
}

// Like is an active like relation between a user and a target entity.
type Like struct {
	ID         int64      `json:"id" db:"id"`
	UserID     int64      `json:"user_id" db:"user_id"`
	TargetKind LikeTarget `json:"target_kind" db:"target_kind"`
	TargetID   int64      `json:"target_id" db:"target_id"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}

// Subscription is an active subscriber→channel relation. The pair
// (subscriber_id, channel_id) is unique.
type Subscription struct {
	ID           int64     `json:"id" db:"id"`
	SubscriberID int64     `json:"subscriber_id" db:"subscriber_id"`
	ChannelID    int64     `json:"channel_id" db:"channel_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	// Computed
	Subscriber *PublicUser `json:"subscriber,omitempty" db:"-"`
	Channel    *PublicUser `json:"channel,omitempty" db:"-"`
}

// ===============================
// PLAYLISTS
// ===============================

// Playlist is an owner-curated, ordered video sequence. Duplicate entries are
// allowed; position preserves insertion order.
type Playlist struct {
	ID          int64  `json:"id" db:"id"`
	OwnerID     int64  `json:"owner_id" db:"owner_id"`
	Name        string `json:"name" db:"name" validate:"required,max=100"`
	Description string `json:"description" db:"description" validate:"required,max=1000"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// Computed
	VideoIDs []int64 `json:"video_ids,omitempty" db:"-"`
}

// ===============================
// READ MODELS
// ===============================

// ChannelStats is the per-channel rollup assembled by the dashboard.
type ChannelStats struct {
	TotalVideos      int64 `json:"total_videos"`
	TotalViews       int64 `json:"total_views"`
	TotalLikes       int64 `json:"total_likes"`
	TotalSubscribers int64 `json:"total_subscribers"`
}

// ToggleResult reports the state of a relation after a toggle call.
type ToggleResult struct {
	Active bool `json:"active"`
}

// ===============================
// PAGINATION
// ===============================

// PaginationParams carries validated (page, limit) query parameters.
type PaginationParams struct {
	Page  int `json:"page" validate:"min=1"`
	Limit int `json:"limit" validate:"min=1,max=100"`
}

// Offset returns the number of rows to skip for the current page.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// PaginationMeta describes the page window of a list response.
type PaginationMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// PaginatedResponse wraps a page of items with its pagination metadata.
type PaginatedResponse[T any] struct {
	Items      []T            `json:"items"`
	Pagination PaginationMeta `json:"pagination"`
}

// NewPaginatedResponse computes pagination metadata for a page of items.
func NewPaginatedResponse[T any](items []T, params PaginationParams, total int64) *PaginatedResponse[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := int((total + int64(params.Limit) - 1) / int64(params.Limit))
	return &PaginatedResponse[T]{
		Items: items,
		Pagination: PaginationMeta{
			Page:       params.Page,
			Limit:      params.Limit,
			TotalItems: total,
			TotalPages: totalPages,
		},
	}
}

// ===============================
// HELPERS
// ===============================

// FormatDuration renders a duration in seconds as HH:MM:SS, omitting the hour
// segment when zero (02:35 rather than 00:02:35).
func FormatDuration(seconds float64) string {
	total := int(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}
