// file: internal/services/dashboard_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"vidtube/internal/cache"
	"vidtube/internal/models"
	"vidtube/internal/repositories"

	"go.uber.org/zap"
)

type dashboardService struct {
	videos   repositories.VideoRepository
	users    repositories.UserRepository
	cache    cache.Cache
	statsTTL time.Duration
	logger   *zap.Logger
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(
	videos repositories.VideoRepository,
	users repositories.UserRepository,
	cacheStore cache.Cache,
	statsTTL time.Duration,
	logger *zap.Logger,
) DashboardService {
	return &dashboardService{
		videos:   videos,
		users:    users,
		cache:    cacheStore,
		statsTTL: statsTTL,
		logger:   logger,
	}
}

// GetChannelStats returns the channel rollup. Results are cached briefly;
// stats may lag writes by up to the TTL.
func (s *dashboardService) GetChannelStats(ctx context.Context, channelID int64) (*models.ChannelStats, error) {
	exists, err := s.users.Exists(ctx, channelID)
	if err != nil {
		return nil, NewInternalError("failed to check channel", err)
	}
	if !exists {
		return nil, NewNotFoundError(fmt.Sprintf("channel %d not found", channelID))
	}

	key := statsCacheKey(channelID)
	var cached models.ChannelStats
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.logger.Warn("Stats cache read failed", zap.Error(err))
	} else if hit {
		return &cached, nil
	}

	stats, err := s.videos.GetChannelStats(ctx, channelID)
	if err != nil {
		return nil, NewInternalError("failed to get channel stats", err)
	}

	if err := s.cache.Set(ctx, key, stats, s.statsTTL); err != nil {
		s.logger.Warn("Stats cache write failed", zap.Error(err))
	}
	return stats, nil
}

// GetChannelVideos returns every video owned by the channel, published or
// not, for the owner dashboard.
func (s *dashboardService) GetChannelVideos(ctx context.Context, channelID int64) ([]*models.Video, error) {
	exists, err := s.users.Exists(ctx, channelID)
	if err != nil {
		return nil, NewInternalError("failed to check channel", err)
	}
	if !exists {
		return nil, NewNotFoundError(fmt.Sprintf("channel %d not found", channelID))
	}

	// The actor is the channel, so like state is resolved against the owner.
	videos, err := s.videos.ListByOwner(ctx, channelID, &channelID)
	if err != nil {
		return nil, NewInternalError("failed to list channel videos", err)
	}
	formatDurations(videos)
	return videos, nil
}

func statsCacheKey(channelID int64) string {
	return fmt.Sprintf("dashboard:stats:%d", channelID)
}
