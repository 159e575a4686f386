// file: internal/services/dashboard_service_test.go
package services

import (
	"context"
	"testing"
	"time"

	"vidtube/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newDashboardServiceForTest(t *testing.T, userIDs ...int64) (DashboardService, *fakeVideoRepo, *fakeCache) {
	t.Helper()
	videos := newFakeVideoRepo()
	users := newFakeUserRepo(userIDs...)
	cacheStore := newFakeCache()
	svc := NewDashboardService(videos, users, cacheStore, 30*time.Second, zap.NewNop())
	return svc, videos, cacheStore
}

func TestGetChannelStats_ZeroVideoChannel(t *testing.T) {
	svc, _, _ := newDashboardServiceForTest(t, 1)

	stats, err := svc.GetChannelStats(context.Background(), 1)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalVideos)
	assert.Zero(t, stats.TotalViews)
	assert.Zero(t, stats.TotalLikes)
	assert.Zero(t, stats.TotalSubscribers)
}

func TestGetChannelStats_MissingChannelNotFound(t *testing.T) {
	svc, _, _ := newDashboardServiceForTest(t, 1)

	_, err := svc.GetChannelStats(context.Background(), 9)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestGetChannelStats_SecondReadServedFromCache(t *testing.T) {
	svc, videos, cacheStore := newDashboardServiceForTest(t, 1)
	videos.stats[1] = &models.ChannelStats{TotalVideos: 3, TotalViews: 120, TotalLikes: 9, TotalSubscribers: 4}

	first, err := svc.GetChannelStats(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), first.TotalVideos)
	assert.Equal(t, 1, videos.statCalls)
	assert.Equal(t, 1, cacheStore.sets)

	second, err := svc.GetChannelStats(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, videos.statCalls, "cached read must not hit the store")
}

func TestGetChannelVideos_IncludesUnpublished(t *testing.T) {
	svc, videos, _ := newDashboardServiceForTest(t, 1)
	ctx := context.Background()

	require.NoError(t, videos.Create(ctx, &models.Video{OwnerID: 1, Title: "public", IsPublished: true}))
	require.NoError(t, videos.Create(ctx, &models.Video{OwnerID: 1, Title: "draft", IsPublished: false}))

	listed, err := svc.GetChannelVideos(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, listed, 2)

	// Like state on the dashboard is resolved against the channel owner.
	require.NotNil(t, videos.lastListViewer)
	assert.Equal(t, int64(1), *videos.lastListViewer)
}
