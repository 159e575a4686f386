// file: internal/services/like_service_test.go
package services

import (
	"context"
	"testing"
	"time"

	"vidtube/internal/models"
	"vidtube/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"vidtube/internal/events"
)

func newLikeServiceForTest(t *testing.T) (LikeService, *fakeLikeRepo, *fakeVideoRepo, *fakeCommentRepo, *fakeTweetRepo) {
	t.Helper()
	likes := newFakeLikeRepo()
	videos := newFakeVideoRepo()
	comments := newFakeCommentRepo()
	tweets := newFakeTweetRepo()
	svc := NewLikeService(likes, videos, comments, tweets, events.NewBus(zap.NewNop()), validator.New(), zap.NewNop())
	return svc, likes, videos, comments, tweets
}

func TestToggleLike_AddsThenRemoves(t *testing.T) {
	svc, likes, videos, _, _ := newLikeServiceForTest(t)
	ctx := context.Background()

	require.NoError(t, videos.Create(ctx, &models.Video{OwnerID: 2, Title: "t", IsPublished: true}))

	result, err := svc.ToggleLike(ctx, 1, models.LikeTargetVideo, 1)
	require.NoError(t, err)
	assert.True(t, result.Active)

	count, err := likes.CountByTarget(ctx, models.LikeTargetVideo, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	result, err = svc.ToggleLike(ctx, 1, models.LikeTargetVideo, 1)
	require.NoError(t, err)
	assert.False(t, result.Active)

	count, err = likes.CountByTarget(ctx, models.LikeTargetVideo, 1)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestToggleLike_EventCarriesLikeCount(t *testing.T) {
	likes := newFakeLikeRepo()
	videos := newFakeVideoRepo()
	bus := events.NewBus(zap.NewNop())
	published := make(chan events.Event, 1)
	bus.Subscribe(events.TypeLikeToggled, func(_ context.Context, event events.Event) {
		published <- event
	})
	svc := NewLikeService(likes, videos, newFakeCommentRepo(), newFakeTweetRepo(), bus, validator.New(), zap.NewNop())
	ctx := context.Background()

	require.NoError(t, videos.Create(ctx, &models.Video{OwnerID: 2, Title: "t", IsPublished: true}))

	result, err := svc.ToggleLike(ctx, 1, models.LikeTargetVideo, 1)
	require.NoError(t, err)
	require.True(t, result.Active)

	select {
	case event := <-published:
		assert.Equal(t, int64(1), event.ActorID)
		assert.Equal(t, true, event.Payload["active"])
		assert.Equal(t, int64(1), event.Payload["total_likes"])
	case <-time.After(time.Second):
		t.Fatal("no like event published")
	}
}

func TestToggleLike_EvenNumberOfTogglesIsIdentity(t *testing.T) {
	svc, likes, videos, _, _ := newLikeServiceForTest(t)
	ctx := context.Background()

	require.NoError(t, videos.Create(ctx, &models.Video{OwnerID: 2, Title: "t", IsPublished: true}))

	for i := 0; i < 4; i++ {
		_, err := svc.ToggleLike(ctx, 1, models.LikeTargetVideo, 1)
		require.NoError(t, err)
	}

	count, err := likes.CountByTarget(ctx, models.LikeTargetVideo, 1)
	require.NoError(t, err)
	assert.Zero(t, count, "an even number of toggles must leave no relation")
}

func TestToggleLike_DuplicateCreateMeansActive(t *testing.T) {
	// A concurrent toggle can insert the row between our lookup and insert.
	// The unique violation is absorbed and the relation reported active.
	svc, likes, videos, _, _ := newLikeServiceForTest(t)
	ctx := context.Background()

	require.NoError(t, videos.Create(ctx, &models.Video{OwnerID: 2, Title: "t", IsPublished: true}))
	likes.createErr = repositories.ErrDuplicateRelation

	result, err := svc.ToggleLike(ctx, 1, models.LikeTargetVideo, 1)
	require.NoError(t, err)
	assert.True(t, result.Active)
}

func TestToggleLike_CommentAndTweetTargets(t *testing.T) {
	svc, _, _, comments, tweets := newLikeServiceForTest(t)
	ctx := context.Background()

	require.NoError(t, comments.Create(ctx, &models.Comment{VideoID: 1, OwnerID: 2, Content: "c"}))
	require.NoError(t, tweets.Create(ctx, &models.Tweet{OwnerID: 2, Content: "t"}))

	result, err := svc.ToggleLike(ctx, 1, models.LikeTargetComment, 1)
	require.NoError(t, err)
	assert.True(t, result.Active)

	result, err = svc.ToggleLike(ctx, 1, models.LikeTargetTweet, 1)
	require.NoError(t, err)
	assert.True(t, result.Active)
}

func TestToggleLike_UnknownKindRejected(t *testing.T) {
	svc, _, _, _, _ := newLikeServiceForTest(t)

	_, err := svc.ToggleLike(context.Background(), 1, models.LikeTarget("playlist"), 1)
	require.Error(t, err)
	se, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, TypeValidation, se.Type)
}

func TestToggleLike_MissingTargetNotFound(t *testing.T) {
	svc, _, _, _, _ := newLikeServiceForTest(t)

	_, err := svc.ToggleLike(context.Background(), 1, models.LikeTargetVideo, 99)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestToggleLike_AnonymousRejected(t *testing.T) {
	svc, _, _, _, _ := newLikeServiceForTest(t)

	_, err := svc.ToggleLike(context.Background(), 0, models.LikeTargetVideo, 1)
	require.Error(t, err)
	se, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, TypeUnauthorized, se.Type)
}

func TestToggleLike_IndependentPairs(t *testing.T) {
	// Likes on different targets and by different users never interfere.
	svc, likes, videos, _, _ := newLikeServiceForTest(t)
	ctx := context.Background()

	require.NoError(t, videos.Create(ctx, &models.Video{OwnerID: 9, Title: "a", IsPublished: true}))
	require.NoError(t, videos.Create(ctx, &models.Video{OwnerID: 9, Title: "b", IsPublished: true}))

	_, err := svc.ToggleLike(ctx, 1, models.LikeTargetVideo, 1)
	require.NoError(t, err)
	_, err = svc.ToggleLike(ctx, 2, models.LikeTargetVideo, 1)
	require.NoError(t, err)
	_, err = svc.ToggleLike(ctx, 1, models.LikeTargetVideo, 2)
	require.NoError(t, err)

	// Removing one pair leaves the others intact.
	_, err = svc.ToggleLike(ctx, 1, models.LikeTargetVideo, 1)
	require.NoError(t, err)

	count, err := likes.CountByTarget(ctx, models.LikeTargetVideo, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	count, err = likes.CountByTarget(ctx, models.LikeTargetVideo, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestListLikedVideos_RequiresAuth(t *testing.T) {
	svc, _, _, _, _ := newLikeServiceForTest(t)

	_, err := svc.ListLikedVideos(context.Background(), 0, models.PaginationParams{Page: 1, Limit: 10})
	require.Error(t, err)
	se, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, TypeUnauthorized, se.Type)
}

func TestListLikedVideos_InvalidPagination(t *testing.T) {
	svc, _, _, _, _ := newLikeServiceForTest(t)

	_, err := svc.ListLikedVideos(context.Background(), 1, models.PaginationParams{Page: 0, Limit: 10})
	require.Error(t, err)
	se, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, TypeValidation, se.Type)
}
