// file: internal/services/video_service_test.go
package services

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"vidtube/internal/events"
	"vidtube/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newVideoServiceForTest(t *testing.T, storage *fakeStorage, userIDs ...int64) (VideoService, *fakeVideoRepo) {
	t.Helper()
	videos := newFakeVideoRepo()
	users := newFakeUserRepo(userIDs...)
	svc := NewVideoService(videos, users, storage, events.NewBus(zap.NewNop()), validator.New(), zap.NewNop(), "vidtube")
	return svc, videos
}

func fileHeader(name string) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: name, Size: 1024}
}

func TestPublishVideo_RoundsDurationAndStoresURLs(t *testing.T) {
	storage := &fakeStorage{duration: 63.4}
	svc, _ := newVideoServiceForTest(t, storage, 1)

	video, err := svc.PublishVideo(context.Background(), &PublishVideoRequest{
		OwnerID:     1,
		Title:       "my clip",
		Description: "a description",
		VideoFile:   fileHeader("clip.mp4"),
		Thumbnail:   fileHeader("thumb.png"),
	})
	require.NoError(t, err)

	assert.Equal(t, float64(63), video.Duration)
	assert.Equal(t, "01:03", video.DurationFormatted)
	assert.Equal(t, "https://cdn.example.com/vidtube/videos/clip.mp4", video.VideoURL)
	assert.Equal(t, "https://cdn.example.com/vidtube/thumbnails/thumb.png", video.ThumbnailURL)
	assert.True(t, video.IsPublished, "publish defaults to true")
	assert.NotZero(t, video.ID)
}

func TestPublishVideo_ExplicitUnpublished(t *testing.T) {
	storage := &fakeStorage{duration: 10}
	svc, _ := newVideoServiceForTest(t, storage, 1)

	unpublished := false
	video, err := svc.PublishVideo(context.Background(), &PublishVideoRequest{
		OwnerID:     1,
		Title:       "draft",
		Description: "d",
		IsPublished: &unpublished,
		VideoFile:   fileHeader("clip.mp4"),
		Thumbnail:   fileHeader("thumb.png"),
	})
	require.NoError(t, err)
	assert.False(t, video.IsPublished)
}

func TestPublishVideo_MissingFilesRejected(t *testing.T) {
	svc, _ := newVideoServiceForTest(t, &fakeStorage{}, 1)

	_, err := svc.PublishVideo(context.Background(), &PublishVideoRequest{
		OwnerID:     1,
		Title:       "clip",
		Description: "d",
	})
	require.Error(t, err)
	se, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, TypeValidation, se.Type)
}

func TestGetVideo_CountsView(t *testing.T) {
	svc, videos := newVideoServiceForTest(t, &fakeStorage{}, 1)
	ctx := context.Background()

	require.NoError(t, videos.Create(ctx, &models.Video{OwnerID: 1, Title: "t", Duration: 155, IsPublished: true}))

	video, err := svc.GetVideo(ctx, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), video.Views)
	assert.Equal(t, "02:35", video.DurationFormatted)

	video, err = svc.GetVideo(ctx, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), video.Views)
}

func TestGetVideo_NotFound(t *testing.T) {
	svc, _ := newVideoServiceForTest(t, &fakeStorage{}, 1)

	_, err := svc.GetVideo(context.Background(), 404, nil)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestUpdateVideo_OwnerOnly(t *testing.T) {
	svc, videos := newVideoServiceForTest(t, &fakeStorage{}, 1, 2)
	ctx := context.Background()

	require.NoError(t, videos.Create(ctx, &models.Video{OwnerID: 1, Title: "original", IsPublished: true}))

	title := "hijacked"
	_, err := svc.UpdateVideo(ctx, &UpdateVideoRequest{VideoID: 1, ActorID: 2, Title: &title})
	require.Error(t, err)
	assert.True(t, IsForbidden(err))

	stored, err := videos.GetByID(ctx, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, "original", stored.Title, "a rejected update must not mutate state")

	title = "renamed"
	updated, err := svc.UpdateVideo(ctx, &UpdateVideoRequest{VideoID: 1, ActorID: 1, Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Title)
}

func TestUpdateVideo_RequiresAtLeastOneField(t *testing.T) {
	svc, videos := newVideoServiceForTest(t, &fakeStorage{}, 1)
	ctx := context.Background()
	require.NoError(t, videos.Create(ctx, &models.Video{OwnerID: 1, Title: "t", IsPublished: true}))

	_, err := svc.UpdateVideo(ctx, &UpdateVideoRequest{VideoID: 1, ActorID: 1})
	require.Error(t, err)
	se, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, TypeValidation, se.Type)
}

func TestDeleteVideo_OwnerOnly(t *testing.T) {
	svc, videos := newVideoServiceForTest(t, &fakeStorage{}, 1, 2)
	ctx := context.Background()

	require.NoError(t, videos.Create(ctx, &models.Video{OwnerID: 1, Title: "t", IsPublished: true}))

	err := svc.DeleteVideo(ctx, 1, 2)
	require.Error(t, err)
	assert.True(t, IsForbidden(err))

	require.NoError(t, svc.DeleteVideo(ctx, 1, 1))

	stored, err := videos.GetByID(ctx, 1, nil)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestTogglePublishStatus_FlipsFlag(t *testing.T) {
	svc, videos := newVideoServiceForTest(t, &fakeStorage{}, 1, 2)
	ctx := context.Background()

	require.NoError(t, videos.Create(ctx, &models.Video{OwnerID: 1, Title: "t", IsPublished: true}))

	video, err := svc.TogglePublishStatus(ctx, 1, 1)
	require.NoError(t, err)
	assert.False(t, video.IsPublished)

	video, err = svc.TogglePublishStatus(ctx, 1, 1)
	require.NoError(t, err)
	assert.True(t, video.IsPublished)

	_, err = svc.TogglePublishStatus(ctx, 1, 2)
	require.Error(t, err)
	assert.True(t, IsForbidden(err))
}

func TestPublishVideo_ThumbnailFailureCleansUpVideoAsset(t *testing.T) {
	storage := &fakeStorage{duration: 5}
	svc, _ := newVideoServiceForTest(t, storage, 1)

	// First upload (video) succeeds, second (thumbnail) fails.
	storage.failAfter = 1
	storage.err = nil

	_, err := svc.PublishVideo(context.Background(), &PublishVideoRequest{
		OwnerID:     1,
		Title:       "clip",
		Description: "d",
		VideoFile:   fileHeader("clip.mp4"),
		Thumbnail:   fileHeader("thumb.png"),
	})
	require.Error(t, err)
	assert.Equal(t, []string{"vidtube/videos/clip.mp4"}, storage.deletes)
}

func TestListChannelVideos_MissingChannelNotFound(t *testing.T) {
	svc, _ := newVideoServiceForTest(t, &fakeStorage{}, 1)

	_, err := svc.ListChannelVideos(context.Background(), 9, nil)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestListChannelVideos_DraftsVisibleToOwnerOnly(t *testing.T) {
	svc, videos := newVideoServiceForTest(t, &fakeStorage{}, 1, 2)
	ctx := context.Background()

	require.NoError(t, videos.Create(ctx, &models.Video{OwnerID: 1, Title: "public", IsPublished: true}))
	require.NoError(t, videos.Create(ctx, &models.Video{OwnerID: 1, Title: "draft", IsPublished: false}))

	anonymous, err := svc.ListChannelVideos(ctx, 1, nil)
	require.NoError(t, err)
	assert.Len(t, anonymous, 1)

	stranger := int64(2)
	other, err := svc.ListChannelVideos(ctx, 1, &stranger)
	require.NoError(t, err)
	assert.Len(t, other, 1)

	owner := int64(1)
	own, err := svc.ListChannelVideos(ctx, 1, &owner)
	require.NoError(t, err)
	assert.Len(t, own, 2)
}

func TestListChannelVideos_ViewerReachesLikeStateResolution(t *testing.T) {
	svc, videos := newVideoServiceForTest(t, &fakeStorage{}, 1, 2)
	ctx := context.Background()
	require.NoError(t, videos.Create(ctx, &models.Video{OwnerID: 1, Title: "t", IsPublished: true}))

	viewer := int64(2)
	_, err := svc.ListChannelVideos(ctx, 1, &viewer)
	require.NoError(t, err)
	require.NotNil(t, videos.lastListViewer)
	assert.Equal(t, int64(2), *videos.lastListViewer)
}

var errUploadBoom = errors.New("upload failed")
