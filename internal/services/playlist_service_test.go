// file: internal/services/playlist_service_test.go
package services

import (
	"context"
	"testing"

	"vidtube/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newPlaylistServiceForTest(t *testing.T, userIDs ...int64) (PlaylistService, *fakePlaylistRepo, *fakeVideoRepo) {
	t.Helper()
	playlists := newFakePlaylistRepo()
	videos := newFakeVideoRepo()
	users := newFakeUserRepo(userIDs...)
	svc := NewPlaylistService(playlists, videos, users, validator.New(), zap.NewNop())
	return svc, playlists, videos
}

func TestAddVideoToPlaylist_AllowsDuplicates(t *testing.T) {
	svc, _, videos := newPlaylistServiceForTest(t, 1)
	ctx := context.Background()

	require.NoError(t, videos.Create(ctx, &models.Video{OwnerID: 1, Title: "t", IsPublished: true}))
	playlist, err := svc.CreatePlaylist(ctx, &CreatePlaylistRequest{OwnerID: 1, Name: "mix", Description: "d"})
	require.NoError(t, err)

	_, err = svc.AddVideoToPlaylist(ctx, playlist.ID, 1, 1)
	require.NoError(t, err)
	updated, err := svc.AddVideoToPlaylist(ctx, playlist.ID, 1, 1)
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 1}, updated.VideoIDs, "the same video may appear twice")
}

func TestRemoveVideoFromPlaylist_RemovesEveryOccurrence(t *testing.T) {
	svc, _, videos := newPlaylistServiceForTest(t, 1)
	ctx := context.Background()

	require.NoError(t, videos.Create(ctx, &models.Video{OwnerID: 1, Title: "a", IsPublished: true}))
	require.NoError(t, videos.Create(ctx, &models.Video{OwnerID: 1, Title: "b", IsPublished: true}))
	playlist, err := svc.CreatePlaylist(ctx, &CreatePlaylistRequest{OwnerID: 1, Name: "mix", Description: "d"})
	require.NoError(t, err)

	_, err = svc.AddVideoToPlaylist(ctx, playlist.ID, 1, 1)
	require.NoError(t, err)
	_, err = svc.AddVideoToPlaylist(ctx, playlist.ID, 2, 1)
	require.NoError(t, err)
	_, err = svc.AddVideoToPlaylist(ctx, playlist.ID, 1, 1)
	require.NoError(t, err)

	updated, err := svc.RemoveVideoFromPlaylist(ctx, playlist.ID, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, updated.VideoIDs)
}

func TestPlaylistMutations_OwnerOnly(t *testing.T) {
	svc, _, videos := newPlaylistServiceForTest(t, 1, 2)
	ctx := context.Background()

	require.NoError(t, videos.Create(ctx, &models.Video{OwnerID: 1, Title: "t", IsPublished: true}))
	playlist, err := svc.CreatePlaylist(ctx, &CreatePlaylistRequest{OwnerID: 1, Name: "mix", Description: "d"})
	require.NoError(t, err)

	name := "stolen"
	_, err = svc.UpdatePlaylist(ctx, &UpdatePlaylistRequest{PlaylistID: playlist.ID, ActorID: 2, Name: &name})
	require.Error(t, err)
	assert.True(t, IsForbidden(err))

	_, err = svc.AddVideoToPlaylist(ctx, playlist.ID, 1, 2)
	require.Error(t, err)
	assert.True(t, IsForbidden(err))

	err = svc.DeletePlaylist(ctx, playlist.ID, 2)
	require.Error(t, err)
	assert.True(t, IsForbidden(err))
}

func TestAddVideoToPlaylist_MissingVideoNotFound(t *testing.T) {
	svc, _, _ := newPlaylistServiceForTest(t, 1)
	ctx := context.Background()

	playlist, err := svc.CreatePlaylist(ctx, &CreatePlaylistRequest{OwnerID: 1, Name: "mix", Description: "d"})
	require.NoError(t, err)

	_, err = svc.AddVideoToPlaylist(ctx, playlist.ID, 404, 1)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestUpdatePlaylist_RequiresAtLeastOneField(t *testing.T) {
	svc, _, _ := newPlaylistServiceForTest(t, 1)
	ctx := context.Background()

	playlist, err := svc.CreatePlaylist(ctx, &CreatePlaylistRequest{OwnerID: 1, Name: "mix", Description: "d"})
	require.NoError(t, err)

	_, err = svc.UpdatePlaylist(ctx, &UpdatePlaylistRequest{PlaylistID: playlist.ID, ActorID: 1})
	require.Error(t, err)
	se, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, TypeValidation, se.Type)
}
