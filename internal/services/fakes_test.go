// file: internal/services/fakes_test.go
package services

import (
	"context"
	"encoding/json"
	"mime/multipart"
	"time"

	"vidtube/internal/models"
	"vidtube/internal/repositories"
	"vidtube/internal/utils"
)

// In-memory repository fakes. They implement just enough behavior for the
// service tests: maps keyed by ID, sequential ID assignment, and the same
// (nil, nil) absent-row convention as the real repositories.

type fakeUserRepo struct {
	users map[int64]*models.User
}

func newFakeUserRepo(ids ...int64) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[int64]*models.User)}
	for _, id := range ids {
		r.users[id] = &models.User{ID: id, Username: "user", Email: "user@example.com", FullName: "User"}
	}
	return r
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := r.users[id]
	return ok, nil
}

type fakeVideoRepo struct {
	videos         map[int64]*models.Video
	nextID         int64
	stats          map[int64]*models.ChannelStats
	statCalls      int
	lastListViewer *int64
}

func newFakeVideoRepo() *fakeVideoRepo {
	return &fakeVideoRepo{
		videos: make(map[int64]*models.Video),
		nextID: 1,
		stats:  make(map[int64]*models.ChannelStats),
	}
}

func (r *fakeVideoRepo) Create(_ context.Context, video *models.Video) error {
	video.ID = r.nextID
	r.nextID++
	copied := *video
	r.videos[video.ID] = &copied
	return nil
}

func (r *fakeVideoRepo) GetByID(_ context.Context, id int64, _ *int64) (*models.Video, error) {
	video, ok := r.videos[id]
	if !ok {
		return nil, nil
	}
	copied := *video
	return &copied, nil
}

func (r *fakeVideoRepo) Update(_ context.Context, video *models.Video) error {
	copied := *video
	r.videos[video.ID] = &copied
	return nil
}

func (r *fakeVideoRepo) Delete(_ context.Context, id int64) error {
	delete(r.videos, id)
	return nil
}

func (r *fakeVideoRepo) SetPublished(_ context.Context, id int64, published bool) error {
	if video, ok := r.videos[id]; ok {
		video.IsPublished = published
	}
	return nil
}

func (r *fakeVideoRepo) IncrementViews(_ context.Context, id int64) error {
	if video, ok := r.videos[id]; ok {
		video.Views++
	}
	return nil
}

func (r *fakeVideoRepo) List(_ context.Context, filter repositories.VideoFilter, params models.PaginationParams, _ *int64) (*models.PaginatedResponse[*models.Video], error) {
	var items []*models.Video
	for _, video := range r.videos {
		if filter.PublishedOnly && !video.IsPublished {
			continue
		}
		copied := *video
		items = append(items, &copied)
	}
	return models.NewPaginatedResponse(items, params, int64(len(items))), nil
}

func (r *fakeVideoRepo) ListByOwner(_ context.Context, ownerID int64, viewerID *int64) ([]*models.Video, error) {
	r.lastListViewer = viewerID
	var items []*models.Video
	for _, video := range r.videos {
		if video.OwnerID == ownerID {
			copied := *video
			items = append(items, &copied)
		}
	}
	return items, nil
}

func (r *fakeVideoRepo) ListLikedBy(_ context.Context, _ int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Video], error) {
	return models.NewPaginatedResponse([]*models.Video{}, params, 0), nil
}

func (r *fakeVideoRepo) GetChannelStats(_ context.Context, channelID int64) (*models.ChannelStats, error) {
	r.statCalls++
	if stats, ok := r.stats[channelID]; ok {
		copied := *stats
		return &copied, nil
	}
	return &models.ChannelStats{}, nil
}

type fakeCommentRepo struct {
	comments map[int64]*models.Comment
	nextID   int64
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[int64]*models.Comment), nextID: 1}
}

func (r *fakeCommentRepo) Create(_ context.Context, comment *models.Comment) error {
	comment.ID = r.nextID
	r.nextID++
	copied := *comment
	r.comments[comment.ID] = &copied
	return nil
}

func (r *fakeCommentRepo) GetByID(_ context.Context, id int64) (*models.Comment, error) {
	comment, ok := r.comments[id]
	if !ok {
		return nil, nil
	}
	copied := *comment
	return &copied, nil
}

func (r *fakeCommentRepo) Update(_ context.Context, comment *models.Comment) error {
	copied := *comment
	r.comments[comment.ID] = &copied
	return nil
}

func (r *fakeCommentRepo) Delete(_ context.Context, id int64) error {
	delete(r.comments, id)
	return nil
}

func (r *fakeCommentRepo) ListByVideo(_ context.Context, videoID int64, params models.PaginationParams, _ *int64) (*models.PaginatedResponse[*models.Comment], error) {
	var items []*models.Comment
	for _, comment := range r.comments {
		if comment.VideoID == videoID {
			copied := *comment
			items = append(items, &copied)
		}
	}
	return models.NewPaginatedResponse(items, params, int64(len(items))), nil
}

type fakeTweetRepo struct {
	tweets map[int64]*models.Tweet
	nextID int64
}

func newFakeTweetRepo() *fakeTweetRepo {
	return &fakeTweetRepo{tweets: make(map[int64]*models.Tweet), nextID: 1}
}

func (r *fakeTweetRepo) Create(_ context.Context, tweet *models.Tweet) error {
	tweet.ID = r.nextID
	r.nextID++
	copied := *tweet
	r.tweets[tweet.ID] = &copied
	return nil
}

func (r *fakeTweetRepo) GetByID(_ context.Context, id int64) (*models.Tweet, error) {
	tweet, ok := r.tweets[id]
	if !ok {
		return nil, nil
	}
	copied := *tweet
	return &copied, nil
}

func (r *fakeTweetRepo) Update(_ context.Context, tweet *models.Tweet) error {
	copied := *tweet
	r.tweets[tweet.ID] = &copied
	return nil
}

func (r *fakeTweetRepo) Delete(_ context.Context, id int64) error {
	delete(r.tweets, id)
	return nil
}

func (r *fakeTweetRepo) ListByOwner(_ context.Context, ownerID int64, params models.PaginationParams, _ *int64) (*models.PaginatedResponse[*models.Tweet], error) {
	var items []*models.Tweet
	for _, tweet := range r.tweets {
		if tweet.OwnerID == ownerID {
			copied := *tweet
			items = append(items, &copied)
		}
	}
	return models.NewPaginatedResponse(items, params, int64(len(items))), nil
}

type likeKey struct {
	userID   int64
	kind     models.LikeTarget
	targetID int64
}

type fakeLikeRepo struct {
	likes  map[likeKey]*models.Like
	nextID int64

	// createErr forces the next Create to fail, simulating a lost race.
	createErr error
}

func newFakeLikeRepo() *fakeLikeRepo {
	return &fakeLikeRepo{likes: make(map[likeKey]*models.Like), nextID: 1}
}

func (r *fakeLikeRepo) Get(_ context.Context, userID int64, kind models.LikeTarget, targetID int64) (*models.Like, error) {
	like, ok := r.likes[likeKey{userID, kind, targetID}]
	if !ok {
		return nil, nil
	}
	return like, nil
}

func (r *fakeLikeRepo) Create(_ context.Context, like *models.Like) error {
	if r.createErr != nil {
		err := r.createErr
		r.createErr = nil
		return err
	}
	key := likeKey{like.UserID, like.TargetKind, like.TargetID}
	if _, exists := r.likes[key]; exists {
		return repositories.ErrDuplicateRelation
	}
	like.ID = r.nextID
	r.nextID++
	r.likes[key] = like
	return nil
}

func (r *fakeLikeRepo) Delete(_ context.Context, userID int64, kind models.LikeTarget, targetID int64) (bool, error) {
	key := likeKey{userID, kind, targetID}
	if _, ok := r.likes[key]; !ok {
		return false, nil
	}
	delete(r.likes, key)
	return true, nil
}

func (r *fakeLikeRepo) CountByTarget(_ context.Context, kind models.LikeTarget, targetID int64) (int64, error) {
	var count int64
	for key := range r.likes {
		if key.kind == kind && key.targetID == targetID {
			count++
		}
	}
	return count, nil
}

type subKey struct {
	subscriberID int64
	channelID    int64
}

type fakeSubscriptionRepo struct {
	subs   map[subKey]*models.Subscription
	nextID int64

	createErr error
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{subs: make(map[subKey]*models.Subscription), nextID: 1}
}

func (r *fakeSubscriptionRepo) Get(_ context.Context, subscriberID, channelID int64) (*models.Subscription, error) {
	sub, ok := r.subs[subKey{subscriberID, channelID}]
	if !ok {
		return nil, nil
	}
	return sub, nil
}

func (r *fakeSubscriptionRepo) Create(_ context.Context, sub *models.Subscription) error {
	if r.createErr != nil {
		err := r.createErr
		r.createErr = nil
		return err
	}
	key := subKey{sub.SubscriberID, sub.ChannelID}
	if _, exists := r.subs[key]; exists {
		return repositories.ErrDuplicateRelation
	}
	sub.ID = r.nextID
	r.nextID++
	r.subs[key] = sub
	return nil
}

func (r *fakeSubscriptionRepo) Delete(_ context.Context, subscriberID, channelID int64) (bool, error) {
	key := subKey{subscriberID, channelID}
	if _, ok := r.subs[key]; !ok {
		return false, nil
	}
	delete(r.subs, key)
	return true, nil
}

func (r *fakeSubscriptionRepo) ListSubscribers(_ context.Context, channelID int64) ([]*models.Subscription, error) {
	var subs []*models.Subscription
	for key, sub := range r.subs {
		if key.channelID == channelID {
			subs = append(subs, sub)
		}
	}
	return subs, nil
}

func (r *fakeSubscriptionRepo) ListSubscribedChannels(_ context.Context, subscriberID int64) ([]*models.Subscription, error) {
	var subs []*models.Subscription
	for key, sub := range r.subs {
		if key.subscriberID == subscriberID {
			subs = append(subs, sub)
		}
	}
	return subs, nil
}

type fakePlaylistRepo struct {
	playlists map[int64]*models.Playlist
	videos    map[int64][]int64
	nextID    int64
}

func newFakePlaylistRepo() *fakePlaylistRepo {
	return &fakePlaylistRepo{
		playlists: make(map[int64]*models.Playlist),
		videos:    make(map[int64][]int64),
		nextID:    1,
	}
}

func (r *fakePlaylistRepo) Create(_ context.Context, playlist *models.Playlist) error {
	playlist.ID = r.nextID
	r.nextID++
	copied := *playlist
	r.playlists[playlist.ID] = &copied
	return nil
}

func (r *fakePlaylistRepo) GetByID(_ context.Context, id int64) (*models.Playlist, error) {
	playlist, ok := r.playlists[id]
	if !ok {
		return nil, nil
	}
	copied := *playlist
	copied.VideoIDs = append([]int64(nil), r.videos[id]...)
	return &copied, nil
}

func (r *fakePlaylistRepo) Update(_ context.Context, playlist *models.Playlist) error {
	copied := *playlist
	r.playlists[playlist.ID] = &copied
	return nil
}

func (r *fakePlaylistRepo) Delete(_ context.Context, id int64) error {
	delete(r.playlists, id)
	delete(r.videos, id)
	return nil
}

func (r *fakePlaylistRepo) ListByOwner(_ context.Context, ownerID int64) ([]*models.Playlist, error) {
	var playlists []*models.Playlist
	for _, playlist := range r.playlists {
		if playlist.OwnerID == ownerID {
			copied := *playlist
			playlists = append(playlists, &copied)
		}
	}
	return playlists, nil
}

func (r *fakePlaylistRepo) AddVideo(_ context.Context, playlistID, videoID int64) error {
	r.videos[playlistID] = append(r.videos[playlistID], videoID)
	return nil
}

func (r *fakePlaylistRepo) RemoveVideo(_ context.Context, playlistID, videoID int64) error {
	var remaining []int64
	for _, id := range r.videos[playlistID] {
		if id != videoID {
			remaining = append(remaining, id)
		}
	}
	r.videos[playlistID] = remaining
	return nil
}

// fakeStorage records uploads and hands back deterministic URLs. When
// failAfter is n > 0, the n-th successful upload is the last one; the next
// call fails.
type fakeStorage struct {
	uploads   []string
	deletes   []string
	duration  float64
	err       error
	failAfter int
}

func (s *fakeStorage) UploadFile(_ context.Context, file *multipart.FileHeader, folder string) (*utils.UploadResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.failAfter > 0 && len(s.uploads) >= s.failAfter {
		return nil, errUploadBoom
	}
	s.uploads = append(s.uploads, folder+"/"+file.Filename)
	return &utils.UploadResult{
		URL:      "https://cdn.example.com/" + folder + "/" + file.Filename,
		PublicID: folder + "/" + file.Filename,
		Duration: s.duration,
	}, nil
}

func (s *fakeStorage) DeleteFile(_ context.Context, publicID string) error {
	s.deletes = append(s.deletes, publicID)
	return nil
}

// fakeCache is a map-backed cache with call counting.
type fakeCache struct {
	entries map[string][]byte
	hits    int
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (c *fakeCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	data, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	c.hits++
	return true, json.Unmarshal(data, dest)
}

func (c *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = data
	c.sets++
	return nil
}

func (c *fakeCache) Delete(_ context.Context, key string) error {
	delete(c.entries, key)
	return nil
}

func (c *fakeCache) Health(_ context.Context) error { return nil }

func (c *fakeCache) Close() error { return nil }
