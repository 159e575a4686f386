// ===============================
// FILE: internal/handlers/api/v1/tweets/tweets_controller.go
// ===============================

package tweets

import (
	"encoding/json"
	"net/http"
	"strconv"

	"vidtube/internal/config"
	"vidtube/internal/contextutils"
	"vidtube/internal/response"
	"vidtube/internal/services"

	"go.uber.org/zap"
)

// TweetController handles tweet API endpoints.
type TweetController struct {
	services *services.Collection
	cfg      *config.Config
	logger   *zap.Logger
	builder  *response.Builder
}

// NewTweetController creates a new tweet controller.
func NewTweetController(svc *services.Collection, cfg *config.Config, logger *zap.Logger, builder *response.Builder) *TweetController {
	return &TweetController{services: svc, cfg: cfg, logger: logger, builder: builder}
}

// CreateTweet handles POST /api/v1/tweets
func (c *TweetController) CreateTweet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var body struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		c.builder.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}

	tweet, err := c.services.Tweet.CreateTweet(ctx, &services.CreateTweetRequest{
		OwnerID: contextutils.GetActorID(ctx),
		Content: body.Content,
	})
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteCreated(w, r, tweet, "tweet created successfully")
}

// ListUserTweets handles GET /api/v1/users/{userId}/tweets
func (c *TweetController) ListUserTweets(w http.ResponseWriter, r *http.Request) {
	userID, err := parseID(r, "userId")
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}

	params, err := response.ParsePagination(r, c.cfg.Pagination.DefaultLimit, c.cfg.Pagination.MaxLimit)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}

	page, err := c.services.Tweet.ListUserTweets(r.Context(), userID, params, viewerID(r))
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, page, "tweets fetched successfully")
}

// UpdateTweet handles PATCH /api/v1/tweets/{id}
func (c *TweetController) UpdateTweet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tweetID, err := parseID(r, "id")
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}

	var body struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		c.builder.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}

	tweet, err := c.services.Tweet.UpdateTweet(ctx, &services.UpdateTweetRequest{
		TweetID: tweetID,
		ActorID: contextutils.GetActorID(ctx),
		Content: body.Content,
	})
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, tweet, "tweet updated successfully")
}

// DeleteTweet handles DELETE /api/v1/tweets/{id}
func (c *TweetController) DeleteTweet(w http.ResponseWriter, r *http.Request) {
	tweetID, err := parseID(r, "id")
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}

	if err := c.services.Tweet.DeleteTweet(r.Context(), tweetID, contextutils.GetActorID(r.Context())); err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, nil, "tweet deleted successfully")
}

func parseID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, services.NewValidationError("invalid "+name, err)
	}
	return id, nil
}

func viewerID(r *http.Request) *int64 {
	if actorID := contextutils.GetActorID(r.Context()); actorID != 0 {
		return &actorID
	}
	return nil
}
