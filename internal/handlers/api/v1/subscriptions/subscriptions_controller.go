// ===============================
// FILE: internal/handlers/api/v1/subscriptions/subscriptions_controller.go
// ===============================

package subscriptions

import (
	"net/http"
	"strconv"

	"vidtube/internal/contextutils"
	"vidtube/internal/response"
	"vidtube/internal/services"

	"go.uber.org/zap"
)

// SubscriptionController handles subscription toggle endpoints.
type SubscriptionController struct {
	services *services.Collection
	logger   *zap.Logger
	builder  *response.Builder
}

// NewSubscriptionController creates a new subscription controller.
func NewSubscriptionController(svc *services.Collection, logger *zap.Logger, builder *response.Builder) *SubscriptionController {
	return &SubscriptionController{services: svc, logger: logger, builder: builder}
}

// ToggleSubscription handles POST /api/v1/subscriptions/channels/{channelId}
func (c *SubscriptionController) ToggleSubscription(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	channelID, err := parseID(r, "channelId")
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}

	result, err := c.services.Subscription.ToggleSubscription(ctx, contextutils.GetActorID(ctx), channelID)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}

	message := "unsubscribed"
	if result.Active {
		message = "subscribed"
	}
	c.builder.WriteSuccess(w, r, result, message)
}

// ListChannelSubscribers handles GET /api/v1/subscriptions/channels/{channelId}/subscribers
func (c *SubscriptionController) ListChannelSubscribers(w http.ResponseWriter, r *http.Request) {
	channelID, err := parseID(r, "channelId")
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}

	subs, err := c.services.Subscription.ListChannelSubscribers(r.Context(), channelID)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, subs, "subscribers fetched successfully")
}

// ListSubscribedChannels handles GET /api/v1/subscriptions/users/{userId}/channels
func (c *SubscriptionController) ListSubscribedChannels(w http.ResponseWriter, r *http.Request) {
	userID, err := parseID(r, "userId")
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}

	subs, err := c.services.Subscription.ListSubscribedChannels(r.Context(), userID)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, subs, "subscribed channels fetched successfully")
}

func parseID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, services.NewValidationError("invalid "+name, err)
	}
	return id, nil
}
