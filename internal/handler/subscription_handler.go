package handler

import (
	"net/http"

	"go-event-platform/internal/service"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	service service.SubscriptionService
}

func NewSubscriptionHandler(service service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{service: service}
}

func (h *SubscriptionHandler) RegisterRoutes(r *gin.Engine) {
	private := r.Group("/users/:userId/subscriptions")
	{
		private.POST(":initiatorId", h.Subscribe)
		private.DELETE(":initiatorId", h.Unsubscribe)
		private.GET("", h.GetSubscriptions)
		private.GET("feed", h.GetFeed)
		private.GET("pending", h.GetPendingSubscribers)
		private.PATCH("pending/:subscriberId", h.DecideSubscription)
		private.PATCH("pending", h.DecideAllPending)
	}
}

func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	userID, ok := ParamInt64(c, "userId")
	if !ok {
		return
	}
	initiatorID, ok := ParamInt64(c, "initiatorId")
	if !ok {
		return
	}

	created, err := h.service.Subscribe(c, userID, initiatorID)
	if err != nil {
		handleError(c, err, "Subscribe")
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *SubscriptionHandler) Unsubscribe(c *gin.Context) {
	userID, ok := ParamInt64(c, "userId")
	if !ok {
		return
	}
	initiatorID, ok := ParamInt64(c, "initiatorId")
	if !ok {
		return
	}

	if err := h.service.Unsubscribe(c, userID, initiatorID); err != nil {
		handleError(c, err, "Unsubscribe")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SubscriptionHandler) GetSubscriptions(c *gin.Context) {
	userID, ok := ParamInt64(c, "userId")
	if !ok {
		return
	}

	subscriptions, err := h.service.GetSubscriptions(c, userID)
	if err != nil {
		handleError(c, err, "GetSubscriptions")
		return
	}
	c.JSON(http.StatusOK, subscriptions)
}

func (h *SubscriptionHandler) GetFeed(c *gin.Context) {
	userID, ok := ParamInt64(c, "userId")
	if !ok {
		return
	}
	from, size := Paging(c)

	events, err := h.service.GetFeed(c, userID, from, size)
	if err != nil {
		handleError(c, err, "GetFeed")
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *SubscriptionHandler) GetPendingSubscribers(c *gin.Context) {
	userID, ok := ParamInt64(c, "userId")
	if !ok {
		return
	}

	subscriptions, err := h.service.GetPendingSubscribers(c, userID)
	if err != nil {
		handleError(c, err, "GetPendingSubscribers")
		return
	}
	c.JSON(http.StatusOK, subscriptions)
}

func (h *SubscriptionHandler) DecideSubscription(c *gin.Context) {
	userID, ok := ParamInt64(c, "userId")
	if !ok {
		return
	}
	subscriberID, ok := ParamInt64(c, "subscriberId")
	if !ok {
		return
	}
	approve := c.DefaultQuery("approve", "true") == "true"

	updated, err := h.service.DecideSubscription(c, userID, subscriberID, approve)
	if err != nil {
		handleError(c, err, "DecideSubscription")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *SubscriptionHandler) DecideAllPending(c *gin.Context) {
	userID, ok := ParamInt64(c, "userId")
	if !ok {
		return
	}
	approve := c.DefaultQuery("approve", "true") == "true"

	updated, err := h.service.DecideAllPending(c, userID, approve)
	if err != nil {
		handleError(c, err, "DecideAllPending")
		return
	}
	c.JSON(http.StatusOK, updated)
}
