package handler

import (
	"net/http"
	"strings"

	"go-event-platform/internal/model"
	"go-event-platform/internal/queue"
	"go-event-platform/internal/service"
	apperrors "go-event-platform/pkg/app_errors"
	"go-event-platform/pkg/clock"
	"go-event-platform/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type EventHandler struct {
	service  service.EventService
	hitQueue queue.HitQueue
	clock    clock.Clock
	appName  string
}

func NewEventHandler(service service.EventService, hitQueue queue.HitQueue, clk clock.Clock, appName string) *EventHandler {
	return &EventHandler{
		service:  service,
		hitQueue: hitQueue,
		clock:    clk,
		appName:  appName,
	}
}

func (h *EventHandler) RegisterRoutes(r *gin.Engine) {
	admin := r.Group("/admin")
	{
		admin.GET("events", h.AdminSearchEvents)
		admin.PATCH("events/:eventId", h.AdminUpdateEvent)
	}
	private := r.Group("/users/:userId")
	{
		private.POST("events", h.CreateEvent)
		private.GET("events", h.GetInitiatorEvents)
		private.GET("events/:eventId", h.GetInitiatorEvent)
		private.PATCH("events/:eventId", h.UpdateEvent)
	}
	public := r.Group("/events")
	{
		public.GET("", h.SearchEvents)
		public.GET(":eventId", h.GetEvent)
	}
}

func (h *EventHandler) CreateEvent(c *gin.Context) {
	userID, ok := ParamInt64(c, "userId")
	if !ok {
		return
	}
	var req model.NewEventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	params, err := req.ToParams()
	if err != nil {
		handleError(c, apperrors.ErrInvalidInput, "CreateEvent")
		return
	}

	created, err := h.service.AddEvent(c, userID, params)
	if err != nil {
		handleError(c, err, "CreateEvent")
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *EventHandler) GetInitiatorEvents(c *gin.Context) {
	userID, ok := ParamInt64(c, "userId")
	if !ok {
		return
	}
	from, size := Paging(c)

	events, err := h.service.GetInitiatorEvents(c, userID, from, size)
	if err != nil {
		handleError(c, err, "GetInitiatorEvents")
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) GetInitiatorEvent(c *gin.Context) {
	userID, ok := ParamInt64(c, "userId")
	if !ok {
		return
	}
	eventID, ok := ParamInt64(c, "eventId")
	if !ok {
		return
	}

	event, err := h.service.GetInitiatorEvent(c, userID, eventID)
	if err != nil {
		handleError(c, err, "GetInitiatorEvent")
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) UpdateEvent(c *gin.Context) {
	userID, ok := ParamInt64(c, "userId")
	if !ok {
		return
	}
	eventID, ok := ParamInt64(c, "eventId")
	if !ok {
		return
	}
	var req model.UpdateEventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	params, action, err := req.ToParams()
	if err != nil {
		handleError(c, apperrors.ErrInvalidInput, "UpdateEvent")
		return
	}

	updated, err := h.service.UpdateEventByInitiator(c, userID, eventID, params, action)
	if err != nil {
		handleError(c, err, "UpdateEvent")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *EventHandler) AdminSearchEvents(c *gin.Context) {
	filter, err := h.adminFilter(c)
	if err != nil {
		handleError(c, err, "AdminSearchEvents")
		return
	}

	events, err := h.service.AdminSearch(c, filter)
	if err != nil {
		handleError(c, err, "AdminSearchEvents")
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) AdminUpdateEvent(c *gin.Context) {
	eventID, ok := ParamInt64(c, "eventId")
	if !ok {
		return
	}
	var req model.UpdateEventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	params, action, err := req.ToParams()
	if err != nil {
		handleError(c, apperrors.ErrInvalidInput, "AdminUpdateEvent")
		return
	}

	updated, err := h.service.UpdateEventByAdmin(c, eventID, params, action)
	if err != nil {
		handleError(c, err, "AdminUpdateEvent")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *EventHandler) SearchEvents(c *gin.Context) {
	filter, err := h.publicFilter(c)
	if err != nil {
		handleError(c, err, "SearchEvents")
		return
	}

	events, err := h.service.PublicSearch(c, filter)
	if err != nil {
		handleError(c, err, "SearchEvents")
		return
	}

	h.recordHit(c)
	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) GetEvent(c *gin.Context) {
	eventID, ok := ParamInt64(c, "eventId")
	if !ok {
		return
	}

	event, err := h.service.GetPublishedEvent(c, eventID)
	if err != nil {
		handleError(c, err, "GetEvent")
		return
	}

	h.recordHit(c)
	c.JSON(http.StatusOK, event)
}

// recordHit 把端點瀏覽發佈到佇列，由背景 worker 轉送統計服務。
// 發佈失敗只記錄，不影響讀取回應。
func (h *EventHandler) recordHit(c *gin.Context) {
	hit := &model.EndpointHit{
		App:       h.appName,
		URI:       c.Request.URL.Path,
		IP:        c.ClientIP(),
		Timestamp: h.clock.Now(),
	}
	if err := h.hitQueue.PublishHit(c, hit); err != nil {
		logger.WithComponent("handler").Warn("Failed to publish endpoint hit",
			zap.String("uri", hit.URI), zap.Error(err))
	}
}

func (h *EventHandler) adminFilter(c *gin.Context) (model.AdminEventFilter, error) {
	from, size := Paging(c)
	filter := model.AdminEventFilter{
		InitiatorIDs: queryInt64List(c, "users"),
		CategoryIDs:  queryInt64List(c, "categories"),
		From:         from,
		Size:         size,
	}
	if raw := c.Query("states"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			state := model.EventState(strings.TrimSpace(part))
			if !state.IsValid() {
				return model.AdminEventFilter{}, apperrors.ErrInvalidInput
			}
			filter.States = append(filter.States, state)
		}
	}
	var err error
	if filter.RangeStart, err = queryTime(c, "rangeStart"); err != nil {
		return model.AdminEventFilter{}, err
	}
	if filter.RangeEnd, err = queryTime(c, "rangeEnd"); err != nil {
		return model.AdminEventFilter{}, err
	}
	return filter, nil
}

func (h *EventHandler) publicFilter(c *gin.Context) (model.PublicEventFilter, error) {
	from, size := Paging(c)
	filter := model.PublicEventFilter{
		CategoryIDs:   queryInt64List(c, "categories"),
		OnlyAvailable: c.Query("onlyAvailable") == "true",
		Sort:          model.EventSortByID,
		From:          from,
		Size:          size,
	}
	if text := c.Query("text"); text != "" {
		filter.Text = &text
	}
	if raw := c.Query("paid"); raw != "" {
		paid := raw == "true"
		filter.Paid = &paid
	}
	switch c.Query("sort") {
	case "":
	case string(model.EventSortByEventDate):
		filter.Sort = model.EventSortByEventDate
	case string(model.EventSortByViews):
		filter.Sort = model.EventSortByViews
	default:
		return model.PublicEventFilter{}, apperrors.ErrInvalidInput
	}
	var err error
	if filter.RangeStart, err = queryTime(c, "rangeStart"); err != nil {
		return model.PublicEventFilter{}, err
	}
	if filter.RangeEnd, err = queryTime(c, "rangeEnd"); err != nil {
		return model.PublicEventFilter{}, err
	}
	return filter, nil
}
