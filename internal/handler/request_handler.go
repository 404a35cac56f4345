package handler

import (
	"net/http"

	"go-event-platform/internal/model"
	"go-event-platform/internal/service"

	"github.com/gin-gonic/gin"
)

type RequestHandler struct {
	service service.RequestService
}

func NewRequestHandler(service service.RequestService) *RequestHandler {
	return &RequestHandler{service: service}
}

func (h *RequestHandler) RegisterRoutes(r *gin.Engine) {
	private := r.Group("/users/:userId")
	{
		private.POST("requests", h.SubmitRequest)
		private.GET("requests", h.GetUserRequests)
		private.PATCH("requests/:requestId/cancel", h.CancelRequest)
		private.GET("events/:eventId/requests", h.GetEventRequests)
		private.PATCH("events/:eventId/requests", h.DecideRequests)
	}
}

func (h *RequestHandler) SubmitRequest(c *gin.Context) {
	userID, ok := ParamInt64(c, "userId")
	if !ok {
		return
	}
	eventID, ok := QueryInt64(c, "eventId")
	if !ok {
		return
	}

	created, err := h.service.SubmitRequest(c, userID, eventID)
	if err != nil {
		handleError(c, err, "SubmitRequest")
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *RequestHandler) GetUserRequests(c *gin.Context) {
	userID, ok := ParamInt64(c, "userId")
	if !ok {
		return
	}

	requests, err := h.service.GetUserRequests(c, userID)
	if err != nil {
		handleError(c, err, "GetUserRequests")
		return
	}
	c.JSON(http.StatusOK, requests)
}

func (h *RequestHandler) CancelRequest(c *gin.Context) {
	userID, ok := ParamInt64(c, "userId")
	if !ok {
		return
	}
	requestID, ok := ParamInt64(c, "requestId")
	if !ok {
		return
	}

	canceled, err := h.service.CancelRequest(c, userID, requestID)
	if err != nil {
		handleError(c, err, "CancelRequest")
		return
	}
	c.JSON(http.StatusOK, canceled)
}

func (h *RequestHandler) GetEventRequests(c *gin.Context) {
	userID, ok := ParamInt64(c, "userId")
	if !ok {
		return
	}
	eventID, ok := ParamInt64(c, "eventId")
	if !ok {
		return
	}

	requests, err := h.service.GetEventRequests(c, userID, eventID)
	if err != nil {
		handleError(c, err, "GetEventRequests")
		return
	}
	c.JSON(http.StatusOK, requests)
}

func (h *RequestHandler) DecideRequests(c *gin.Context) {
	userID, ok := ParamInt64(c, "userId")
	if !ok {
		return
	}
	eventID, ok := ParamInt64(c, "eventId")
	if !ok {
		return
	}
	var req model.DecideRequestsRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	result, err := h.service.DecideRequests(c, userID, eventID, req.RequestIDs, model.RequestStatus(req.Status))
	if err != nil {
		handleError(c, err, "DecideRequests")
		return
	}
	c.JSON(http.StatusOK, result)
}
