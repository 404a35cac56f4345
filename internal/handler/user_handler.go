package handler

import (
	"net/http"

	"go-event-platform/internal/model"
	"go-event-platform/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service service.UserService
}

func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) RegisterRoutes(r *gin.Engine) {
	admin := r.Group("/admin/users")
	{
		admin.POST("", h.CreateUser)
		admin.GET("", h.GetUsers)
		admin.PATCH(":userId", h.UpdateUser)
		admin.DELETE(":userId", h.DeleteUser)
	}
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req model.NewUserRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	created, err := h.service.AddUser(c, req.Name, req.Email)
	if err != nil {
		handleError(c, err, "CreateUser")
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *UserHandler) GetUsers(c *gin.Context) {
	from, size := Paging(c)
	ids := queryInt64List(c, "ids")

	users, err := h.service.GetUsers(c, ids, from, size)
	if err != nil {
		handleError(c, err, "GetUsers")
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID, ok := ParamInt64(c, "userId")
	if !ok {
		return
	}
	var req model.UpdateUserRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	updated, err := h.service.UpdateUser(c, userID, model.UpdateUserParams{
		Name:   req.Name,
		Public: req.Public,
	})
	if err != nil {
		handleError(c, err, "UpdateUser")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID, ok := ParamInt64(c, "userId")
	if !ok {
		return
	}

	if err := h.service.DeleteUser(c, userID); err != nil {
		handleError(c, err, "DeleteUser")
		return
	}
	c.Status(http.StatusNoContent)
}
