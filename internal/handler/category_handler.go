package handler

import (
	"net/http"

	"go-event-platform/internal/model"
	"go-event-platform/internal/service"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	service service.CategoryService
}

func NewCategoryHandler(service service.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

func (h *CategoryHandler) RegisterRoutes(r *gin.Engine) {
	admin := r.Group("/admin/categories")
	{
		admin.POST("", h.CreateCategory)
		admin.PATCH(":catId", h.UpdateCategory)
		admin.DELETE(":catId", h.DeleteCategory)
	}
	public := r.Group("/categories")
	{
		public.GET("", h.GetCategories)
		public.GET(":catId", h.GetCategory)
	}
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req model.NewCategoryRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	created, err := h.service.AddCategory(c, req.Name)
	if err != nil {
		handleError(c, err, "CreateCategory")
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	catID, ok := ParamInt64(c, "catId")
	if !ok {
		return
	}
	var req model.NewCategoryRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	updated, err := h.service.UpdateCategory(c, catID, req.Name)
	if err != nil {
		handleError(c, err, "UpdateCategory")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	catID, ok := ParamInt64(c, "catId")
	if !ok {
		return
	}

	if err := h.service.DeleteCategory(c, catID); err != nil {
		handleError(c, err, "DeleteCategory")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CategoryHandler) GetCategories(c *gin.Context) {
	from, size := Paging(c)

	categories, err := h.service.GetCategories(c, from, size)
	if err != nil {
		handleError(c, err, "GetCategories")
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) GetCategory(c *gin.Context) {
	catID, ok := ParamInt64(c, "catId")
	if !ok {
		return
	}

	category, err := h.service.GetCategory(c, catID)
	if err != nil {
		handleError(c, err, "GetCategory")
		return
	}
	c.JSON(http.StatusOK, category)
}
