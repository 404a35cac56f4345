package handler

import (
	"net/http"

	"go-event-platform/internal/model"
	"go-event-platform/internal/service"

	"github.com/gin-gonic/gin"
)

type CompilationHandler struct {
	service service.CompilationService
}

func NewCompilationHandler(service service.CompilationService) *CompilationHandler {
	return &CompilationHandler{service: service}
}

func (h *CompilationHandler) RegisterRoutes(r *gin.Engine) {
	admin := r.Group("/admin/compilations")
	{
		admin.POST("", h.CreateCompilation)
		admin.PATCH(":compId", h.UpdateCompilation)
		admin.DELETE(":compId", h.DeleteCompilation)
	}
	public := r.Group("/compilations")
	{
		public.GET("", h.GetCompilations)
		public.GET(":compId", h.GetCompilation)
	}
}

func (h *CompilationHandler) CreateCompilation(c *gin.Context) {
	var req model.NewCompilationRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	created, err := h.service.AddCompilation(c, req.Title, req.Pinned, req.Events)
	if err != nil {
		handleError(c, err, "CreateCompilation")
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *CompilationHandler) UpdateCompilation(c *gin.Context) {
	compID, ok := ParamInt64(c, "compId")
	if !ok {
		return
	}
	var req model.UpdateCompilationRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	updated, err := h.service.UpdateCompilation(c, compID, model.UpdateCompilationParams{
		Title:    req.Title,
		Pinned:   req.Pinned,
		EventIDs: req.Events,
	})
	if err != nil {
		handleError(c, err, "UpdateCompilation")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *CompilationHandler) DeleteCompilation(c *gin.Context) {
	compID, ok := ParamInt64(c, "compId")
	if !ok {
		return
	}

	if err := h.service.DeleteCompilation(c, compID); err != nil {
		handleError(c, err, "DeleteCompilation")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CompilationHandler) GetCompilations(c *gin.Context) {
	from, size := Paging(c)
	var pinned *bool
	if raw := c.Query("pinned"); raw != "" {
		value := raw == "true"
		pinned = &value
	}

	compilations, err := h.service.GetCompilations(c, pinned, from, size)
	if err != nil {
		handleError(c, err, "GetCompilations")
		return
	}
	c.JSON(http.StatusOK, compilations)
}

func (h *CompilationHandler) GetCompilation(c *gin.Context) {
	compID, ok := ParamInt64(c, "compId")
	if !ok {
		return
	}

	compilation, err := h.service.GetCompilation(c, compID)
	if err != nil {
		handleError(c, err, "GetCompilation")
		return
	}
	c.JSON(http.StatusOK, compilation)
}
