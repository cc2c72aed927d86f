package content

import (
	"github.com/coreinspect/core/internal/middleware"
	"github.com/coreinspect/core/internal/pkg/pagination"
	"github.com/coreinspect/core/internal/pkg/response"
	"github.com/coreinspect/core/internal/repository/filter"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	contents := rg.Group("/contents", authMW)
	contents.GET("", h.list)
	contents.POST("", h.create)
	contents.GET("/drafts", h.listDrafts)
	contents.GET("/:id", h.get)
	contents.PUT("/:id", h.update)
	contents.DELETE("/:id", h.delete)
	contents.PATCH("/:id/publish", h.publish)
	contents.GET("/:id/revisions", h.listRevisions)
	contents.POST("/:id/revisions", h.saveRevision)
}

func (h *Handler) list(c *gin.Context) {
	items, meta, err := h.svc.List(c.Request.Context(), filter.FromQuery(c), pagination.FromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paged(c, items, meta)
}

func (h *Handler) listDrafts(c *gin.Context) {
	items, meta, err := h.svc.ListDrafts(c.Request.Context(), filter.FromQuery(c), pagination.FromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paged(c, items, meta)
}

func (h *Handler) get(c *gin.Context) {
	item, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, item)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateContentDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.ValidationError(c, err)
		return
	}
	item, err := h.svc.Create(c.Request.Context(), &dto, middleware.CurrentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateContentDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.ValidationError(c, err)
		return
	}
	item, err := h.svc.Update(c.Request.Context(), c.Param("id"), &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, item)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.OKMsg(c, "Content deleted", nil)
}

func (h *Handler) publish(c *gin.Context) {
	item, err := h.svc.Publish(c.Request.Context(), c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, item)
}

func (h *Handler) listRevisions(c *gin.Context) {
	revs, meta, err := h.svc.ListRevisions(c.Request.Context(), c.Param("id"), pagination.FromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paged(c, revs, meta)
}

func (h *Handler) saveRevision(c *gin.Context) {
	rev, err := h.svc.SaveRevision(c.Request.Context(), c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, rev)
}
