package collection

import (
	"github.com/coreinspect/core/internal/middleware"
	"github.com/coreinspect/core/internal/models"
	"github.com/coreinspect/core/internal/modules/content"
	"github.com/coreinspect/core/internal/pkg/pagination"
	"github.com/coreinspect/core/internal/pkg/response"
	"github.com/coreinspect/core/internal/repository"
	"github.com/coreinspect/core/internal/repository/filter"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc        *Service
	contentSvc *content.Service
}

func NewHandler(svc *Service, contentSvc *content.Service) *Handler {
	return &Handler{svc: svc, contentSvc: contentSvc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	colls := rg.Group("/collections")
	colls.GET("", h.list)
	colls.GET("/:name", h.get)

	authed := colls.Group("", authMW)
	authed.POST("", h.create)
	authed.PATCH("/:name", h.update)
	authed.DELETE("/:name", h.delete)

	// Records within a dynamically defined collection.
	authed.GET("/:name/records", h.listRecords)
	authed.POST("/:name/records", h.createRecord)
	authed.GET("/:name/records/:id", h.getRecord)
	authed.PATCH("/:name/records/:id", h.updateRecord)
	authed.DELETE("/:name/records/:id", h.deleteRecord)
}

func (h *Handler) list(c *gin.Context) {
	colls, meta, err := h.svc.List(c.Request.Context(), filter.FromQuery(c), pagination.FromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paged(c, colls, meta)
}

func (h *Handler) get(c *gin.Context) {
	coll, err := h.svc.GetByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, coll)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateCollectionDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.ValidationError(c, err)
		return
	}
	coll, err := h.svc.Create(c.Request.Context(), &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, coll)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateCollectionDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.ValidationError(c, err)
		return
	}
	coll, err := h.svc.Update(c.Request.Context(), c.Param("name"), &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, coll)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("name")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) listRecords(c *gin.Context) {
	name := c.Param("name")
	if _, err := h.svc.GetByName(c.Request.Context(), name); err != nil {
		response.Error(c, err)
		return
	}
	items, meta, err := h.contentSvc.ListByCollection(c.Request.Context(), name,
		filter.FromQuery(c), pagination.FromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paged(c, items, meta)
}

func (h *Handler) createRecord(c *gin.Context) {
	var data models.JSONMap
	if err := c.ShouldBindJSON(&data); err != nil {
		response.ValidationError(c, err)
		return
	}
	dto := content.CreateContentDTO{Collection: c.Param("name"), Data: data}
	item, err := h.contentSvc.Create(c.Request.Context(), &dto, middleware.CurrentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

func (h *Handler) getRecord(c *gin.Context) {
	item, err := h.recordInCollection(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, item)
}

func (h *Handler) updateRecord(c *gin.Context) {
	if _, err := h.recordInCollection(c); err != nil {
		response.Error(c, err)
		return
	}
	var dto content.UpdateContentDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.ValidationError(c, err)
		return
	}
	item, err := h.contentSvc.Update(c.Request.Context(), c.Param("id"), &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, item)
}

func (h *Handler) deleteRecord(c *gin.Context) {
	if _, err := h.recordInCollection(c); err != nil {
		response.Error(c, err)
		return
	}
	if err := h.contentSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// recordInCollection resolves the record and verifies it belongs to the
// collection named in the path; a record under the wrong collection is a 404.
func (h *Handler) recordInCollection(c *gin.Context) (*models.ContentModel, error) {
	item, err := h.contentSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		return nil, err
	}
	if item.Collection != c.Param("name") {
		return nil, repository.ErrNotFound
	}
	return item, nil
}
