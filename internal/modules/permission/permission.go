// Package permission exposes CRUD for action-on-resource permissions.
package permission

import (
	"context"

	"github.com/coreinspect/core/internal/models"
	"github.com/coreinspect/core/internal/pkg/pagination"
	"github.com/coreinspect/core/internal/pkg/response"
	"github.com/coreinspect/core/internal/repository"
	"github.com/coreinspect/core/internal/repository/filter"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreatePermissionDTO struct {
	Name        string `json:"name"     binding:"required"`
	Action      string `json:"action"   binding:"required"`
	Resource    string `json:"resource" binding:"required"`
	Description string `json:"description"`
}

type UpdatePermissionDTO struct {
	Name        *string `json:"name"`
	Action      *string `json:"action"`
	Resource    *string `json:"resource"`
	Description *string `json:"description"`
}

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) List(ctx context.Context, filters map[string]string, q pagination.Query) ([]models.PermissionModel, pagination.Meta, error) {
	query := filter.Apply(s.db.WithContext(ctx).Model(&models.PermissionModel{}), &models.PermissionModel{}, filters)
	var perms []models.PermissionModel
	meta, err := pagination.Paginate(query.Order("name ASC"), q, &perms)
	return perms, meta, err
}

func (s *Service) GetByID(ctx context.Context, id string) (*models.PermissionModel, error) {
	return repository.Get[models.PermissionModel](ctx, s.db, repository.Criteria{"id": id}, true)
}

func (s *Service) Create(ctx context.Context, dto *CreatePermissionDTO) (*models.PermissionModel, error) {
	p := models.PermissionModel{
		Name:        dto.Name,
		Action:      dto.Action,
		Resource:    dto.Resource,
		Description: dto.Description,
	}
	return &p, repository.Create(ctx, s.db, &p)
}

func (s *Service) Update(ctx context.Context, id string, dto *UpdatePermissionDTO) (*models.PermissionModel, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if dto.Name != nil {
		updates["name"] = *dto.Name
	}
	if dto.Action != nil {
		updates["action"] = *dto.Action
	}
	if dto.Resource != nil {
		updates["resource"] = *dto.Resource
	}
	if dto.Description != nil {
		updates["description"] = *dto.Description
	}
	if len(updates) == 0 {
		return p, nil
	}
	if err := repository.Update(ctx, s.db, p, updates); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return repository.Delete(ctx, s.db, p)
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	perms := rg.Group("/permissions", authMW)
	perms.GET("", h.list)
	perms.POST("", h.create)
	perms.GET("/:id", h.get)
	perms.PATCH("/:id", h.update)
	perms.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	perms, meta, err := h.svc.List(c.Request.Context(), filter.FromQuery(c), pagination.FromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paged(c, perms, meta)
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, p)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreatePermissionDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.ValidationError(c, err)
		return
	}
	p, err := h.svc.Create(c.Request.Context(), &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, p)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdatePermissionDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.ValidationError(c, err)
		return
	}
	p, err := h.svc.Update(c.Request.Context(), c.Param("id"), &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, p)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
