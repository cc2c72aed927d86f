// Package role exposes CRUD for grantable roles.
package role

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

type CreateRoleDTO struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateRoleDTO struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) List(ctx context.Context, filters map[string]string, q pagination.Query) ([]models.RoleModel, pagination.Meta, error) {
	query := filter.Apply(s.db.WithContext(ctx).Model(&models.RoleModel{}), &models.RoleModel{}, filters)
	var roles []models.RoleModel
	meta, err := pagination.Paginate(query.Order("name ASC"), q, &roles)
	return roles, meta, err
}

func (s *Service) GetByID(ctx context.Context, id string) (*models.RoleModel, error) {
	return repository.Get[models.RoleModel](ctx, s.db, repository.Criteria{"id": id}, true)
}

func (s *Service) Create(ctx context.Context, dto *CreateRoleDTO) (*models.RoleModel, error) {
	r := models.RoleModel{Name: dto.Name, Description: dto.Description}
	return &r, repository.Create(ctx, s.db, &r)
}

func (s *Service) Update(ctx context.Context, id string, dto *UpdateRoleDTO) (*models.RoleModel, error) {
	r, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if dto.Name != nil {
		updates["name"] = *dto.Name
	}
	if dto.Description != nil {
		updates["description"] = *dto.Description
	}
	if len(updates) == 0 {
		return r, nil
	}
	if err := repository.Update(ctx, s.db, r, updates); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	r, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return repository.Delete(ctx, s.db, r)
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	roles := rg.Group("/roles", authMW)
	roles.GET("", h.list)
	roles.POST("", h.create)
	roles.GET("/:id", h.get)
	roles.PATCH("/:id", h.update)
	roles.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	roles, meta, err := h.svc.List(c.Request.Context(), filter.FromQuery(c), pagination.FromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paged(c, roles, meta)
}

func (h *Handler) get(c *gin.Context) {
	r, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, r)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateRoleDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.ValidationError(c, err)
		return
	}
	r, err := h.svc.Create(c.Request.Context(), &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, r)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateRoleDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.ValidationError(c, err)
		return
	}
	r, err := h.svc.Update(c.Request.Context(), c.Param("id"), &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, r)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
