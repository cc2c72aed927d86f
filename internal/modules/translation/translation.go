// Package translation stores sparse per-locale overrides for individual
// fields of content items.
package translation

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

type CreateTranslationDTO struct {
	Collection string `json:"collection" binding:"required"`
	ItemID     string `json:"item_id"    binding:"required"`
	Field      string `json:"field"      binding:"required"`
	Language   string `json:"language"   binding:"required"`
	Value      string `json:"value"`
}

type UpdateTranslationDTO struct {
	Value string `json:"value" binding:"required"`
}

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) List(ctx context.Context, params map[string]string, q pagination.Query) ([]models.TranslationModel, pagination.Meta, error) {
	query := s.db.WithContext(ctx).Model(&models.TranslationModel{})
	query = filter.Apply(query, &models.TranslationModel{}, params)

	var rows []models.TranslationModel
	meta, err := pagination.Paginate(query.Order("collection ASC, item_id ASC, field ASC, language ASC"), q, &rows)
	return rows, meta, err
}

func (s *Service) Get(ctx context.Context, id string) (*models.TranslationModel, error) {
	return repository.Get[models.TranslationModel](ctx, s.db, repository.Criteria{"id": id}, true)
}

// Create inserts an override. A duplicate (collection, item, field, language)
// tuple surfaces as a conflict through the unique index.
func (s *Service) Create(ctx context.Context, dto *CreateTranslationDTO) (*models.TranslationModel, error) {
	item, err := repository.Get[models.ContentModel](ctx, s.db, repository.Criteria{"id": dto.ItemID}, true)
	if err != nil {
		return nil, err
	}

	row := models.TranslationModel{
		Collection: item.Collection,
		ItemID:     item.ID,
		Field:      dto.Field,
		Language:   dto.Language,
		Value:      dto.Value,
	}
	if err := repository.Create(ctx, s.db, &row); err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *Service) Update(ctx context.Context, id string, dto *UpdateTranslationDTO) (*models.TranslationModel, error) {
	row, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := repository.Update(ctx, s.db, row, map[string]interface{}{"value": dto.Value}); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	row, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return repository.Delete(ctx, s.db, row)
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	translations := rg.Group("/translations")
	translations.GET("", h.list)
	translations.GET("/:id", h.get)

	authed := translations.Group("", authMW)
	authed.POST("", h.create)
	authed.PUT("/:id", h.update)
	authed.PATCH("/:id", h.update)
	authed.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	rows, meta, err := h.svc.List(c.Request.Context(), filter.FromQuery(c), pagination.FromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paged(c, rows, meta)
}

func (h *Handler) get(c *gin.Context) {
	row, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, row)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateTranslationDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.ValidationError(c, err)
		return
	}
	row, err := h.svc.Create(c.Request.Context(), &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, row)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateTranslationDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.ValidationError(c, err)
		return
	}
	row, err := h.svc.Update(c.Request.Context(), c.Param("id"), &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, row)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
