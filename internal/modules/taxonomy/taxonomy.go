// Package taxonomy manages vocabulary terms, which form a forest per
// vocabulary via optional parent links.
package taxonomy

import (
	"context"
	"errors"
	"fmt"

	"github.com/coreinspect/core/internal/models"
	"github.com/coreinspect/core/internal/pkg/pagination"
	"github.com/coreinspect/core/internal/pkg/response"
	"github.com/coreinspect/core/internal/repository"
	"github.com/coreinspect/core/internal/repository/filter"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var errCrossVocabulary = errors.New("parent term must belong to the same vocabulary")

type CreateTaxonomyDTO struct {
	Vocabulary string  `json:"vocabulary" binding:"required"`
	Term       string  `json:"term"       binding:"required"`
	ParentID   *string `json:"parent_id"`
}

type UpdateTaxonomyDTO struct {
	Term     *string `json:"term"`
	ParentID *string `json:"parent_id"`
}

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) List(ctx context.Context, filters map[string]string, q pagination.Query) ([]models.TaxonomyModel, pagination.Meta, error) {
	query := filter.Apply(s.db.WithContext(ctx).Model(&models.TaxonomyModel{}), &models.TaxonomyModel{}, filters)
	var terms []models.TaxonomyModel
	meta, err := pagination.Paginate(query.Order("vocabulary ASC, term ASC"), q, &terms)
	return terms, meta, err
}

func (s *Service) GetByID(ctx context.Context, id string) (*models.TaxonomyModel, error) {
	return repository.Get[models.TaxonomyModel](ctx, s.db, repository.Criteria{"id": id}, true)
}

func (s *Service) Create(ctx context.Context, dto *CreateTaxonomyDTO) (*models.TaxonomyModel, error) {
	if dto.ParentID != nil {
		if err := s.checkParent(ctx, *dto.ParentID, dto.Vocabulary); err != nil {
			return nil, err
		}
	}
	t := models.TaxonomyModel{
		Vocabulary: dto.Vocabulary,
		Term:       dto.Term,
		ParentID:   dto.ParentID,
	}
	return &t, repository.Create(ctx, s.db, &t)
}

func (s *Service) Update(ctx context.Context, id string, dto *UpdateTaxonomyDTO) (*models.TaxonomyModel, error) {
	t, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.Term != nil {
		updates["term"] = *dto.Term
	}
	if dto.ParentID != nil {
		if err := s.checkParent(ctx, *dto.ParentID, t.Vocabulary); err != nil {
			return nil, err
		}
		updates["parent_id"] = *dto.ParentID
	}
	if len(updates) == 0 {
		return t, nil
	}
	if err := repository.Update(ctx, s.db, t, updates); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	t, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	// Children of a removed term become roots of their own subtree.
	if err := s.db.WithContext(ctx).Model(&models.TaxonomyModel{}).
		Where("parent_id = ?", id).Update("parent_id", nil).Error; err != nil {
		return err
	}
	return repository.Delete(ctx, s.db, t)
}

func (s *Service) checkParent(ctx context.Context, parentID, vocabulary string) error {
	parent, err := repository.Get[models.TaxonomyModel](ctx, s.db, repository.Criteria{"id": parentID}, false)
	if err != nil {
		return err
	}
	if parent == nil {
		return fmt.Errorf("%w: parent term %q", repository.ErrNotFound, parentID)
	}
	if parent.Vocabulary != vocabulary {
		return errCrossVocabulary
	}
	return nil
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	tax := rg.Group("/taxonomies")
	tax.GET("", h.list)
	tax.GET("/:id", h.get)

	authed := tax.Group("", authMW)
	authed.POST("", h.create)
	authed.PUT("/:id", h.update)
	authed.PATCH("/:id", h.update)
	authed.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	terms, meta, err := h.svc.List(c.Request.Context(), filter.FromQuery(c), pagination.FromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paged(c, terms, meta)
}

func (h *Handler) get(c *gin.Context) {
	t, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, t)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateTaxonomyDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.ValidationError(c, err)
		return
	}
	t, err := h.svc.Create(c.Request.Context(), &dto)
	if err != nil {
		if errors.Is(err, errCrossVocabulary) {
			response.BadRequest(c, err.Error())
			return
		}
		response.Error(c, err)
		return
	}
	response.Created(c, t)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateTaxonomyDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.ValidationError(c, err)
		return
	}
	t, err := h.svc.Update(c.Request.Context(), c.Param("id"), &dto)
	if err != nil {
		if errors.Is(err, errCrossVocabulary) {
			response.BadRequest(c, err.Error())
			return
		}
		response.Error(c, err)
		return
	}
	response.OK(c, t)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
