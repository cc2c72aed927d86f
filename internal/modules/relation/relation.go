// Package relation exposes CRUD for declared associations between collections.
package relation

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

var errJunctionRequired = errors.New("junction is required for m2m relations and forbidden otherwise")

type CreateRelationDTO struct {
	ManyCollection string  `json:"many_collection" binding:"required"`
	OneCollection  string  `json:"one_collection"  binding:"required"`
	FieldMany      string  `json:"field_many"      binding:"required"`
	FieldOne       string  `json:"field_one"       binding:"required"`
	Type           string  `json:"type"            binding:"required,oneof=m2o o2m m2m"`
	Junction       *string `json:"junction"`
}

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) List(ctx context.Context, filters map[string]string, q pagination.Query) ([]models.RelationModel, pagination.Meta, error) {
	query := filter.Apply(s.db.WithContext(ctx).Model(&models.RelationModel{}), &models.RelationModel{}, filters)
	var rels []models.RelationModel
	meta, err := pagination.Paginate(query.Order("many_collection ASC"), q, &rels)
	return rels, meta, err
}

func (s *Service) GetByID(ctx context.Context, id string) (*models.RelationModel, error) {
	return repository.Get[models.RelationModel](ctx, s.db, repository.Criteria{"id": id}, true)
}

func (s *Service) Create(ctx context.Context, dto *CreateRelationDTO) (*models.RelationModel, error) {
	junctionSet := dto.Junction != nil && *dto.Junction != ""
	if (dto.Type == models.RelationManyToMany) != junctionSet {
		return nil, errJunctionRequired
	}
	for _, name := range []string{dto.ManyCollection, dto.OneCollection} {
		coll, err := repository.Get[models.CollectionModel](ctx, s.db,
			repository.Criteria{"collection": name}, false)
		if err != nil {
			return nil, err
		}
		if coll == nil {
			return nil, fmt.Errorf("%w: collection %q", repository.ErrNotFound, name)
		}
	}

	rel := models.RelationModel{
		ManyCollection: dto.ManyCollection,
		OneCollection:  dto.OneCollection,
		FieldMany:      dto.FieldMany,
		FieldOne:       dto.FieldOne,
		Type:           dto.Type,
		Junction:       dto.Junction,
	}
	return &rel, repository.Create(ctx, s.db, &rel)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	rel, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return repository.Delete(ctx, s.db, rel)
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rels := rg.Group("/relations")
	rels.GET("", h.list)
	rels.GET("/:id", h.get)

	authed := rels.Group("", authMW)
	authed.POST("", h.create)
	authed.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	rels, meta, err := h.svc.List(c.Request.Context(), filter.FromQuery(c), pagination.FromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paged(c, rels, meta)
}

func (h *Handler) get(c *gin.Context) {
	rel, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rel)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateRelationDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.ValidationError(c, err)
		return
	}
	rel, err := h.svc.Create(c.Request.Context(), &dto)
	if err != nil {
		if errors.Is(err, errJunctionRequired) {
			response.BadRequest(c, err.Error())
			return
		}
		response.Error(c, err)
		return
	}
	response.Created(c, rel)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
