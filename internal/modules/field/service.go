package field

import (
	"context"
	"fmt"

	"github.com/coreinspect/core/internal/config"
	"github.com/coreinspect/core/internal/models"
	"github.com/coreinspect/core/internal/pkg/pagination"
	"github.com/coreinspect/core/internal/repository"
	"github.com/coreinspect/core/internal/repository/filter"
	"gorm.io/gorm"
)

type CreateFieldDTO struct {
	Collection string         `json:"collection" binding:"required"`
	Name       string         `json:"field"      binding:"required"`
	Type       string         `json:"type"       binding:"required"`
	Schema     models.JSONMap `json:"schema"`
	Interface  models.JSONMap `json:"interface"`
	Options    models.JSONMap `json:"options"`
}

type UpdateFieldDTO struct {
	Name      *string        `json:"field"`
	Type      *string        `json:"type"`
	Schema    models.JSONMap `json:"schema"`
	Interface models.JSONMap `json:"interface"`
	Options   models.JSONMap `json:"options"`
}

// Service manages field definitions. nameScope selects whether a field name is
// unique per-collection or across all collections (deployments differ).
type Service struct {
	db        *gorm.DB
	nameScope string
}

func NewService(db *gorm.DB, nameScope string) *Service {
	return &Service{db: db, nameScope: nameScope}
}

func (s *Service) List(ctx context.Context, filters map[string]string, q pagination.Query) ([]models.FieldModel, pagination.Meta, error) {
	query := filter.Apply(s.db.WithContext(ctx).Model(&models.FieldModel{}), &models.FieldModel{}, filters)
	var fields []models.FieldModel
	meta, err := pagination.Paginate(query.Order("collection ASC, field ASC"), q, &fields)
	return fields, meta, err
}

func (s *Service) GetByID(ctx context.Context, id string) (*models.FieldModel, error) {
	return repository.Get[models.FieldModel](ctx, s.db, repository.Criteria{"id": id}, true)
}

func (s *Service) Create(ctx context.Context, dto *CreateFieldDTO) (*models.FieldModel, error) {
	coll, err := repository.Get[models.CollectionModel](ctx, s.db,
		repository.Criteria{"collection": dto.Collection}, false)
	if err != nil {
		return nil, err
	}
	if coll == nil {
		return nil, fmt.Errorf("%w: collection %q", repository.ErrNotFound, dto.Collection)
	}
	if err := s.checkNameUnique(ctx, dto.Collection, dto.Name, ""); err != nil {
		return nil, err
	}

	f := models.FieldModel{
		Collection: dto.Collection,
		Name:       dto.Name,
		Type:       dto.Type,
		Schema:     dto.Schema,
		Interface:  dto.Interface,
		Options:    dto.Options,
	}
	return &f, repository.Create(ctx, s.db, &f)
}

func (s *Service) Update(ctx context.Context, id string, dto *UpdateFieldDTO) (*models.FieldModel, error) {
	f, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.Name != nil && *dto.Name != f.Name {
		if err := s.checkNameUnique(ctx, f.Collection, *dto.Name, f.ID); err != nil {
			return nil, err
		}
		updates["field"] = *dto.Name
	}
	if dto.Type != nil {
		updates["type"] = *dto.Type
	}
	if dto.Schema != nil {
		updates["schema"] = dto.Schema
	}
	if dto.Interface != nil {
		updates["interface"] = dto.Interface
	}
	if dto.Options != nil {
		updates["options"] = dto.Options
	}
	if len(updates) == 0 {
		return f, nil
	}
	if err := repository.Update(ctx, s.db, f, updates); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	f, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return repository.Delete(ctx, s.db, f)
}

// checkNameUnique enforces the configured field-name scope ahead of the
// composite index, so global mode conflicts even across collections.
func (s *Service) checkNameUnique(ctx context.Context, collection, name, excludeID string) error {
	query := s.db.WithContext(ctx).Model(&models.FieldModel{}).Where("field = ?", name)
	if s.nameScope != config.FieldScopeGlobal {
		query = query.Where("collection = ?", collection)
	}
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		if s.nameScope == config.FieldScopeGlobal {
			return fmt.Errorf("%w: field name %q already in use", repository.ErrConflict, name)
		}
		return fmt.Errorf("%w: field %q already defined on collection %q",
			repository.ErrConflict, name, collection)
	}
	return nil
}
