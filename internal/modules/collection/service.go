package collection

import (
	"context"
	"fmt"

	"github.com/coreinspect/core/internal/models"
	"github.com/coreinspect/core/internal/pkg/pagination"
	"github.com/coreinspect/core/internal/repository"
	"github.com/coreinspect/core/internal/repository/filter"
	"gorm.io/gorm"
)

type CreateCollectionDTO struct {
	Name         string         `json:"collection" binding:"required"`
	Hidden       bool           `json:"hidden"`
	Singleton    bool           `json:"singleton"`
	Icon         models.JSONMap `json:"icon"`
	Note         models.JSONMap `json:"note"`
	Translations models.JSONMap `json:"translations"`
}

type UpdateCollectionDTO struct {
	Hidden       *bool          `json:"hidden"`
	Singleton    *bool          `json:"singleton"`
	Icon         models.JSONMap `json:"icon"`
	Note         models.JSONMap `json:"note"`
	Translations models.JSONMap `json:"translations"`
}

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) List(ctx context.Context, filters map[string]string, q pagination.Query) ([]models.CollectionModel, pagination.Meta, error) {
	query := filter.Apply(s.db.WithContext(ctx).Model(&models.CollectionModel{}), &models.CollectionModel{}, filters)
	var colls []models.CollectionModel
	meta, err := pagination.Paginate(query.Order("collection ASC"), q, &colls)
	return colls, meta, err
}

func (s *Service) GetByName(ctx context.Context, name string) (*models.CollectionModel, error) {
	return repository.Get[models.CollectionModel](ctx, s.db, repository.Criteria{"collection": name}, true)
}

func (s *Service) Create(ctx context.Context, dto *CreateCollectionDTO) (*models.CollectionModel, error) {
	coll := models.CollectionModel{
		Name:         dto.Name,
		Hidden:       dto.Hidden,
		Singleton:    dto.Singleton,
		Icon:         dto.Icon,
		Note:         dto.Note,
		Translations: dto.Translations,
	}
	return &coll, repository.Create(ctx, s.db, &coll)
}

func (s *Service) Update(ctx context.Context, name string, dto *UpdateCollectionDTO) (*models.CollectionModel, error) {
	coll, err := s.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.Hidden != nil {
		updates["hidden"] = *dto.Hidden
	}
	if dto.Singleton != nil {
		updates["singleton"] = *dto.Singleton
	}
	if dto.Icon != nil {
		updates["icon"] = dto.Icon
	}
	if dto.Note != nil {
		updates["note"] = dto.Note
	}
	if dto.Translations != nil {
		updates["translations"] = dto.Translations
	}
	if len(updates) == 0 {
		return coll, nil
	}
	if err := repository.Update(ctx, s.db, coll, updates); err != nil {
		return nil, err
	}
	return s.GetByName(ctx, name)
}

// Delete removes the collection and its field definitions. Collections that
// still hold content are refused rather than cascaded.
func (s *Service) Delete(ctx context.Context, name string) error {
	coll, err := s.GetByName(ctx, name)
	if err != nil {
		return err
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.ContentModel{}).
		Where("collection = ?", name).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: collection %q still holds %d content record(s)",
			repository.ErrConflict, name, count)
	}

	return repository.WithTx(ctx, s.db, func(tx *gorm.DB) error {
		if err := tx.Where("collection = ?", name).Delete(&models.FieldModel{}).Error; err != nil {
			return err
		}
		return repository.Delete(ctx, tx, coll)
	})
}
