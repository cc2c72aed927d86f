package content

import (
	"context"
	"fmt"
	"time"

	"github.com/coreinspect/core/internal/models"
	"github.com/coreinspect/core/internal/pkg/pagination"
	"github.com/coreinspect/core/internal/repository"
	"github.com/coreinspect/core/internal/repository/filter"
	"gorm.io/gorm"
)

type CreateContentDTO struct {
	Collection string         `json:"collection" binding:"required"`
	Data       models.JSONMap `json:"data"       binding:"required"`
	Status     string         `json:"status"     binding:"omitempty,oneof=draft published archived"`
}

type UpdateContentDTO struct {
	Data   models.JSONMap `json:"data"   binding:"required"`
	Status string         `json:"status" binding:"omitempty,oneof=draft published archived"`
}

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) List(ctx context.Context, filters map[string]string, q pagination.Query) ([]models.ContentModel, pagination.Meta, error) {
	query := filter.Apply(s.db.WithContext(ctx).Model(&models.ContentModel{}), &models.ContentModel{}, filters)
	var items []models.ContentModel
	meta, err := pagination.Paginate(query.Order("created_at DESC"), q, &items)
	return items, meta, err
}

// ListByCollection lists records of one collection, honoring extra filters.
func (s *Service) ListByCollection(ctx context.Context, collection string, filters map[string]string, q pagination.Query) ([]models.ContentModel, pagination.Meta, error) {
	query := s.db.WithContext(ctx).Model(&models.ContentModel{}).Where("collection = ?", collection)
	query = filter.Apply(query, &models.ContentModel{}, filters)
	var items []models.ContentModel
	meta, err := pagination.Paginate(query.Order("created_at DESC"), q, &items)
	return items, meta, err
}

func (s *Service) ListDrafts(ctx context.Context, filters map[string]string, q pagination.Query) ([]models.ContentModel, pagination.Meta, error) {
	query := s.db.WithContext(ctx).Model(&models.ContentModel{}).Where("is_draft = ?", true)
	query = filter.Apply(query, &models.ContentModel{}, filters)
	var items []models.ContentModel
	meta, err := pagination.Paginate(query.Order("created_at DESC"), q, &items)
	return items, meta, err
}

func (s *Service) GetByID(ctx context.Context, id string) (*models.ContentModel, error) {
	return repository.Get[models.ContentModel](ctx, s.db, repository.Criteria{"id": id}, true)
}

// Create inserts a record after checking the target collection exists and,
// for singleton collections, that no record exists yet.
func (s *Service) Create(ctx context.Context, dto *CreateContentDTO, createdBy string) (*models.ContentModel, error) {
	coll, err := repository.Get[models.CollectionModel](ctx, s.db,
		repository.Criteria{"collection": dto.Collection}, false)
	if err != nil {
		return nil, err
	}
	if coll == nil {
		return nil, fmt.Errorf("%w: collection %q", repository.ErrNotFound, dto.Collection)
	}
	var singletonKey *string
	if coll.Singleton {
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.ContentModel{}).
			Where("collection = ?", coll.Name).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, fmt.Errorf("%w: singleton collection %q already has a record",
				repository.ErrConflict, coll.Name)
		}
		// The unique singleton_key column catches what the count cannot: two
		// creates racing past the check. The loser gets ErrConflict from the
		// store instead of a second record.
		singletonKey = &coll.Name
	}

	status := dto.Status
	if status == "" {
		status = models.StatusDraft
	}
	item := models.ContentModel{
		Collection:   dto.Collection,
		Data:         dto.Data,
		Status:       status,
		CreatedBy:    createdBy,
		IsDraft:      status == models.StatusDraft,
		SingletonKey: singletonKey,
	}
	if status == models.StatusPublished {
		now := time.Now()
		item.PublishedAt = &now
	}
	return &item, repository.Create(ctx, s.db, &item)
}

// Update replaces the record's data (and optionally status). The store layer
// bumps version and last_modified.
func (s *Service) Update(ctx context.Context, id string, dto *UpdateContentDTO) (*models.ContentModel, error) {
	item, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"data": dto.Data}
	if dto.Status != "" {
		updates["status"] = dto.Status
		updates["is_draft"] = dto.Status == models.StatusDraft
	}
	if err := repository.Update(ctx, s.db, item, updates); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	item, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return repository.Delete(ctx, s.db, item)
}

// Publish marks the record published and appends a revision snapshot in one
// transaction scope, so the snapshot can never be lost to a crash between the
// two writes.
func (s *Service) Publish(ctx context.Context, id, publishedBy string) (*models.ContentModel, error) {
	item, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	err = repository.WithTx(ctx, s.db, func(tx *gorm.DB) error {
		now := time.Now()
		if err := repository.Update(ctx, tx, item, map[string]interface{}{
			"status":       models.StatusPublished,
			"is_draft":     false,
			"published_at": now,
		}); err != nil {
			return err
		}
		rev := models.RevisionModel{
			Collection: item.Collection,
			ItemID:     item.ID,
			Data:       item.Data,
			Status:     models.StatusPublished,
			CreatedBy:  publishedBy,
		}
		return repository.Create(ctx, tx, &rev)
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// SaveRevision appends an explicit snapshot of the record's current state.
func (s *Service) SaveRevision(ctx context.Context, id, createdBy string) (*models.RevisionModel, error) {
	item, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rev := models.RevisionModel{
		Collection: item.Collection,
		ItemID:     item.ID,
		Data:       item.Data,
		Status:     item.Status,
		CreatedBy:  createdBy,
	}
	return &rev, repository.Create(ctx, s.db, &rev)
}

func (s *Service) ListRevisions(ctx context.Context, id string, q pagination.Query) ([]models.RevisionModel, pagination.Meta, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, pagination.Meta{}, err
	}
	query := s.db.WithContext(ctx).Model(&models.RevisionModel{}).Where("item_id = ?", id)
	var revs []models.RevisionModel
	meta, err := pagination.Paginate(query.Order("created_at DESC"), q, &revs)
	return revs, meta, err
}
