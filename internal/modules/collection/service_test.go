package collection

import (
	"context"
	"testing"

	"github.com/coreinspect/core/internal/models"
	"github.com/coreinspect/core/internal/pkg/pagination"
	"github.com/coreinspect/core/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.CollectionModel{}, &models.FieldModel{}, &models.ContentModel{}))
	return NewService(db)
}

func TestCreateAndGet(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &CreateCollectionDTO{
		Name: "posts",
		Icon: models.JSONMap{"name": "article"},
	})
	require.NoError(t, err)

	got, err := svc.GetByName(ctx, "posts")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "article", got.Icon["name"])
}

func TestCreateDuplicateName(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &CreateCollectionDTO{Name: "posts"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &CreateCollectionDTO{Name: "posts"})
	assert.ErrorIs(t, err, repository.ErrConflict)
}

func TestUpdatePartial(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &CreateCollectionDTO{Name: "posts"})
	require.NoError(t, err)

	hidden := true
	got, err := svc.Update(ctx, "posts", &UpdateCollectionDTO{Hidden: &hidden})
	require.NoError(t, err)
	assert.True(t, got.Hidden)
	assert.False(t, got.Singleton)
}

func TestUpdateJSONColumns(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &CreateCollectionDTO{Name: "posts"})
	require.NoError(t, err)

	got, err := svc.Update(ctx, "posts", &UpdateCollectionDTO{
		Icon: models.JSONMap{"name": "article", "color": "blue"},
		Note: models.JSONMap{"en": "Blog posts"},
	})
	require.NoError(t, err)
	assert.Equal(t, "article", got.Icon["name"])
	assert.Equal(t, "Blog posts", got.Note["en"])

	// And the values survive a fresh read.
	stored, err := svc.GetByName(ctx, "posts")
	require.NoError(t, err)
	assert.Equal(t, "blue", stored.Icon["color"])
}

func TestDeleteCascadesFields(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &CreateCollectionDTO{Name: "posts"})
	require.NoError(t, err)
	f := models.FieldModel{Collection: "posts", Name: "title", Type: "string"}
	require.NoError(t, svc.db.Create(&f).Error)

	require.NoError(t, svc.Delete(ctx, "posts"))

	var fields int64
	require.NoError(t, svc.db.Model(&models.FieldModel{}).Where("collection = ?", "posts").Count(&fields).Error)
	assert.EqualValues(t, 0, fields)

	_, err = svc.GetByName(ctx, "posts")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeleteRefusedWhileContentExists(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &CreateCollectionDTO{Name: "posts"})
	require.NoError(t, err)
	item := models.ContentModel{
		Collection: "posts",
		Data:       models.JSONMap{"title": "hi"},
		Status:     models.StatusDraft,
		CreatedBy:  "00000000-0000-0000-0000-000000000001",
		IsDraft:    true,
	}
	require.NoError(t, svc.db.Create(&item).Error)

	err = svc.Delete(ctx, "posts")
	assert.ErrorIs(t, err, repository.ErrConflict)

	// Still present.
	_, err = svc.GetByName(ctx, "posts")
	assert.NoError(t, err)
}

func TestListOrdersByName(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, name := range []string{"zebras", "articles", "menus"} {
		_, err := svc.Create(ctx, &CreateCollectionDTO{Name: name})
		require.NoError(t, err)
	}

	colls, meta, err := svc.List(ctx, nil, pagination.Query{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 3, meta.Total)
	require.Len(t, colls, 3)
	assert.Equal(t, "articles", colls[0].Name)
	assert.Equal(t, "zebras", colls[2].Name)
}
