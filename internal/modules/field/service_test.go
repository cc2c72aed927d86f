package field

import (
	"context"
	"testing"

	"github.com/coreinspect/core/internal/config"
	"github.com/coreinspect/core/internal/models"
	"github.com/coreinspect/core/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestService(t *testing.T, scope string) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.CollectionModel{}, &models.FieldModel{}))

	for _, name := range []string{"posts", "pages"} {
		coll := models.CollectionModel{Name: name}
		require.NoError(t, db.Create(&coll).Error)
	}
	return NewService(db, scope)
}

func TestCreateRequiresCollection(t *testing.T) {
	svc := newTestService(t, config.FieldScopeCollection)
	_, err := svc.Create(context.Background(),
		&CreateFieldDTO{Collection: "ghosts", Name: "title", Type: "string"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCollectionScopeAllowsReuseAcrossCollections(t *testing.T) {
	svc := newTestService(t, config.FieldScopeCollection)
	ctx := context.Background()

	_, err := svc.Create(ctx, &CreateFieldDTO{Collection: "posts", Name: "title", Type: "string"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &CreateFieldDTO{Collection: "pages", Name: "title", Type: "string"})
	assert.NoError(t, err)

	_, err = svc.Create(ctx, &CreateFieldDTO{Collection: "posts", Name: "title", Type: "text"})
	assert.ErrorIs(t, err, repository.ErrConflict)
}

func TestGlobalScopeRejectsCrossCollectionReuse(t *testing.T) {
	svc := newTestService(t, config.FieldScopeGlobal)
	ctx := context.Background()

	_, err := svc.Create(ctx, &CreateFieldDTO{Collection: "posts", Name: "title", Type: "string"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &CreateFieldDTO{Collection: "pages", Name: "title", Type: "string"})
	assert.ErrorIs(t, err, repository.ErrConflict)
}

func TestUpdateRenameCollision(t *testing.T) {
	svc := newTestService(t, config.FieldScopeCollection)
	ctx := context.Background()

	_, err := svc.Create(ctx, &CreateFieldDTO{Collection: "posts", Name: "title", Type: "string"})
	require.NoError(t, err)
	body, err := svc.Create(ctx, &CreateFieldDTO{Collection: "posts", Name: "body", Type: "text"})
	require.NoError(t, err)

	taken := "title"
	_, err = svc.Update(ctx, body.ID, &UpdateFieldDTO{Name: &taken})
	assert.ErrorIs(t, err, repository.ErrConflict)

	free := "content"
	renamed, err := svc.Update(ctx, body.ID, &UpdateFieldDTO{Name: &free})
	require.NoError(t, err)
	assert.Equal(t, "content", renamed.Name)
}

func TestUpdateSameNameIsNoop(t *testing.T) {
	svc := newTestService(t, config.FieldScopeCollection)
	ctx := context.Background()

	f, err := svc.Create(ctx, &CreateFieldDTO{Collection: "posts", Name: "title", Type: "string"})
	require.NoError(t, err)

	same := "title"
	got, err := svc.Update(ctx, f.ID, &UpdateFieldDTO{Name: &same})
	require.NoError(t, err)
	assert.Equal(t, f.ID, got.ID)
}

func TestUpdateJSONColumns(t *testing.T) {
	svc := newTestService(t, config.FieldScopeCollection)
	ctx := context.Background()

	f, err := svc.Create(ctx, &CreateFieldDTO{Collection: "posts", Name: "title", Type: "string"})
	require.NoError(t, err)

	got, err := svc.Update(ctx, f.ID, &UpdateFieldDTO{
		Schema:  models.JSONMap{"max_length": float64(255)},
		Options: models.JSONMap{"placeholder": "Enter a title"},
	})
	require.NoError(t, err)
	assert.Equal(t, float64(255), got.Schema["max_length"])

	stored, err := svc.GetByID(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, "Enter a title", stored.Options["placeholder"])
}

func TestDelete(t *testing.T) {
	svc := newTestService(t, config.FieldScopeCollection)
	ctx := context.Background()

	f, err := svc.Create(ctx, &CreateFieldDTO{Collection: "posts", Name: "title", Type: "string"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, f.ID))
	_, err = svc.GetByID(ctx, f.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
