package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/coreinspect/core/internal/models"
	"github.com/coreinspect/core/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.CollectionModel{}, &models.FieldModel{}))
	return db
}

func TestGetSingleRow(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()

	coll := models.CollectionModel{Name: "posts"}
	require.NoError(t, repository.Create(ctx, db, &coll))
	require.NotEmpty(t, coll.ID)

	got, err := repository.Get[models.CollectionModel](ctx, db, repository.Criteria{"collection": "posts"}, true)
	require.NoError(t, err)
	assert.Equal(t, coll.ID, got.ID)
}

func TestGetMissing(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()

	got, err := repository.Get[models.CollectionModel](ctx, db, repository.Criteria{"collection": "nope"}, false)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = repository.Get[models.CollectionModel](ctx, db, repository.Criteria{"collection": "nope"}, true)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGetMultipleRows(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()

	for _, name := range []string{"title", "body", "slug"} {
		f := models.FieldModel{Collection: "posts", Name: name, Type: "string"}
		require.NoError(t, repository.Create(ctx, db, &f))
	}

	_, err := repository.Get[models.FieldModel](ctx, db, repository.Criteria{"collection": "posts"}, false)
	assert.ErrorIs(t, err, repository.ErrMultipleResults)
}

func TestCreateDuplicateIsConflict(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()

	first := models.CollectionModel{Name: "posts"}
	require.NoError(t, repository.Create(ctx, db, &first))

	dup := models.CollectionModel{Name: "posts"}
	err := repository.Create(ctx, db, &dup)
	assert.ErrorIs(t, err, repository.ErrConflict)
}

func TestGetOrCreate(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()

	defaults := models.CollectionModel{Name: "pages", Singleton: true}
	created, err := repository.GetOrCreate(ctx, db, repository.Criteria{"collection": "pages"}, &defaults)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	again, err := repository.GetOrCreate(ctx, db, repository.Criteria{"collection": "pages"},
		&models.CollectionModel{Name: "pages"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)

	var count int64
	require.NoError(t, db.Model(&models.CollectionModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestUpdatePartial(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()

	coll := models.CollectionModel{Name: "posts"}
	require.NoError(t, repository.Create(ctx, db, &coll))

	require.NoError(t, repository.Update(ctx, db, &coll, map[string]interface{}{"hidden": true}))

	got, err := repository.Get[models.CollectionModel](ctx, db, repository.Criteria{"id": coll.ID}, true)
	require.NoError(t, err)
	assert.True(t, got.Hidden)
	assert.Equal(t, "posts", got.Name)
}

func TestDelete(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()

	coll := models.CollectionModel{Name: "posts"}
	require.NoError(t, repository.Create(ctx, db, &coll))
	require.NoError(t, repository.Delete(ctx, db, &coll))

	got, err := repository.Get[models.CollectionModel](ctx, db, repository.Criteria{"id": coll.ID}, false)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := repository.WithTx(ctx, db, func(tx *gorm.DB) error {
		coll := models.CollectionModel{Name: "ephemeral"}
		if err := repository.Create(ctx, tx, &coll); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := repository.Get[models.CollectionModel](ctx, db, repository.Criteria{"collection": "ephemeral"}, false)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestWithTxCommits(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()

	err := repository.WithTx(ctx, db, func(tx *gorm.DB) error {
		coll := models.CollectionModel{Name: "durable"}
		return repository.Create(ctx, tx, &coll)
	})
	require.NoError(t, err)

	got, err := repository.Get[models.CollectionModel](ctx, db, repository.Criteria{"collection": "durable"}, true)
	require.NoError(t, err)
	assert.Equal(t, "durable", got.Name)
}
