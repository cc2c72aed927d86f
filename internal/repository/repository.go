// Package repository provides type-parametric persistence operations shared by
// every entity kind, so concrete modules need not restate query logic.
package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// Criteria is an exact-match attribute conjunction used to locate rows.
// Keys are column names.
type Criteria map[string]interface{}

// Get looks up exactly one row matching the criteria. More than one match is
// ErrMultipleResults. Zero matches is ErrNotFound when failOnMissing is set,
// otherwise (nil, nil).
func Get[T any](ctx context.Context, db *gorm.DB, criteria Criteria, failOnMissing bool) (*T, error) {
	var rows []T
	if err := db.WithContext(ctx).Where(map[string]interface{}(criteria)).Limit(2).Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	switch len(rows) {
	case 0:
		if failOnMissing {
			return nil, ErrNotFound
		}
		return nil, nil
	case 1:
		return &rows[0], nil
	default:
		return nil, fmt.Errorf("%w for criteria %v", ErrMultipleResults, criteria)
	}
}

// Create persists a new row. The entity is updated in place with its generated
// identifier and defaulted columns. Duplicate keys surface as ErrConflict.
func Create[T any](ctx context.Context, db *gorm.DB, entity *T) error {
	if err := db.WithContext(ctx).Create(entity).Error; err != nil {
		return translate(err)
	}
	return nil
}

// GetOrCreate returns the row matching the criteria, creating it from defaults
// when absent. The lookup and the create are NOT one transaction: two racing
// callers can both observe "absent", and the loser of the create race gets
// ErrConflict and should re-run the Get.
func GetOrCreate[T any](ctx context.Context, db *gorm.DB, criteria Criteria, defaults *T) (*T, error) {
	existing, err := Get[T](ctx, db, criteria, false)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	if err := Create(ctx, db, defaults); err != nil {
		return nil, err
	}
	return defaults, nil
}

// Update persists only the supplied attributes against the row identified by
// the entity's primary key. Keys are column names.
func Update[T any](ctx context.Context, db *gorm.DB, entity *T, attrs map[string]interface{}) error {
	if err := db.WithContext(ctx).Model(entity).Updates(attrs).Error; err != nil {
		return translate(err)
	}
	return nil
}

// Delete removes the row by primary key. Hard delete; cascade policy belongs
// to the relational constraints, not the repository.
func Delete[T any](ctx context.Context, db *gorm.DB, entity *T) error {
	if err := db.WithContext(ctx).Delete(entity).Error; err != nil {
		return translate(err)
	}
	return nil
}

// WithTx runs fn inside one transaction scope, committing on success and
// rolling back on error or panic. Multi-step flows that must be atomic
// (publish-then-revision) opt in through this.
func WithTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	err := db.WithContext(ctx).Transaction(fn)
	if err != nil {
		return translate(err)
	}
	return nil
}

// translate maps store-level failures onto the repository error taxonomy.
// Only uniqueness violations and connectivity failures are translated.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysql.ErrInvalidConn) {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return err
}
