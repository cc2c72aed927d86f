package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Content lifecycle statuses.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// ContentModel is a data record belonging to a collection, with a
// draft/published lifecycle and an optimistic-concurrency version counter.
type ContentModel struct {
	Base
	Collection   string     `json:"collection"    gorm:"index:idx_content_collection_status,priority:1;not null"`
	Data         JSONMap    `json:"data"          gorm:"not null"`
	Status       string     `json:"status"        gorm:"index:idx_content_collection_status,priority:2;not null;default:draft"`
	CreatedBy    string     `json:"created_by"    gorm:"type:char(36);index;not null"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
	PublishedAt  *time.Time `json:"published_at"`
	// No store default: a `default` tag would make gorm omit the column on
	// insert whenever the value is false, silently re-marking published rows
	// as drafts. Create paths always set it explicitly.
	IsDraft      bool       `json:"is_draft"      gorm:"index;not null"`
	Version      int        `json:"version"       gorm:"not null;default:0"`
	LastModified *time.Time `json:"last_modified"`
	// Set to the collection name for rows of singleton collections, NULL
	// otherwise; its unique index is the store-level backstop for the
	// one-record constraint under concurrent creates.
	SingletonKey *string `json:"-" gorm:"size:191;uniqueIndex"`
}

func (ContentModel) TableName() string { return "contents" }

// BeforeUpdate bumps the version counter and modification timestamps on every
// mutating update, so callers and the repository stay attribute-agnostic. The
// increment runs store-side; concurrent updaters each get their own bump.
func (m *ContentModel) BeforeUpdate(tx *gorm.DB) error {
	now := time.Now()
	tx.Statement.SetColumn("version", gorm.Expr("version + 1"))
	tx.Statement.SetColumn("last_modified", now)
	tx.Statement.SetColumn("updated_at", now)
	return nil
}

// RevisionModel is an immutable historical snapshot of a content record.
type RevisionModel struct {
	Base
	Collection string    `json:"collection" gorm:"index;not null"`
	ItemID     string    `json:"item_id"    gorm:"type:char(36);index;not null"`
	Data       JSONMap   `json:"data"       gorm:"not null"`
	Status     string    `json:"status"     gorm:"index;not null;default:draft"`
	CreatedBy  string    `json:"created_by" gorm:"type:char(36);not null"`
	CreatedAt  time.Time `json:"created_at"`
}

func (RevisionModel) TableName() string { return "revisions" }

// BeforeUpdate rejects any mutation; revisions are append-only.
func (RevisionModel) BeforeUpdate(tx *gorm.DB) error {
	return errors.New("revisions are immutable")
}
