package models

// CollectionModel stores metadata about a user-definable content type.
// A singleton collection admits at most one content record.
type CollectionModel struct {
	Base
	Name         string  `json:"collection"   gorm:"column:collection;uniqueIndex;not null"`
	Hidden       bool    `json:"hidden"       gorm:"index;not null;default:false"`
	Singleton    bool    `json:"singleton"    gorm:"not null;default:false"`
	Icon         JSONMap `json:"icon"`
	Note         JSONMap `json:"note"`
	Translations JSONMap `json:"translations"`
}

func (CollectionModel) TableName() string { return "collections" }

// FieldModel defines a typed, UI-annotated column belonging to a collection.
// (collection, field) is always unique; whether the field name must also be
// globally unique is a configuration choice enforced by the field service.
type FieldModel struct {
	Base
	Collection string  `json:"collection" gorm:"index;not null;uniqueIndex:idx_fields_collection_field,priority:1"`
	Name       string  `json:"field"      gorm:"column:field;index;not null;uniqueIndex:idx_fields_collection_field,priority:2"`
	Type       string  `json:"type"       gorm:"index;not null"`
	Schema     JSONMap `json:"schema"`
	Interface  JSONMap `json:"interface"`
	Options    JSONMap `json:"options"`
}

func (FieldModel) TableName() string { return "fields" }

// Relation types.
const (
	RelationManyToOne  = "m2o"
	RelationOneToMany  = "o2m"
	RelationManyToMany = "m2m"
)

// RelationModel declares an association between two collections via two fields.
// Junction names the join table and is required iff type is m2m.
type RelationModel struct {
	Base
	ManyCollection string  `json:"many_collection" gorm:"index;not null"`
	OneCollection  string  `json:"one_collection"  gorm:"index;not null"`
	FieldMany      string  `json:"field_many"      gorm:"index;not null"`
	FieldOne       string  `json:"field_one"       gorm:"index;not null"`
	Type           string  `json:"type"            gorm:"not null"`
	Junction       *string `json:"junction"`
}

func (RelationModel) TableName() string { return "relations" }
