package models

// TaxonomyModel is a term in a vocabulary. Terms with a parent form a forest
// per vocabulary.
type TaxonomyModel struct {
	Base
	Vocabulary string  `json:"vocabulary" gorm:"index;not null"`
	Term       string  `json:"term"       gorm:"index;not null"`
	ParentID   *string `json:"parent_id"  gorm:"type:char(36);index"`
}

func (TaxonomyModel) TableName() string { return "taxonomies" }

// TranslationModel is a sparse per-locale override for one field of one item.
type TranslationModel struct {
	Base
	Collection string `json:"collection" gorm:"uniqueIndex:idx_translations_key,priority:1;not null"`
	ItemID     string `json:"item_id"    gorm:"type:char(36);uniqueIndex:idx_translations_key,priority:2;not null"`
	Field      string `json:"field"      gorm:"uniqueIndex:idx_translations_key,priority:3;not null"`
	Language   string `json:"language"   gorm:"size:20;uniqueIndex:idx_translations_key,priority:4;not null"`
	Value      string `json:"value"      gorm:"type:text"`
}

func (TranslationModel) TableName() string { return "translations" }

// NavigationModel is a menu node. Nodes without a parent are menus; nodes with
// a parent are items within them.
type NavigationModel struct {
	Base
	Label    string  `json:"label"     gorm:"not null"`
	Path     string  `json:"path"      gorm:"not null"`
	ParentID *string `json:"parent_id" gorm:"type:char(36);index"`
	Order    int     `json:"order"     gorm:"column:order;not null;default:0"`
	// No store default; a `default:true` tag would drop visible=false on
	// insert. The menu service sets it explicitly.
	Visible bool `json:"visible" gorm:"not null"`
}

func (NavigationModel) TableName() string { return "navigation" }
