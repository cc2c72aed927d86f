// Package filter translates flat, operator-suffixed query parameters into a
// conjunction of column predicates, Django-style: created_at__gte,
// username__icontains, and so on.
package filter

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// apply functions receive the raw column name and the raw parameter value.
type applyFunc func(db *gorm.DB, column, value string) *gorm.DB

// The operator suffix vocabulary. String matches are case-insensitive.
var operators = map[string]applyFunc{
	"__eq":  func(db *gorm.DB, col, val string) *gorm.DB { return db.Where(col+" = ?", val) },
	"__lt":  func(db *gorm.DB, col, val string) *gorm.DB { return db.Where(col+" < ?", val) },
	"__lte": func(db *gorm.DB, col, val string) *gorm.DB { return db.Where(col+" <= ?", val) },
	"__gt":  func(db *gorm.DB, col, val string) *gorm.DB { return db.Where(col+" > ?", val) },
	"__gte": func(db *gorm.DB, col, val string) *gorm.DB { return db.Where(col+" >= ?", val) },
	"__icontains": func(db *gorm.DB, col, val string) *gorm.DB {
		return db.Where("LOWER("+col+") LIKE ?", "%"+strings.ToLower(val)+"%")
	},
	"__startswith": func(db *gorm.DB, col, val string) *gorm.DB {
		return db.Where("LOWER("+col+") LIKE ?", strings.ToLower(val)+"%")
	},
	"__endswith": func(db *gorm.DB, col, val string) *gorm.DB {
		return db.Where("LOWER("+col+") LIKE ?", "%"+strings.ToLower(val))
	},
	"__not_startswith": func(db *gorm.DB, col, val string) *gorm.DB {
		return db.Where("LOWER("+col+") NOT LIKE ?", strings.ToLower(val)+"%")
	},
	"__not_endswith": func(db *gorm.DB, col, val string) *gorm.DB {
		return db.Where("LOWER("+col+") NOT LIKE ?", "%"+strings.ToLower(val))
	},
}

// cacheStore backs gorm's schema parsing so each model is parsed once.
var cacheStore sync.Map

// Apply ANDs one predicate per recognized entry onto db. A key is split on its
// last "__"; no suffix means equality. Entries with an empty value, an
// unrecognized suffix, or a base name that is not a column of model are
// silently dropped — a deliberate permissive policy (typos select nothing
// extra rather than failing), kept for wire compatibility.
func Apply(db *gorm.DB, model interface{}, params map[string]string) *gorm.DB {
	columns := columnsOf(db, model)

	for key, value := range params {
		if value == "" {
			continue
		}
		column, suffix := splitOperator(key)
		op, known := operators[suffix]
		if !known {
			continue
		}
		if _, ok := columns[column]; !ok {
			continue
		}
		db = op(db, column, value)
	}
	return db
}

// FromQuery collects single-valued query parameters as filter input,
// excluding the pagination keys.
func FromQuery(c *gin.Context) map[string]string {
	params := map[string]string{}
	for key, values := range c.Request.URL.Query() {
		if key == "page" || key == "limit" {
			continue
		}
		if len(values) > 0 {
			params[key] = values[0]
		}
	}
	return params
}

func splitOperator(key string) (column, suffix string) {
	idx := strings.LastIndex(key, "__")
	if idx < 0 {
		return key, "__eq"
	}
	return key[:idx], key[idx:]
}

func columnsOf(db *gorm.DB, model interface{}) map[string]struct{} {
	s, err := schema.Parse(model, &cacheStore, db.NamingStrategy)
	if err != nil {
		return nil
	}
	columns := make(map[string]struct{}, len(s.FieldsByDBName))
	for name := range s.FieldsByDBName {
		columns[name] = struct{}{}
	}
	return columns
}
