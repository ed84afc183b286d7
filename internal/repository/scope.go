package repository

import (
	"gorm.io/gorm"

	"fets-live/backend/internal/branch"
)

// applyScope adds the branch equality predicate on column; the global
// scope leaves the query untouched.
func applyScope(db *gorm.DB, scope branch.Scope, column string) *gorm.DB {
	if v, ok := scope.Predicate(); ok {
		return db.Where(column+" = ?", v)
	}
	return db
}

// escapeLike escapes LIKE wildcards in user input.
func escapeLike(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '%' || r == '_' || r == '\\' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}
