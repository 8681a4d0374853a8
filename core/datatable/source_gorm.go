package datatable

import (
	"strings"

	"gorm.io/gorm"
)

// GormConfig fixes the searchable and sortable surface of one list view.
// Expressions are SQL column references (qualified when the query joins),
// never user input: the requested sort column is only ever used as a map
// key, so an unknown or hostile value degrades to the default sort.
type GormConfig struct {
	Searchable  []string
	Sortable    map[string]string
	DefaultSort string
}

// GormSource adapts a prepared gorm query (projection, joins, session) to
// the Source capability.
type GormSource[T any] struct {
	tx  *gorm.DB
	cfg GormConfig
}

func NewGormSource[T any](tx *gorm.DB, cfg GormConfig) *GormSource[T] {
	return &GormSource[T]{tx: tx, cfg: cfg}
}

func (s *GormSource[T]) Count() (int64, error) {
	var n int64
	if err := s.tx.Session(&gorm.Session{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (s *GormSource[T]) Filter(term string) Source[T] {
	like := "%" + strings.ToUpper(term) + "%"

	var clauses []string
	args := make([]interface{}, 0, len(s.cfg.Searchable))
	for _, expr := range s.cfg.Searchable {
		clauses = append(clauses, "UPPER("+expr+") LIKE ?")
		args = append(args, like)
	}

	tx := s.tx.Session(&gorm.Session{}).Where(strings.Join(clauses, " OR "), args...)
	return &GormSource[T]{tx: tx, cfg: s.cfg}
}

func (s *GormSource[T]) Order(column string, descending bool) Source[T] {
	expr, ok := s.cfg.Sortable[column]
	if !ok {
		// Unrecognized column falls back to the default sort, ascending.
		expr = s.cfg.DefaultSort
		descending = false
	}
	if descending {
		expr += " DESC"
	}
	tx := s.tx.Session(&gorm.Session{}).Order(expr)
	return &GormSource[T]{tx: tx, cfg: s.cfg}
}

func (s *GormSource[T]) Fetch(offset, limit int) ([]T, error) {
	var rows []T
	err := s.tx.Session(&gorm.Session{}).Offset(offset).Limit(limit).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
