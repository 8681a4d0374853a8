package datatable

import (
	"sort"
	"strings"
)

// MemoryConfig mirrors GormConfig with field accessors instead of SQL
// expressions, so the same pipeline can run against a plain slice. Used by
// the tests and available as a backend for data that never reaches the
// database.
type MemoryConfig[T any] struct {
	Searchable  []func(T) string
	Sortable    map[string]func(T) string
	DefaultSort string
}

type MemorySource[T any] struct {
	rows []T
	cfg  MemoryConfig[T]
}

func NewMemorySource[T any](rows []T, cfg MemoryConfig[T]) *MemorySource[T] {
	return &MemorySource[T]{rows: rows, cfg: cfg}
}

func (s *MemorySource[T]) Count() (int64, error) {
	return int64(len(s.rows)), nil
}

func (s *MemorySource[T]) Filter(term string) Source[T] {
	needle := strings.ToUpper(term)

	matched := make([]T, 0, len(s.rows))
	for _, row := range s.rows {
		for _, field := range s.cfg.Searchable {
			if strings.Contains(strings.ToUpper(field(row)), needle) {
				matched = append(matched, row)
				break
			}
		}
	}
	return &MemorySource[T]{rows: matched, cfg: s.cfg}
}

func (s *MemorySource[T]) Order(column string, descending bool) Source[T] {
	key, ok := s.cfg.Sortable[column]
	if !ok {
		key = s.cfg.Sortable[s.cfg.DefaultSort]
		descending = false
	}

	ordered := make([]T, len(s.rows))
	copy(ordered, s.rows)
	if key != nil {
		sort.SliceStable(ordered, func(i, j int) bool {
			if descending {
				return key(ordered[i]) > key(ordered[j])
			}
			return key(ordered[i]) < key(ordered[j])
		})
	}
	return &MemorySource[T]{rows: ordered, cfg: s.cfg}
}

func (s *MemorySource[T]) Fetch(offset, limit int) ([]T, error) {
	if offset >= len(s.rows) {
		return []T{}, nil
	}
	end := offset + limit
	if end > len(s.rows) {
		end = len(s.rows)
	}
	page := make([]T, end-offset)
	copy(page, s.rows[offset:end])
	return page, nil
}
