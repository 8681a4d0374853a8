// Package datatable implements the server side of the DataTables protocol:
// one page of rows plus total and filtered counts, computed by a fixed
// count → filter → sort → page pipeline over an abstract row source.
package datatable

import "strings"

// Request carries the paging fields a DataTables client posts. Draw is
// opaque and echoed back so the client can discard stale responses.
type Request struct {
	Draw       int
	Start      int
	Length     int
	Search     string
	SortColumn string
	SortDir    string
}

func (r Request) Descending() bool {
	return strings.EqualFold(r.SortDir, "DESC")
}

// Response is the envelope the DataTables client consumes.
type Response[T any] struct {
	Draw            int   `json:"draw"`
	Data            []T   `json:"data"`
	RecordsTotal    int64 `json:"recordsTotal"`
	RecordsFiltered int64 `json:"recordsFiltered"`
}

// Source is the minimal capability a storage backend exposes to the
// pipeline. Filter and Order return derived sources and leave the receiver
// untouched, so one Source value can serve concurrent requests.
type Source[T any] interface {
	Count() (int64, error)
	Filter(term string) Source[T]
	Order(column string, descending bool) Source[T]
	Fetch(offset, limit int) ([]T, error)
}

// Paginate runs the pipeline. The page window is clamped to
// min(length, filtered-start) and never goes negative, so a search that
// matches nothing yields an empty page with correct counts rather than an
// error. Any source fault aborts with no partial page.
func Paginate[T any](src Source[T], req Request) (*Response[T], error) {
	total, err := src.Count()
	if err != nil {
		return nil, err
	}

	filtered := src
	if req.Search != "" {
		filtered = src.Filter(req.Search)
	}
	matches, err := filtered.Count()
	if err != nil {
		return nil, err
	}

	ordered := filtered.Order(req.SortColumn, req.Descending())

	limit := req.Length
	if remaining := matches - int64(req.Start); int64(limit) > remaining {
		limit = int(remaining)
	}
	if limit < 0 {
		limit = 0
	}

	rows := []T{}
	if limit > 0 {
		rows, err = ordered.Fetch(req.Start, limit)
		if err != nil {
			return nil, err
		}
	}

	return &Response[T]{
		Draw:            req.Draw,
		Data:            rows,
		RecordsTotal:    total,
		RecordsFiltered: matches,
	}, nil
}
