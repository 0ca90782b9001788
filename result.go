package gopaginate

import (
	"encoding/json"
	"maps"
	"math"

	"github.com/samber/lo"
)

// Result is the outcome of a Paginate call. Nullable fields are nil when
// there is no meaningful value (e.g. every page field when the limit is 0).
//
// Result renders itself through Map and MarshalJSON using the labels it was
// built with, so the JSON keys follow Options.WithCustomLabels.
type Result[T any] struct {
	// Docs documents of the current page. Never nil.
	Docs []T
	// TotalDocs number of documents matching the filter, regardless of limit.
	TotalDocs int64
	// Limit effective limit. Equals TotalDocs with pagination disabled.
	Limit int64
	// Page current 1-based page.
	Page *int64
	// TotalPages number of pages, at least 1 when there is a limit.
	TotalPages *int64
	// PagingCounter 1-based position of the first document of the page in
	// the whole dataset.
	PagingCounter *int64
	PrevPage      *int64
	NextPage      *int64
	HasPrevPage   bool
	HasNextPage   bool
	// Offset echoes the resolved offset when the page was addressed by offset.
	Offset *int64
	// Meta query metadata returned by Source.Find.
	Meta any

	labels Labels
}

func newResult[T any](s settings, count int64, found FindResult[T]) *Result[T] {
	limit := int64(s.limit)
	page := int64(s.currentPage())

	res := &Result[T]{
		Docs:          lo.Ternary(found.Rows != nil, found.Rows, []T{}),
		TotalDocs:     count,
		Limit:         count,
		Page:          lo.ToPtr(page),
		TotalPages:    lo.ToPtr(int64(1)),
		PagingCounter: lo.ToPtr(pagingCounter(page, limit)),
		labels:        s.labels,
	}

	if s.offset != nil {
		res.Offset = lo.ToPtr(int64(*s.offset))
	}

	if s.includeQueryMetadata {
		res.Meta = found.Meta
	}

	if s.pagination {
		res.Limit = limit
		res.TotalPages = totalPages(count, limit)

		if page > 1 {
			res.HasPrevPage = true
			res.PrevPage = lo.ToPtr(page - 1)
		}

		if res.TotalPages != nil && page < *res.TotalPages {
			res.HasNextPage = true
			res.NextPage = lo.ToPtr(page + 1)
		}
	}

	if limit == 0 {
		res.Docs = []T{}
		res.Limit = 0
		res.TotalPages = nil
		res.Page = nil
		res.PagingCounter = nil
		res.PrevPage = nil
		res.NextPage = nil
		res.HasPrevPage = false
		res.HasNextPage = false
	}

	return res
}

// totalPages returns max(1, ceil(count/limit)), or nil without a limit.
func totalPages(count, limit int64) *int64 {
	if limit <= 0 {
		return nil
	}

	pages := count / limit
	if count%limit != 0 {
		pages++
	}

	return lo.ToPtr(max(1, pages))
}

// pagingCounter returns (page-1)*limit+1, saturating at math.MaxInt64.
func pagingCounter(page, limit int64) int64 {
	counter := mulSat(page-1, limit)
	if counter < math.MaxInt64 {
		counter++
	}

	return counter
}

// Labels returns the labels the result renders with.
func (r Result[T]) Labels() Labels {
	if r.labels == nil {
		return DefaultLabels()
	}

	return maps.Clone(r.labels)
}

// Map renders the result as a labeled document:
//
//   - pagination fields are keyed by their labels; a field whose label is
//     empty is left out;
//   - with a non-empty LabelPaginationMetaData, pagination fields are nested
//     under it and docs stay at the top level, otherwise they are spread
//     next to docs;
//   - query metadata, when present, goes under MetaKey.
func (r Result[T]) Map() map[string]any {
	labels := r.Labels()

	pagination := make(map[string]any, 11)
	put := func(label Label, value any) {
		if key, ok := labels.Key(label); ok {
			pagination[key] = value
		}
	}

	put(LabelTotalDocs, r.TotalDocs)
	if r.Offset != nil {
		pagination[OffsetKey] = *r.Offset
	}
	put(LabelLimit, r.Limit)
	put(LabelTotalPages, nullable(r.TotalPages))
	put(LabelPage, nullable(r.Page))
	put(LabelPagingCounter, nullable(r.PagingCounter))
	put(LabelHasPrevPage, r.HasPrevPage)
	put(LabelHasNextPage, r.HasNextPage)
	put(LabelPrevPage, nullable(r.PrevPage))
	put(LabelNextPage, nullable(r.NextPage))

	ret := make(map[string]any, len(pagination)+2)
	if key, ok := labels.Key(LabelDocs); ok {
		ret[key] = r.Docs
	}

	if key, ok := labels.Key(LabelPaginationMetaData); ok {
		ret[key] = pagination
	} else {
		maps.Copy(ret, pagination)
	}

	if r.Meta != nil {
		ret[MetaKey] = r.Meta
	}

	return ret
}

// MarshalJSON - implements json.Marshaler.
func (r Result[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Map())
}

func nullable(v *int64) any {
	if v == nil {
		return nil
	}

	return *v
}

var _ json.Marshaler = Result[any]{}
