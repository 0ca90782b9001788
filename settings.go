package gopaginate

import (
	"math"
	"slices"

	"github.com/samber/lo"
)

// settings is the immutable, fully resolved configuration of one Paginate
// call: library defaults, paginator defaults and call options merged, skip
// and page resolved.
type settings struct {
	limit                int
	pagination           bool
	includeQueryMetadata bool
	labels               Labels
	query                FindOptions

	skip int
	// page is the resolved page on the page path. On the offset path it is
	// derived from offset and limit, see currentPage.
	page int
	// offset is non-nil on the offset path. The default path is an offset
	// path with offset 0.
	offset *int
}

func resolveSettings(layers ...*Options) settings {
	merged := mergeOptions(layers...)

	s := settings{
		limit:                DefaultLimit,
		pagination:           lo.FromPtrOr(merged.pagination, true),
		includeQueryMetadata: lo.FromPtrOr(merged.includeQueryMetadata, true),
		labels:               DefaultLabels().Merge(merged.customLabels),
		query: FindOptions{
			Sort:            merged.sort,
			Select:          merged.selectColumns,
			Populate:        merged.populate,
			Consistency:     merged.consistency,
			Lean:            merged.lean,
			NoCollection:    merged.noCollection,
			PopulateMaxDeep: merged.populateMaxDeep,
		},
	}

	if merged.limit != nil {
		s.limit = NormalizeLimit(*merged.limit)
	}

	switch {
	case merged.offset != nil:
		s.offset = lo.ToPtr(NormalizeOffset(*merged.offset))
		s.skip = *s.offset
	case merged.page != nil:
		s.page = NormalizePage(*merged.page)
		s.skip = int(min(mulSat(int64(s.page-1), int64(s.limit)), math.MaxInt))
	default:
		s.offset = lo.ToPtr(0)
		s.page = DefaultPage
	}

	return s
}

// currentPage returns the 1-based page. On the offset path it is
// ceil((offset+1)/limit), which is meaningless without a limit. The result
// saturates at math.MaxInt.
func (s settings) currentPage() int {
	if s.offset != nil && s.limit > 0 {
		return min(*s.offset/s.limit, math.MaxInt-1) + 1
	}

	return s.page
}

// findOptions returns the sanitized options for Source.Find. Skip and limit
// are attached only with pagination enabled.
func (s settings) findOptions() FindOptions {
	ret := s.query
	ret.Sort = slices.Clone(s.query.Sort)
	ret.Select = slices.Clone(s.query.Select)
	ret.Populate = slices.Clone(s.query.Populate)

	if s.pagination {
		ret.Skip = lo.ToPtr(s.skip)
		ret.Limit = lo.ToPtr(s.limit)
	}

	return ret
}
