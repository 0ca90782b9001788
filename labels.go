package gopaginate

import "github.com/samber/lo"

// Label is a canonical field name of the pagination result.
type Label string

const (
	LabelDocs          Label = "docs"
	LabelTotalDocs     Label = "totalDocs"
	LabelLimit         Label = "limit"
	LabelPage          Label = "page"
	LabelTotalPages    Label = "totalPages"
	LabelNextPage      Label = "nextPage"
	LabelPrevPage      Label = "prevPage"
	LabelPagingCounter Label = "pagingCounter"
	LabelHasPrevPage   Label = "hasPrevPage"
	LabelHasNextPage   Label = "hasNextPage"

	// LabelPaginationMetaData names the key pagination fields are nested
	// under. By default it is empty and fields are spread next to docs.
	LabelPaginationMetaData Label = "paginationMetaData"
)

const (
	// OffsetKey is the fixed output key echoing a resolved offset.
	OffsetKey = "offset"
	// MetaKey is the fixed output key carrying query metadata of the source.
	MetaKey = "meta"
)

// Labels maps canonical labels to output keys. An empty output key drops the
// field from the rendered result.
type Labels map[Label]string

// DefaultLabels returns a fresh copy of the canonical labels.
func DefaultLabels() Labels {
	return Labels{
		LabelDocs:               string(LabelDocs),
		LabelTotalDocs:          string(LabelTotalDocs),
		LabelLimit:              string(LabelLimit),
		LabelPage:               string(LabelPage),
		LabelTotalPages:         string(LabelTotalPages),
		LabelNextPage:           string(LabelNextPage),
		LabelPrevPage:           string(LabelPrevPage),
		LabelPagingCounter:      string(LabelPagingCounter),
		LabelHasPrevPage:        string(LabelHasPrevPage),
		LabelHasNextPage:        string(LabelHasNextPage),
		LabelPaginationMetaData: "",
	}
}

// Merge returns a new Labels with overrides applied on top of l, key by key.
// Neither input is modified.
func (l Labels) Merge(overrides ...Labels) Labels {
	return lo.Assign(append([]Labels{l}, overrides...)...)
}

// Key returns the output key for label. The second return value is false when
// the field must be dropped.
func (l Labels) Key(label Label) (string, bool) {
	key := l[label]

	return key, key != ""
}
