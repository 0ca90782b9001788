package gopaginate

import (
	"slices"

	"github.com/samber/lo"
)

// Options configure a single Paginate call. The zero value (and nil) means
// "library defaults": DefaultLimit documents from the first page, pagination
// enabled, query metadata included, canonical labels.
//
// Every With* method is nil-safe and returns the receiver, so options can be
// chained from scratch:
//
//	opts := (*gopaginate.Options)(nil).WithLimit(20).WithPage(3)
type Options struct {
	limit                *int
	page                 *int
	offset               *int
	pagination           *bool
	includeQueryMetadata *bool
	customLabels         Labels

	sort            Orderings
	selectColumns   []string
	populate        []string
	populateMaxDeep *int
	consistency     Consistency
	lean            *bool
	noCollection    *bool
}

// NewOptions returns empty options: every field falls back to the defaults.
func NewOptions() *Options {
	return new(Options)
}

// WithLimit sets the page size. Non-positive values switch the call to
// "metadata only" mode: no documents are fetched.
func (o *Options) WithLimit(limit int) *Options {
	if o == nil {
		o = new(Options)
	}

	o.limit = lo.ToPtr(limit)

	return o
}

// WithPage sets the 1-based page number. Values below 1 are treated as 1.
//
// IMPORTANT:
// An offset set with WithOffset takes priority over the page.
func (o *Options) WithPage(page int) *Options {
	if o == nil {
		o = new(Options)
	}

	o.page = lo.ToPtr(page)

	return o
}

// WithOffset sets the 0-based number of documents to skip. The page number is
// then derived from the offset and the limit. Setting an offset of 0 is still
// an explicit offset.
func (o *Options) WithOffset(offset int) *Options {
	if o == nil {
		o = new(Options)
	}

	o.offset = lo.ToPtr(offset)

	return o
}

// WithPagination toggles skip/limit application. With pagination disabled all
// matching documents are returned and reported as a single page.
func (o *Options) WithPagination(enabled bool) *Options {
	if o == nil {
		o = new(Options)
	}

	o.pagination = lo.ToPtr(enabled)

	return o
}

// WithQueryMetadata toggles attaching Source query metadata under MetaKey.
func (o *Options) WithQueryMetadata(include bool) *Options {
	if o == nil {
		o = new(Options)
	}

	o.includeQueryMetadata = lo.ToPtr(include)

	return o
}

// WithCustomLabels remaps output keys. Labels are merged key by key over any
// labels set before, and finally over DefaultLabels. Mapping a label to ""
// drops that field from the output.
func (o *Options) WithCustomLabels(labels Labels) *Options {
	if o == nil {
		o = new(Options)
	}

	o.customLabels = Labels(nil).Merge(o.customLabels, labels)

	return o
}

// WithSubstitutedSort resets previous orderings and applies the provided ones.
func (o *Options) WithSubstitutedSort(orderBy ...OrderBy) *Options {
	if o == nil {
		o = new(Options)
	}

	o.sort = nil

	return o.WithSort(orderBy...)
}

// WithSort appends sort orderings without overwriting existing ones.
// Order is preserved as if calling:
//
//	OrderBy(o1).ThenBy(o2).ThenBy(o3)...
func (o *Options) WithSort(orderBy ...OrderBy) *Options {
	if o == nil {
		o = new(Options)
	}

	for _, ob := range orderBy {
		idx := slices.IndexFunc(o.sort, func(processed OrderBy) bool {
			return processed.Column == ob.Column
		})

		// Remove previous occurrence (avoid duplication).
		if idx != -1 {
			o.sort = slices.Delete(o.sort, idx, idx+1)
		}

		o.sort = append(o.sort, ob)
	}

	return o
}

// WithSelect sets the projected columns.
func (o *Options) WithSelect(columns ...string) *Options {
	if o == nil {
		o = new(Options)
	}

	o.selectColumns = slices.Clone(columns)

	return o
}

// WithPopulate sets the relations to load together with the documents.
func (o *Options) WithPopulate(paths ...string) *Options {
	if o == nil {
		o = new(Options)
	}

	o.populate = slices.Clone(paths)

	return o
}

// WithPopulateMaxDeep caps the depth of populated relation paths.
func (o *Options) WithPopulateMaxDeep(depth int) *Options {
	if o == nil {
		o = new(Options)
	}

	o.populateMaxDeep = lo.ToPtr(depth)

	return o
}

// WithConsistency sets the read consistency hint passed to the source.
func (o *Options) WithConsistency(consistency Consistency) *Options {
	if o == nil {
		o = new(Options)
	}

	o.consistency = consistency

	return o
}

// WithLean asks the source for plain documents, skipping hooks.
func (o *Options) WithLean(lean bool) *Options {
	if o == nil {
		o = new(Options)
	}

	o.lean = lo.ToPtr(lean)

	return o
}

// WithNoCollection sets the no-collection hint passed to the source.
func (o *Options) WithNoCollection(noCollection bool) *Options {
	if o == nil {
		o = new(Options)
	}

	o.noCollection = lo.ToPtr(noCollection)

	return o
}

// mergeOptions layers options left to right: every field set in a later
// layer wins over the earlier ones, custom labels merge key by key. The
// inputs are not modified.
func mergeOptions(layers ...*Options) Options {
	var ret Options

	for _, layer := range layers {
		if layer == nil {
			continue
		}

		ret.limit = lo.CoalesceOrEmpty(layer.limit, ret.limit)
		ret.page = lo.CoalesceOrEmpty(layer.page, ret.page)
		ret.offset = lo.CoalesceOrEmpty(layer.offset, ret.offset)
		ret.pagination = lo.CoalesceOrEmpty(layer.pagination, ret.pagination)
		ret.includeQueryMetadata = lo.CoalesceOrEmpty(layer.includeQueryMetadata, ret.includeQueryMetadata)
		ret.populateMaxDeep = lo.CoalesceOrEmpty(layer.populateMaxDeep, ret.populateMaxDeep)
		ret.lean = lo.CoalesceOrEmpty(layer.lean, ret.lean)
		ret.noCollection = lo.CoalesceOrEmpty(layer.noCollection, ret.noCollection)
		ret.consistency = lo.CoalesceOrEmpty(layer.consistency, ret.consistency)

		if layer.sort != nil {
			ret.sort = slices.Clone(layer.sort)
		}
		if layer.selectColumns != nil {
			ret.selectColumns = slices.Clone(layer.selectColumns)
		}
		if layer.populate != nil {
			ret.populate = slices.Clone(layer.populate)
		}
		if layer.customLabels != nil {
			ret.customLabels = Labels(nil).Merge(ret.customLabels, layer.customLabels)
		}
	}

	return ret
}
