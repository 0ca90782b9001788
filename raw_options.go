package gopaginate

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cast"
)

// Keys recognized in RawOptions.
const (
	RawKeyLimit                = "limit"
	RawKeyPage                 = "page"
	RawKeyOffset               = "offset"
	RawKeyPagination           = "pagination"
	RawKeySelect               = "select"
	RawKeySort                 = "sort"
	RawKeyPopulate             = "populate"
	RawKeyPopulateMaxDeep      = "populateMaxDeep"
	RawKeyConsistency          = "consistency"
	RawKeyLean                 = "lean"
	RawKeyNoCollection         = "noCollection"
	RawKeyCustomLabels         = "customLabels"
	RawKeyIncludeQueryMetadata = "includeQueryMetadata"
)

// RawOptions is a loosely typed options payload, as it comes from a JSON body
// or a query string. Presence of a key matters: an "offset" key, even with a
// zero value, switches the call to offset addressing.
//
// Numbers are coerced with ParseInt, so "20", 20.0 and json.Number("20") all
// mean 20. Unparsable limits become 0, pages 1, offsets 0.
type RawOptions map[string]any

// RawOptionsFromQuery builds RawOptions from URL query values. Repeated keys
// become lists; "customLabels.<label>=<key>" entries are collected into the
// custom labels map.
func RawOptionsFromQuery(values url.Values) RawOptions {
	ret := make(RawOptions, len(values))
	labels := make(map[string]any)

	for key, vals := range values {
		if len(vals) == 0 {
			continue
		}

		if label, ok := strings.CutPrefix(key, RawKeyCustomLabels+"."); ok {
			labels[label] = vals[len(vals)-1]
			continue
		}

		ret[key] = lo.Ternary[any](len(vals) == 1, vals[0], vals)
	}

	if len(labels) > 0 {
		ret[RawKeyCustomLabels] = labels
	}

	return ret
}

// Decode converts RawOptions into *Options. Sort entries have the form
// "column asc|desc" and are resolved through columnMapping (see ParseSort).
// Only malformed sort entries and a malformed custom labels map are errors;
// everything else is coerced.
func (r RawOptions) Decode(columnMapping ColumnMapping) (*Options, error) {
	o := NewOptions()

	if v, ok := r[RawKeyLimit]; ok {
		o.WithLimit(NormalizeLimit(v))
	}
	if v, ok := r[RawKeyPage]; ok {
		o.WithPage(NormalizePage(v))
	}
	if v, ok := r[RawKeyOffset]; ok {
		o.WithOffset(NormalizeOffset(v))
	}
	if v, ok := r[RawKeyPagination]; ok {
		o.WithPagination(truthy(v))
	}
	if v, ok := r[RawKeyIncludeQueryMetadata]; ok {
		o.WithQueryMetadata(truthy(v))
	}
	if v, ok := r[RawKeySelect]; ok {
		o.WithSelect(stringList(v)...)
	}
	if v, ok := r[RawKeyPopulate]; ok {
		o.WithPopulate(stringList(v)...)
	}
	if v, ok := r[RawKeyPopulateMaxDeep]; ok {
		if depth, parsed := ParseInt(v); parsed {
			o.WithPopulateMaxDeep(depth)
		}
	}
	if v, ok := r[RawKeyConsistency]; ok {
		o.WithConsistency(Consistency(cast.ToString(v)))
	}
	if v, ok := r[RawKeyLean]; ok {
		o.WithLean(truthy(v))
	}
	if v, ok := r[RawKeyNoCollection]; ok {
		o.WithNoCollection(truthy(v))
	}

	if v, ok := r[RawKeySort]; ok {
		orderings, err := ParseSort(stringList(v), columnMapping)
		if err != nil {
			return nil, fmt.Errorf("failed to decode sort: %w", err)
		}

		o.WithSubstitutedSort(orderings...)
	}

	if v, ok := r[RawKeyCustomLabels]; ok && v != nil {
		rawLabels, err := cast.ToStringMapE(v)
		if err != nil {
			return nil, fmt.Errorf("failed to decode custom labels: %w", err)
		}

		labels := make(Labels, len(rawLabels))
		for label, key := range rawLabels {
			labels[Label(label)] = labelKey(key)
		}

		o.WithCustomLabels(labels)
	}

	return o, nil
}

// truthy treats parsable boolean strings ("false", "0") as booleans and any
// other non-empty value as true.
func truthy(v any) bool {
	b, err := cast.ToBoolE(v)
	if err == nil {
		return b
	}

	return v != nil && cast.ToString(v) != ""
}

// labelKey maps falsy label values (nil, false, "") to the empty key, which
// drops the field.
func labelKey(v any) string {
	if b, ok := v.(bool); ok && !b {
		return ""
	}

	return cast.ToString(v)
}

// stringList accepts a comma separated string or a list of strings.
func stringList(v any) []string {
	var items []string
	if s, ok := v.(string); ok {
		items = strings.Split(s, ",")
	} else {
		items = cast.ToStringSlice(v)
		items = lo.FlatMap(items, func(item string, _ int) []string {
			return strings.Split(item, ",")
		})
	}

	return lo.Compact(lo.Map(items, func(item string, _ int) string {
		return strings.TrimSpace(item)
	}))
}
