package gopaginate

import (
	"context"
	"fmt"
)

// Consistency is an opaque scan-consistency hint forwarded to Source.Find.
// Sources that have no such notion ignore it.
type Consistency string

const (
	ConsistencyNotBounded  Consistency = "not_bounded"
	ConsistencyRequestPlus Consistency = "request_plus"
)

// FindOptions are the query-shaping options passed to Source.Find. Unset
// options are nil or empty and must not be applied by the source.
type FindOptions struct {
	// Skip and Limit are set only when pagination is enabled.
	Skip  *int
	Limit *int

	Sort            Orderings
	Select          []string
	Populate        []string
	Consistency     Consistency
	Lean            *bool
	NoCollection    *bool
	PopulateMaxDeep *int
}

// FindResult is what Source.Find returns: the page rows and optional query
// metadata (execution diagnostics, statement text...).
type FindResult[T any] struct {
	Rows []T
	Meta any
}

// Source is the data-access capability the Paginator reads from.
//
// Count must ignore skip and limit. Both methods may be called concurrently.
type Source[T any] interface {
	Count(ctx context.Context, filter Filter) (int64, error)
	Find(ctx context.Context, filter Filter, options FindOptions) (FindResult[T], error)
}

// SourceFuncs adapts a pair of functions to Source.
type SourceFuncs[T any] struct {
	CountFunc func(ctx context.Context, filter Filter) (int64, error)
	FindFunc  func(ctx context.Context, filter Filter, options FindOptions) (FindResult[T], error)
}

// Count - implements Source.
func (s SourceFuncs[T]) Count(ctx context.Context, filter Filter) (int64, error) {
	if s.CountFunc == nil {
		return 0, fmt.Errorf("count is not supported by source")
	}

	return s.CountFunc(ctx, filter)
}

// Find - implements Source.
func (s SourceFuncs[T]) Find(ctx context.Context, filter Filter, options FindOptions) (FindResult[T], error) {
	if s.FindFunc == nil {
		return FindResult[T]{}, fmt.Errorf("find is not supported by source")
	}

	return s.FindFunc(ctx, filter, options)
}

var _ Source[any] = SourceFuncs[any]{}
