package gopaginate

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Paginator computes page/offset pagination over a Source. It holds no
// per-call state and is safe for concurrent use.
type Paginator[T any] struct {
	source   Source[T]
	defaults *Options
	logger   zerolog.Logger
}

// NewPaginator returns a Paginator over source with a no-op logger and no defaults.
func NewPaginator[T any](source Source[T]) *Paginator[T] {
	return &Paginator[T]{
		source: source,
		logger: zerolog.Nop(),
	}
}

// WithDefaults sets options applied under the options of every call. The
// options are copied; later changes to defaults do not affect the paginator.
func (p *Paginator[T]) WithDefaults(defaults *Options) *Paginator[T] {
	if p == nil {
		p = &Paginator[T]{logger: zerolog.Nop()}
	}

	merged := mergeOptions(defaults)
	p.defaults = &merged

	return p
}

// WithLogger sets the logger for debug events. Errors are returned, not logged
// above debug level.
func (p *Paginator[T]) WithLogger(logger zerolog.Logger) *Paginator[T] {
	if p == nil {
		p = &Paginator[T]{}
	}

	p.logger = logger

	return p
}

// Paginate counts the documents matching filter and fetches the requested
// page concurrently, then derives pagination metadata from both. A nil
// filter matches all documents.
//
// The documents are not fetched at all when the effective limit is 0. If
// either query fails, the call fails with that error and the other query's
// context is cancelled.
func (p *Paginator[T]) Paginate(ctx context.Context, filter Filter, options *Options) (*Result[T], error) {
	if p == nil || p.source == nil {
		return nil, fmt.Errorf("cannot paginate: source is nil")
	}

	if filter == nil {
		filter = Filter{}
	}

	s := resolveSettings(p.defaults, options)
	logger := p.logger.With().
		Int("limit", s.limit).
		Int("skip", s.skip).
		Bool("pagination", s.pagination).
		Logger()

	var (
		count int64
		found FindResult[T]
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := p.source.Count(gctx, filter)
		if err != nil {
			return fmt.Errorf("count documents: %w", err)
		}

		count = n

		return nil
	})

	if s.limit > 0 {
		g.Go(func() error {
			res, err := p.source.Find(gctx, filter, s.findOptions())
			if err != nil {
				return fmt.Errorf("find documents: %w", err)
			}

			found = res

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Debug().Err(err).Msg("pagination queries failed")
		return nil, err
	}

	res := newResult(s, count, found)
	logger.Debug().
		Int64("total_docs", res.TotalDocs).
		Int("docs", len(res.Docs)).
		Msg("page resolved")

	return res, nil
}

// PaginateCallback runs Paginate and hands the outcome to callback: either
// (result, nil) or (nil, err). A nil callback discards the outcome.
func (p *Paginator[T]) PaginateCallback(
	ctx context.Context,
	filter Filter,
	options *Options,
	callback func(*Result[T], error),
) {
	res, err := p.Paginate(ctx, filter, options)
	if callback != nil {
		callback(res, err)
	}
}

// Paginate is a shortcut for NewPaginator(source).Paginate(ctx, filter, options).
func Paginate[T any](ctx context.Context, source Source[T], filter Filter, options *Options) (*Result[T], error) {
	return NewPaginator(source).Paginate(ctx, filter, options)
}
