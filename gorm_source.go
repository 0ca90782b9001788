package gopaginate

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

// GORMSource is a Source reading documents of type T through gorm.
//
// The base query may be pre-scoped (db.Table("users"), db.Where(...)); the
// Filter is added on top of it. Find options map to gorm as follows:
//
//   - Select -> db.Select, Sort -> db.Order, Skip/Limit -> db.Offset/db.Limit;
//   - Populate -> db.Preload, paths cut to PopulateMaxDeep segments;
//   - Lean -> session without hooks (AfterFind etc. are not run);
//   - Consistency and NoCollection have no gorm counterpart and are ignored.
type GORMSource[T any] struct {
	db *gorm.DB
}

// GORMQueryMeta is the query metadata GORMSource.Find returns.
type GORMQueryMeta struct {
	RowsAffected int64 `json:"rowsAffected"`
}

func NewGORMSource[T any](db *gorm.DB) *GORMSource[T] {
	return &GORMSource[T]{db: db}
}

// Count - implements Source.
func (s *GORMSource[T]) Count(ctx context.Context, filter Filter) (int64, error) {
	db, err := s.scoped(&gorm.Session{Context: ctx}, filter)
	if err != nil {
		return 0, err
	}

	var count int64
	if err = db.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("gorm count: %w", err)
	}

	return count, nil
}

// Find - implements Source.
func (s *GORMSource[T]) Find(ctx context.Context, filter Filter, options FindOptions) (FindResult[T], error) {
	if err := options.Sort.Validate(); err != nil {
		return FindResult[T]{}, err
	}

	db, err := s.scoped(&gorm.Session{Context: ctx, SkipHooks: lo.FromPtr(options.Lean)}, filter)
	if err != nil {
		return FindResult[T]{}, err
	}

	if len(options.Select) > 0 {
		db = db.Select(options.Select)
	}

	db = options.Sort.Apply(db)

	for _, path := range populatePaths(options.Populate, options.PopulateMaxDeep) {
		db = db.Preload(path)
	}

	if options.Skip != nil {
		db = db.Offset(*options.Skip)
	}

	if options.Limit != nil {
		db = db.Limit(*options.Limit)
	}

	rows := make([]T, 0)

	res := db.Find(&rows)
	if res.Error != nil {
		return FindResult[T]{}, fmt.Errorf("gorm find: %w", res.Error)
	}

	return FindResult[T]{
		Rows: rows,
		Meta: GORMQueryMeta{RowsAffected: res.RowsAffected},
	}, nil
}

// scoped opens a new session over the base query and applies the filter.
// Each call gets its own statement, so Count and Find can run concurrently.
func (s *GORMSource[T]) scoped(session *gorm.Session, filter Filter) (*gorm.DB, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("gorm source has no database")
	}

	if err := filter.Validate(); err != nil {
		return nil, err
	}

	db := s.db.Session(session)
	if db.Statement.Model == nil && db.Statement.Table == "" {
		db = db.Model(new(T))
	}

	if exp := filter.toGORMExpression(); exp != nil {
		db = db.Clauses(exp)
	}

	return db, nil
}

// populatePaths cuts relation paths ("Orders.Items.Product") to at most
// maxDeep segments, dropping duplicates. A nil maxDeep keeps paths intact.
func populatePaths(paths []string, maxDeep *int) []string {
	if maxDeep == nil {
		return paths
	}

	if *maxDeep <= 0 {
		return nil
	}

	return lo.Uniq(lo.Map(paths, func(path string, _ int) string {
		segments := strings.Split(path, ".")
		return strings.Join(segments[:min(len(segments), *maxDeep)], ".")
	}))
}

var _ Source[any] = (*GORMSource[any])(nil)
