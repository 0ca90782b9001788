// Package pgxsource provides a gopaginate.Source over PostgreSQL through pgx.
//
// Queries are plain SQL built from the filter and find options:
//
//	SELECT count(*) FROM <table> WHERE <filter>
//	SELECT <select|*> FROM <table> WHERE <filter> ORDER BY <sort> LIMIT $n OFFSET $m
//
// Rows are collected by column name into T, so T is a struct with `db` tags
// (or field names matching the columns).
package pgxsource

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/lo"

	"github.com/Alp4ka/gopaginate"
)

// Querier is the subset of *pgxpool.Pool, *pgx.Conn and pgx.Tx used by Source.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// QueryMeta is the query metadata Source.Find returns.
type QueryMeta struct {
	CommandTag   string `json:"commandTag"`
	RowsAffected int64  `json:"rowsAffected"`
}

// Source reads documents of type T from a single table.
//
// Populate, Lean, Consistency and NoCollection have no meaning for plain
// SQL and are ignored.
type Source[T any] struct {
	db    Querier
	table string
}

func New[T any](db Querier, table string) *Source[T] {
	return &Source[T]{
		db:    db,
		table: table,
	}
}

// Count - implements gopaginate.Source.
func (s *Source[T]) Count(ctx context.Context, filter gopaginate.Filter) (int64, error) {
	query, args, err := s.countQuery(filter)
	if err != nil {
		return 0, err
	}

	var count int64
	if err = s.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("pgx count: %w", err)
	}

	return count, nil
}

// Find - implements gopaginate.Source.
func (s *Source[T]) Find(
	ctx context.Context,
	filter gopaginate.Filter,
	options gopaginate.FindOptions,
) (gopaginate.FindResult[T], error) {
	query, args, err := s.findQuery(filter, options)
	if err != nil {
		return gopaginate.FindResult[T]{}, err
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return gopaginate.FindResult[T]{}, fmt.Errorf("pgx find: %w", err)
	}

	var rowTo pgx.RowToFunc[T] = pgx.RowToStructByName[T]
	if len(options.Select) > 0 {
		// A projection leaves some fields of T without a column.
		rowTo = pgx.RowToStructByNameLax[T]
	}

	docs, err := pgx.CollectRows(rows, rowTo)
	if err != nil {
		return gopaginate.FindResult[T]{}, fmt.Errorf("pgx find: %w", err)
	}

	return gopaginate.FindResult[T]{
		Rows: docs,
		Meta: newQueryMeta(rows.CommandTag()),
	}, nil
}

func newQueryMeta(tag pgconn.CommandTag) QueryMeta {
	return QueryMeta{
		CommandTag:   tag.String(),
		RowsAffected: tag.RowsAffected(),
	}
}

func (s *Source[T]) countQuery(filter gopaginate.Filter) (string, []any, error) {
	where, args, err := s.where(filter)
	if err != nil {
		return "", nil, err
	}

	return fmt.Sprintf("SELECT count(*) FROM %s WHERE %s", s.table, where), args, nil
}

func (s *Source[T]) findQuery(filter gopaginate.Filter, options gopaginate.FindOptions) (string, []any, error) {
	where, args, err := s.where(filter)
	if err != nil {
		return "", nil, err
	}

	if err = options.Sort.Validate(); err != nil {
		return "", nil, err
	}

	for _, column := range options.Select {
		if !gopaginate.ValidIdentifier(column) {
			return "", nil, fmt.Errorf("select column name contains forbidden symbols '%s'", column)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "SELECT %s FROM %s WHERE %s",
		lo.Ternary(len(options.Select) > 0, strings.Join(options.Select, ", "), "*"),
		s.table,
		where,
	)

	if len(options.Sort) > 0 {
		fmt.Fprintf(&b, " ORDER BY %s", options.Sort.ToSQL())
	}

	if options.Limit != nil {
		args = append(args, *options.Limit)
		fmt.Fprintf(&b, " LIMIT %s", gopaginate.DollarPlaceholder(len(args)))
	}

	if options.Skip != nil && *options.Skip > 0 {
		args = append(args, *options.Skip)
		fmt.Fprintf(&b, " OFFSET %s", gopaginate.DollarPlaceholder(len(args)))
	}

	return b.String(), args, nil
}

func (s *Source[T]) where(filter gopaginate.Filter) (string, []any, error) {
	if s == nil || s.db == nil {
		return "", nil, fmt.Errorf("pgx source has no database")
	}

	if !gopaginate.ValidIdentifier(s.table) {
		return "", nil, fmt.Errorf("table name contains forbidden symbols '%s'", s.table)
	}

	if err := filter.Validate(); err != nil {
		return "", nil, err
	}

	where, args := filter.ToSQL(gopaginate.DollarPlaceholder)

	return where, args, nil
}

var _ gopaginate.Source[struct{}] = (*Source[struct{}])(nil)
