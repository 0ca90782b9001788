package gopaginate

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"gorm.io/gorm/clause"
)

// Filter is the predicate passed to both Source.Count and Source.Find. Keys
// are column names, values are either plain values (equality, nil meaning
// IS NULL) or a Condition. An empty or nil Filter matches everything.
//
// Sources are free to interpret Filter differently; the renderers below are
// what GORMSource and pgxsource use.
type Filter map[string]any

// Placeholder renders the n-th (1-based) bind variable of an SQL statement.
type Placeholder func(n int) string

var (
	// QuestionPlaceholder renders "?" (MySQL, SQLite, gorm expressions).
	QuestionPlaceholder Placeholder = func(int) string { return "?" }
	// DollarPlaceholder renders "$1", "$2"... (PostgreSQL, pgx).
	DollarPlaceholder Placeholder = func(n int) string { return "$" + strconv.Itoa(n) }
)

// tConjunct is the value of Operator(Column, Value). A filter is the
// conjunction of its conjuncts.
type tConjunct struct {
	Column   string
	Value    any
	Operator Operator
}

// toConjuncts returns filter conjuncts ordered by column name, so rendered
// SQL is stable across calls.
func (f Filter) toConjuncts() []tConjunct {
	columns := lo.Keys(f)
	slices.Sort(columns)

	return lo.Map(columns, func(column string, _ int) tConjunct {
		if cond, ok := f[column].(Condition); ok {
			return tConjunct{Column: column, Value: cond.Value, Operator: cond.Operator}
		}

		return tConjunct{Column: column, Value: f[column], Operator: OperatorEq}
	})
}

// Validate checks column names and operators.
func (f Filter) Validate() error {
	for _, c := range f.toConjuncts() {
		if !ValidIdentifier(c.Column) {
			return fmt.Errorf("filter column name contains forbidden symbols '%s'", c.Column)
		}

		if !c.Operator.Valid() {
			return fmt.Errorf("invalid filter operator '%s' for column '%s'", c.Operator, c.Column)
		}

		if c.Value == nil && c.Operator != OperatorEq && c.Operator != OperatorNe {
			return fmt.Errorf("operator '%s' cannot compare column '%s' with NULL", c.Operator, c.Column)
		}
	}

	return nil
}

// toSQLClause converts a conjunct to "Column Operator <placeholder>" with the
// corresponding value. NULL comparisons take no value.
//
// Example:
//
//	tConjunct = { Column: "id", Operator: ">", Value: 123}
//
// Result:
//
//	("id > ?", [123])
func (c tConjunct) toSQLClause(placeholder string) (string, []any) {
	if c.Value == nil {
		if c.Operator == OperatorNe {
			return c.Column + " IS NOT NULL", nil
		}

		return c.Column + " IS NULL", nil
	}

	return fmt.Sprintf("%s %s %s", c.Column, c.Operator, placeholder), []any{c.Value}
}

func (c tConjunct) toGORMExpression() clause.Expression {
	sqlClause, args := c.toSQLClause("?")

	return clause.Expr{
		SQL:  sqlClause,
		Vars: args,
	}
}

// toGORMExpression converts the filter into "K1 AND K2 AND K3" where each Ki
// is a conjunct expression. Returns nil for an empty filter.
func (f Filter) toGORMExpression() clause.Expression {
	andExpressions := lo.Map(f.toConjuncts(), func(c tConjunct, _ int) clause.Expression {
		return c.toGORMExpression()
	})

	if len(andExpressions) == 1 {
		return andExpressions[0]
	} else if len(andExpressions) > 1 {
		return clause.And(andExpressions...)
	}

	return nil
}

// ToSQL renders the filter as an SQL condition with bind variables numbered
// from 1. An empty filter renders as "TRUE".
//
// Usage:
//
//	where, args := filter.ToSQL(gopaginate.DollarPlaceholder)
//	query := fmt.Sprintf("SELECT count(*) FROM table WHERE %s", where)
func (f Filter) ToSQL(placeholder Placeholder) (string, []any) {
	conjuncts := f.toConjuncts()
	if len(conjuncts) == 0 {
		return "TRUE", nil
	}

	andClauses := make([]string, 0, len(conjuncts))
	values := make([]any, 0, len(conjuncts))

	for _, c := range conjuncts {
		andClause, args := c.toSQLClause(placeholder(len(values) + 1))
		andClauses = append(andClauses, andClause)
		values = append(values, args...)
	}

	return strings.Join(andClauses, " AND "), values
}
