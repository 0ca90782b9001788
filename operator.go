package gopaginate

// Operator defines a comparison operator used in Filter conditions.
type Operator string

func (o Operator) Valid() bool {
	switch o {
	case OperatorEq, OperatorNe, OperatorGT, OperatorGTE, OperatorLT, OperatorLTE:
		return true
	default:
		return false
	}
}

const (
	OperatorEq  Operator = "="
	OperatorNe  Operator = "<>"
	OperatorGT  Operator = ">"
	OperatorGTE Operator = ">="
	OperatorLT  Operator = "<"
	OperatorLTE Operator = "<="
)

// Condition is a Filter value comparing a column with Value using Operator.
// A plain Filter value is shorthand for Eq(value).
type Condition struct {
	Operator Operator
	Value    any
}

func Eq(v any) Condition  { return Condition{Operator: OperatorEq, Value: v} }
func Ne(v any) Condition  { return Condition{Operator: OperatorNe, Value: v} }
func Gt(v any) Condition  { return Condition{Operator: OperatorGT, Value: v} }
func Gte(v any) Condition { return Condition{Operator: OperatorGTE, Value: v} }
func Lt(v any) Condition  { return Condition{Operator: OperatorLT, Value: v} }
func Lte(v any) Condition { return Condition{Operator: OperatorLTE, Value: v} }
