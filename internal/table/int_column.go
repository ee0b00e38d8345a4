package table

import "strconv"

// IntColumn projects an integer field (states, counters, attempt numbers).
type IntColumn struct {
	baseColumn
}

func NewIntColumn(name, description string, ref FieldRef) *IntColumn {
	return &IntColumn{baseColumn{name: name, description: description, ref: ref}}
}

func (c *IntColumn) Type() ColumnType { return ColumnTypeInt }

func (c *IntColumn) GetValue(rec Record) int64 {
	return c.target(rec).IntAt(c.ref.Slot)
}

func (c *IntColumn) ValueAsString(rec Record) string {
	return strconv.FormatInt(c.GetValue(rec), 10)
}

func (c *IntColumn) Output(rec Record, w RowWriter) {
	w.WriteInt(c.GetValue(rec))
}

func (c *IntColumn) CreateFilter(op Operator, value string) (Filter, error) {
	switch op {
	case OpEqual, OpUnequal, OpLess, OpGreater, OpLessOrEqual, OpGreaterOrEqual:
		operand, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, newBadOperand(c.name, value, err)
		}
		return &intFilter{column: c, op: op, operand: operand}, nil
	default:
		return nil, newUnsupportedOperator(c, op)
	}
}

type intFilter struct {
	column  *IntColumn
	op      Operator
	operand int64
}

func (f *intFilter) Matches(rec Record) bool {
	return compareOrdered(f.column.GetValue(rec), f.op, f.operand)
}

// compareOrdered evaluates the ordering/equality operator set shared by
// the numeric and time columns.
func compareOrdered[T int64 | float64](v T, op Operator, operand T) bool {
	switch op {
	case OpEqual:
		return v == operand
	case OpUnequal:
		return v != operand
	case OpLess:
		return v < operand
	case OpGreater:
		return v > operand
	case OpLessOrEqual:
		return v <= operand
	case OpGreaterOrEqual:
		return v >= operand
	default:
		return false
	}
}
