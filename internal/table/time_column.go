package table

import (
	"strconv"
	"time"
)

// TimeColumn projects a timestamp field. The wire form is Unix seconds,
// matching how check schedules and state changes are reported, so both
// rendering and filter operands use that representation.
type TimeColumn struct {
	baseColumn
}

func NewTimeColumn(name, description string, ref FieldRef) *TimeColumn {
	return &TimeColumn{baseColumn{name: name, description: description, ref: ref}}
}

func (c *TimeColumn) Type() ColumnType { return ColumnTypeTime }

func (c *TimeColumn) GetValue(rec Record) time.Time {
	return c.target(rec).TimeAt(c.ref.Slot)
}

func (c *TimeColumn) ValueAsString(rec Record) string {
	return strconv.FormatInt(c.GetValue(rec).Unix(), 10)
}

func (c *TimeColumn) Output(rec Record, w RowWriter) {
	w.WriteTime(c.GetValue(rec))
}

func (c *TimeColumn) CreateFilter(op Operator, value string) (Filter, error) {
	switch op {
	case OpEqual, OpUnequal, OpLess, OpGreater, OpLessOrEqual, OpGreaterOrEqual:
		operand, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, newBadOperand(c.name, value, err)
		}
		return &timeFilter{column: c, op: op, operand: operand}, nil
	default:
		return nil, newUnsupportedOperator(c, op)
	}
}

type timeFilter struct {
	column  *TimeColumn
	op      Operator
	operand int64 // Unix seconds
}

func (f *timeFilter) Matches(rec Record) bool {
	return compareOrdered(f.column.GetValue(rec).Unix(), f.op, f.operand)
}
