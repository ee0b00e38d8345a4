package table

import "strconv"

// FloatColumn projects a floating-point field (latencies, percentages).
type FloatColumn struct {
	baseColumn
}

func NewFloatColumn(name, description string, ref FieldRef) *FloatColumn {
	return &FloatColumn{baseColumn{name: name, description: description, ref: ref}}
}

func (c *FloatColumn) Type() ColumnType { return ColumnTypeFloat }

func (c *FloatColumn) GetValue(rec Record) float64 {
	return c.target(rec).FloatAt(c.ref.Slot)
}

func (c *FloatColumn) ValueAsString(rec Record) string {
	return strconv.FormatFloat(c.GetValue(rec), 'g', -1, 64)
}

func (c *FloatColumn) Output(rec Record, w RowWriter) {
	w.WriteFloat(c.GetValue(rec))
}

func (c *FloatColumn) CreateFilter(op Operator, value string) (Filter, error) {
	switch op {
	case OpEqual, OpUnequal, OpLess, OpGreater, OpLessOrEqual, OpGreaterOrEqual:
		operand, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, newBadOperand(c.name, value, err)
		}
		return &floatFilter{column: c, op: op, operand: operand}, nil
	default:
		return nil, newUnsupportedOperator(c, op)
	}
}

type floatFilter struct {
	column  *FloatColumn
	op      Operator
	operand float64
}

func (f *floatFilter) Matches(rec Record) bool {
	return compareOrdered(f.column.GetValue(rec), f.op, f.operand)
}
