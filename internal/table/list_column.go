package table

import "strings"

// ListColumn projects a list-of-string field (contact groups, members).
// The slice returned by the record is borrowed and never mutated here.
type ListColumn struct {
	baseColumn
}

func NewListColumn(name, description string, ref FieldRef) *ListColumn {
	return &ListColumn{baseColumn{name: name, description: description, ref: ref}}
}

func (c *ListColumn) Type() ColumnType { return ColumnTypeList }

func (c *ListColumn) GetValue(rec Record) []string {
	return c.target(rec).ListAt(c.ref.Slot)
}

func (c *ListColumn) ValueAsString(rec Record) string {
	return strings.Join(c.GetValue(rec), ",")
}

func (c *ListColumn) Output(rec Record, w RowWriter) {
	w.WriteList(c.GetValue(rec))
}

// CreateFilter supports the membership semantics list columns use:
// equality against "" tests for the empty list, and the >= / < pair
// tests whether the operand is / is not a member.
func (c *ListColumn) CreateFilter(op Operator, value string) (Filter, error) {
	switch op {
	case OpEqual, OpUnequal:
		if value != "" {
			return nil, &BadOperandError{
				Column:  c.name,
				Operand: value,
				Reason:  "list equality only tests for the empty list; use >= for membership",
			}
		}
		return &listFilter{column: c, op: op}, nil
	case OpGreaterOrEqual, OpLess:
		return &listFilter{column: c, op: op, operand: value}, nil
	default:
		return nil, newUnsupportedOperator(c, op)
	}
}

type listFilter struct {
	column  *ListColumn
	op      Operator
	operand string
}

func (f *listFilter) Matches(rec Record) bool {
	v := f.column.GetValue(rec)

	switch f.op {
	case OpEqual:
		return len(v) == 0
	case OpUnequal:
		return len(v) != 0
	case OpGreaterOrEqual:
		return contains(v, f.operand)
	case OpLess:
		return !contains(v, f.operand)
	default:
		return false
	}
}

func contains(list []string, member string) bool {
	for _, m := range list {
		if m == member {
			return true
		}
	}
	return false
}
