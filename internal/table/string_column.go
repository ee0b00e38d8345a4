package table

import (
	"regexp"
	"strings"
)

// StringColumn projects a text field. The returned value is a borrowed
// view of the core's memory, valid only for the current row.
type StringColumn struct {
	baseColumn
}

func NewStringColumn(name, description string, ref FieldRef) *StringColumn {
	return &StringColumn{baseColumn{name: name, description: description, ref: ref}}
}

func (c *StringColumn) Type() ColumnType { return ColumnTypeString }

// GetValue resolves the ref chain and returns the field's text.
func (c *StringColumn) GetValue(rec Record) string {
	return c.target(rec).StringAt(c.ref.Slot)
}

// ValueAsString is GetValue: string columns never need conversion.
func (c *StringColumn) ValueAsString(rec Record) string {
	return c.GetValue(rec)
}

func (c *StringColumn) Output(rec Record, w RowWriter) {
	w.WriteString(c.GetValue(rec))
}

func (c *StringColumn) CreateFilter(op Operator, value string) (Filter, error) {
	switch op {
	case OpEqual, OpUnequal, OpEqualIgnoreCase, OpLess, OpGreater, OpLessOrEqual, OpGreaterOrEqual:
		return &stringFilter{column: c, op: op, operand: value}, nil

	case OpMatches, OpDoesNotMatch, OpMatchesIgnoreCase:
		pattern := value
		if op == OpMatchesIgnoreCase {
			pattern = "(?i)" + pattern
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, newBadOperand(c.name, value, err)
		}
		return &stringFilter{column: c, op: op, re: re}, nil

	default:
		return nil, newUnsupportedOperator(c, op)
	}
}

// stringFilter compares a string column's value against a fixed operand.
// Ordering operators compare lexically.
type stringFilter struct {
	column  *StringColumn
	op      Operator
	operand string
	re      *regexp.Regexp // set for the regex operators only
}

func (f *stringFilter) Matches(rec Record) bool {
	v := f.column.GetValue(rec)

	switch f.op {
	case OpEqual:
		return v == f.operand
	case OpUnequal:
		return v != f.operand
	case OpEqualIgnoreCase:
		return strings.EqualFold(v, f.operand)
	case OpMatches, OpMatchesIgnoreCase:
		return f.re.MatchString(v)
	case OpDoesNotMatch:
		return !f.re.MatchString(v)
	case OpLess:
		return v < f.operand
	case OpGreater:
		return v > f.operand
	case OpLessOrEqual:
		return v <= f.operand
	case OpGreaterOrEqual:
		return v >= f.operand
	default:
		return false
	}
}
