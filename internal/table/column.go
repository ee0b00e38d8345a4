package table

import (
	"fmt"
	"time"
)

// ColumnType tags a column's native type
type ColumnType string

const (
	ColumnTypeString ColumnType = "string"
	ColumnTypeInt    ColumnType = "int"
	ColumnTypeFloat  ColumnType = "float"
	ColumnTypeTime   ColumnType = "time"
	ColumnTypeList   ColumnType = "list"
)

// RowWriter receives one field per Output call, in the encoding owned by
// the active query context. Implementations must not retain the list slice.
type RowWriter interface {
	WriteString(v string)
	WriteInt(v int64)
	WriteFloat(v float64)
	WriteTime(v time.Time)
	WriteList(v []string)
}

// Column is a named, typed projection of one field from a live core record
// into the query engine's row model. Columns are constructed once at table
// registration, hold no mutable state afterwards, and are safe for
// concurrent scans: every call receives the record from the caller's own
// scan and touches nothing shared.
type Column interface {
	Name() string
	Description() string
	Type() ColumnType

	// ValueAsString renders this column's value for rec in canonical text
	// form. String columns return the borrowed value itself, unconverted.
	ValueAsString(rec Record) string

	// Output appends exactly one field for rec to the row writer.
	// No reference to rec may be retained past the call.
	Output(rec Record, w RowWriter)

	// CreateFilter builds an operator-bound predicate over this column.
	// It is the single place where operator legality per column type is
	// decided: an operator outside this column's supported set is a
	// construction error, never a silently-wrong filter.
	CreateFilter(op Operator, value string) (Filter, error)

	// fieldRef exposes the addressing pair for registration-time layout
	// validation. The set of column variants is closed by design.
	fieldRef() FieldRef
}

// baseColumn carries the identity and addressing every typed column shares.
type baseColumn struct {
	name        string
	description string
	ref         FieldRef
}

func (c *baseColumn) Name() string        { return c.name }
func (c *baseColumn) Description() string { return c.description }
func (c *baseColumn) fieldRef() FieldRef  { return c.ref }

// target resolves the indirection hop, returning the record the field
// slot applies to. Unchecked beyond what RefAt itself enforces: refs were
// validated against the layout at registration time.
func (c *baseColumn) target(rec Record) Record {
	if c.ref.Indirect != NoIndirect {
		return rec.RefAt(c.ref.Indirect)
	}
	return rec
}

// UnsupportedOperatorError reports a filter operator that is not legal for
// a column's type. Surfaced to the client as a query-construction failure
// before any row is scanned.
type UnsupportedOperatorError struct {
	Column     string
	ColumnType ColumnType
	Operator   Operator
}

func (e *UnsupportedOperatorError) Error() string {
	return fmt.Sprintf("operator %s not supported on %s column %q",
		e.Operator, e.ColumnType, e.Column)
}

func newUnsupportedOperator(c Column, op Operator) error {
	return &UnsupportedOperatorError{
		Column:     c.Name(),
		ColumnType: c.Type(),
		Operator:   op,
	}
}
