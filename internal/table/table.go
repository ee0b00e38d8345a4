package table

import "fmt"

// slotKind maps a column's type tag to the record slot kind it reads.
func slotKind(t ColumnType) Kind {
	switch t {
	case ColumnTypeString:
		return KindString
	case ColumnTypeInt:
		return KindInt
	case ColumnTypeFloat:
		return KindFloat
	case ColumnTypeTime:
		return KindTime
	case ColumnTypeList:
		return KindList
	default:
		panic("unknown column type " + string(t))
	}
}

// ScanFunc enumerates a table's live records. The provider (the
// monitoring core) holds whatever lock gives the scan a consistent view
// for its whole duration. Returning false from yield stops the scan.
type ScanFunc func(yield func(Record) bool)

// Table is one queryable view over a record type: a name plus an ordered
// column set and a record source. Built once at startup, read-only
// afterwards.
type Table struct {
	name    string
	layout  *Layout
	scan    ScanFunc
	columns []Column
	byName  map[string]Column
}

func New(name string, layout *Layout, scan ScanFunc) *Table {
	return &Table{
		name:   name,
		layout: layout,
		scan:   scan,
		byName: make(map[string]Column),
	}
}

func (t *Table) Name() string { return t.name }

// Scan walks the table's live records under the provider's lock.
func (t *Table) Scan(yield func(Record) bool) {
	t.scan(yield)
}

// Add registers a column, validating its FieldRef against the record
// layout. A mismatch means schema/core version skew; registration fails
// here so it can never surface mid-scan.
func (t *Table) Add(col Column) error {
	if _, dup := t.byName[col.Name()]; dup {
		return fmt.Errorf("table %s: duplicate column %q", t.name, col.Name())
	}
	if err := t.layout.Check(col.fieldRef(), slotKind(col.Type())); err != nil {
		return fmt.Errorf("table %s, column %q: %w", t.name, col.Name(), err)
	}
	t.columns = append(t.columns, col)
	t.byName[col.Name()] = col
	return nil
}

// MustAdd is Add for static table definitions, where a failure is a
// programming error caught by the first test run.
func (t *Table) MustAdd(col Column) {
	if err := t.Add(col); err != nil {
		panic(err)
	}
}

// Column looks up one column by name.
func (t *Table) Column(name string) (Column, bool) {
	c, ok := t.byName[name]
	return c, ok
}

// Columns returns the full column set in registration order.
func (t *Table) Columns() []Column {
	return t.columns
}

// Registry holds all queryable tables, keyed by table name.
type Registry struct {
	tables map[string]*Table
}

func NewRegistry() *Registry {
	return &Registry{tables: make(map[string]*Table)}
}

func (r *Registry) Register(t *Table) error {
	if _, dup := r.tables[t.Name()]; dup {
		return fmt.Errorf("duplicate table %q", t.Name())
	}
	r.tables[t.Name()] = t
	return nil
}

func (r *Registry) Table(name string) (*Table, bool) {
	t, ok := r.tables[name]
	return t, ok
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tables))
	for name := range r.tables {
		names = append(names, name)
	}
	return names
}
