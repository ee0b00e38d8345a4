package query

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/statuscore/livequery/internal/table"
)

// renderer is the per-query row buffer columns write into. One field per
// Write call; the renderer owns the encoding, the column owns the value.
type renderer interface {
	table.RowWriter
	BeginRow()
	EndRow()
	Finish() ([]byte, error)
}

func newRenderer(format OutputFormat) renderer {
	if format == FormatJSON {
		return &jsonRenderer{}
	}
	return &csvRenderer{}
}

// csvRenderer emits the delimited text format: ';' between fields, ','
// between list members, '\n' after each row.
type csvRenderer struct {
	buf   bytes.Buffer
	field int
}

func (r *csvRenderer) BeginRow() { r.field = 0 }

func (r *csvRenderer) EndRow() { r.buf.WriteByte('\n') }

func (r *csvRenderer) Finish() ([]byte, error) { return r.buf.Bytes(), nil }

func (r *csvRenderer) sep() {
	if r.field > 0 {
		r.buf.WriteByte(';')
	}
	r.field++
}

func (r *csvRenderer) WriteString(v string) {
	r.sep()
	r.buf.WriteString(v)
}

func (r *csvRenderer) WriteInt(v int64) {
	r.sep()
	r.buf.WriteString(strconv.FormatInt(v, 10))
}

func (r *csvRenderer) WriteFloat(v float64) {
	r.sep()
	r.buf.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
}

func (r *csvRenderer) WriteTime(v time.Time) {
	r.sep()
	r.buf.WriteString(strconv.FormatInt(v.Unix(), 10))
}

func (r *csvRenderer) WriteList(v []string) {
	r.sep()
	r.buf.WriteString(strings.Join(v, ","))
}

// jsonRenderer collects rows as arrays and marshals the whole result as
// one array of arrays. List fields are copied: the borrowed slice must
// not outlive the scan step.
type jsonRenderer struct {
	rows [][]any
	row  []any
}

func (r *jsonRenderer) BeginRow() { r.row = nil }

func (r *jsonRenderer) EndRow() {
	r.rows = append(r.rows, r.row)
	r.row = nil
}

func (r *jsonRenderer) Finish() ([]byte, error) {
	if r.rows == nil {
		return []byte("[]\n"), nil
	}
	b, err := json.Marshal(r.rows)
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

func (r *jsonRenderer) WriteString(v string) { r.row = append(r.row, v) }

func (r *jsonRenderer) WriteInt(v int64) { r.row = append(r.row, v) }

func (r *jsonRenderer) WriteFloat(v float64) { r.row = append(r.row, v) }

func (r *jsonRenderer) WriteTime(v time.Time) { r.row = append(r.row, v.Unix()) }

func (r *jsonRenderer) WriteList(v []string) {
	owned := make([]string, len(v))
	copy(owned, v)
	r.row = append(r.row, owned)
}
