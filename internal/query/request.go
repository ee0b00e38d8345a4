package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/statuscore/livequery/internal/table"
)

// OutputFormat selects the row encoding of a response body.
type OutputFormat string

const (
	FormatCSV  OutputFormat = "csv"
	FormatJSON OutputFormat = "json"
)

// FilterLineKind discriminates the entries of a request's filter program.
// Predicates push one filter; And/Or pop Count filters and push their
// combination; Negate pops and inverts one.
type FilterLineKind uint8

const (
	LinePredicate FilterLineKind = iota
	LineAnd
	LineOr
	LineNegate
)

// FilterLine is one parsed Filter:/And:/Or:/Negate: header, kept in
// request order so the executor can fold the stack exactly as written.
type FilterLine struct {
	Kind    FilterLineKind
	Column  string         // predicate lines
	Op      table.Operator // predicate lines
	Operand string         // predicate lines, may be empty
	Count   int            // And/Or lines
}

// Request is one parsed query.
type Request struct {
	Table         string
	Columns       []string // empty = all columns of the table
	FilterLines   []FilterLine
	OutputFormat  OutputFormat
	ColumnHeaders bool
	Limit         int // -1 = unlimited
	Fixed16       bool
}

// RequestError reports a malformed request line. Always a 400.
type RequestError struct {
	Line   string
	Reason string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("invalid request line %q: %s", e.Line, e.Reason)
}

// ParseRequest parses the line-based request language:
//
//	GET <table>
//	Columns: <name> ...
//	Filter: <column> <op> [<operand>]
//	And: <n> | Or: <n> | Negate:
//	OutputFormat: csv | json
//	ColumnHeaders: on | off
//	Limit: <n>
//	ResponseHeader: off | fixed16
//
// The request ends at the first blank line (handled by the transport);
// ParseRequest receives the header block only.
func ParseRequest(text string) (*Request, error) {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(lines) == 0 || lines[0] == "" {
		return nil, &RequestError{Line: "", Reason: "empty request"}
	}

	first := strings.TrimSpace(lines[0])
	tableName, ok := strings.CutPrefix(first, "GET ")
	if !ok {
		return nil, &RequestError{Line: first, Reason: "request must start with GET <table>"}
	}
	tableName = strings.TrimSpace(tableName)
	if tableName == "" {
		return nil, &RequestError{Line: first, Reason: "missing table name"}
	}

	req := &Request{
		Table:        tableName,
		OutputFormat: FormatCSV,
		Limit:        -1,
	}

	for _, raw := range lines[1:] {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		header, value, found := strings.Cut(line, ":")
		if !found {
			return nil, &RequestError{Line: line, Reason: "missing header separator"}
		}
		value = strings.TrimSpace(value)

		if err := req.applyHeader(line, header, value); err != nil {
			return nil, err
		}
	}
	return req, nil
}

func (r *Request) applyHeader(line, header, value string) error {
	switch header {
	case "Columns":
		r.Columns = strings.Fields(value)

	case "Filter":
		fl, err := parseFilterLine(line, value)
		if err != nil {
			return err
		}
		r.FilterLines = append(r.FilterLines, fl)

	case "And", "Or":
		n, err := strconv.Atoi(value)
		if err != nil || n < 2 {
			return &RequestError{Line: line, Reason: header + " needs a count of at least 2"}
		}
		kind := LineAnd
		if header == "Or" {
			kind = LineOr
		}
		r.FilterLines = append(r.FilterLines, FilterLine{Kind: kind, Count: n})

	case "Negate":
		if value != "" {
			return &RequestError{Line: line, Reason: "Negate takes no value"}
		}
		r.FilterLines = append(r.FilterLines, FilterLine{Kind: LineNegate})

	case "OutputFormat":
		switch OutputFormat(value) {
		case FormatCSV, FormatJSON:
			r.OutputFormat = OutputFormat(value)
		default:
			return &RequestError{Line: line, Reason: "unknown output format"}
		}

	case "ColumnHeaders":
		switch value {
		case "on":
			r.ColumnHeaders = true
		case "off":
			r.ColumnHeaders = false
		default:
			return &RequestError{Line: line, Reason: "ColumnHeaders must be on or off"}
		}

	case "Limit":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return &RequestError{Line: line, Reason: "Limit must be a non-negative integer"}
		}
		r.Limit = n

	case "ResponseHeader":
		switch value {
		case "off":
			r.Fixed16 = false
		case "fixed16":
			r.Fixed16 = true
		default:
			return &RequestError{Line: line, Reason: "ResponseHeader must be off or fixed16"}
		}

	default:
		return &RequestError{Line: line, Reason: "unknown header"}
	}
	return nil
}

// WantsFixed16 reports whether the raw request text asks for fixed16
// framing. Parse failures still need it: the reply to a malformed
// request must be framed the way the client said it would read it,
// no matter where in the block the bad line sits.
func WantsFixed16(text string) bool {
	for _, line := range strings.Split(text, "\n") {
		header, value, found := strings.Cut(strings.TrimSpace(line), ":")
		if found && header == "ResponseHeader" && strings.TrimSpace(value) == "fixed16" {
			return true
		}
	}
	return false
}

// parseFilterLine splits "<column> <op> [<operand>]". The operand may
// contain spaces (plugin output does) and may be empty (list emptiness
// and empty-string comparisons).
func parseFilterLine(line, value string) (FilterLine, error) {
	parts := strings.SplitN(value, " ", 3)
	if len(parts) < 2 {
		return FilterLine{}, &RequestError{Line: line, Reason: "Filter needs <column> <operator> [<operand>]"}
	}
	op, err := table.ParseOperator(parts[1])
	if err != nil {
		return FilterLine{}, &RequestError{Line: line, Reason: err.Error()}
	}
	operand := ""
	if len(parts) == 3 {
		operand = parts[2]
	}
	return FilterLine{Kind: LinePredicate, Column: parts[0], Op: op, Operand: operand}, nil
}
