package query

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/statuscore/livequery/internal/table"
)

// Executor turns request text into responses over a fixed table registry.
// It holds no per-query state and is safe for concurrent use; each call
// builds its own filters and renderer, and the scan itself runs under the
// core's read lock via the table's scan source.
type Executor struct {
	registry  *table.Registry
	observers []Observer
}

func NewExecutor(registry *table.Registry) *Executor {
	return &Executor{registry: registry}
}

// AddObserver registers an observer for query lifecycle events.
// Not safe to call concurrently with Execute; wire observers at startup.
func (e *Executor) AddObserver(o Observer) {
	e.observers = append(e.observers, o)
}

func (e *Executor) notify(t EventType, queryID string, data any) {
	for _, o := range e.observers {
		o.OnEvent(Event{Type: t, QueryID: queryID, Timestamp: time.Now(), Data: data})
	}
}

// Execute parses and runs one request. Failures are encoded as error
// responses, never returned: the transport always has something to send.
func (e *Executor) Execute(text string) *Response {
	queryID := uuid.New().String()

	e.notify(EventParseStart, queryID, text)
	req, err := ParseRequest(text)
	if err != nil {
		e.notify(EventParseEnd, queryID, err.Error())
		return errorResponse(StatusBadRequest, WantsFixed16(text), "%v", err)
	}
	e.notify(EventParseEnd, queryID, req.Table)

	e.notify(EventExecStart, queryID, req.Table)
	resp := e.run(req)
	e.notify(EventExecEnd, queryID, resp.Code)
	return resp
}

func (e *Executor) run(req *Request) *Response {
	t, ok := e.registry.Table(req.Table)
	if !ok {
		return errorResponse(StatusNotFound, req.Fixed16, "table %q does not exist", req.Table)
	}

	columns, err := resolveColumns(t, req.Columns)
	if err != nil {
		return errorResponse(StatusNotFound, req.Fixed16, "%v", err)
	}

	filter, err := buildFilter(t, req.FilterLines)
	if err != nil {
		code := StatusBadRequest
		var colErr *columnNotFoundError
		if errors.As(err, &colErr) {
			code = StatusNotFound
		}
		return errorResponse(code, req.Fixed16, "%v", err)
	}

	out := newRenderer(req.OutputFormat)

	if req.ColumnHeaders {
		out.BeginRow()
		for _, c := range columns {
			out.WriteString(c.Name())
		}
		out.EndRow()
	}

	rows := 0
	t.Scan(func(rec table.Record) bool {
		if req.Limit >= 0 && rows >= req.Limit {
			return false
		}
		if !filter.Matches(rec) {
			return true
		}
		out.BeginRow()
		for _, c := range columns {
			c.Output(rec, out)
		}
		out.EndRow()
		rows++
		return true
	})

	body, err := out.Finish()
	if err != nil {
		return errorResponse(StatusInternal, req.Fixed16, "encoding result failed: %v", err)
	}
	return &Response{Code: StatusOK, Body: body, Fixed16: req.Fixed16}
}

type columnNotFoundError struct {
	Table  string
	Column string
}

func (e *columnNotFoundError) Error() string {
	return "table " + e.Table + " has no column " + e.Column
}

func resolveColumns(t *table.Table, names []string) ([]table.Column, error) {
	if len(names) == 0 {
		return t.Columns(), nil
	}
	columns := make([]table.Column, 0, len(names))
	for _, name := range names {
		c, ok := t.Column(name)
		if !ok {
			return nil, &columnNotFoundError{Table: t.Name(), Column: name}
		}
		columns = append(columns, c)
	}
	return columns, nil
}

// buildFilter folds the request's filter program into one predicate.
// Predicate lines push a filter built by the column itself (the sole
// place operator legality is decided); And/Or/Negate lines combine what
// is already on the stack. Whatever remains is joined conjunctively.
func buildFilter(t *table.Table, lines []FilterLine) (table.Filter, error) {
	var stack []table.Filter

	for _, line := range lines {
		switch line.Kind {
		case LinePredicate:
			c, ok := t.Column(line.Column)
			if !ok {
				return nil, &columnNotFoundError{Table: t.Name(), Column: line.Column}
			}
			f, err := c.CreateFilter(line.Op, line.Operand)
			if err != nil {
				return nil, err
			}
			stack = append(stack, f)

		case LineAnd, LineOr:
			if len(stack) < line.Count {
				return nil, &RequestError{
					Line:   "And/Or",
					Reason: "not enough filters on the stack to combine",
				}
			}
			children := make([]table.Filter, line.Count)
			copy(children, stack[len(stack)-line.Count:])
			stack = stack[:len(stack)-line.Count]
			if line.Kind == LineAnd {
				stack = append(stack, table.NewAndFilter(children...))
			} else {
				stack = append(stack, table.NewOrFilter(children...))
			}

		case LineNegate:
			if len(stack) == 0 {
				return nil, &RequestError{Line: "Negate:", Reason: "no filter to negate"}
			}
			stack[len(stack)-1] = table.NewNotFilter(stack[len(stack)-1])
		}
	}

	if len(stack) == 1 {
		return stack[0], nil
	}
	return table.NewAndFilter(stack...), nil
}
