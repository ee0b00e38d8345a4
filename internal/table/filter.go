package table

import "fmt"

// Operator identifies a comparison in a Filter: header.
type Operator uint8

const (
	OpEqual Operator = iota
	OpUnequal
	OpMatches      // regex match
	OpDoesNotMatch // negated regex match
	OpEqualIgnoreCase
	OpMatchesIgnoreCase
	OpLess
	OpGreater
	OpLessOrEqual
	OpGreaterOrEqual
)

func (op Operator) String() string {
	switch op {
	case OpEqual:
		return "="
	case OpUnequal:
		return "!="
	case OpMatches:
		return "~"
	case OpDoesNotMatch:
		return "!~"
	case OpEqualIgnoreCase:
		return "=~"
	case OpMatchesIgnoreCase:
		return "~~"
	case OpLess:
		return "<"
	case OpGreater:
		return ">"
	case OpLessOrEqual:
		return "<="
	case OpGreaterOrEqual:
		return ">="
	default:
		return fmt.Sprintf("op(%d)", op)
	}
}

// ParseOperator maps a request operator symbol to its Operator.
func ParseOperator(sym string) (Operator, error) {
	switch sym {
	case "=":
		return OpEqual, nil
	case "!=":
		return OpUnequal, nil
	case "~":
		return OpMatches, nil
	case "!~":
		return OpDoesNotMatch, nil
	case "=~":
		return OpEqualIgnoreCase, nil
	case "~~":
		return OpMatchesIgnoreCase, nil
	case "<":
		return OpLess, nil
	case ">":
		return OpGreater, nil
	case "<=":
		return OpLessOrEqual, nil
	case ">=":
		return OpGreaterOrEqual, nil
	default:
		return 0, fmt.Errorf("unknown filter operator %q", sym)
	}
}

// Filter is a per-query predicate over one column's resolved value.
// Filters own a copy of their comparison operand, hold no per-row state
// and are evaluated once per record during a scan.
type Filter interface {
	Matches(rec Record) bool
}

// AndFilter matches when every child matches. An empty AndFilter matches
// everything, which is also the behavior of a query with no Filter lines.
type AndFilter struct {
	children []Filter
}

func NewAndFilter(children ...Filter) *AndFilter {
	return &AndFilter{children: children}
}

func (f *AndFilter) Add(child Filter) {
	f.children = append(f.children, child)
}

func (f *AndFilter) Matches(rec Record) bool {
	for _, c := range f.children {
		if !c.Matches(rec) {
			return false
		}
	}
	return true
}

// OrFilter matches when at least one child matches.
type OrFilter struct {
	children []Filter
}

func NewOrFilter(children ...Filter) *OrFilter {
	return &OrFilter{children: children}
}

func (f *OrFilter) Matches(rec Record) bool {
	for _, c := range f.children {
		if c.Matches(rec) {
			return true
		}
	}
	return false
}

// NotFilter inverts its child.
type NotFilter struct {
	child Filter
}

func NewNotFilter(child Filter) *NotFilter {
	return &NotFilter{child: child}
}

func (f *NotFilter) Matches(rec Record) bool {
	return !f.child.Matches(rec)
}
