package table

import "fmt"

// BadOperandError reports a filter operand that cannot be interpreted for
// the column it is applied to (unparseable number, broken regex pattern).
// Like UnsupportedOperatorError it fails the query before any scan.
type BadOperandError struct {
	Column  string
	Operand string
	Reason  string
}

func (e *BadOperandError) Error() string {
	return fmt.Sprintf("bad operand %q for column %q: %s", e.Operand, e.Column, e.Reason)
}

func newBadOperand(column, operand string, cause error) error {
	return &BadOperandError{Column: column, Operand: operand, Reason: cause.Error()}
}
