package parser

import (
	"errors"
	"fmt"
)

var (
	// ErrUnexpectedEnd indicates input ended while a construct was still open.
	ErrUnexpectedEnd = errors.New("unexpected end of input")

	// ErrUnexpectedToken indicates a byte that violates the grammar.
	ErrUnexpectedToken = errors.New("unexpected token")

	// ErrTooDeep indicates nesting beyond the configured maximum depth.
	ErrTooDeep = errors.New("maximum nesting depth exceeded")

	// ErrNoValue indicates input holding only whitespace.
	ErrNoValue = errors.New("no value in input")

	// ErrTrailingData indicates more than one value where exactly one is expected.
	ErrTrailingData = errors.New("unexpected data after value")

	// ErrNotString indicates a well-formed value of another kind.
	ErrNotString = errors.New("expected JSON string")
)

// SyntaxError reports where scanning stopped. It unwraps to one of the
// package sentinel errors.
type SyntaxError struct {
	Offset int
	Err    error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%v at offset %d", e.Err, e.Offset)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}
