// Package parser turns bytes into value trees with a recursive-descent
// scanner.
//
// Numbers are kept as the exact matched text. Object keys may repeat. On any
// failure the scan stops and no partial tree is returned.
package parser

import (
	"fmt"

	"github.com/jacoelho/jdoc/internal/value"
)

// DefaultMaxDepth bounds container nesting when Options.MaxDepth is zero.
const DefaultMaxDepth = 10000

// Options configures a parse. The zero value is ready to use.
type Options struct {
	// MaxDepth limits how deeply arrays and objects may nest.
	// Zero selects DefaultMaxDepth; a negative value disables the limit.
	MaxDepth int
}

func (o Options) newScanner(data []byte) *scanner {
	maxDepth := o.MaxDepth
	if maxDepth == 0 {
		maxDepth = DefaultMaxDepth
	}
	return &scanner{data: data, maxDepth: maxDepth}
}

// ParseN reads up to limit whitespace-separated values from data. A limit of
// zero or less reads until the input is exhausted. Bytes after the last
// requested value are not examined.
func (o Options) ParseN(data []byte, limit int) ([]value.Value, error) {
	s := o.newScanner(data)

	var values []value.Value
	for !s.atEnd() && (limit <= 0 || len(values) < limit) {
		s.skipWhitespace()
		if s.atEnd() {
			break
		}

		start := s.pos
		v, err := s.scanValue()
		if err != nil {
			return nil, err
		}
		if s.pos == start {
			return nil, s.unexpectedToken()
		}
		values = append(values, v)
	}

	return values, nil
}

// Parse reads the first value of data.
func (o Options) Parse(data []byte) (value.Value, error) {
	values, err := o.ParseN(data, 1)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, ErrNoValue
	}
	return values[0], nil
}

// ParseString reads the first value of data, which must be a string, and
// returns its decoded bytes.
func (o Options) ParseString(data []byte) (string, error) {
	v, err := o.Parse(data)
	if err != nil {
		return "", err
	}

	s, ok := v.(value.String)
	if !ok {
		return "", fmt.Errorf("%w, got %s", ErrNotString, v.Kind())
	}
	return string(s), nil
}

// Check succeeds only if data holds exactly one value surrounded by
// optional whitespace.
func (o Options) Check(data []byte) error {
	values, err := o.ParseN(data, 0)
	if err != nil {
		return err
	}

	switch len(values) {
	case 0:
		return ErrNoValue
	case 1:
		return nil
	default:
		return ErrTrailingData
	}
}

func ParseN(data []byte, limit int) ([]value.Value, error) {
	return Options{}.ParseN(data, limit)
}

func Parse(data []byte) (value.Value, error) {
	return Options{}.Parse(data)
}

func Check(data []byte) error {
	return Options{}.Check(data)
}

func ParseString(data []byte) (string, error) {
	return Options{}.ParseString(data)
}
