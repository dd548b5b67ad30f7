package parser

import (
	"bytes"
	"errors"

	"github.com/jacoelho/jdoc/internal/buffer"
	"github.com/jacoelho/jdoc/internal/codec"
	"github.com/jacoelho/jdoc/internal/value"
)

var (
	literalTrue  = []byte("true")
	literalFalse = []byte("false")
	literalNull  = []byte("null")
)

// scanner walks data[pos:]. Every scan function either matches and advances
// pos, leaves pos untouched when the construct does not start here, or fails.
// Callers detect a match by comparing pos before and after the call.
type scanner struct {
	data     []byte
	pos      int
	depth    int
	maxDepth int
}

func (s *scanner) atEnd() bool {
	return s.pos >= len(s.data)
}

func (s *scanner) fail(err error) error {
	return &SyntaxError{Offset: s.pos, Err: err}
}

func (s *scanner) unexpectedEnd() error {
	return s.fail(ErrUnexpectedEnd)
}

func (s *scanner) unexpectedToken() error {
	return s.fail(ErrUnexpectedToken)
}

func (s *scanner) enter() error {
	s.depth++
	if s.maxDepth > 0 && s.depth > s.maxDepth {
		return s.fail(ErrTooDeep)
	}
	return nil
}

func (s *scanner) leave() {
	s.depth--
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func (s *scanner) skipWhitespace() {
	for s.pos < len(s.data) && isWhitespace(s.data[s.pos]) {
		s.pos++
	}
}

func (s *scanner) skipDigits() {
	for s.pos < len(s.data) && isDigit(s.data[s.pos]) {
		s.pos++
	}
}

// scanValue tries every construct in turn. It returns a nil value and no
// error when nothing matches.
func (s *scanner) scanValue() (value.Value, error) {
	start := s.pos

	str, err := s.scanString()
	if err != nil {
		return nil, err
	}
	if s.pos != start {
		return value.String(str), nil
	}

	num, err := s.scanNumber()
	if err != nil {
		return nil, err
	}
	if s.pos != start {
		return num, nil
	}

	obj, err := s.scanObject()
	if err != nil {
		return nil, err
	}
	if s.pos != start {
		return obj, nil
	}

	arr, err := s.scanArray()
	if err != nil {
		return nil, err
	}
	if s.pos != start {
		return arr, nil
	}

	b := s.scanBoolean()
	if s.pos != start {
		return b, nil
	}

	s.scanNull()
	if s.pos != start {
		return value.Null{}, nil
	}

	return nil, nil
}

func (s *scanner) scanString() (string, error) {
	if s.atEnd() || s.data[s.pos] != '"' {
		return "", nil
	}
	s.pos++

	out := buffer.New()
	for s.pos < len(s.data) {
		c := s.data[s.pos]

		switch {
		case c == '"':
			s.pos++
			return out.String(), nil
		case c == '\\':
			s.pos++
			n, err := codec.DecodeEscape(out, s.data[s.pos:])
			if errors.Is(err, codec.ErrTruncatedEscape) {
				s.pos = len(s.data)
				return "", s.unexpectedEnd()
			}
			if err != nil {
				return "", s.unexpectedToken()
			}
			s.pos += n
		case c <= 0x1f || c == 0x7f:
			return "", s.unexpectedToken()
		default:
			out.AppendByte(c)
			s.pos++
		}
	}

	return "", s.unexpectedEnd()
}

func (s *scanner) scanNumber() (value.Number, error) {
	if s.atEnd() || (s.data[s.pos] != '-' && !isDigit(s.data[s.pos])) {
		return "", nil
	}
	start := s.pos

	if s.data[s.pos] == '-' {
		s.pos++
		if s.atEnd() {
			return "", s.unexpectedEnd()
		}
	}

	switch c := s.data[s.pos]; {
	case c == '0':
		s.pos++
	case c >= '1' && c <= '9':
		s.skipDigits()
	default:
		return "", s.unexpectedToken()
	}

	if !s.atEnd() && s.data[s.pos] == '.' {
		s.pos++
		if s.atEnd() {
			return "", s.unexpectedEnd()
		}
		if !isDigit(s.data[s.pos]) {
			return "", s.unexpectedToken()
		}
		s.skipDigits()
	}

	if !s.atEnd() && (s.data[s.pos] == 'e' || s.data[s.pos] == 'E') {
		s.pos++
		if s.atEnd() {
			return "", s.unexpectedEnd()
		}
		if s.data[s.pos] == '+' || s.data[s.pos] == '-' {
			s.pos++
			if s.atEnd() {
				return "", s.unexpectedEnd()
			}
		}
		if !isDigit(s.data[s.pos]) {
			return "", s.unexpectedToken()
		}
		s.skipDigits()
	}

	return value.Number(s.data[start:s.pos]), nil
}

// scanObject accepts a missing key as the end of the member list, so both
// {} and a trailing comma before } are valid. A missing value is not.
func (s *scanner) scanObject() (*value.Object, error) {
	if s.atEnd() || s.data[s.pos] != '{' {
		return nil, nil
	}
	if err := s.enter(); err != nil {
		return nil, err
	}
	defer s.leave()
	s.pos++

	members := []value.Member{}
	for !s.atEnd() {
		s.skipWhitespace()
		if s.atEnd() {
			return nil, s.unexpectedEnd()
		}

		keyStart := s.pos
		key, err := s.scanString()
		if err != nil {
			return nil, err
		}
		if s.pos == keyStart {
			break
		}

		s.skipWhitespace()
		if s.atEnd() {
			return nil, s.unexpectedEnd()
		}
		if s.data[s.pos] != ':' {
			return nil, s.unexpectedToken()
		}
		s.pos++

		s.skipWhitespace()
		if s.atEnd() {
			return nil, s.unexpectedEnd()
		}

		valueStart := s.pos
		v, err := s.scanValue()
		if err != nil {
			return nil, err
		}
		if s.pos == valueStart {
			return nil, s.unexpectedToken()
		}
		members = append(members, value.Member{Key: key, Value: v})

		s.skipWhitespace()
		if s.atEnd() {
			return nil, s.unexpectedEnd()
		}
		if s.data[s.pos] != ',' {
			break
		}
		s.pos++
	}

	if s.atEnd() {
		return nil, s.unexpectedEnd()
	}
	if s.data[s.pos] != '}' {
		return nil, s.unexpectedToken()
	}
	s.pos++

	return &value.Object{Members: members}, nil
}

// scanArray accepts a missing value only as the first element, which makes
// [] valid while [1,] is not.
func (s *scanner) scanArray() (*value.Array, error) {
	if s.atEnd() || s.data[s.pos] != '[' {
		return nil, nil
	}
	if err := s.enter(); err != nil {
		return nil, err
	}
	defer s.leave()
	s.pos++

	elements := []value.Value{}
	for !s.atEnd() {
		s.skipWhitespace()
		if s.atEnd() {
			return nil, s.unexpectedEnd()
		}

		valueStart := s.pos
		v, err := s.scanValue()
		if err != nil {
			return nil, err
		}
		if s.pos == valueStart {
			if len(elements) == 0 {
				break
			}
			return nil, s.unexpectedToken()
		}
		elements = append(elements, v)

		s.skipWhitespace()
		if s.atEnd() {
			return nil, s.unexpectedEnd()
		}
		if s.data[s.pos] != ',' {
			break
		}
		s.pos++
	}

	if s.atEnd() {
		return nil, s.unexpectedEnd()
	}
	if s.data[s.pos] != ']' {
		return nil, s.unexpectedToken()
	}
	s.pos++

	return &value.Array{Elements: elements}, nil
}

func (s *scanner) scanBoolean() value.Boolean {
	rest := s.data[s.pos:]
	switch {
	case bytes.HasPrefix(rest, literalTrue):
		s.pos += len(literalTrue)
		return true
	case bytes.HasPrefix(rest, literalFalse):
		s.pos += len(literalFalse)
		return false
	}
	return false
}

func (s *scanner) scanNull() {
	if bytes.HasPrefix(s.data[s.pos:], literalNull) {
		s.pos += len(literalNull)
	}
}
