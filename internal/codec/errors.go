package codec

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidUTF8 indicates a byte sequence that cannot be escaped.
	ErrInvalidUTF8 = errors.New("codec: invalid UTF-8 sequence")

	// ErrTruncatedEscape indicates input ended inside an escape sequence.
	ErrTruncatedEscape = errors.New("codec: truncated escape sequence")

	// ErrInvalidEscape indicates an unknown escape letter or a bad hex digit.
	ErrInvalidEscape = errors.New("codec: invalid escape sequence")
)

func invalidUTF8(offset int, b byte) error {
	return fmt.Errorf("%w: byte 0x%02x at offset %d", ErrInvalidUTF8, b, offset)
}
