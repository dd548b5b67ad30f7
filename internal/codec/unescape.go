package codec

import (
	"unicode/utf16"
	"unicode/utf8"

	"github.com/jacoelho/jdoc/internal/buffer"
)

// UnescapeByte maps the letter after a backslash to the byte it stands for.
// It covers every escape except \u.
func UnescapeByte(letter byte) (byte, bool) {
	switch letter {
	case '"':
		return '"', true
	case '\\':
		return '\\', true
	case '/':
		return '/', true
	case 'b':
		return '\b', true
	case 'f':
		return '\f', true
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	}
	return 0, false
}

// ParseHex4 reads exactly four hex digits, either case.
func ParseHex4(src []byte) (uint16, bool) {
	if len(src) < 4 {
		return 0, false
	}

	var unit uint16
	for _, c := range src[:4] {
		var digit byte
		switch {
		case c >= '0' && c <= '9':
			digit = c - '0'
		case c >= 'a' && c <= 'f':
			digit = c - 'a' + 10
		case c >= 'A' && c <= 'F':
			digit = c - 'A' + 10
		default:
			return 0, false
		}
		unit = unit<<4 | uint16(digit)
	}
	return unit, true
}

// AppendCodeUnit writes a 16-bit code unit as 1, 2 or 3 UTF-8 bytes.
// Lone surrogates are encoded like any other unit.
func AppendCodeUnit(dst *buffer.Buffer, unit uint16) {
	switch {
	case unit < 0x80:
		dst.AppendByte(byte(unit))
	case unit < 0x800:
		dst.AppendByte(0xc0 | byte(unit>>6)&0x1f)
		dst.AppendByte(0x80 | byte(unit)&0x3f)
	default:
		dst.AppendByte(0xe0 | byte(unit>>12)&0x0f)
		dst.AppendByte(0x80 | byte(unit>>6)&0x3f)
		dst.AppendByte(0x80 | byte(unit)&0x3f)
	}
}

func IsHighSurrogate(unit uint16) bool {
	return unit >= 0xd800 && unit <= 0xdbff
}

func IsLowSurrogate(unit uint16) bool {
	return unit >= 0xdc00 && unit <= 0xdfff
}

// AppendSurrogatePair writes the 4-byte UTF-8 form of a surrogate pair.
func AppendSurrogatePair(dst *buffer.Buffer, high, low uint16) {
	var encoded [utf8.UTFMax]byte
	n := utf8.EncodeRune(encoded[:], utf16.DecodeRune(rune(high), rune(low)))
	dst.Append(encoded[:n])
}

// DecodeEscape decodes one escape sequence. src starts at the letter that
// follows the backslash. It returns the number of bytes of src consumed.
//
// A \u high surrogate immediately followed by a \u low surrogate is
// recombined into one code point; any other \u escape is encoded on its own.
func DecodeEscape(dst *buffer.Buffer, src []byte) (int, error) {
	if len(src) == 0 {
		return 0, ErrTruncatedEscape
	}

	if src[0] != 'u' {
		c, ok := UnescapeByte(src[0])
		if !ok {
			return 0, ErrInvalidEscape
		}
		dst.AppendByte(c)
		return 1, nil
	}

	if len(src) < 5 {
		return 0, ErrTruncatedEscape
	}
	unit, ok := ParseHex4(src[1:5])
	if !ok {
		return 0, ErrInvalidEscape
	}

	if IsHighSurrogate(unit) && len(src) >= 11 && src[5] == '\\' && src[6] == 'u' {
		if low, ok := ParseHex4(src[7:11]); ok && IsLowSurrogate(low) {
			AppendSurrogatePair(dst, unit, low)
			return 11, nil
		}
	}

	AppendCodeUnit(dst, unit)
	return 5, nil
}
