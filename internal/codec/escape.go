package codec

import (
	"unicode/utf16"

	"github.com/jacoelho/jdoc/internal/buffer"
)

const hexDigits = "0123456789abcdef"

// shortEscapes holds the two-character escapes, indexed by source byte.
var shortEscapes = [128]string{
	'"':  `\"`,
	'\\': `\\`,
	'/':  `\/`,
	'\b': `\b`,
	'\f': `\f`,
	'\n': `\n`,
	'\r': `\r`,
	'\t': `\t`,
}

func appendUnicodeEscape(dst *buffer.Buffer, unit uint16) {
	dst.AppendString(`\u`)
	dst.AppendByte(hexDigits[unit>>12&0xf])
	dst.AppendByte(hexDigits[unit>>8&0xf])
	dst.AppendByte(hexDigits[unit>>4&0xf])
	dst.AppendByte(hexDigits[unit&0xf])
}

func isContinuation(b byte) bool {
	return b&0xc0 == 0x80
}

// isEncodedLowSurrogate reports whether src starts with the 3-byte form of a
// code point in U+DC00..U+DFFF.
func isEncodedLowSurrogate(src []byte) bool {
	return len(src) >= 3 && src[0] == 0xed && src[1]>>4 == 0x0b && isContinuation(src[2])
}

// Escape writes src as the body of a quoted string, without the quotes.
//
// Multi-byte UTF-8 sequences become \uXXXX escapes; characters outside the
// Basic Multilingual Plane become a surrogate pair. Malformed or overlong
// sequences fail with ErrInvalidUTF8 and leave dst partially written.
func Escape(dst *buffer.Buffer, src []byte) error {
	for i := 0; i < len(src); {
		c := src[i]

		if c < 0x80 {
			switch {
			case shortEscapes[c] != "":
				dst.AppendString(shortEscapes[c])
			case c < 0x20 || c == 0x7f:
				appendUnicodeEscape(dst, uint16(c))
			default:
				dst.AppendByte(c)
			}
			i++
			continue
		}

		switch {
		case c>>5 == 0x06:
			if i+1 >= len(src) || !isContinuation(src[i+1]) {
				return invalidUTF8(i, c)
			}
			unit := uint16(c&0x1f)<<6 | uint16(src[i+1]&0x3f)
			if unit < 0x80 {
				return invalidUTF8(i, c)
			}
			appendUnicodeEscape(dst, unit)
			i += 2
		case c>>4 == 0x0e:
			if i+2 >= len(src) || !isContinuation(src[i+1]) || !isContinuation(src[i+2]) {
				return invalidUTF8(i, c)
			}
			unit := uint16(c&0x0f)<<12 | uint16(src[i+1]&0x3f)<<6 | uint16(src[i+2]&0x3f)
			if unit < 0x800 {
				return invalidUTF8(i, c)
			}
			// A surrogate pair spelled as two 3-byte sequences would decode
			// back to a single character.
			if IsHighSurrogate(unit) && isEncodedLowSurrogate(src[i+3:]) {
				return invalidUTF8(i, c)
			}
			appendUnicodeEscape(dst, unit)
			i += 3
		case c>>3 == 0x1e:
			if i+3 >= len(src) || !isContinuation(src[i+1]) || !isContinuation(src[i+2]) || !isContinuation(src[i+3]) {
				return invalidUTF8(i, c)
			}
			r := rune(c&0x07)<<18 | rune(src[i+1]&0x3f)<<12 | rune(src[i+2]&0x3f)<<6 | rune(src[i+3]&0x3f)
			if r < 0x10000 || r > 0x10ffff {
				return invalidUTF8(i, c)
			}
			high, low := utf16.EncodeRune(r)
			appendUnicodeEscape(dst, uint16(high))
			appendUnicodeEscape(dst, uint16(low))
			i += 4
		default:
			return invalidUTF8(i, c)
		}
	}
	return nil
}
