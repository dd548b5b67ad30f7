// Package printer renders value trees as indented text.
//
// Containers always span several lines with one tab per nesting level.
// Object members are written as "key" : value and elements are separated
// by commas. Numbers are written exactly as they were scanned.
package printer

import (
	"errors"
	"fmt"
	"io"

	"github.com/jacoelho/jdoc/internal/buffer"
	"github.com/jacoelho/jdoc/internal/codec"
	"github.com/jacoelho/jdoc/internal/value"
)

// ErrUndefined is returned when an undefined value reaches the printer.
var ErrUndefined = errors.New("printer: cannot print undefined value")

// Printer writes rendered values to an io.Writer.
type Printer struct {
	writer io.Writer
	buf    *buffer.Buffer
}

// New creates a printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{
		writer: w,
		buf:    buffer.New(),
	}
}

// Print renders v at the top level. Nothing is written when rendering fails.
func (p *Printer) Print(v value.Value) error {
	p.buf.Reset()
	if err := Append(p.buf, v, 0); err != nil {
		return err
	}
	_, err := p.buf.WriteTo(p.writer)
	return err
}

// Append renders v into buf. level is the indentation of the line v starts
// on; members are indented one level deeper and the closing bracket sits at
// level.
func Append(buf *buffer.Buffer, v value.Value, level int) error {
	switch node := v.(type) {
	case nil, value.Undefined:
		return ErrUndefined
	case value.Null:
		buf.AppendString("null")
	case value.Boolean:
		if node {
			buf.AppendString("true")
		} else {
			buf.AppendString("false")
		}
	case value.Number:
		buf.AppendString(string(node))
	case value.String:
		return appendString(buf, string(node))
	case *value.Object:
		return appendObject(buf, node, level)
	case *value.Array:
		return appendArray(buf, node, level)
	default:
		return fmt.Errorf("printer: unsupported value %T", v)
	}
	return nil
}

func appendString(buf *buffer.Buffer, s string) error {
	buf.AppendByte('"')
	if err := codec.Escape(buf, []byte(s)); err != nil {
		return err
	}
	buf.AppendByte('"')
	return nil
}

func appendObject(buf *buffer.Buffer, obj *value.Object, level int) error {
	buf.AppendString("{\n")

	for i, member := range obj.Members {
		indent(buf, level+1)
		if err := appendString(buf, member.Key); err != nil {
			return err
		}
		buf.AppendString(" : ")
		if err := Append(buf, member.Value, level+1); err != nil {
			return err
		}
		if i != len(obj.Members)-1 {
			buf.AppendByte(',')
		}
		buf.AppendByte('\n')
	}

	indent(buf, level)
	buf.AppendByte('}')
	return nil
}

func appendArray(buf *buffer.Buffer, arr *value.Array, level int) error {
	buf.AppendString("[\n")

	for i, element := range arr.Elements {
		indent(buf, level+1)
		if err := Append(buf, element, level+1); err != nil {
			return err
		}
		if i != len(arr.Elements)-1 {
			buf.AppendByte(',')
		}
		buf.AppendByte('\n')
	}

	indent(buf, level)
	buf.AppendByte(']')
	return nil
}

func indent(buf *buffer.Buffer, level int) {
	for range level {
		buf.AppendByte('\t')
	}
}
