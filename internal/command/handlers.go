package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jacoelho/jdoc/internal/buffer"
	"github.com/jacoelho/jdoc/internal/codec"
	"github.com/jacoelho/jdoc/internal/mutation"
	"github.com/jacoelho/jdoc/internal/parser"
	"github.com/jacoelho/jdoc/internal/pathing"
	"github.com/jacoelho/jdoc/internal/printer"
	"github.com/jacoelho/jdoc/internal/value"
)

// check reports a malformed document on stdout rather than failing.
func (r *Runner) check(out *buffer.Buffer, input []byte) error {
	if err := r.config.ParserOptions().Check(input); err != nil {
		r.logger.Debug("check failed", "error", err)
		out.AppendString("ERROR\n")
	}
	return nil
}

func (r *Runner) typeOf(out *buffer.Buffer, input []byte) error {
	root, err := r.parseDocument(input)
	if err != nil {
		return err
	}

	out.AppendString(root.Kind().String())
	out.AppendByte('\n')
	return nil
}

// get prints nothing when the path stops short of a value.
func (r *Runner) get(out *buffer.Buffer, input []byte) error {
	root, err := r.parseDocument(input)
	if err != nil {
		return err
	}

	node, consumed := pathing.Resolve(root, r.config.Path)
	if !r.config.Path.Resolved(consumed) {
		r.logger.Debug("path not resolved",
			"path", r.config.Path.String(),
			"consumed", consumed,
			"components", r.config.Path.Len())
		return nil
	}

	return printLine(out, node)
}

func (r *Runner) keys(out *buffer.Buffer, input []byte) error {
	root, err := r.parseDocument(input)
	if err != nil {
		return err
	}

	obj, ok := root.(*value.Object)
	if !ok {
		return fmt.Errorf("%w, got %s", ErrNotObject, root.Kind())
	}

	for _, key := range obj.Keys() {
		out.AppendString(key)
		out.AppendByte('\n')
	}
	return nil
}

// set reads the document and an optional replacement. Without a replacement
// the target is deleted.
func (r *Runner) set(out *buffer.Buffer, input []byte) error {
	values, err := r.parseValues(input, 2)
	if err != nil {
		return err
	}

	root := values[0]
	deleting := len(values) == 1

	var old value.Value
	if deleting {
		old, err = mutation.Delete(root, r.config.Path)
	} else {
		old, err = mutation.Set(root, r.config.Path, values[1])
	}
	ok, err := applied(err)
	if err != nil {
		return err
	}

	r.logger.Debug("set",
		"path", r.config.Path.String(),
		"applied", ok,
		"delete", deleting,
		"previous", value.KindOf(old).String())

	return printLine(out, root)
}

// insert places the second value before the array element at the path.
func (r *Runner) insert(out *buffer.Buffer, input []byte) error {
	values, err := r.parseValues(input, 2)
	if err != nil {
		return err
	}
	if len(values) < 2 {
		return fmt.Errorf("%w for %s", ErrMissingValue, r.config.Command)
	}

	root := values[0]
	ok, err := applied(mutation.Insert(root, r.config.Path, values[1]))
	if err != nil {
		return err
	}

	r.logger.Debug("insert", "path", r.config.Path.String(), "applied", ok)
	return printLine(out, root)
}

// slice removes the array element at the path.
func (r *Runner) slice(out *buffer.Buffer, input []byte) error {
	root, err := r.parseDocument(input)
	if err != nil {
		return err
	}

	old, err := mutation.Remove(root, r.config.Path)
	ok, err := applied(err)
	if err != nil {
		return err
	}

	r.logger.Debug("slice",
		"path", r.config.Path.String(),
		"applied", ok,
		"removed", value.KindOf(old).String())
	return printLine(out, root)
}

// applied treats a path without a target as a write that changed nothing.
func applied(err error) (bool, error) {
	if errors.Is(err, mutation.ErrNoTarget) {
		return false, nil
	}
	return err == nil, err
}

// splice edits the root array, or the array at -path when given. Every value
// after the document is inserted.
func (r *Runner) splice(out *buffer.Buffer, input []byte) error {
	values, err := r.parseValues(input, 0)
	if err != nil {
		return err
	}

	root, insert := values[0], values[1:]

	if r.config.HasPath {
		removed, err := mutation.Splice(root, r.config.Path, r.config.Index, r.config.Count, insert...)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrPathNotArray, r.config.Path)
		}
		r.logSplice(len(removed), len(insert))
		return printLine(out, root)
	}

	arr, ok := root.(*value.Array)
	if !ok {
		return fmt.Errorf("%w, got %s", ErrNotArray, root.Kind())
	}

	removed := mutation.ArraySplice(arr, r.config.Index, r.config.Count, insert...)
	r.logSplice(len(removed), len(insert))
	return printLine(out, arr)
}

func (r *Runner) logSplice(removed, inserted int) {
	r.logger.Debug("splice",
		"index", r.config.Index,
		"count", r.config.Count,
		"removed", removed,
		"inserted", inserted)
}

// decodeString prints the raw bytes of a string document.
func (r *Runner) decodeString(out *buffer.Buffer, input []byte) error {
	s, err := r.config.ParserOptions().ParseString(input)
	switch {
	case errors.Is(err, parser.ErrNotString):
		return err
	case err != nil:
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	r.logger.Debug("decoded string", "bytes", len(s))
	out.AppendString(s)
	return nil
}

// encodeString escapes stdin as is, without parsing it.
func (r *Runner) encodeString(out *buffer.Buffer, input []byte) error {
	return codec.Escape(out, input)
}

func (r *Runner) encodeKey(out *buffer.Buffer) error {
	out.AppendString(pathing.EscapeComponent(r.config.Argument))
	return nil
}

func (r *Runner) parseDocument(input []byte) (value.Value, error) {
	values, err := r.parseValues(input, 1)
	if err != nil {
		return nil, err
	}
	return values[0], nil
}

// parseValues reads up to limit values and requires at least one.
func (r *Runner) parseValues(input []byte, limit int) ([]value.Value, error) {
	values, err := r.config.ParserOptions().ParseN(input, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if len(values) == 0 {
		return nil, ErrInvalidInput
	}

	if r.logger.Enabled(context.Background(), slog.LevelDebug) {
		stats := value.Measure(values[0])
		r.logger.Debug("parsed input",
			"values", len(values),
			"root", values[0].Kind().String(),
			"nodes", stats.Nodes,
			"depth", stats.Depth)
	}
	return values, nil
}

func printLine(out *buffer.Buffer, v value.Value) error {
	if err := printer.New(out).Print(v); err != nil {
		return err
	}
	out.AppendByte('\n')
	return nil
}
