// Package pathing parses dotted paths and resolves them against value trees.
//
// A path is written as components separated by '.'. Inside a component "\."
// stands for a literal dot and "\\" for a literal backslash; no other escape
// exists. Object members are addressed by key and array elements by
// unsigned decimal index.
package pathing

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidEscape indicates a backslash followed by anything but '.' or '\'.
	ErrInvalidEscape = errors.New("pathing: invalid escape in path")
)

// Path is an ordered list of raw, unescaped components.
type Path struct {
	Components []string
}

// New builds a path from raw components.
func New(components ...string) Path {
	return Path{Components: components}
}

// Parse splits text into components. Empty text yields one empty component.
func Parse(text string) (Path, error) {
	var (
		components []string
		current    strings.Builder
	)

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch c {
		case '.':
			components = append(components, current.String())
			current.Reset()
		case '\\':
			i++
			if i >= len(text) || (text[i] != '.' && text[i] != '\\') {
				return Path{}, fmt.Errorf("%w: %q at offset %d", ErrInvalidEscape, text, i-1)
			}
			current.WriteByte(text[i])
		default:
			current.WriteByte(c)
		}
	}
	components = append(components, current.String())

	return Path{Components: components}, nil
}

func (p Path) Len() int {
	return len(p.Components)
}

// Parent splits off the last component. The parent of a one-component path
// is the empty path, which resolves to the root.
func (p Path) Parent() (Path, string) {
	if len(p.Components) == 0 {
		return p, ""
	}
	last := len(p.Components) - 1
	return Path{Components: p.Components[:last:last]}, p.Components[last]
}

// Resolved reports whether consumed covers every component.
func (p Path) Resolved(consumed int) bool {
	return consumed == len(p.Components)
}

// String renders the path back to its escaped text form.
func (p Path) String() string {
	return Join(p.Components...)
}

// EscapeComponent prefixes '.' and '\' with a backslash.
func EscapeComponent(component string) string {
	if !strings.ContainsAny(component, `.\`) {
		return component
	}

	var b strings.Builder
	b.Grow(len(component) * 2)
	for i := 0; i < len(component); i++ {
		c := component[i]
		if c == '.' || c == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	return b.String()
}

// Join escapes each component and joins them with '.'.
func Join(components ...string) string {
	escaped := make([]string, len(components))
	for i, component := range components {
		escaped[i] = EscapeComponent(component)
	}
	return strings.Join(escaped, ".")
}
