package pathing

import (
	"math"

	"github.com/jacoelho/jdoc/internal/value"
)

// ParseIndex converts a component made only of decimal digits into an array
// index. Signs, spaces and values that overflow int are rejected. The empty
// component has no digits and reads as index 0.
func ParseIndex(component string) (int, bool) {
	index := 0
	for i := 0; i < len(component); i++ {
		c := component[i]
		if c < '0' || c > '9' {
			return 0, false
		}

		digit := int(c - '0')
		if index > math.MaxInt/10 || index*10 > math.MaxInt-digit {
			return 0, false
		}
		index = index*10 + digit
	}
	return index, true
}

// Resolve walks p from root. It returns the node reached and the number of
// components consumed; the node is only meaningful when every component was
// consumed. Duplicate object keys resolve to the last member.
func Resolve(root value.Value, p Path) (value.Value, int) {
	current := root

	for i, component := range p.Components {
		switch node := current.(type) {
		case *value.Object:
			child, ok := node.Get(component)
			if !ok {
				return nil, i
			}
			current = child
		case *value.Array:
			index, ok := ParseIndex(component)
			if !ok {
				return nil, i
			}
			child, ok := node.At(index)
			if !ok {
				return nil, i
			}
			current = child
		default:
			return nil, i
		}
	}

	return current, len(p.Components)
}

// Lookup is Resolve reduced to found or not found.
func Lookup(root value.Value, p Path) (value.Value, bool) {
	node, consumed := Resolve(root, p)
	if !p.Resolved(consumed) {
		return nil, false
	}
	return node, true
}
