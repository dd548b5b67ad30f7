package value

import "github.com/jacoelho/jdoc/internal/stack"

// Stats summarises the shape of a tree.
type Stats struct {
	// Nodes counts every value, containers included.
	Nodes int
	// Depth is the deepest container nesting; scalars have depth 0.
	Depth int
}

// Measure walks v iteratively, so arbitrarily deep trees cannot exhaust the
// goroutine stack.
func Measure(v Value) Stats {
	type item struct {
		value Value
		depth int
	}

	var stats Stats
	if IsUndefined(v) {
		return stats
	}

	pending := stack.NewWithCapacity[item](16)
	pending.Push(item{value: v})

	for {
		current, ok := pending.Pop()
		if !ok {
			return stats
		}
		stats.Nodes++

		switch node := current.value.(type) {
		case *Array:
			depth := current.depth + 1
			stats.Depth = max(stats.Depth, depth)
			for _, element := range node.Elements {
				pending.Push(item{value: element, depth: depth})
			}
		case *Object:
			depth := current.depth + 1
			stats.Depth = max(stats.Depth, depth)
			for _, member := range node.Members {
				pending.Push(item{value: member.Value, depth: depth})
			}
		}
	}
}
