// Package stack provides the LIFO work list used for iterative tree walks.
package stack

// Stack is a slice-backed LIFO. The zero value is empty and ready to use.
type Stack[T any] struct {
	items []T
}

// NewWithCapacity preallocates room for capacity pending items.
func NewWithCapacity[T any](capacity int) *Stack[T] {
	return &Stack[T]{
		items: make([]T, 0, capacity),
	}
}

// Push adds items in order, leaving the last one on top.
func (s *Stack[T]) Push(items ...T) {
	s.items = append(s.items, items...)
}

// Pop removes the top item. The slot is cleared so popped values can be
// collected.
func (s *Stack[T]) Pop() (T, bool) {
	var zero T
	if len(s.items) == 0 {
		return zero, false
	}

	last := len(s.items) - 1
	item := s.items[last]
	s.items[last] = zero
	s.items = s.items[:last]
	return item, true
}

func (s *Stack[T]) Len() int {
	return len(s.items)
}
