package stack

import (
	"testing"
)

func TestStack_LIFO(t *testing.T) {
	t.Parallel()

	var s Stack[int]
	s.Push(1)
	s.Push(2, 3)

	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}

	for _, want := range []int{3, 2, 1} {
		got, ok := s.Pop()
		if !ok || got != want {
			t.Fatalf("Pop() = %d, %t, want %d, true", got, ok, want)
		}
	}

	if got, ok := s.Pop(); ok || got != 0 {
		t.Fatalf("Pop() on empty = %d, %t, want 0, false", got, ok)
	}
}

func TestStack_PopClearsSlot(t *testing.T) {
	t.Parallel()

	s := NewWithCapacity[*int](2)
	v := 7
	s.Push(&v)

	if _, ok := s.Pop(); !ok {
		t.Fatal("Pop() = false, want true")
	}
	if got := s.items[:1][0]; got != nil {
		t.Fatalf("popped slot = %v, want nil", got)
	}
}
