// Package mutation edits value trees in place.
//
// Containers are mutated through their pointers; no operation allocates a
// new root. Setting a value to value.Undefined removes the target.
package mutation

import (
	"errors"
	"fmt"

	"github.com/jacoelho/jdoc/internal/pathing"
	"github.com/jacoelho/jdoc/internal/value"
)

// MaxGrowth bounds how many slots a single write may add past the end of an
// array.
const MaxGrowth = 1 << 20

var (
	// ErrNoTarget indicates a path whose parent is missing, a scalar, or an
	// array addressed by something other than an index.
	ErrNoTarget = errors.New("mutation: no container at path")

	// ErrIndexTooFar indicates a write that would grow an array by MaxGrowth
	// or more slots.
	ErrIndexTooFar = errors.New("mutation: index too far past the end of the array")
)

// ObjectSet assigns v to key and returns the previous value, or
// value.Undefined when the key was absent.
//
// An existing member keeps its position. When v is undefined the member is
// removed and later members shift left. Only the last member of duplicate
// keys is touched.
func ObjectSet(obj *value.Object, key string, v value.Value) value.Value {
	i, found := obj.Lookup(key)
	if !found {
		if !value.IsUndefined(v) {
			obj.Members = append(obj.Members, value.Member{Key: key, Value: v})
		}
		return value.Undefined{}
	}

	old := obj.Members[i].Value
	if value.IsUndefined(v) {
		copy(obj.Members[i:], obj.Members[i+1:])
		obj.Members[len(obj.Members)-1] = value.Member{}
		obj.Members = obj.Members[:len(obj.Members)-1]
		return old
	}

	obj.Members[i] = value.Member{Key: key, Value: v}
	return old
}

// ArraySet stores v at index and returns the previous element, or
// value.Undefined when index was past the end.
//
// Writing past the end grows the array and fills the gap with null; a gap of
// MaxGrowth or more fails with ErrIndexTooFar. Undefined is stored as null
// so arrays never hold holes. A negative index changes nothing.
func ArraySet(arr *value.Array, index int, v value.Value) (value.Value, error) {
	if index < 0 {
		return value.Undefined{}, nil
	}
	if value.IsUndefined(v) {
		v = value.Null{}
	}

	if index < len(arr.Elements) {
		old := arr.Elements[index]
		arr.Elements[index] = v
		return old, nil
	}

	if err := checkGrowth(arr, index); err != nil {
		return value.Undefined{}, err
	}
	padNulls(arr, index)
	arr.Elements = append(arr.Elements, v)
	return value.Undefined{}, nil
}

func checkGrowth(arr *value.Array, index int) error {
	if index-len(arr.Elements) >= MaxGrowth {
		return fmt.Errorf("%w: %d with length %d", ErrIndexTooFar, index, len(arr.Elements))
	}
	return nil
}

// padNulls appends nulls until the array has length n.
func padNulls(arr *value.Array, n int) {
	for len(arr.Elements) < n {
		arr.Elements = append(arr.Elements, value.Null{})
	}
}

// ArraySplice removes removeCount elements starting at start, inserts the
// given values in their place and returns the removed elements.
//
// start is clamped to the array length and removeCount to what is
// available after start.
func ArraySplice(arr *value.Array, start, removeCount int, insert ...value.Value) []value.Value {
	n := len(arr.Elements)
	start = clamp(start, 0, n)
	removeCount = clamp(removeCount, 0, n-start)

	removed := make([]value.Value, removeCount)
	copy(removed, arr.Elements[start:start+removeCount])

	tail := start + removeCount
	newLen := n - removeCount + len(insert)

	if delta := len(insert) - removeCount; delta > 0 {
		arr.Elements = append(arr.Elements, make([]value.Value, delta)...)
	}
	copy(arr.Elements[start+len(insert):], arr.Elements[tail:n])
	copy(arr.Elements[start:], insert)

	for i := newLen; i < n; i++ {
		arr.Elements[i] = nil
	}
	arr.Elements = arr.Elements[:newLen]

	for i := start; i < start+len(insert); i++ {
		if value.IsUndefined(arr.Elements[i]) {
			arr.Elements[i] = value.Null{}
		}
	}

	return removed
}

// ArrayInsert inserts values before index. Past the end the gap is filled
// with null first, as ArraySet does.
func ArrayInsert(arr *value.Array, index int, values ...value.Value) error {
	if index < 0 {
		return nil
	}
	if index > len(arr.Elements) {
		if err := checkGrowth(arr, index); err != nil {
			return err
		}
		padNulls(arr, index)
	}
	ArraySplice(arr, index, 0, values...)
	return nil
}

// ArrayRemove removes the element at index and returns it, or
// value.Undefined when index is out of range.
func ArrayRemove(arr *value.Array, index int) value.Value {
	if index < 0 || index >= len(arr.Elements) {
		return value.Undefined{}
	}
	return ArraySplice(arr, index, 1)[0]
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// target resolves the container that the last component of p addresses.
func target(root value.Value, p pathing.Path) (value.Value, string, error) {
	if p.Len() == 0 {
		return nil, "", fmt.Errorf("%w: empty path", ErrNoTarget)
	}

	parentPath, last := p.Parent()
	parent, ok := pathing.Lookup(root, parentPath)
	if !ok {
		return nil, "", fmt.Errorf("%w: %s", ErrNoTarget, p)
	}
	return parent, last, nil
}

// arrayTarget is target restricted to arrays addressed by a valid index.
func arrayTarget(root value.Value, p pathing.Path) (*value.Array, int, error) {
	parent, last, err := target(root, p)
	if err != nil {
		return nil, 0, err
	}

	arr, ok := parent.(*value.Array)
	if !ok {
		return nil, 0, fmt.Errorf("%w: %s is not an array element", ErrNoTarget, p)
	}
	index, ok := pathing.ParseIndex(last)
	if !ok {
		return nil, 0, fmt.Errorf("%w: %q is not an index", ErrNoTarget, last)
	}
	return arr, index, nil
}

// Set assigns v at p inside root and returns the previous value.
//
// The parent of the last component must resolve to a container. ErrNoTarget
// is returned when the parent is missing or a scalar, or when the last
// component is not a valid index for an array parent; root is left untouched
// then.
func Set(root value.Value, p pathing.Path, v value.Value) (value.Value, error) {
	parent, last, err := target(root, p)
	if err != nil {
		return value.Undefined{}, err
	}

	switch node := parent.(type) {
	case *value.Object:
		return ObjectSet(node, last, v), nil
	case *value.Array:
		index, ok := pathing.ParseIndex(last)
		if !ok {
			return value.Undefined{}, fmt.Errorf("%w: %q is not an index", ErrNoTarget, last)
		}
		return ArraySet(node, index, v)
	default:
		return value.Undefined{}, fmt.Errorf("%w: %s", ErrNoTarget, p)
	}
}

// Delete removes the value at p. It is Set with value.Undefined, so an
// array element becomes null rather than being removed.
func Delete(root value.Value, p pathing.Path) (value.Value, error) {
	return Set(root, p, value.Undefined{})
}

// Insert places v before the array element addressed by p, shifting later
// elements right.
func Insert(root value.Value, p pathing.Path, v value.Value) error {
	arr, index, err := arrayTarget(root, p)
	if err != nil {
		return err
	}
	return ArrayInsert(arr, index, v)
}

// Remove takes the array element addressed by p out of its array, shifting
// later elements left. It returns value.Undefined when the index is past the
// end.
func Remove(root value.Value, p pathing.Path) (value.Value, error) {
	arr, index, err := arrayTarget(root, p)
	if err != nil {
		return value.Undefined{}, err
	}
	return ArrayRemove(arr, index), nil
}

// Splice applies ArraySplice to the array found at p. It fails with
// ErrNoTarget when p does not resolve to an array.
func Splice(root value.Value, p pathing.Path, start, removeCount int, insert ...value.Value) ([]value.Value, error) {
	node, ok := pathing.Lookup(root, p)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoTarget, p)
	}
	arr, ok := node.(*value.Array)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not an array", ErrNoTarget, p)
	}
	return ArraySplice(arr, start, removeCount, insert...), nil
}
