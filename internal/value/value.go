// Package value defines the in-memory document tree.
//
// A document is a tree of Value nodes. Containers own their children
// exclusively; no node is shared between two parents or two trees.
package value

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	KindUndefined Kind = iota
	KindNull
	KindBoolean
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the type name printed by the type command.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "undefined"
	}
}

// Value is one node of a document tree. The set of implementations is
// closed: Undefined, Null, Boolean, Number, String, *Array and *Object.
type Value interface {
	Kind() Kind
	sealed()
}

type (
	// Undefined marks an absent value. Setting it deletes an object member.
	// The parser never produces it and the printer refuses it.
	Undefined struct{}

	Null struct{}

	Boolean bool

	// Number holds the exact text matched by the scanner.
	Number string

	// String holds decoded bytes, which need not be valid UTF-8.
	String string
)

func (Undefined) Kind() Kind { return KindUndefined }
func (Null) Kind() Kind      { return KindNull }
func (Boolean) Kind() Kind   { return KindBoolean }
func (Number) Kind() Kind    { return KindNumber }
func (String) Kind() Kind    { return KindString }

func (Undefined) sealed() {}
func (Null) sealed()      {}
func (Boolean) sealed()   {}
func (Number) sealed()    {}
func (String) sealed()    {}

// IsUndefined reports whether v is nil or the Undefined sentinel.
func IsUndefined(v Value) bool {
	if v == nil {
		return true
	}
	return v.Kind() == KindUndefined
}

// KindOf is Kind that tolerates nil.
func KindOf(v Value) Kind {
	if v == nil {
		return KindUndefined
	}
	return v.Kind()
}
