package union

import (
	"reflect"

	"github.com/wippyai/union/typeid"
)

// ConverterKind names the storage strategy of a converter.
type ConverterKind uint8

const (
	KindInline ConverterKind = iota
	KindString
	KindObject
	KindUndefined
	KindCustom
)

var converterKindNames = [...]string{
	KindInline:    "inline",
	KindString:    "string",
	KindObject:    "object",
	KindUndefined: "undefined",
	KindCustom:    "custom",
}

func (k ConverterKind) String() string {
	if int(k) < len(converterKindNames) {
		return converterKindNames[k]
	}
	return "unknown"
}

// Erased is the part of a converter that does not mention its element type.
// The registry stores converters behind this interface so that a Union can be
// formatted or boxed knowing only its stamped identifier.
type Erased interface {
	// ID returns the identifier this converter stamps and accepts.
	ID() typeid.ID

	// Type returns the element type.
	Type() reflect.Type

	// Kind returns the storage strategy.
	Kind() ConverterKind

	// ToString formats the value held by u. It returns "" when u holds a
	// different type.
	ToString(u Union) string

	// Box returns the value held by u as an interface value.
	Box(u Union) (any, bool)
}

// Converter moves values of type T in and out of a Union.
//
// Converters are stateless after construction and safe for concurrent use.
// Reads check the union's stamped identifier before touching the payload, so a
// mismatch is always reported and never reinterprets foreign bytes.
type Converter[T any] interface {
	Erased

	// ToUnion stores v in a new Union.
	ToUnion(v T) Union

	// ToTyped stores v in a new Typed[T].
	ToTyped(v T) Typed[T]

	// GetValue returns the value held by u, or the zero T on mismatch.
	// It cannot tell a stored zero from a mismatch; use TryGetValue for that.
	GetValue(u Union) T

	// TryGetValue returns the value held by u and whether u held a T.
	TryGetValue(u Union) (T, bool)

	// TrySetValueTo writes the value held by u to dest. dest is left
	// untouched on mismatch.
	TrySetValueTo(u Union, dest *T) bool
}
