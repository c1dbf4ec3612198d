package union

import (
	"fmt"
	"reflect"

	"github.com/wippyai/union/typeid"
)

type objectConverter[T any] struct {
	typ reflect.Type
	id  typeid.ID
}

// NewObjectConverter returns a converter that keeps T in the reference slot.
// It accepts any T; pointer-free types registered this way are boxed on every
// ToUnion. Reference values come back as the same object, not a copy.
func NewObjectConverter[T any]() Converter[T] {
	return &objectConverter[T]{
		typ: reflect.TypeFor[T](),
		id:  typeid.Of[T](),
	}
}

func (c *objectConverter[T]) ID() typeid.ID       { return c.id }
func (c *objectConverter[T]) Type() reflect.Type  { return c.typ }
func (c *objectConverter[T]) Kind() ConverterKind { return KindObject }

func (c *objectConverter[T]) ToUnion(v T) Union {
	u := Union{id: c.id}
	u.payload.SetRef(v)
	return u
}

func (c *objectConverter[T]) ToTyped(v T) Typed[T] {
	return Typed[T]{c: c, u: c.ToUnion(v)}
}

func (c *objectConverter[T]) TryGetValue(u Union) (T, bool) {
	var zero T
	if u.id != c.id {
		return zero, false
	}
	ref := u.payload.Ref()
	if ref == nil {
		// nil interface values of an interface T
		return zero, true
	}
	v, ok := ref.(T)
	return v, ok
}

func (c *objectConverter[T]) GetValue(u Union) T {
	v, _ := c.TryGetValue(u)
	return v
}

func (c *objectConverter[T]) TrySetValueTo(u Union, dest *T) bool {
	v, ok := c.TryGetValue(u)
	return setTo(dest, v, ok)
}

func (c *objectConverter[T]) ToString(u Union) string {
	if u.id != c.id {
		return ""
	}
	ref := u.payload.Ref()
	if ref == nil {
		return "<nil>"
	}
	return fmt.Sprint(ref)
}

func (c *objectConverter[T]) Box(u Union) (any, bool) {
	if u.id != c.id {
		return nil, false
	}
	return u.payload.Ref(), true
}
