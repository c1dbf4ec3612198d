package union

import (
	"fmt"
	"reflect"

	"github.com/wippyai/union/errors"
	"github.com/wippyai/union/payload"
	"github.com/wippyai/union/payload/layout"
	"github.com/wippyai/union/typeid"
)

type inlineConverter[T any] struct {
	typ    reflect.Type
	format func(T) string
	id     typeid.ID
}

// NewInlineConverter returns a converter that copies T into payload bytes.
// T must be pointer-free and no larger than capacity, which itself must be a
// valid payload capacity.
func NewInlineConverter[T any](capacity int) (Converter[T], error) {
	if err := payload.ValidateCapacity(capacity); err != nil {
		return nil, err
	}

	t := reflect.TypeFor[T]()
	info := layout.Of(t)
	if !info.PointerFree {
		return nil, errors.NotInline(errors.PhaseRegister, t.String(), info.PointerPath)
	}
	if !info.Fits(capacity) {
		return nil, errors.CapacityExceeded(errors.PhaseRegister, t.String(), int(info.Size), capacity)
	}
	return newInlineConverter[T](nil), nil
}

// newInlineConverter skips validation; callers have checked the layout.
func newInlineConverter[T any](format func(T) string) *inlineConverter[T] {
	if format == nil {
		format = sprint[T]
	}
	return &inlineConverter[T]{
		typ:    reflect.TypeFor[T](),
		format: format,
		id:     typeid.Of[T](),
	}
}

func (c *inlineConverter[T]) ID() typeid.ID       { return c.id }
func (c *inlineConverter[T]) Type() reflect.Type  { return c.typ }
func (c *inlineConverter[T]) Kind() ConverterKind { return KindInline }

func (c *inlineConverter[T]) ToUnion(v T) Union {
	u := Union{id: c.id}
	payload.Store(&u.payload, v)
	return u
}

func (c *inlineConverter[T]) ToTyped(v T) Typed[T] {
	return Typed[T]{c: c, u: c.ToUnion(v)}
}

func (c *inlineConverter[T]) TryGetValue(u Union) (T, bool) {
	if u.id != c.id {
		var zero T
		return zero, false
	}
	return payload.Load[T](&u.payload), true
}

func (c *inlineConverter[T]) GetValue(u Union) T {
	v, _ := c.TryGetValue(u)
	return v
}

func (c *inlineConverter[T]) TrySetValueTo(u Union, dest *T) bool {
	v, ok := c.TryGetValue(u)
	return setTo(dest, v, ok)
}

func (c *inlineConverter[T]) ToString(u Union) string {
	v, ok := c.TryGetValue(u)
	if !ok {
		return ""
	}
	return c.format(v)
}

func (c *inlineConverter[T]) Box(u Union) (any, bool) {
	v, ok := c.TryGetValue(u)
	if !ok {
		return nil, false
	}
	return v, true
}

func sprint[T any](v T) string {
	return fmt.Sprint(v)
}

// setTo writes v to dest when ok. A nil dest reports false.
func setTo[T any](dest *T, v T, ok bool) bool {
	if !ok || dest == nil {
		return false
	}
	*dest = v
	return true
}
