package union

import (
	"reflect"

	"github.com/wippyai/union/errors"
	"github.com/wippyai/union/payload"
	"github.com/wippyai/union/typeid"
)

// EncodeFunc writes v into an empty payload.
type EncodeFunc[T any] func(v T, p *payload.Payload)

// DecodeFunc reads a T back from a payload written by the matching EncodeFunc.
type DecodeFunc[T any] func(p *payload.Payload) (T, bool)

type customConverter[T any] struct {
	typ    reflect.Type
	encode EncodeFunc[T]
	decode DecodeFunc[T]
	format func(T) string
	id     typeid.ID
}

// NewCustomConverter adapts a pair of functions into a Converter for T.
// Decode is only called after the union's identity matched T. A nil format
// uses fmt.Sprint.
//
// Example, keeping an oversized struct out of line:
//
//	c := union.NewCustomConverter(
//	    func(m Matrix, p *payload.Payload) { p.SetRef(&m) },
//	    func(p *payload.Payload) (Matrix, bool) {
//	        m, ok := p.Ref().(*Matrix)
//	        if !ok {
//	            return Matrix{}, false
//	        }
//	        return *m, true
//	    },
//	    nil,
//	)
//	union.Register(reg, c)
func NewCustomConverter[T any](encode EncodeFunc[T], decode DecodeFunc[T], format func(T) string) Converter[T] {
	if encode == nil || decode == nil {
		panic(errors.NilPointer(errors.PhaseRegister, "union.NewCustomConverter["+reflect.TypeFor[T]().String()+"]"))
	}
	if format == nil {
		format = sprint[T]
	}
	return &customConverter[T]{
		typ:    reflect.TypeFor[T](),
		encode: encode,
		decode: decode,
		format: format,
		id:     typeid.Of[T](),
	}
}

func (c *customConverter[T]) ID() typeid.ID       { return c.id }
func (c *customConverter[T]) Type() reflect.Type  { return c.typ }
func (c *customConverter[T]) Kind() ConverterKind { return KindCustom }

func (c *customConverter[T]) ToUnion(v T) Union {
	u := Union{id: c.id}
	c.encode(v, &u.payload)
	return u
}

func (c *customConverter[T]) ToTyped(v T) Typed[T] {
	return Typed[T]{c: c, u: c.ToUnion(v)}
}

func (c *customConverter[T]) TryGetValue(u Union) (T, bool) {
	if u.id != c.id {
		var zero T
		return zero, false
	}
	return c.decode(&u.payload)
}

func (c *customConverter[T]) GetValue(u Union) T {
	v, _ := c.TryGetValue(u)
	return v
}

func (c *customConverter[T]) TrySetValueTo(u Union, dest *T) bool {
	v, ok := c.TryGetValue(u)
	return setTo(dest, v, ok)
}

func (c *customConverter[T]) ToString(u Union) string {
	v, ok := c.TryGetValue(u)
	if !ok {
		return ""
	}
	return c.format(v)
}

func (c *customConverter[T]) Box(u Union) (any, bool) {
	v, ok := c.TryGetValue(u)
	if !ok {
		return nil, false
	}
	return v, true
}
