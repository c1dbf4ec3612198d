package union

import (
	"reflect"

	"github.com/wippyai/union/payload"
	"github.com/wippyai/union/typeid"
)

// Union is a self-describing value: a payload stamped with the identifier of
// the type stored in it. The zero Union holds nothing and is not valid.
//
// Unions may be copied freely. Compare them with Equal; == can panic when the
// reference slot holds a non-comparable value.
type Union struct {
	payload payload.Payload
	id      typeid.ID
}

// Make assembles a union from an identifier and payload. It is meant for
// custom converters; other code should obtain unions through a Converter.
func Make(id typeid.ID, p payload.Payload) Union {
	return Union{payload: p, id: id}
}

// ID returns the identifier of the stored type.
func (u Union) ID() typeid.ID {
	return u.id
}

// Payload returns a copy of the underlying storage.
func (u Union) Payload() payload.Payload {
	return u.payload
}

// IsValid reports whether the union holds a value.
func (u Union) IsValid() bool {
	return u.id.IsValid()
}

// Type returns the stored type, or nil for an invalid union.
func (u Union) Type() reflect.Type {
	t, _ := typeid.TypeOf(u.id)
	return t
}

// Equal reports whether both unions hold the same type identity, the same
// inline bytes and the same reference.
func (u Union) Equal(o Union) bool {
	return u.id == o.id && u.payload.Equal(&o.payload)
}

// String renders the value through the converter the default registry has
// published for the stamped type. It never resolves one, so a type only
// known to another registry renders as "<type>"; use Registry.Format there.
func (u Union) String() string {
	return Default().Format(u)
}

// Value returns the stored value boxed in an interface, using the converter
// the default registry has published. It never resolves one; use
// Registry.Box for other registries.
func (u Union) Value() (any, bool) {
	return Default().Box(u)
}
