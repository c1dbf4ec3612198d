package union

import (
	"reflect"

	"github.com/wippyai/union/typeid"
)

// stringConverter keeps strings in the reference slot under the identity of
// string itself, so formatting returns the string directly.
type stringConverter struct {
	id typeid.ID
}

func newStringConverter() *stringConverter {
	return &stringConverter{id: typeid.Of[string]()}
}

func (c *stringConverter) ID() typeid.ID       { return c.id }
func (c *stringConverter) Type() reflect.Type  { return reflect.TypeFor[string]() }
func (c *stringConverter) Kind() ConverterKind { return KindString }

func (c *stringConverter) ToUnion(v string) Union {
	u := Union{id: c.id}
	u.payload.SetRef(v)
	return u
}

func (c *stringConverter) ToTyped(v string) Typed[string] {
	return Typed[string]{c: c, u: c.ToUnion(v)}
}

func (c *stringConverter) TryGetValue(u Union) (string, bool) {
	if u.id != c.id {
		return "", false
	}
	s, _ := u.payload.Ref().(string)
	return s, true
}

func (c *stringConverter) GetValue(u Union) string {
	s, _ := c.TryGetValue(u)
	return s
}

func (c *stringConverter) TrySetValueTo(u Union, dest *string) bool {
	s, ok := c.TryGetValue(u)
	return setTo(dest, s, ok)
}

func (c *stringConverter) ToString(u Union) string {
	return c.GetValue(u)
}

func (c *stringConverter) Box(u Union) (any, bool) {
	if u.id != c.id {
		return nil, false
	}
	return u.payload.Ref(), true
}
