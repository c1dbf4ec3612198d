package union

import "github.com/wippyai/union/typeid"

// Typed is a Union whose element type is known statically. It remembers the
// Converter that produced it, so reads go back through the same registry's
// converter; the converter still checks the stamped identity on every read.
//
// The zero Typed holds nothing and every read reports a mismatch.
type Typed[T any] struct {
	c Converter[T]
	u Union
}

// Wrap views u as a Typed[T] read through the default registry. It does not
// validate u; a mismatch surfaces on the first read.
func Wrap[T any](u Union) Typed[T] {
	return Typed[T]{c: Lookup[T](), u: u}
}

// WrapIn is like Wrap but reads through r's converter for T.
func WrapIn[T any](r *Registry, u Union) Typed[T] {
	return Typed[T]{c: ConverterOf[T](r), u: u}
}

// Union discards the static type.
func (t Typed[T]) Union() Union {
	return t.u
}

// ID returns the identity stamped on the underlying union.
func (t Typed[T]) ID() typeid.ID {
	return t.u.id
}

// Converter returns the converter the value is read through, or nil for the
// zero Typed.
func (t Typed[T]) Converter() Converter[T] {
	return t.c
}

// IsValid reports whether the union actually holds a T.
func (t Typed[T]) IsValid() bool {
	return t.u.id.IsValid() && t.u.id == typeid.Of[T]()
}

// Get returns the value, or the zero T on mismatch.
func (t Typed[T]) Get() T {
	v, _ := t.TryGet()
	return v
}

// TryGet returns the value and whether the union held a T.
func (t Typed[T]) TryGet() (T, bool) {
	if t.c == nil {
		var zero T
		return zero, false
	}
	return t.c.TryGetValue(t.u)
}

// TrySetTo writes the value to dest when the union holds a T.
func (t Typed[T]) TrySetTo(dest *T) bool {
	if t.c == nil {
		return false
	}
	return t.c.TrySetValueTo(t.u, dest)
}

// String formats with T's converter. When the union holds something else it
// falls back to the default registry's view of the stamped type.
func (t Typed[T]) String() string {
	if t.c != nil && t.u.id == t.c.ID() {
		return t.c.ToString(t.u)
	}
	return t.u.String()
}
