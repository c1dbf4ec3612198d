package union

import "github.com/wippyai/union/typeid"

// Package-level shortcuts on the default registry.

// Lookup returns the default registry's converter for T.
func Lookup[T any]() Converter[T] {
	return ConverterOf[T](Default())
}

// From stores v in a Union.
func From[T any](v T) Union {
	return Lookup[T]().ToUnion(v)
}

// FromTyped stores v in a Typed[T].
func FromTyped[T any](v T) Typed[T] {
	return Lookup[T]().ToTyped(v)
}

// Get returns the T held by u, or the zero T when u holds something else.
func Get[T any](u Union) T {
	return Lookup[T]().GetValue(u)
}

// TryGet returns the T held by u and whether u held a T.
func TryGet[T any](u Union) (T, bool) {
	return Lookup[T]().TryGetValue(u)
}

// TrySetTo writes the T held by u to dest and reports whether it did.
func TrySetTo[T any](u Union, dest *T) bool {
	return Lookup[T]().TrySetValueTo(u, dest)
}

// Is reports whether u is stamped with T's identity. It does not resolve a
// converter.
func Is[T any](u Union) bool {
	return u.id.IsValid() && u.id == typeid.Of[T]()
}
