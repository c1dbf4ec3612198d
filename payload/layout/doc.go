// Package layout classifies Go types for inline payload storage.
//
// This package computes size, alignment and pointer-freedom for a reflect.Type.
// These facts decide whether a value can be copied byte-for-byte into a payload
// or must be held through the payload's reference slot.
//
// # Layout Rules
//
//   - Scalars (bool, integers, floats, complex, uintptr) are pointer-free.
//   - Arrays and structs are pointer-free when every element or field is.
//   - Strings, pointers, slices, maps, channels, funcs and interfaces carry
//     pointers the garbage collector must see, so they never live in inline bytes.
//
// # Usage
//
//	info := layout.Of(reflect.TypeFor[T]())
//	if info.Fits(capacity) { ... }
//
// Results are cached per type and safe for concurrent use.
package layout
