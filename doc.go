// Package union provides a type-erased value container for Go.
//
// A Union holds one value of any type together with an identifier of that
// type. Small pointer-free values are copied into the union's inline payload
// without allocation; strings and reference values are held through a single
// reference slot. A process-wide registry maps each type identifier to the
// converter that knows how to move values of that type in and out of a union.
//
// # Architecture Overview
//
//	union/            Union, Typed[T], converters, Registry
//	├── typeid/       stable per-type integer identifiers
//	├── payload/      inline byte storage plus reference slot
//	│   └── layout/   size, alignment and pointer-freedom of Go types
//	├── table/        handle table of unions
//	├── errors/       structured error types
//	└── cmd/unioninspect  registry and encoding inspector
//
// # Quick Start
//
//	u := union.From(int32(42))
//	v, ok := union.TryGet[int32](u)   // 42, true
//	f, ok := union.TryGet[float32](u) // 0, false
//
//	s := union.From("hello")
//	fmt.Println(s)                    // hello
//
// # Converter Resolution
//
// The first time a type is used the registry picks a converter and publishes
// it for the lifetime of the registry:
//
//	Type                                 Converter
//	──────────────────────────────────────────────────
//	string                               string (ref slot)
//	holds pointers (ptr, slice, map ...)  object (ref slot)
//	pointer-free, size <= capacity       inline (payload bytes)
//	pointer-free, size >  capacity       undefined (all reads fail)
//
// Register a converter before first use to override the default. The first
// registration for a type wins; later ones return false.
//
//	union.MustRegisterInline[Vec3](reg)       // fails fast when Vec3 does not fit
//	union.RegisterObject[Vec3](reg)           // box deliberately
//	union.Register(reg, union.NewCustomConverter(enc, dec, nil))
//
// # Reads Never Panic
//
// TryGet reports false when the union holds a different type. Get returns the
// zero value instead. Neither logs: speculative unwrapping is normal.
//
// # Thread Safety
//
// Registry and type identifiers are safe for concurrent use. Concurrent first
// use of a type publishes exactly one converter. Union and Typed values are
// plain values; every goroutine owns its copies.
//
// # Isolation
//
// Default returns the process-wide registry used by From, Get and friends.
// Tests and embedding hosts construct their own with NewRegistry. Type
// identifiers are process-wide and shared by all registries.
package union
