// Package typeid assigns stable process-lifetime identifiers to Go types.
//
// Every distinct type gets exactly one ID on first use. IDs are dense integers
// allocated from a monotonic counter starting at 1; 0 is reserved as Invalid.
// An ID is never reused or freed while the process lives.
//
//	id := typeid.Of[int32]()
//	id == typeid.Of[int32]()   // always true
//	id != typeid.Of[float32]() // always true
//
// Lookups of already-seen types are lock-free. The first lookup of a type takes
// a short mutex so that concurrent first use of the same type observes a single
// identifier and the counter has no gaps.
//
// Interface types are identified as themselves: Of[io.Reader]() differs from the
// ID of any concrete type implementing io.Reader.
package typeid
