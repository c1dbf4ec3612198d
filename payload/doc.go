// Package payload provides the fixed-capacity storage behind a union value.
//
// A Payload holds up to MaxCapacity bytes of pointer-free data inline plus one
// reference slot:
//
//	┌───────────────────────────────────────┬───────────┐
//	│ inline words [4]uint64 (32 bytes)     │ ref (any) │
//	└───────────────────────────────────────┴───────────┘
//
// Inline bytes start at offset 0 and are 8-byte aligned, so any pointer-free
// value up to the capacity can be reinterpreted in place. Pointers never go in
// the inline words: the garbage collector does not scan them. Strings, pointers
// and other reference values go in the ref slot instead.
//
// # Capacity
//
//	Constant         Value  Meaning
//	─────────────────────────────────────────────────────────
//	DefaultCapacity  8      int64/float64/uint64 and smaller
//	CapacityStep     8      capacities grow in whole words
//	MaxCapacity      32     hard ceiling; size of the inline storage
//
// A registry chooses its working capacity between CapacityStep and MaxCapacity.
// Storage is always MaxCapacity bytes; the capacity only decides which types a
// registry accepts for inline storage.
//
// # Safety
//
// A Payload does not know what it holds. Load reinterprets bytes as whatever
// type the caller names. Callers must check the type identity stamped next to
// the payload before calling Load, and must only Store pointer-free types.
package payload
