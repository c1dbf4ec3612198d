package payload

import (
	"reflect"
	"unsafe"

	"github.com/wippyai/union/errors"
)

const (
	WordSize        = 8
	DefaultCapacity = 8
	CapacityStep    = 8
	MaxCapacity     = 32
)

const words = MaxCapacity / WordSize

// Payload is inline byte storage plus one reference slot.
// The zero value is empty and ready to use.
type Payload struct {
	ref   any
	words [words]uint64
}

// Store copies v into the inline bytes, clearing whatever was there before.
// T must be pointer-free; sizes above MaxCapacity panic.
func Store[T any](p *Payload, v T) {
	if unsafe.Sizeof(v) > MaxCapacity {
		panic(errors.CapacityExceeded(errors.PhaseEncode, reflect.TypeFor[T]().String(),
			int(unsafe.Sizeof(v)), MaxCapacity))
	}
	p.words = [words]uint64{}
	*(*T)(unsafe.Pointer(&p.words)) = v
}

// Load reinterprets the inline bytes as T.
// The caller must have verified that a T was stored.
func Load[T any](p *Payload) T {
	var zero T
	if unsafe.Sizeof(zero) > MaxCapacity {
		panic(errors.CapacityExceeded(errors.PhaseDecode, reflect.TypeFor[T]().String(),
			int(unsafe.Sizeof(zero)), MaxCapacity))
	}
	return *(*T)(unsafe.Pointer(&p.words))
}

// SetRef stores v in the reference slot.
func (p *Payload) SetRef(v any) {
	p.ref = v
}

// Ref returns the reference slot.
func (p *Payload) Ref() any {
	return p.ref
}

// Reset clears inline bytes and the reference slot.
func (p *Payload) Reset() {
	*p = Payload{}
}

// Bytes returns a copy of the inline storage for diagnostics.
func (p *Payload) Bytes() [MaxCapacity]byte {
	return *(*[MaxCapacity]byte)(unsafe.Pointer(&p.words))
}

// Equal reports whether both payloads hold the same inline bytes and the same
// reference. References compare by identity: pointers, maps, slices and funcs
// by address, other values with ==.
func (p *Payload) Equal(o *Payload) bool {
	return p.words == o.words && sameRef(p.ref, o.ref)
}

func sameRef(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta.Comparable() {
		// Comparable struct or array types can still panic on == when they
		// hold non-comparable interface values.
		va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
		return safeEqual(va, vb)
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch ta.Kind() {
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len() && va.Cap() == vb.Cap()
	case reflect.Map, reflect.Func:
		return va.Pointer() == vb.Pointer()
	default:
		return false
	}
}

func safeEqual(a, b reflect.Value) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a.Equal(b)
}

// ValidateCapacity checks that capacity is a usable inline size.
func ValidateCapacity(capacity int) error {
	if capacity <= 0 || capacity > MaxCapacity || capacity%CapacityStep != 0 {
		return errors.InvalidCapacity(capacity, CapacityStep, MaxCapacity)
	}
	return nil
}
