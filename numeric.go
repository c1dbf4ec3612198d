package union

import (
	"strconv"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Formatters for the built-in inline converters. They skip fmt's reflection.

func formatBool(v bool) string {
	return strconv.FormatBool(v)
}

func formatSigned[T constraints.Signed](v T) string {
	return strconv.FormatInt(int64(v), 10)
}

func formatUnsigned[T constraints.Unsigned](v T) string {
	return strconv.FormatUint(uint64(v), 10)
}

func formatFloat[T constraints.Float](v T) string {
	return strconv.FormatFloat(float64(v), 'g', -1, int(unsafe.Sizeof(v))*8)
}

func formatComplex[T constraints.Complex](v T) string {
	return strconv.FormatComplex(complex128(v), 'g', -1, int(unsafe.Sizeof(v))*8)
}

// registerBuiltins publishes converters for the predeclared scalar types and
// string. Scalars wider than the registry capacity are left to resolution.
func registerBuiltins(r *Registry) {
	builtin(r, formatBool)
	builtin(r, formatSigned[int])
	builtin(r, formatSigned[int8])
	builtin(r, formatSigned[int16])
	builtin(r, formatSigned[int32])
	builtin(r, formatSigned[int64])
	builtin(r, formatUnsigned[uint])
	builtin(r, formatUnsigned[uint8])
	builtin(r, formatUnsigned[uint16])
	builtin(r, formatUnsigned[uint32])
	builtin(r, formatUnsigned[uint64])
	builtin(r, formatUnsigned[uintptr])
	builtin(r, formatFloat[float32])
	builtin(r, formatFloat[float64])
	builtin(r, formatComplex[complex64])
	builtin(r, formatComplex[complex128])

	r.publish(newStringConverter())
}

func builtin[T any](r *Registry, format func(T) string) {
	var zero T
	if int(unsafe.Sizeof(zero)) > r.capacity {
		return
	}
	r.publish(newInlineConverter(format))
}
