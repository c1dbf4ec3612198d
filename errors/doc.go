// Package errors provides structured error types for the union library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the offending Go type, the field path that disqualified it
// and an optional cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseRegister, errors.KindCapacity).
//		GoType("main.Matrix").
//		Detail("size %d exceeds payload capacity %d", 256, 8).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.CapacityExceeded(errors.PhaseRegister, "main.Matrix", 256, 8)
//	err := errors.NotInline(errors.PhaseRegister, "main.Node", []string{"Node", "next"})
//
// Identity mismatches on read are not errors: the converter APIs report them as
// boolean results. All errors implement the standard error interface and support
// errors.Is/As.
package errors
