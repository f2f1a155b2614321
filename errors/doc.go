// Package errors provides structured error types for the borsh codecs.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the field path inside the value being processed, the Go type
// and codec involved, and an optional cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
//		Path("results", "losses").
//		GoType("string").
//		Codec("i32").
//		Detail("cannot encode string as integer").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.MalformedTag(errors.PhaseDecode, path, 7, "option")
//	err := errors.OutOfBounds(errors.PhaseDecode, path, 10, 4, 8)
//
// All errors implement the standard error interface and support errors.Is/As.
// A target with an empty Phase matches any phase:
//
//	errors.Is(err, &errors.Error{Kind: errors.KindMalformedTag})
package errors
