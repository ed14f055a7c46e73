// Package errors provides structured error types for the structpack library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: field path, Go/schema type names, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
//		Path("user", "age").
//		GoType("string").
//		SchemaType("int32").
//		Detail("cannot encode string as integer").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.InvalidSize(errors.PhaseEncode, "array", -1)
//	err := errors.RecursiveType("record[node]")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
