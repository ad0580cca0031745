// Package errors provides structured error types for the ecs-abi module.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: component name, field path, Go/schema type
// names, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseBind, errors.KindTypeMismatch).
//		Component("Position").
//		Path("x").
//		GoType("int32").
//		SchemaType("float32").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.MissingCapacity("Label", "text", "string")
//	err := errors.OutOfBounds(errors.PhaseAccess, path, 10, 5)
//
// Build-time phases (schema, layout, generate) abort code generation. Access
// errors are returned to the immediate caller. Hook faults never propagate:
// they are wrapped with Fault and handed to a fault sink.
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
