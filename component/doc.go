// Package component binds Go struct types to component schemas.
//
// A Descriptor[T] owns one schema, its C-ABI layout, and the binding from
// schema fields to the fields of T. Binding uses reflection once, in New;
// every Read and Write afterwards copies bytes through precomputed offsets
// with no reflection and no allocation (except for slice-typed array fields,
// which are allocated on first read).
//
// Schema fields bind to exported struct fields by:
//  1. the ecs:"name" struct tag
//  2. a case-insensitive name match
//  3. the snake_case form of the Go name
//
// Go field types must match the schema exactly: bool, int8..uint64, float32
// and float64 for primitives (named types with the same kind are accepted),
// string for strings, and [N]E or []E for arrays of length N.
//
// The Registry is the explicit registration table: generated code registers
// every descriptor once at startup and Bind forwards size and alignment to
// the native engine.
package component
