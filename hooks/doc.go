// Package hooks marshals native lifecycle hook invocations into typed Go
// callbacks.
//
// The engine invokes a hook with raw pointers into component storage and a
// count. A Marshaler reads the affected instances into a staged []T,
// calls the Go callback, and writes the results back where the hook's
// semantics allow mutation:
//
//	hook        read            write back
//	ctor        ptr             ptr
//	dtor        ptr             -
//	on_add      ptr             ptr
//	on_set      ptr             ptr
//	on_remove   ptr             -
//	on_replace  old, new        new
//	copy        dst, src        dst
//	move        dst, src        dst
//	copy_ctor   dst, src        dst
//	move_ctor   dst, src        dst
//
// A zero count or an unset slot returns without touching memory. Panics and
// errors raised by callbacks are caught at this boundary and handed to the
// FaultSink; nothing unwinds into the foreign caller.
//
// HostModule exposes every set slot as a wazero host function so that wasm
// guests can drive the same marshalers.
package hooks
