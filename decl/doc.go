// Package decl loads component declarations from TOML or YAML files.
//
// A declaration file lists components and their fields:
//
//	package = "game"
//
//	[[component]]
//	name = "Label"
//	fields = [
//	  { name = "text", kind = "string", capacity = 32 },
//	  { name = "slots", kind = "int32[10]" },
//	]
//
// Field kinds use the schema names (bool, int8..uint64, float32, float64,
// string, array) or their common aliases (i32, f32, double, ...). The forms
// "string[N]" and "E[N]" are shorthand for a capacity or an array length.
package decl
