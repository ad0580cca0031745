// Package codegen generates Go source for declared components.
//
// For every component the output contains:
//   - a struct type tagged with the schema field names
//   - the schema and a descriptor built from it
//   - size, alignment and offset constants
//   - a typed view wrapper with a getter and chained setter per field
//
// plus one Register function that adds every descriptor to a
// component.Registry. Layout errors and invalid declarations abort
// generation; nothing is written for a partially valid input.
package codegen
