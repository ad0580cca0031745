// Package schema declares the shape of component types.
//
// A Schema is an ordered, named list of fields. Each field is a fixed-width
// primitive, a fixed-capacity string, or a fixed-length array of a
// primitive. Variable-shaped fields must declare their capacity up front so
// that a C-ABI layout can be computed without runtime data:
//
//	s, err := schema.New("Label",
//		schema.String("text", 32),
//		schema.Array("slots", schema.KindInt32, 10),
//	)
//
// Schema errors are build-time errors: they abort code generation and never
// reach the access layer. Schemas can also be imported from WIT records with
// FromWIT.
package schema
