// Package layout computes C-ABI struct layouts for component schemas.
//
// The algorithm matches what a C compiler does for a plain struct: fields are
// placed in declaration order, each at the next offset that is a multiple of
// its natural alignment, and the total size is rounded up to the largest
// field alignment so that arrays of the struct keep every element aligned.
//
//	s := schema.MustNew("Position", schema.Float32("x"), schema.Float32("y"))
//	l, _ := layout.Calculate(s)
//	// l.Size == 8, l.Align == 4, offsets {0, 4}
//
// A schema with no fields gets a one-byte placeholder (Size 1, Align 1)
// because a native engine cannot store zero-sized columns.
package layout
