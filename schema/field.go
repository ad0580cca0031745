package schema

import "strconv"

// Field is one named member of a component schema.
//
// Capacity is the byte capacity of a string field (terminator included) or
// the element count of an array field. It is zero for primitives.
type Field struct {
	Name     string
	Kind     Kind
	Elem     Kind
	Capacity uint32
}

// Bool declares a bool field.
func Bool(name string) Field {
	return Field{Name: name, Kind: KindBool}
}

// Int8 declares an int8 field.
func Int8(name string) Field {
	return Field{Name: name, Kind: KindInt8}
}

// Uint8 declares an uint8 field.
func Uint8(name string) Field {
	return Field{Name: name, Kind: KindUint8}
}

// Int16 declares an int16 field.
func Int16(name string) Field {
	return Field{Name: name, Kind: KindInt16}
}

// Uint16 declares an uint16 field.
func Uint16(name string) Field {
	return Field{Name: name, Kind: KindUint16}
}

// Int32 declares an int32 field.
func Int32(name string) Field {
	return Field{Name: name, Kind: KindInt32}
}

// Uint32 declares an uint32 field.
func Uint32(name string) Field {
	return Field{Name: name, Kind: KindUint32}
}

// Int64 declares an int64 field.
func Int64(name string) Field {
	return Field{Name: name, Kind: KindInt64}
}

// Uint64 declares an uint64 field.
func Uint64(name string) Field {
	return Field{Name: name, Kind: KindUint64}
}

// Float32 declares a float32 field.
func Float32(name string) Field {
	return Field{Name: name, Kind: KindFloat32}
}

// Float64 declares a float64 field.
func Float64(name string) Field {
	return Field{Name: name, Kind: KindFloat64}
}

// Primitive declares a scalar field of kind k.
func Primitive(name string, k Kind) Field {
	return Field{Name: name, Kind: k}
}

// String declares a fixed-capacity string. Capacity must be a power of two.
func String(name string, capacity uint32) Field {
	return Field{Name: name, Kind: KindString, Capacity: capacity}
}

// Array declares a fixed-length array of a primitive kind.
func Array(name string, elem Kind, length uint32) Field {
	return Field{Name: name, Kind: KindArray, Elem: elem, Capacity: length}
}

// Size returns the number of bytes the field reserves in a component.
func (f Field) Size() uint32 {
	switch f.Kind {
	case KindString:
		return f.Capacity
	case KindArray:
		return f.Elem.Size() * f.Capacity
	default:
		return f.Kind.Size()
	}
}

// Align returns the natural alignment of the field.
func (f Field) Align() uint32 {
	switch f.Kind {
	case KindString:
		return 1
	case KindArray:
		return f.Elem.Size()
	default:
		return f.Kind.Size()
	}
}

// TypeString renders the field type as it appears in declarations,
// e.g. "float32", "string[32]", "int32[10]".
func (f Field) TypeString() string {
	switch f.Kind {
	case KindString:
		return "string[" + strconv.FormatUint(uint64(f.Capacity), 10) + "]"
	case KindArray:
		return f.Elem.String() + "[" + strconv.FormatUint(uint64(f.Capacity), 10) + "]"
	default:
		return f.Kind.String()
	}
}
