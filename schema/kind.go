package schema

// Kind is the storage kind of one schema field.
type Kind uint8

const (
	KindBool Kind = iota
	KindInt8
	KindUint8
	KindInt16
	KindUint16
	KindInt32
	KindUint32
	KindInt64
	KindUint64
	KindFloat32
	KindFloat64
	KindString
	KindArray
)

var kindNames = [...]string{
	KindBool:    "bool",
	KindInt8:    "int8",
	KindUint8:   "uint8",
	KindInt16:   "int16",
	KindUint16:  "uint16",
	KindInt32:   "int32",
	KindUint32:  "uint32",
	KindInt64:   "int64",
	KindUint64:  "uint64",
	KindFloat32: "float32",
	KindFloat64: "float64",
	KindString:  "string",
	KindArray:   "array",
}

var kindSizes = [...]uint32{
	KindBool:    1,
	KindInt8:    1,
	KindUint8:   1,
	KindInt16:   2,
	KindUint16:  2,
	KindInt32:   4,
	KindUint32:  4,
	KindInt64:   8,
	KindUint64:  8,
	KindFloat32: 4,
	KindFloat64: 8,
}

// aliases accepted by ParseKind in declaration files
var kindAliases = map[string]Kind{
	"i8":      KindInt8,
	"s8":      KindInt8,
	"byte":    KindInt8,
	"u8":      KindUint8,
	"i16":     KindInt16,
	"s16":     KindInt16,
	"short":   KindInt16,
	"u16":     KindUint16,
	"i32":     KindInt32,
	"s32":     KindInt32,
	"int":     KindInt32,
	"u32":     KindUint32,
	"i64":     KindInt64,
	"s64":     KindInt64,
	"long":    KindInt64,
	"u64":     KindUint64,
	"f32":     KindFloat32,
	"float":   KindFloat32,
	"f64":     KindFloat64,
	"double":  KindFloat64,
	"boolean": KindBool,
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsPrimitive reports whether k is a fixed-width scalar.
func (k Kind) IsPrimitive() bool {
	return k <= KindFloat64
}

// IsValid reports whether k is a declared kind.
func (k Kind) IsValid() bool {
	return k <= KindArray
}

// Size returns the natural size of a primitive kind, which is also its
// alignment. It returns 0 for string and array.
func (k Kind) Size() uint32 {
	if k.IsPrimitive() {
		return kindSizes[k]
	}
	return 0
}

// ParseKind resolves a kind by canonical name or common alias.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	k, ok := kindAliases[name]
	return k, ok
}
