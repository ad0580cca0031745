package component

import (
	"bytes"
	"reflect"
	"unsafe"

	"github.com/wippyai/ecs-abi/internal/abi"
	"github.com/wippyai/ecs-abi/internal/bin"
	"github.com/wippyai/ecs-abi/schema"
)

// putScalar copies the Go value at p into dst. Go and the C ABI agree on the
// width of every primitive kind, so only the byte order needs care.
func putScalar(k schema.Kind, dst []byte, p unsafe.Pointer) {
	switch k {
	case schema.KindBool:
		bin.PutBool(dst, *(*bool)(p))
	case schema.KindInt8, schema.KindUint8:
		dst[0] = *(*uint8)(p)
	case schema.KindInt16, schema.KindUint16:
		bin.Put(dst, *(*uint16)(p))
	case schema.KindInt32, schema.KindUint32, schema.KindFloat32:
		bin.Put(dst, *(*uint32)(p))
	case schema.KindInt64, schema.KindUint64, schema.KindFloat64:
		bin.Put(dst, *(*uint64)(p))
	}
}

func getScalar(k schema.Kind, src []byte, p unsafe.Pointer) {
	switch k {
	case schema.KindBool:
		*(*bool)(p) = bin.Bool(src)
	case schema.KindInt8, schema.KindUint8:
		*(*uint8)(p) = src[0]
	case schema.KindInt16, schema.KindUint16:
		*(*uint16)(p) = bin.Get[uint16](src)
	case schema.KindInt32, schema.KindUint32, schema.KindFloat32:
		*(*uint32)(p) = bin.Get[uint32](src)
	case schema.KindInt64, schema.KindUint64, schema.KindFloat64:
		*(*uint64)(p) = bin.Get[uint64](src)
	}
}

// PutString writes s into a fixed-capacity string slot. At most len(dst)-1
// bytes are copied, never splitting a rune; the rest of the slot is zeroed so
// a terminator is always present.
func PutString(dst []byte, s string) {
	if len(dst) == 0 {
		return
	}
	n := copy(dst, abi.TruncateUTF8(s, len(dst)-1))
	clear(dst[n:])
}

// GetString reads a zero-terminated string from a fixed-capacity slot.
func GetString(src []byte) string {
	if i := bytes.IndexByte(src, 0); i >= 0 {
		return string(src[:i])
	}
	return string(src)
}

func (b *binding) write(inst []byte, base unsafe.Pointer) {
	p := unsafe.Add(base, b.goOff)
	dst := inst[b.ref.Offset : b.ref.Offset+b.ref.Size]

	switch b.ref.Kind {
	case schema.KindString:
		PutString(dst, *(*string)(p))
	case schema.KindArray:
		es := int(b.ref.Elem.Size())
		n := int(b.ref.Capacity)
		src := p
		if b.slice {
			s := *(*[]byte)(p) // header only; len counts elements
			n = min(n, len(s))
			src = unsafe.Pointer(unsafe.SliceData(s))
		}
		for j := 0; j < n; j++ {
			putScalar(b.ref.Elem, dst[j*es:], unsafe.Add(src, j*es))
		}
		clear(dst[n*es:])
	default:
		putScalar(b.ref.Kind, dst, p)
	}
}

func (b *binding) read(inst []byte, base unsafe.Pointer) {
	p := unsafe.Add(base, b.goOff)
	src := inst[b.ref.Offset : b.ref.Offset+b.ref.Size]

	switch b.ref.Kind {
	case schema.KindString:
		*(*string)(p) = GetString(src)
	case schema.KindArray:
		es := int(b.ref.Elem.Size())
		n := int(b.ref.Capacity)
		dst := p
		if b.slice {
			dst = b.sizeSlice(p, n)
		}
		for j := 0; j < n; j++ {
			getScalar(b.ref.Elem, src[j*es:], unsafe.Add(dst, j*es))
		}
	default:
		getScalar(b.ref.Kind, src, p)
	}
}

// sizeSlice makes the slice field at p exactly n elements long, reusing its
// backing array when the capacity allows, and returns its data pointer.
func (b *binding) sizeSlice(p unsafe.Pointer, n int) unsafe.Pointer {
	hdr := (*[]byte)(p) // len and cap count elements
	switch {
	case len(*hdr) == n:
	case cap(*hdr) >= n:
		*hdr = (*hdr)[:n]
	default:
		fresh := reflect.MakeSlice(b.goType, n, n)
		*hdr = unsafe.Slice((*byte)(fresh.UnsafePointer()), n)
	}
	return unsafe.Pointer(unsafe.SliceData(*hdr))
}
