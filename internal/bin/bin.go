// Package bin reads and writes little endian scalars in foreign memory using generics.
//
// Component memory follows the host C ABI; every supported target (amd64,
// arm64, wasm32) is little endian. Encodings are chosen by the width of the
// type and whether it is a float, so named types such as `type Score int32`
// work like their underlying types.
package bin

import (
	"encoding/binary"
	"fmt"
	"math"
	"unsafe"

	"golang.org/x/exp/constraints"

	"github.com/wippyai/ecs-abi/errors"
)

// Enc is the byte order of component memory.
var Enc = binary.LittleEndian

// Number is any scalar that can live in a component field or array element.
type Number interface {
	constraints.Integer | constraints.Float
}

// Get gets any integer size from a []byte slice.
func Get[T constraints.Integer](b []byte) T {
	var r T // This is only used for size detection.
	switch unsafe.Sizeof(r) {
	case 1:
		return T(b[0])
	case 2:
		return T(Enc.Uint16(b))
	case 4:
		return T(Enc.Uint32(b))
	case 8:
		return T(Enc.Uint64(b))
	}
	panic(unsupported(r))
}

// Put puts any integer size into a []byte slice.
func Put[T constraints.Integer](b []byte, v T) {
	switch unsafe.Sizeof(v) {
	case 1:
		b[0] = byte(v)
	case 2:
		Enc.PutUint16(b, uint16(v))
	case 4:
		Enc.PutUint32(b, uint32(v))
	case 8:
		Enc.PutUint64(b, uint64(v))
	default:
		panic(unsupported(v))
	}
}

// Load reads any Number from b.
func Load[T Number](b []byte) T {
	var r T
	if IsFloat[T]() {
		switch unsafe.Sizeof(r) {
		case 4:
			return T(math.Float32frombits(Enc.Uint32(b)))
		case 8:
			return T(math.Float64frombits(Enc.Uint64(b)))
		}
		panic(unsupported(r))
	}

	switch unsafe.Sizeof(r) {
	case 1:
		return T(b[0])
	case 2:
		return T(Enc.Uint16(b))
	case 4:
		return T(Enc.Uint32(b))
	case 8:
		return T(Enc.Uint64(b))
	}
	panic(unsupported(r))
}

// Store writes any Number into b.
func Store[T Number](b []byte, v T) {
	if IsFloat[T]() {
		switch unsafe.Sizeof(v) {
		case 4:
			Enc.PutUint32(b, math.Float32bits(float32(v)))
		case 8:
			Enc.PutUint64(b, math.Float64bits(float64(v)))
		default:
			panic(unsupported(v))
		}
		return
	}

	switch unsafe.Sizeof(v) {
	case 1:
		b[0] = byte(v)
	case 2:
		Enc.PutUint16(b, uint16(v))
	case 4:
		Enc.PutUint32(b, uint32(v))
	case 8:
		Enc.PutUint64(b, uint64(v))
	default:
		panic(unsupported(v))
	}
}

// Size returns the byte width of T.
func Size[T Number]() int {
	var r T
	return int(unsafe.Sizeof(r))
}

// IsFloat reports whether T is a floating point type.
func IsFloat[T Number]() bool {
	var half T = 1
	half /= 2
	return half != 0
}

func unsupported(v any) error {
	return errors.Unsupported(errors.PhaseAccess, fmt.Sprintf("no little endian encoding for %T", v))
}

// Bool reads a one-byte bool; any non-zero byte is true.
func Bool(b []byte) bool {
	return b[0] != 0
}

// PutBool writes v as 0 or 1.
func PutBool(b []byte, v bool) {
	if v {
		b[0] = 1
		return
	}
	b[0] = 0
}

// Float32 reads an IEEE 754 single.
func Float32(b []byte) float32 {
	return math.Float32frombits(Enc.Uint32(b))
}

// PutFloat32 writes an IEEE 754 single.
func PutFloat32(b []byte, v float32) {
	Enc.PutUint32(b, math.Float32bits(v))
}

// Float64 reads an IEEE 754 double.
func Float64(b []byte) float64 {
	return math.Float64frombits(Enc.Uint64(b))
}

// PutFloat64 writes an IEEE 754 double.
func PutFloat64(b []byte, v float64) {
	Enc.PutUint64(b, math.Float64bits(v))
}
