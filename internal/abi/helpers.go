package abi

import (
	"math"
	"reflect"
	"unicode/utf8"
)

// SafeMulU32 returns a*b and false on overflow.
func SafeMulU32(a, b uint32) (uint32, bool) {
	if b != 0 && a > math.MaxUint32/b {
		return 0, false
	}
	return a * b, true
}

// SafeAddU32 returns a+b and false on overflow.
func SafeAddU32(a, b uint32) (uint32, bool) {
	if a > math.MaxUint32-b {
		return 0, false
	}
	return a + b, true
}

// TypeName returns "nil" for nil values, avoiding reflect.TypeOf(nil) panic.
func TypeName(value any) string {
	if value == nil {
		return "nil"
	}
	return reflect.TypeOf(value).String()
}

// AlignTo rounds offset up to align, which must be a power of two.
func AlignTo(offset, align uint32) uint32 {
	if align == 0 {
		return offset
	}
	return (offset + align - 1) &^ (align - 1)
}

// SafeAlignTo is AlignTo with overflow detection.
func SafeAlignTo(offset, align uint32) (uint32, bool) {
	if align == 0 {
		return offset, true
	}
	end, ok := SafeAddU32(offset, align-1)
	if !ok {
		return 0, false
	}
	return end &^ (align - 1), true
}

// IsPowerOfTwo reports whether n is a power of two; 0 is not.
func IsPowerOfTwo(n uint32) bool {
	return n != 0 && n&(n-1) == 0
}

// TruncateUTF8 returns the longest prefix of s that fits in limit bytes
// without splitting a multi-byte rune.
func TruncateUTF8(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	if limit <= 0 {
		return ""
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
