package ecsabi

import "fmt"

// Memory is a linear address space owned by someone else, such as a wasm
// guest or the native engine heap.
//
// Read returns a view of the bytes, not a copy: writes through the returned
// slice mutate the underlying memory.
type Memory interface {
	Read(offset uint32, length uint32) ([]byte, error)
	Size() uint32
}

// Bytes adapts a host byte slice to Memory.
type Bytes []byte

// Read returns b[offset:offset+length].
func (b Bytes) Read(offset uint32, length uint32) ([]byte, error) {
	end := uint64(offset) + uint64(length)
	if end > uint64(len(b)) {
		return nil, fmt.Errorf("memory read out of bounds: offset=%d, length=%d", offset, length)
	}
	return b[offset:end:end], nil
}

// Size returns len(b).
func (b Bytes) Size() uint32 {
	return uint32(len(b))
}
