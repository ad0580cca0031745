package foreign

import (
	"fmt"

	"github.com/tetratelabs/wazero/api"

	ecsabi "github.com/wippyai/ecs-abi"
)

// WrapMemory adapts a wazero guest memory to ecsabi.Memory.
func WrapMemory(mem api.Memory) ecsabi.Memory {
	if mem == nil {
		return nil
	}
	return &Wrapper{Mem: mem}
}

// Wrapper adapts wazero api.Memory to the ecsabi.Memory interface.
type Wrapper struct {
	Mem api.Memory
}

// Read returns a write-through view of guest memory.
func (m *Wrapper) Read(offset uint32, length uint32) ([]byte, error) {
	data, ok := m.Mem.Read(offset, length)
	if !ok {
		return nil, fmt.Errorf("memory read out of bounds: offset=%d, length=%d", offset, length)
	}
	return data, nil
}

// Size returns the current guest memory size in bytes.
func (m *Wrapper) Size() uint32 {
	return m.Mem.Size()
}
