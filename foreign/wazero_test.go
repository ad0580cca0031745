package foreign

import (
	"context"
	"testing"

	"github.com/tetratelabs/wazero"
)

// one page of memory exported as "memory"
var memoryModule = []byte{
	0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
	0x05, 0x03, 0x01, 0x00, 0x01,
	0x07, 0x0a, 0x01, 0x06, 'm', 'e', 'm', 'o', 'r', 'y', 0x02, 0x00,
}

func TestWrapMemory(t *testing.T) {
	ctx := context.Background()
	r := wazero.NewRuntime(ctx)
	defer r.Close(ctx)

	mod, err := r.Instantiate(ctx, memoryModule)
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}

	mem := WrapMemory(mod.Memory())
	if mem.Size() != 65536 {
		t.Errorf("Size = %d", mem.Size())
	}

	s := NewScope()
	region, err := s.Map(mem, 100, 4)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := region.Bytes()
	copy(b, []byte{1, 2, 3, 4})

	got, ok := mod.Memory().ReadUint32Le(100)
	if !ok || got != 0x04030201 {
		t.Errorf("guest memory = %#x, %v", got, ok)
	}

	if _, err := mem.Read(65535, 2); err == nil {
		t.Error("expected out of bounds read")
	}
	if WrapMemory(nil) != nil {
		t.Error("WrapMemory(nil) should be nil")
	}
}
