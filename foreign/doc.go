// Package foreign exposes engine-owned memory as scoped regions.
//
// A Region is a capability: a byte slice plus the Scope that issued it.
// Once the scope ends, every region it issued reports an expired error
// instead of handing out bytes that the engine may have reclaimed. Regions
// are never allocated or freed here.
//
// Regions come from three sources:
//
//	scope.Wrap(buf)                       host bytes (tests, staging)
//	scope.Pointer(ptr, n)                 native engine pointer
//	scope.Map(foreign.WrapMemory(m), o, n) wazero guest linear memory
package foreign
