package foreign

import (
	"unsafe"

	"fortio.org/safecast"

	ecsabi "github.com/wippyai/ecs-abi"
	"github.com/wippyai/ecs-abi/errors"
)

// Scope issues regions and revokes them all at once when it ends.
// A Scope belongs to one execution context and is not safe for concurrent use.
type Scope struct {
	gen  uint64
	open bool
}

// NewScope returns an open scope.
func NewScope() *Scope {
	return &Scope{gen: 1, open: true}
}

// Open reports whether regions issued since the last Renew are usable.
func (s *Scope) Open() bool {
	return s.open
}

// End revokes every region issued by s.
func (s *Scope) End() {
	s.gen++
	s.open = false
}

// Renew ends the current generation and opens a new one.
func (s *Scope) Renew() {
	s.gen++
	s.open = true
}

// Wrap issues a region over host memory.
func (s *Scope) Wrap(b []byte) Region {
	if b == nil {
		return Region{}
	}
	return Region{data: b, scope: s, gen: s.gen}
}

// Pointer issues a region over n bytes of native memory at p.
// A nil pointer yields an absent region.
func (s *Scope) Pointer(p unsafe.Pointer, n int) Region {
	if p == nil || n <= 0 {
		return Region{}
	}
	return s.Wrap(unsafe.Slice((*byte)(p), n))
}

// Map issues a region over length bytes of mem starting at offset.
func (s *Scope) Map(mem ecsabi.Memory, offset, length uint32) (Region, error) {
	if mem == nil {
		return Region{}, errors.NilPointer(errors.PhaseAccess, nil, "ecsabi.Memory")
	}
	if length == 0 {
		return Region{}, nil
	}
	b, err := mem.Read(offset, length)
	if err != nil {
		return Region{}, errors.New(errors.PhaseAccess, errors.KindOutOfBounds).
			Value(offset).
			Cause(err).
			Detail("map %d bytes at %d (memory size %d)", length, offset, mem.Size()).
			Build()
	}
	return s.Wrap(b), nil
}

// MapBuffer maps the bytes described by buf.
func (s *Scope) MapBuffer(mem ecsabi.Memory, buf Buffer) (Region, error) {
	span, err := buf.Span()
	if err != nil {
		return Region{}, err
	}
	addr, err := safecast.Conv[uint32](buf.Addr)
	if err != nil {
		return Region{}, errors.New(errors.PhaseAccess, errors.KindOverflow).
			Value(buf.Addr).
			Cause(err).
			Detail("address %#x outside 32-bit memory", buf.Addr).
			Build()
	}
	return s.Map(mem, addr, span)
}

// Region is a window onto foreign memory, valid while its scope generation
// is current. The zero Region is absent: it has no bytes and never expires.
type Region struct {
	data  []byte
	scope *Scope
	gen   uint64
}

// IsNil reports whether r is absent.
func (r Region) IsNil() bool {
	return r.data == nil
}

// Len returns the region length in bytes, or 0 for an absent region.
func (r Region) Len() int {
	return len(r.data)
}

// Valid reports whether r is present and its scope has not ended.
func (r Region) Valid() bool {
	return r.data != nil && r.scope != nil && r.scope.open && r.scope.gen == r.gen
}

// Bytes returns the region contents. Writes through the slice mutate the
// foreign memory.
func (r Region) Bytes() ([]byte, error) {
	if r.data == nil {
		return nil, errors.NilPointer(errors.PhaseAccess, nil, "foreign.Region")
	}
	if !r.Valid() {
		return nil, errors.Expired(errors.PhaseAccess, "region used after its scope ended")
	}
	return r.data, nil
}

// Sub returns the n bytes starting at off as a region of the same scope.
func (r Region) Sub(off, n int) (Region, error) {
	b, err := r.Bytes()
	if err != nil {
		return Region{}, err
	}
	if off < 0 || n < 0 || off > len(b)-n {
		return Region{}, errors.OutOfBounds(errors.PhaseAccess, nil, off+n, len(b))
	}
	return Region{data: b[off : off+n : off+n], scope: r.scope, gen: r.gen}, nil
}
