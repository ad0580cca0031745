package foreign

import (
	"fortio.org/safecast"

	"github.com/wippyai/ecs-abi/errors"
	"github.com/wippyai/ecs-abi/internal/abi"
)

// Buffer describes a dense component column as the engine hands it over:
// Count instances of Stride bytes starting at Addr.
type Buffer struct {
	Addr   uint64
	Stride uint32
	Count  int
}

// Span returns Stride*Count, failing if it does not fit in uint32.
func (b Buffer) Span() (uint32, error) {
	n, err := safecast.Conv[uint32](b.Count)
	if err != nil {
		return 0, errors.New(errors.PhaseAccess, errors.KindInvalidInput).
			Value(b.Count).
			Cause(err).
			Detail("invalid instance count %d", b.Count).
			Build()
	}
	span, ok := abi.SafeMulU32(b.Stride, n)
	if !ok {
		return 0, errors.Overflow(errors.PhaseAccess, nil, uint64(b.Stride)*uint64(n), "uint32")
	}
	return span, nil
}
