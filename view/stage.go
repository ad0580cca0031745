package view

import (
	"math/bits"

	"github.com/wippyai/ecs-abi/component"
	"github.com/wippyai/ecs-abi/foreign"
)

// DefaultPoolCapacity is the number of views per component per stage.
const DefaultPoolCapacity = 16

type config struct {
	poolCapacity int
}

// Option configures a Stage.
type Option func(*config)

// WithPoolCapacity sets the view ring size. It is rounded up to a power of
// two; values below 1 select DefaultPoolCapacity.
func WithPoolCapacity(n int) Option {
	return func(c *config) {
		if n < 1 {
			c.poolCapacity = DefaultPoolCapacity
			return
		}
		c.poolCapacity = 1 << bits.Len(uint(n-1))
	}
}

// Stage is the per-thread execution context: one view pool per component,
// the batch epoch, and the scope of the regions mapped for the batch.
type Stage struct {
	pools    map[component.Any]*Pool
	scope    *foreign.Scope
	epoch    uint64
	capacity int
}

// NewStage creates a stage with an open region scope.
func NewStage(opts ...Option) *Stage {
	cfg := config{poolCapacity: DefaultPoolCapacity}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Stage{
		pools:    make(map[component.Any]*Pool),
		scope:    foreign.NewScope(),
		capacity: cfg.poolCapacity,
	}
}

// Pool returns the stage's pool for desc, creating it on first use.
func (s *Stage) Pool(desc component.Any) *Pool {
	if p, ok := s.pools[desc]; ok {
		return p
	}
	p := newPool(s, desc, s.capacity)
	s.pools[desc] = p
	return p
}

// ResetCursors starts a new epoch; every pool restarts from its first view
// on its next acquisition.
func (s *Stage) ResetCursors() {
	s.epoch++
}

// Begin starts a batch: cursors reset and a fresh region scope opens.
func (s *Stage) Begin() {
	s.ResetCursors()
	s.scope.Renew()
}

// End finishes a batch, revoking every region issued since Begin.
func (s *Stage) End() {
	s.scope.End()
}

// Scope returns the region scope of the current batch.
func (s *Stage) Scope() *foreign.Scope { return s.scope }

// Epoch returns the current batch epoch.
func (s *Stage) Epoch() uint64 { return s.epoch }

// PoolCapacity returns the configured ring size.
func (s *Stage) PoolCapacity() int { return s.capacity }
