package view

import (
	"github.com/wippyai/ecs-abi/component"
	"github.com/wippyai/ecs-abi/foreign"
)

// Pool is a fixed ring of views for one component, owned by one Stage.
type Pool struct {
	stage  *Stage
	desc   component.Any
	ring   []*View
	mask   int
	cursor int
	epoch  uint64
}

func newPool(s *Stage, desc component.Any, capacity int) *Pool {
	p := &Pool{
		stage: s,
		desc:  desc,
		ring:  make([]*View, capacity),
		mask:  capacity - 1,
		epoch: s.epoch,
	}
	for i := range p.ring {
		p.ring[i] = newView(desc)
	}
	return p
}

// Acquire returns the next view in the ring. The cursor restarts at the
// first view whenever the stage epoch has moved since the last acquisition.
func (p *Pool) Acquire() *View {
	if p.epoch != p.stage.epoch {
		p.cursor = 0
		p.epoch = p.stage.epoch
	}
	v := p.ring[p.cursor]
	p.cursor = (p.cursor + 1) & p.mask
	return v
}

// Bind acquires a view and rebinds it to the instance at offset.
func (p *Pool) Bind(region foreign.Region, offset int) (*View, error) {
	v := p.Acquire()
	if err := v.Rebind(region, offset); err != nil {
		return nil, err
	}
	return v, nil
}

// Cap returns the ring size.
func (p *Pool) Cap() int { return len(p.ring) }

// Descriptor returns the component the pool serves.
func (p *Pool) Descriptor() component.Any { return p.desc }
