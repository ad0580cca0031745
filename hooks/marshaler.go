package hooks

import (
	"runtime/debug"
	"sync"

	"github.com/wippyai/ecs-abi/component"
	"github.com/wippyai/ecs-abi/errors"
	"github.com/wippyai/ecs-abi/foreign"
)

// Observer receives the instances affected by on_add, on_set or on_remove.
type Observer[T any] func(ev Event, items []T) error

// Pair receives two aligned batches of dst and src values for the copy and
// move hooks.
type Pair[T any] func(dst, src []T) error

type options struct {
	sink FaultSink
}

// Option configures a Marshaler.
type Option func(*options)

// WithFaultSink sets where contained faults go. The default logs them with
// the package logger.
func WithFaultSink(sink FaultSink) Option {
	return func(o *options) {
		if sink != nil {
			o.sink = sink
		}
	}
}

// Marshaler adapts one component's native hooks to Go callbacks.
// Slots are plain fields; set them before the engine starts invoking hooks.
// Invocations are safe for concurrent use.
type Marshaler[T any] struct {
	desc    *component.Descriptor[T]
	sink    FaultSink
	scratch sync.Pool

	OnAdd      Observer[T]
	OnSet      Observer[T]
	OnRemove   Observer[T]
	OnReplace  func(ev Event, prev, next []T) error
	Ctor       func(items []T) error
	Dtor       func(items []T) error
	OnCopy     Pair[T]
	OnMove     Pair[T]
	OnCopyCtor Pair[T]
	OnMoveCtor Pair[T]
}

// New creates a marshaler for desc with no slots set.
func New[T any](desc *component.Descriptor[T], opts ...Option) *Marshaler[T] {
	o := options{sink: LogSink{}}
	for _, opt := range opts {
		opt(&o)
	}
	return &Marshaler[T]{desc: desc, sink: o.sink}
}

// Name returns the component name.
func (m *Marshaler[T]) Name() string { return m.desc.Name() }

// Size returns the instance size in bytes.
func (m *Marshaler[T]) Size() uint32 { return m.desc.Size() }

// Has reports whether slot k is set.
func (m *Marshaler[T]) Has(k Kind) bool {
	switch k {
	case KindCtor:
		return m.Ctor != nil
	case KindDtor:
		return m.Dtor != nil
	case KindAdd:
		return m.OnAdd != nil
	case KindSet:
		return m.OnSet != nil
	case KindRemove:
		return m.OnRemove != nil
	case KindReplace:
		return m.OnReplace != nil
	case KindCopy:
		return m.OnCopy != nil
	case KindMove:
		return m.OnMove != nil
	case KindCopyCtor:
		return m.OnCopyCtor != nil
	case KindMoveCtor:
		return m.OnMoveCtor != nil
	}
	return false
}

// Construct runs ctor over count instances and writes them back.
func (m *Marshaler[T]) Construct(region foreign.Region, count int) {
	if count == 0 || m.Ctor == nil {
		return
	}
	defer m.contain(KindCtor)
	m.single(KindCtor, region, count, true, func(items []T) error {
		return m.Ctor(items)
	})
}

// Destruct runs dtor over count instances. Nothing is written back.
func (m *Marshaler[T]) Destruct(region foreign.Region, count int) {
	if count == 0 || m.Dtor == nil {
		return
	}
	defer m.contain(KindDtor)
	m.single(KindDtor, region, count, false, func(items []T) error {
		return m.Dtor(items)
	})
}

// Add runs on_add and writes the instances back.
func (m *Marshaler[T]) Add(region foreign.Region, count int, entities []uint64) {
	m.observe(KindAdd, m.OnAdd, region, count, entities, true)
}

// Set runs on_set and writes the instances back.
func (m *Marshaler[T]) Set(region foreign.Region, count int, entities []uint64) {
	m.observe(KindSet, m.OnSet, region, count, entities, true)
}

// Remove runs on_remove. The instances are about to be dropped, so nothing
// is written back.
func (m *Marshaler[T]) Remove(region foreign.Region, count int, entities []uint64) {
	m.observe(KindRemove, m.OnRemove, region, count, entities, false)
}

// Replace runs on_replace with the previous and next values. Only the next
// values are written back.
func (m *Marshaler[T]) Replace(prev, next foreign.Region, count int, entities []uint64) {
	if count == 0 || m.OnReplace == nil {
		return
	}
	defer m.contain(KindReplace)
	ev := Event{Component: m.desc.Name(), Entities: entities, Kind: KindReplace, Count: count}
	m.pair(KindReplace, next, prev, count, func(dst, src []T) error {
		return m.OnReplace(ev, src, dst)
	})
}

// Copy runs the copy hook; dst is written back, src is read-only.
func (m *Marshaler[T]) Copy(dst, src foreign.Region, count int) {
	m.transfer(KindCopy, m.OnCopy, dst, src, count)
}

// Move runs the move hook; dst is written back, src is read-only.
func (m *Marshaler[T]) Move(dst, src foreign.Region, count int) {
	m.transfer(KindMove, m.OnMove, dst, src, count)
}

// CopyCtor runs the copy constructor; dst is written back.
func (m *Marshaler[T]) CopyCtor(dst, src foreign.Region, count int) {
	m.transfer(KindCopyCtor, m.OnCopyCtor, dst, src, count)
}

// MoveCtor runs the move constructor; dst is written back.
func (m *Marshaler[T]) MoveCtor(dst, src foreign.Region, count int) {
	m.transfer(KindMoveCtor, m.OnMoveCtor, dst, src, count)
}

// Dispatch invokes slot k. Single-region hooks use a; pair hooks use a as
// the destination (or new values) and b as the source (or old values).
func (m *Marshaler[T]) Dispatch(k Kind, a, b foreign.Region, count int) {
	switch k {
	case KindCtor:
		m.Construct(a, count)
	case KindDtor:
		m.Destruct(a, count)
	case KindAdd:
		m.Add(a, count, nil)
	case KindSet:
		m.Set(a, count, nil)
	case KindRemove:
		m.Remove(a, count, nil)
	case KindReplace:
		m.Replace(b, a, count, nil)
	case KindCopy:
		m.Copy(a, b, count)
	case KindMove:
		m.Move(a, b, count)
	case KindCopyCtor:
		m.CopyCtor(a, b, count)
	case KindMoveCtor:
		m.MoveCtor(a, b, count)
	}
}

// Fail reports an error raised outside a callback, such as an unmappable
// guest pointer, as a fault of slot k.
func (m *Marshaler[T]) Fail(k Kind, err error) {
	m.sink.HandleFault(Fault{Component: m.desc.Name(), Kind: k, Err: err})
}

func (m *Marshaler[T]) observe(k Kind, fn Observer[T], region foreign.Region, count int, entities []uint64, writeBack bool) {
	if count == 0 || fn == nil {
		return
	}
	defer m.contain(k)
	ev := Event{Component: m.desc.Name(), Entities: entities, Kind: k, Count: count}
	m.single(k, region, count, writeBack, func(items []T) error {
		return fn(ev, items)
	})
}

func (m *Marshaler[T]) transfer(k Kind, fn Pair[T], dst, src foreign.Region, count int) {
	if count == 0 || fn == nil {
		return
	}
	defer m.contain(k)
	m.pair(k, dst, src, count, fn)
}

func (m *Marshaler[T]) single(k Kind, region foreign.Region, count int, writeBack bool, call func([]T) error) {
	b, err := m.bytes(region, count)
	if err != nil {
		m.Fail(k, err)
		return
	}

	items := m.get(count)
	defer m.put(items)

	m.desc.ReadSlice(b, *items)
	if err := call(*items); err != nil {
		m.Fail(k, err)
		return
	}
	if writeBack {
		m.desc.WriteSlice(b, *items)
	}
}

// pair reads dst and src, calls fn, and writes dst back.
func (m *Marshaler[T]) pair(k Kind, dst, src foreign.Region, count int, fn func(dst, src []T) error) {
	db, err := m.bytes(dst, count)
	if err != nil {
		m.Fail(k, err)
		return
	}
	sb, err := m.bytes(src, count)
	if err != nil {
		m.Fail(k, err)
		return
	}

	d := m.get(count)
	defer m.put(d)
	s := m.get(count)
	defer m.put(s)

	m.desc.ReadSlice(db, *d)
	m.desc.ReadSlice(sb, *s)
	if err := fn(*d, *s); err != nil {
		m.Fail(k, err)
		return
	}
	m.desc.WriteSlice(db, *d)
}

func (m *Marshaler[T]) bytes(region foreign.Region, count int) ([]byte, error) {
	if count < 0 {
		return nil, errors.InvalidInput(errors.PhaseHook, "negative instance count")
	}
	b, err := region.Bytes()
	if err != nil {
		return nil, err
	}
	span, err := m.desc.Layout().Span(count)
	if err != nil {
		return nil, err
	}
	if int64(span) > int64(len(b)) {
		return nil, errors.OutOfBounds(errors.PhaseHook, []string{m.desc.Name()}, count, len(b)/int(m.desc.Size()))
	}
	return b, nil
}

// contain must be deferred directly so that recover sees the panic.
func (m *Marshaler[T]) contain(k Kind) {
	if r := recover(); r != nil {
		m.sink.HandleFault(Fault{
			Component: m.desc.Name(),
			Kind:      k,
			Value:     r,
			Stack:     debug.Stack(),
		})
	}
}

const maxPooledItems = 1024

func (m *Marshaler[T]) get(n int) *[]T {
	if p, ok := m.scratch.Get().(*[]T); ok && cap(*p) >= n {
		*p = (*p)[:n]
		clear(*p)
		return p
	}
	items := m.desc.CreateArray(n)
	return &items
}

func (m *Marshaler[T]) put(p *[]T) {
	if cap(*p) > maxPooledItems {
		return
	}
	clear(*p)
	m.scratch.Put(p)
}
