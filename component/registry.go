package component

import (
	"reflect"

	"go.uber.org/zap"

	"github.com/wippyai/ecs-abi/errors"
)

// ID is the native engine's identifier for a registered component.
type ID uint64

// Registrar is implemented by the native engine. It receives each
// component's name, size and alignment once and returns its native ID.
type Registrar interface {
	RegisterComponent(name string, size, align uint32) (ID, error)
}

type entry struct {
	desc  Any
	id    ID
	bound bool
}

// Registry maps Go component types to descriptors and native IDs.
// Registration is single-threaded; lookups afterwards are safe for concurrent use.
type Registry struct {
	byType map[reflect.Type]*entry
	byName map[string]*entry
	byID   map[ID]*entry
	order  []*entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byType: make(map[reflect.Type]*entry),
		byName: make(map[string]*entry),
		byID:   make(map[ID]*entry),
	}
}

// Register adds desc keyed by T. Registering the same Go type or component
// name twice is a registry error.
func Register[T any](reg *Registry, desc *Descriptor[T]) error {
	if desc == nil {
		return errors.NilPointer(errors.PhaseRegistry, nil, "*component.Descriptor")
	}
	return reg.add(desc)
}

func (r *Registry) add(desc Any) error {
	if prev, ok := r.byType[desc.GoType()]; ok {
		return errors.New(errors.PhaseRegistry, errors.KindDuplicate).
			Component(desc.Name()).
			GoType(desc.GoType().String()).
			Detail("Go type already registered as %s", prev.desc.Name()).
			Build()
	}
	if _, ok := r.byName[desc.Name()]; ok {
		return errors.New(errors.PhaseRegistry, errors.KindDuplicate).
			Component(desc.Name()).
			Detail("component name already registered").
			Build()
	}

	e := &entry{desc: desc}
	r.byType[desc.GoType()] = e
	r.byName[desc.Name()] = e
	r.order = append(r.order, e)

	Logger().Debug("component registered",
		zap.String("component", desc.Name()),
		zap.Stringer("go_type", desc.GoType()),
		zap.Uint32("size", desc.Size()),
		zap.Uint32("align", desc.Align()))
	return nil
}

// Bind registers desc if needed and announces it to the engine, recording
// the returned native ID. Binding an already bound type returns its ID.
func Bind[T any](reg *Registry, desc *Descriptor[T], engine Registrar) (ID, error) {
	if desc == nil {
		return 0, errors.NilPointer(errors.PhaseRegistry, nil, "*component.Descriptor")
	}
	e, ok := reg.byType[desc.GoType()]
	if !ok {
		if err := reg.add(desc); err != nil {
			return 0, err
		}
		e = reg.byType[desc.GoType()]
	}
	return reg.bind(e, engine)
}

// BindAll announces every registered but unbound component to the engine in
// registration order.
func (r *Registry) BindAll(engine Registrar) error {
	for _, e := range r.order {
		if _, err := r.bind(e, engine); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) bind(e *entry, engine Registrar) (ID, error) {
	if e.bound {
		return e.id, nil
	}
	if engine == nil {
		return 0, errors.NilPointer(errors.PhaseRegistry, nil, "component.Registrar")
	}

	id, err := engine.RegisterComponent(e.desc.Name(), e.desc.Size(), e.desc.Align())
	if err != nil {
		return 0, errors.Registration(e.desc.Name(), err)
	}
	if other, ok := r.byID[id]; ok {
		return 0, errors.New(errors.PhaseRegistry, errors.KindDuplicate).
			Component(e.desc.Name()).
			Value(id).
			Detail("engine returned id %d already bound to %s", id, other.desc.Name()).
			Build()
	}

	e.id = id
	e.bound = true
	r.byID[id] = e

	Logger().Debug("component bound",
		zap.String("component", e.desc.Name()),
		zap.Uint64("id", uint64(id)))
	return id, nil
}

// Lookup returns the descriptor registered for T.
func Lookup[T any](reg *Registry) (*Descriptor[T], bool) {
	e, ok := reg.byType[reflect.TypeFor[T]()]
	if !ok {
		return nil, false
	}
	d, ok := e.desc.(*Descriptor[T])
	return d, ok
}

// IDOf returns the native ID bound to T.
func IDOf[T any](reg *Registry) (ID, bool) {
	e, ok := reg.byType[reflect.TypeFor[T]()]
	if !ok || !e.bound {
		return 0, false
	}
	return e.id, true
}

// ByID returns the descriptor bound to a native ID.
func (r *Registry) ByID(id ID) (Any, bool) {
	e, ok := r.byID[id]
	if !ok {
		return nil, false
	}
	return e.desc, true
}

// ByName returns the descriptor registered under a component name.
func (r *Registry) ByName(name string) (Any, bool) {
	e, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	return e.desc, true
}

// Descriptors returns every registered descriptor in registration order.
func (r *Registry) Descriptors() []Any {
	out := make([]Any, len(r.order))
	for i, e := range r.order {
		out[i] = e.desc
	}
	return out
}

// Len returns the number of registered components.
func (r *Registry) Len() int {
	return len(r.order)
}
