package component

import (
	"reflect"
	"unsafe"

	"github.com/wippyai/ecs-abi/errors"
	"github.com/wippyai/ecs-abi/layout"
	"github.com/wippyai/ecs-abi/schema"
)

// FieldRef locates one field inside a component instance. Views and
// generated accessors hold FieldRefs so the hot path never looks names up.
type FieldRef struct {
	Name     string
	Kind     schema.Kind
	Elem     schema.Kind
	Offset   uint32
	Size     uint32
	Capacity uint32
	Index    int
}

// End returns the first byte past the field.
func (f FieldRef) End() uint32 {
	return f.Offset + f.Size
}

// Any is the type-erased view of a Descriptor.
type Any interface {
	Name() string
	Schema() *schema.Schema
	Layout() layout.Layout
	GoType() reflect.Type
	Size() uint32
	Align() uint32
	Field(name string) (FieldRef, bool)
	Fields() []FieldRef
}

// Descriptor binds the Go struct type T to a schema and its layout.
// It is immutable after New and safe for concurrent use.
type Descriptor[T any] struct {
	schema   *schema.Schema
	goType   reflect.Type
	refs     map[string]FieldRef
	layout   layout.Layout
	bindings []binding
}

// New binds T to s and computes the layout.
func New[T any](s *schema.Schema) (*Descriptor[T], error) {
	if s == nil {
		return nil, errors.NilPointer(errors.PhaseBind, nil, "*schema.Schema")
	}

	goType := reflect.TypeFor[T]()
	if goType.Kind() != reflect.Struct {
		return nil, errors.New(errors.PhaseBind, errors.KindTypeMismatch).
			Component(s.Name()).
			GoType(goType.String()).
			Detail("component type must be a struct").
			Build()
	}

	l, err := layout.Calculate(s)
	if err != nil {
		return nil, err
	}

	d := &Descriptor[T]{
		schema:   s,
		goType:   goType,
		layout:   l,
		refs:     make(map[string]FieldRef, s.Len()),
		bindings: make([]binding, s.Len()),
	}

	for i := range s.Len() {
		f := s.Field(i)
		goField, found := findGoField(goType, f.Name)
		if !found {
			e := errors.FieldMissing(errors.PhaseBind, []string{f.Name}, f.Name)
			e.Component = s.Name()
			e.GoType = goType.String()
			return nil, e
		}

		slice, err := checkGoType(s.Name(), f, goField.Type)
		if err != nil {
			return nil, err
		}

		fl := l.Fields[i]
		ref := FieldRef{
			Name:     f.Name,
			Kind:     f.Kind,
			Elem:     f.Elem,
			Offset:   fl.Offset,
			Size:     fl.Size,
			Capacity: f.Capacity,
			Index:    i,
		}
		d.refs[f.Name] = ref
		d.bindings[i] = binding{
			goType: goField.Type,
			goOff:  goField.Offset,
			ref:    ref,
			slice:  slice,
		}
	}

	return d, nil
}

// MustNew is New that panics on error.
func MustNew[T any](s *schema.Schema) *Descriptor[T] {
	d, err := New[T](s)
	if err != nil {
		panic(err)
	}
	return d
}

// Name returns the component name.
func (d *Descriptor[T]) Name() string { return d.schema.Name() }

// Schema returns the declared fields.
func (d *Descriptor[T]) Schema() *schema.Schema { return d.schema }

// Layout returns the computed C ABI layout.
func (d *Descriptor[T]) Layout() layout.Layout { return d.layout }

// GoType returns the bound Go struct type.
func (d *Descriptor[T]) GoType() reflect.Type { return d.goType }

// Size returns the instance size in bytes, including trailing padding.
func (d *Descriptor[T]) Size() uint32 { return d.layout.Size }

// Align returns the instance alignment.
func (d *Descriptor[T]) Align() uint32 { return d.layout.Align }

// Field returns the reference for the named field.
func (d *Descriptor[T]) Field(name string) (FieldRef, bool) {
	f, ok := d.refs[name]
	return f, ok
}

// MustField is Field that panics with an unknown-field error.
func (d *Descriptor[T]) MustField(name string) FieldRef {
	f, ok := d.refs[name]
	if !ok {
		panic(errors.FieldUnknown(errors.PhaseAccess, d.schema.Name(), name))
	}
	return f
}

// Fields returns the field references in declaration order.
func (d *Descriptor[T]) Fields() []FieldRef {
	out := make([]FieldRef, len(d.bindings))
	for i := range d.bindings {
		out[i] = d.bindings[i].ref
	}
	return out
}

// OffsetOf returns the offset of the named field within one instance.
// An unknown name is a programming error and panics.
func (d *Descriptor[T]) OffsetOf(name string) uint32 {
	return d.MustField(name).Offset
}

// Write serializes v into buf at offset. buf must hold Size() bytes from
// offset; padding bytes are left untouched.
func (d *Descriptor[T]) Write(buf []byte, offset int, v *T) {
	inst := buf[offset : offset+int(d.layout.Size)]
	base := unsafe.Pointer(v)
	for i := range d.bindings {
		d.bindings[i].write(inst, base)
	}
}

// Read deserializes one instance from buf at offset.
func (d *Descriptor[T]) Read(buf []byte, offset int) T {
	var v T
	d.ReadInto(buf, offset, &v)
	return v
}

// ReadInto deserializes one instance into v, reusing the backing arrays of
// slice-typed array fields.
func (d *Descriptor[T]) ReadInto(buf []byte, offset int, v *T) {
	inst := buf[offset : offset+int(d.layout.Size)]
	base := unsafe.Pointer(v)
	for i := range d.bindings {
		d.bindings[i].read(inst, base)
	}
}

// ReadSlice reads len(items) consecutive instances starting at buf[0].
func (d *Descriptor[T]) ReadSlice(buf []byte, items []T) {
	size := int(d.layout.Size)
	for i := range items {
		d.ReadInto(buf, i*size, &items[i])
	}
}

// WriteSlice writes items as consecutive instances starting at buf[0].
func (d *Descriptor[T]) WriteSlice(buf []byte, items []T) {
	size := int(d.layout.Size)
	for i := range items {
		d.Write(buf, i*size, &items[i])
	}
}

// CreateArray returns n zero-valued instances for staging a batch.
func (d *Descriptor[T]) CreateArray(n int) []T {
	return make([]T, n)
}
