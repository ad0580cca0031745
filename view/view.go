package view

import (
	"github.com/wippyai/ecs-abi/component"
	"github.com/wippyai/ecs-abi/errors"
	"github.com/wippyai/ecs-abi/foreign"
	"github.com/wippyai/ecs-abi/internal/abi"
	"github.com/wippyai/ecs-abi/internal/bin"
	"github.com/wippyai/ecs-abi/schema"
)

// View is a mutable window onto one component instance.
type View struct {
	desc   component.Any
	region foreign.Region
	data   []byte
	offset int
}

func newView(desc component.Any) *View {
	return &View{desc: desc}
}

// Rebind points v at the instance starting at offset within region.
func (v *View) Rebind(region foreign.Region, offset int) error {
	b, err := region.Bytes()
	if err != nil {
		return err
	}
	size := int(v.desc.Size())
	if offset < 0 || offset > len(b)-size {
		return errors.New(errors.PhaseAccess, errors.KindOutOfBounds).
			Component(v.desc.Name()).
			Value(offset).
			Detail("instance at %d (size %d) exceeds region of %d bytes", offset, size, len(b)).
			Build()
	}
	v.region = region
	v.offset = offset
	v.data = b[offset : offset+size : offset+size]
	return nil
}

// Offset returns the byte offset of the bound instance within its region.
func (v *View) Offset() int { return v.offset }

// Region returns the bound region.
func (v *View) Region() foreign.Region { return v.region }

// Descriptor returns the component the view was built for.
func (v *View) Descriptor() component.Any { return v.desc }

// Bytes returns the raw bytes of the bound instance.
func (v *View) Bytes() []byte {
	return v.instance()
}

func (v *View) instance() []byte {
	if !v.region.Valid() {
		if v.data == nil {
			panic(errors.New(errors.PhaseAccess, errors.KindNilPointer).
				Component(v.desc.Name()).
				Detail("view used before Rebind").
				Build())
		}
		panic(errors.Expired(errors.PhaseAccess, "view used after its batch ended"))
	}
	return v.data
}

func (v *View) field(f component.FieldRef, k schema.Kind) []byte {
	if f.Kind != k {
		e := errors.TypeMismatch(errors.PhaseAccess, []string{f.Name}, k.String(), f.Kind.String())
		e.Component = v.desc.Name()
		panic(e)
	}
	return v.instance()[f.Offset:f.End()]
}

// Bool reads the bool field f.
func (v *View) Bool(f component.FieldRef) bool {
	return bin.Bool(v.field(f, schema.KindBool))
}

// SetBool writes x to the bool field f and returns v for chaining.
func (v *View) SetBool(f component.FieldRef, x bool) *View {
	bin.PutBool(v.field(f, schema.KindBool), x)
	return v
}

// Int8 reads the int8 field f.
func (v *View) Int8(f component.FieldRef) int8 {
	return bin.Get[int8](v.field(f, schema.KindInt8))
}

// SetInt8 writes x to the int8 field f and returns v for chaining.
func (v *View) SetInt8(f component.FieldRef, x int8) *View {
	bin.Put(v.field(f, schema.KindInt8), x)
	return v
}

// Uint8 reads the uint8 field f.
func (v *View) Uint8(f component.FieldRef) uint8 {
	return bin.Get[uint8](v.field(f, schema.KindUint8))
}

// SetUint8 writes x to the uint8 field f and returns v for chaining.
func (v *View) SetUint8(f component.FieldRef, x uint8) *View {
	bin.Put(v.field(f, schema.KindUint8), x)
	return v
}

// Int16 reads the int16 field f.
func (v *View) Int16(f component.FieldRef) int16 {
	return bin.Get[int16](v.field(f, schema.KindInt16))
}

// SetInt16 writes x to the int16 field f and returns v for chaining.
func (v *View) SetInt16(f component.FieldRef, x int16) *View {
	bin.Put(v.field(f, schema.KindInt16), x)
	return v
}

// Uint16 reads the uint16 field f.
func (v *View) Uint16(f component.FieldRef) uint16 {
	return bin.Get[uint16](v.field(f, schema.KindUint16))
}

// SetUint16 writes x to the uint16 field f and returns v for chaining.
func (v *View) SetUint16(f component.FieldRef, x uint16) *View {
	bin.Put(v.field(f, schema.KindUint16), x)
	return v
}

// Int32 reads the int32 field f.
func (v *View) Int32(f component.FieldRef) int32 {
	return bin.Get[int32](v.field(f, schema.KindInt32))
}

// SetInt32 writes x to the int32 field f and returns v for chaining.
func (v *View) SetInt32(f component.FieldRef, x int32) *View {
	bin.Put(v.field(f, schema.KindInt32), x)
	return v
}

// Uint32 reads the uint32 field f.
func (v *View) Uint32(f component.FieldRef) uint32 {
	return bin.Get[uint32](v.field(f, schema.KindUint32))
}

// SetUint32 writes x to the uint32 field f and returns v for chaining.
func (v *View) SetUint32(f component.FieldRef, x uint32) *View {
	bin.Put(v.field(f, schema.KindUint32), x)
	return v
}

// Int64 reads the int64 field f.
func (v *View) Int64(f component.FieldRef) int64 {
	return bin.Get[int64](v.field(f, schema.KindInt64))
}

// SetInt64 writes x to the int64 field f and returns v for chaining.
func (v *View) SetInt64(f component.FieldRef, x int64) *View {
	bin.Put(v.field(f, schema.KindInt64), x)
	return v
}

// Uint64 reads the uint64 field f.
func (v *View) Uint64(f component.FieldRef) uint64 {
	return bin.Get[uint64](v.field(f, schema.KindUint64))
}

// SetUint64 writes x to the uint64 field f and returns v for chaining.
func (v *View) SetUint64(f component.FieldRef, x uint64) *View {
	bin.Put(v.field(f, schema.KindUint64), x)
	return v
}

// Float32 reads the float32 field f.
func (v *View) Float32(f component.FieldRef) float32 {
	return bin.Float32(v.field(f, schema.KindFloat32))
}

// SetFloat32 writes x to the float32 field f and returns v for chaining.
func (v *View) SetFloat32(f component.FieldRef, x float32) *View {
	bin.PutFloat32(v.field(f, schema.KindFloat32), x)
	return v
}

// Float64 reads the float64 field f.
func (v *View) Float64(f component.FieldRef) float64 {
	return bin.Float64(v.field(f, schema.KindFloat64))
}

// SetFloat64 writes x to the float64 field f and returns v for chaining.
func (v *View) SetFloat64(f component.FieldRef, x float64) *View {
	bin.PutFloat64(v.field(f, schema.KindFloat64), x)
	return v
}

// String reads a fixed-capacity string field. It allocates the result.
func (v *View) String(f component.FieldRef) string {
	return component.GetString(v.field(f, schema.KindString))
}

// SetString writes s, truncating at a rune boundary to capacity-1 bytes and
// zero-filling the rest of the slot.
func (v *View) SetString(f component.FieldRef, s string) *View {
	component.PutString(v.field(f, schema.KindString), s)
	return v
}

// ArrayLen returns the declared length of an array field.
func (v *View) ArrayLen(f component.FieldRef) int {
	v.field(f, schema.KindArray)
	return int(f.Capacity)
}

// ElemAt reads element i of an array field.
func ElemAt[E bin.Number](v *View, f component.FieldRef, i int) E {
	return bin.Load[E](elem[E](v, f, i))
}

// SetElemAt writes element i of an array field.
func SetElemAt[E bin.Number](v *View, f component.FieldRef, i int, x E) *View {
	bin.Store(elem[E](v, f, i), x)
	return v
}

func elem[E bin.Number](v *View, f component.FieldRef, i int) []byte {
	b := v.field(f, schema.KindArray)
	es := bin.Size[E]()
	float := f.Elem == schema.KindFloat32 || f.Elem == schema.KindFloat64
	if uint32(es) != f.Elem.Size() || bin.IsFloat[E]() != float {
		var zero E
		e := errors.TypeMismatch(errors.PhaseAccess, []string{f.Name}, abi.TypeName(zero), f.Elem.String())
		e.Component = v.desc.Name()
		panic(e)
	}
	if i < 0 || i >= int(f.Capacity) {
		panic(errors.OutOfBounds(errors.PhaseAccess, []string{f.Name}, i, int(f.Capacity)))
	}
	return b[i*es : (i+1)*es]
}

// Read copies the bound instance into a Go value.
func Read[T any](v *View, d *component.Descriptor[T]) T {
	return d.Read(v.instance(), 0)
}

// Write stores x into the bound instance.
func Write[T any](v *View, d *component.Descriptor[T], x *T) {
	d.Write(v.instance(), 0, x)
}
