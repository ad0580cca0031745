package layout

import (
	"fortio.org/safecast"

	"github.com/wippyai/ecs-abi/errors"
	"github.com/wippyai/ecs-abi/internal/abi"
	"github.com/wippyai/ecs-abi/schema"
)

// FieldLayout is the placement of one field inside a component instance.
// Padding is the number of bytes skipped before Offset to reach alignment.
type FieldLayout struct {
	Name    string
	Offset  uint32
	Size    uint32
	Align   uint32
	Padding uint32
}

// End returns the first byte past the field.
func (f FieldLayout) End() uint32 {
	return f.Offset + f.Size
}

// Layout describes the memory shape of one component type.
type Layout struct {
	Fields          []FieldLayout
	Size            uint32
	Align           uint32
	TrailingPadding uint32
	Placeholder     bool
}

// Field returns the placement of the named field.
func (l Layout) Field(name string) (FieldLayout, bool) {
	for _, f := range l.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldLayout{}, false
}

// Span returns the byte length of count densely packed instances.
func (l Layout) Span(count int) (uint32, error) {
	n, err := safecast.Conv[uint32](count)
	if err != nil {
		return 0, errors.New(errors.PhaseLayout, errors.KindOverflow).
			Value(count).
			Cause(err).
			Detail("instance count %d does not fit in uint32", count).
			Build()
	}
	span, ok := abi.SafeMulU32(n, l.Size)
	if !ok {
		return 0, errors.Overflow(errors.PhaseLayout, nil, uint64(n)*uint64(l.Size), "uint32")
	}
	return span, nil
}

// Calculate computes the layout of s.
func Calculate(s *schema.Schema) (Layout, error) {
	if s == nil {
		return Layout{}, errors.NilPointer(errors.PhaseLayout, nil, "*schema.Schema")
	}

	if s.Len() == 0 {
		return Layout{Size: 1, Align: 1, TrailingPadding: 1, Placeholder: true}, nil
	}

	fields := make([]FieldLayout, s.Len())
	maxAlign := uint32(1)
	offset := uint32(0)

	for i := range s.Len() {
		f := s.Field(i)
		size, align := f.Size(), f.Align()
		if f.Kind == schema.KindArray {
			var ok bool
			if size, ok = abi.SafeMulU32(f.Elem.Size(), f.Capacity); !ok {
				return Layout{}, overflow(s.Name(), f.Name, "array size")
			}
		}

		aligned, ok := abi.SafeAlignTo(offset, align)
		if !ok {
			return Layout{}, overflow(s.Name(), f.Name, "field offset")
		}

		fields[i] = FieldLayout{
			Name:    f.Name,
			Offset:  aligned,
			Size:    size,
			Align:   align,
			Padding: aligned - offset,
		}

		if align > maxAlign {
			maxAlign = align
		}

		if offset, ok = abi.SafeAddU32(aligned, size); !ok {
			return Layout{}, overflow(s.Name(), f.Name, "field end")
		}
	}

	total, ok := abi.SafeAlignTo(offset, maxAlign)
	if !ok {
		return Layout{}, overflow(s.Name(), "", "total size")
	}

	return Layout{
		Fields:          fields,
		Size:            total,
		Align:           maxAlign,
		TrailingPadding: total - offset,
	}, nil
}

// MustCalculate is Calculate that panics on error.
func MustCalculate(s *schema.Schema) Layout {
	l, err := Calculate(s)
	if err != nil {
		panic(err)
	}
	return l
}

func overflow(component, field, what string) error {
	b := errors.New(errors.PhaseLayout, errors.KindOverflow).
		Component(component).
		Detail("%s exceeds uint32", what)
	if field != "" {
		b.Path(field)
	}
	return b.Build()
}

// Calculator memoizes layouts per schema. It is not safe for concurrent use;
// registration code owns one calculator and runs single-threaded.
type Calculator struct {
	cache map[*schema.Schema]Layout
}

// NewCalculator creates an empty calculator.
func NewCalculator() *Calculator {
	return &Calculator{
		cache: make(map[*schema.Schema]Layout),
	}
}

// Calculate returns the cached layout of s, computing it on first use.
func (c *Calculator) Calculate(s *schema.Schema) (Layout, error) {
	if cached, ok := c.cache[s]; ok {
		return cached, nil
	}
	l, err := Calculate(s)
	if err != nil {
		return Layout{}, err
	}
	c.cache[s] = l
	return l, nil
}

// Len returns the number of cached layouts.
func (c *Calculator) Len() int {
	return len(c.cache)
}
