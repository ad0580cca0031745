// Package column gives bounds-checked access to one dense column of
// component instances in foreign memory.
package column

import (
	"github.com/wippyai/ecs-abi/component"
	"github.com/wippyai/ecs-abi/errors"
	"github.com/wippyai/ecs-abi/foreign"
	"github.com/wippyai/ecs-abi/view"
)

// Column is count consecutive instances of T starting at the beginning of
// a region. A column over an absent region is empty.
type Column[T any] struct {
	desc   *component.Descriptor[T]
	region foreign.Region
	pool   *view.Pool
	count  int
	size   int
}

// New describes count instances of T in region. stage supplies the views
// for MutView and Each and may be nil when only Get and Set are used.
func New[T any](desc *component.Descriptor[T], region foreign.Region, count int, stage *view.Stage) (*Column[T], error) {
	if desc == nil {
		return nil, errors.NilPointer(errors.PhaseAccess, nil, "*component.Descriptor")
	}

	c := &Column[T]{desc: desc, size: int(desc.Size())}
	if stage != nil {
		c.pool = stage.Pool(desc)
	}
	if region.IsNil() {
		return c, nil
	}
	if count < 0 {
		return nil, errors.New(errors.PhaseAccess, errors.KindInvalidInput).
			Component(desc.Name()).
			Value(count).
			Detail("negative instance count").
			Build()
	}

	span, err := desc.Layout().Span(count)
	if err != nil {
		return nil, err
	}
	if int64(span) > int64(region.Len()) {
		return nil, errors.New(errors.PhaseAccess, errors.KindOutOfBounds).
			Component(desc.Name()).
			Value(count).
			Detail("%d instances need %d bytes, region has %d", count, span, region.Len()).
			Build()
	}

	c.region = region
	c.count = count
	return c, nil
}

// Count returns the number of instances, 0 for an absent column.
func (c *Column[T]) Count() int { return c.count }

// IsSet reports whether the column is backed by foreign memory.
func (c *Column[T]) IsSet() bool { return !c.region.IsNil() }

// Descriptor returns the component descriptor.
func (c *Column[T]) Descriptor() *component.Descriptor[T] { return c.desc }

// Region returns the backing region.
func (c *Column[T]) Region() foreign.Region { return c.region }

func (c *Column[T]) check(i int) error {
	if i < 0 || i >= c.count {
		e := errors.OutOfBounds(errors.PhaseAccess, nil, i, c.count)
		e.Component = c.desc.Name()
		return e
	}
	return nil
}

// Get reads instance i.
func (c *Column[T]) Get(i int) (T, error) {
	var v T
	if err := c.GetInto(i, &v); err != nil {
		return v, err
	}
	return v, nil
}

// GetInto reads instance i into v.
func (c *Column[T]) GetInto(i int, v *T) error {
	if err := c.check(i); err != nil {
		return err
	}
	b, err := c.region.Bytes()
	if err != nil {
		return err
	}
	c.desc.ReadInto(b, i*c.size, v)
	return nil
}

// Set writes v to instance i.
func (c *Column[T]) Set(i int, v *T) error {
	if err := c.check(i); err != nil {
		return err
	}
	b, err := c.region.Bytes()
	if err != nil {
		return err
	}
	c.desc.Write(b, i*c.size, v)
	return nil
}

// MutView returns a pooled view of instance i. The view is valid until the
// pool wraps around or the batch ends.
func (c *Column[T]) MutView(i int) (*view.View, error) {
	if err := c.check(i); err != nil {
		return nil, err
	}
	if c.pool == nil {
		return nil, errors.NilPointer(errors.PhaseAccess, []string{c.desc.Name()}, "*view.Stage")
	}
	return c.pool.Bind(c.region, i*c.size)
}

// Each calls fn for every instance in order with a single pooled view
// rebound per row. It stops early when fn returns false.
func (c *Column[T]) Each(fn func(i int, v *view.View) bool) error {
	if c.count == 0 {
		return nil
	}
	if c.pool == nil {
		return errors.NilPointer(errors.PhaseAccess, []string{c.desc.Name()}, "*view.Stage")
	}
	v := c.pool.Acquire()
	for i := range c.count {
		if err := v.Rebind(c.region, i*c.size); err != nil {
			return err
		}
		if !fn(i, v) {
			return nil
		}
	}
	return nil
}
