// Package table reads and writes components of one engine table row by row.
//
// The engine stores entities with the same component set in a table: one
// dense column per component, all with Count() rows. Source is the engine's
// introspection interface; Table resolves Go component types to columns
// through a component.Registry.
package table

import (
	"github.com/wippyai/ecs-abi/column"
	"github.com/wippyai/ecs-abi/component"
	"github.com/wippyai/ecs-abi/errors"
	"github.com/wippyai/ecs-abi/foreign"
	"github.com/wippyai/ecs-abi/internal/abi"
	"github.com/wippyai/ecs-abi/view"
)

// Source is implemented by the native engine for one table.
type Source interface {
	// Count returns the number of rows.
	Count() int
	// ColumnIndex returns the column holding the component, or -1.
	ColumnIndex(id component.ID) int
	// Column maps the column at index for the current batch.
	Column(index int) (foreign.Region, error)
	// Entities returns the entity ID of every row.
	Entities() []uint64
}

// Table binds a Source to a registry and the stage of the calling thread.
type Table struct {
	src   Source
	reg   *component.Registry
	stage *view.Stage
}

// New creates a table view. stage may be nil when only Get and Set are used.
func New(src Source, reg *component.Registry, stage *view.Stage) *Table {
	return &Table{src: src, reg: reg, stage: stage}
}

// Count returns the number of rows.
func (t *Table) Count() int { return t.src.Count() }

// Entities returns the entity ID of every row.
func (t *Table) Entities() []uint64 { return t.src.Entities() }

// Has reports whether the table stores component T.
func Has[T any](t *Table) bool {
	id, ok := component.IDOf[T](t.reg)
	return ok && t.src.ColumnIndex(id) >= 0
}

// Column returns the column of component T.
func Column[T any](t *Table) (*column.Column[T], error) {
	s, err := resolve[T](t)
	if err != nil {
		return nil, err
	}
	return column.New(s.desc, s.region, s.count, t.stage)
}

// Get reads component T of row. A missing component is a not-found error,
// never a zero value.
func Get[T any](t *Table, row int) (T, error) {
	var v T
	s, err := resolve[T](t)
	if err != nil {
		return v, err
	}
	b, off, err := s.at(row)
	if err != nil {
		return v, err
	}
	s.desc.ReadInto(b, off, &v)
	return v, nil
}

// GetMutView returns a pooled view of component T at row.
func GetMutView[T any](t *Table, row int) (*view.View, error) {
	s, err := resolve[T](t)
	if err != nil {
		return nil, err
	}
	if err := s.check(row); err != nil {
		return nil, err
	}
	if t.stage == nil {
		return nil, errors.NilPointer(errors.PhaseAccess, []string{s.desc.Name()}, "*view.Stage")
	}
	return t.stage.Pool(s.desc).Bind(s.region, row*int(s.desc.Size()))
}

// Set writes component T of row.
func Set[T any](t *Table, row int, v *T) error {
	s, err := resolve[T](t)
	if err != nil {
		return err
	}
	b, off, err := s.at(row)
	if err != nil {
		return err
	}
	s.desc.Write(b, off, v)
	return nil
}

// ForEachRow calls fn for every row with one pooled view of component T.
// It stops early when fn returns false.
func ForEachRow[T any](t *Table, fn func(row int, v *view.View) bool) error {
	s, err := resolve[T](t)
	if err != nil {
		return err
	}
	if s.count == 0 {
		return nil
	}
	if t.stage == nil {
		return errors.NilPointer(errors.PhaseAccess, []string{s.desc.Name()}, "*view.Stage")
	}
	size := int(s.desc.Size())
	v := t.stage.Pool(s.desc).Acquire()
	for row := range s.count {
		if err := v.Rebind(s.region, row*size); err != nil {
			return err
		}
		if !fn(row, v) {
			return nil
		}
	}
	return nil
}

// slot is component T resolved to its column for the current batch.
type slot[T any] struct {
	desc   *component.Descriptor[T]
	region foreign.Region
	count  int
}

func resolve[T any](t *Table) (slot[T], error) {
	desc, ok := component.Lookup[T](t.reg)
	if !ok {
		return slot[T]{}, errors.NotFound(errors.PhaseAccess, "registered component", typeName[T]())
	}
	id, ok := component.IDOf[T](t.reg)
	if !ok {
		return slot[T]{}, errors.NotFound(errors.PhaseAccess, "bound component", desc.Name())
	}
	index := t.src.ColumnIndex(id)
	if index < 0 {
		return slot[T]{}, errors.NotFound(errors.PhaseAccess, "table column", desc.Name())
	}
	region, err := t.src.Column(index)
	if err != nil {
		return slot[T]{}, err
	}
	if region.IsNil() {
		return slot[T]{}, errors.NotFound(errors.PhaseAccess, "table column", desc.Name())
	}
	return slot[T]{desc: desc, region: region, count: t.src.Count()}, nil
}

func (s slot[T]) check(row int) error {
	if row < 0 || row >= s.count {
		e := errors.OutOfBounds(errors.PhaseAccess, nil, row, s.count)
		e.Component = s.desc.Name()
		return e
	}
	return nil
}

// at returns the column bytes and the offset of row within them.
func (s slot[T]) at(row int) ([]byte, int, error) {
	if err := s.check(row); err != nil {
		return nil, 0, err
	}
	b, err := s.region.Bytes()
	if err != nil {
		return nil, 0, err
	}
	size := int(s.desc.Size())
	off := row * size
	if off > len(b)-size {
		return nil, 0, errors.New(errors.PhaseAccess, errors.KindOutOfBounds).
			Component(s.desc.Name()).
			Value(row).
			Detail("row %d (size %d) exceeds region of %d bytes", row, size, len(b)).
			Build()
	}
	return b, off, nil
}

func typeName[T any]() string {
	var zero T
	return abi.TypeName(zero)
}
