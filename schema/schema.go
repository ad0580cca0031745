package schema

import (
	"github.com/wippyai/ecs-abi/errors"
	"github.com/wippyai/ecs-abi/internal/abi"
)

// Schema is the ordered field list of one component type.
// A Schema is immutable once constructed.
type Schema struct {
	index  map[string]int
	name   string
	fields []Field
}

// New validates fields and builds a Schema. All violations are build-time
// schema errors: a variable-shaped field without capacity, a string capacity
// that is not a power of two, array elements that are not primitives,
// unknown kinds, and empty or duplicate field names.
func New(name string, fields ...Field) (*Schema, error) {
	if name == "" {
		return nil, errors.InvalidInput(errors.PhaseSchema, "component name cannot be empty")
	}

	s := &Schema{
		name:   name,
		fields: make([]Field, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	copy(s.fields, fields)

	for i, f := range s.fields {
		if err := validateField(name, f); err != nil {
			return nil, err
		}
		if _, dup := s.index[f.Name]; dup {
			return nil, errors.New(errors.PhaseSchema, errors.KindDuplicate).
				Component(name).
				Path(f.Name).
				Detail("field declared more than once").
				Build()
		}
		s.index[f.Name] = i
	}

	return s, nil
}

// MustNew is New that panics on error. Generated registration code uses it
// because its input was validated when the code was generated.
func MustNew(name string, fields ...Field) *Schema {
	s, err := New(name, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

func validateField(component string, f Field) error {
	if f.Name == "" {
		return errors.New(errors.PhaseSchema, errors.KindInvalidInput).
			Component(component).
			Detail("field name cannot be empty").
			Build()
	}

	switch {
	case f.Kind.IsPrimitive():
		if f.Capacity != 0 {
			return errors.InvalidCapacity(component, f.Name, f.Capacity, "capacity only applies to string and array fields")
		}
	case f.Kind == KindString:
		if f.Capacity == 0 {
			return errors.MissingCapacity(component, f.Name, f.Kind.String())
		}
		if !abi.IsPowerOfTwo(f.Capacity) {
			return errors.InvalidCapacity(component, f.Name, f.Capacity, "string capacity must be a power of two")
		}
	case f.Kind == KindArray:
		if !f.Elem.IsPrimitive() {
			return errors.New(errors.PhaseSchema, errors.KindUnsupported).
				Component(component).
				Path(f.Name).
				SchemaType(f.Elem.String()).
				Detail("array elements must be primitive").
				Build()
		}
		if f.Capacity == 0 {
			return errors.MissingCapacity(component, f.Name, f.Kind.String())
		}
	default:
		return errors.New(errors.PhaseSchema, errors.KindUnsupported).
			Component(component).
			Path(f.Name).
			Detail("unsupported field kind %d", f.Kind).
			Build()
	}
	return nil
}

// Name returns the component name.
func (s *Schema) Name() string {
	return s.name
}

// Len returns the number of declared fields.
func (s *Schema) Len() int {
	return len(s.fields)
}

// Field returns the i-th field in declaration order.
func (s *Schema) Field(i int) Field {
	return s.fields[i]
}

// Fields returns a copy of the declared fields.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Index returns the declaration index of the named field.
func (s *Schema) Index(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// Equal reports whether two schemas declare the same fields in the same order.
func (s *Schema) Equal(o *Schema) bool {
	if s == o {
		return true
	}
	if s == nil || o == nil || s.name != o.name || len(s.fields) != len(o.fields) {
		return false
	}
	for i := range s.fields {
		if s.fields[i] != o.fields[i] {
			return false
		}
	}
	return true
}
