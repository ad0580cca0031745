package schema

import (
	"go.bytecodealliance.org/wit"

	"github.com/wippyai/ecs-abi/errors"
)

// FromWIT converts a WIT record into a component schema.
//
// WIT has no notion of fixed capacity, so every string and list<T> field must
// have an entry in caps (byte capacity for strings, element count for
// lists). A missing entry is a missing-capacity schema error. WIT char maps
// to uint32.
func FromWIT(name string, r *wit.Record, caps map[string]uint32) (*Schema, error) {
	if r == nil {
		return nil, errors.NilPointer(errors.PhaseSchema, []string{name}, "*wit.Record")
	}

	fields := make([]Field, 0, len(r.Fields))
	for _, wf := range r.Fields {
		f, err := witField(name, wf.Name, wf.Type, caps)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return New(name, fields...)
}

func witField(component, fieldName string, t wit.Type, caps map[string]uint32) (Field, error) {
	if k, ok := witPrimitive(t); ok {
		return Primitive(fieldName, k), nil
	}

	switch typ := t.(type) {
	case wit.String:
		c, ok := caps[fieldName]
		if !ok {
			return Field{}, errors.MissingCapacity(component, fieldName, "string")
		}
		return String(fieldName, c), nil

	case *wit.TypeDef:
		switch kind := typ.Kind.(type) {
		case *wit.List:
			elem, ok := witPrimitive(kind.Type)
			if !ok {
				return Field{}, errors.New(errors.PhaseSchema, errors.KindUnsupported).
					Component(component).
					Path(fieldName).
					Detail("list element must be a primitive, got %T", kind.Type).
					Build()
			}
			n, ok := caps[fieldName]
			if !ok {
				return Field{}, errors.MissingCapacity(component, fieldName, "list")
			}
			return Array(fieldName, elem, n), nil
		case wit.Type:
			return witField(component, fieldName, kind, caps)
		}
	}

	return Field{}, errors.New(errors.PhaseSchema, errors.KindUnsupported).
		Component(component).
		Path(fieldName).
		Detail("unsupported WIT type %T", t).
		Build()
}

func witPrimitive(t wit.Type) (Kind, bool) {
	switch typ := t.(type) {
	case wit.Bool:
		return KindBool, true
	case wit.S8:
		return KindInt8, true
	case wit.U8:
		return KindUint8, true
	case wit.S16:
		return KindInt16, true
	case wit.U16:
		return KindUint16, true
	case wit.S32:
		return KindInt32, true
	case wit.U32, wit.Char:
		return KindUint32, true
	case wit.S64:
		return KindInt64, true
	case wit.U64:
		return KindUint64, true
	case wit.F32:
		return KindFloat32, true
	case wit.F64:
		return KindFloat64, true
	case *wit.TypeDef:
		if alias, ok := typ.Kind.(wit.Type); ok {
			return witPrimitive(alias)
		}
	}
	return 0, false
}
