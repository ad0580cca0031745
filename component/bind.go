package component

import (
	"reflect"
	"strings"
	"unicode"

	"github.com/wippyai/ecs-abi/errors"
	"github.com/wippyai/ecs-abi/schema"
)

var primitiveGoKinds = [...]reflect.Kind{
	schema.KindBool:    reflect.Bool,
	schema.KindInt8:    reflect.Int8,
	schema.KindUint8:   reflect.Uint8,
	schema.KindInt16:   reflect.Int16,
	schema.KindUint16:  reflect.Uint16,
	schema.KindInt32:   reflect.Int32,
	schema.KindUint32:  reflect.Uint32,
	schema.KindInt64:   reflect.Int64,
	schema.KindUint64:  reflect.Uint64,
	schema.KindFloat32: reflect.Float32,
	schema.KindFloat64: reflect.Float64,
}

// binding links one schema field to a Go struct field.
type binding struct {
	goType reflect.Type
	goOff  uintptr
	ref    FieldRef
	slice  bool
}

// findGoField matches by: 1) ecs:"name" tag, 2) case-insensitive, 3) snake_case.
func findGoField(goType reflect.Type, name string) (reflect.StructField, bool) {
	for i := 0; i < goType.NumField(); i++ {
		field := goType.Field(i)
		if !field.IsExported() {
			continue
		}

		if tag := field.Tag.Get("ecs"); tag != "" {
			if tag == "-" {
				continue
			}
			if tag == name {
				return field, true
			}
		}

		if strings.EqualFold(field.Name, name) {
			return field, true
		}

		if toSnakeCase(field.Name) == name {
			return field, true
		}
	}
	return reflect.StructField{}, false
}

func toSnakeCase(s string) string {
	var result strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			// break before an upper rune that starts a new word: "MaxHP" -> "max_hp"
			if i > 0 && (unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				result.WriteByte('_')
			}
			result.WriteRune(unicode.ToLower(r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

func checkGoType(component string, f schema.Field, t reflect.Type) (slice bool, err error) {
	mismatch := func() error {
		return errors.New(errors.PhaseBind, errors.KindTypeMismatch).
			Component(component).
			Path(f.Name).
			GoType(t.String()).
			SchemaType(f.TypeString()).
			Build()
	}

	switch {
	case f.Kind.IsPrimitive():
		if t.Kind() != primitiveGoKinds[f.Kind] {
			return false, mismatch()
		}
	case f.Kind == schema.KindString:
		if t.Kind() != reflect.String {
			return false, mismatch()
		}
	case f.Kind == schema.KindArray:
		switch t.Kind() {
		case reflect.Array:
			if t.Len() != int(f.Capacity) {
				return false, mismatch()
			}
		case reflect.Slice:
			slice = true
		default:
			return false, mismatch()
		}
		if t.Elem().Kind() != primitiveGoKinds[f.Elem] {
			return false, mismatch()
		}
	default:
		return false, mismatch()
	}
	return slice, nil
}
