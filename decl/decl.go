package decl

import (
	"strconv"
	"strings"

	"github.com/wippyai/ecs-abi/errors"
	"github.com/wippyai/ecs-abi/schema"
)

// File is one declaration file.
type File struct {
	Path       string      `toml:"-" yaml:"-"`
	Package    string      `toml:"package" yaml:"package"`
	Components []Component `toml:"component" yaml:"components"`
}

// Component declares one component type.
type Component struct {
	Name   string  `toml:"name" yaml:"name"`
	Doc    string  `toml:"doc" yaml:"doc"`
	Fields []Field `toml:"fields" yaml:"fields"`
}

// Field declares one component field. Capacity applies to strings and
// Length to arrays; either may instead be given in brackets on Kind.
type Field struct {
	Name     string `toml:"name" yaml:"name"`
	Kind     string `toml:"kind" yaml:"kind"`
	Elem     string `toml:"elem" yaml:"elem"`
	Capacity uint32 `toml:"capacity" yaml:"capacity"`
	Length   uint32 `toml:"length" yaml:"length"`
}

// Schema validates the declaration and builds its schema.
func (c Component) Schema() (*schema.Schema, error) {
	fields := make([]schema.Field, 0, len(c.Fields))
	for _, f := range c.Fields {
		sf, err := f.schemaField(c.Name)
		if err != nil {
			return nil, err
		}
		fields = append(fields, sf)
	}
	return schema.New(c.Name, fields...)
}

func (f Field) schemaField(component string) (schema.Field, error) {
	kind, size, ok := splitKind(f.Kind)
	if !ok {
		return schema.Field{}, f.invalid(component, "malformed kind "+strconv.Quote(f.Kind))
	}

	k, ok := schema.ParseKind(kind)
	if ok && k == schema.KindArray {
		elem, ok := schema.ParseKind(f.Elem)
		if !ok {
			return schema.Field{}, f.invalid(component, "unknown array element kind "+strconv.Quote(f.Elem))
		}
		return schema.Array(f.Name, elem, pick(size, f.Length)), nil
	}
	if !ok {
		return schema.Field{}, f.invalid(component, "unknown kind "+strconv.Quote(kind))
	}

	switch {
	case k == schema.KindString:
		return schema.String(f.Name, pick(size, f.Capacity)), nil
	case size > 0:
		// "int32[10]" declares an array of int32
		return schema.Array(f.Name, k, size), nil
	default:
		return schema.Field{Name: f.Name, Kind: k, Capacity: f.Capacity + f.Length}, nil
	}
}

func (f Field) invalid(component, detail string) error {
	return errors.New(errors.PhaseLoad, errors.KindInvalidInput).
		Component(component).
		Path(f.Name).
		Detail("%s", detail).
		Build()
}

func pick(bracket, explicit uint32) uint32 {
	if bracket > 0 {
		return bracket
	}
	return explicit
}

// splitKind parses "kind" or "kind[N]".
func splitKind(s string) (string, uint32, bool) {
	s = strings.TrimSpace(s)
	open := strings.IndexByte(s, '[')
	if open < 0 {
		return strings.ToLower(s), 0, true
	}
	if !strings.HasSuffix(s, "]") {
		return "", 0, false
	}
	n, err := strconv.ParseUint(s[open+1:len(s)-1], 10, 32)
	if err != nil {
		return "", 0, false
	}
	return strings.ToLower(strings.TrimSpace(s[:open])), uint32(n), true
}
