package codegen

import (
	"go/token"
	"strconv"
	"strings"
	"unicode"

	"github.com/wippyai/ecs-abi/decl"
	"github.com/wippyai/ecs-abi/errors"
	"github.com/wippyai/ecs-abi/layout"
	"github.com/wippyai/ecs-abi/schema"
)

type fileModel struct {
	Package    string
	Components []componentModel
	NeedsView  bool
}

type componentModel struct {
	Name    string
	Doc     []string
	Size    uint32
	Align   uint32
	Padding uint32
	Fields  []fieldModel
}

type fieldModel struct {
	Name       string // schema name
	GoName     string
	GoType     string
	SchemaCtor string
	Accessor   string // view method suffix, e.g. Float32
	ElemType   string // Go element type of arrays
	Offset     uint32
	Size       uint32
	Padding    uint32
	Array      bool
	BoolElem   bool
}

var initialisms = map[string]string{
	"id": "ID",
	"hp": "HP",
	"xp": "XP",
	"ui": "UI",
}

// goName converts a schema field name to an exported Go identifier:
// "max_hp" -> "MaxHP", "move-speed" -> "MoveSpeed".
func goName(name string) string {
	var b strings.Builder
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	for _, p := range parts {
		if up, ok := initialisms[strings.ToLower(p)]; ok {
			b.WriteString(up)
			continue
		}
		r := []rune(p)
		r[0] = unicode.ToUpper(r[0])
		b.WriteString(string(r))
	}
	return b.String()
}

func exportedKind(k schema.Kind) string {
	s := k.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

func buildModel(pkg string, comps []decl.Component) (*fileModel, error) {
	if !token.IsIdentifier(pkg) {
		return nil, errors.InvalidInput(errors.PhaseGenerate, "invalid package name "+strconv.Quote(pkg))
	}

	calc := layout.NewCalculator()
	m := &fileModel{Package: pkg}
	names := make(map[string]bool)

	for _, c := range comps {
		if !token.IsIdentifier(c.Name) || !token.IsExported(c.Name) {
			return nil, errors.New(errors.PhaseGenerate, errors.KindInvalidInput).
				Component(c.Name).
				Detail("component name must be an exported Go identifier").
				Build()
		}
		if names[c.Name] {
			return nil, errors.New(errors.PhaseGenerate, errors.KindDuplicate).
				Component(c.Name).
				Detail("component declared twice").
				Build()
		}
		names[c.Name] = true

		s, err := c.Schema()
		if err != nil {
			return nil, err
		}
		l, err := calc.Calculate(s)
		if err != nil {
			return nil, err
		}

		cm, err := buildComponent(c, s, l)
		if err != nil {
			return nil, err
		}
		if len(cm.Fields) > 0 {
			m.NeedsView = true
		}
		m.Components = append(m.Components, cm)
	}
	return m, nil
}

func buildComponent(c decl.Component, s *schema.Schema, l layout.Layout) (componentModel, error) {
	cm := componentModel{
		Name:    c.Name,
		Size:    l.Size,
		Align:   l.Align,
		Padding: l.TrailingPadding,
	}
	if c.Doc != "" {
		cm.Doc = strings.Split(strings.TrimSpace(c.Doc), "\n")
	}

	goNames := make(map[string]string)
	methods := map[string]string{"View": ""}
	for i, f := range s.Fields() {
		fl := l.Fields[i]
		fm := fieldModel{
			Name:    f.Name,
			GoName:  goName(f.Name),
			Offset:  fl.Offset,
			Size:    fl.Size,
			Padding: fl.Padding,
		}
		if !token.IsIdentifier(fm.GoName) {
			return cm, errors.New(errors.PhaseGenerate, errors.KindInvalidInput).
				Component(c.Name).
				Path(f.Name).
				Detail("field name does not map to a Go identifier").
				Build()
		}
		if prev, dup := goNames[fm.GoName]; dup {
			return cm, errors.New(errors.PhaseGenerate, errors.KindDuplicate).
				Component(c.Name).
				Path(f.Name).
				Detail("Go name %s already used by field %s", fm.GoName, prev).
				Build()
		}
		goNames[fm.GoName] = f.Name

		for _, method := range []string{fm.GoName, "Set" + fm.GoName} {
			if prev, clash := methods[method]; clash {
				return cm, errors.New(errors.PhaseGenerate, errors.KindDuplicate).
					Component(c.Name).
					Path(f.Name).
					Detail("view method %s clashes with %q", method, prev).
					Build()
			}
			methods[method] = f.Name
		}

		switch f.Kind {
		case schema.KindString:
			fm.GoType = "string"
			fm.Accessor = "String"
			fm.SchemaCtor = "schema.String(" + strconv.Quote(f.Name) + ", " + strconv.FormatUint(uint64(f.Capacity), 10) + ")"
		case schema.KindArray:
			fm.Array = true
			fm.ElemType = f.Elem.String()
			fm.BoolElem = f.Elem == schema.KindBool
			fm.GoType = "[" + strconv.FormatUint(uint64(f.Capacity), 10) + "]" + fm.ElemType
			fm.SchemaCtor = "schema.Array(" + strconv.Quote(f.Name) + ", schema.Kind" + exportedKind(f.Elem) + ", " + strconv.FormatUint(uint64(f.Capacity), 10) + ")"
		default:
			fm.GoType = f.Kind.String()
			fm.Accessor = exportedKind(f.Kind)
			fm.SchemaCtor = "schema." + exportedKind(f.Kind) + "(" + strconv.Quote(f.Name) + ")"
		}
		cm.Fields = append(cm.Fields, fm)
	}
	return cm, nil
}
