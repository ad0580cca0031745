package codegen

import (
	"bytes"
	"go/format"
	"strings"
	"text/template"

	"go.uber.org/zap"

	"github.com/wippyai/ecs-abi/decl"
	"github.com/wippyai/ecs-abi/errors"
)

var funcs = template.FuncMap{
	"lower": func(s string) string {
		return strings.ToLower(s[:1]) + s[1:]
	},
}

var fileTemplate = template.Must(template.New("file").Funcs(funcs).Parse(`// Code generated by ecsgen. DO NOT EDIT.

package {{.Package}}

import (
	"github.com/wippyai/ecs-abi/component"
	"github.com/wippyai/ecs-abi/schema"
{{- if .NeedsView}}
	"github.com/wippyai/ecs-abi/foreign"
	"github.com/wippyai/ecs-abi/view"
{{- end}}
)
{{range .Components}}{{$c := .}}
{{- range .Doc}}
// {{.}}
{{- else}}
// {{.Name}} is a component.
{{- end}}
//
// Layout: size {{.Size}}, align {{.Align}}
//
{{- range .Fields}}
//	{{.Name}}	{{.GoType}}	offset {{.Offset}}{{if .Padding}} (after {{.Padding}} padding){{end}}
{{- end}}
{{- if .Padding}}
//	trailing padding {{.Padding}}
{{- end}}
type {{.Name}} struct {
{{- range .Fields}}
	{{.GoName}} {{.GoType}} ` + "`" + `ecs:"{{.Name}}"` + "`" + `
{{- end}}
}

const (
	{{.Name}}Size  = {{.Size}}
	{{.Name}}Align = {{.Align}}
{{- range .Fields}}
	{{$c.Name}}Offset{{.GoName}} = {{.Offset}}
{{- end}}
)

// {{.Name}}Schema declares the fields of {{.Name}}.
var {{.Name}}Schema = schema.MustNew({{printf "%q" .Name}},
{{- range .Fields}}
	{{.SchemaCtor}},
{{- end}}
)

// {{.Name}}Descriptor binds {{.Name}} to {{.Name}}Schema.
var {{.Name}}Descriptor = component.MustNew[{{.Name}}]({{.Name}}Schema)
{{if .Fields}}
var (
{{- range .Fields}}
	{{lower $c.Name}}Field{{.GoName}} = {{$c.Name}}Descriptor.MustField({{printf "%q" .Name}})
{{- end}}
)

// {{.Name}}View reads and writes one {{.Name}} in place.
type {{.Name}}View struct {
	*view.View
}

// Acquire{{.Name}}View takes a view from the stage pool and binds it to
// the instance at offset within region.
func Acquire{{.Name}}View(stage *view.Stage, region foreign.Region, offset int) ({{.Name}}View, error) {
	v, err := stage.Pool({{.Name}}Descriptor).Bind(region, offset)
	return {{.Name}}View{v}, err
}
{{range .Fields}}
{{- if .BoolElem}}
func (v {{$c.Name}}View) {{.GoName}}(i int) bool {
	return view.ElemAt[uint8](v.View, {{lower $c.Name}}Field{{.GoName}}, i) != 0
}

func (v {{$c.Name}}View) Set{{.GoName}}(i int, x bool) {{$c.Name}}View {
	var b uint8
	if x {
		b = 1
	}
	view.SetElemAt(v.View, {{lower $c.Name}}Field{{.GoName}}, i, b)
	return v
}
{{else if .Array}}
func (v {{$c.Name}}View) {{.GoName}}(i int) {{.ElemType}} {
	return view.ElemAt[{{.ElemType}}](v.View, {{lower $c.Name}}Field{{.GoName}}, i)
}

func (v {{$c.Name}}View) Set{{.GoName}}(i int, x {{.ElemType}}) {{$c.Name}}View {
	view.SetElemAt(v.View, {{lower $c.Name}}Field{{.GoName}}, i, x)
	return v
}
{{else}}
func (v {{$c.Name}}View) {{.GoName}}() {{.GoType}} {
	return v.View.{{.Accessor}}({{lower $c.Name}}Field{{.GoName}})
}

func (v {{$c.Name}}View) Set{{.GoName}}(x {{.GoType}}) {{$c.Name}}View {
	v.View.Set{{.Accessor}}({{lower $c.Name}}Field{{.GoName}}, x)
	return v
}
{{end}}
{{- end}}
{{- end}}
{{- end}}
// Register adds every component declared in this file to reg.
func Register(reg *component.Registry) error {
{{- range .Components}}
	if err := component.Register(reg, {{.Name}}Descriptor); err != nil {
		return err
	}
{{- end}}
	return nil
}
`))

// Generate renders Go source for comps in package pkg.
func Generate(pkg string, comps []decl.Component) ([]byte, error) {
	m, err := buildModel(pkg, comps)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, m); err != nil {
		return nil, errors.Wrap(errors.PhaseGenerate, errors.KindInvalidInput, err, "render template")
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, errors.Wrap(errors.PhaseGenerate, errors.KindInvalidInput, err, "format generated source")
	}

	Logger().Debug("generated components",
		zap.String("package", pkg),
		zap.Int("components", len(m.Components)),
		zap.Int("bytes", len(src)))
	return src, nil
}

// GenerateFiles renders every component of files into one source file.
func GenerateFiles(pkg string, files ...*decl.File) ([]byte, error) {
	var comps []decl.Component
	for _, f := range files {
		comps = append(comps, f.Components...)
	}
	return Generate(pkg, comps)
}
