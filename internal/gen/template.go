package gen

import (
	"strconv"
	"text/template"

	"marshaller-generator/internal/analyze"
)

var templateFuncs = template.FuncMap{
	"quote":  strconv.Quote,
	"header": func() string { return analyze.GeneratedHeader },
}

// marshallerTemplate renders one marshaller file. The output is passed
// through go/format, so indentation inside the template is not significant.
var marshallerTemplate = template.Must(template.New("marshaller").Funcs(templateFuncs).Parse(`{{header}}

package {{.Package}}
{{if .Imports}}
import (
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})
{{end}}
{{if .Comments}}// {{.Type}} reads and writes {{.Model}} columns.
{{end}}type {{.Type}} struct{}

func init() {
	{{.RT}}Register[{{.Model}}]({{.Type}}{})
}

{{if .Comments}}// LoadFromCursor copies the current row of cursor into a *{{.Model}}.
{{end}}func ({{.Type}}) LoadFromCursor(model any, cursor {{.RT}}Cursor) error {
	m, ok := model.(*{{.Model}})
	if !ok {
		return {{.RT}}NewModelTypeError({{quote .Model}}, model)
	}
{{range .Embeds}}
{{if .Pointer}}	if m.{{.Field}} == nil {
		m.{{.Field}} = new({{.Type}})
	}

	if err := {{$.RT}}LoadEmbedded(m.{{.Field}}, cursor); err != nil {
		return err
	}
{{else}}	if err := {{$.RT}}LoadEmbedded(&m.{{.Field}}, cursor); err != nil {
		return err
	}
{{end}}{{end}}{{if .Loads}}
	columns := cursor.ColumnNames()

	var (
		i   int
		err error
	)
{{range .Loads}}
	i, err = {{$.RT}}ColumnIndex(columns, {{quote .Column}})
	if err != nil {
		return err
	}

{{if .Probe}}	if {{$.RT}}IsSerializable[{{.ProbeType}}]() {
		if {{.Target}}, err = {{$.RT}}GetSerializable[{{.ProbeType}}](cursor, i); err != nil {
			return err
		}
	} else {
{{template "read" .}}
	}
{{else}}{{template "read" .}}
{{end}}{{end}}{{end}}
	return cursor.Err()
}

{{if .Comments}}// FillValues writes the columns of a *{{.Model}} into values.
{{end}}func ({{.Type}}) FillValues(model any, values *{{.RT}}Values) error {
	m, ok := model.(*{{.Model}})
	if !ok {
		return {{.RT}}NewModelTypeError({{quote .Model}}, model)
	}
{{range .Embeds}}
{{if .Pointer}}	if m.{{.Field}} != nil {
		if err := {{$.RT}}FillEmbedded(m.{{.Field}}, values); err != nil {
			return err
		}
	}
{{else}}	if err := {{$.RT}}FillEmbedded(&m.{{.Field}}, values); err != nil {
		return err
	}
{{end}}{{end}}{{range .Fills}}
{{if .Probe}}	if {{$.RT}}IsSerializable[{{.ProbeType}}]() {
		if err := {{$.RT}}SetSerializable(values, {{quote .Column}}, {{.Target}}); err != nil {
			return err
		}
	} else {{if .NilCheck}}{{template "guarded" .}}{{else}}{
		{{.Write}}
	}{{end}}
{{else if .NilCheck}}	{{template "guarded" .}}
{{else}}	{{.Write}}
{{end}}{{end}}
	return nil
}
{{define "read"}}{{if .Nullable}}	if cursor.IsNull(i) {
		{{.Target}} = nil
	} else {{if .Fallible}}if {{.Target}}, err = {{.Expr}}; err != nil {
		return err
	}{{else}}{
		{{.Target}} = {{.Expr}}
	}{{end}}{{else if .Fallible}}	if {{.Target}}, err = {{.Expr}}; err != nil {
		return err
	}{{else}}	{{.Target}} = {{.Expr}}{{end}}{{end}}
{{define "guarded"}}if {{.Target}} != nil {
		{{.Write}}
	}{{if .NullElse}} else {
		values.PutNull({{quote .Column}})
	}{{end}}{{end}}
`))
