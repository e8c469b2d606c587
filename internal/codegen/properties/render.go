package properties

import (
	"fmt"
	"strings"
	"text/template"
)

// Rendered holds the four snippets a template contributes to a node
// descriptor. Each snippet is already indented for its slot.
type Rendered struct {
	Form        string
	Defaults    string
	EditPrepare string
	EditSave    string
}

const formTemplate = `{{range $i, $f := .}}{{if $i}}
{{end}}    <div class="form-row">
        <label for="node-input-{{$f.Name}}"><i class="fa {{$f.Icon}}"></i> {{html $f.Label}}</label>
        <input type="text" id="node-input-{{$f.Name}}">
        <div class="form-tips">{{html $f.Tip}}</div>
    </div>{{end}}`

const defaultsTemplate = `{{range $i, $f := .}}{{if $i}},
{{end}}            {{$f.Name}}: {{if or $f.Required (validator $f.Rule)}}{
                value: {{$f.Default}},{{if $f.Required}}
                required: true,{{end}}{{with validator $f.Rule}}
                validate: function(v) {
                    try {
                        const parsed = typeof v === 'string' ? JSON.parse(v) : v;
                        return {{.}};
                    } catch (e) {
                        return false;
                    }
                }{{end}}
            }{{else}}{ value: {{$f.Default}} }{{end}}{{end}}`

const editPrepareTemplate = `{{range $i, $f := .}}{{if $i}}
{{end}}            $('#node-input-{{$f.Name}}').typedInput({
                type: 'json',
                types: ['json']
            });{{end}}`

var renderFuncs = template.FuncMap{
	"validator": validator,
}

var (
	formTmpl        = template.Must(template.New("form").Parse(formTemplate))
	defaultsTmpl    = template.Must(template.New("defaults").Funcs(renderFuncs).Parse(defaultsTemplate))
	editPrepareTmpl = template.Must(template.New("editprepare").Parse(editPrepareTemplate))
)

// validator returns the boolean JS expression checking parsed for rule, or
// the empty string when the rule needs no check.
func validator(rule Rule) string {
	switch rule {
	case RuleArray:
		return "Array.isArray(parsed)"
	case RuleNonEmptyArray:
		return "Array.isArray(parsed) && parsed.length > 0"
	case RuleObject:
		return "parsed !== null && typeof parsed === 'object' && !Array.isArray(parsed)"
	default:
		return ""
	}
}

// Inputs returns the fields rendered as form rows.
func (t Template) Inputs() []Field {
	var out []Field
	for _, f := range t.Fields {
		if f.Input {
			out = append(out, f)
		}
	}
	return out
}

// Render produces the form markup, default declarations, edit-prepare
// snippet and save hook of t.
func (t Template) Render() (Rendered, error) {
	for _, f := range t.Fields {
		if f.Name == "" || f.Default == "" {
			return Rendered{}, fmt.Errorf("%s property template: field %q needs a name and a default", t.Type, f.Name)
		}
		if f.Input && (f.Label == "" || f.Icon == "") {
			return Rendered{}, fmt.Errorf("%s property template: input field %q needs a label and an icon", t.Type, f.Name)
		}
	}

	inputs := t.Inputs()
	var r Rendered
	var err error
	if r.Form, err = execute(formTmpl, inputs); err != nil {
		return Rendered{}, fmt.Errorf("%s property form: %w", t.Type, err)
	}
	if r.Defaults, err = execute(defaultsTmpl, t.Fields); err != nil {
		return Rendered{}, fmt.Errorf("%s property defaults: %w", t.Type, err)
	}
	if r.EditPrepare, err = execute(editPrepareTmpl, inputs); err != nil {
		return Rendered{}, fmt.Errorf("%s property edit prepare: %w", t.Type, err)
	}
	if t.SaveHook != "" {
		r.EditSave = "            " + t.SaveHook
	}
	return r, nil
}

func execute(tmpl *template.Template, data any) (string, error) {
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}
