package properties

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s2ws/s2gen/internal/codegen/controltype"
	th "github.com/s2ws/s2gen/internal/testing"
)

func TestForEveryControlType(t *testing.T) {
	for _, ct := range controltype.All() {
		t.Run(string(ct), func(t *testing.T) {
			tmpl, err := For(ct)
			require.NoError(t, err)
			assert.Equal(t, ct, tmpl.Type)
			assert.NotEmpty(t, tmpl.Inputs())
		})
	}
}

func TestForUnknown(t *testing.T) {
	_, err := For(controltype.ControlType("XYZ"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, controltype.ErrUnknownControlType))
}

func TestForReturnsCopy(t *testing.T) {
	a, err := For(controltype.OMBC)
	require.NoError(t, err)
	a.Fields[0].Name = "changed"

	b, err := For(controltype.OMBC)
	require.NoError(t, err)
	assert.Equal(t, "operationModes", b.Fields[0].Name)
}

func TestRender(t *testing.T) {
	tests := []struct {
		ct       controltype.ControlType
		form     []string
		defaults []string
		noForm   []string
		saveHook bool
	}{
		{
			ct:       controltype.OMBC,
			form:     []string{`id="node-input-operationModes"`, `id="node-input-transitions"`, "fa-list", "Allowed Transitions"},
			defaults: []string{"operationModes: {", "required: true", "parsed.length > 0", "transitions: {", "timers: { value: [] }"},
			noForm:   []string{"node-input-timers"},
		},
		{
			ct:       controltype.PEBC,
			form:     []string{`id="node-input-limitRanges"`, "Power Limit Ranges"},
			defaults: []string{"limitRanges: {", `consequenceType: { value: "DEFER" }`},
			noForm:   []string{"node-input-consequenceType"},
		},
		{
			ct:       controltype.PPBC,
			form:     []string{`id="node-input-sequences"`, "fa-list-ol"},
			defaults: []string{"sequences: {"},
		},
		{
			ct:       controltype.FRBC,
			form:     []string{`id="node-input-storage"`, `id="node-input-actuators"`},
			defaults: []string{"storage: {", "value: {},", "typeof parsed === 'object'", "actuators: {"},
			saveHook: true,
		},
		{
			ct:       controltype.DDBC,
			form:     []string{`id="node-input-demandRate"`, `id="node-input-actuators"`, "fa-tachometer"},
			defaults: []string{"demandRate: {", "actuators: {"},
			saveHook: true,
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.ct), func(t *testing.T) {
			tmpl, err := For(tt.ct)
			require.NoError(t, err)
			r, err := tmpl.Render()
			require.NoError(t, err)

			for _, want := range tt.form {
				assert.Contains(t, r.Form, want)
			}
			for _, unwanted := range tt.noForm {
				assert.NotContains(t, r.Form, unwanted)
				assert.NotContains(t, r.EditPrepare, unwanted)
			}
			for _, want := range tt.defaults {
				assert.Contains(t, r.Defaults, want)
			}
			assert.Equal(t, len(tmpl.Inputs()), strings.Count(r.EditPrepare, ".typedInput("))
			assert.Equal(t, len(tmpl.Inputs()), strings.Count(r.Form, `<div class="form-row">`))
			if tt.saveHook {
				assert.Contains(t, r.EditSave, "Additional validation")
			} else {
				assert.Empty(t, r.EditSave)
			}
		})
	}
}

func TestRenderDefaultsSeparated(t *testing.T) {
	tmpl, err := For(controltype.OMBC)
	require.NoError(t, err)
	r, err := tmpl.Render()
	require.NoError(t, err)

	assert.Equal(t, len(tmpl.Fields)-1, strings.Count(r.Defaults, "},\n"))
	assert.False(t, strings.HasSuffix(strings.TrimSpace(r.Defaults), ","))
}

func TestRenderRejectsIncompleteField(t *testing.T) {
	tests := []struct {
		name  string
		field Field
	}{
		{name: "missing default", field: Field{Name: "x"}},
		{name: "input without label", field: Field{Name: "x", Default: "[]", Input: true, Icon: "fa-list"}},
		{name: "input without icon", field: Field{Name: "x", Default: "[]", Input: true, Label: "X"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Template{Type: controltype.OMBC, Fields: []Field{tt.field}}.Render()
			assert.Error(t, err)
		})
	}
}

func TestBackedBy(t *testing.T) {
	tmpl, err := For(controltype.OMBC)
	require.NoError(t, err)

	fields := tmpl.BackedBy("OMBC.SystemDescription")
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"operationModes", "transitions", "timers"}, names)
	assert.Empty(t, tmpl.BackedBy("OMBC.Instruction"))
}

func TestValidateAgainstFixture(t *testing.T) {
	doc := th.LoadSpec(t)
	for _, ct := range controltype.All() {
		t.Run(string(ct), func(t *testing.T) {
			tmpl, err := For(ct)
			require.NoError(t, err)
			assert.Empty(t, Validate(tmpl, doc))
		})
	}
}

func TestValidateReportsDrift(t *testing.T) {
	doc := th.ParseSpec(t, `
asyncapi: 2.6.0
info:
  title: drift
  version: 1.0.0
components:
  schemas:
    PowerConstraints:
      type: object
      properties:
        consequence_type:
          type: string
  messages:
    PEBC.PowerConstraints:
      payload:
        $ref: '#/components/schemas/PowerConstraints'
`)
	tmpl, err := For(controltype.PEBC)
	require.NoError(t, err)

	errs := Validate(tmpl, doc)
	require.Len(t, errs, 1)
	assert.True(t, errors.Is(errs[0], ErrMissingBacking))
	assert.Contains(t, errs[0].Error(), "allowed_limit_ranges")

	tmpl, err = For(controltype.PPBC)
	require.NoError(t, err)
	errs = Validate(tmpl, doc)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "PPBC.PowerProfileDefinition")
}
