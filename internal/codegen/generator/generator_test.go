package generator

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s2ws/s2gen/internal/codegen/controltype"
	"github.com/s2ws/s2gen/internal/codegen/generator/nodered"
	"github.com/s2ws/s2gen/internal/codegen/properties"
	"github.com/s2ws/s2gen/internal/codegen/schema"
	th "github.com/s2ws/s2gen/internal/testing"
)

const unresolvedSpec = `
asyncapi: 2.6.0
info:
  title: broken
  version: 1.0.0
components:
  schemas:
    Holder:
      type: object
      properties:
        missing:
          $ref: '#/components/schemas/Missing'
  messages:
    OMBC.Instruction:
      payload:
        $ref: '#/components/schemas/Holder'
`

const driftSpec = `
asyncapi: 2.6.0
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
`

func discardLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func newGenerator(t *testing.T, opts Options) *Generator {
	t.Helper()
	g, err := New(opts, discardLogger(), nil)
	require.NoError(t, err)
	return g
}

func writeSpec(t *testing.T, dir string) string {
	t.Helper()
	p := filepath.Join(dir, "s2-rm.yaml")
	require.NoError(t, os.WriteFile(p, th.SpecBytes(), 0o644))
	return p
}

func TestNewRejectsTypesExt(t *testing.T) {
	_, err := New(Options{TypesExt: ".js"}, discardLogger(), nil)
	assert.Error(t, err)
}

func TestRenderFixture(t *testing.T) {
	g := newGenerator(t, Options{})
	report, err := g.Render(context.Background(), th.LoadSpec(t))
	require.NoError(t, err)

	assert.Equal(t, "types/base.types.ts", report.Base.Path)
	require.Len(t, report.Sets, len(controltype.All()))
	for i, ct := range controltype.All() {
		set := report.Sets[i]
		assert.Equal(t, ct, set.ControlType)
		assert.Equal(t, "types/"+ct.Lower()+".types.ts", set.Types.Path)
		assert.Equal(t, "nodes/s2-rm-"+ct.Lower()+".js", set.Module.Path)
		assert.Equal(t, "nodes/s2-rm-"+ct.Lower()+".html", set.Descriptor.Path)
		assert.Len(t, set.Cases, th.FixtureMessageCounts[string(ct)])
		assert.Contains(t, string(set.Types.Data), "export type MessageType = keyof messages;")
	}
	assert.Empty(t, report.Skipped)
	assert.Empty(t, report.Unresolved)
	assert.Empty(t, report.Drifted)
	assert.Empty(t, report.Extra)
	assert.Len(t, report.Artifacts(), 1+3*len(controltype.All()))
}

func TestRenderDeterministic(t *testing.T) {
	g := newGenerator(t, Options{})
	doc := th.LoadSpec(t)

	a, err := g.Render(context.Background(), doc)
	require.NoError(t, err)
	b, err := g.Render(context.Background(), doc)
	require.NoError(t, err)

	if diff := cmp.Diff(a.Artifacts(), b.Artifacts()); diff != "" {
		t.Errorf("renders differ (-first +second):\n%s", diff)
	}
}

func TestRenderOptions(t *testing.T) {
	g := newGenerator(t, Options{TypesDir: "ts", NodesDir: "red", TypesExt: "d.ts", Style: nodered.StyleESM})
	report, err := g.Render(context.Background(), th.LoadSpec(t))
	require.NoError(t, err)

	assert.Equal(t, "ts/base.types.d.ts", report.Base.Path)
	assert.Equal(t, "red/s2-rm-ombc.js", report.Sets[0].Module.Path)
	assert.Contains(t, string(report.Sets[0].Module.Data), "export default function(RED)")
}

func TestRenderControlTypeSelection(t *testing.T) {
	tests := []struct {
		name    string
		tags    []string
		strict  bool
		want    []controltype.ControlType
		skipped []string
		wantErr error
	}{
		{name: "subset", tags: []string{"pebc", "OMBC", "PEBC"}, want: []controltype.ControlType{controltype.PEBC, controltype.OMBC}},
		{name: "unknown skipped", tags: []string{"XYZ", "frbc"}, want: []controltype.ControlType{controltype.FRBC}, skipped: []string{"XYZ"}},
		{name: "unknown strict", tags: []string{"XYZ", "frbc"}, strict: true, wantErr: controltype.ErrUnknownControlType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGenerator(t, Options{ControlTypes: tt.tags, Strict: tt.strict})
			report, err := g.Render(context.Background(), th.LoadSpec(t))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			var got []controltype.ControlType
			for _, s := range report.Sets {
				got = append(got, s.ControlType)
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.skipped, report.Skipped)
		})
	}
}

func TestRenderUnresolvedReference(t *testing.T) {
	doc := th.ParseSpec(t, unresolvedSpec)

	g := newGenerator(t, Options{ControlTypes: []string{"OMBC"}})
	report, err := g.Render(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"#/components/schemas/Missing"}, report.Unresolved)
	assert.Contains(t, string(report.Base.Data), "missing?: any;")
	assert.NotEmpty(t, report.Drifted)

	g = newGenerator(t, Options{ControlTypes: []string{"PPBC"}, Strict: true})
	_, err = g.Render(context.Background(), doc)
	assert.ErrorIs(t, err, schema.ErrUnresolvedReference)
}

func TestRenderTemplateDriftStrict(t *testing.T) {
	g := newGenerator(t, Options{ControlTypes: []string{"PEBC"}, Strict: true})
	_, err := g.Render(context.Background(), th.ParseSpec(t, driftSpec))
	require.Error(t, err)
	assert.ErrorIs(t, err, properties.ErrMissingBacking)
}

func TestRenderCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g := newGenerator(t, Options{})
	_, err := g.Render(ctx, th.LoadSpec(t))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunWritesArtifacts(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	g := newGenerator(t, Options{OutputDir: out, Manifest: true, Package: true})

	report, err := g.Run(context.Background(), writeSpec(t, dir))
	require.NoError(t, err)

	for _, a := range report.Artifacts() {
		data, err := os.ReadFile(filepath.Join(out, filepath.FromSlash(a.Path)))
		require.NoError(t, err, a.Path)
		assert.Equal(t, a.Data, data, a.Path)
	}

	entries, err := os.ReadDir(filepath.Join(out, "nodes"))
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasPrefix(e.Name(), "."), "temporary file left behind: %s", e.Name())
	}

	m, err := g.ReadManifest()
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "s2gen", m.Generator)
	assert.NotEmpty(t, m.RunID)
	assert.Len(t, m.Files, len(report.Artifacts()))
	assert.Equal(t, Digest(report.Base.Data), m.Files[0].Digest)

	var pkg struct {
		Name    string `json:"name"`
		Version string `json:"version"`
		NodeRED struct {
			Nodes map[string]string `json:"nodes"`
		} `json:"node-red"`
	}
	data, err := os.ReadFile(filepath.Join(out, PackageFile))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &pkg))
	assert.Equal(t, DefaultPackageName, pkg.Name)
	assert.Equal(t, "0.0.2-beta", pkg.Version)
	assert.Equal(t, "nodes/s2-rm-ddbc.js", pkg.NodeRED.Nodes["s2-rm-ddbc"])
	assert.Len(t, pkg.NodeRED.Nodes, len(controltype.All()))
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	spec := writeSpec(t, dir)
	g := newGenerator(t, Options{OutputDir: out, Manifest: true})

	_, err := g.Check(context.Background(), spec)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDrift))

	_, err = g.Run(context.Background(), spec)
	require.NoError(t, err)

	drift, err := g.Check(context.Background(), spec)
	require.NoError(t, err)
	assert.True(t, drift.Empty())

	modified := filepath.Join(out, "nodes", "s2-rm-pebc.js")
	require.NoError(t, os.WriteFile(modified, []byte("// edited\n"), 0o644))
	require.NoError(t, os.Remove(filepath.Join(out, "types", "base.types.ts")))

	drift, err = g.Check(context.Background(), spec)
	assert.ErrorIs(t, err, ErrDrift)
	require.NotNil(t, drift)
	assert.Equal(t, []string{"nodes/s2-rm-pebc.js"}, drift.Changed)
	assert.Equal(t, []string{"types/base.types.ts"}, drift.Missing)
	assert.Empty(t, drift.Stale)
}

func TestCheckStale(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	spec := writeSpec(t, dir)

	_, err := newGenerator(t, Options{OutputDir: out, Manifest: true}).Run(context.Background(), spec)
	require.NoError(t, err)

	drift, err := newGenerator(t, Options{OutputDir: out, ControlTypes: []string{"OMBC"}}).Check(context.Background(), spec)
	assert.ErrorIs(t, err, ErrDrift)
	assert.Empty(t, drift.Changed)
	assert.Empty(t, drift.Missing)
	assert.Contains(t, drift.Stale, "nodes/s2-rm-ddbc.js")
}
