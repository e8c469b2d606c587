package asyncapi_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s2ws/s2gen/internal/codegen/asyncapi"
	"github.com/s2ws/s2gen/internal/codegen/schema"
	th "github.com/s2ws/s2gen/internal/testing"
)

func TestParseFixture(t *testing.T) {
	doc := th.LoadSpec(t)

	assert.Equal(t, "2.6.0", doc.AsyncAPI)
	assert.Equal(t, "S2 resource manager", doc.Title)
	assert.Equal(t, "0.0.2-beta", doc.Version)

	total := 0
	for _, n := range th.FixtureMessageCounts {
		total += n
	}
	assert.Len(t, doc.Messages, total)
	assert.Equal(t, "Handshake", doc.Messages[0].Name)

	m, ok := doc.Message("PPBC.PowerProfileStatus")
	require.True(t, ok)
	assert.Equal(t, schema.KindObject, m.Payload.Kind)

	m, ok = doc.Message("OMBC.SystemDescription")
	require.True(t, ok)
	assert.Equal(t, schema.KindRef, m.Payload.Kind)
	assert.Equal(t, "OMBC.SystemDescription", schema.RefName(m.Payload.Ref))

	_, ok = doc.Message("Nope")
	assert.False(t, ok)
}

func TestPayloadField(t *testing.T) {
	doc := th.LoadSpec(t)

	tests := []struct {
		message string
		field   string
		want    bool
	}{
		{message: "OMBC.SystemDescription", field: "operation_modes", want: true},
		{message: "OMBC.SystemDescription", field: "nope", want: false},
		{message: "Unknown.Message", field: "id", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.message+"."+tt.field, func(t *testing.T) {
			got, err := doc.PayloadField(tt.message, tt.field)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPayloadFieldUnresolved(t *testing.T) {
	doc := th.ParseSpec(t, `
components:
  messages:
    OMBC.Status:
      payload:
        $ref: '#/components/schemas/Gone'
`)
	_, err := doc.PayloadField("OMBC.Status", "active_operation_mode_id")
	assert.ErrorIs(t, err, schema.ErrUnresolvedReference)
}

func TestParseJSON(t *testing.T) {
	doc, err := asyncapi.Parse([]byte(`{
  "asyncapi": "2.6.0",
  "info": {"title": "json", "version": "1"},
  "components": {
    "schemas": {"ID": {"type": "string"}},
    "messages": {
      "Handshake": {"summary": "hello", "payload": {"$ref": "#/components/schemas/ID"}},
      "Empty": {}
    }
  }
}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"Handshake", "Empty"}, doc.MessageNames())
	assert.Equal(t, "hello", doc.Messages[0].Summary)
	assert.Equal(t, schema.KindAny, doc.Messages[1].Payload.Kind)
	assert.Equal(t, 1, doc.Schemas.Len())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "empty", src: "  \n"},
		{name: "invalid yaml", src: "a: [b"},
		{name: "no components", src: "asyncapi: 2.6.0"},
		{name: "messages not a mapping", src: "components:\n  messages: [a]"},
		{name: "message not a mapping", src: "components:\n  messages:\n    A: 1"},
		{name: "bad payload", src: "components:\n  messages:\n    A:\n      payload: [1]"},
		{name: "bad schema", src: "components:\n  schemas:\n    A: 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := asyncapi.Parse([]byte(tt.src))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "s2.yaml")
	require.NoError(t, os.WriteFile(p, th.SpecBytes(), 0o644))

	doc, err := asyncapi.Load(p)
	require.NoError(t, err)
	assert.Equal(t, p, doc.Source)

	_, err = asyncapi.Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
