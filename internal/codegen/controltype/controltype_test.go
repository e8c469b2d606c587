package controltype

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s2ws/s2gen/internal/codegen/asyncapi"
	th "github.com/s2ws/s2gen/internal/testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		want   ControlType
		wantOK bool
	}{
		{name: "OMBC.SystemDescription", want: OMBC, wantOK: true},
		{name: "PEBC.PowerConstraints", want: PEBC, wantOK: true},
		{name: "DDBC.Instruction.Extra", want: DDBC, wantOK: true},
		{name: "FRBC", want: FRBC, wantOK: true},
		{name: "Handshake"},
		{name: "XYZ.Foo"},
		{name: "ombc.SystemDescription"},
		{name: "OMBCX.Foo"},
		{name: ".OMBC"},
		{name: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Classify(tt.name)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse(t *testing.T) {
	ct, err := Parse(" ppbc ")
	require.NoError(t, err)
	assert.Equal(t, PPBC, ct)

	_, err = Parse("BASE")
	assert.True(t, errors.Is(err, ErrUnknownControlType))
}

func TestControlTypeNames(t *testing.T) {
	assert.Equal(t, "s2-rm-frbc", FRBC.NodeType())
	assert.Equal(t, "frbc", FRBC.Lower())
	assert.Equal(t, "Fill Rate Based Control", FRBC.LongName())
	assert.False(t, ControlType("XYZ").Valid())
	assert.Equal(t, []ControlType{OMBC, PEBC, PPBC, FRBC, DDBC}, All())
}

func TestGroupPartition(t *testing.T) {
	doc := th.LoadSpec(t)
	g := Group(doc.Messages)

	assert.Equal(t, len(doc.Messages), g.Len())
	seen := map[string]string{}
	for _, key := range g.Keys() {
		msgs := g.ByKey(key)
		assert.Len(t, msgs, th.FixtureMessageCounts[key], key)
		for _, m := range msgs {
			prev, dup := seen[m.Name]
			assert.False(t, dup, "%s in both %s and %s", m.Name, prev, key)
			seen[m.Name] = key
			if ct, ok := Classify(m.Name); ok {
				assert.Equal(t, string(ct), key)
			} else {
				assert.Equal(t, Base, key)
			}
		}
	}
	assert.Len(t, seen, len(doc.Messages))
}

func TestGroupKeepsOrderAndCopies(t *testing.T) {
	g := Group([]asyncapi.Message{
		{Name: "OMBC.B"}, {Name: "Handshake"}, {Name: "OMBC.A"}, {Name: "XYZ.Foo"},
	})
	ombc := g.Of(OMBC)
	require.Len(t, ombc, 2)
	assert.Equal(t, "OMBC.B", ombc[0].Name)
	assert.Equal(t, "OMBC.A", ombc[1].Name)

	ombc[0].Name = "changed"
	assert.Equal(t, "OMBC.B", g.Of(OMBC)[0].Name)

	base := g.Base()
	require.Len(t, base, 2)
	assert.Equal(t, "XYZ.Foo", base[1].Name)
	assert.Empty(t, g.Of(PPBC))
}
