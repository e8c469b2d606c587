package controltype

import (
	"strings"

	"github.com/s2ws/s2gen/internal/codegen/asyncapi"
)

// Prefix returns the leading token of a message name. A name without a
// separator is its own prefix.
func Prefix(name string) string {
	prefix, _, _ := strings.Cut(name, Separator)
	return prefix
}

// Classify maps a message name to its control type. The prefix must match a
// tag exactly; anything else, malformed names included, reports false and
// belongs to the base group.
func Classify(name string) (ControlType, bool) {
	ct := ControlType(Prefix(name))
	if !ct.Valid() {
		return "", false
	}
	return ct, true
}

// Groups partitions a message list into one group per control type plus the
// base group. It is built once per run and never modified afterwards.
type Groups struct {
	base  []asyncapi.Message
	typed map[ControlType][]asyncapi.Message
}

// Group classifies every message. Document order is kept inside each group.
func Group(messages []asyncapi.Message) *Groups {
	g := &Groups{typed: make(map[ControlType][]asyncapi.Message, len(all))}
	for _, m := range messages {
		if ct, ok := Classify(m.Name); ok {
			g.typed[ct] = append(g.typed[ct], m)
			continue
		}
		g.base = append(g.base, m)
	}
	return g
}

// Base returns a copy of the unclassified messages.
func (g *Groups) Base() []asyncapi.Message {
	return append([]asyncapi.Message(nil), g.base...)
}

// Of returns a copy of the messages of one control type.
func (g *Groups) Of(ct ControlType) []asyncapi.Message {
	return append([]asyncapi.Message(nil), g.typed[ct]...)
}

// Len returns the total number of grouped messages.
func (g *Groups) Len() int {
	n := len(g.base)
	for _, msgs := range g.typed {
		n += len(msgs)
	}
	return n
}

// Keys returns the group keys in display order: the control types followed by Base.
func (g *Groups) Keys() []string {
	keys := make([]string, 0, len(all)+1)
	for _, ct := range all {
		keys = append(keys, string(ct))
	}
	return append(keys, Base)
}

// ByKey returns the messages of a group addressed by its key.
func (g *Groups) ByKey(key string) []asyncapi.Message {
	if key == Base {
		return g.Base()
	}
	return g.Of(ControlType(key))
}
