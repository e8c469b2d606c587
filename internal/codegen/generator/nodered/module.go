// Package nodered synthesizes the runtime module and the editor descriptor of
// one control-type resource manager node.
package nodered

import (
	"fmt"
	"strconv"

	"github.com/s2ws/s2gen/internal/codegen/asyncapi"
	"github.com/s2ws/s2gen/internal/codegen/common"
	"github.com/s2ws/s2gen/internal/codegen/controltype"
	"github.com/s2ws/s2gen/internal/codegen/properties"
)

// Style selects the module export form.
type Style string

const (
	StyleCommonJS Style = "commonjs"
	StyleESM      Style = "esm"
)

// ParseStyle accepts "commonjs", "cjs" and "esm".
func ParseStyle(s string) (Style, error) {
	switch s {
	case "", "commonjs", "cjs":
		return StyleCommonJS, nil
	case "esm":
		return StyleESM, nil
	}
	return "", fmt.Errorf("unknown module style %q (want commonjs or esm)", s)
}

// Case is one dispatcher branch.
type Case struct {
	MessageType string
	Handler     string
}

// StartupField is one payload member of the startup message, read from the
// node config with a literal fallback.
type StartupField struct {
	Key       string
	ConfigKey string
	Fallback  string
}

// Startup is the message a node emits once when it is created.
type Startup struct {
	MessageType string
	IDPrefix    string
	Var         string
	Fields      []StartupField
}

// Module is a node runtime module before rendering.
type Module struct {
	Type           controltype.ControlType
	NodeType       string
	Constructor    string
	ResourcePrefix string
	Cases          []Case
	Startup        *Startup
	Style          Style
}

type startupSpec struct {
	message  string
	idPrefix string
	varName  string
}

var startups = map[controltype.ControlType]startupSpec{
	controltype.OMBC: {message: "OMBC.SystemDescription", idPrefix: "sd", varName: "systemDescription"},
	controltype.PEBC: {message: "PEBC.PowerConstraints", idPrefix: "pc", varName: "powerConstraints"},
}

// BuildModule assembles the module of ct. Only messages classified as ct get
// a dispatcher case, in input order.
func BuildModule(ct controltype.ControlType, messages []asyncapi.Message, tmpl properties.Template, style Style) (Module, error) {
	if !ct.Valid() {
		return Module{}, fmt.Errorf("%w: %q", controltype.ErrUnknownControlType, ct)
	}
	m := Module{
		Type:           ct,
		NodeType:       ct.NodeType(),
		Constructor:    "S2" + string(ct) + "Node",
		ResourcePrefix: ct.Lower(),
		Style:          style,
	}

	seen := map[string]bool{}
	handlers := map[string]bool{}
	for _, msg := range messages {
		if got, ok := controltype.Classify(msg.Name); !ok || got != ct {
			continue
		}
		if seen[msg.Name] {
			continue
		}
		seen[msg.Name] = true
		m.Cases = append(m.Cases, Case{MessageType: msg.Name, Handler: handlerName(msg.Name, handlers)})
	}

	if s, ok := startups[ct]; ok {
		st := &Startup{MessageType: s.message, IDPrefix: s.idPrefix, Var: s.varName}
		for _, f := range tmpl.BackedBy(s.message) {
			st.Fields = append(st.Fields, StartupField{Key: f.Backing.Field, ConfigKey: f.Name, Fallback: f.Default})
		}
		m.Startup = st
	}
	return m, nil
}

// handlerName derives a unique JS function name from a message name.
func handlerName(message string, taken map[string]bool) string {
	base := "handle" + common.SanitizeIdentifier(message)
	name := base
	for i := 2; taken[name]; i++ {
		name = base + "_" + strconv.Itoa(i)
	}
	taken[name] = true
	return name
}

// MessageTypes returns the dispatched message names in case order.
func (m Module) MessageTypes() []string {
	out := make([]string, len(m.Cases))
	for i, c := range m.Cases {
		out[i] = c.MessageType
	}
	return out
}
