package typescript

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/s2ws/s2gen/internal/codegen/asyncapi"
	"github.com/s2ws/s2gen/internal/codegen/common"
	"github.com/s2ws/s2gen/internal/codegen/schema"
)

// MessagesSlot is the reserved declaration name the per-control-type pass
// binds the message group to.
const MessagesSlot = "messages"

const declarationsTemplate = `{{.Header}}// Generated types for S2 protocol
{{- range .Decls}}

{{if .Interface}}export interface {{.Name}} {{"{"}}{{if .Props}}
{{range .Props}}  {{.Key}}{{if .Optional}}?{{end}}: {{.Type}};
{{end}}{{end}}{{"}"}}{{else}}export type {{.Name}} = {{.Alias}};{{end}}
{{- end}}
{{- if .MessageType}}

export type MessageType = keyof ` + MessagesSlot + `;
{{- end}}
`

var declarationsTmpl = template.Must(template.New("declarations").Parse(declarationsTemplate))

// File is a declarations file before rendering.
type File struct {
	Header string
	Decls  []Decl
	// MessageType appends a MessageType alias over the messages slot keys.
	MessageType bool
}

// Decl is one top-level declaration: an interface when Interface is set,
// a type alias to Alias otherwise.
type Decl struct {
	Name      string
	Interface bool
	Props     []Prop
	Alias     string
}

// Prop is one interface member.
type Prop struct {
	Key      string
	Optional bool
	Type     string
}

// BuildFile synthesizes one declaration per schema in set, in set order.
// It also returns the $ref strings that could not be resolved.
func BuildFile(set *schema.Set) (File, []string) {
	c := &converter{set: set}
	f := File{Header: writeFileHeaderTS()}
	for _, name := range set.Names() {
		n, _ := set.Lookup(name)
		f.Decls = append(f.Decls, c.declare(name, n))
	}
	return f, c.unresolved
}

// BuildControlTypeFile synthesizes the shared schemas plus the message group
// bound to the messages slot. The shared set is not modified.
func BuildControlTypeFile(set *schema.Set, messages []asyncapi.Message) (File, []string) {
	f, unresolved := BuildFile(set.With(MessagesSlot, MessagesNode(messages)))
	f.MessageType = true
	return f, unresolved
}

// MessagesNode turns a message group into an object node keyed by message
// name. Every message is a required member typed by its payload.
func MessagesNode(messages []asyncapi.Message) *schema.Node {
	n := &schema.Node{Kind: schema.KindObject}
	for _, m := range messages {
		n.Fields = append(n.Fields, schema.Field{Name: m.Name, Node: m.Payload})
		n.Required = append(n.Required, m.Name)
	}
	return n
}

// Render produces the declarations text. Identical files render to
// identical bytes.
func Render(f File) (string, error) {
	var b strings.Builder
	if err := declarationsTmpl.Execute(&b, f); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}
	return b.String(), nil
}

// UnresolvedReference is the degrade policy for a $ref whose target is not
// declared: the reference becomes the unconstrained type.
func UnresolvedReference(ref string) string {
	return tsAny
}

// TypeName is the declared identifier for a schema name. Declarations and
// references both go through it so they always agree.
func TypeName(name string) string {
	return common.SanitizeIdentifier(name)
}

type converter struct {
	set        *schema.Set
	unresolved []string
}

func (c *converter) declare(name string, n *schema.Node) Decl {
	d := Decl{Name: TypeName(name)}
	switch {
	case n.IsEnum():
		d.Alias = literalUnion(n.Enum)
	case n.IsObject():
		d.Interface = true
		for _, f := range n.Fields {
			d.Props = append(d.Props, Prop{
				Key:      propertyKey(f.Name),
				Optional: !n.IsRequired(f.Name),
				Type:     c.convert(f.Node, 1),
			})
		}
	default:
		d.Alias = c.convert(n, 0)
	}
	return d
}

// convert maps a node to a type expression. depth is the indentation level of
// the member holding the expression, used to lay out inline records.
func (c *converter) convert(n *schema.Node, depth int) string {
	if n == nil {
		return tsAny
	}
	switch n.Kind {
	case schema.KindRef:
		name, err := c.set.Resolve(n.Ref)
		if err != nil {
			c.unresolved = append(c.unresolved, n.Ref)
			return UnresolvedReference(n.Ref)
		}
		return TypeName(name)
	case schema.KindString:
		if n.IsEnum() {
			return "(" + literalUnion(n.Enum) + ")"
		}
		return "string"
	case schema.KindNumber, schema.KindInteger:
		return "number"
	case schema.KindBoolean:
		return "boolean"
	case schema.KindArray:
		if n.Items == nil {
			return tsAny + "[]"
		}
		return c.convert(n.Items, depth) + "[]"
	case schema.KindObject:
		return c.record(n, depth)
	default:
		return tsAny
	}
}

// record renders an anonymous inline object type.
func (c *converter) record(n *schema.Node, depth int) string {
	if len(n.Fields) == 0 {
		return "{}"
	}
	var b strings.Builder
	b.WriteString("{\n")
	for _, f := range n.Fields {
		b.WriteString(indent(depth + 1))
		b.WriteString(propertyKey(f.Name))
		if !n.IsRequired(f.Name) {
			b.WriteByte('?')
		}
		b.WriteString(": ")
		b.WriteString(c.convert(f.Node, depth+1))
		b.WriteString(";\n")
	}
	b.WriteString(indent(depth))
	b.WriteByte('}')
	return b.String()
}
