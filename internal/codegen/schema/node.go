// Package schema holds the normalized model of JSON-Schema-like nodes found
// under components.schemas and in message payloads.
package schema

import (
	"errors"
	"strings"
)

// ErrUnresolvedReference is returned when a $ref target is absent from the set.
var ErrUnresolvedReference = errors.New("unresolved schema reference")

// Kind identifies the shape of a Node.
type Kind int

const (
	KindAny Kind = iota
	KindString
	KindNumber
	KindInteger
	KindBoolean
	KindArray
	KindObject
	KindRef
)

var kindNames = map[Kind]string{
	KindAny:     "any",
	KindString:  "string",
	KindNumber:  "number",
	KindInteger: "integer",
	KindBoolean: "boolean",
	KindArray:   "array",
	KindObject:  "object",
	KindRef:     "reference",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Node is one schema node. Only the fields relevant to its Kind are set.
type Node struct {
	Kind        Kind
	Description string
	// Enum holds the enumerated values rendered as strings, in document order.
	// nil means "not enumerated"; an empty non-nil slice is an empty enum.
	Enum []string
	// Items is the element schema of an array; nil means unconstrained.
	Items *Node
	// Fields are the object properties in document order.
	Fields []Field
	// Required lists the required property names as declared.
	Required []string
	// Ref is the raw $ref string of a reference node.
	Ref string
}

// Field is a named object property.
type Field struct {
	Name string
	Node *Node
}

// IsEnum reports whether the node declares an enum list.
func (n *Node) IsEnum() bool { return n != nil && n.Enum != nil }

// IsObject reports whether the node describes a record, either by declared
// type or by carrying properties.
func (n *Node) IsObject() bool {
	return n != nil && (n.Kind == KindObject || len(n.Fields) > 0)
}

// IsRequired reports whether the property name appears in the required list.
// A node without a required list treats every property as optional.
func (n *Node) IsRequired(name string) bool {
	for _, r := range n.Required {
		if r == name {
			return true
		}
	}
	return false
}

// Field looks up a property by name.
func (n *Node) Field(name string) (*Node, bool) {
	for _, f := range n.Fields {
		if f.Name == name {
			return f.Node, true
		}
	}
	return nil, false
}

// RefName returns the name a $ref points at: its last path segment.
// "#/components/schemas/Foo" => "Foo".
func RefName(ref string) string {
	ref = strings.TrimSpace(ref)
	if idx := strings.LastIndex(ref, "/"); idx >= 0 {
		return ref[idx+1:]
	}
	return ref
}
