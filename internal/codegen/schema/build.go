package schema

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Build converts a decoded YAML/JSON mapping node into a Node. path is used in
// error messages only.
func Build(n *yaml.Node, path string) (*Node, error) {
	n = unwrap(n)
	if n == nil {
		return nil, fmt.Errorf("schema: node is nil at %s", path)
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("schema: schema must be a mapping at %s", path)
	}

	out := &Node{Description: strings.TrimSpace(scalar(lookup(n, "description")))}

	if ref := strings.TrimSpace(scalar(lookup(n, "$ref"))); ref != "" {
		out.Kind = KindRef
		out.Ref = ref
		return out, nil
	}

	typ, err := readType(lookup(n, "type"), path)
	if err != nil {
		return nil, err
	}
	out.Kind = typ

	if enum := unwrap(lookup(n, "enum")); enum != nil {
		if enum.Kind != yaml.SequenceNode {
			return nil, fmt.Errorf("schema: enum must be a sequence at %s", path)
		}
		out.Enum = make([]string, 0, len(enum.Content))
		for idx, item := range enum.Content {
			item = unwrap(item)
			if item.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("schema: enum[%d] must be a scalar at %s", idx, path)
			}
			out.Enum = append(out.Enum, item.Value)
		}
	}

	if req := unwrap(lookup(n, "required")); req != nil {
		if req.Kind != yaml.SequenceNode {
			return nil, fmt.Errorf("schema: required must be a sequence at %s", path)
		}
		for idx, item := range req.Content {
			item = unwrap(item)
			if item.Kind != yaml.ScalarNode || strings.TrimSpace(item.Value) == "" {
				return nil, fmt.Errorf("schema: required[%d] must be a string at %s", idx, path)
			}
			out.Required = append(out.Required, item.Value)
		}
	}

	if props := unwrap(lookup(n, "properties")); props != nil {
		if props.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("schema: properties must be a mapping at %s", path)
		}
		for i := 0; i+1 < len(props.Content); i += 2 {
			name := props.Content[i].Value
			child, err := Build(props.Content[i+1], path+".properties."+name)
			if err != nil {
				return nil, err
			}
			out.Fields = append(out.Fields, Field{Name: name, Node: child})
		}
		if out.Kind == KindAny {
			out.Kind = KindObject
		}
	}

	if items := unwrap(lookup(n, "items")); items != nil && items.Kind == yaml.MappingNode {
		child, err := Build(items, path+".items")
		if err != nil {
			return nil, err
		}
		out.Items = child
	}

	return out, nil
}

// BuildSet converts a mapping of named schemas into an ordered Set.
func BuildSet(n *yaml.Node, path string) (*Set, error) {
	set := NewSet()
	n = unwrap(n)
	if n == nil {
		return set, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("schema: %s must be a mapping", path)
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		name := n.Content[i].Value
		node, err := Build(n.Content[i+1], path+"."+name)
		if err != nil {
			return nil, err
		}
		set.Add(name, node)
	}
	return set, nil
}

func readType(n *yaml.Node, path string) (Kind, error) {
	n = unwrap(n)
	if n == nil {
		return KindAny, nil
	}
	var name string
	switch n.Kind {
	case yaml.ScalarNode:
		name = n.Value
	case yaml.SequenceNode:
		// ["string", "null"]: the first non-null entry wins.
		for _, item := range n.Content {
			if item = unwrap(item); item != nil && item.Value != "null" {
				name = item.Value
				break
			}
		}
	default:
		return KindAny, fmt.Errorf("schema: type must be a string at %s", path)
	}
	switch strings.TrimSpace(name) {
	case "string":
		return KindString, nil
	case "number":
		return KindNumber, nil
	case "integer":
		return KindInteger, nil
	case "boolean":
		return KindBoolean, nil
	case "array":
		return KindArray, nil
	case "object":
		return KindObject, nil
	default:
		return KindAny, nil
	}
}

// lookup returns the value node for key in a mapping node.
func lookup(n *yaml.Node, key string) *yaml.Node {
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}

func scalar(n *yaml.Node) string {
	n = unwrap(n)
	if n == nil || n.Kind != yaml.ScalarNode {
		return ""
	}
	return n.Value
}

func unwrap(n *yaml.Node) *yaml.Node {
	for n != nil && (n.Kind == yaml.DocumentNode || n.Kind == yaml.AliasNode) {
		if n.Kind == yaml.AliasNode {
			n = n.Alias
			continue
		}
		if len(n.Content) == 0 {
			return nil
		}
		n = n.Content[0]
	}
	if n != nil && n.Kind == yaml.ScalarNode && n.Tag == "!!null" {
		return nil
	}
	return n
}

// Lookup and Scalar are exported for the document loader, which walks the
// same yaml.Node trees.
func Lookup(n *yaml.Node, key string) *yaml.Node { return unwrap(lookup(unwrap(n), key)) }

func Scalar(n *yaml.Node) string { return scalar(n) }
