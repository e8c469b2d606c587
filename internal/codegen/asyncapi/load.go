package asyncapi

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/s2ws/s2gen/internal/codegen/schema"
)

// Load reads and parses the document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spec %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse spec %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// Parse decodes a YAML or JSON document. JSON is accepted because it is
// valid YAML for the documents this tool reads.
func Parse(data []byte) (*Document, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, errors.New("asyncapi: document is empty")
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("asyncapi: %w", err)
	}
	top := schema.Lookup(&root, "components")
	if top == nil {
		return nil, errors.New("asyncapi: document has no components section")
	}

	doc := &Document{
		AsyncAPI: schema.Scalar(schema.Lookup(&root, "asyncapi")),
	}
	if info := schema.Lookup(&root, "info"); info != nil {
		doc.Title = schema.Scalar(schema.Lookup(info, "title"))
		doc.Version = schema.Scalar(schema.Lookup(info, "version"))
	}

	schemas, err := schema.BuildSet(schema.Lookup(top, "schemas"), "components.schemas")
	if err != nil {
		return nil, err
	}
	doc.Schemas = schemas

	messages, err := parseMessages(schema.Lookup(top, "messages"))
	if err != nil {
		return nil, err
	}
	doc.Messages = messages
	return doc, nil
}

func parseMessages(n *yaml.Node) ([]Message, error) {
	if n == nil {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, errors.New("asyncapi: components.messages must be a mapping")
	}
	out := make([]Message, 0, len(n.Content)/2)
	seen := make(map[string]struct{}, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		name := n.Content[i].Value
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("asyncapi: duplicate message %q", name)
		}
		seen[name] = struct{}{}

		body := schema.Lookup(n, name)
		msg := Message{Name: name, Payload: &schema.Node{Kind: schema.KindAny}}
		if body == nil {
			out = append(out, msg)
			continue
		}
		if body.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("asyncapi: message %q must be a mapping", name)
		}
		msg.Title = schema.Scalar(schema.Lookup(body, "title"))
		msg.Summary = schema.Scalar(schema.Lookup(body, "summary"))
		if payload := schema.Lookup(body, "payload"); payload != nil {
			node, err := schema.Build(payload, "components.messages."+name+".payload")
			if err != nil {
				return nil, err
			}
			msg.Payload = node
		}
		out = append(out, msg)
	}
	return out, nil
}
