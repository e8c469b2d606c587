// Package asyncapi loads the subset of an AsyncAPI document the generator
// needs: components.schemas and components.messages, in document order.
package asyncapi

import (
	"github.com/s2ws/s2gen/internal/codegen/schema"
)

// Document is a parsed specification document. It is read-only once loaded.
type Document struct {
	AsyncAPI string
	Title    string
	Version  string
	Source   string

	Schemas  *schema.Set
	Messages []Message
}

// Message is one entry of components.messages.
type Message struct {
	Name    string
	Title   string
	Summary string
	// Payload is the message payload schema: usually a reference into
	// components.schemas, sometimes an inline object.
	Payload *schema.Node
}

// Message looks up a message by name.
func (d *Document) Message(name string) (Message, bool) {
	for _, m := range d.Messages {
		if m.Name == name {
			return m, true
		}
	}
	return Message{}, false
}

// MessageNames returns the message names in document order.
func (d *Document) MessageNames() []string {
	names := make([]string, 0, len(d.Messages))
	for _, m := range d.Messages {
		names = append(names, m.Name)
	}
	return names
}

// PayloadField reports whether the payload of message carries a top-level
// property called field. Payload references are followed through Schemas.
func (d *Document) PayloadField(message, field string) (bool, error) {
	m, ok := d.Message(message)
	if !ok {
		return false, nil
	}
	payload, err := d.Schemas.Deref(m.Payload)
	if err != nil {
		return false, err
	}
	if payload == nil {
		return false, nil
	}
	_, ok = payload.Field(field)
	return ok, nil
}
