// Package controltype defines the five S2 control types and the name-prefix
// convention that assigns protocol messages to them.
package controltype

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownControlType is returned when a tag is not one of the five control types.
var ErrUnknownControlType = errors.New("unknown control type")

// ControlType is one of the five supported control strategies.
type ControlType string

const (
	OMBC ControlType = "OMBC" // operation mode based
	PEBC ControlType = "PEBC" // power envelope based
	PPBC ControlType = "PPBC" // power profile based
	FRBC ControlType = "FRBC" // fill rate based
	DDBC ControlType = "DDBC" // demand driven based
)

// Base is the group key for messages that belong to no control type.
const Base = "BASE"

// Separator splits a message name into its prefix token and the rest.
const Separator = "."

var all = []ControlType{OMBC, PEBC, PPBC, FRBC, DDBC}

var longNames = map[ControlType]string{
	OMBC: "Operation Mode Based Control",
	PEBC: "Power Envelope Based Control",
	PPBC: "Power Profile Based Control",
	FRBC: "Fill Rate Based Control",
	DDBC: "Demand Driven Based Control",
}

// All returns the control types in their canonical order.
func All() []ControlType {
	return append([]ControlType(nil), all...)
}

// Valid reports whether c is one of the five control types.
func (c ControlType) Valid() bool {
	_, ok := longNames[c]
	return ok
}

// Lower returns the lowercase tag used in file names and node ids.
func (c ControlType) Lower() string { return strings.ToLower(string(c)) }

// NodeType is the id the generated node registers under, e.g. "s2-rm-ombc".
func (c ControlType) NodeType() string { return "s2-rm-" + c.Lower() }

// LongName is the human-readable name, e.g. "Operation Mode Based Control".
func (c ControlType) LongName() string { return longNames[c] }

func (c ControlType) String() string { return string(c) }

// Parse converts a user-supplied tag to a ControlType. Matching ignores case
// so "ombc" and "OMBC" are both accepted on the command line.
func Parse(tag string) (ControlType, error) {
	ct := ControlType(strings.ToUpper(strings.TrimSpace(tag)))
	if !ct.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownControlType, tag)
	}
	return ct, nil
}
