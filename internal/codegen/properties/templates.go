// Package properties holds the hand-authored editor property templates of
// the five control types. They are static data: message shapes come from the
// specification document, editor fields do not, so every field that mirrors a
// message field names it in Backing and Validate reports when they drift apart.
package properties

import (
	"fmt"

	"github.com/s2ws/s2gen/internal/codegen/controltype"
)

// Rule is the client-side validation applied to a configuration field.
type Rule int

const (
	RuleNone Rule = iota
	RuleArray
	RuleNonEmptyArray
	RuleObject
)

// FieldRef points at a top-level payload field of a protocol message.
type FieldRef struct {
	Message string
	Field   string
}

// Field is one configuration property of a node.
type Field struct {
	// Name is the config key, e.g. "operationModes".
	Name  string
	Label string
	Icon  string
	Tip   string
	// Default is a JS literal.
	Default  string
	Required bool
	Rule     Rule
	// Input renders a JSON typed-input form row for the field. Fields without
	// it only get a default declaration.
	Input   bool
	Backing *FieldRef
}

// Template is the editor property bundle of one control type.
type Template struct {
	Type   controltype.ControlType
	Fields []Field
	// SaveHook is an optional oneditsave body.
	SaveHook string
}

const jsonSaveHook = "// Additional validation could be added here"

var templates = map[controltype.ControlType]Template{
	controltype.OMBC: {
		Type: controltype.OMBC,
		Fields: []Field{
			{
				Name:     "operationModes",
				Label:    "Operation Modes",
				Icon:     "fa-list",
				Tip:      "Define the available operation modes for your device. Format: JSON array of mode objects.",
				Default:  "[]",
				Required: true,
				Rule:     RuleNonEmptyArray,
				Input:    true,
				Backing:  &FieldRef{Message: "OMBC.SystemDescription", Field: "operation_modes"},
			},
			{
				Name:    "transitions",
				Label:   "Allowed Transitions",
				Icon:    "fa-random",
				Tip:     "Define which mode transitions are allowed. Format: JSON array of transition objects.",
				Default: "[]",
				Rule:    RuleArray,
				Input:   true,
				Backing: &FieldRef{Message: "OMBC.SystemDescription", Field: "transitions"},
			},
			{
				Name:    "timers",
				Default: "[]",
				Backing: &FieldRef{Message: "OMBC.SystemDescription", Field: "timers"},
			},
		},
	},
	controltype.PEBC: {
		Type: controltype.PEBC,
		Fields: []Field{
			{
				Name:     "limitRanges",
				Label:    "Power Limit Ranges",
				Icon:     "fa-bars",
				Tip:      "Define the allowable power ranges. Format: JSON array of range objects with min/max values.",
				Default:  "[]",
				Required: true,
				Rule:     RuleNonEmptyArray,
				Input:    true,
				Backing:  &FieldRef{Message: "PEBC.PowerConstraints", Field: "allowed_limit_ranges"},
			},
			{
				Name:    "consequenceType",
				Default: `"DEFER"`,
				Backing: &FieldRef{Message: "PEBC.PowerConstraints", Field: "consequence_type"},
			},
		},
	},
	controltype.PPBC: {
		Type: controltype.PPBC,
		Fields: []Field{
			{
				Name:     "sequences",
				Label:    "Power Sequences",
				Icon:     "fa-list-ol",
				Tip:      "Define power consumption sequences. Format: JSON array of sequence objects with timestamped power values.",
				Default:  "[]",
				Required: true,
				Rule:     RuleNonEmptyArray,
				Input:    true,
				Backing:  &FieldRef{Message: "PPBC.PowerProfileDefinition", Field: "power_sequences_containers"},
			},
		},
	},
	controltype.FRBC: {
		Type: controltype.FRBC,
		Fields: []Field{
			{
				Name:     "storage",
				Label:    "Storage Configuration",
				Icon:     "fa-database",
				Tip:      "Define storage system parameters. Format: JSON object with capacity and constraints.",
				Default:  "{}",
				Required: true,
				Rule:     RuleObject,
				Input:    true,
				Backing:  &FieldRef{Message: "FRBC.SystemDescription", Field: "storage"},
			},
			{
				Name:     "actuators",
				Label:    "Actuators",
				Icon:     "fa-cogs",
				Tip:      "Define actuator configurations. Format: JSON array of actuator objects.",
				Default:  "[]",
				Required: true,
				Rule:     RuleNonEmptyArray,
				Input:    true,
				Backing:  &FieldRef{Message: "FRBC.SystemDescription", Field: "actuators"},
			},
		},
		SaveHook: jsonSaveHook,
	},
	controltype.DDBC: {
		Type: controltype.DDBC,
		Fields: []Field{
			{
				Name:     "demandRate",
				Label:    "Demand Rate",
				Icon:     "fa-tachometer",
				Tip:      "Define demand rate parameters. Format: JSON object with rate limits and thresholds.",
				Default:  "{}",
				Required: true,
				Rule:     RuleObject,
				Input:    true,
				Backing:  &FieldRef{Message: "DDBC.SystemDescription", Field: "present_demand_rate"},
			},
			{
				Name:     "actuators",
				Label:    "Actuators",
				Icon:     "fa-cogs",
				Tip:      "Define actuator configurations. Format: JSON array of actuator objects.",
				Default:  "[]",
				Required: true,
				Rule:     RuleNonEmptyArray,
				Input:    true,
				Backing:  &FieldRef{Message: "DDBC.SystemDescription", Field: "actuators"},
			},
		},
		SaveHook: jsonSaveHook,
	},
}

// For returns the template of a control type. The returned value shares no
// memory with the table.
func For(ct controltype.ControlType) (Template, error) {
	t, ok := templates[ct]
	if !ok {
		return Template{}, fmt.Errorf("%w: no property template for %q", controltype.ErrUnknownControlType, ct)
	}
	t.Fields = append([]Field(nil), t.Fields...)
	return t, nil
}

// BackedBy returns the fields mirroring a payload field of message, in
// template order.
func (t Template) BackedBy(message string) []Field {
	var out []Field
	for _, f := range t.Fields {
		if f.Backing != nil && f.Backing.Message == message {
			out = append(out, f)
		}
	}
	return out
}
