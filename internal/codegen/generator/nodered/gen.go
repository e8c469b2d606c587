package nodered

import (
	"log/slog"

	"github.com/s2ws/s2gen/internal/codegen/controltype"
	"github.com/s2ws/s2gen/internal/codegen/meta"
	"github.com/s2ws/s2gen/internal/codegen/properties"
)

// Output is the rendered runtime module and editor descriptor of one node.
type Output struct {
	Module     string
	Descriptor string
	Cases      []Case
}

// Generate builds and renders the node of ct from the message group in md.
func Generate(logger *slog.Logger, md *meta.Metadata, ct controltype.ControlType, style Style) (Output, error) {
	tmpl, err := properties.For(ct)
	if err != nil {
		return Output{}, err
	}
	m, err := BuildModule(ct, md.Groups.Of(ct), tmpl, style)
	if err != nil {
		return Output{}, err
	}
	logger.Debug("Generating node", "controlType", ct, "nodeType", m.NodeType, "cases", len(m.Cases), "style", style)

	module, err := RenderModule(m)
	if err != nil {
		return Output{}, err
	}
	d, err := BuildDescriptor(m, tmpl)
	if err != nil {
		return Output{}, err
	}
	descriptor, err := RenderDescriptor(d)
	if err != nil {
		return Output{}, err
	}
	return Output{Module: module, Descriptor: descriptor, Cases: m.Cases}, nil
}
