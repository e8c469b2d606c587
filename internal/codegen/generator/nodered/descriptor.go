package nodered

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/s2ws/s2gen/internal/codegen/common"
	"github.com/s2ws/s2gen/internal/codegen/controltype"
	"github.com/s2ws/s2gen/internal/codegen/properties"
)

// Help is the help panel content of a node.
type Help struct {
	Intro      string
	Details    string
	Properties string
	// MessageTypes is the dispatched message list, shared with the module
	// cases so the panel can never disagree with the dispatcher.
	MessageTypes []string
}

// Descriptor is a node editor descriptor before rendering.
type Descriptor struct {
	Type                controltype.ControlType
	NodeType            string
	Category            string
	Color               string
	Icon                string
	Label               string
	ResourcePlaceholder string
	Help                Help
	Properties          properties.Rendered
}

const descriptorTemplate = `<!-- {{.Header}} -->
<script type="text/html" data-template-name="{{.NodeType}}">
    <div class="form-row">
        <label for="node-input-name"><i class="fa fa-tag"></i> Name</label>
        <input type="text" id="node-input-name" placeholder="Name">
    </div>
    <div class="form-row">
        <label for="node-input-resourceId"><i class="fa fa-id-card"></i> Resource ID</label>
        <input type="text" id="node-input-resourceId" placeholder="{{.ResourcePlaceholder}}">
        <div class="form-tips">A unique identifier for this resource manager.</div>
    </div>
{{- if .Properties.Form}}
{{.Properties.Form}}
{{- end}}
</script>

<script type="text/html" data-help-name="{{.NodeType}}">
    <p>{{.Help.Intro}}</p>

    {{.Help.Details}}

    <h3>Properties</h3>
    {{.Help.Properties}}

    <h3>Inputs</h3>
    <dl class="message-properties">
        <dt>payload
            <span class="property-type">object</span>
        </dt>
        <dd>The S2 protocol message object. Must include a <code>message_type</code> field.</dd>
    </dl>

    <h3>Outputs</h3>
    <dl class="message-properties">
        <dt>payload <span class="property-type">object</span></dt>
        <dd>The response message conforming to the S2 protocol.</dd>
    </dl>

    <h3>Details</h3>
    <p>This node implements the S2 protocol Resource Manager for the {{.Type}} control type.
    It handles the following message types:</p>
    <ul>
{{- range .Help.MessageTypes}}
        <li><code>{{html .}}</code></li>
{{- end}}
    </ul>

    <h3>Status</h3>
    <ul>
        <li><i class="fa fa-circle"></i> Grey - Waiting for input</li>
        <li><i class="fa fa-circle"></i> Blue - Processing message</li>
        <li><i class="fa fa-circle"></i> Green - Successfully processed</li>
        <li><i class="fa fa-circle-thin"></i> Red - Error occurred</li>
    </ul>
</script>

<script type="text/javascript">
    RED.nodes.registerType({{quote .NodeType}}, {
        category: {{quote .Category}},
        color: {{quote .Color}},
        defaults: {
            name: { value: "" },
            resourceId: {
                value: "",
                required: true,
                validate: function(v) {
                    return !!v && v.length > 0;
                }
            }{{if .Properties.Defaults}},
{{.Properties.Defaults}}{{end}}
        },
        inputs: 1,
        outputs: 1,
        icon: {{quote .IconPath}},
        label: function() {
            return this.name || {{quote .Label}};
        },
        labelStyle: function() {
            return this.name ? "node_label_italic" : "";
        },
        oneditprepare: function() {
{{- if .Properties.EditPrepare}}
{{.Properties.EditPrepare}}
{{- end}}
        },
        oneditsave: function() {
{{- if .Properties.EditSave}}
{{.Properties.EditSave}}
{{- end}}
        }
    });
</script>
`

var descriptorTmpl = template.Must(template.New("descriptor").Funcs(moduleFuncs).Parse(descriptorTemplate))

type descriptorData struct {
	Descriptor
	Header   string
	IconPath string
}

// BuildDescriptor assembles the descriptor of m. The help message list is
// taken from m's cases.
func BuildDescriptor(m Module, tmpl properties.Template) (Descriptor, error) {
	look, ok := appearances[m.Type]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: no appearance for %q", controltype.ErrUnknownControlType, m.Type)
	}
	prose, glossary, err := helpText(m.Type)
	if err != nil {
		return Descriptor{}, err
	}
	rendered, err := tmpl.Render()
	if err != nil {
		return Descriptor{}, err
	}
	return Descriptor{
		Type:                m.Type,
		NodeType:            m.NodeType,
		Category:            Category,
		Color:               look.color,
		Icon:                look.icon,
		Label:               "S2 " + string(m.Type) + " RM",
		ResourcePlaceholder: m.ResourcePrefix + "-unique-id",
		Help: Help{
			Intro:        "A Resource Manager node implementing the " + string(m.Type) + " control type of the S2 protocol.",
			Details:      prose,
			Properties:   glossary,
			MessageTypes: m.MessageTypes(),
		},
		Properties: rendered,
	}, nil
}

func writeFileHeaderHTML() string { return strings.TrimSpace(common.FileHeader("", "HTML")) }

// RenderDescriptor renders d as a Node-RED editor descriptor.
func RenderDescriptor(d Descriptor) (string, error) {
	data := descriptorData{
		Descriptor: d,
		Header:     writeFileHeaderHTML(),
		IconPath:   "font-awesome/" + d.Icon,
	}
	var sb strings.Builder
	if err := descriptorTmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render %s descriptor: %w", d.Type, err)
	}
	return sb.String(), nil
}
