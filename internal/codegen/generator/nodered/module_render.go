package nodered

import (
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/s2ws/s2gen/internal/codegen/common"
)

const moduleTemplate = `{{.Header}}{{if eq .Style "esm"}}export default function(RED) {{"{"}}{{else}}'use strict';

module.exports = function(RED) {{"{"}}{{end}}
    const STATUS = {
        waiting: { fill: 'grey', shape: 'dot' },
        processing: { fill: 'blue', shape: 'dot' },
        success: { fill: 'green', shape: 'dot' },
        error: { fill: 'red', shape: 'ring' }
    };

    function parseConfigValue(value, fallback) {
        if (value === undefined || value === null || value === '') {
            return fallback;
        }
        if (typeof value !== 'string') {
            return value;
        }
        try {
            return JSON.parse(value);
        } catch (e) {
            return value;
        }
    }

    function newId(prefix) {
        if (typeof crypto !== 'undefined' && typeof crypto.randomUUID === 'function') {
            return crypto.randomUUID();
        }
        return prefix + '-' + Date.now();
    }
{{range .Cases}}
    function {{.Handler}}(node, payload) {
        node.currentState[{{quote .MessageType}}] = payload;
    }
{{end}}
    function {{.Constructor}}(config) {
        RED.nodes.createNode(this, config);
        const node = this;

        node.resourceId = config.resourceId || ({{quote .ResourcePrefix}} + '-' + Date.now());
        node.currentState = {};

        function setStatus(state, text) {
            const s = STATUS[state];
            node.status({ fill: s.fill, shape: s.shape, text: text });
        }

        function validateInput(msg) {
            if (!msg.payload) {
                throw new Error('Message has no payload');
            }
            if (!msg.payload.message_type) {
                throw new Error('Message type not specified');
            }
        }

        setStatus('waiting', 'Waiting for input');

        node.on('input', function(msg, send, done) {
            try {
                validateInput(msg);

                const messageType = msg.payload.message_type;
                setStatus('processing', 'Processing ' + messageType);

                switch (messageType) {
{{- range .Cases}}
                    case {{quote .MessageType}}:
                        {{.Handler}}(node, msg.payload);
                        break;
{{- end}}
                    default:
                        throw new Error('Unsupported message type: ' + messageType);
                }

                setStatus('success', 'Last message processed successfully');
            } catch (error) {
                node.error(error.message, msg);
                setStatus('error', error.message);
            }
            if (done) {
                done();
            }
        });
{{- with .Startup}}

        try {
            const {{.Var}} = {
                message_type: {{quote .MessageType}},
                message_id: newId({{quote .IDPrefix}}),
                valid_from: new Date().toISOString(){{range .Fields}},
                {{.Key}}: parseConfigValue(config.{{.ConfigKey}}, {{.Fallback}}){{end}}
            };
            node.send({ payload: {{.Var}} });
            setStatus('success', 'Initialized successfully');
        } catch (error) {
            node.error('Initialization failed: ' + error.message);
            setStatus('error', 'Initialization failed');
        }
{{- end}}
    }

    RED.nodes.registerType({{quote .NodeType}}, {{.Constructor}});
};
`

var moduleFuncs = template.FuncMap{
	"quote": strconv.Quote,
}

var moduleTmpl = template.Must(template.New("module").Funcs(moduleFuncs).Parse(moduleTemplate))

type moduleData struct {
	Module
	Header string
}

func writeFileHeaderJS() string { return common.FileHeader("//", "JavaScript") }

// RenderModule renders m as a Node-RED runtime module.
func RenderModule(m Module) (string, error) {
	switch m.Style {
	case StyleCommonJS, StyleESM:
	default:
		return "", fmt.Errorf("render %s module: unknown style %q", m.Type, m.Style)
	}
	var sb strings.Builder
	if err := moduleTmpl.Execute(&sb, moduleData{Module: m, Header: writeFileHeaderJS()}); err != nil {
		return "", fmt.Errorf("render %s module: %w", m.Type, err)
	}
	return sb.String(), nil
}
