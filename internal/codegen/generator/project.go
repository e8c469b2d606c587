package generator

import (
	"encoding/json"
	"fmt"

	"github.com/s2ws/s2gen/internal/codegen/asyncapi"
	"github.com/s2ws/s2gen/internal/codegen/common"
	"github.com/s2ws/s2gen/internal/codegen/generator/nodered"
)

const (
	PackageFile        = "package.json"
	DefaultPackageName = "node-red-contrib-s2-rm"
)

type packageJSON struct {
	Name        string         `json:"name"`
	Version     string         `json:"version"`
	Description string         `json:"description"`
	Type        string         `json:"type,omitempty"`
	Keywords    []string       `json:"keywords"`
	NodeRED     packageNodeRED `json:"node-red"`
}

type packageNodeRED struct {
	Nodes map[string]string `json:"nodes"`
}

// packageManifest registers every generated node module with the plugin host.
func (g *Generator) packageManifest(doc *asyncapi.Document, sets []ArtifactSet) (Artifact, error) {
	g.logger.Debug("Generating package.json")
	version := doc.Version
	if version == "" {
		v, err := common.GetVersion()
		if err != nil {
			return Artifact{}, fmt.Errorf("get version: %w", err)
		}
		version = v
	}
	title := doc.Title
	if title == "" {
		title = "the S2 protocol"
	}

	pkg := packageJSON{
		Name:        g.opts.PackageName,
		Version:     version,
		Description: "S2 resource manager nodes generated from " + title,
		Keywords:    []string{"node-red", "s2", "energy"},
		NodeRED:     packageNodeRED{Nodes: make(map[string]string, len(sets))},
	}
	if g.opts.Style == nodered.StyleESM {
		pkg.Type = "module"
	}
	for _, s := range sets {
		pkg.NodeRED.Nodes[s.ControlType.NodeType()] = s.Module.Path
	}

	data, err := json.MarshalIndent(pkg, "", "  ")
	if err != nil {
		return Artifact{}, fmt.Errorf("encode %s: %w", PackageFile, err)
	}
	return Artifact{Path: PackageFile, Data: append(data, '\n')}, nil
}
