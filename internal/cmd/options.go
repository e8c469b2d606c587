package cmd

import (
	"github.com/s2ws/s2gen/internal/codegen/generator"
	"github.com/s2ws/s2gen/internal/codegen/generator/nodered"
)

// GenerateOptions are the flags shared by generate and check.
type GenerateOptions struct {
	Spec         string   `help:"AsyncAPI document (YAML or JSON)" short:"s" required:"" type:"existingfile" env:"S2GEN_SPEC"`
	Output       string   `help:"Output directory" short:"o" default:"./generated" env:"S2GEN_OUTPUT"`
	TypesDir     string   `help:"Types directory, relative to the output directory" default:"types" env:"S2GEN_TYPES_DIR"`
	NodesDir     string   `help:"Node module directory, relative to the output directory" default:"nodes" env:"S2GEN_NODES_DIR"`
	TypesExt     string   `help:"Types file extension" enum:".ts,.d.ts" default:".ts" env:"S2GEN_TYPES_EXT"`
	Style        string   `help:"Node module style" enum:"commonjs,esm" default:"commonjs" env:"S2GEN_STYLE"`
	ControlTypes []string `help:"Control types to generate (OMBC,PEBC,PPBC,FRBC,DDBC). Empty means all" sep:"," env:"S2GEN_CONTROL_TYPES"`
	Strict       bool     `help:"Fail on unsupported control types, unresolved references and property template drift" env:"S2GEN_STRICT"`
	Package      bool     `help:"Emit a package.json registering the generated nodes" env:"S2GEN_PACKAGE"`
	PackageName  string   `help:"Package name used in package.json" default:"node-red-contrib-s2-rm" env:"S2GEN_PACKAGE_NAME"`
}

func (o GenerateOptions) generatorOptions() (generator.Options, error) {
	style, err := nodered.ParseStyle(o.Style)
	if err != nil {
		return generator.Options{}, err
	}
	return generator.Options{
		OutputDir:    o.Output,
		TypesDir:     o.TypesDir,
		NodesDir:     o.NodesDir,
		TypesExt:     o.TypesExt,
		Style:        style,
		ControlTypes: o.ControlTypes,
		Strict:       o.Strict,
		Package:      o.Package,
		PackageName:  o.PackageName,
	}, nil
}
