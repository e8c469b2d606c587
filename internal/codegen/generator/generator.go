package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/s2ws/s2gen/internal/codegen/asyncapi"
	"github.com/s2ws/s2gen/internal/codegen/controltype"
	"github.com/s2ws/s2gen/internal/codegen/generator/nodered"
	"github.com/s2ws/s2gen/internal/codegen/generator/typescript"
	"github.com/s2ws/s2gen/internal/codegen/meta"
	"github.com/s2ws/s2gen/internal/codegen/properties"
	"github.com/s2ws/s2gen/internal/codegen/schema"
	"github.com/s2ws/s2gen/internal/log"
)

const (
	DefaultTypesDir = "types"
	DefaultNodesDir = "nodes"
	DefaultTypesExt = ".ts"
)

// Options controls what a run produces and where.
type Options struct {
	OutputDir string
	// TypesDir and NodesDir are relative to OutputDir.
	TypesDir string
	NodesDir string
	// TypesExt is ".ts" or ".d.ts".
	TypesExt string
	Style    nodered.Style
	// ControlTypes limits the run to the listed tags. Empty means all.
	ControlTypes []string
	// Strict turns skipped tags, unresolved references and property
	// template drift into errors.
	Strict      bool
	Manifest    bool
	Package     bool
	PackageName string
}

func (o Options) withDefaults() (Options, error) {
	if o.OutputDir == "" {
		o.OutputDir = "."
	}
	if o.TypesDir == "" {
		o.TypesDir = DefaultTypesDir
	}
	if o.NodesDir == "" {
		o.NodesDir = DefaultNodesDir
	}
	switch strings.TrimPrefix(o.TypesExt, ".") {
	case "", "ts":
		o.TypesExt = ".ts"
	case "d.ts":
		o.TypesExt = ".d.ts"
	default:
		return o, fmt.Errorf("unsupported types extension %q (want .ts or .d.ts)", o.TypesExt)
	}
	if o.Style == "" {
		o.Style = nodered.StyleCommonJS
	}
	if o.PackageName == "" {
		o.PackageName = DefaultPackageName
	}
	return o, nil
}

// Generator renders the artifacts of a document and writes them to disk.
type Generator struct {
	opts   Options
	logger *slog.Logger
	raw    log.RawLogger
}

func New(opts Options, logger *slog.Logger, raw log.RawLogger) (*Generator, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	if raw == nil {
		raw = log.NewRaw(nil)
	}
	return &Generator{
		opts:   opts,
		logger: logger,
		raw:    raw,
	}, nil
}

// Artifact is one generated file. Path is slash separated and relative to
// the output directory.
type Artifact struct {
	Path string
	Data []byte
}

// ArtifactSet is the {types, module, descriptor} triple of one control type.
type ArtifactSet struct {
	ControlType controltype.ControlType
	Types       Artifact
	Module      Artifact
	Descriptor  Artifact
	Cases       []nodered.Case
}

// Report is the in-memory result of a run.
type Report struct {
	// Source is the document path, empty for in-memory documents.
	Source string
	Base   Artifact
	Sets []ArtifactSet
	// Skipped lists requested tags that are not control types.
	Skipped []string
	// Unresolved lists distinct $ref strings rendered as any.
	Unresolved []string
	// Drifted lists property template fields without a backing payload field.
	Drifted []string
	// Extra holds the package manifest when requested.
	Extra []Artifact
}

// Artifacts returns every file of the report in write order.
func (r *Report) Artifacts() []Artifact {
	out := []Artifact{r.Base}
	for _, s := range r.Sets {
		out = append(out, s.Types, s.Module, s.Descriptor)
	}
	return append(out, r.Extra...)
}

// Run loads the document at specPath, renders every artifact and writes them.
func (g *Generator) Run(ctx context.Context, specPath string) (*Report, error) {
	g.logger.Info("Loading specification", "path", specPath)
	doc, err := asyncapi.Load(specPath)
	if err != nil {
		return nil, err
	}
	report, err := g.Render(ctx, doc)
	if err != nil {
		return nil, err
	}
	if err := g.Write(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// Render produces every artifact in memory. Nothing is written.
func (g *Generator) Render(ctx context.Context, doc *asyncapi.Document) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	md := meta.New(doc)
	g.logger.Info("Classified messages", "messages", len(doc.Messages), "base", len(md.Groups.Base()))

	cts, skipped := g.selectControlTypes()
	if len(skipped) > 0 && g.opts.Strict {
		return nil, fmt.Errorf("%w: %s", controltype.ErrUnknownControlType, strings.Join(skipped, ", "))
	}
	report := &Report{Source: doc.Source, Skipped: skipped}

	var unresolved []string
	base, err := typescript.GenerateBase(g.logger, md)
	if err != nil {
		return nil, err
	}
	unresolved = append(unresolved, base.Unresolved...)
	report.Base = Artifact{Path: g.typesPath("base"), Data: []byte(base.Text)}

	for _, ct := range cts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		types, err := typescript.GenerateControlType(g.logger, md, ct)
		if err != nil {
			return nil, err
		}
		unresolved = append(unresolved, types.Unresolved...)

		node, err := nodered.Generate(g.logger, md, ct, g.opts.Style)
		if err != nil {
			return nil, err
		}
		report.Sets = append(report.Sets, ArtifactSet{
			ControlType: ct,
			Types:       Artifact{Path: g.typesPath(ct.Lower()), Data: []byte(types.Text)},
			Module:      Artifact{Path: g.nodePath(ct, ".js"), Data: []byte(node.Module)},
			Descriptor:  Artifact{Path: g.nodePath(ct, ".html"), Data: []byte(node.Descriptor)},
			Cases:       node.Cases,
		})
		g.logger.Debug("Rendered control type", "controlType", ct, "cases", len(node.Cases))
	}

	slices.Sort(unresolved)
	report.Unresolved = slices.Compact(unresolved)
	if len(report.Unresolved) > 0 && g.opts.Strict {
		return nil, fmt.Errorf("%w: %s", schema.ErrUnresolvedReference, strings.Join(report.Unresolved, ", "))
	}

	drifted, err := g.validateTemplates(doc, cts)
	if err != nil {
		return nil, err
	}
	report.Drifted = drifted

	if g.opts.Package {
		pkg, err := g.packageManifest(doc, report.Sets)
		if err != nil {
			return nil, err
		}
		report.Extra = append(report.Extra, pkg)
	}
	return report, nil
}

func (g *Generator) selectControlTypes() ([]controltype.ControlType, []string) {
	if len(g.opts.ControlTypes) == 0 {
		return controltype.All(), nil
	}
	var cts []controltype.ControlType
	var skipped []string
	for _, tag := range g.opts.ControlTypes {
		ct, err := controltype.Parse(tag)
		if err != nil {
			g.logger.Warn("Skipping unsupported control type", "tag", tag)
			skipped = append(skipped, tag)
			continue
		}
		if !slices.Contains(cts, ct) {
			cts = append(cts, ct)
		}
	}
	return cts, skipped
}

func (g *Generator) validateTemplates(doc *asyncapi.Document, cts []controltype.ControlType) ([]string, error) {
	var drifted []string
	var errs []error
	for _, ct := range cts {
		tmpl, err := properties.For(ct)
		if err != nil {
			return nil, err
		}
		for _, err := range properties.Validate(tmpl, doc) {
			g.logger.Warn("Property template drift", "controlType", ct, "error", err)
			drifted = append(drifted, err.Error())
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 && g.opts.Strict {
		return nil, fmt.Errorf("property templates: %w", errors.Join(errs...))
	}
	return drifted, nil
}

func (g *Generator) typesPath(name string) string {
	return path.Join(filepath.ToSlash(g.opts.TypesDir), name+".types"+g.opts.TypesExt)
}

func (g *Generator) nodePath(ct controltype.ControlType, ext string) string {
	return path.Join(filepath.ToSlash(g.opts.NodesDir), ct.NodeType()+ext)
}

// Write stores every artifact of report under the output directory. Each
// file is written to a temporary sibling and renamed into place. The first
// failure aborts the run.
func (g *Generator) Write(ctx context.Context, report *Report) error {
	artifacts := report.Artifacts()
	if g.opts.Manifest {
		m, err := g.digestManifest(report.Source, artifacts)
		if err != nil {
			return err
		}
		artifacts = append(artifacts, m)
	}
	for _, a := range artifacts {
		if err := ctx.Err(); err != nil {
			return err
		}
		dest := g.abs(a.Path)
		if err := writeFileAtomic(dest, a.Data); err != nil {
			return fmt.Errorf("write %s: %w", a.Path, err)
		}
		g.raw.Log(a.Path, a.Data)
		g.logger.Info("Generated file", "file", dest, "bytes", len(a.Data))
	}
	g.logger.Info("Generation complete", "output", g.opts.OutputDir, "files", len(artifacts))
	return nil
}

func (g *Generator) abs(rel string) string {
	return filepath.Join(g.opts.OutputDir, filepath.FromSlash(rel))
}

func writeFileAtomic(dest string, data []byte) error {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(dest)+".*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, dest); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
