package generator

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"

	"github.com/s2ws/s2gen/internal/codegen/asyncapi"
	"github.com/s2ws/s2gen/internal/codegen/common"
)

// ManifestFile is the digest manifest name, written to the output root.
const ManifestFile = "s2gen-manifest.json"

// ErrDrift is returned by Check when files on disk differ from what the
// document generates.
var ErrDrift = errors.New("generated files are out of date")

// Manifest records the digest of every file written by a run.
type Manifest struct {
	Generator string          `json:"generator"`
	Version   string          `json:"version"`
	RunID     string          `json:"runId"`
	Source    string          `json:"source,omitempty"`
	Files     []ManifestEntry `json:"files"`
}

type ManifestEntry struct {
	Path   string `json:"path"`
	Size   int    `json:"size"`
	Digest string `json:"blake2b"`
}

// Digest returns the hex BLAKE2b-256 digest of data.
func Digest(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func (g *Generator) digestManifest(source string, artifacts []Artifact) (Artifact, error) {
	version, err := common.GetVersion()
	if err != nil {
		return Artifact{}, fmt.Errorf("get version: %w", err)
	}
	m := Manifest{
		Generator: "s2gen",
		Version:   version,
		RunID:     uuid.NewString(),
		Source:    source,
		Files:     make([]ManifestEntry, 0, len(artifacts)),
	}
	for _, a := range artifacts {
		m.Files = append(m.Files, ManifestEntry{Path: a.Path, Size: len(a.Data), Digest: Digest(a.Data)})
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return Artifact{}, fmt.Errorf("encode manifest: %w", err)
	}
	return Artifact{Path: ManifestFile, Data: append(data, '\n')}, nil
}

// ReadManifest loads the manifest from the output directory. A missing
// manifest yields nil without error.
func (g *Generator) ReadManifest() (*Manifest, error) {
	data, err := os.ReadFile(g.abs(ManifestFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	return &m, nil
}

// Drift lists the differences between the output directory and a report.
type Drift struct {
	Changed []string
	Missing []string
	// Stale lists files recorded in the on-disk manifest that the document
	// no longer generates.
	Stale []string
}

func (d *Drift) Empty() bool {
	return len(d.Changed) == 0 && len(d.Missing) == 0 && len(d.Stale) == 0
}

// Check renders the document at specPath in memory and compares the result
// with the output directory. It returns ErrDrift when they differ.
func (g *Generator) Check(ctx context.Context, specPath string) (*Drift, error) {
	doc, err := asyncapi.Load(specPath)
	if err != nil {
		return nil, err
	}
	report, err := g.Render(ctx, doc)
	if err != nil {
		return nil, err
	}
	drift, err := g.Compare(report)
	if err != nil {
		return nil, err
	}
	if !drift.Empty() {
		return drift, fmt.Errorf("%w: %d changed, %d missing, %d stale",
			ErrDrift, len(drift.Changed), len(drift.Missing), len(drift.Stale))
	}
	g.logger.Info("Generated files are up to date", "files", len(report.Artifacts()))
	return drift, nil
}

// Compare digests every artifact of report against the file on disk.
func (g *Generator) Compare(report *Report) (*Drift, error) {
	drift := &Drift{}
	expected := map[string]bool{}
	for _, a := range report.Artifacts() {
		expected[a.Path] = true
		data, err := os.ReadFile(g.abs(a.Path))
		if errors.Is(err, fs.ErrNotExist) {
			g.logger.Warn("Generated file missing", "file", a.Path)
			drift.Missing = append(drift.Missing, a.Path)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", a.Path, err)
		}
		if Digest(data) != Digest(a.Data) {
			g.logger.Warn("Generated file changed", "file", a.Path)
			drift.Changed = append(drift.Changed, a.Path)
		}
	}

	m, err := g.ReadManifest()
	if err != nil {
		return nil, err
	}
	if m != nil {
		for _, f := range m.Files {
			if !expected[f.Path] {
				g.logger.Warn("Generated file no longer produced", "file", f.Path)
				drift.Stale = append(drift.Stale, f.Path)
			}
		}
	}
	return drift, nil
}
