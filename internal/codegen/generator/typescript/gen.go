// Package typescript synthesizes TypeScript declarations from the schema model.
package typescript

import (
	"fmt"
	"log/slog"

	"github.com/s2ws/s2gen/internal/codegen/controltype"
	"github.com/s2ws/s2gen/internal/codegen/meta"
)

// Output is a rendered declarations file plus the references that degraded
// to the unconstrained type while rendering it.
type Output struct {
	Text       string
	Unresolved []string
}

// GenerateBase renders the shared declarations for every schema.
func GenerateBase(logger *slog.Logger, md *meta.Metadata) (Output, error) {
	logger.Debug("Generating base TypeScript declarations", "schemas", md.Doc.Schemas.Len())
	f, unresolved := BuildFile(md.Doc.Schemas)
	return render(logger, f, unresolved, "base")
}

// GenerateControlType renders the shared declarations merged with the
// message group of ct.
func GenerateControlType(logger *slog.Logger, md *meta.Metadata, ct controltype.ControlType) (Output, error) {
	messages := md.Groups.Of(ct)
	logger.Debug("Generating TypeScript declarations", "controlType", ct, "messages", len(messages))
	f, unresolved := BuildControlTypeFile(md.Doc.Schemas, messages)
	return render(logger, f, unresolved, ct.Lower())
}

func render(logger *slog.Logger, f File, unresolved []string, scope string) (Output, error) {
	text, err := Render(f)
	if err != nil {
		return Output{}, fmt.Errorf("render %s declarations: %w", scope, err)
	}
	for _, ref := range unresolved {
		logger.Warn("Unresolved schema reference, using any", "scope", scope, "ref", ref)
	}
	return Output{Text: text, Unresolved: unresolved}, nil
}
