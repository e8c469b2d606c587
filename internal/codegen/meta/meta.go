package meta

import (
	"github.com/s2ws/s2gen/internal/codegen/asyncapi"
	"github.com/s2ws/s2gen/internal/codegen/controltype"
)

// Metadata holds everything loaded and classified for one generation run.
// Shared between the generator orchestrator and the target generators.
type Metadata struct {
	Doc    *asyncapi.Document
	Groups *controltype.Groups
}

// New classifies the document messages and bundles them with the document.
func New(doc *asyncapi.Document) *Metadata {
	return &Metadata{
		Doc:    doc,
		Groups: controltype.Group(doc.Messages),
	}
}
