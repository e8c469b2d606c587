package properties

import (
	"errors"
	"fmt"

	"github.com/s2ws/s2gen/internal/codegen/asyncapi"
)

// ErrMissingBacking marks a template field whose backing message or payload
// field is absent from the document.
var ErrMissingBacking = errors.New("backing field missing")

// Validate checks every backed field of t against doc and returns one error
// per field that no longer lines up with the protocol.
func Validate(t Template, doc *asyncapi.Document) []error {
	var errs []error
	for _, f := range t.Fields {
		if f.Backing == nil {
			continue
		}
		if _, ok := doc.Message(f.Backing.Message); !ok {
			errs = append(errs, fmt.Errorf("%s.%s: message %q: %w", t.Type, f.Name, f.Backing.Message, ErrMissingBacking))
			continue
		}
		ok, err := doc.PayloadField(f.Backing.Message, f.Backing.Field)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s.%s: %w", t.Type, f.Name, err))
			continue
		}
		if !ok {
			errs = append(errs, fmt.Errorf("%s.%s: payload field %s.%s: %w", t.Type, f.Name, f.Backing.Message, f.Backing.Field, ErrMissingBacking))
		}
	}
	return errs
}
