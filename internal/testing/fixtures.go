// Package testing holds fixtures shared by the generator test suites.
package testing

import (
	_ "embed"
	"testing"

	"github.com/s2ws/s2gen/internal/codegen/asyncapi"
)

//go:embed testdata/s2-rm.yaml
var s2rm []byte

// FixtureMessageCounts is the number of messages per group in the fixture
// document, keyed by group name.
var FixtureMessageCounts = map[string]int{
	"BASE": 4,
	"OMBC": 4,
	"PEBC": 3,
	"PPBC": 3,
	"FRBC": 4,
	"DDBC": 3,
}

// SpecBytes returns a copy of the raw fixture document.
func SpecBytes() []byte {
	return append([]byte(nil), s2rm...)
}

// LoadSpec parses the fixture document and fails the test on error.
func LoadSpec(t *testing.T) *asyncapi.Document {
	t.Helper()
	doc, err := asyncapi.Parse(s2rm)
	if err != nil {
		t.Fatalf("parse fixture spec: %v", err)
	}
	return doc
}

// ParseSpec parses an inline document and fails the test on error.
func ParseSpec(t *testing.T, src string) *asyncapi.Document {
	t.Helper()
	doc, err := asyncapi.Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse spec: %v", err)
	}
	return doc
}
