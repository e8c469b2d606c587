package typescript

import (
	"strconv"
	"strings"

	"github.com/s2ws/s2gen/internal/codegen/common"
)

const tsAny = "any"

func writeFileHeaderTS() string { return common.FileHeader("//", "TypeScript") }

// literalUnion renders enum values as a union of single-quoted literals.
func literalUnion(values []string) string {
	if len(values) == 0 {
		return "never"
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = singleQuote(v)
	}
	return strings.Join(parts, " | ")
}

func singleQuote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`)
	return "'" + r.Replace(s) + "'"
}

// propertyKey leaves identifier-like names bare and quotes the rest,
// e.g. message names such as "OMBC.SystemDescription".
func propertyKey(name string) string {
	if common.IsIdentifier(name) {
		return name
	}
	return strconv.Quote(name)
}

func indent(depth int) string { return strings.Repeat("  ", depth) }
