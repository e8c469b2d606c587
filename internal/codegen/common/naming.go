package common

import (
	"strings"
	"unicode"
)

// SanitizeLeadingDigit prefixes names that start with a digit with "Num"
// to keep identifiers valid in target languages.
func SanitizeLeadingDigit(name string) string {
	if name == "" {
		return ""
	}
	if name[0] >= '0' && name[0] <= '9' {
		return "Num" + name
	}
	return name
}

// SanitizeIdentifier turns a schema or message name into a valid JS/TS identifier.
// Every rune that cannot appear in an identifier is replaced with '_'.
// Example: "OMBC.SystemDescription" => "OMBC_SystemDescription".
func SanitizeIdentifier(name string) string {
	if name == "" {
		return "_"
	}
	var b strings.Builder
	for _, r := range name {
		if isIdentRune(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return SanitizeLeadingDigit(b.String())
}

// IsIdentifier reports whether name can be used unquoted as a property key.
func IsIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if !isIdentRune(r) {
			return false
		}
		if i == 0 && unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func isIdentRune(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
