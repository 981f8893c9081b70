package util

import (
	"strings"
	"unicode"
)

// VariantIdentifier turns a variant id into a type name for a sealed
// hierarchy. With pascal set, snake_case and kebab-case segments are joined
// in PascalCase; each segment keeps the casing after its first letter, so
// "HTTPError" and "not_found" become "HTTPError" and "NotFound". A name that
// starts with a digit gets a leading underscore.
func VariantIdentifier(name string, pascal bool) string {
	if pascal {
		var b strings.Builder
		for _, part := range strings.FieldsFunc(name, isSegmentBreak) {
			runes := []rune(part)
			b.WriteRune(unicode.ToUpper(runes[0]))
			b.WriteString(string(runes[1:]))
		}
		name = b.String()
	}
	if name != "" && unicode.IsDigit([]rune(name)[0]) {
		return "_" + name
	}
	return name
}

func isSegmentBreak(r rune) bool {
	return r == '_' || r == '-'
}
