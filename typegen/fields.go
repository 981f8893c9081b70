package typegen

import (
	"regexp"
	"strings"

	"github.com/teranos/shapeshare/model"
)

var (
	// QualifiedName matches a dotted JVM package name.
	QualifiedName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)
	// Identifier matches a single identifier, as used for type-name prefixes.
	Identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// SanitizeIdentifier turns a renamed wire identifier into a valid field name.
func SanitizeIdentifier(renamed string) string {
	return model.RemoveDashFromIdentifier(renamed)
}

// RequiresSerialName reports whether any field needs sanitizing. When true,
// every field of the definition carries an explicit serialization name.
func RequiresSerialName(fields []model.FieldDef) bool {
	for _, f := range fields {
		if strings.Contains(f.ID.Renamed, "-") {
			return true
		}
	}
	return false
}

// DefaultSuffix picks the default-value text for a field: optionalSuffix when
// the type is optional, defaultSuffix when the field has a default, else "".
func DefaultSuffix(f model.FieldDef, optionalSuffix, defaultSuffix string) string {
	switch {
	case model.IsOptional(f.Type):
		return optionalSuffix
	case f.HasDefault:
		return defaultSuffix
	default:
		return ""
	}
}

// FieldType returns the per-language override if present, else the projection.
func FieldType(p *Projector, lang model.Lang, f model.FieldDef, scope []string) (string, error) {
	if override, ok := f.TypeOverride(lang); ok {
		return override, nil
	}
	return p.Project(f.Type, scope)
}
