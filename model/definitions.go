package model

import "strings"

// Lang names an output language for per-language overrides and decorators.
type Lang string

const (
	LangKotlin Lang = "kotlin"
	LangScala  Lang = "scala"
)

// Id identifies a definition, field or variant.
type Id struct {
	// Original is the identifier as declared in the origin language
	Original string
	// Renamed is the identifier after serialization renames
	Renamed string
	// SerdeRename is set when Renamed came from an explicit rename
	SerdeRename bool
}

// NewID returns an Id whose renamed form equals the original.
func NewID(name string) Id {
	return Id{Original: name, Renamed: name}
}

// RenamedID returns an Id carrying an explicit serialization rename.
func RenamedID(original, renamed string) Id {
	return Id{Original: original, Renamed: renamed, SerdeRename: original != renamed}
}

// Decorators holds free-form flags per output language.
type Decorators map[Lang][]string

// Has reports whether flag is set for lang.
func (d Decorators) Has(lang Lang, flag string) bool {
	for _, f := range d[lang] {
		if f == flag {
			return true
		}
	}
	return false
}

// Definition is any top-level item that can be emitted.
type Definition interface {
	DefinitionID() Id
}

// StructDef is a record type.
type StructDef struct {
	ID         Id
	Fields     []FieldDef
	Generics   []string
	Comments   []string
	Redacted   bool
	Decorators Decorators
}

// FieldDef is one field of a struct or inline record.
type FieldDef struct {
	ID         Id
	Type       Type
	Comments   []string
	HasDefault bool
	// TypeOverrides replaces projection with a literal type for one language
	TypeOverrides map[Lang]string
	Decorators    Decorators
}

// TypeOverride returns the literal override for lang, if any.
func (f FieldDef) TypeOverride(lang Lang) (string, bool) {
	s, ok := f.TypeOverrides[lang]
	return s, ok && s != ""
}

// EnumKind distinguishes plain enumerations from tagged unions.
type EnumKind int

const (
	UnitEnum EnumKind = iota
	TaggedUnion
)

func (k EnumKind) String() string {
	if k == TaggedUnion {
		return "tagged union"
	}
	return "unit enum"
}

// EnumDef is a closed set of variants.
type EnumDef struct {
	Kind       EnumKind
	ID         Id
	Generics   []string
	Comments   []string
	Decorators Decorators
	// TagKey names the discriminator field of a tagged union
	TagKey string
	// ContentKey names the payload field of a tagged union
	ContentKey string
	Variants   []Variant
}

// VariantKind is the payload shape of a variant.
type VariantKind int

const (
	NoPayload VariantKind = iota
	SinglePayload
	InlineRecord
)

func (k VariantKind) String() string {
	switch k {
	case SinglePayload:
		return "single payload"
	case InlineRecord:
		return "inline record"
	default:
		return "no payload"
	}
}

// Variant is one case of an enum.
type Variant struct {
	Kind     VariantKind
	ID       Id
	Comments []string
	// Type is the payload of a SinglePayload variant
	Type Type
	// Fields are the members of an InlineRecord variant
	Fields []FieldDef
}

// AliasDef names another type.
type AliasDef struct {
	ID         Id
	Type       Type
	Generics   []string
	Comments   []string
	Redacted   bool
	Decorators Decorators
}

// ConstDef is a named constant value.
type ConstDef struct {
	ID       Id
	Type     Type
	Value    string
	Comments []string
}

func (s *StructDef) DefinitionID() Id { return s.ID }
func (e *EnumDef) DefinitionID() Id   { return e.ID }
func (a *AliasDef) DefinitionID() Id  { return a.ID }
func (c *ConstDef) DefinitionID() Id  { return c.ID }

// RemoveDashFromIdentifier drops every '-' so a wire name becomes a valid identifier.
func RemoveDashFromIdentifier(s string) string {
	return strings.ReplaceAll(s, "-", "")
}
