// Package kotlin renders a model as Kotlin source using kotlinx.serialization.
package kotlin

import (
	"io"
	"sort"
	"strings"

	"github.com/teranos/shapeshare/errors"
	"github.com/teranos/shapeshare/model"
	"github.com/teranos/shapeshare/typegen"
	"github.com/teranos/shapeshare/typegen/util"
	"github.com/teranos/shapeshare/version"
)

const (
	// Language is the backend name used in config and decorators
	Language = "kotlin"

	// inlineDecorator renders an alias or single-field struct as a value class
	inlineDecorator = "JvmInline"
)

// Kotlin implements typegen.Language.
type Kotlin struct {
	cfg       typegen.Config
	projector *typegen.Projector
}

// New validates cfg and creates a Kotlin backend. An empty namespace is
// allowed and suppresses the file preamble.
func New(cfg typegen.Config) (*Kotlin, error) {
	if cfg.Namespace != "" && !typegen.QualifiedName.MatchString(cfg.Namespace) {
		return nil, errors.WithHint(
			errors.NewInvalidConfigError("kotlin: package %q is not a dotted identifier", cfg.Namespace),
			"use a package name like com.example.shapes",
		)
	}
	if cfg.Prefix != "" && !typegen.Identifier.MatchString(cfg.Prefix) {
		return nil, errors.NewInvalidConfigError("kotlin: prefix %q is not an identifier", cfg.Prefix)
	}
	cfg = cfg.Clone()
	if cfg.Version == "" {
		cfg.Version = version.Header()
	}
	return &Kotlin{
		cfg:       cfg,
		projector: typegen.NewProjector(Language, types{}, cfg),
	}, nil
}

// Name returns "kotlin"
func (k *Kotlin) Name() string { return Language }

// FileExtension returns "kt"
func (k *Kotlin) FileExtension() string { return "kt" }

// Config returns a copy of the backend configuration.
func (k *Kotlin) Config() typegen.Config { return k.cfg.Clone() }

// Projector returns the Kotlin type projector.
func (k *Kotlin) Projector() *typegen.Projector { return k.projector }

// IgnoredReferenceTypes returns the rename-table keys, sorted.
func (k *Kotlin) IgnoredReferenceTypes() []string {
	out := make([]string, 0, len(k.cfg.TypeMappings))
	for name := range k.cfg.TypeMappings {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// BeginFile writes the version header, package line and serialization imports.
func (k *Kotlin) BeginFile(w io.Writer, m *model.Model) error {
	if k.cfg.Namespace == "" {
		return nil
	}
	out := typegen.NewWriter(w)
	if !k.cfg.NoVersionHeader {
		out.Println("/**")
		out.Println(" * Generated by shapeshare %s", k.cfg.Version)
		out.Println(" */")
		out.Println("")
	}
	if m.MultiFile {
		module := m.ModuleName
		if module == "" {
			module = k.cfg.ModuleName
		}
		out.Println("package %s.%s", k.cfg.Namespace, module)
	} else {
		out.Println("package %s", k.cfg.Namespace)
	}
	out.Println("")
	out.Println("import kotlinx.serialization.Serializable")
	out.Println("import kotlinx.serialization.SerialName")
	out.Println("")
	return out.Err()
}

// EndFile writes nothing.
func (k *Kotlin) EndFile(w io.Writer) error { return nil }

// WriteImports writes one import per referenced type from another module.
func (k *Kotlin) WriteImports(w io.Writer, imports map[string][]string) error {
	out := typegen.NewWriter(w)
	for _, module := range typegen.SortedKeys(imports) {
		for _, t := range imports[module] {
			out.Println("import %s", joinPath(k.cfg.Namespace, module, t))
		}
	}
	out.Println("")
	return out.Err()
}

// WriteConst is not supported by the Kotlin backend.
func (k *Kotlin) WriteConst(w io.Writer, c *model.ConstDef) error {
	return errors.NewNotImplementedError(Language, "constants")
}

// WriteTypeAlias writes a typealias, or a value class for JvmInline aliases.
func (k *Kotlin) WriteTypeAlias(w io.Writer, a *model.AliasDef) error {
	out := typegen.NewWriter(w)
	out.Comments(0, "///", a.Comments)

	if a.Decorators.Has(model.LangKotlin, inlineDecorator) {
		value := model.FieldDef{ID: model.NewID("value"), Type: a.Type}
		if err := k.writeValueClass(out, a.ID.Renamed, a.Generics, value, a.Redacted); err != nil {
			return err
		}
		return out.Err()
	}

	ty, err := k.projector.Project(a.Type, a.Generics)
	if err != nil {
		return err
	}
	out.Println("typealias %s%s = %s", k.projector.TypeName(a.ID.Original), k.projector.GenericParams(a.Generics), ty)
	out.Println("")
	return out.Err()
}

// WriteStruct writes a data class, an object for empty structs, or a value
// class for JvmInline single-field structs.
func (k *Kotlin) WriteStruct(w io.Writer, s *model.StructDef) error {
	out := typegen.NewWriter(w)
	out.Comments(0, "///", s.Comments)

	if s.Decorators.Has(model.LangKotlin, inlineDecorator) && len(s.Fields) == 1 {
		if err := k.writeValueClass(out, s.ID.Renamed, s.Generics, s.Fields[0], s.Redacted); err != nil {
			return err
		}
		return out.Err()
	}

	out.Println("@Serializable")
	name := k.projector.TypeName(s.ID.Renamed)
	if len(s.Fields) == 0 {
		if s.Redacted {
			out.Println("object %s {", name)
			out.Println("\toverride fun toString(): String = %q", s.ID.Renamed)
			out.Println("}")
		} else {
			out.Println("object %s", name)
		}
		out.Println("")
		return out.Err()
	}

	out.Println("data class %s%s (", name, k.projector.GenericParams(s.Generics))
	serialName := typegen.RequiresSerialName(s.Fields)
	for i, f := range s.Fields {
		if i > 0 {
			out.Println(",")
		}
		if err := k.writeField(out, f, s.Generics, serialName, false); err != nil {
			return err
		}
	}
	out.Println("")

	if s.Redacted {
		out.Println(") {")
		out.Println("\toverride fun toString(): String = %q", s.ID.Renamed)
		out.Println("}")
	} else {
		out.Println(")")
	}
	out.Println("")
	return out.Err()
}

// writeValueClass renders an inline wrapper. The wrapped field is private
// only when the type is redacted.
func (k *Kotlin) writeValueClass(out *typegen.Writer, name string, generics []string, f model.FieldDef, redacted bool) error {
	out.Println("@Serializable")
	out.Println("@JvmInline")
	out.Println("value class %s%s(", k.projector.TypeName(name), k.projector.GenericParams(generics))
	if err := k.writeField(out, f, generics, false, redacted); err != nil {
		return err
	}
	out.Println("")

	if redacted {
		out.Println(") {")
		out.Println("\tfun unwrap() = %s", typegen.SanitizeIdentifier(f.ID.Renamed))
		out.Println("")
		out.Println("\toverride fun toString(): String = \"***\"")
		out.Println("}")
	} else {
		out.Println(")")
	}
	out.Println("")
	return nil
}

func (k *Kotlin) writeField(out *typegen.Writer, f model.FieldDef, scope []string, serialName, private bool) error {
	out.Comments(1, "///", f.Comments)
	if serialName {
		out.Println("\t@SerialName(%q)", f.ID.Renamed)
	}
	ty, err := typegen.FieldType(k.projector, model.LangKotlin, f, scope)
	if err != nil {
		return err
	}
	visibility := ""
	if private {
		visibility = "private "
	}
	out.Printf("\t%sval %s: %s%s", visibility, typegen.SanitizeIdentifier(f.ID.Renamed), ty,
		typegen.DefaultSuffix(f, " = null", "? = null"))
	return nil
}

// WriteEnum writes an enum class for unit enums and a sealed class for
// tagged unions. Inline-record structs were emitted ahead by the plan.
func (k *Kotlin) WriteEnum(w io.Writer, e *model.EnumDef) error {
	out := typegen.NewWriter(w)
	out.Comments(0, "///", e.Comments)
	out.Println("@Serializable")

	name := k.projector.TypeName(e.ID.Renamed)
	generics := k.projector.GenericParams(e.Generics)

	if e.Kind == model.UnitEnum {
		out.Println("enum class %s%s(val string: String) {", name, generics)
		for _, v := range e.Variants {
			out.Comments(1, "///", v.Comments)
			out.Println("\t@SerialName(%q)", v.ID.Renamed)
			out.Println("\t%s(%q),", v.ID.Original, v.ID.Renamed)
		}
		out.Println("}")
		out.Println("")
		return out.Err()
	}

	out.Println("sealed class %s%s {", name, generics)
	for _, v := range e.Variants {
		if err := k.writeVariant(out, e, v, name+generics); err != nil {
			return err
		}
	}
	out.Println("}")
	out.Println("")
	return out.Err()
}

func (k *Kotlin) writeVariant(out *typegen.Writer, e *model.EnumDef, v model.Variant, parent string) error {
	out.Comments(1, "///", v.Comments)
	out.Println("\t@Serializable")
	out.Println("\t@SerialName(%q)", v.ID.Renamed)

	name := util.VariantIdentifier(v.ID.Original, true)
	generics := k.projector.GenericParams(e.Generics)

	switch v.Kind {
	case model.NoPayload:
		out.Printf("\tobject %s", name)
	case model.SinglePayload:
		ty, err := k.projector.Project(v.Type, e.Generics)
		if err != nil {
			return err
		}
		out.Printf("\tdata class %s%s(val %s: %s)", name, generics, e.ContentKey, ty)
	case model.InlineRecord:
		record := k.projector.TypeName(typegen.InlineRecordName(e, v)) +
			k.projector.GenericParams(typegen.InlineRecordGenerics(e, v.Fields))
		out.Printf("\tdata class %s%s(val %s: %s)", name, generics, e.ContentKey, record)
	}
	out.Println(": %s()", parent)
	return nil
}

func joinPath(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ".")
}
