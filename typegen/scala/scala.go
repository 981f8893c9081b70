// Package scala renders a model as Scala 2 case classes and sealed traits.
//
// Scala has no unsigned integers. Unsigned kinds project to UByte, UShort,
// UInt and ULong, which the file defines as aliases of signed types in the
// package object. The table is lossy: ULong aliases Int.
package scala

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

// Language is the backend name used in config and decorators
const Language = "scala"

// unsignedAliases is emitted once when any unsigned type is used.
var unsignedAliases = []string{
	"type UByte = Byte",
	"type UShort = Short",
	"type UInt = Int",
	"type ULong = Int",
}

// Scala implements typegen.Language and typegen.Layout.
type Scala struct {
	cfg       typegen.Config
	projector *typegen.Projector
	// parent is the package line; block names the package object and package block
	parent string
	block  string
}

// New validates cfg and creates a Scala backend. The namespace is required.
// Scala output carries no identifier prefix.
func New(cfg typegen.Config) (*Scala, error) {
	if cfg.Namespace == "" {
		return nil, errors.WithHint(
			errors.NewInvalidConfigError("scala: package name must be provided"),
			"set scala.package in shapeshare.toml",
		)
	}
	if !typegen.QualifiedName.MatchString(cfg.Namespace) {
		return nil, errors.NewInvalidConfigError("scala: package %q is not a dotted identifier", cfg.Namespace)
	}
	cfg = cfg.Clone()
	cfg.Prefix = ""
	if cfg.Version == "" {
		cfg.Version = version.Header()
	}

	s := &Scala{
		cfg:       cfg,
		projector: typegen.NewProjector(Language, types{}, cfg),
		block:     cfg.Namespace,
	}
	if i := strings.LastIndex(cfg.Namespace, "."); i >= 0 {
		s.parent, s.block = cfg.Namespace[:i], cfg.Namespace[i+1:]
	}
	return s, nil
}

// Name returns "scala"
func (s *Scala) Name() string { return Language }

// FileExtension returns "scala"
func (s *Scala) FileExtension() string { return "scala" }

// Config returns a copy of the backend configuration.
func (s *Scala) Config() typegen.Config { return s.cfg.Clone() }

// Projector returns the Scala type projector.
func (s *Scala) Projector() *typegen.Projector { return s.projector }

// IgnoredReferenceTypes returns the rename-table keys, sorted.
func (s *Scala) IgnoredReferenceTypes() []string {
	out := make([]string, 0, len(s.cfg.TypeMappings))
	for name := range s.cfg.TypeMappings {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// BeginFile writes the version header and the parent package line.
func (s *Scala) BeginFile(w io.Writer, m *model.Model) error {
	out := typegen.NewWriter(w)
	if !s.cfg.NoVersionHeader {
		out.Println("/**")
		out.Println(" * Generated by shapeshare %s", s.cfg.Version)
		out.Println(" */")
	}
	if s.parent != "" {
		out.Println("package %s", s.parent)
		out.Println("")
	}
	return out.Err()
}

// EndFile writes nothing.
func (s *Scala) EndFile(w io.Writer) error { return nil }

// Sections groups aliases into a package object (Scala 2 requires aliases to
// live in an object) and structs and enums into a package block.
func (s *Scala) Sections(m *model.Model, plan *typegen.Plan) []typegen.Section {
	var aliases, body, consts []model.Definition
	for _, d := range plan.Definitions {
		switch d.(type) {
		case *model.AliasDef:
			aliases = append(aliases, d)
		case *model.ConstDef:
			consts = append(consts, d)
		default:
			body = append(body, d)
		}
	}

	var sections []typegen.Section
	unsigned := usesUnsigned(m)
	if unsigned || len(aliases) > 0 {
		var open strings.Builder
		open.WriteString("package object " + s.block + " {\n\n")
		if unsigned {
			open.WriteString(strings.Join(unsignedAliases, "\n"))
			open.WriteString("\n\n")
		}
		sections = append(sections, typegen.Section{Open: open.String(), Close: "}\n", Items: aliases})
	}
	if len(body) > 0 {
		sections = append(sections, typegen.Section{
			Open:  "package " + s.block + " {\n\n",
			Close: "}\n",
			Items: body,
		})
	}
	if len(consts) > 0 {
		sections = append(sections, typegen.Section{Items: consts})
	}
	return sections
}

// usesUnsigned reports whether an alias, struct or enum references an
// unsigned integer at any depth.
func usesUnsigned(m *model.Model) bool {
	scan := *m
	scan.Consts = nil
	return scan.UsesType(func(t model.Type) bool {
		special, ok := t.(model.Special)
		return ok && special.Kind.IsUnsigned()
	})
}

// WriteImports is not supported by the Scala backend.
func (s *Scala) WriteImports(w io.Writer, imports map[string][]string) error {
	return errors.NewNotImplementedError(Language, "imports")
}

// WriteConst is not supported by the Scala backend.
func (s *Scala) WriteConst(w io.Writer, c *model.ConstDef) error {
	return errors.NewNotImplementedError(Language, "constants")
}

// WriteTypeAlias writes a type member of the package object.
func (s *Scala) WriteTypeAlias(w io.Writer, a *model.AliasDef) error {
	ty, err := s.projector.Project(a.Type, a.Generics)
	if err != nil {
		return err
	}
	out := typegen.NewWriter(w)
	out.Comments(0, "//", a.Comments)
	out.Println("type %s%s = %s", a.ID.Original, s.projector.GenericParams(a.Generics), ty)
	out.Println("")
	return out.Err()
}

// WriteStruct writes a case class, or a Serializable class for empty structs.
func (s *Scala) WriteStruct(w io.Writer, st *model.StructDef) error {
	out := typegen.NewWriter(w)
	out.Comments(0, "//", st.Comments)

	if len(st.Fields) == 0 {
		if st.Redacted {
			out.Println("class %s extends Serializable {", st.ID.Renamed)
			out.Println("\toverride def toString: String = %q", st.ID.Renamed)
			out.Println("}")
		} else {
			out.Println("class %s extends Serializable", st.ID.Renamed)
		}
		out.Println("")
		return out.Err()
	}

	out.Println("case class %s%s (", st.ID.Renamed, s.projector.GenericParams(st.Generics))
	for i, f := range st.Fields {
		if i > 0 {
			out.Println(",")
		}
		if err := s.writeField(out, f, st.Generics); err != nil {
			return err
		}
	}
	out.Println("")

	if st.Redacted {
		out.Println(") {")
		out.Println("\toverride def toString: String = %q", st.ID.Renamed)
		out.Println("}")
	} else {
		out.Println(")")
	}
	out.Println("")
	return out.Err()
}

func (s *Scala) writeField(out *typegen.Writer, f model.FieldDef, scope []string) error {
	out.Comments(1, "//", f.Comments)
	ty, err := typegen.FieldType(s.projector, model.LangScala, f, scope)
	if err != nil {
		return err
	}
	out.Printf("\t%s: %s%s", typegen.SanitizeIdentifier(f.ID.Renamed), ty,
		typegen.DefaultSuffix(f, " = None", " = _"))
	return nil
}

// WriteEnum writes a sealed trait and a companion object holding the
// variants. Inline-record structs were emitted ahead by the plan.
func (s *Scala) WriteEnum(w io.Writer, e *model.EnumDef) error {
	out := typegen.NewWriter(w)
	out.Comments(0, "//", e.Comments)

	name := e.ID.Renamed
	generics := s.projector.GenericParams(e.Generics)

	out.Println("sealed trait %s%s {", name, generics)
	out.Println("\tdef serialName: String")
	out.Println("}")
	out.Println("object %s {", name)

	for _, v := range e.Variants {
		out.Comments(1, "//", v.Comments)
		if e.Kind == model.UnitEnum {
			out.Println("\tcase object %s extends %s {", v.ID.Original, name)
		} else {
			if err := s.writeVariant(out, e, v); err != nil {
				return err
			}
			out.Println(" extends %s%s {", name, generics)
		}
		out.Println("\t\tval serialName: String = %q", v.ID.Renamed)
		out.Println("\t}")
	}

	out.Println("}")
	out.Println("")
	return out.Err()
}

func (s *Scala) writeVariant(out *typegen.Writer, e *model.EnumDef, v model.Variant) error {
	name := util.VariantIdentifier(v.ID.Original, false)
	generics := s.projector.GenericParams(e.Generics)

	switch v.Kind {
	case model.NoPayload:
		out.Printf("\tcase object %s", name)
	case model.SinglePayload:
		ty, err := s.projector.Project(v.Type, e.Generics)
		if err != nil {
			return err
		}
		out.Printf("\tcase class %s%s(%s: %s)", name, generics, e.ContentKey, ty)
	case model.InlineRecord:
		record := typegen.InlineRecordName(e, v) +
			s.projector.GenericParams(typegen.InlineRecordGenerics(e, v.Fields))
		out.Printf("\tcase class %s%s(%s: %s)", name, generics, e.ContentKey, record)
	}
	return nil
}
