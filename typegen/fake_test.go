package typegen

import (
	"fmt"
	"io"
	"strings"

	"github.com/teranos/shapeshare/errors"
	"github.com/teranos/shapeshare/model"
)

// =============================================================================
// Test backend
// =============================================================================

type angleTypes struct{}

func (angleTypes) Unit() string                  { return "Unit" }
func (angleTypes) Bool() string                  { return "Bool" }
func (angleTypes) Str() string                   { return "Str" }
func (angleTypes) Int8() string                  { return "I8" }
func (angleTypes) Int16() string                 { return "I16" }
func (angleTypes) Int32() string                 { return "I32" }
func (angleTypes) Int64() string                 { return "I64" }
func (angleTypes) Uint8() string                 { return "U8" }
func (angleTypes) Uint16() string                { return "U16" }
func (angleTypes) Uint32() string                { return "U32" }
func (angleTypes) Uint64() string                { return "U64" }
func (angleTypes) Float32() string               { return "F32" }
func (angleTypes) Float64() string               { return "F64" }
func (angleTypes) List(elem string) string       { return "List<" + elem + ">" }
func (angleTypes) Map(k, v string) string        { return "Map<" + k + ", " + v + ">" }
func (angleTypes) Optional(elem string) string   { return elem + "?" }
func (angleTypes) GenericArgs(a []string) string { return "<" + strings.Join(a, ", ") + ">" }
func (angleTypes) FixedArray(elem string, n int) string {
	return fmt.Sprintf("Array%d<%s>", n, elem)
}
func (angleTypes) DateTime() (string, error) {
	return "", errors.NewUnsupportedTypeError("test", "DateTime")
}

// lineLang writes one line per definition: "<kind> <name> = <projection>".
type lineLang struct {
	cfg       Config
	projector *Projector
	ignored   []string
}

func newLineLang(cfg Config) *lineLang {
	return &lineLang{cfg: cfg, projector: NewProjector("test", angleTypes{}, cfg)}
}

func (l *lineLang) Name() string                    { return "test" }
func (l *lineLang) FileExtension() string           { return "txt" }
func (l *lineLang) Config() Config                  { return l.cfg.Clone() }
func (l *lineLang) Projector() *Projector           { return l.projector }
func (l *lineLang) IgnoredReferenceTypes() []string { return l.ignored }

func (l *lineLang) BeginFile(w io.Writer, m *model.Model) error {
	_, err := fmt.Fprintf(w, "begin %s\n", m.ModuleName)
	return err
}

func (l *lineLang) EndFile(w io.Writer) error {
	_, err := io.WriteString(w, "end\n")
	return err
}

func (l *lineLang) WriteTypeAlias(w io.Writer, a *model.AliasDef) error {
	ty, err := l.projector.Project(a.Type, a.Generics)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "alias %s = %s\n", a.ID.Original, ty)
	return err
}

func (l *lineLang) WriteStruct(w io.Writer, s *model.StructDef) error {
	out := NewWriter(w)
	out.Printf("struct %s%s {", s.ID.Original, l.projector.GenericParams(s.Generics))
	for _, f := range s.Fields {
		ty, err := FieldType(l.projector, model.LangKotlin, f, s.Generics)
		if err != nil {
			return err
		}
		out.Printf(" %s: %s;", f.ID.Renamed, ty)
	}
	out.Println(" }")
	return out.Err()
}

func (l *lineLang) WriteEnum(w io.Writer, e *model.EnumDef) error {
	_, err := fmt.Fprintf(w, "enum %s (%d)\n", e.ID.Original, len(e.Variants))
	return err
}

func (l *lineLang) WriteConst(w io.Writer, c *model.ConstDef) error {
	return errors.NewNotImplementedError("test", "constants")
}

func (l *lineLang) WriteImports(w io.Writer, imports map[string][]string) error {
	for _, module := range SortedKeys(imports) {
		for _, t := range imports[module] {
			if _, err := fmt.Fprintf(w, "import %s.%s\n", module, t); err != nil {
				return err
			}
		}
	}
	return nil
}

// sectionLang wraps lineLang with a Layout that boxes aliases.
type sectionLang struct {
	*lineLang
}

func (l sectionLang) Sections(m *model.Model, plan *Plan) []Section {
	var aliases, rest []model.Definition
	for _, d := range plan.Definitions {
		if _, ok := d.(*model.AliasDef); ok {
			aliases = append(aliases, d)
		} else {
			rest = append(rest, d)
		}
	}
	return []Section{
		{Open: "[aliases\n", Close: "]\n", Items: aliases},
		{Items: rest},
	}
}
