package loader

import (
	"github.com/teranos/shapeshare/errors"
	"github.com/teranos/shapeshare/model"
)

// Document is the on-disk form of a model. Types are type expressions
// parsed by model.ParseType.
type Document struct {
	Module    string              `json:"module" yaml:"module" toml:"module"`
	MultiFile bool                `json:"multi_file" yaml:"multi_file" toml:"multi_file"`
	Imports   map[string][]string `json:"imports" yaml:"imports" toml:"imports"`
	Aliases   []AliasDoc          `json:"aliases" yaml:"aliases" toml:"aliases"`
	Structs   []StructDoc         `json:"structs" yaml:"structs" toml:"structs"`
	Enums     []EnumDoc           `json:"enums" yaml:"enums" toml:"enums"`
	Consts    []ConstDoc          `json:"consts" yaml:"consts" toml:"consts"`
}

// AliasDoc describes a type alias.
type AliasDoc struct {
	Name       string              `json:"name" yaml:"name" toml:"name"`
	Rename     string              `json:"rename" yaml:"rename" toml:"rename"`
	Type       string              `json:"type" yaml:"type" toml:"type"`
	Generics   []string            `json:"generics" yaml:"generics" toml:"generics"`
	Comments   []string            `json:"comments" yaml:"comments" toml:"comments"`
	Redacted   bool                `json:"redacted" yaml:"redacted" toml:"redacted"`
	Decorators map[string][]string `json:"decorators" yaml:"decorators" toml:"decorators"`
}

// StructDoc describes a struct.
type StructDoc struct {
	Name       string              `json:"name" yaml:"name" toml:"name"`
	Rename     string              `json:"rename" yaml:"rename" toml:"rename"`
	Generics   []string            `json:"generics" yaml:"generics" toml:"generics"`
	Comments   []string            `json:"comments" yaml:"comments" toml:"comments"`
	Redacted   bool                `json:"redacted" yaml:"redacted" toml:"redacted"`
	Decorators map[string][]string `json:"decorators" yaml:"decorators" toml:"decorators"`
	Fields     []FieldDoc          `json:"fields" yaml:"fields" toml:"fields"`
}

// FieldDoc describes a struct or inline-record field.
type FieldDoc struct {
	Name       string              `json:"name" yaml:"name" toml:"name"`
	Rename     string              `json:"rename" yaml:"rename" toml:"rename"`
	Type       string              `json:"type" yaml:"type" toml:"type"`
	Comments   []string            `json:"comments" yaml:"comments" toml:"comments"`
	Default    bool                `json:"default" yaml:"default" toml:"default"`
	Overrides  map[string]string   `json:"overrides" yaml:"overrides" toml:"overrides"`
	Decorators map[string][]string `json:"decorators" yaml:"decorators" toml:"decorators"`
}

// EnumDoc describes an enum. It is a tagged union when any variant carries
// a payload or content_key is set.
type EnumDoc struct {
	Name       string              `json:"name" yaml:"name" toml:"name"`
	Rename     string              `json:"rename" yaml:"rename" toml:"rename"`
	Generics   []string            `json:"generics" yaml:"generics" toml:"generics"`
	Comments   []string            `json:"comments" yaml:"comments" toml:"comments"`
	Decorators map[string][]string `json:"decorators" yaml:"decorators" toml:"decorators"`
	TagKey     string              `json:"tag_key" yaml:"tag_key" toml:"tag_key"`
	ContentKey string              `json:"content_key" yaml:"content_key" toml:"content_key"`
	Variants   []VariantDoc        `json:"variants" yaml:"variants" toml:"variants"`
}

// VariantDoc describes one enum variant. Type makes it a single payload,
// Fields an inline record; neither means no payload.
type VariantDoc struct {
	Name     string     `json:"name" yaml:"name" toml:"name"`
	Rename   string     `json:"rename" yaml:"rename" toml:"rename"`
	Comments []string   `json:"comments" yaml:"comments" toml:"comments"`
	Type     string     `json:"type" yaml:"type" toml:"type"`
	Fields   []FieldDoc `json:"fields" yaml:"fields" toml:"fields"`
}

// ConstDoc describes a constant.
type ConstDoc struct {
	Name     string   `json:"name" yaml:"name" toml:"name"`
	Type     string   `json:"type" yaml:"type" toml:"type"`
	Value    string   `json:"value" yaml:"value" toml:"value"`
	Comments []string `json:"comments" yaml:"comments" toml:"comments"`
}

const (
	defaultTagKey     = "type"
	defaultContentKey = "content"
)

// Model converts the document and validates the result.
func (d *Document) Model() (*model.Model, error) {
	m := &model.Model{
		ModuleName: d.Module,
		MultiFile:  d.MultiFile,
		Imports:    d.Imports,
	}

	for _, a := range d.Aliases {
		ty, err := parseType(a.Name, a.Type)
		if err != nil {
			return nil, err
		}
		m.Aliases = append(m.Aliases, &model.AliasDef{
			ID:         id(a.Name, a.Rename),
			Type:       ty,
			Generics:   a.Generics,
			Comments:   a.Comments,
			Redacted:   a.Redacted,
			Decorators: decorators(a.Decorators),
		})
	}

	for _, s := range d.Structs {
		fields, err := convertFields(s.Name, s.Fields)
		if err != nil {
			return nil, err
		}
		m.Structs = append(m.Structs, &model.StructDef{
			ID:         id(s.Name, s.Rename),
			Fields:     fields,
			Generics:   s.Generics,
			Comments:   s.Comments,
			Redacted:   s.Redacted,
			Decorators: decorators(s.Decorators),
		})
	}

	for _, e := range d.Enums {
		enum, err := convertEnum(e)
		if err != nil {
			return nil, err
		}
		m.Enums = append(m.Enums, enum)
	}

	for _, c := range d.Consts {
		ty, err := parseType(c.Name, c.Type)
		if err != nil {
			return nil, err
		}
		m.Consts = append(m.Consts, &model.ConstDef{
			ID:       model.NewID(c.Name),
			Type:     ty,
			Value:    c.Value,
			Comments: c.Comments,
		})
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func convertEnum(e EnumDoc) (*model.EnumDef, error) {
	enum := &model.EnumDef{
		Kind:       model.UnitEnum,
		ID:         id(e.Name, e.Rename),
		Generics:   e.Generics,
		Comments:   e.Comments,
		Decorators: decorators(e.Decorators),
		TagKey:     e.TagKey,
		ContentKey: e.ContentKey,
	}
	if e.ContentKey != "" {
		enum.Kind = model.TaggedUnion
	}

	for _, v := range e.Variants {
		variant := model.Variant{
			Kind:     model.NoPayload,
			ID:       id(v.Name, v.Rename),
			Comments: v.Comments,
		}
		owner := e.Name + "." + v.Name
		switch {
		case v.Type != "" && len(v.Fields) > 0:
			return nil, errors.NewInvalidModelError("variant %s: both type and fields given", owner)
		case v.Type != "":
			ty, err := parseType(owner, v.Type)
			if err != nil {
				return nil, err
			}
			variant.Kind, variant.Type = model.SinglePayload, ty
			enum.Kind = model.TaggedUnion
		case len(v.Fields) > 0:
			fields, err := convertFields(owner, v.Fields)
			if err != nil {
				return nil, err
			}
			variant.Kind, variant.Fields = model.InlineRecord, fields
			enum.Kind = model.TaggedUnion
		}
		enum.Variants = append(enum.Variants, variant)
	}

	if enum.Kind == model.TaggedUnion {
		if enum.TagKey == "" {
			enum.TagKey = defaultTagKey
		}
		if enum.ContentKey == "" {
			enum.ContentKey = defaultContentKey
		}
	}
	return enum, nil
}

func convertFields(owner string, docs []FieldDoc) ([]model.FieldDef, error) {
	fields := make([]model.FieldDef, 0, len(docs))
	for _, f := range docs {
		ty, err := parseType(owner+"."+f.Name, f.Type)
		if err != nil {
			return nil, err
		}
		field := model.FieldDef{
			ID:         id(f.Name, f.Rename),
			Type:       ty,
			Comments:   f.Comments,
			HasDefault: f.Default,
			Decorators: decorators(f.Decorators),
		}
		if len(f.Overrides) > 0 {
			field.TypeOverrides = make(map[model.Lang]string, len(f.Overrides))
			for lang, override := range f.Overrides {
				field.TypeOverrides[model.Lang(lang)] = override
			}
		}
		fields = append(fields, field)
	}
	return fields, nil
}

func parseType(owner, expr string) (model.Type, error) {
	if expr == "" {
		return nil, errors.NewInvalidModelError("%s: missing type", owner)
	}
	ty, err := model.ParseType(expr)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", owner)
	}
	return ty, nil
}

func id(name, rename string) model.Id {
	if rename == "" {
		return model.NewID(name)
	}
	return model.RenamedID(name, rename)
}

func decorators(in map[string][]string) model.Decorators {
	if len(in) == 0 {
		return nil
	}
	out := make(model.Decorators, len(in))
	for lang, flags := range in {
		out[model.Lang(lang)] = flags
	}
	return out
}
