package typegen

import (
	"github.com/teranos/shapeshare/errors"
	"github.com/teranos/shapeshare/model"
)

// SpecialTypes is a backend's type table for built-in kinds.
// Adding a kind to model means adding a method here, which every backend
// must then implement.
type SpecialTypes interface {
	Unit() string
	Bool() string
	// Str covers both String and Char
	Str() string
	Int8() string
	Int16() string
	// Int32 covers I32 and ISize
	Int32() string
	// Int64 covers I64 and I54
	Int64() string
	Uint8() string
	Uint16() string
	// Uint32 covers U32 and USize
	Uint32() string
	// Uint64 covers U64 and U53
	Uint64() string
	Float32() string
	Float64() string
	// List covers Vec and Slice
	List(elem string) string
	FixedArray(elem string, length int) string
	Map(key, value string) string
	Optional(elem string) string
	// DateTime returns an error when the language has no representation
	DateTime() (string, error)
	// GenericArgs renders a type argument list, e.g. "<A, B>" or "[A, B]"
	GenericArgs(args []string) string
}

// Projector converts model types into target syntax.
type Projector struct {
	lang  string
	types SpecialTypes
	cfg   Config
}

// NewProjector binds a type table to a backend configuration.
func NewProjector(lang string, types SpecialTypes, cfg Config) *Projector {
	return &Projector{lang: lang, types: types, cfg: cfg.Clone()}
}

// Project renders t. Names in scope are generic parameters and are emitted
// unchanged; other names go through the rename table, then the prefix.
func (p *Projector) Project(t model.Type, scope []string) (string, error) {
	switch v := t.(type) {
	case model.Simple:
		return p.resolve(v.Name, scope), nil
	case model.Generic:
		args, err := p.projectAll(v.Params, scope)
		if err != nil {
			return "", err
		}
		return p.resolve(v.Name, scope) + p.types.GenericArgs(args), nil
	case model.Special:
		return p.projectSpecial(v, scope)
	case nil:
		return "", errors.AssertionFailedf("%s: project nil type", p.lang)
	default:
		return "", errors.AssertionFailedf("%s: unknown type node %T", p.lang, t)
	}
}

// GenericParams renders a declaration's generic parameter list, or "" when empty.
func (p *Projector) GenericParams(generics []string) string {
	if len(generics) == 0 {
		return ""
	}
	return p.types.GenericArgs(generics)
}

// TypeName renders the declared name of a user type (prefix included).
func (p *Projector) TypeName(name string) string {
	return p.cfg.Prefix + name
}

func (p *Projector) resolve(name string, scope []string) string {
	for _, g := range scope {
		if g == name {
			return name
		}
	}
	if mapped, ok := p.cfg.TypeMappings[name]; ok {
		return mapped
	}
	return p.cfg.Prefix + name
}

func (p *Projector) projectAll(types []model.Type, scope []string) ([]string, error) {
	out := make([]string, len(types))
	for i, t := range types {
		s, err := p.Project(t, scope)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

func (p *Projector) projectSpecial(s model.Special, scope []string) (string, error) {
	switch s.Kind {
	case model.Unit:
		return p.types.Unit(), nil
	case model.Bool:
		return p.types.Bool(), nil
	case model.String, model.Char:
		return p.types.Str(), nil
	case model.I8:
		return p.types.Int8(), nil
	case model.I16:
		return p.types.Int16(), nil
	case model.I32, model.ISize:
		return p.types.Int32(), nil
	case model.I64, model.I54:
		return p.types.Int64(), nil
	case model.U8:
		return p.types.Uint8(), nil
	case model.U16:
		return p.types.Uint16(), nil
	case model.U32, model.USize:
		return p.types.Uint32(), nil
	case model.U64, model.U53:
		return p.types.Uint64(), nil
	case model.F32:
		return p.types.Float32(), nil
	case model.F64:
		return p.types.Float64(), nil
	case model.DateTime:
		return p.types.DateTime()
	}

	args, err := p.projectAll(s.Params, scope)
	if err != nil {
		return "", err
	}
	want := 1
	if s.Kind == model.HashMap {
		want = 2
	}
	if len(args) != want {
		return "", errors.NewInvalidModelError("%s takes %d type arguments, got %d", s.Kind, want, len(args))
	}

	switch s.Kind {
	case model.Vec, model.Slice:
		return p.types.List(args[0]), nil
	case model.Array:
		return p.types.FixedArray(args[0], s.Length), nil
	case model.HashMap:
		return p.types.Map(args[0], args[1]), nil
	case model.Option:
		return p.types.Optional(args[0]), nil
	}
	return "", errors.AssertionFailedf("%s: unhandled special kind %s", p.lang, s.Kind)
}
