// Package model is the language-neutral description of shared data shapes:
// structs, enums (plain and tagged unions), type aliases and constants.
//
// A Model is produced once by a loader, never mutated afterwards, and handed
// to one typegen.Generator per output language.
package model

import (
	"fmt"

	"github.com/teranos/shapeshare/errors"
)

// Model is one module's worth of definitions.
type Model struct {
	ModuleName string
	// MultiFile is set when the module is one of several generated files
	MultiFile bool
	// Imports maps a module to the type names it provides
	Imports map[string][]string
	Aliases []*AliasDef
	Structs []*StructDef
	Enums   []*EnumDef
	Consts  []*ConstDef
}

// UsesType reports whether pred holds for any type referenced by the model,
// nested types included.
func (m *Model) UsesType(pred func(Type) bool) bool {
	found := false
	visit := func(t Type) {
		Walk(t, func(n Type) {
			if !found && pred(n) {
				found = true
			}
		})
	}
	visitFields := func(fields []FieldDef) {
		for _, f := range fields {
			visit(f.Type)
		}
	}
	for _, a := range m.Aliases {
		visit(a.Type)
	}
	for _, s := range m.Structs {
		visitFields(s.Fields)
	}
	for _, e := range m.Enums {
		for _, v := range e.Variants {
			visit(v.Type)
			visitFields(v.Fields)
		}
	}
	for _, c := range m.Consts {
		visit(c.Type)
	}
	return found
}

// Validate checks structural invariants of the model. It does not check that
// referenced types exist or that names are valid in any output language.
func (m *Model) Validate() error {
	var errs []error
	for _, a := range m.Aliases {
		errs = append(errs, checkID("alias", a.ID)...)
		errs = append(errs, checkGenerics(a.ID.Original, a.Generics)...)
		if a.Type == nil {
			errs = append(errs, errors.NewInvalidModelError("alias %s: missing target type", a.ID.Original))
		}
	}
	for _, s := range m.Structs {
		errs = append(errs, checkID("struct", s.ID)...)
		errs = append(errs, checkGenerics(s.ID.Original, s.Generics)...)
		errs = append(errs, checkFields(s.ID.Original, s.Fields)...)
	}
	for _, e := range m.Enums {
		errs = append(errs, checkEnum(e)...)
	}
	for _, c := range m.Consts {
		errs = append(errs, checkID("const", c.ID)...)
	}
	return combine(errs)
}

func checkEnum(e *EnumDef) []error {
	var errs []error
	name := e.ID.Original
	errs = append(errs, checkID("enum", e.ID)...)
	errs = append(errs, checkGenerics(name, e.Generics)...)

	hasPayload := false
	for _, v := range e.Variants {
		where := fmt.Sprintf("%s.%s", name, v.ID.Original)
		errs = append(errs, checkID("variant", v.ID)...)
		switch v.Kind {
		case NoPayload:
			if v.Type != nil || len(v.Fields) > 0 {
				errs = append(errs, errors.NewInvalidModelError("variant %s: payload on a variant without payload", where))
			}
		case SinglePayload:
			hasPayload = true
			if v.Type == nil {
				errs = append(errs, errors.NewInvalidModelError("variant %s: missing payload type", where))
			}
			if len(v.Fields) > 0 {
				errs = append(errs, errors.NewInvalidModelError("variant %s: single payload with record fields", where))
			}
		case InlineRecord:
			hasPayload = true
			if v.Type != nil {
				errs = append(errs, errors.NewInvalidModelError("variant %s: inline record with payload type", where))
			}
			errs = append(errs, checkFields(where, v.Fields)...)
		}
		if e.Kind == UnitEnum && v.Kind != NoPayload {
			errs = append(errs, errors.NewInvalidModelError("variant %s: %s in a unit enum", where, v.Kind))
		}
	}
	if e.Kind == TaggedUnion && hasPayload && e.ContentKey == "" {
		errs = append(errs, errors.NewInvalidModelError("enum %s: tagged union with payloads needs a content key", name))
	}
	return errs
}

func checkID(kind string, id Id) []error {
	if id.Original == "" || id.Renamed == "" {
		return []error{errors.NewInvalidModelError("%s with empty identifier %+v", kind, id)}
	}
	return nil
}

func checkGenerics(owner string, generics []string) []error {
	var errs []error
	seen := make(map[string]bool, len(generics))
	for _, g := range generics {
		if seen[g] {
			errs = append(errs, errors.NewInvalidModelError("%s: duplicate generic parameter %s", owner, g))
		}
		seen[g] = true
	}
	return errs
}

func checkFields(owner string, fields []FieldDef) []error {
	var errs []error
	for _, f := range fields {
		errs = append(errs, checkID("field of "+owner, f.ID)...)
		if f.Type == nil {
			errs = append(errs, errors.NewInvalidModelError("%s.%s: missing type", owner, f.ID.Original))
		}
	}
	return errs
}

func combine(errs []error) error {
	var out error
	for _, err := range errs {
		if out == nil {
			out = err
			continue
		}
		out = errors.WithSecondaryError(out, err)
	}
	return out
}
