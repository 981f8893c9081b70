package typegen

import (
	"github.com/teranos/shapeshare/errors"
	"github.com/teranos/shapeshare/model"
)

// Plan is the ordered list of definitions to emit.
type Plan struct {
	// Definitions in emission order: aliases, structs, then for each enum its
	// synthesized records followed by the enum, then consts.
	Definitions []model.Definition
	// Records are the structs synthesized for inline-record variants
	Records []*model.StructDef
}

// Hoist builds the emission plan for m. The model is not modified; synthesized
// records are new values that only the plan references.
func Hoist(m *model.Model) (*Plan, error) {
	plan := &Plan{}
	for _, a := range m.Aliases {
		plan.Definitions = append(plan.Definitions, a)
	}
	for _, s := range m.Structs {
		plan.Definitions = append(plan.Definitions, s)
	}
	for _, e := range m.Enums {
		for _, v := range e.Variants {
			if v.Kind != model.InlineRecord {
				continue
			}
			if e.Kind != model.TaggedUnion {
				return nil, errors.NewInvalidModelError("enum %s: inline record %s outside a tagged union", e.ID.Original, v.ID.Original)
			}
			record := &model.StructDef{
				ID:       model.NewID(InlineRecordName(e, v)),
				Fields:   v.Fields,
				Generics: InlineRecordGenerics(e, v.Fields),
				Comments: v.Comments,
			}
			plan.Records = append(plan.Records, record)
			plan.Definitions = append(plan.Definitions, record)
		}
		plan.Definitions = append(plan.Definitions, e)
	}
	for _, c := range m.Consts {
		plan.Definitions = append(plan.Definitions, c)
	}
	return plan, nil
}

// InlineRecordName is the name of the struct synthesized for an inline-record variant.
func InlineRecordName(e *model.EnumDef, v model.Variant) string {
	return e.ID.Original + v.ID.Original + "Inner"
}

// InlineRecordGenerics returns the enum generics referenced by fields,
// scanning field by field and keeping the first occurrence of each.
func InlineRecordGenerics(e *model.EnumDef, fields []model.FieldDef) []string {
	var out []string
	seen := make(map[string]bool)
	for _, f := range fields {
		for _, g := range e.Generics {
			if !seen[g] && model.ContainsType(f.Type, g) {
				seen[g] = true
				out = append(out, g)
			}
		}
	}
	return out
}
