package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/shapeshare/errors"
)

func field(name string, ty Type) FieldDef {
	return FieldDef{ID: NewID(name), Type: ty}
}

func TestValidateAcceptsWellFormedModel(t *testing.T) {
	m := &Model{
		ModuleName: "shapes",
		Aliases:    []*AliasDef{{ID: NewID("UserId"), Type: Prim(String)}},
		Structs: []*StructDef{{
			ID:       NewID("Page"),
			Generics: []string{"T"},
			Fields:   []FieldDef{field("items", List(Simple{Name: "T"}))},
		}},
		Enums: []*EnumDef{
			{
				Kind:     UnitEnum,
				ID:       NewID("Color"),
				Variants: []Variant{{ID: RenamedID("Red", "red")}},
			},
			{
				Kind:       TaggedUnion,
				ID:         NewID("State"),
				TagKey:     "type",
				ContentKey: "content",
				Variants: []Variant{
					{Kind: NoPayload, ID: NewID("Loading")},
					{Kind: SinglePayload, ID: NewID("Ready"), Type: Prim(U32)},
					{Kind: InlineRecord, ID: NewID("Failed"), Fields: []FieldDef{field("reason", Prim(String))}},
				},
			},
		},
	}
	require.NoError(t, m.Validate())
}

func TestValidateRejectsStructuralViolations(t *testing.T) {
	tests := []struct {
		name  string
		model *Model
		want  string
	}{
		{
			name: "duplicate generics",
			model: &Model{Structs: []*StructDef{{
				ID: NewID("Pair"), Generics: []string{"T", "T"},
			}}},
			want: "duplicate generic parameter T",
		},
		{
			name: "inline record in unit enum",
			model: &Model{Enums: []*EnumDef{{
				Kind: UnitEnum, ID: NewID("E"),
				Variants: []Variant{{Kind: InlineRecord, ID: NewID("V")}},
			}}},
			want: "inline record in a unit enum",
		},
		{
			name: "missing content key",
			model: &Model{Enums: []*EnumDef{{
				Kind: TaggedUnion, ID: NewID("E"),
				Variants: []Variant{{Kind: SinglePayload, ID: NewID("V"), Type: Prim(Bool)}},
			}}},
			want: "needs a content key",
		},
		{
			name: "single payload without type",
			model: &Model{Enums: []*EnumDef{{
				Kind: TaggedUnion, ID: NewID("E"), ContentKey: "content",
				Variants: []Variant{{Kind: SinglePayload, ID: NewID("V")}},
			}}},
			want: "missing payload type",
		},
		{
			name: "field without type",
			model: &Model{Structs: []*StructDef{{
				ID: NewID("S"), Fields: []FieldDef{{ID: NewID("f")}},
			}}},
			want: "S.f: missing type",
		},
		{
			name:  "empty identifier",
			model: &Model{Aliases: []*AliasDef{{Type: Prim(Bool)}}},
			want:  "alias with empty identifier",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.model.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsInvalidModelError(err))
			assert.Contains(t, errors.FlattenDetails(err)+err.Error(), tt.want)
		})
	}
}

func TestUsesTypeScansNestedTypes(t *testing.T) {
	unsigned := func(ty Type) bool {
		s, ok := ty.(Special)
		return ok && s.Kind.IsUnsigned()
	}

	m := &Model{Enums: []*EnumDef{{
		Kind: TaggedUnion, ID: NewID("E"), ContentKey: "content",
		Variants: []Variant{{
			Kind: InlineRecord, ID: NewID("V"),
			Fields: []FieldDef{field("counts", Map(Prim(String), List(Prim(U16))))},
		}},
	}}}
	assert.True(t, m.UsesType(unsigned))

	m.Enums[0].Variants[0].Fields[0].Type = Map(Prim(String), List(Prim(I16)))
	assert.False(t, m.UsesType(unsigned))
}

func TestDecoratorsHas(t *testing.T) {
	d := Decorators{LangKotlin: {"JvmInline"}}
	assert.True(t, d.Has(LangKotlin, "JvmInline"))
	assert.False(t, d.Has(LangScala, "JvmInline"))

	var empty Decorators
	assert.False(t, empty.Has(LangKotlin, "JvmInline"))
}
