package typegen

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/shapeshare/errors"
	"github.com/teranos/shapeshare/model"
)

func unionModel() *model.Model {
	return &model.Model{
		ModuleName: "shapes",
		Aliases:    []*model.AliasDef{{ID: model.NewID("UserId"), Type: model.Prim(model.String)}},
		Structs:    []*model.StructDef{{ID: model.NewID("User")}},
		Enums: []*model.EnumDef{{
			Kind:       model.TaggedUnion,
			ID:         model.NewID("Event"),
			Generics:   []string{"T", "U", "V"},
			ContentKey: "content",
			Variants: []model.Variant{
				{Kind: model.NoPayload, ID: model.NewID("Ping")},
				{
					Kind:     model.InlineRecord,
					ID:       model.NewID("Moved"),
					Comments: []string{"Something moved"},
					Fields: []model.FieldDef{
						{ID: model.NewID("to"), Type: model.List(model.Simple{Name: "V"})},
						{ID: model.NewID("from"), Type: model.Optional(model.Simple{Name: "T"})},
						{ID: model.NewID("again"), Type: model.Simple{Name: "V"}},
					},
				},
				{
					Kind:   model.InlineRecord,
					ID:     model.NewID("Plain"),
					Fields: []model.FieldDef{{ID: model.NewID("n"), Type: model.Prim(model.U32)}},
				},
			},
		}},
		Consts: []*model.ConstDef{{ID: model.NewID("MAX"), Type: model.Prim(model.U32), Value: "10"}},
	}
}

func names(defs []model.Definition) []string {
	out := make([]string, len(defs))
	for i, d := range defs {
		out[i] = d.DefinitionID().Original
	}
	return out
}

func TestHoistOrder(t *testing.T) {
	plan, err := Hoist(unionModel())
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"UserId", "User", "EventMovedInner", "EventPlainInner", "Event", "MAX"},
		names(plan.Definitions),
	)
	require.Len(t, plan.Records, 2)
}

func TestHoistReducesGenerics(t *testing.T) {
	plan, err := Hoist(unionModel())
	require.NoError(t, err)

	moved, plain := plan.Records[0], plan.Records[1]
	// field-major scan: "to" references V first, then "from" references T
	assert.Equal(t, []string{"V", "T"}, moved.Generics)
	assert.Empty(t, plain.Generics)
	assert.Equal(t, []string{"Something moved"}, moved.Comments)
	assert.Len(t, moved.Fields, 3)
}

func TestHoistSingleGenericOnlyInRecord(t *testing.T) {
	e := &model.EnumDef{
		Kind: model.TaggedUnion, ID: model.NewID("Result"), Generics: []string{"T"}, ContentKey: "content",
		Variants: []model.Variant{
			{Kind: model.NoPayload, ID: model.NewID("Empty")},
			{Kind: model.InlineRecord, ID: model.NewID("Full"), Fields: []model.FieldDef{
				{ID: model.NewID("value"), Type: model.Simple{Name: "T"}},
			}},
		},
	}
	plan, err := Hoist(&model.Model{Enums: []*model.EnumDef{e}})
	require.NoError(t, err)
	require.Len(t, plan.Records, 1)
	assert.Equal(t, []string{"T"}, plan.Records[0].Generics)
	assert.Equal(t, "ResultFullInner", plan.Records[0].ID.Original)
}

func TestHoistIsDeterministic(t *testing.T) {
	m := unionModel()
	first, err := Hoist(m)
	require.NoError(t, err)
	second, err := Hoist(m)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("hoisting twice differs (-first +second):\n%s", diff)
	}
}

func TestHoistDoesNotMutateModel(t *testing.T) {
	m := unionModel()
	before := cmp.Diff(unionModel(), m)
	_, err := Hoist(m)
	require.NoError(t, err)

	assert.Empty(t, before)
	assert.Empty(t, cmp.Diff(unionModel(), m))
	assert.Len(t, m.Structs, 1)
}

func TestHoistRejectsInlineRecordInUnitEnum(t *testing.T) {
	m := &model.Model{Enums: []*model.EnumDef{{
		Kind: model.UnitEnum, ID: model.NewID("E"),
		Variants: []model.Variant{{Kind: model.InlineRecord, ID: model.NewID("V")}},
	}}}
	_, err := Hoist(m)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidModelError(err))
}

func TestInlineRecordName(t *testing.T) {
	e := &model.EnumDef{ID: model.RenamedID("Event", "event")}
	v := model.Variant{ID: model.RenamedID("Moved", "moved")}
	assert.Equal(t, "EventMovedInner", InlineRecordName(e, v))
}
