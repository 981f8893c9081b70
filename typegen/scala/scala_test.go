package scala

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/teranos/shapeshare/errors"
	"github.com/teranos/shapeshare/model"
	"github.com/teranos/shapeshare/typegen"
)

// =============================================================================
// Test helpers
// =============================================================================

func newScala(t *testing.T, cfg typegen.Config) *Scala {
	t.Helper()
	if cfg.Namespace == "" {
		cfg.Namespace = "com.example.shapes"
	}
	s, err := New(cfg)
	require.NoError(t, err)
	return s
}

func render(t *testing.T, fn func(w *bytes.Buffer) error) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, fn(&buf))
	return buf.String()
}

func generate(t *testing.T, s *Scala, m *model.Model, policy typegen.Policy) (string, *typegen.Report) {
	t.Helper()
	var buf bytes.Buffer
	report, err := typegen.NewGenerator(s, typegen.WithPolicy(policy), typegen.WithLogger(zap.NewNop().Sugar())).
		Generate(context.Background(), m, &buf)
	require.NoError(t, err)
	return buf.String(), report
}

func field(name string, ty model.Type) model.FieldDef {
	return model.FieldDef{ID: model.NewID(name), Type: ty}
}

// =============================================================================
// Construction
// =============================================================================

func TestNewRequiresPackage(t *testing.T) {
	_, err := New(typegen.Config{})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidConfigError(err))
	assert.Contains(t, errors.FlattenHints(err), "scala.package")

	_, err = New(typegen.Config{Namespace: "com.1bad"})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidConfigError(err))
}

func TestPrefixIgnored(t *testing.T) {
	s := newScala(t, typegen.Config{Prefix: "Px"})
	got, err := s.Projector().Project(model.Simple{Name: "User"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "User", got)
	assert.Empty(t, s.Config().Prefix)
}

// =============================================================================
// Definitions
// =============================================================================

func TestWriteTypeAlias(t *testing.T) {
	s := newScala(t, typegen.Config{})
	out := render(t, func(w *bytes.Buffer) error {
		return s.WriteTypeAlias(w, &model.AliasDef{ID: model.NewID("UserId"), Type: model.Prim(model.String)})
	})
	assert.Equal(t, "type UserId = String\n\n", out)

	out = render(t, func(w *bytes.Buffer) error {
		return s.WriteTypeAlias(w, &model.AliasDef{
			ID:       model.NewID("Index"),
			Generics: []string{"K"},
			Comments: []string{"By key"},
			Type:     model.Map(model.Simple{Name: "K"}, model.List(model.Prim(model.U64))),
		})
	})
	assert.Equal(t, "// By key\ntype Index[K] = Map[K, Vector[ULong]]\n\n", out)
}

func TestWriteStruct(t *testing.T) {
	s := newScala(t, typegen.Config{TypeMappings: map[string]string{"Uuid": "java.util.UUID"}})
	st := &model.StructDef{
		ID:       model.NewID("Profile"),
		Generics: []string{"T"},
		Comments: []string{"A user profile"},
		Fields: []model.FieldDef{
			{ID: model.RenamedID("userId", "user-id"), Type: model.Simple{Name: "Uuid"}, Comments: []string{"Owner"}},
			field("nickname", model.Optional(model.Prim(model.String))),
			{ID: model.NewID("extra"), Type: model.Simple{Name: "T"}, HasDefault: true},
			{ID: model.NewID("limit"), Type: model.Optional(model.Prim(model.I32)), HasDefault: true},
			{
				ID:            model.NewID("at"),
				Type:          model.Prim(model.DateTime),
				TypeOverrides: map[model.Lang]string{model.LangScala: "java.time.Instant"},
			},
		},
	}

	out := render(t, func(w *bytes.Buffer) error { return s.WriteStruct(w, st) })
	assert.Equal(t, "// A user profile\n"+
		"case class Profile[T] (\n"+
		"\t// Owner\n"+
		"\tuserid: java.util.UUID,\n"+
		"\tnickname: Option[String] = None,\n"+
		"\textra: T = _,\n"+
		"\tlimit: Option[Int] = None,\n"+
		"\tat: java.time.Instant\n"+
		")\n\n", out)
	assert.NotContains(t, out, "SerialName")
}

func TestWriteStructEmptyAndRedacted(t *testing.T) {
	s := newScala(t, typegen.Config{})

	out := render(t, func(w *bytes.Buffer) error {
		return s.WriteStruct(w, &model.StructDef{ID: model.NewID("Marker")})
	})
	assert.Equal(t, "class Marker extends Serializable\n\n", out)

	out = render(t, func(w *bytes.Buffer) error {
		return s.WriteStruct(w, &model.StructDef{ID: model.NewID("Sealed"), Redacted: true})
	})
	assert.Equal(t, "class Sealed extends Serializable {\n"+
		"\toverride def toString: String = \"Sealed\"\n"+
		"}\n\n", out)

	out = render(t, func(w *bytes.Buffer) error {
		return s.WriteStruct(w, &model.StructDef{
			ID:       model.NewID("Secret"),
			Redacted: true,
			Fields:   []model.FieldDef{field("value", model.Prim(model.String))},
		})
	})
	assert.Equal(t, "case class Secret (\n"+
		"\tvalue: String\n"+
		") {\n"+
		"\toverride def toString: String = \"Secret\"\n"+
		"}\n\n", out)
}

func TestWriteUnitEnum(t *testing.T) {
	s := newScala(t, typegen.Config{})
	e := &model.EnumDef{
		Kind:     model.UnitEnum,
		ID:       model.NewID("Color"),
		Comments: []string{"Palette"},
		Variants: []model.Variant{
			{ID: model.RenamedID("Red", "red")},
			{ID: model.RenamedID("Blue", "blue"), Comments: []string{"Cold"}},
		},
	}

	out := render(t, func(w *bytes.Buffer) error { return s.WriteEnum(w, e) })
	assert.Equal(t, "// Palette\n"+
		"sealed trait Color {\n"+
		"\tdef serialName: String\n"+
		"}\n"+
		"object Color {\n"+
		"\tcase object Red extends Color {\n"+
		"\t\tval serialName: String = \"red\"\n"+
		"\t}\n"+
		"\t// Cold\n"+
		"\tcase object Blue extends Color {\n"+
		"\t\tval serialName: String = \"blue\"\n"+
		"\t}\n"+
		"}\n\n", out)
}

func TestWriteTaggedUnion(t *testing.T) {
	s := newScala(t, typegen.Config{})
	e := &model.EnumDef{
		Kind:       model.TaggedUnion,
		ID:         model.NewID("State"),
		ContentKey: "content",
		Variants: []model.Variant{
			{Kind: model.NoPayload, ID: model.NewID("Loading")},
			{Kind: model.SinglePayload, ID: model.NewID("Ready"), Type: model.Prim(model.U32)},
		},
	}

	out := render(t, func(w *bytes.Buffer) error { return s.WriteEnum(w, e) })
	assert.Equal(t, "sealed trait State {\n"+
		"\tdef serialName: String\n"+
		"}\n"+
		"object State {\n"+
		"\tcase object Loading extends State {\n"+
		"\t\tval serialName: String = \"Loading\"\n"+
		"\t}\n"+
		"\tcase class Ready(content: UInt) extends State {\n"+
		"\t\tval serialName: String = \"Ready\"\n"+
		"\t}\n"+
		"}\n\n", out)
}

func TestWriteTaggedUnionGenericInlineRecord(t *testing.T) {
	s := newScala(t, typegen.Config{})
	e := &model.EnumDef{
		Kind:       model.TaggedUnion,
		ID:         model.NewID("Result"),
		Generics:   []string{"T", "E"},
		ContentKey: "data",
		Variants: []model.Variant{
			{Kind: model.InlineRecord, ID: model.NewID("Ok"), Fields: []model.FieldDef{field("value", model.Simple{Name: "T"})}},
			{Kind: model.InlineRecord, ID: model.NewID("Empty"), Fields: []model.FieldDef{field("at", model.Prim(model.I64))}},
			{Kind: model.SinglePayload, ID: model.NewID("404"), Type: model.Simple{Name: "E"}},
		},
	}

	out := render(t, func(w *bytes.Buffer) error { return s.WriteEnum(w, e) })
	assert.Equal(t, "sealed trait Result[T, E] {\n"+
		"\tdef serialName: String\n"+
		"}\n"+
		"object Result {\n"+
		"\tcase class Ok[T, E](data: ResultOkInner[T]) extends Result[T, E] {\n"+
		"\t\tval serialName: String = \"Ok\"\n"+
		"\t}\n"+
		"\tcase class Empty[T, E](data: ResultEmptyInner) extends Result[T, E] {\n"+
		"\t\tval serialName: String = \"Empty\"\n"+
		"\t}\n"+
		"\tcase class _404[T, E](data: E) extends Result[T, E] {\n"+
		"\t\tval serialName: String = \"404\"\n"+
		"\t}\n"+
		"}\n\n", out)
}

func TestNotImplementedCapabilities(t *testing.T) {
	s := newScala(t, typegen.Config{})
	assert.True(t, errors.IsNotImplementedError(s.WriteImports(&bytes.Buffer{}, map[string][]string{"a": {"B"}})))
	assert.True(t, errors.IsNotImplementedError(s.WriteConst(&bytes.Buffer{}, &model.ConstDef{ID: model.NewID("X")})))
}

func TestDateTimeUnsupported(t *testing.T) {
	s := newScala(t, typegen.Config{})
	err := s.WriteTypeAlias(&bytes.Buffer{}, &model.AliasDef{ID: model.NewID("When"), Type: model.Prim(model.DateTime)})
	require.Error(t, err)
	assert.True(t, errors.IsUnsupportedTypeError(err))
}

// =============================================================================
// File layout
// =============================================================================

func TestGenerateFileLayout(t *testing.T) {
	s := newScala(t, typegen.Config{Version: "0.9.0"})
	m := &model.Model{
		ModuleName: "shapes",
		Aliases:    []*model.AliasDef{{ID: model.NewID("UserId"), Type: model.Prim(model.String)}},
		Structs: []*model.StructDef{{
			ID:     model.NewID("Counter"),
			Fields: []model.FieldDef{field("hits", model.Map(model.Prim(model.String), model.List(model.Prim(model.U16))))},
		}},
		Enums: []*model.EnumDef{{
			Kind:       model.TaggedUnion,
			ID:         model.NewID("Shape"),
			ContentKey: "content",
			Variants: []model.Variant{
				{Kind: model.InlineRecord, ID: model.NewID("Square"), Fields: []model.FieldDef{field("side", model.Prim(model.F32))}},
			},
		}},
		Consts: []*model.ConstDef{{ID: model.NewID("MAX"), Type: model.Prim(model.U8), Value: "3"}},
	}

	out, report := generate(t, s, m, typegen.PolicyWarn)
	assert.Equal(t, "/**\n"+
		" * Generated by shapeshare 0.9.0\n"+
		" */\n"+
		"package com.example\n\n"+
		"package object shapes {\n\n"+
		"type UByte = Byte\n"+
		"type UShort = Short\n"+
		"type UInt = Int\n"+
		"type ULong = Int\n\n"+
		"type UserId = String\n\n"+
		"}\n"+
		"package shapes {\n\n"+
		"case class Counter (\n"+
		"\thits: Map[String, Vector[UShort]]\n"+
		")\n\n"+
		"case class ShapeSquareInner (\n"+
		"\tside: Float\n"+
		")\n\n"+
		"sealed trait Shape {\n"+
		"\tdef serialName: String\n"+
		"}\n"+
		"object Shape {\n"+
		"\tcase class Square(content: ShapeSquareInner) extends Shape {\n"+
		"\t\tval serialName: String = \"Square\"\n"+
		"\t}\n"+
		"}\n\n"+
		"}\n", out)
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, "MAX", report.Skipped[0].Definition)
}

func TestUnsignedAliasesOnlyWhenUsed(t *testing.T) {
	s := newScala(t, typegen.Config{NoVersionHeader: true})
	m := &model.Model{
		Structs: []*model.StructDef{{ID: model.NewID("Point"), Fields: []model.FieldDef{field("x", model.Prim(model.I32))}}},
		Consts:  []*model.ConstDef{{ID: model.NewID("MAX"), Type: model.Prim(model.U8), Value: "3"}},
	}

	out, _ := generate(t, s, m, typegen.PolicySkip)
	assert.Equal(t, "package com.example\n\n"+
		"package shapes {\n\n"+
		"case class Point (\n"+
		"\tx: Int\n"+
		")\n\n"+
		"}\n", out)
	assert.NotContains(t, out, "package object")

	// nested inside an enum payload container
	m.Enums = []*model.EnumDef{{
		Kind: model.TaggedUnion, ID: model.NewID("E"), ContentKey: "content",
		Variants: []model.Variant{{Kind: model.SinglePayload, ID: model.NewID("V"), Type: model.Optional(model.List(model.Prim(model.U64)))}},
	}}
	out, _ = generate(t, s, m, typegen.PolicySkip)
	assert.Contains(t, out, "package object shapes {\n\ntype UByte = Byte\n")
}

func TestSingleSegmentPackage(t *testing.T) {
	s := newScala(t, typegen.Config{Namespace: "shapes", NoVersionHeader: true})
	m := &model.Model{Aliases: []*model.AliasDef{{ID: model.NewID("Name"), Type: model.Prim(model.String)}}}

	out, _ := generate(t, s, m, typegen.PolicyFail)
	assert.Equal(t, "package object shapes {\n\ntype Name = String\n\n}\n", out)
}

func TestMultiFileImportsFollowPolicy(t *testing.T) {
	s := newScala(t, typegen.Config{NoVersionHeader: true})
	m := &model.Model{MultiFile: true, Imports: map[string][]string{"users": {"User"}}}

	var buf bytes.Buffer
	_, err := typegen.NewGenerator(s, typegen.WithLogger(zap.NewNop().Sugar())).Generate(context.Background(), m, &buf)
	require.Error(t, err)
	assert.True(t, errors.IsNotImplementedError(err))

	out, report := generate(t, s, m, typegen.PolicySkip)
	assert.Equal(t, "package com.example\n\n", out)
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, "imports", report.Skipped[0].Definition)
}
