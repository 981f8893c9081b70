package typegen

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/shapeshare/model"
)

func TestRequiresSerialName(t *testing.T) {
	plain := []model.FieldDef{{ID: model.NewID("name")}, {ID: model.RenamedID("userId", "user_id")}}
	assert.False(t, RequiresSerialName(plain))

	dashed := append(plain, model.FieldDef{ID: model.RenamedID("userId", "user-id")})
	assert.True(t, RequiresSerialName(dashed))
	assert.Equal(t, "userid", SanitizeIdentifier("user-id"))
}

func TestDefaultSuffix(t *testing.T) {
	tests := []struct {
		name  string
		field model.FieldDef
		want  string
	}{
		{"optional", model.FieldDef{Type: model.Optional(model.Prim(model.String))}, "OPT"},
		{"optional with default", model.FieldDef{Type: model.Optional(model.Prim(model.String)), HasDefault: true}, "OPT"},
		{"default", model.FieldDef{Type: model.Prim(model.String), HasDefault: true}, "DEF"},
		{"required", model.FieldDef{Type: model.Prim(model.String)}, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DefaultSuffix(tt.field, "OPT", "DEF"), tt.name)
	}
}

func TestFieldTypeOverride(t *testing.T) {
	p := NewProjector("test", angleTypes{}, Config{})
	f := model.FieldDef{
		Type:          model.Prim(model.DateTime),
		TypeOverrides: map[model.Lang]string{model.LangKotlin: "Instant"},
	}

	got, err := FieldType(p, model.LangKotlin, f, nil)
	require.NoError(t, err)
	assert.Equal(t, "Instant", got)

	_, err = FieldType(p, model.LangScala, f, nil)
	assert.Error(t, err)
}

func TestNamePatterns(t *testing.T) {
	assert.True(t, QualifiedName.MatchString("com.example.shapes"))
	assert.True(t, QualifiedName.MatchString("shapes"))
	assert.False(t, QualifiedName.MatchString("com..example"))
	assert.False(t, QualifiedName.MatchString("com.example-shapes"))
	assert.True(t, Identifier.MatchString("Api_"))
	assert.False(t, Identifier.MatchString("a.b"))
	assert.False(t, Identifier.MatchString("9a"))
}

func TestWriterKeepsFirstError(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.Comments(1, "///", []string{"one", "two"})
	w.Println("x = %d", 1)
	require.NoError(t, w.Err())
	assert.Equal(t, "\t/// one\n\t/// two\nx = 1\n", buf.String())

	fw := NewWriter(failingWriter{})
	fw.Printf("a")
	fw.Printf("b")
	assert.EqualError(t, fw.Err(), "disk full")
}
