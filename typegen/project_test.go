package typegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/shapeshare/errors"
	"github.com/teranos/shapeshare/model"
)

func TestProject(t *testing.T) {
	p := NewProjector("test", angleTypes{}, Config{
		Prefix:       "Px",
		TypeMappings: map[string]string{"Uuid": "java.util.UUID", "T": "Mapped"},
	})

	tests := []struct {
		name  string
		ty    model.Type
		scope []string
		want  string
	}{
		{"generic in scope", model.Simple{Name: "T"}, []string{"T"}, "T"},
		{"scope beats rename table", model.Simple{Name: "T"}, []string{"T"}, "T"},
		{"rename table", model.Simple{Name: "Uuid"}, nil, "java.util.UUID"},
		{"rename table out of scope", model.Simple{Name: "T"}, nil, "Mapped"},
		{"prefix", model.Simple{Name: "User"}, nil, "PxUser"},
		{"generic application", model.MustParseType("Page<User, T>"), []string{"T"}, "PxPage<PxUser, T>"},
		{"nested containers", model.MustParseType("HashMap<String, Vec<Option<u32>>>"), nil, "Map<Str, List<U32?>>"},
		{"slice folds to list", model.MustParseType("[i64]"), nil, "List<I64>"},
		{"fixed array", model.MustParseType("[u8; 4]"), nil, "Array4<U8>"},
		{"char is string", model.Prim(model.Char), nil, "Str"},
		{"isize folds to 32", model.Prim(model.ISize), nil, "I32"},
		{"I54 folds to 64", model.Prim(model.I54), nil, "I64"},
		{"usize folds to unsigned 32", model.Prim(model.USize), nil, "U32"},
		{"U53 folds to unsigned 64", model.Prim(model.U53), nil, "U64"},
		{"unit", model.Prim(model.Unit), nil, "Unit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Project(tt.ty, tt.scope)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProjectDateTimeUnsupported(t *testing.T) {
	p := NewProjector("test", angleTypes{}, Config{})

	_, err := p.Project(model.List(model.Prim(model.DateTime)), nil)
	require.Error(t, err)
	assert.True(t, errors.IsUnsupportedTypeError(err))
}

func TestProjectMalformedContainer(t *testing.T) {
	p := NewProjector("test", angleTypes{}, Config{})

	_, err := p.Project(model.Special{Kind: model.HashMap, Params: []model.Type{model.Prim(model.String)}}, nil)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidModelError(err))
}

func TestProjectorConfigIsCopied(t *testing.T) {
	mappings := map[string]string{"Uuid": "UUID"}
	p := NewProjector("test", angleTypes{}, Config{TypeMappings: mappings})
	mappings["Uuid"] = "Changed"

	got, err := p.Project(model.Simple{Name: "Uuid"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "UUID", got)
}

func TestGenericParams(t *testing.T) {
	p := NewProjector("test", angleTypes{}, Config{Prefix: "P"})
	assert.Equal(t, "", p.GenericParams(nil))
	assert.Equal(t, "<A, B>", p.GenericParams([]string{"A", "B"}))
	assert.Equal(t, "PUser", p.TypeName("User"))
}
