// Package golang builds a model.Model from the exported types of a Go package.
//
// Mapping:
//   - exported structs become structs; the json tag gives the wire name and
//     omitempty marks a field as defaulted
//   - pointers become Option, slices Vec, arrays fixed arrays, maps HashMap
//   - time.Time becomes DateTime
//   - `type X string` with typed string constants becomes a unit enum
//   - other exported named types become aliases
//   - exported constants with literal values become constants
//
// Struct tags kttype:"T" and scalatype:"T" override a field's type per
// language. Doc-comment directives adjust definitions:
//
//	//shapeshare:redacted
//	//shapeshare:kotlin=JvmInline
package golang

import (
	"context"
	"go/ast"
	"go/token"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/teranos/shapeshare/errors"
	"github.com/teranos/shapeshare/logger"
	"github.com/teranos/shapeshare/model"
	"github.com/teranos/shapeshare/typegen/util"
)

const directivePrefix = "shapeshare"

// overrideTags maps struct tag names to the language they override.
var overrideTags = map[string]model.Lang{
	"kttype":    model.LangKotlin,
	"scalatype": model.LangScala,
}

// Load loads the package matching pattern, resolved from dir, and converts it.
func Load(ctx context.Context, dir, pattern string) (*model.Model, error) {
	cfg := &packages.Config{
		Context: ctx,
		Dir:     dir,
		Mode:    packages.NeedName | packages.NeedFiles | packages.NeedSyntax,
	}

	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load package %s", pattern)
	}
	if len(pkgs) == 0 {
		return nil, errors.NewInvalidModelError("no packages found for %s", pattern)
	}
	if len(pkgs) > 1 {
		return nil, errors.WithHint(
			errors.NewInvalidModelError("pattern %s matched %d packages", pattern, len(pkgs)),
			"pass a single package path",
		)
	}

	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		return nil, errors.NewInvalidModelError("package errors: %v", pkg.Errors)
	}

	logger.Named("loader").Debugw("Loaded Go package",
		logger.FieldModule, pkg.PkgPath,
		logger.FieldCount, len(pkg.Syntax))

	return FromFiles(pkg.Fset, pkg.Name, pkg.Syntax)
}

// FromFiles converts parsed files of one package. Files are processed in
// filename order and declarations in source order.
func FromFiles(fset *token.FileSet, pkgName string, files []*ast.File) (*model.Model, error) {
	sorted := make([]*ast.File, len(files))
	copy(sorted, files)
	sort.SliceStable(sorted, func(i, j int) bool {
		return fset.Position(sorted[i].Pos()).Filename < fset.Position(sorted[j].Pos()).Filename
	})

	c := &converter{
		fset:       fset,
		m:          &model.Model{ModuleName: pkgName},
		enumValues: make(map[string][]constValue),
	}

	// Enum candidates need every typed constant of the package first.
	for _, f := range sorted {
		c.collectConsts(f)
	}
	for _, f := range sorted {
		if err := c.convertFile(f); err != nil {
			return nil, err
		}
	}

	if err := c.m.Validate(); err != nil {
		return nil, err
	}
	return c.m, nil
}

type constValue struct {
	name     string
	value    string
	comments []string
}

type converter struct {
	fset       *token.FileSet
	m          *model.Model
	enumValues map[string][]constValue
	enumConsts map[string]bool
}

// collectConsts groups string constants by their declared named type.
func (c *converter) collectConsts(f *ast.File) {
	if c.enumConsts == nil {
		c.enumConsts = make(map[string]bool)
	}
	for _, decl := range f.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.CONST {
			continue
		}
		var currentType string
		for _, spec := range gen.Specs {
			vs := spec.(*ast.ValueSpec)
			switch {
			case vs.Type != nil:
				currentType = ""
				if ident, ok := vs.Type.(*ast.Ident); ok && !isBuiltin(ident.Name) {
					currentType = ident.Name
				}
			case len(vs.Values) > 0:
				currentType = ""
			}
			if currentType == "" {
				continue
			}
			for i, name := range vs.Names {
				if i >= len(vs.Values) {
					break
				}
				lit, ok := vs.Values[i].(*ast.BasicLit)
				if !ok || lit.Kind != token.STRING {
					continue
				}
				value, err := strconv.Unquote(lit.Value)
				if err != nil {
					continue
				}
				c.enumValues[currentType] = append(c.enumValues[currentType], constValue{
					name:     name.Name,
					value:    value,
					comments: util.CommentLines(vs.Doc, vs.Comment),
				})
				c.enumConsts[name.Name] = true
			}
		}
	}
}

func (c *converter) convertFile(f *ast.File) error {
	for _, decl := range f.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok {
			continue
		}
		switch gen.Tok {
		case token.TYPE:
			for _, spec := range gen.Specs {
				ts := spec.(*ast.TypeSpec)
				if !ts.Name.IsExported() {
					continue
				}
				doc := ts.Doc
				if doc == nil && len(gen.Specs) == 1 {
					doc = gen.Doc
				}
				if err := c.convertType(ts, doc); err != nil {
					return err
				}
			}
		case token.CONST:
			if err := c.convertConsts(gen); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *converter) convertType(ts *ast.TypeSpec, doc *ast.CommentGroup) error {
	name := ts.Name.Name
	comments := util.CommentLines(doc)
	redacted, decorators, err := c.directives(name, doc)
	if err != nil {
		return err
	}
	generics := typeParams(ts)

	if st, ok := ts.Type.(*ast.StructType); ok {
		fields, err := c.convertFields(name, st)
		if err != nil {
			return err
		}
		c.m.Structs = append(c.m.Structs, &model.StructDef{
			ID:         model.NewID(name),
			Fields:     fields,
			Generics:   generics,
			Comments:   comments,
			Redacted:   redacted,
			Decorators: decorators,
		})
		return nil
	}

	if ident, ok := ts.Type.(*ast.Ident); ok && ident.Name == "string" && !ts.Assign.IsValid() {
		if values := c.enumValues[name]; len(values) > 0 {
			c.m.Enums = append(c.m.Enums, unitEnum(name, comments, decorators, values))
			return nil
		}
	}

	ty, err := c.convertExpr(ts.Type)
	if err != nil {
		return errors.Wrapf(err, "%s: type %s", c.pos(ts), name)
	}
	c.m.Aliases = append(c.m.Aliases, &model.AliasDef{
		ID:         model.NewID(name),
		Type:       ty,
		Generics:   generics,
		Comments:   comments,
		Redacted:   redacted,
		Decorators: decorators,
	})
	return nil
}

// unitEnum names each variant after its constant with the type name
// stripped (ColorRed -> Red); the constant's value is the wire name.
func unitEnum(name string, comments []string, decorators model.Decorators, values []constValue) *model.EnumDef {
	enum := &model.EnumDef{
		Kind:       model.UnitEnum,
		ID:         model.NewID(name),
		Comments:   comments,
		Decorators: decorators,
	}
	for _, v := range values {
		original := strings.TrimPrefix(v.name, name)
		if original == "" || !token.IsIdentifier(original) {
			original = v.name
		}
		enum.Variants = append(enum.Variants, model.Variant{
			Kind:     model.NoPayload,
			ID:       model.RenamedID(original, v.value),
			Comments: v.comments,
		})
	}
	return enum
}

func (c *converter) convertFields(owner string, st *ast.StructType) ([]model.FieldDef, error) {
	var fields []model.FieldDef
	for _, field := range st.Fields.List {
		// Embedded fields are not flattened
		if len(field.Names) == 0 {
			continue
		}

		jsonTag := util.ParseJSONTag(field.Tag)
		if jsonTag != nil && jsonTag.Skip {
			continue
		}

		for _, fieldName := range field.Names {
			if !fieldName.IsExported() {
				continue
			}

			ty, err := c.convertExpr(field.Type)
			if err != nil {
				return nil, errors.Wrapf(err, "%s: field %s.%s", c.pos(field), owner, fieldName.Name)
			}

			def := model.FieldDef{
				ID:       model.NewID(fieldName.Name),
				Type:     ty,
				Comments: util.CommentLines(field.Doc, field.Comment),
			}
			if jsonTag != nil {
				if jsonTag.Name != "" {
					def.ID = model.RenamedID(fieldName.Name, jsonTag.Name)
				}
				def.HasDefault = jsonTag.Omitempty
			}
			for tagName, lang := range overrideTags {
				override, _, skip := util.ParseCustomTag(field.Tag, tagName)
				if skip || override == "" {
					continue
				}
				if def.TypeOverrides == nil {
					def.TypeOverrides = make(map[model.Lang]string)
				}
				def.TypeOverrides[lang] = override
			}
			fields = append(fields, def)
		}
	}
	return fields, nil
}

// convertConsts turns exported literal constants that are not enum members
// into constant definitions.
func (c *converter) convertConsts(gen *ast.GenDecl) error {
	for _, spec := range gen.Specs {
		vs := spec.(*ast.ValueSpec)
		for i, name := range vs.Names {
			if !name.IsExported() || c.enumConsts[name.Name] || i >= len(vs.Values) {
				continue
			}
			lit, ok := vs.Values[i].(*ast.BasicLit)
			if !ok {
				continue
			}

			var ty model.Type
			if vs.Type != nil {
				var err error
				if ty, err = c.convertExpr(vs.Type); err != nil {
					return errors.Wrapf(err, "%s: const %s", c.pos(vs), name.Name)
				}
			} else if ty = literalType(lit); ty == nil {
				continue
			}

			value := lit.Value
			if lit.Kind == token.STRING {
				if s, err := strconv.Unquote(lit.Value); err == nil {
					value = s
				}
			}
			doc := vs.Doc
			if doc == nil && len(gen.Specs) == 1 {
				doc = gen.Doc
			}
			c.m.Consts = append(c.m.Consts, &model.ConstDef{
				ID:       model.NewID(name.Name),
				Type:     ty,
				Value:    value,
				Comments: util.CommentLines(doc, vs.Comment),
			})
		}
	}
	return nil
}

func literalType(lit *ast.BasicLit) model.Type {
	switch lit.Kind {
	case token.STRING:
		return model.Prim(model.String)
	case token.INT:
		return model.Prim(model.I64)
	case token.FLOAT:
		return model.Prim(model.F64)
	case token.CHAR:
		return model.Prim(model.Char)
	}
	return nil
}

// directives reads //shapeshare:redacted and //shapeshare:<lang>=<flag>.
func (c *converter) directives(owner string, doc *ast.CommentGroup) (bool, model.Decorators, error) {
	var redacted bool
	var decorators model.Decorators
	for _, d := range util.Directives(directivePrefix, doc) {
		if d == "redacted" {
			redacted = true
			continue
		}
		lang, flag, ok := strings.Cut(d, "=")
		if !ok || lang == "" || flag == "" {
			return false, nil, errors.WithHint(
				errors.NewInvalidModelError("%s: unknown directive //%s:%s", owner, directivePrefix, d),
				"use //shapeshare:redacted or //shapeshare:<lang>=<flag>",
			)
		}
		if decorators == nil {
			decorators = make(model.Decorators)
		}
		decorators[model.Lang(lang)] = append(decorators[model.Lang(lang)], flag)
	}
	return redacted, decorators, nil
}

func (c *converter) pos(n ast.Node) string {
	return c.fset.Position(n.Pos()).String()
}

func typeParams(ts *ast.TypeSpec) []string {
	if ts.TypeParams == nil {
		return nil
	}
	var out []string
	for _, field := range ts.TypeParams.List {
		for _, name := range field.Names {
			out = append(out, name.Name)
		}
	}
	return out
}
