package golang

import (
	"go/ast"
	"go/token"
	"go/types"
	"strconv"

	"github.com/teranos/shapeshare/errors"
	"github.com/teranos/shapeshare/model"
)

// builtins maps Go predeclared types to model kinds. int and uint are
// treated as 64-bit.
var builtins = map[string]model.Kind{
	"bool":    model.Bool,
	"string":  model.String,
	"int8":    model.I8,
	"int16":   model.I16,
	"int32":   model.I32,
	"int64":   model.I64,
	"int":     model.I64,
	"uint8":   model.U8,
	"byte":    model.U8,
	"uint16":  model.U16,
	"uint32":  model.U32,
	"uint64":  model.U64,
	"uint":    model.U64,
	"uintptr": model.USize,
	"float32": model.F32,
	"float64": model.F64,
	"rune":    model.Char,
}

// qualified maps package-qualified types with a direct model equivalent.
var qualified = map[string]model.Type{
	"time.Time":     model.Prim(model.DateTime),
	"time.Duration": model.Prim(model.I64),
}

func isBuiltin(name string) bool {
	_, ok := builtins[name]
	return ok
}

func (c *converter) convertExpr(expr ast.Expr) (model.Type, error) {
	switch t := expr.(type) {
	case *ast.Ident:
		if k, ok := builtins[t.Name]; ok {
			return model.Prim(k), nil
		}
		if t.Name == "any" || t.Name == "error" {
			return nil, unsupported(t)
		}
		return model.Simple{Name: t.Name}, nil

	case *ast.SelectorExpr:
		if ty, ok := qualified[types.ExprString(t)]; ok {
			return ty, nil
		}
		if _, ok := t.X.(*ast.Ident); ok {
			return model.Simple{Name: t.Sel.Name}, nil
		}
		return nil, unsupported(t)

	case *ast.StarExpr:
		elem, err := c.convertExpr(t.X)
		if err != nil {
			return nil, err
		}
		return model.Optional(elem), nil

	case *ast.ArrayType:
		elem, err := c.convertExpr(t.Elt)
		if err != nil {
			return nil, err
		}
		if t.Len == nil {
			return model.List(elem), nil
		}
		lit, ok := t.Len.(*ast.BasicLit)
		if !ok || lit.Kind != token.INT {
			return nil, unsupported(t)
		}
		n, err := strconv.Atoi(lit.Value)
		if err != nil {
			return nil, unsupported(t)
		}
		return model.FixedArray(elem, n), nil

	case *ast.MapType:
		key, err := c.convertExpr(t.Key)
		if err != nil {
			return nil, err
		}
		value, err := c.convertExpr(t.Value)
		if err != nil {
			return nil, err
		}
		return model.Map(key, value), nil

	case *ast.IndexExpr:
		return c.generic(t.X, []ast.Expr{t.Index})

	case *ast.IndexListExpr:
		return c.generic(t.X, t.Indices)

	case *ast.ParenExpr:
		return c.convertExpr(t.X)
	}
	return nil, unsupported(expr)
}

func (c *converter) generic(base ast.Expr, indices []ast.Expr) (model.Type, error) {
	var name string
	switch b := base.(type) {
	case *ast.Ident:
		name = b.Name
	case *ast.SelectorExpr:
		name = b.Sel.Name
	default:
		return nil, unsupported(base)
	}

	args := make([]model.Type, 0, len(indices))
	for _, idx := range indices {
		arg, err := c.convertExpr(idx)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return model.Named(name, args...), nil
}

func unsupported(expr ast.Expr) error {
	return errors.WithHint(
		errors.NewInvalidModelError("unsupported Go type %s", types.ExprString(expr)),
		"use a concrete type, or exclude the field with json:\"-\"",
	)
}
