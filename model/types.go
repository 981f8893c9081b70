package model

import (
	"strconv"
	"strings"
)

// Type is a node of the language-neutral type tree.
// It is implemented by Simple, Generic and Special only.
type Type interface {
	isType()
	// String renders the type as a type expression accepted by ParseType.
	String() string
}

// Simple is a named user type or a reference to a generic parameter.
type Simple struct {
	Name string
}

// Generic is a named user type applied to type arguments, e.g. Page<User>.
type Generic struct {
	Name   string
	Params []Type
}

// Special is a built-in type. Params holds element types for containers
// (one for Vec/Array/Slice/Option, two for HashMap). Length is set for Array.
type Special struct {
	Kind   Kind
	Params []Type
	Length int
}

func (Simple) isType()  {}
func (Generic) isType() {}
func (Special) isType() {}

// Kind enumerates the built-in types.
type Kind int

const (
	Unit Kind = iota
	Bool
	I8
	I16
	I32
	I64
	ISize
	I54
	U8
	U16
	U32
	U64
	USize
	U53
	F32
	F64
	String
	Char
	Vec
	Array
	Slice
	HashMap
	Option
	DateTime
)

var kindNames = map[Kind]string{
	Unit:     "()",
	Bool:     "bool",
	I8:       "i8",
	I16:      "i16",
	I32:      "i32",
	I64:      "i64",
	ISize:    "isize",
	I54:      "I54",
	U8:       "u8",
	U16:      "u16",
	U32:      "u32",
	U64:      "u64",
	USize:    "usize",
	U53:      "U53",
	F32:      "f32",
	F64:      "f64",
	String:   "String",
	Char:     "char",
	Vec:      "Vec",
	Array:    "Array",
	Slice:    "Slice",
	HashMap:  "HashMap",
	Option:   "Option",
	DateTime: "DateTime",
}

var primitivesByName = map[string]Kind{
	"()":       Unit,
	"bool":     Bool,
	"i8":       I8,
	"i16":      I16,
	"i32":      I32,
	"i64":      I64,
	"isize":    ISize,
	"I54":      I54,
	"u8":       U8,
	"u16":      U16,
	"u32":      U32,
	"u64":      U64,
	"usize":    USize,
	"U53":      U53,
	"f32":      F32,
	"f64":      F64,
	"String":   String,
	"str":      String,
	"char":     Char,
	"DateTime": DateTime,
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// IsUnsigned reports whether the kind is an unsigned integer.
func (k Kind) IsUnsigned() bool {
	switch k {
	case U8, U16, U32, U64, USize, U53:
		return true
	}
	return false
}

// IsContainer reports whether the kind carries element type parameters.
func (k Kind) IsContainer() bool {
	switch k {
	case Vec, Array, Slice, HashMap, Option:
		return true
	}
	return false
}

// Prim returns a Special without parameters.
func Prim(k Kind) Special { return Special{Kind: k} }

// List returns Vec<elem>.
func List(elem Type) Special { return Special{Kind: Vec, Params: []Type{elem}} }

// FixedArray returns [elem; n].
func FixedArray(elem Type, n int) Special {
	return Special{Kind: Array, Params: []Type{elem}, Length: n}
}

// SliceOf returns [elem].
func SliceOf(elem Type) Special { return Special{Kind: Slice, Params: []Type{elem}} }

// Map returns HashMap<key, value>.
func Map(key, value Type) Special { return Special{Kind: HashMap, Params: []Type{key, value}} }

// Optional returns Option<elem>.
func Optional(elem Type) Special { return Special{Kind: Option, Params: []Type{elem}} }

// Named returns a Simple type, or a Generic when arguments are given.
func Named(name string, args ...Type) Type {
	if len(args) == 0 {
		return Simple{Name: name}
	}
	return Generic{Name: name, Params: args}
}

func (s Simple) String() string { return s.Name }

func (g Generic) String() string {
	return g.Name + "<" + joinTypes(g.Params) + ">"
}

func (s Special) String() string {
	switch s.Kind {
	case Array:
		return "[" + param(s.Params, 0) + "; " + strconv.Itoa(s.Length) + "]"
	case Slice:
		return "[" + param(s.Params, 0) + "]"
	case Vec, Option, HashMap:
		return s.Kind.String() + "<" + joinTypes(s.Params) + ">"
	default:
		return s.Kind.String()
	}
}

func param(params []Type, i int) string {
	if i >= len(params) || params[i] == nil {
		return "?"
	}
	return params[i].String()
}

func joinTypes(types []Type) string {
	parts := make([]string, len(types))
	for i := range types {
		parts[i] = param(types, i)
	}
	return strings.Join(parts, ", ")
}

// ContainsType reports whether the type tree references name anywhere.
func ContainsType(t Type, name string) bool {
	switch v := t.(type) {
	case Simple:
		return v.Name == name
	case Generic:
		if v.Name == name {
			return true
		}
		return anyContains(v.Params, name)
	case Special:
		return anyContains(v.Params, name)
	}
	return false
}

func anyContains(types []Type, name string) bool {
	for _, p := range types {
		if ContainsType(p, name) {
			return true
		}
	}
	return false
}

// IsOptional reports whether the outermost node is Option.
func IsOptional(t Type) bool {
	s, ok := t.(Special)
	return ok && s.Kind == Option
}

// Walk calls fn for t and every nested type, parents first.
func Walk(t Type, fn func(Type)) {
	if t == nil {
		return
	}
	fn(t)
	switch v := t.(type) {
	case Generic:
		for _, p := range v.Params {
			Walk(p, fn)
		}
	case Special:
		for _, p := range v.Params {
			Walk(p, fn)
		}
	}
}
