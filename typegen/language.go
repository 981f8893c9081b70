// Package typegen projects a model.Model into source text for other languages.
//
// # Architecture
//
// Generation is a two-phase pipeline:
//  1. Hoist walks the model once and returns a Plan: every definition in
//     emission order, with a synthesized record struct placed immediately
//     before each tagged union that has inline-record variants.
//  2. Generator emits the Plan through a Language backend, one definition at
//     a time, into a buffer that is flushed to the sink only when the
//     definition rendered completely.
//
// Backends (kotlin/, scala/) share the Projector for type expressions and
// supply a SpecialTypes table for built-in kinds.
//
// # Implementing a New Backend
//
//  1. Create package: typegen/<lang>/<lang>.go
//  2. Implement SpecialTypes for the built-in kinds
//  3. Implement Language (and Layout if the file needs grouping blocks)
//  4. Register the constructor in cmd/shapeshare/commands/generate.go
//  5. Add golden tests next to the backend
package typegen

import (
	"io"

	"github.com/teranos/shapeshare/model"
)

// Config is the immutable configuration of one backend instance.
type Config struct {
	// Namespace is the package the generated code lives in
	Namespace string
	// ModuleName is the name of the generated module
	ModuleName string
	// Prefix is prepended to user-defined type names (backends may ignore it)
	Prefix string
	// TypeMappings renames origin types to literal target types before prefixing
	TypeMappings map[string]string
	// NoVersionHeader suppresses the generated-by header
	NoVersionHeader bool
	// Version is written into the header; empty means the running version
	Version string
}

// Clone returns a deep copy so backends never share the caller's map.
func (c Config) Clone() Config {
	out := c
	if c.TypeMappings != nil {
		out.TypeMappings = make(map[string]string, len(c.TypeMappings))
		for k, v := range c.TypeMappings {
			out.TypeMappings[k] = v
		}
	}
	return out
}

// Language is the contract every output backend implements.
type Language interface {
	// Name returns the language name (e.g., "kotlin")
	Name() string
	// FileExtension returns the file extension without dot (e.g., "kt")
	FileExtension() string
	// Config returns a copy of the backend configuration
	Config() Config
	// Projector returns the type projector bound to this backend's type table
	Projector() *Projector

	BeginFile(w io.Writer, m *model.Model) error
	EndFile(w io.Writer) error
	WriteTypeAlias(w io.Writer, a *model.AliasDef) error
	WriteStruct(w io.Writer, s *model.StructDef) error
	WriteEnum(w io.Writer, e *model.EnumDef) error
	WriteConst(w io.Writer, c *model.ConstDef) error
	// WriteImports writes import statements for types defined in other modules
	WriteImports(w io.Writer, imports map[string][]string) error

	// IgnoredReferenceTypes lists type names that never need an import
	// because the rename table already resolves them.
	IgnoredReferenceTypes() []string
}

// Section is a group of plan definitions wrapped in opening and closing text.
type Section struct {
	Open  string
	Close string
	Items []model.Definition
}

// Layout is implemented by backends that group definitions into blocks.
// Backends without it get the plan in order, unwrapped.
type Layout interface {
	Sections(m *model.Model, plan *Plan) []Section
}
