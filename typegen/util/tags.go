package util

import (
	"go/ast"
	"reflect"
	"strconv"
	"strings"
)

// JSONTagInfo holds parsed information from a json struct tag
type JSONTagInfo struct {
	Name      string // Field name from json tag
	Omitempty bool   // Has omitempty option
	Skip      bool   // Skip this field (json:"-")
}

// structTag unquotes a field's raw tag literal.
func structTag(tag *ast.BasicLit) reflect.StructTag {
	if tag == nil {
		return ""
	}
	if s, err := strconv.Unquote(tag.Value); err == nil {
		return reflect.StructTag(s)
	}
	return reflect.StructTag(strings.Trim(tag.Value, "`"))
}

// ParseJSONTag extracts json tag information from a struct field tag.
// Returns nil if there's no json tag.
func ParseJSONTag(tag *ast.BasicLit) *JSONTagInfo {
	jsonTag := structTag(tag).Get("json")
	if jsonTag == "" {
		return nil
	}

	info := &JSONTagInfo{}
	parts := strings.Split(jsonTag, ",")
	info.Name = parts[0]

	if info.Name == "-" && len(parts) == 1 {
		info.Skip = true
		return info
	}

	for _, part := range parts[1:] {
		if part == "omitempty" || part == "omitzero" {
			info.Omitempty = true
		}
	}
	return info
}

// ParseCustomTag extracts a custom tag (like kttype, scalatype) from a struct field tag.
// Returns name, options map, and skip boolean.
func ParseCustomTag(tag *ast.BasicLit, tagName string) (name string, options map[string]bool, skip bool) {
	customTag := structTag(tag).Get(tagName)
	if customTag == "" {
		return "", nil, false
	}
	if customTag == "-" {
		return "", nil, true
	}

	parts := strings.Split(customTag, ",")
	name = parts[0]
	options = make(map[string]bool)
	for _, part := range parts[1:] {
		options[part] = true
	}
	return name, options, false
}
