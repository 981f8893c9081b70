package scala

import (
	"strings"

	"github.com/teranos/shapeshare/errors"
)

// types is the Scala table for built-in kinds.
type types struct{}

func (types) Unit() string    { return "Unit" }
func (types) Bool() string    { return "Boolean" }
func (types) Str() string     { return "String" }
func (types) Int8() string    { return "Byte" }
func (types) Int16() string   { return "Short" }
func (types) Int32() string   { return "Int" }
func (types) Int64() string   { return "Long" }
func (types) Uint8() string   { return "UByte" }
func (types) Uint16() string  { return "UShort" }
func (types) Uint32() string  { return "UInt" }
func (types) Uint64() string  { return "ULong" }
func (types) Float32() string { return "Float" }
func (types) Float64() string { return "Double" }

func (types) List(elem string) string { return "Vector[" + elem + "]" }

func (types) FixedArray(elem string, _ int) string { return "Vector[" + elem + "]" }

func (types) Map(key, value string) string { return "Map[" + key + ", " + value + "]" }

func (types) Optional(elem string) string { return "Option[" + elem + "]" }

func (types) DateTime() (string, error) {
	return "", errors.NewUnsupportedTypeError(Language, "DateTime")
}

func (types) GenericArgs(args []string) string {
	return "[" + strings.Join(args, ", ") + "]"
}
