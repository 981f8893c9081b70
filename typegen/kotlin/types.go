package kotlin

import (
	"strings"

	"github.com/teranos/shapeshare/errors"
)

// types is the Kotlin table for built-in kinds.
// Kotlin has native unsigned integers; Char is 16 bits so chars map to String.
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

func (types) List(elem string) string { return "List<" + elem + ">" }

func (types) FixedArray(elem string, _ int) string { return "List<" + elem + ">" }

func (types) Map(key, value string) string { return "HashMap<" + key + ", " + value + ">" }

func (types) Optional(elem string) string { return elem + "?" }

func (types) DateTime() (string, error) {
	return "", errors.NewUnsupportedTypeError(Language, "DateTime")
}

func (types) GenericArgs(args []string) string {
	return "<" + strings.Join(args, ", ") + ">"
}
