// Package registry describes the codec families of package codec: which Go
// builder constructs each one, whether it is fixable, the Go type it maps and
// the kind of type argument it takes. It also converts codec trees to WIT
// types for interface documentation.
package registry

import (
	"slices"

	"github.com/samber/lo"

	"github.com/wippyai/borsh/codec"
)

// Arg is the kind of type argument a codec family takes.
type Arg string

const (
	ArgNone     Arg = ""
	ArgInner    Arg = "inner"     // a single element codec
	ArgLen      Arg = "len"       // a byte or element count
	ArgInnerLen Arg = "inner+len" // an element codec and a count
	ArgFields   Arg = "fields"    // named field codecs
)

// Package is the import path constructors live in.
const Package = "github.com/wippyai/borsh/codec"

// Definition documents one codec family.
type Definition struct {
	Family      codec.Family
	Constructor string
	GoType      string
	Arg         Arg
	Package     string
	Fixable     bool
}

var definitions = map[codec.Family]Definition{}

func define(family codec.Family, constructor, goType string, arg Arg, fixable bool) {
	definitions[family] = Definition{
		Family:      family,
		Constructor: constructor,
		GoType:      goType,
		Arg:         arg,
		Package:     Package,
		Fixable:     fixable,
	}
}

func init() {
	define(codec.FamilyU8, "U8", "uint8", ArgNone, false)
	define(codec.FamilyU16, "U16", "uint16", ArgNone, false)
	define(codec.FamilyU32, "U32", "uint32", ArgNone, false)
	define(codec.FamilyU64, "U64", "uint64", ArgNone, false)
	define(codec.FamilyU128, "U128", "*big.Int", ArgNone, false)
	define(codec.FamilyI8, "I8", "int8", ArgNone, false)
	define(codec.FamilyI16, "I16", "int16", ArgNone, false)
	define(codec.FamilyI32, "I32", "int32", ArgNone, false)
	define(codec.FamilyI64, "I64", "int64", ArgNone, false)
	define(codec.FamilyI128, "I128", "*big.Int", ArgNone, false)
	define(codec.FamilyF32, "F32", "float32", ArgNone, false)
	define(codec.FamilyF64, "F64", "float64", ArgNone, false)
	define(codec.FamilyBool, "Bool", "bool", ArgNone, false)

	define(codec.FamilyString, "Utf8String", "string", ArgNone, true)
	define(codec.FamilyFixedSizeString, "FixedSizeString", "string", ArgLen, false)
	define(codec.FamilyBytes, "Bytes", "[]byte", ArgNone, true)
	define(codec.FamilyFixedSizeBytes, "FixedBytes", "[]byte", ArgLen, false)

	define(codec.FamilyOption, "Option", "*T", ArgInner, true)
	define(codec.FamilyCOption, "COption", "*T", ArgInner, false)
	define(codec.FamilyDataEnum, "DataEnumOf", "codec.DataEnum[T]", ArgInner, true)
	define(codec.FamilyUniformFixedSizeArray, "UniformFixedSizeArray", "[]T", ArgInnerLen, true)
	define(codec.FamilyVec, "Vec", "[]T", ArgInner, true)
	define(codec.FamilyStruct, "NewStruct", "T", ArgFields, true)
}

// Lookup returns the definition of family.
func Lookup(family codec.Family) (Definition, bool) {
	d, ok := definitions[family]
	return d, ok
}

// Keys returns every registered family in sorted order.
func Keys() []codec.Family {
	keys := lo.Keys(definitions)
	slices.Sort(keys)
	return keys
}

// Definitions returns every definition ordered by family.
func Definitions() []Definition {
	return lo.Map(Keys(), func(f codec.Family, _ int) Definition {
		return definitions[f]
	})
}

// Fixable returns the families whose codecs may need resolution before use.
// Families that are fixable only for some arguments (arrays, data enums,
// structs) are included.
func Fixable() []codec.Family {
	return lo.Filter(Keys(), func(f codec.Family, _ int) bool {
		return definitions[f].Fixable
	})
}
