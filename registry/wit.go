package registry

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/samber/lo"
	"go.bytecodealliance.org/wit"

	"github.com/wippyai/borsh/codec"
	"github.com/wippyai/borsh/errors"
)

// WIT converts the codec tree of c to the closest WIT type. 128-bit integers
// become a named tuple of two u64 halves (low first), fixed-size arrays become
// tuples, data enums become a record of kind and data.
func WIT(c interface{ Description() string }) (wit.Type, error) {
	return witFromShape(codec.ShapeOf(c), nil)
}

func witFromShape(s codec.Shape, path []string) (wit.Type, error) {
	switch s.Family {
	case codec.FamilyU8:
		return wit.U8{}, nil
	case codec.FamilyU16:
		return wit.U16{}, nil
	case codec.FamilyU32:
		return wit.U32{}, nil
	case codec.FamilyU64:
		return wit.U64{}, nil
	case codec.FamilyI8:
		return wit.S8{}, nil
	case codec.FamilyI16:
		return wit.S16{}, nil
	case codec.FamilyI32:
		return wit.S32{}, nil
	case codec.FamilyI64:
		return wit.S64{}, nil
	case codec.FamilyF32:
		return wit.F32{}, nil
	case codec.FamilyF64:
		return wit.F64{}, nil
	case codec.FamilyBool:
		return wit.Bool{}, nil
	case codec.FamilyString, codec.FamilyFixedSizeString:
		return wit.String{}, nil
	case codec.FamilyU128, codec.FamilyI128:
		return &wit.TypeDef{
			Name: lo.ToPtr(string(s.Family)),
			Kind: &wit.Tuple{Types: []wit.Type{wit.U64{}, wit.U64{}}},
		}, nil
	case codec.FamilyBytes, codec.FamilyFixedSizeBytes:
		return &wit.TypeDef{Kind: &wit.List{Type: wit.U8{}}}, nil
	}

	if s.Family == codec.FamilyStruct {
		return witRecord(s, path)
	}

	if s.Elem == nil {
		return nil, errors.New(errors.PhaseSchema, errors.KindUnsupported).
			Path(path...).
			Codec(s.Description).
			Detail("%s has no element type", s.Family).
			Build()
	}
	elem, err := witFromShape(*s.Elem, path)
	if err != nil {
		return nil, err
	}

	switch s.Family {
	case codec.FamilyOption, codec.FamilyCOption:
		return &wit.TypeDef{Kind: &wit.Option{Type: elem}}, nil
	case codec.FamilyVec:
		return &wit.TypeDef{Kind: &wit.List{Type: elem}}, nil
	case codec.FamilyUniformFixedSizeArray:
		return &wit.TypeDef{Kind: &wit.Tuple{
			Types: lo.Times(s.Len, func(int) wit.Type { return elem }),
		}}, nil
	case codec.FamilyDataEnum:
		return &wit.TypeDef{Kind: &wit.Record{Fields: []wit.Field{
			{Name: "kind", Type: wit.U8{}},
			{Name: "data", Type: elem},
		}}}, nil
	}
	return nil, errors.Unsupported(errors.PhaseSchema, fmt.Sprintf("codec family %q", s.Family))
}

func witRecord(s codec.Shape, path []string) (wit.Type, error) {
	fields := make([]wit.Field, 0, len(s.Fields))
	for _, f := range s.Fields {
		t, err := witFromShape(f.Shape, append(append([]string{}, path...), f.Name))
		if err != nil {
			return nil, err
		}
		fields = append(fields, wit.Field{Name: toKebabCase(f.Name), Type: t})
	}
	name := toKebabCase(s.Description)
	return &wit.TypeDef{Name: &name, Kind: &wit.Record{Fields: fields}}, nil
}

func toKebabCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				result.WriteByte('-')
			}
			result.WriteRune(unicode.ToLower(r))
		} else if r == '_' {
			result.WriteByte('-')
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// Render formats t as WIT source. Named type definitions render as their
// name; Define renders their bodies.
func Render(t wit.Type) string {
	switch v := t.(type) {
	case wit.U8:
		return "u8"
	case wit.U16:
		return "u16"
	case wit.U32:
		return "u32"
	case wit.U64:
		return "u64"
	case wit.S8:
		return "s8"
	case wit.S16:
		return "s16"
	case wit.S32:
		return "s32"
	case wit.S64:
		return "s64"
	case wit.F32:
		return "f32"
	case wit.F64:
		return "f64"
	case wit.Bool:
		return "bool"
	case wit.Char:
		return "char"
	case wit.String:
		return "string"
	case *wit.TypeDef:
		if v.Name != nil {
			return *v.Name
		}
		return renderKind(v)
	default:
		return fmt.Sprintf("%T", t)
	}
}

func renderKind(t *wit.TypeDef) string {
	switch k := t.Kind.(type) {
	case *wit.Option:
		return "option<" + Render(k.Type) + ">"
	case *wit.List:
		return "list<" + Render(k.Type) + ">"
	case *wit.Tuple:
		return "tuple<" + strings.Join(lo.Map(k.Types, func(t wit.Type, _ int) string {
			return Render(t)
		}), ", ") + ">"
	case *wit.Record:
		parts := lo.Map(k.Fields, func(f wit.Field, _ int) string {
			return f.Name + ": " + Render(f.Type)
		})
		return "record { " + strings.Join(parts, ", ") + " }"
	default:
		return fmt.Sprintf("%T", t.Kind)
	}
}

// Define renders the definitions of t and every named type it references,
// dependencies first, each once.
func Define(t wit.Type) string {
	var b strings.Builder
	seen := make(map[string]bool)
	writeDefinitions(&b, t, seen)
	return b.String()
}

func writeDefinitions(b *strings.Builder, t wit.Type, seen map[string]bool) {
	td, ok := t.(*wit.TypeDef)
	if !ok {
		return
	}
	switch k := td.Kind.(type) {
	case *wit.Option:
		writeDefinitions(b, k.Type, seen)
	case *wit.List:
		writeDefinitions(b, k.Type, seen)
	case *wit.Tuple:
		for _, e := range k.Types {
			writeDefinitions(b, e, seen)
		}
	case *wit.Record:
		for _, f := range k.Fields {
			writeDefinitions(b, f.Type, seen)
		}
	}
	if td.Name == nil || seen[*td.Name] {
		return
	}
	seen[*td.Name] = true

	switch k := td.Kind.(type) {
	case *wit.Record:
		fmt.Fprintf(b, "record %s {\n", *td.Name)
		for _, f := range k.Fields {
			fmt.Fprintf(b, "    %s: %s,\n", f.Name, Render(f.Type))
		}
		b.WriteString("}\n")
	default:
		fmt.Fprintf(b, "type %s = %s;\n", *td.Name, renderKind(td))
	}
}
