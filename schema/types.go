package schema

import (
	"github.com/wippyai/borsh/codec"
)

var builtins = map[string]codec.Codec[any]{
	"u8":     codec.Dynamic(codec.U8),
	"u16":    codec.Dynamic(codec.U16),
	"u32":    codec.Dynamic(codec.U32),
	"u64":    codec.Dynamic(codec.U64),
	"u128":   codec.Dynamic(codec.U128),
	"i8":     codec.Dynamic(codec.I8),
	"i16":    codec.Dynamic(codec.I16),
	"i32":    codec.Dynamic(codec.I32),
	"i64":    codec.Dynamic(codec.I64),
	"i128":   codec.Dynamic(codec.I128),
	"f32":    codec.Dynamic(codec.F32),
	"f64":    codec.Dynamic(codec.F64),
	"bool":   codec.Dynamic(codec.Bool),
	"string": codec.Dynamic[string](codec.Utf8String),
	"bytes":  codec.Dynamic[[]byte](codec.Bytes),
}

// sized builtins accept an exact length: string<N>, bytes<N>.
var sized = map[string]bool{"string": true, "bytes": true}

var constructors = map[string]bool{
	"option":  true,
	"coption": true,
	"array":   true,
	"vec":     true,
	"enum":    true,
}

func sizedBuiltin(name string, n int) codec.Codec[any] {
	if name == "string" {
		return codec.Dynamic(codec.FixedSizeString(n))
	}
	return codec.Dynamic(codec.FixedBytes(n))
}

// Some is a present option value that would otherwise read as absent.
// Decoding an option whose payload is itself absent, as in
// option<option<u8>> over the bytes [1 0], yields Some{Value: nil}. Writing
// accepts Some for any option.
type Some struct {
	Value any
}

func optionTo(p *any) (any, error) {
	if p == nil {
		return nil, nil
	}
	switch v := *p; v.(type) {
	case nil, Some:
		return Some{Value: v}, nil
	default:
		return v, nil
	}
}

func optionFrom(v any) (*any, error) {
	switch o := v.(type) {
	case nil:
		return nil, nil
	case Some:
		inner := o.Value
		return &inner, nil
	default:
		return &v, nil
	}
}

func compose(e Expr, inner codec.Codec[any]) (codec.Codec[any], error) {
	switch e.Name {
	case "option":
		return codec.Convert[*any, any](codec.Option(inner), optionTo, optionFrom), nil
	case "coption":
		f, ok := inner.(codec.Fixed[any])
		if !ok {
			return nil, invalid(nil, "%s needs a fixed-size type argument", e)
		}
		return codec.Convert[*any, any](codec.COption(f), optionTo, optionFrom), nil
	case "array":
		return codec.Dynamic(codec.UniformFixedSizeArray(inner, e.Len)), nil
	case "vec":
		return codec.Dynamic[[]any](codec.Vec(inner)), nil
	default:
		return codec.Dynamic(codec.DataEnumOf(inner)), nil
	}
}
