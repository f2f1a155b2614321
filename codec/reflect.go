package codec

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/wippyai/borsh/errors"
)

// ReflectStruct returns a struct codec for the Go struct type V, mapping each
// declared field onto an exported Go field. A Go field with a borsh:"name"
// tag matches that name only; untagged fields match by case-insensitive name
// or by the snake_case of the Go name. borsh:"-" excludes a field.
//
// ReflectStruct panics if V is not a struct or a field has no Go counterpart.
func ReflectStruct[V any](description string, fields []Field) Codec[V] {
	goType := reflect.TypeFor[V]()
	if goType.Kind() != reflect.Struct {
		panic(fmt.Sprintf("codec: ReflectStruct needs a struct type, got %s", goType))
	}

	index := make(map[string][]int, len(fields))
	for _, f := range fields {
		sf, ok := findGoField(goType, f.name)
		if !ok {
			panic(fmt.Sprintf("codec: %s has no Go field for %q", goType, f.name))
		}
		index[f.name] = sf.Index
	}

	construct := func(args Args) (V, error) {
		var v V
		rv := reflect.ValueOf(&v).Elem()
		for name, val := range args {
			idx, ok := index[name]
			if !ok || val == nil {
				continue
			}
			fv := rv.FieldByIndex(idx)
			x := reflect.ValueOf(val)
			if !x.Type().AssignableTo(fv.Type()) {
				return v, errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
					Path(name).
					GoType(x.Type().String()).
					Detail("cannot assign to %s", fv.Type()).
					Build()
			}
			fv.Set(x)
		}
		return v, nil
	}

	extract := func(v V) Args {
		rv := reflect.ValueOf(v)
		args := make(Args, len(index))
		for name, idx := range index {
			args[name] = rv.FieldByIndex(idx).Interface()
		}
		return args
	}

	return NewStruct(description, fields, construct, extract)
}

func findGoField(goType reflect.Type, name string) (reflect.StructField, bool) {
	for i := 0; i < goType.NumField(); i++ {
		field := goType.Field(i)
		if !field.IsExported() {
			continue
		}

		if tag := field.Tag.Get("borsh"); tag != "" {
			if tag == name {
				return field, true
			}
			continue
		}

		if strings.EqualFold(field.Name, name) {
			return field, true
		}

		if toSnakeCase(field.Name) == name {
			return field, true
		}
	}
	return reflect.StructField{}, false
}

func toSnakeCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				result.WriteByte('_')
			}
			result.WriteRune(unicode.ToLower(r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}
